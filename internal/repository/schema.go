package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for the tables the routing service owns or reads.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	original_name VARCHAR(255) NOT NULL,
	storage_path TEXT NOT NULL,
	doc_type VARCHAR(50),
	confidence FLOAT,
	status VARCHAR(20) DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT NOW(),
	updated_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username VARCHAR(100) UNIQUE NOT NULL,
	email VARCHAR(255) UNIQUE NOT NULL,
	full_name VARCHAR(255),
	role VARCHAR(50) DEFAULT 'user',
	department VARCHAR(100),
	skills JSONB,
	workload_capacity INTEGER DEFAULT 10,
	is_active BOOLEAN DEFAULT TRUE,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS routing_rules (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	condition JSONB NOT NULL,
	assignee VARCHAR(100),
	team VARCHAR(100),
	priority INTEGER DEFAULT 1,
	is_active BOOLEAN DEFAULT TRUE,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS document_assignments (
	id SERIAL PRIMARY KEY,
	doc_id UUID REFERENCES documents(id) ON DELETE CASCADE,
	user_id UUID REFERENCES users(id),
	assigned_by VARCHAR(100),
	status VARCHAR(50) DEFAULT 'assigned',
	priority INTEGER DEFAULT 1,
	due_date TIMESTAMP,
	completed_at TIMESTAMP,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_assignments_user_status
	ON document_assignments (user_id, status);
CREATE INDEX IF NOT EXISTS idx_rules_active_priority
	ON routing_rules (is_active, priority DESC, id ASC);
`

// Migrate creates the routing tables if they do not exist.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, Schema)
	return err
}
