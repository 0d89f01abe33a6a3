package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docflow/routing/pkg/models"
)

// PostgresDocumentStore is a PostgreSQL implementation of the DocumentStore
// interface.
type PostgresDocumentStore struct {
	db *pgxpool.Pool
}

// NewPostgresDocumentStore creates a new PostgresDocumentStore.
func NewPostgresDocumentStore(db *pgxpool.Pool) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db}
}

// Get retrieves a document by its ID.
func (s *PostgresDocumentStore) Get(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(ctx,
		"SELECT id, original_name, storage_path, COALESCE(doc_type, ''), COALESCE(confidence, 0), status, created_at, updated_at FROM documents WHERE id = $1",
		id,
	).Scan(&doc.ID, &doc.OriginalName, &doc.StoragePath, &doc.DocType, &doc.Confidence, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Create inserts a document record.
func (s *PostgresDocumentStore) Create(ctx context.Context, doc *models.Document) error {
	return s.db.QueryRow(ctx,
		"INSERT INTO documents (id, original_name, storage_path, doc_type, confidence, status) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at",
		doc.ID, doc.OriginalName, doc.StoragePath, doc.DocType, doc.Confidence, doc.Status,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
}

// SetStatus updates a document's lifecycle status.
func (s *PostgresDocumentStore) SetStatus(ctx context.Context, id string, status models.DocumentStatus) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
