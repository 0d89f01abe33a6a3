package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docflow/routing/pkg/models"
)

// PostgresAssignmentStore is a PostgreSQL implementation of the
// AssignmentStore interface.
type PostgresAssignmentStore struct {
	db *pgxpool.Pool
}

// NewPostgresAssignmentStore creates a new PostgresAssignmentStore.
func NewPostgresAssignmentStore(db *pgxpool.Pool) *PostgresAssignmentStore {
	return &PostgresAssignmentStore{db: db}
}

const assignmentColumns = "id, doc_id, user_id, assigned_by, status, priority, due_date, completed_at, created_at"

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(&a.ID, &a.DocID, &a.WorkerID, &a.AssignedBy, &a.Status, &a.Priority, &a.DueDate, &a.CompletedAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateRouted claims the document and records the assignment in one
// transaction. The conditional status update is the idempotency guard: a
// duplicate delivery finds the document already routed and writes nothing.
func (s *PostgresAssignmentStore) CreateRouted(ctx context.Context, assignment *models.Assignment) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin routing transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		models.DocumentStatusRouted, assignment.DocID, models.DocumentStatusClassified,
	)
	if err != nil {
		return fmt.Errorf("claim document %s: %w", assignment.DocID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyRouted
	}

	err = tx.QueryRow(ctx,
		"INSERT INTO document_assignments (doc_id, user_id, assigned_by, status, priority, due_date) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at",
		assignment.DocID, assignment.WorkerID, assignment.AssignedBy, assignment.Status, assignment.Priority, assignment.DueDate,
	).Scan(&assignment.ID, &assignment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert assignment for document %s: %w", assignment.DocID, err)
	}

	return tx.Commit(ctx)
}

// List returns assignments, optionally filtered by status, newest first.
func (s *PostgresAssignmentStore) List(ctx context.Context, status models.AssignmentStatus, limit, offset int) ([]*models.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM document_assignments"
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		args = append(args, limit, offset)
		if status != "" {
			query += " LIMIT $2 OFFSET $3"
		} else {
			query += " LIMIT $1 OFFSET $2"
		}
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// Count returns the total number of assignments.
func (s *PostgresAssignmentStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM document_assignments").Scan(&count)
	return count, err
}

// CountByStatus returns the number of assignments in one status.
func (s *PostgresAssignmentStore) CountByStatus(ctx context.Context, status models.AssignmentStatus) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM document_assignments WHERE status = $1", status).Scan(&count)
	return count, err
}

// ListCompleted returns completed assignments that carry a completion
// timestamp.
func (s *PostgresAssignmentStore) ListCompleted(ctx context.Context) ([]*models.Assignment, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+assignmentColumns+" FROM document_assignments WHERE status = $1 AND completed_at IS NOT NULL",
		models.AssignmentStatusCompleted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
