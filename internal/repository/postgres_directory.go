package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docflow/routing/pkg/models"
)

// PostgresDirectoryStore is a PostgreSQL implementation of the
// DirectoryStore interface.
type PostgresDirectoryStore struct {
	db *pgxpool.Pool
}

// NewPostgresDirectoryStore creates a new PostgresDirectoryStore.
func NewPostgresDirectoryStore(db *pgxpool.Pool) *PostgresDirectoryStore {
	return &PostgresDirectoryStore{db: db}
}

const workerColumns = "id, username, email, COALESCE(full_name, ''), COALESCE(role, 'user'), COALESCE(department, ''), COALESCE(skills, '[]'::jsonb), workload_capacity, is_active, created_at"

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var w models.Worker
	err := row.Scan(&w.ID, &w.Username, &w.Email, &w.FullName, &w.Role, &w.Department, &w.Skills, &w.WorkloadCapacity, &w.IsActive, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// ListActiveWorkers returns active workers ordered by username, optionally
// filtered by department. Ordering keeps the selector's first-seen
// tie-break stable across pool construction paths.
func (s *PostgresDirectoryStore) ListActiveWorkers(ctx context.Context, department string) ([]*models.Worker, error) {
	query := "SELECT " + workerColumns + " FROM users WHERE is_active = TRUE"
	args := []any{}
	if department != "" {
		query += " AND department = $1"
		args = append(args, department)
	}
	query += " ORDER BY username ASC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []*models.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// GetWorkerByUsername retrieves a worker by username.
func (s *PostgresDirectoryStore) GetWorkerByUsername(ctx context.Context, username string) (*models.Worker, error) {
	return scanWorker(s.db.QueryRow(ctx, "SELECT "+workerColumns+" FROM users WHERE username = $1", username))
}

// CountActiveAssignments counts assigned and in_progress assignments for
// one worker.
func (s *PostgresDirectoryStore) CountActiveAssignments(ctx context.Context, workerID string) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM document_assignments WHERE user_id = $1 AND status = ANY($2)",
		workerID, []string{string(models.AssignmentStatusAssigned), string(models.AssignmentStatusInProgress)},
	).Scan(&count)
	return count, err
}

// ActiveCountsByWorker returns per-worker active assignment counts for all
// active workers, zero counts included.
func (s *PostgresDirectoryStore) ActiveCountsByWorker(ctx context.Context) ([]models.WorkerWorkload, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.username, COUNT(a.id)
		FROM users u
		LEFT JOIN document_assignments a
			ON a.user_id = u.id AND a.status IN ('assigned', 'in_progress')
		WHERE u.is_active = TRUE
		GROUP BY u.id, u.username
		ORDER BY u.username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workloads []models.WorkerWorkload
	for rows.Next() {
		var w models.WorkerWorkload
		if err := rows.Scan(&w.Username, &w.ActiveAssignments); err != nil {
			return nil, err
		}
		workloads = append(workloads, w)
	}
	return workloads, rows.Err()
}
