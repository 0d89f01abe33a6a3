package repository

import (
	"context"
	"errors"

	"docflow/routing/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyRouted is returned by CreateRouted when the document has
// already left the classified state, meaning another routing decision
// (or a duplicate delivery) claimed it first.
var ErrAlreadyRouted = errors.New("document already routed")

// RuleStore provides access to routing rules. The routing engine only
// reads; the CRUD methods serve the policy administration API.
type RuleStore interface {
	// ListActive returns active rules ordered by priority descending,
	// then by id ascending as a deterministic tie-break.
	ListActive(ctx context.Context) ([]*models.RoutingRule, error)
	List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.RoutingRule, error)
	Get(ctx context.Context, id int64) (*models.RoutingRule, error)
	Create(ctx context.Context, rule *models.RoutingRule) error
	Update(ctx context.Context, rule *models.RoutingRule) error
	Delete(ctx context.Context, id int64) error
}

// DirectoryStore provides access to worker records and their current
// workload counts.
type DirectoryStore interface {
	// ListActiveWorkers returns active workers, optionally filtered by
	// department (empty string means all), ordered by username.
	ListActiveWorkers(ctx context.Context, department string) ([]*models.Worker, error)
	GetWorkerByUsername(ctx context.Context, username string) (*models.Worker, error)
	// CountActiveAssignments counts assignments in the assigned or
	// in_progress state for one worker.
	CountActiveAssignments(ctx context.Context, workerID string) (int64, error)
	// ActiveCountsByWorker returns the active assignment count for every
	// active worker, including workers with zero assignments.
	ActiveCountsByWorker(ctx context.Context) ([]models.WorkerWorkload, error)
}

// AssignmentStore persists and reads assignment records.
type AssignmentStore interface {
	// CreateRouted atomically moves the referenced document from
	// classified to routed and inserts the assignment. If the document is
	// not in the classified state, nothing is written and ErrAlreadyRouted
	// is returned.
	CreateRouted(ctx context.Context, assignment *models.Assignment) error
	List(ctx context.Context, status models.AssignmentStatus, limit, offset int) ([]*models.Assignment, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.AssignmentStatus) (int64, error)
	// ListCompleted returns completed assignments that carry a completion
	// timestamp.
	ListCompleted(ctx context.Context) ([]*models.Assignment, error)
}

// DocumentStore provides the document reads the pipeline needs before
// routing, plus the writes used by seeding.
type DocumentStore interface {
	Get(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	SetStatus(ctx context.Context, id string, status models.DocumentStatus) error
}
