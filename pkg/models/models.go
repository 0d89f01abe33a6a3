// Package models defines the domain models for the document routing service
package models

import (
	"time"
)

// DocumentStatus represents where a document is in its processing lifecycle
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusClassified DocumentStatus = "classified"
	DocumentStatusRouted     DocumentStatus = "routed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// AssignmentStatus represents the lifecycle state of an assignment
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "assigned"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusOverdue    AssignmentStatus = "overdue"
)

// ActiveAssignmentStatuses are the statuses that count toward a worker's
// current workload.
var ActiveAssignmentStatuses = []AssignmentStatus{
	AssignmentStatusAssigned,
	AssignmentStatusInProgress,
}

// Document represents a document known to the platform. The routing engine
// only reads identity and status; the remaining columns belong to the
// ingestion and classification stages.
type Document struct {
	ID           string         `json:"id" db:"id"`
	OriginalName string         `json:"original_name" db:"original_name"`
	StoragePath  string         `json:"storage_path" db:"storage_path"`
	DocType      string         `json:"doc_type" db:"doc_type"`
	Confidence   float64        `json:"confidence" db:"confidence"`
	Status       DocumentStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Worker represents a human assignee in the directory.
type Worker struct {
	ID               string    `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	Email            string    `json:"email" db:"email"`
	FullName         string    `json:"full_name" db:"full_name"`
	Role             string    `json:"role" db:"role"`
	Department       string    `json:"department" db:"department"`
	Skills           []string  `json:"skills" db:"skills"`
	WorkloadCapacity int       `json:"workload_capacity" db:"workload_capacity"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Condition is a routing rule condition: a mapping from document context
// field name to an expected constraint. Constraint values may be strings,
// numbers, or nested objects carrying gt/lt/gte/lte/contains operators.
// Stored as JSONB.
type Condition map[string]any

// RoutingRule is a named, prioritized condition-to-assignee policy. Rules
// with a higher Priority are evaluated first; among equal priorities the
// lower ID wins. Synthesized marks the built-in default-mapping fallback,
// which has the same shape as a stored rule but is never persisted.
type RoutingRule struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Condition   Condition `json:"condition" db:"condition"`
	Assignee    string    `json:"assignee,omitempty" db:"assignee"`
	Team        string    `json:"team,omitempty" db:"team"`
	Priority    int       `json:"priority" db:"priority"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	Synthesized bool      `json:"-" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Assignment records the durable outcome of one routing decision. The
// routing engine only ever creates assignments in status "assigned";
// later transitions are driven by worker actions and the deadline monitor.
type Assignment struct {
	ID          int64            `json:"id" db:"id"`
	DocID       string           `json:"doc_id" db:"doc_id"`
	WorkerID    string           `json:"worker_id" db:"user_id"`
	AssignedBy  string           `json:"assigned_by" db:"assigned_by"`
	Status      AssignmentStatus `json:"status" db:"status"`
	Priority    int              `json:"priority" db:"priority"`
	DueDate     time.Time        `json:"due_date" db:"due_date"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// RoutingStats is the read-only aggregate over the assignment set.
type RoutingStats struct {
	TotalAssignments       int64                      `json:"total_assignments"`
	StatusDistribution     map[AssignmentStatus]int64 `json:"status_distribution"`
	AvgCompletionTimeHours float64                    `json:"avg_completion_time_hours"`
	WorkerWorkloads        []WorkerWorkload           `json:"user_workloads"`
}

// WorkerWorkload is one row of the per-worker active assignment counts.
type WorkerWorkload struct {
	Username          string `json:"username"`
	ActiveAssignments int64  `json:"active_assignments"`
}
