package routing

import (
	"context"
	"fmt"
	"math"

	"docflow/routing/internal/repository"
	"docflow/routing/pkg/models"
)

// Aggregator computes read-only routing statistics over the assignment
// set. Safe to run concurrently with routing decisions.
type Aggregator struct {
	assignments repository.AssignmentStore
	directory   repository.DirectoryStore
}

// NewAggregator creates a new Aggregator.
func NewAggregator(assignments repository.AssignmentStore, directory repository.DirectoryStore) *Aggregator {
	return &Aggregator{assignments: assignments, directory: directory}
}

// Stats returns assignment totals, the per-status distribution, the mean
// completion time in hours over completed assignments (0 when none exist),
// and per-worker active counts.
func (a *Aggregator) Stats(ctx context.Context) (*models.RoutingStats, error) {
	total, err := a.assignments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count assignments: %w", err)
	}

	distribution := make(map[models.AssignmentStatus]int64, 4)
	for _, status := range []models.AssignmentStatus{
		models.AssignmentStatusAssigned,
		models.AssignmentStatusInProgress,
		models.AssignmentStatusCompleted,
		models.AssignmentStatusOverdue,
	} {
		count, err := a.assignments.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("count %s assignments: %w", status, err)
		}
		distribution[status] = count
	}

	completed, err := a.assignments.ListCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("list completed assignments: %w", err)
	}
	avgHours := 0.0
	if len(completed) > 0 {
		var totalSeconds float64
		for _, assignment := range completed {
			totalSeconds += assignment.CompletedAt.Sub(assignment.CreatedAt).Seconds()
		}
		avgHours = totalSeconds / float64(len(completed)) / 3600
		avgHours = math.Round(avgHours*100) / 100
	}

	workloads, err := a.directory.ActiveCountsByWorker(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect worker workloads: %w", err)
	}

	return &models.RoutingStats{
		TotalAssignments:       total,
		StatusDistribution:     distribution,
		AvgCompletionTimeHours: avgHours,
		WorkerWorkloads:        workloads,
	}, nil
}
