package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docflow/routing/internal/repository"
	"docflow/routing/pkg/models"
)

// skillAdjustment is subtracted from a worker's workload ratio when their
// declared skills include the document type.
const skillAdjustment = -0.2

// Selector picks the best available worker for a resolved rule. Workload
// counts are snapshot reads: two concurrent decisions can observe the same
// low count and pick the same worker. Selection balances load, it does not
// enforce admission.
type Selector struct {
	directory repository.DirectoryStore
}

// NewSelector creates a new Selector.
func NewSelector(directory repository.DirectoryStore) *Selector {
	return &Selector{directory: directory}
}

// PickAssignee returns the active worker with the lowest effective load in
// the rule's candidate pool, or nil if the pool is empty. Ties resolve to
// the candidate encountered first in pool order.
func (s *Selector) PickAssignee(ctx context.Context, rule *models.RoutingRule, docType string) (*models.Worker, error) {
	candidates, err := s.resolveCandidates(ctx, rule)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var best *models.Worker
	lowest := 0.0
	for _, worker := range candidates {
		count, err := s.directory.CountActiveAssignments(ctx, worker.ID)
		if err != nil {
			return nil, fmt.Errorf("count active assignments for %s: %w", worker.Username, err)
		}

		capacity := worker.WorkloadCapacity
		if capacity < 1 {
			capacity = 1
		}
		load := float64(count) / float64(capacity)
		if hasSkill(worker.Skills, docType) {
			load += skillAdjustment
		}

		if best == nil || load < lowest {
			best = worker
			lowest = load
		}
	}

	return best, nil
}

// resolveCandidates builds the candidate pool: a directly named active
// worker, else the rule's team, else every active worker. The pool only
// widens; an empty team never blocks routing.
func (s *Selector) resolveCandidates(ctx context.Context, rule *models.RoutingRule) ([]*models.Worker, error) {
	var candidates []*models.Worker

	if rule.Assignee != "" {
		worker, err := s.directory.GetWorkerByUsername(ctx, rule.Assignee)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("look up assignee %s: %w", rule.Assignee, err)
		}
		if worker != nil && worker.IsActive {
			return []*models.Worker{worker}, nil
		}
		// The assignee may name a team rather than a worker.
		candidates, err = s.directory.ListActiveWorkers(ctx, teamDepartment(rule.Assignee))
		if err != nil {
			return nil, fmt.Errorf("list workers for %s: %w", rule.Assignee, err)
		}
	}

	if len(candidates) == 0 && rule.Team != "" {
		var err error
		candidates, err = s.directory.ListActiveWorkers(ctx, teamDepartment(rule.Team))
		if err != nil {
			return nil, fmt.Errorf("list workers for team %s: %w", rule.Team, err)
		}
	}

	if len(candidates) == 0 {
		var err error
		candidates, err = s.directory.ListActiveWorkers(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("list active workers: %w", err)
		}
	}

	return candidates, nil
}

// teamDepartment maps a team identifier like "legal-team" to the
// department name workers are filed under.
func teamDepartment(team string) string {
	return strings.TrimSuffix(team, "-team")
}

func hasSkill(skills []string, docType string) bool {
	if docType == "" {
		return false
	}
	for _, skill := range skills {
		if skill == docType {
			return true
		}
	}
	return false
}
