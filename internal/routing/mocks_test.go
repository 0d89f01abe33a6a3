package routing

import (
	"context"

	"docflow/routing/internal/repository"
	"docflow/routing/pkg/models"
)

type MockRuleStore struct {
	ListActiveFunc func(ctx context.Context) ([]*models.RoutingRule, error)
}

func (m *MockRuleStore) ListActive(ctx context.Context) ([]*models.RoutingRule, error) {
	return m.ListActiveFunc(ctx)
}

func (m *MockRuleStore) List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.RoutingRule, error) {
	return m.ListActiveFunc(ctx)
}

func (m *MockRuleStore) Get(ctx context.Context, id int64) (*models.RoutingRule, error) {
	return nil, repository.ErrNotFound
}

func (m *MockRuleStore) Create(ctx context.Context, rule *models.RoutingRule) error { return nil }

func (m *MockRuleStore) Update(ctx context.Context, rule *models.RoutingRule) error { return nil }

func (m *MockRuleStore) Delete(ctx context.Context, id int64) error { return nil }

type MockDirectoryStore struct {
	ListActiveWorkersFunc      func(ctx context.Context, department string) ([]*models.Worker, error)
	GetWorkerByUsernameFunc    func(ctx context.Context, username string) (*models.Worker, error)
	CountActiveAssignmentsFunc func(ctx context.Context, workerID string) (int64, error)
	ActiveCountsByWorkerFunc   func(ctx context.Context) ([]models.WorkerWorkload, error)
}

func (m *MockDirectoryStore) ListActiveWorkers(ctx context.Context, department string) ([]*models.Worker, error) {
	return m.ListActiveWorkersFunc(ctx, department)
}

func (m *MockDirectoryStore) GetWorkerByUsername(ctx context.Context, username string) (*models.Worker, error) {
	if m.GetWorkerByUsernameFunc != nil {
		return m.GetWorkerByUsernameFunc(ctx, username)
	}
	return nil, repository.ErrNotFound
}

func (m *MockDirectoryStore) CountActiveAssignments(ctx context.Context, workerID string) (int64, error) {
	if m.CountActiveAssignmentsFunc != nil {
		return m.CountActiveAssignmentsFunc(ctx, workerID)
	}
	return 0, nil
}

func (m *MockDirectoryStore) ActiveCountsByWorker(ctx context.Context) ([]models.WorkerWorkload, error) {
	if m.ActiveCountsByWorkerFunc != nil {
		return m.ActiveCountsByWorkerFunc(ctx)
	}
	return nil, nil
}

type MockAssignmentStore struct {
	CreateRoutedFunc  func(ctx context.Context, assignment *models.Assignment) error
	ListFunc          func(ctx context.Context, status models.AssignmentStatus, limit, offset int) ([]*models.Assignment, error)
	CountFunc         func(ctx context.Context) (int64, error)
	CountByStatusFunc func(ctx context.Context, status models.AssignmentStatus) (int64, error)
	ListCompletedFunc func(ctx context.Context) ([]*models.Assignment, error)
}

func (m *MockAssignmentStore) CreateRouted(ctx context.Context, assignment *models.Assignment) error {
	if m.CreateRoutedFunc != nil {
		return m.CreateRoutedFunc(ctx, assignment)
	}
	assignment.ID = 1
	return nil
}

func (m *MockAssignmentStore) List(ctx context.Context, status models.AssignmentStatus, limit, offset int) ([]*models.Assignment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, limit, offset)
	}
	return nil, nil
}

func (m *MockAssignmentStore) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockAssignmentStore) CountByStatus(ctx context.Context, status models.AssignmentStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *MockAssignmentStore) ListCompleted(ctx context.Context) ([]*models.Assignment, error) {
	if m.ListCompletedFunc != nil {
		return m.ListCompletedFunc(ctx)
	}
	return nil, nil
}
