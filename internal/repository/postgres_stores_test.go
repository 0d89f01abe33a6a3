package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"docflow/routing/pkg/models"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	if err := Migrate(ctx, pool); err != nil {
		t.Fatal(err)
	}
	return pool
}

func insertWorker(t *testing.T, pool *pgxpool.Pool, username, department string, skills []string, active bool) string {
	t.Helper()
	id := uuid.New().String()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, username, email, department, skills, workload_capacity, is_active) VALUES ($1, $2, $3, $4, $5, 10, $6)",
		id, username, username+"@test.local", department, skills, active)
	require.NoError(t, err)
	return id
}

func insertDocument(t *testing.T, pool *pgxpool.Pool, status models.DocumentStatus) string {
	t.Helper()
	id := uuid.New().String()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO documents (id, original_name, storage_path, doc_type, status) VALUES ($1, 'doc.pdf', '/storage/doc.pdf', 'contract', $2)",
		id, status)
	require.NoError(t, err)
	return id
}

func TestPostgresStores(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	pool := startPostgres(t)

	ruleStore := NewPostgresRuleStore(pool)
	directoryStore := NewPostgresDirectoryStore(pool)
	assignmentStore := NewPostgresAssignmentStore(pool)
	documentStore := NewPostgresDocumentStore(pool)

	t.Run("rule ordering and round trip", func(t *testing.T) {
		lowFirst := &models.RoutingRule{Name: "low", Condition: models.Condition{"doc_type": "report"}, Team: "management-team", Priority: 3, IsActive: true}
		highA := &models.RoutingRule{Name: "high-a", Condition: models.Condition{"risk_score": map[string]any{"gt": 0.7}}, Team: "legal-team", Priority: 5, IsActive: true}
		highB := &models.RoutingRule{Name: "high-b", Condition: models.Condition{"doc_type": "contract"}, Team: "legal-team", Priority: 5, IsActive: true}
		inactive := &models.RoutingRule{Name: "disabled", Condition: models.Condition{}, Team: "admin-team", Priority: 9, IsActive: false}

		for _, r := range []*models.RoutingRule{lowFirst, highA, highB, inactive} {
			require.NoError(t, ruleStore.Create(ctx, r))
		}

		active, err := ruleStore.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 3)
		// Priority descending, equal priorities broken by id ascending.
		assert.Equal(t, "high-a", active[0].Name)
		assert.Equal(t, "high-b", active[1].Name)
		assert.Equal(t, "low", active[2].Name)

		got, err := ruleStore.Get(ctx, highA.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Condition{"risk_score": map[string]any{"gt": 0.7}}, got.Condition)

		got.Priority = 7
		require.NoError(t, ruleStore.Update(ctx, got))
		require.NoError(t, ruleStore.Delete(ctx, lowFirst.ID))
		assert.ErrorIs(t, ruleStore.Delete(ctx, lowFirst.ID), ErrNotFound)
	})

	t.Run("directory listing and skills", func(t *testing.T) {
		insertWorker(t, pool, "alice", "legal", []string{"contract"}, true)
		insertWorker(t, pool, "bob", "legal", nil, true)
		insertWorker(t, pool, "carol", "finance", nil, true)
		insertWorker(t, pool, "dora", "legal", nil, false)

		legal, err := directoryStore.ListActiveWorkers(ctx, "legal")
		require.NoError(t, err)
		require.Len(t, legal, 2)
		assert.Equal(t, "alice", legal[0].Username)
		assert.Equal(t, []string{"contract"}, legal[0].Skills)
		assert.Empty(t, legal[1].Skills)

		all, err := directoryStore.ListActiveWorkers(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		_, err = directoryStore.GetWorkerByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("routed create is conditional on document state", func(t *testing.T) {
		workerID := insertWorker(t, pool, "erin", "legal", nil, true)
		docID := insertDocument(t, pool, models.DocumentStatusClassified)

		assignment := &models.Assignment{
			DocID:      docID,
			WorkerID:   workerID,
			AssignedBy: "routing_engine",
			Status:     models.AssignmentStatusAssigned,
			Priority:   4,
			DueDate:    time.Now().Add(8 * time.Hour),
		}
		require.NoError(t, assignmentStore.CreateRouted(ctx, assignment))
		assert.NotZero(t, assignment.ID)

		doc, err := documentStore.Get(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentStatusRouted, doc.Status)

		// A duplicate decision for the same document writes nothing.
		dup := &models.Assignment{DocID: docID, WorkerID: workerID, AssignedBy: "routing_engine", Status: models.AssignmentStatusAssigned, Priority: 4, DueDate: time.Now()}
		assert.ErrorIs(t, assignmentStore.CreateRouted(ctx, dup), ErrAlreadyRouted)

		count, err := directoryStore.CountActiveAssignments(ctx, workerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("assignment queries and workload counts", func(t *testing.T) {
		workerID := insertWorker(t, pool, "frank", "finance", nil, true)
		docID := insertDocument(t, pool, models.DocumentStatusClassified)

		assignment := &models.Assignment{DocID: docID, WorkerID: workerID, AssignedBy: "routing_engine", Status: models.AssignmentStatusAssigned, Priority: 2, DueDate: time.Now().Add(72 * time.Hour)}
		require.NoError(t, assignmentStore.CreateRouted(ctx, assignment))

		_, err := pool.Exec(ctx,
			"UPDATE document_assignments SET status = 'completed', completed_at = created_at + INTERVAL '3 hours' WHERE id = $1",
			assignment.ID)
		require.NoError(t, err)

		completed, err := assignmentStore.ListCompleted(ctx)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		require.NotNil(t, completed[0].CompletedAt)

		n, err := assignmentStore.CountByStatus(ctx, models.AssignmentStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		byStatus, err := assignmentStore.List(ctx, models.AssignmentStatusAssigned, 10, 0)
		require.NoError(t, err)
		for _, a := range byStatus {
			assert.Equal(t, models.AssignmentStatusAssigned, a.Status)
		}

		workloads, err := directoryStore.ActiveCountsByWorker(ctx)
		require.NoError(t, err)
		counts := map[string]int64{}
		for _, w := range workloads {
			counts[w.Username] = w.ActiveAssignments
		}
		// frank's only assignment is completed; he still appears with zero.
		assert.Equal(t, int64(0), counts["frank"])
		assert.Equal(t, int64(1), counts["erin"])
	})

	t.Run("document status transitions", func(t *testing.T) {
		docID := insertDocument(t, pool, models.DocumentStatusPending)
		require.NoError(t, documentStore.SetStatus(ctx, docID, models.DocumentStatusClassified))
		doc, err := documentStore.Get(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentStatusClassified, doc.Status)

		assert.ErrorIs(t, documentStore.SetStatus(ctx, uuid.New().String(), models.DocumentStatusRouted), ErrNotFound)
	})
}
