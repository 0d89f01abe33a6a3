package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"docflow/routing/internal/config"
	"docflow/routing/internal/logging"
	"docflow/routing/internal/repository"
	"docflow/routing/pkg/models"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create tables and seed rules, workers, and sample documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed()
		},
	}
}

func seed() error {
	ctx := context.Background()
	logger := logging.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		return err
	}

	pool, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to connect to DB: %v", err)
		return err
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Error("Migration failed: %v", err)
		return err
	}
	logger.Info("Schema ready")

	ruleStore := repository.NewPostgresRuleStore(pool)
	directoryStore := repository.NewPostgresDirectoryStore(pool)
	documentStore := repository.NewPostgresDocumentStore(pool)

	// Workers, keyed by username to keep seeding idempotent.
	workers := []*models.Worker{
		{Username: "ljenkins", Email: "ljenkins@docflow.local", FullName: "Laura Jenkins", Department: "legal", Skills: []string{"contract", "legal"}, WorkloadCapacity: 10},
		{Username: "mpatel", Email: "mpatel@docflow.local", FullName: "Meera Patel", Department: "legal", Skills: []string{"legal"}, WorkloadCapacity: 8},
		{Username: "tdawson", Email: "tdawson@docflow.local", FullName: "Tom Dawson", Department: "finance", Skills: []string{"invoice", "financial"}, WorkloadCapacity: 12},
		{Username: "kwong", Email: "kwong@docflow.local", FullName: "Katherine Wong", Department: "engineering", Skills: []string{"technical"}, WorkloadCapacity: 10},
		{Username: "rsilva", Email: "rsilva@docflow.local", FullName: "Rafael Silva", Department: "hr", Skills: []string{"hr"}, WorkloadCapacity: 10},
		{Username: "amorgan", Email: "amorgan@docflow.local", FullName: "Alex Morgan", Department: "admin", WorkloadCapacity: 15},
	}
	for _, w := range workers {
		if _, err := directoryStore.GetWorkerByUsername(ctx, w.Username); err == nil {
			continue
		}
		w.ID = uuid.New().String()
		if _, err := pool.Exec(ctx,
			"INSERT INTO users (id, username, email, full_name, department, skills, workload_capacity, is_active) VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)",
			w.ID, w.Username, w.Email, w.FullName, w.Department, w.Skills, w.WorkloadCapacity,
		); err != nil {
			logger.Error("Failed to seed worker %s: %v", w.Username, err)
			return err
		}
		logger.Info("Seeded worker %s (%s)", w.Username, w.Department)
	}

	existing, err := ruleStore.List(ctx, nil, 0, 0)
	if err != nil {
		logger.Error("Failed to list rules: %v", err)
		return err
	}
	if len(existing) == 0 {
		rules := []*models.RoutingRule{
			{
				Name:      "High risk documents to legal",
				Condition: models.Condition{"risk_score": map[string]any{"gt": 0.7}},
				Team:      "legal-team",
				Priority:  10,
				IsActive:  true,
			},
			{
				Name:      "Urgent contracts",
				Condition: models.Condition{"doc_type": "contract", "priority": map[string]any{"gte": 4}},
				Team:      "legal-team",
				Priority:  8,
				IsActive:  true,
			},
			{
				Name:      "Large invoices to finance",
				Condition: models.Condition{"doc_type": "invoice", "amounts": map[string]any{"contains": "$"}},
				Team:      "finance-team",
				Priority:  5,
				IsActive:  true,
			},
			{
				Name:      "Low confidence to admin review",
				Condition: models.Condition{"confidence": map[string]any{"lt": 0.5}},
				Team:      "admin-team",
				Priority:  3,
				IsActive:  true,
			},
		}
		for _, rule := range rules {
			if err := ruleStore.Create(ctx, rule); err != nil {
				logger.Error("Failed to seed rule %q: %v", rule.Name, err)
				return err
			}
			logger.Info("Seeded rule %q (priority %d)", rule.Name, rule.Priority)
		}
	} else {
		logger.Info("Found %d existing rules, skipping rule seed", len(existing))
	}

	// A couple of classified documents, ready to be routed by hand-published
	// classification events.
	docs := []*models.Document{
		{ID: uuid.New().String(), OriginalName: "msa-acme-2026.pdf", StoragePath: "/storage/msa-acme-2026.pdf", DocType: "contract", Confidence: 0.91, Status: models.DocumentStatusClassified},
		{ID: uuid.New().String(), OriginalName: "invoice-7731.pdf", StoragePath: "/storage/invoice-7731.pdf", DocType: "invoice", Confidence: 0.88, Status: models.DocumentStatusClassified},
	}
	for _, doc := range docs {
		if err := documentStore.Create(ctx, doc); err != nil {
			logger.Error("Failed to seed document %s: %v", doc.OriginalName, err)
			return err
		}
		logger.Info("Seeded document %s (%s)", doc.OriginalName, doc.ID)
	}

	logger.Info("Seed complete")
	return nil
}
