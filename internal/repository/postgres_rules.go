package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docflow/routing/pkg/models"
)

// PostgresRuleStore is a PostgreSQL implementation of the RuleStore interface.
type PostgresRuleStore struct {
	db *pgxpool.Pool
}

// NewPostgresRuleStore creates a new PostgresRuleStore.
func NewPostgresRuleStore(db *pgxpool.Pool) *PostgresRuleStore {
	return &PostgresRuleStore{db: db}
}

const ruleColumns = "id, name, condition, COALESCE(assignee, ''), COALESCE(team, ''), priority, is_active, created_at"

func scanRule(row pgx.Row) (*models.RoutingRule, error) {
	var rule models.RoutingRule
	err := row.Scan(&rule.ID, &rule.Name, &rule.Condition, &rule.Assignee, &rule.Team, &rule.Priority, &rule.IsActive, &rule.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func collectRules(rows pgx.Rows) ([]*models.RoutingRule, error) {
	defer rows.Close()
	var rules []*models.RoutingRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ListActive returns active rules ordered by priority descending, id ascending.
func (s *PostgresRuleStore) ListActive(ctx context.Context) ([]*models.RoutingRule, error) {
	rows, err := s.db.Query(ctx, "SELECT "+ruleColumns+" FROM routing_rules WHERE is_active = TRUE ORDER BY priority DESC, id ASC")
	if err != nil {
		return nil, err
	}
	return collectRules(rows)
}

// List returns rules with optional active filtering and paging.
func (s *PostgresRuleStore) List(ctx context.Context, isActive *bool, limit, offset int) ([]*models.RoutingRule, error) {
	query := "SELECT " + ruleColumns + " FROM routing_rules"
	args := []any{}
	if isActive != nil {
		query += " WHERE is_active = $1"
		args = append(args, *isActive)
	}
	query += " ORDER BY priority DESC, id ASC"
	if limit > 0 {
		args = append(args, limit, offset)
		if isActive != nil {
			query += " LIMIT $2 OFFSET $3"
		} else {
			query += " LIMIT $1 OFFSET $2"
		}
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectRules(rows)
}

// Get retrieves a rule by its ID.
func (s *PostgresRuleStore) Get(ctx context.Context, id int64) (*models.RoutingRule, error) {
	return scanRule(s.db.QueryRow(ctx, "SELECT "+ruleColumns+" FROM routing_rules WHERE id = $1", id))
}

// Create inserts a rule and fills in its generated ID and creation time.
func (s *PostgresRuleStore) Create(ctx context.Context, rule *models.RoutingRule) error {
	return s.db.QueryRow(ctx,
		"INSERT INTO routing_rules (name, condition, assignee, team, priority, is_active) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at",
		rule.Name, rule.Condition, rule.Assignee, rule.Team, rule.Priority, rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt)
}

// Update rewrites an existing rule.
func (s *PostgresRuleStore) Update(ctx context.Context, rule *models.RoutingRule) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE routing_rules SET name = $1, condition = $2, assignee = $3, team = $4, priority = $5, is_active = $6 WHERE id = $7",
		rule.Name, rule.Condition, rule.Assignee, rule.Team, rule.Priority, rule.IsActive, rule.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a rule by its ID.
func (s *PostgresRuleStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM routing_rules WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
