package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"docflow/routing/internal/logging"
	"docflow/routing/internal/repository"
	"docflow/routing/pkg/models"
)

// assignedBy is the actor recorded on assignments this engine creates.
const assignedBy = "routing_engine"

// RouteRequest carries one classification result into a routing decision.
type RouteRequest struct {
	DocumentID string          `json:"document_id"`
	DocType    string          `json:"doc_type"`
	Confidence float64         `json:"confidence"`
	Entities   models.Entities `json:"entities"`
	RiskScore  float64         `json:"risk_score"`
	Priority   int             `json:"priority"`
}

// Decision is the outcome of a successful routing decision.
type Decision struct {
	Assignment *models.Assignment `json:"assignment"`
	Worker     *models.Worker     `json:"worker"`
	RuleName   string             `json:"rule_name"`
	Reason     string             `json:"routing_reason"`
}

// Engine orchestrates rule evaluation, assignee selection, and assignment
// persistence into one decision per document. Different documents may be
// routed concurrently; a single document is claimed at most once per
// lifecycle pass by the conditional create in the assignment store.
type Engine struct {
	rules       repository.RuleStore
	assignments repository.AssignmentStore
	selector    *Selector
	logger      *logging.Logger
	now         func() time.Time

	routedCounter  metric.Int64Counter
	noRouteCounter metric.Int64Counter
	failedCounter  metric.Int64Counter
}

// NewEngine creates a new Engine.
func NewEngine(rules repository.RuleStore, directory repository.DirectoryStore, assignments repository.AssignmentStore, logger *logging.Logger) *Engine {
	meter := otel.Meter("docflow/routing")
	routed, _ := meter.Int64Counter("routing.documents_routed")
	noRoute, _ := meter.Int64Counter("routing.documents_unroutable")
	failed, _ := meter.Int64Counter("routing.decisions_failed")

	return &Engine{
		rules:          rules,
		assignments:    assignments,
		selector:       NewSelector(directory),
		logger:         logger,
		now:            time.Now,
		routedCounter:  routed,
		noRouteCounter: noRoute,
		failedCounter:  failed,
	}
}

// Route makes one routing decision. It returns ErrNoRoute when no assignee
// is available, repository.ErrAlreadyRouted when the document has already
// been claimed, and a wrapped store error on transient failure; in every
// error case no assignment is created.
func (e *Engine) Route(ctx context.Context, req RouteRequest) (*Decision, error) {
	rules, err := e.rules.ListActive(ctx)
	if err != nil {
		e.failedCounter.Add(ctx, 1)
		return nil, fmt.Errorf("list active rules: %w", err)
	}

	docCtx := models.DocumentContext{
		DocType:    req.DocType,
		Confidence: req.Confidence,
		Priority:   req.Priority,
		RiskScore:  req.RiskScore,
		Entities:   req.Entities,
	}
	fields := docCtx.Fields()

	// First match wins; rules arrive ordered by priority desc, id asc.
	var matched *models.RoutingRule
	for _, rule := range rules {
		if EvaluateCondition(rule.Condition, fields) {
			matched = rule
			break
		}
	}
	if matched == nil {
		matched = defaultRule(req.DocType)
	}

	worker, err := e.selector.PickAssignee(ctx, matched, req.DocType)
	if err != nil {
		e.failedCounter.Add(ctx, 1)
		return nil, err
	}
	if worker == nil {
		e.logger.Warn("no available assignee for document %s (rule %q)", req.DocumentID, matched.Name)
		e.noRouteCounter.Add(ctx, 1)
		return nil, fmt.Errorf("document %s: %w", req.DocumentID, ErrNoRoute)
	}

	assignment := &models.Assignment{
		DocID:      req.DocumentID,
		WorkerID:   worker.ID,
		AssignedBy: assignedBy,
		Status:     models.AssignmentStatusAssigned,
		Priority:   req.Priority,
		DueDate:    DueDate(req.Priority, req.DocType, e.now()),
	}

	if err := e.assignments.CreateRouted(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrAlreadyRouted) {
			e.logger.Warn("document %s already routed, skipping", req.DocumentID)
			return nil, err
		}
		e.failedCounter.Add(ctx, 1)
		return nil, fmt.Errorf("persist assignment: %w", err)
	}

	e.routedCounter.Add(ctx, 1)
	e.logger.Info("document %s routed to %s (rule %q, due %s)",
		req.DocumentID, worker.Username, matched.Name, assignment.DueDate.Format(time.RFC3339))

	return &Decision{
		Assignment: assignment,
		Worker:     worker,
		RuleName:   matched.Name,
		Reason:     "Matched rule: " + matched.Name,
	}, nil
}

// defaultTeams is the built-in document-type to team mapping applied when
// no stored rule matches.
var defaultTeams = map[string]string{
	"contract":       "legal-team",
	"invoice":        "finance-team",
	"legal":          "legal-team",
	"financial":      "finance-team",
	"hr":             "hr-team",
	"technical":      "engineering-team",
	"report":         "management-team",
	"correspondence": "admin-team",
}

// defaultRule synthesizes a rule-shaped fallback for the document type.
// It has the same shape as a stored rule so the selector and everything
// downstream are oblivious to the distinction; it is never persisted.
func defaultRule(docType string) *models.RoutingRule {
	team, ok := defaultTeams[docType]
	if !ok {
		team = "admin-team"
	}
	return &models.RoutingRule{
		Name:        fmt.Sprintf("Default rule for %s", docType),
		Assignee:    team,
		Team:        team,
		Priority:    1,
		IsActive:    true,
		Synthesized: true,
	}
}
