package pipeline

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"

	"docflow/routing/internal/logging"
	"docflow/routing/internal/repository"
	"docflow/routing/internal/routing"
)

// Router makes one routing decision per classification result.
type Router interface {
	Route(ctx context.Context, req routing.RouteRequest) (*routing.Decision, error)
}

// Source supplies inbound messages with explicit commit.
type Source interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, msg kafka.Message) error
}

// Publisher sends routing outcomes downstream.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Outcome is the event published after a successful routing decision.
type Outcome struct {
	DocumentID    string `json:"document_id"`
	AssignmentID  int64  `json:"assignment_id"`
	AssignedTo    string `json:"assigned_to"`
	DocType       string `json:"doc_type"`
	Priority      int    `json:"priority"`
	RoutingReason string `json:"routing_reason"`
}

// Pipeline consumes classification results, routes each document, and
// publishes the outcome. One message is processed at a time; routing
// decisions for different documents may still overlap across instances.
type Pipeline struct {
	source    Source
	publisher Publisher
	router    Router
	documents repository.DocumentStore
	logger    *logging.Logger
}

// New creates a new Pipeline.
func New(source Source, publisher Publisher, router Router, documents repository.DocumentStore, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		source:    source,
		publisher: publisher,
		router:    router,
		documents: documents,
		logger:    logger,
	}
}

// Run consumes messages until the context is canceled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("routing pipeline started")
	for {
		msg, err := p.source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("routing pipeline stopped")
				return nil
			}
			p.logger.Error("fetch message: %v", err)
			continue
		}

		terminal := p.process(ctx, msg.Value)
		if !terminal {
			// Leave the offset uncommitted so the broker redelivers the
			// message; the document has not been marked routed.
			continue
		}
		if err := p.source.Commit(ctx, msg); err != nil {
			p.logger.Error("commit offset: %v", err)
		}
	}
}

// process handles one classification result. It reports whether the
// delivery is terminal: handled, unroutable, duplicate, or malformed.
// Only transient store failures are non-terminal.
func (p *Pipeline) process(ctx context.Context, payload []byte) bool {
	var req routing.RouteRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		p.logger.Error("malformed classification result, dropping: %v", err)
		return true
	}
	if req.DocumentID == "" {
		p.logger.Error("classification result without document_id, dropping")
		return true
	}
	if req.Priority == 0 {
		req.Priority = 1
	}

	if _, err := p.documents.Get(ctx, req.DocumentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			p.logger.Error("document %s not found, dropping", req.DocumentID)
			return true
		}
		p.logger.Error("load document %s: %v", req.DocumentID, err)
		return false
	}

	decision, err := p.router.Route(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrNoRoute):
			// The document stays pre-routed for manual resolution or a
			// later retry; this delivery is done.
			p.logger.Warn("no route for document %s", req.DocumentID)
			return true
		case errors.Is(err, repository.ErrAlreadyRouted):
			p.logger.Warn("duplicate delivery for document %s ignored", req.DocumentID)
			return true
		default:
			p.logger.Error("route document %s: %v", req.DocumentID, err)
			return false
		}
	}

	outcome := Outcome{
		DocumentID:    req.DocumentID,
		AssignmentID:  decision.Assignment.ID,
		AssignedTo:    decision.Worker.Username,
		DocType:       req.DocType,
		Priority:      req.Priority,
		RoutingReason: decision.Reason,
	}
	if err := p.publisher.Publish(ctx, req.DocumentID, outcome); err != nil {
		// The assignment is durable; the notification is best effort.
		p.logger.Warn("publish outcome for document %s: %v", req.DocumentID, err)
	}

	return true
}
