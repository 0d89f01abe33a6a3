// Package api contains the HTTP handlers for the routing service REST API
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"docflow/routing/internal/repository"
	"docflow/routing/internal/routing"
)

// Server holds the dependencies for the API server.
type Server struct {
	Rules       repository.RuleStore
	Assignments repository.AssignmentStore
	Stats       *routing.Aggregator
}

// NewServer creates a new Server.
func NewServer(rules repository.RuleStore, assignments repository.AssignmentStore, stats *routing.Aggregator) *Server {
	return &Server{Rules: rules, Assignments: assignments, Stats: stats}
}

// RegisterHandlers mounts the routing endpoints on the given group.
func RegisterHandlers(g *echo.Group, s *Server) {
	g.GET("/routing/rules", s.ListRules)
	g.POST("/routing/rules", s.CreateRule)
	g.GET("/routing/rules/:id", s.GetRule)
	g.PUT("/routing/rules/:id", s.UpdateRule)
	g.DELETE("/routing/rules/:id", s.DeleteRule)
	g.GET("/routing/assignments", s.ListAssignments)
	g.GET("/routing/statistics", s.Statistics)
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// HandleHealth returns basic health status (always returns 200 OK)
func HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   "routing-engine",
		Version:   "1.0.0",
	})
}
