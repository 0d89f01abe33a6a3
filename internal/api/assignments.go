package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"docflow/routing/pkg/models"
)

// ListAssignments returns assignments, optionally filtered by status.
// (GET /api/v1/routing/assignments)
func (s *Server) ListAssignments(c echo.Context) error {
	ctx := c.Request().Context()

	status := models.AssignmentStatus(c.QueryParam("status"))
	limit, offset := paging(c)

	assignments, err := s.Assignments.List(ctx, status, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	return c.JSON(http.StatusOK, assignments)
}

// Statistics returns routing performance statistics.
// (GET /api/v1/routing/statistics)
func (s *Server) Statistics(c echo.Context) error {
	stats, err := s.Stats.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
