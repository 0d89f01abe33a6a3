package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"docflow/routing/internal/repository"
	"docflow/routing/pkg/models"
)

// ListRules returns routing rules, optionally filtered by active flag.
// (GET /api/v1/routing/rules)
func (s *Server) ListRules(c echo.Context) error {
	ctx := c.Request().Context()

	var isActive *bool
	if raw := c.QueryParam("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid is_active: "+raw)
		}
		isActive = &v
	}
	limit, offset := paging(c)

	rules, err := s.Rules.List(ctx, isActive, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rules == nil {
		rules = []*models.RoutingRule{}
	}
	return c.JSON(http.StatusOK, rules)
}

// CreateRule creates a new routing rule.
// (POST /api/v1/routing/rules)
func (s *Server) CreateRule(c echo.Context) error {
	ctx := c.Request().Context()

	var rule models.RoutingRule
	if err := c.Bind(&rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if rule.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "rule name is required")
	}
	if rule.Condition == nil {
		rule.Condition = models.Condition{}
	}
	if rule.Priority == 0 {
		rule.Priority = 1
	}

	if err := s.Rules.Create(ctx, &rule); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save rule: "+err.Error())
	}
	return c.JSON(http.StatusCreated, rule)
}

// GetRule returns a single routing rule.
// (GET /api/v1/routing/rules/:id)
func (s *Server) GetRule(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule id")
	}

	rule, err := s.Rules.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Routing rule not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rule)
}

// UpdateRule rewrites an existing routing rule.
// (PUT /api/v1/routing/rules/:id)
func (s *Server) UpdateRule(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule id")
	}

	var rule models.RoutingRule
	if err := c.Bind(&rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	rule.ID = id

	if err := s.Rules.Update(ctx, &rule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Routing rule not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rule)
}

// DeleteRule removes a routing rule.
// (DELETE /api/v1/routing/rules/:id)
func (s *Server) DeleteRule(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule id")
	}

	if err := s.Rules.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Routing rule not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Routing rule deleted successfully"})
}

func paging(c echo.Context) (limit, offset int) {
	limit = 100
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}
	if raw := c.QueryParam("skip"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
