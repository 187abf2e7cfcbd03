package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/storefront/backend/internal/application/analytics"
)

// AnalyticsHandler handles the reporting endpoints (admin)
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *analyticsapp.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *analyticsapp.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Summary folds the rollups for a named period ending today.
// Defaults to daily when no period is given.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.Summary(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

type rangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// Range folds the rollups for an explicit date range (YYYY-MM-DD)
func (h *AnalyticsHandler) Range(c *gin.Context) {
	var query rangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, err := time.Parse("2006-01-02", query.From)
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", query.To)
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.analyticsService.Range(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// RecordVisit increments today's traffic counter (public)
func (h *AnalyticsHandler) RecordVisit(c *gin.Context) {
	if err := h.analyticsService.RecordVisit(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
