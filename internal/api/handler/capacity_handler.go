package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/service"
	"capacityhub/backend/pkg/response"
)

// CapacityHandler serves the utilization rollup endpoints.
type CapacityHandler struct {
	capacitySvc service.CapacityService
}

// NewCapacityHandler creates a CapacityHandler.
func NewCapacityHandler(capacitySvc service.CapacityService) *CapacityHandler {
	return &CapacityHandler{capacitySvc: capacitySvc}
}

// DailySummary returns the per-day rollup.
// GET /api/v1/capacity/daily?date=YYYY-MM-DD
func (h *CapacityHandler) DailySummary(c *gin.Context) {
	var req dto.DailySummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 22001, "date is required (YYYY-MM-DD)")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, 22001, "date is required (YYYY-MM-DD)")
		return
	}

	result, err := h.capacitySvc.DailySummary(c.Request.Context(), date)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// WeeklySummary returns the Monday-to-Friday rollup.
// GET /api/v1/capacity/weekly?week_start=YYYY-MM-DD
func (h *CapacityHandler) WeeklySummary(c *gin.Context) {
	var req dto.WeeklySummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 22001, "invalid query parameters")
		return
	}

	var weekStart time.Time
	if req.WeekStart != "" {
		var err error
		weekStart, err = time.Parse("2006-01-02", req.WeekStart)
		if err != nil {
			response.BadRequest(c, 22001, "week_start must be YYYY-MM-DD")
			return
		}
	}

	result, err := h.capacitySvc.WeeklySummary(c.Request.Context(), weekStart)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
