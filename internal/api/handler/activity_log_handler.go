package handler

import (
	"github.com/gin-gonic/gin"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/service"
	"capacityhub/backend/pkg/response"
)

// ActivityLogHandler serves the audit trail listing.
type ActivityLogHandler struct {
	activitySvc service.ActivityLogService
}

// NewActivityLogHandler creates an ActivityLogHandler.
func NewActivityLogHandler(activitySvc service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activitySvc: activitySvc}
}

// List returns paginated audit entries.
// GET /api/v1/activity-logs
func (h *ActivityLogHandler) List(c *gin.Context) {
	var req dto.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 24001, "invalid query parameters")
		return
	}

	entries, total, err := h.activitySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, entries, total, req.GetPage(), req.GetPageSize())
}
