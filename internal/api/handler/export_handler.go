package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"capacityhub/backend/internal/service"
	"capacityhub/backend/pkg/response"
)

// ExportHandler serves file exports.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCapacity streams the weekly capacity report as .xlsx.
// GET /api/v1/export/capacity?week_start=YYYY-MM-DD
func (h *ExportHandler) ExportCapacity(c *gin.Context) {
	var weekStart time.Time
	if ws := c.Query("week_start"); ws != "" {
		var err error
		weekStart, err = time.Parse("2006-01-02", ws)
		if err != nil {
			response.BadRequest(c, 25001, "week_start must be YYYY-MM-DD")
			return
		}
	}

	buf, filename, err := h.exportSvc.ExportWeeklyCapacity(c.Request.Context(), weekStart)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
