package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"capacityhub/backend/internal/service"
	"capacityhub/backend/pkg/response"
)

// RequestHandler serves read access to work items.
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// Get returns one work item.
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 23001, "request id must not be empty")
		return
	}

	result, err := h.requestSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			response.NotFound(c, 23101, "request not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
