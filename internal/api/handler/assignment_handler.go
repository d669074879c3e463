package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/service"
	pkgerrors "capacityhub/backend/pkg/errors"
	"capacityhub/backend/pkg/response"
)

// AssignmentHandler serves the assignment scheduling endpoints.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Create creates one allocation.
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "invalid request payload")
		return
	}

	result, err := h.assignmentSvc.Create(c.Request.Context(), &req, callerID(c))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, result)
}

// CreateBulk creates a batch of allocations atomically.
// POST /api/v1/assignments/bulk
func (h *AssignmentHandler) CreateBulk(c *gin.Context) {
	var req dto.BulkCreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "invalid request payload")
		return
	}

	result, err := h.assignmentSvc.CreateBulk(c.Request.Context(), &req, callerID(c))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, gin.H{"list": result})
}

// Get returns one assignment.
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 21001, "assignment id must not be empty")
		return
	}

	result, err := h.assignmentSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// List returns filtered assignments.
// GET /api/v1/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	var req dto.ListAssignmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 21001, "invalid query parameters")
		return
	}

	result, err := h.assignmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// Update patches an assignment.
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 21001, "assignment id must not be empty")
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 21001, "invalid request payload")
		return
	}

	result, err := h.assignmentSvc.Update(c.Request.Context(), id, &req, callerID(c))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete removes an assignment.
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 21001, "assignment id must not be empty")
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), id, callerID(c)); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAssignmentError maps scheduling business errors to HTTP responses.
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	var capErr *service.CapacityExceededError
	var bulkErr *service.BulkValidationError

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 21101, "user not found")
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 21102, "request not found")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 21103, "assignment not found")
	case errors.As(err, &capErr):
		response.ErrorWithDetails(c, 400, 21104, "capacity exceeded", capErr.Error())
	case errors.As(err, &bulkErr):
		response.ErrorWithDetails(c, 400, 21105, "bulk validation failed", bulkErr.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, 409, 21106, "assignment was modified by another operation, please retry")
	default:
		response.InternalError(c)
	}
}
