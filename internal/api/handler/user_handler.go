package handler

import (
	"github.com/gin-gonic/gin"

	"capacityhub/backend/internal/service"
	"capacityhub/backend/pkg/response"
)

// UserHandler serves the read-only user directory.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// List returns active users with their capacity figures.
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": users})
}
