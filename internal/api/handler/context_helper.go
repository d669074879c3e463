package handler

import "github.com/gin-gonic/gin"

// callerID reads the authenticated user id injected by the JWT middleware.
func callerID(c *gin.Context) string {
	if id, ok := c.Get("user_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
