package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"capacityhub/backend/config"
	"capacityhub/backend/internal/api/handler"
	"capacityhub/backend/internal/api/middleware"
	"capacityhub/backend/pkg/jwt"
	"capacityhub/backend/pkg/redis"
)

// Setup initializes and returns the Gin engine.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// assignment scheduling
		assignments := v1.Group("/assignments")
		{
			assignments.GET("", h.Assignment.List)
			assignments.GET("/:id", h.Assignment.Get)
			assignments.POST("", middleware.RoleAuth("admin", "planner"), h.Assignment.Create)
			assignments.POST("/bulk", middleware.RoleAuth("admin", "planner"), h.Assignment.CreateBulk)
			assignments.PUT("/:id", middleware.RoleAuth("admin", "planner"), h.Assignment.Update)
			assignments.DELETE("/:id", middleware.RoleAuth("admin", "planner"), h.Assignment.Delete)
		}

		// capacity summaries
		capacity := v1.Group("/capacity")
		{
			capacity.GET("/daily", h.Capacity.DailySummary)
			capacity.GET("/weekly", h.Capacity.WeeklySummary)
		}

		// team members
		users := v1.Group("/users")
		{
			users.GET("", h.User.List)
		}

		// work items
		requests := v1.Group("/requests")
		{
			requests.GET("/:id", h.Request.Get)
		}

		// audit trail
		activity := v1.Group("/activity-logs")
		{
			activity.GET("", h.ActivityLog.List)
		}

		// exports
		export := v1.Group("/export")
		{
			export.GET("/capacity", middleware.RoleAuth("admin", "planner"), h.Export.ExportCapacity)
		}
	}

	return r
}
