package handlers

import (
	"net/http"

	"tasktracker/internal/cache"
	"tasktracker/internal/middleware"
	"tasktracker/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires the REST surface onto the router. Auth routes
// for registration and login are public; everything else sits behind
// the bearer-token middleware.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, tokens services.TokenService, auth *AuthHandler, tasks *TaskHandler, redisCache *cache.RedisCache) {
	router.GET("/healthz", func(c *gin.Context) {
		health := gin.H{"status": "ok"}
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			health["status"] = "degraded"
			health["database"] = "unreachable"
		}
		if redisCache != nil {
			if err := redisCache.Health(); err != nil {
				health["cache"] = "unreachable"
			}
		}
		c.JSON(http.StatusOK, health)
	})

	protected := middleware.RequireAuth(db, tokens)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.PUT("/profile", protected, auth.UpdateProfile)
		authGroup.DELETE("/profile", protected, auth.DeleteAccount)
	}

	taskGroup := router.Group("/api/tasks", protected)
	{
		taskGroup.GET("", tasks.ListTasks)
		taskGroup.POST("", tasks.CreateTask)
		taskGroup.PUT("/:id", tasks.UpdateTask)
		taskGroup.DELETE("/:id", tasks.DeleteTask)
	}
}
