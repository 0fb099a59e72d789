package api

import (
	"userseed/internal/config"
	"userseed/internal/middleware"
	"userseed/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(router *gin.Engine, users repository.UserRepository, cfg *config.Config, logger *zap.Logger) {
	server := NewServer(users, cfg, logger)

	router.Use(middleware.RequestLogger(logger), gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "authstub",
		})
	})

	// DEBUG ENDPOINT
	router.GET("/debug/users", server.ListUsers)

	api := router.Group("/api")
	{
		api.POST("/auth", server.Authenticate)
	}
}
