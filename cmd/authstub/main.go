package main

import (
	"context"
	"log"

	"userseed/internal/api"
	"userseed/internal/config"
	"userseed/internal/database"
	"userseed/internal/logger"
	"userseed/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer lg.Sync() //nolint:errcheck

	var users repository.UserRepository
	if cfg.DemoMode {
		lg.Info("running in demo mode, users are kept in memory")
		users = repository.NewMemoryUserRepository()
	} else {
		ctx := context.Background()
		db, err := database.NewConnection(ctx, cfg)
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db); err != nil {
			lg.Fatal("failed to run migrations", zap.Error(err))
		}
		users = repository.NewPostgresUserRepository(db)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	api.SetupRoutes(router, users, cfg, lg)

	lg.Info("auth stub starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		lg.Fatal("failed to start server", zap.Error(err))
	}
}
