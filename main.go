package main

import (
	"context"
	"log"
	"os"

	"userseed/internal/client"
	"userseed/internal/config"
	"userseed/internal/logger"
	"userseed/internal/runner"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	base, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer base.Sync() //nolint:errcheck
	lg := base.With(zap.String("run_id", uuid.NewString()))

	cli, err := client.New(cfg.Seed.Endpoint, client.WithTimeout(cfg.Seed.HTTPTimeout))
	if err != nil {
		lg.Fatal("invalid registration endpoint", zap.Error(err))
	}

	mode, err := runner.ParseFailureMode(cfg.Seed.OnError)
	if err != nil {
		lg.Fatal("invalid SEED_ON_ERROR", zap.Error(err))
	}

	r, err := runner.New(cli, runner.Options{
		Count:          cfg.Seed.UserCount,
		UsernamePrefix: cfg.Seed.UsernamePrefix,
		Password:       cfg.Seed.Password,
		OnError:        mode,
		LogEvery:       cfg.Seed.LogEvery,
	}, lg)
	if err != nil {
		lg.Fatal("failed to build runner", zap.Error(err))
	}

	lg.Info("seeding users",
		zap.String("endpoint", cfg.Seed.Endpoint),
		zap.Int("count", cfg.Seed.UserCount),
		zap.String("output", cfg.Seed.OutputPath),
		zap.String("on_error", string(mode)))

	if _, err := r.RunAndWrite(context.Background(), cfg.Seed.OutputPath, cfg.Seed.FailuresPath); err != nil {
		lg.Error("seeding failed, no results written", zap.Error(err))
		_ = base.Sync()
		os.Exit(1)
	}
}
