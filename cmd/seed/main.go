package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/PollinateIQ/dineup-backend/internal/seed"
	"github.com/PollinateIQ/dineup-backend/pkg/config"
	"github.com/PollinateIQ/dineup-backend/pkg/db"
	"github.com/PollinateIQ/dineup-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	seeder, err := seed.New(dbClient.DB(), cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create seeder", err)
		os.Exit(1)
	}

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	if err := seeder.Run(ctx); err != nil {
		logg.Error(ctx, "seed run failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seed complete")
}
