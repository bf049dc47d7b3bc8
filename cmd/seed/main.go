package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"greentech_backend/internal/app"
	"greentech_backend/internal/config"
	"greentech_backend/internal/database"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/seed"
)

//go:embed seed.yaml
var defaultDocument []byte

func main() {
	file := flag.String("file", "", "seed document (defaults to the embedded seed.yaml)")
	refresh := flag.Bool("refresh", true, "recompute region stats after seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	data := defaultDocument
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			logger.Fatal("Failed to read seed document", "file", *file, "error", err)
		}
	}
	doc, err := seed.Parse(data)
	if err != nil {
		logger.Fatal("Invalid seed document", "error", err)
	}

	db, err := database.OpenAndMigrate(cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	defer database.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := app.NewServiceContainer(ctx, cfg)
	seeder := seed.NewSeeder(
		container.RoleService,
		repositories.NewRoleRepository(),
		repositories.NewRegionRepository(),
		repositories.NewStartupRepository(),
	)
	if _, err := seeder.Apply(ctx, db, doc); err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}

	if *refresh {
		result, err := container.RegionStatsService.RefreshAll(ctx, db)
		if err != nil {
			logger.Fatal("Region stats refresh failed", "error", err)
		}
		logger.Info("Region stats refreshed", "updated", result.Updated, "failed", result.Failed)
	}
}
