package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"greentech_backend/internal/app"
	"greentech_backend/internal/config"
	"greentech_backend/internal/database"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/services/dto"
)

func main() {
	region := flag.String("region", "", "refresh a single region by slug")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	db, err := database.OpenAndMigrate(cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	defer database.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := app.NewServiceContainer(ctx, cfg).RegionStatsService

	var result *dto.RefreshResult
	if *region != "" {
		result, err = stats.RefreshRegion(ctx, db, *region)
	} else {
		result, err = stats.RefreshAll(ctx, db)
	}
	if err != nil {
		logger.Fatal("Region stats refresh failed", "error", err)
	}

	logger.Info("Region stats refreshed", "updated", result.Updated, "failed", result.Failed)
	if !result.Success {
		os.Exit(1)
	}
}
