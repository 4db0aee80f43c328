package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sweetslice/storefront/internal/bootstrap"
	"github.com/sweetslice/storefront/pkg/config"
	"github.com/sweetslice/storefront/pkg/logger"
)

// cron-worker runs the housekeeping jobs without serving HTTP, for deployments that keep
// cart files on a shared volume and want a single sweeper.
func main() {
	once := flag.Bool("once", false, "run every job a single time and exit")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	if !cfg.Jobs.Enabled {
		logg.Warn(context.Background(), "housekeeping disabled, nothing to run")
		return
	}
	cfg.Store.WatchFile = false

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"cart_backend": cfg.Store.Backend,
	})

	container, err := bootstrap.New(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storefront", err)
		os.Exit(1)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logg.Error(context.Background(), "error closing storefront", err)
		}
	}()

	if *once {
		if err := container.RunHousekeepingOnce(ctx); err != nil {
			logg.Error(ctx, "housekeeping pass failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "housekeeping pass complete")
		return
	}

	var housekeeping *bootstrap.Runner
	for _, r := range container.Runners() {
		if r.Name == bootstrap.HousekeepingRunner {
			housekeeping = &r
			break
		}
	}
	if housekeeping == nil {
		logg.Warn(ctx, "no housekeeping jobs configured")
		return
	}

	logg.Info(ctx, "starting cron worker")
	if err := housekeeping.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "cron worker shutting down gracefully")
}
