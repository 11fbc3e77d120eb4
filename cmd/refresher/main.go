package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shubhamc1947/company-data/core"
	"github.com/shubhamc1947/company-data/fetcher"
	"github.com/shubhamc1947/company-data/service"
	"github.com/shubhamc1947/company-data/store"
)

func main() {
	cfg, err := core.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	logger, err := core.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connect to the database
	db, err := core.InitDB(cfg.Database, cfg.Environment)
	if err != nil {
		logger.Fatalf("Unable to connect to the database: %v", err)
	}

	if err := core.Migrate(db); err != nil {
		logger.Fatalf("Unable to migrate the database: %v", err)
	}

	locker, closeLocker, err := core.NewLocker(ctx, cfg.Redis, logger.With("component", "lock"))
	if err != nil {
		logger.Fatal(err)
	}
	defer closeLocker()

	st := store.New(db)

	registry, err := service.BuildRegistry(cfg, st, locker, logger)
	if err != nil {
		logger.Fatal(err)
	}

	refresher := fetcher.NewRefresher(registry, st, cfg.Cache.Timeout, logger.With("component", "refresher"))

	summary, err := refresher.Run(ctx)
	if err != nil {
		logger.Fatalf("Refresh failed: %v", err)
	}

	logger.Infof("Refresh done: %d refreshed, %d failed", summary.Refreshed, summary.Failed)
}
