package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"timepulse/internal/api"
	"timepulse/internal/cli"
	"timepulse/internal/config"
	"timepulse/internal/notify"
	"timepulse/internal/repository/sqlite"
	"timepulse/internal/store"
	"timepulse/internal/sync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	cfg, err := config.NewLoader().Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	repo, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	notifier := notify.NewManager(notify.NewWriterSender(os.Stderr), cfg.Notification.SuppressionWindow)
	defer notifier.Close()

	client := sync.NewClient(cfg.Sync.APIURL, cfg.Sync.RequestTimeout)
	pusher := sync.NewPusher(client, cfg.Sync.DebounceWindow, cfg.Sync.TTL)
	defer pusher.Close()

	timers := store.New(repo, notifier, pusher, client)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Application.Timeout)
	defer cancel()
	if err := timers.Load(ctx); err != nil {
		return fmt.Errorf("load timers: %w", err)
	}

	apiInstance := api.New(timers, notifier, cfg)
	return cli.NewRootCommand(apiInstance, cfg).Execute()
}
