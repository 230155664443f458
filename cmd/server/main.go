// Package main is the entry point for the planit-api server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/planitapp/planit-api/internal/config"
	"github.com/planitapp/planit-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application together and serves
// until a shutdown signal arrives. Errors bubble up to main for a
// single exit point.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Configuration loaded",
		"server_port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"scheduler_poll_interval_seconds", cfg.Scheduler.PollIntervalSeconds,
		"scheduler_max_concurrent_dispatch", cfg.Scheduler.MaxConcurrentDispatch)

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.start(ctx)
}
