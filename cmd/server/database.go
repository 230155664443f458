package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/planitapp/planit-api/internal/config"
	"github.com/planitapp/planit-api/internal/redact"
)

// setupDatabase opens the PostgreSQL connection pool and verifies
// connectivity before the rest of the application is built on top of it.
func setupDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
	log *slog.Logger,
) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn("Failed to close database after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	log.Info("Database connection established")
	return db, nil
}
