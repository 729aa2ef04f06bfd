// Package main implements the entry point for the todo-api server,
// a small task-tracking backend storing users and their tasks.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/minhvu/todo-api/internal/config"
	"github.com/minhvu/todo-api/internal/platform/logger"
)

// main is the entry point for the todo-api server. It initializes
// configuration, sets up logging, establishes the database connection,
// wires dependencies, and starts the HTTP server.
func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the assembled application and any initialization error.
func initializeApp(ctx context.Context) (*application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Connect to the database. An unreachable database is logged but does
	// not abort startup; the pool reconnects per-request, so data operations
	// fail individually until the backend comes back. Migrations are only
	// attempted on a reachable database.
	db, err := setupAppDatabase(cfg, appLogger)
	if db == nil {
		return nil, err
	}
	if err != nil {
		appLogger.Error("database unreachable at startup, continuing without it",
			"error", err)
	} else if err := runMigrations(db, appLogger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return newApplication(cfg, appLogger, db), nil
}
