package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/minhvu/todo-api/internal/config"
	"github.com/minhvu/todo-api/internal/platform/postgres"
	"github.com/minhvu/todo-api/internal/service"
	"github.com/minhvu/todo-api/internal/service/auth"
	"github.com/minhvu/todo-api/internal/store"
)

// application holds the assembled dependencies of the running server.
type application struct {
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Services
	userService *service.UserService
	taskService *service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Initialize services
	app.userService = service.NewUserService(app.userStore, auth.NewBcryptHasher(), logger)
	app.taskService = service.NewTaskService(app.taskStore, app.userStore, logger)

	logger.Info("Application initialized successfully")
	return app
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
