package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/minhvu/todo-api/internal/api"
	apiMiddleware "github.com/minhvu/todo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for error correlation

	// Create API handlers using the application's services
	userHandler := api.NewUserHandler(app.userService)
	taskHandler := api.NewTaskHandler(app.taskService)
	dashboardHandler := api.NewDashboardHandler(app.taskService)

	// JSON API routes
	r.Post("/users", userHandler.CreateUser)
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.Get("/user/{username}", taskHandler.ListTasksByUsername)
		r.Get("/today", taskHandler.ListTasksToday)
		r.Get("/undone", taskHandler.ListUndoneTasks)
		r.Get("/nguyen", taskHandler.ListNguyenTasks)
		r.Post("/{id}/done", taskHandler.CompleteTask)
	})

	// Dashboard and form routes
	r.Get("/", dashboardHandler.Home)
	r.Post("/add-task", dashboardHandler.AddTask)
	r.Post("/delete-task/{id}", dashboardHandler.DeleteTask)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
