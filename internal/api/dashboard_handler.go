package api

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/service"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// dashboardData is the view model for the dashboard template.
type dashboardData struct {
	Tasks   []*domain.TaskWithOwner
	Summary service.TaskSummary
}

// DashboardHandler serves the HTML dashboard and its form-driven routes.
// Unlike the JSON API, failures on the form routes reply in plain text and
// successes redirect back to the dashboard.
type DashboardHandler struct {
	taskService *service.TaskService
	tmpl        *template.Template
}

// NewDashboardHandler creates a new DashboardHandler with the given dependencies.
// It panics if the embedded dashboard template fails to parse, since that is
// a build defect rather than a runtime condition.
func NewDashboardHandler(taskService *service.TaskService) *DashboardHandler {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

	return &DashboardHandler{
		taskService: taskService,
		tmpl:        tmpl,
	}
}

// Home handles GET / requests, rendering the task list and the completion
// percentage.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListAllTasks(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard tasks", "error", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Tasks:   tasks,
		Summary: service.Summarize(tasks),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "dashboard.html.tmpl", data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
	}
}

// AddTask handles POST /add-task form submissions. The task is attached to
// an arbitrary existing user; with no users in the store a plain-text
// warning is returned and nothing is created.
func (h *DashboardHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondPlainText(w, "Invalid form data.")
		return
	}

	title := r.PostFormValue("title")

	if _, err := h.taskService.QuickAddTask(r.Context(), title); err != nil {
		if errors.Is(err, service.ErrNoUsers) {
			h.respondPlainText(w, "No users in the database yet. Create a user first.")
			return
		}
		// Form routes surface failures as plain text, matching the
		// dashboard's non-API contract.
		h.respondPlainText(w, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// DeleteTask handles POST /delete-task/{id} form submissions. Deletion is
// fire-and-forget: a missing or malformed ID still redirects back to the
// dashboard.
func (h *DashboardHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")

	id, err := uuid.Parse(rawID)
	if err != nil {
		slog.Debug("ignoring delete with malformed task ID", "id", rawID)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		slog.Error("failed to delete task", "error", err, "task_id", id)
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// respondPlainText writes a plain-text message with a 200 status, the
// contract the form routes keep for their failure paths.
func (h *DashboardHandler) respondPlainText(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(message)); err != nil {
		slog.Error("failed to write plain text response", "error", err)
	}
}
