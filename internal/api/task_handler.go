package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/api/shared"
	"github.com/minhvu/todo-api/internal/service"
	"github.com/minhvu/todo-api/internal/store"
)

// nguyenFamilyNamePrefix is the fixed family-name prefix served by the
// /tasks/nguyen listing.
const nguyenFamilyNamePrefix = "Nguyễn"

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService *service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest

	// Parse request
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description, req.UserID, req.Done)
	if err != nil {
		// An unknown user ID is a caller mistake, not a server fault.
		if errors.Is(err, store.ErrInvalidEntity) || isValidationError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ListTasks handles GET /tasks requests. Every task is returned with its
// owner expanded to a username/full-name projection.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListAllTasks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksWithOwnersToResponse(tasks, true))
}

// ListTasksByUsername handles GET /tasks/user/{username} requests.
// An unknown username yields an empty array, not an error.
func (h *TaskHandler) ListTasksByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	tasks, err := h.taskService.ListTasksByUsername(r.Context(), username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListTasksToday handles GET /tasks/today requests.
func (h *TaskHandler) ListTasksToday(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasksCreatedToday(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListUndoneTasks handles GET /tasks/undone requests.
func (h *TaskHandler) ListUndoneTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListUndoneTasks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListNguyenTasks handles GET /tasks/nguyen requests: all tasks whose
// owner's full name starts with "Nguyễn", case-insensitively. The owner is
// projected to ID and full name only.
func (h *TaskHandler) ListNguyenTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasksByFullNamePrefix(r.Context(), nguyenFamilyNamePrefix)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksWithOwnersToResponse(tasks, false))
}

// CompleteTask handles POST /tasks/{id}/done requests, marking the task
// done and stamping its completion time.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to complete task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}
