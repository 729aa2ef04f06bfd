package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/domain"
)

// Common request/response structures

// CreateUserRequest defines the payload for the user creation endpoint.
type CreateUserRequest struct {
	Username string `json:"username"  validate:"required,min=1"`
	FullName string `json:"full_name" validate:"required,min=1"`
	Password string `json:"password"  validate:"required,min=1"`
}

// UserResponse defines the user representation returned by the API.
// The password hash is never exposed.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title       string    `json:"title"       validate:"required,min=1"`
	Description string    `json:"description"`
	UserID      uuid.UUID `json:"user_id"     validate:"required"`
	Done        bool      `json:"done"`
}

// TaskResponse defines the bare task representation returned by the API.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Done        bool       `json:"done"`
	DoneAt      *time.Time `json:"done_at"`
	UserID      uuid.UUID  `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OwnerResponse is the owner projection attached to expanded task listings.
// Username is omitted on routes that only project the full name.
type OwnerResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username,omitempty"`
	FullName string    `json:"full_name"`
}

// TaskWithOwnerResponse is a task with its owner reference expanded to a
// projection instead of a bare user ID.
type TaskWithOwnerResponse struct {
	TaskResponse
	User OwnerResponse `json:"user"`
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Done:        task.Done,
		DoneAt:      task.DoneAt,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
	}
}

// tasksToResponse converts a slice of domain tasks, keeping the result
// non-nil so empty listings serialize as [] rather than null.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

// tasksWithOwnersToResponse converts join-expanded tasks. When withUsername
// is false the owner projection carries only the full name, matching the
// narrower projection of the name-prefix route.
func tasksWithOwnersToResponse(tasks []*domain.TaskWithOwner, withUsername bool) []TaskWithOwnerResponse {
	out := make([]TaskWithOwnerResponse, 0, len(tasks))
	for _, task := range tasks {
		resp := TaskWithOwnerResponse{
			TaskResponse: taskToResponse(&task.Task),
			User: OwnerResponse{
				ID:       task.Owner.ID,
				FullName: task.Owner.FullName,
			},
		}
		if withUsername {
			resp.User.Username = task.Owner.Username
		}
		out = append(out, resp)
	}
	return out
}
