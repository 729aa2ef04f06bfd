package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrEmptyTaskUser  = errors.New("task user ID cannot be empty")
)

// Task represents a single unit of work owned by exactly one User.
// The UserID field is a reference, not an owning pointer: deleting a task
// never touches the user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Done        bool       `json:"done"`
	DoneAt      *time.Time `json:"done_at"`
	UserID      uuid.UUID  `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OwnerRef is a partial projection of the owning User, used when task
// listings expand the user reference instead of returning the bare ID.
type OwnerRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username,omitempty"`
	FullName string    `json:"full_name"`
}

// TaskWithOwner is a Task joined with its owner projection.
type TaskWithOwner struct {
	Task
	Owner OwnerRef `json:"user"`
}

// NewTask creates a new Task with the given title, optional description and
// owning user ID. Defaults are applied at construction time: Done is false,
// DoneAt is unset and CreatedAt is the creation instant.
// Returns an error if validation fails.
func NewTask(title, description string, userID uuid.UUID) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Done:        false,
		DoneAt:      nil,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUser
	}

	return nil
}

// MarkDone flips the task to done and stamps DoneAt with the given instant.
// Marking an already-done task is a no-op so the original completion time
// is preserved.
func (t *Task) MarkDone(at time.Time) {
	if t.Done {
		return
	}
	t.Done = true
	t.DoneAt = &at
}
