package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the task's user ID does not reference an
	// existing user (foreign key violation).
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListWithOwners retrieves every task with its owner expanded to a
	// username/full-name projection.
	ListWithOwners(ctx context.Context) ([]*domain.TaskWithOwner, error)

	// ListByUserID retrieves all tasks owned by the given user.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListCreatedBetween retrieves all tasks whose creation time falls
	// within [start, end], inclusive on both bounds.
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Task, error)

	// ListUndone retrieves all tasks that are not done.
	ListUndone(ctx context.Context) ([]*domain.Task, error)

	// ListByUserIDs retrieves all tasks owned by any of the given users,
	// each with its owner expanded to a full-name projection.
	// An empty ID set yields an empty result.
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*domain.TaskWithOwner, error)

	// MarkDone flips the task to done and stamps done_at with the given
	// instant. Tasks that are already done keep their original stamp.
	// Returns ErrTaskNotFound if the task does not exist.
	MarkDone(ctx context.Context, id uuid.UUID, doneAt time.Time) error

	// Delete removes the task with the given ID if present.
	// Deleting a task that does not exist is a no-op, not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
