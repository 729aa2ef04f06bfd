package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, task *domain.Task) error
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListWithOwnersFn     func(ctx context.Context) ([]*domain.TaskWithOwner, error)
	ListByUserIDFn       func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListCreatedBetweenFn func(ctx context.Context, start, end time.Time) ([]*domain.Task, error)
	ListUndoneFn         func(ctx context.Context) ([]*domain.Task, error)
	ListByUserIDsFn      func(ctx context.Context, userIDs []uuid.UUID) ([]*domain.TaskWithOwner, error)
	MarkDoneFn           func(ctx context.Context, id uuid.UUID, doneAt time.Time) error
	DeleteFn             func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation. Owners maps user IDs to the
	// projection attached by the join-expanded listings.
	Tasks       []*domain.Task
	Owners      map[uuid.UUID]domain.OwnerRef
	CreateError error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Owners: make(map[uuid.UUID]domain.OwnerRef),
	}
}

// AddOwner registers a user projection so join-expanded listings can
// resolve tasks created for that user.
func (m *MockTaskStore) AddOwner(user *domain.User) {
	m.Owners[user.ID] = domain.OwnerRef{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Tasks = append(m.Tasks, task)
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// ListWithOwners implements the TaskStore interface
func (m *MockTaskStore) ListWithOwners(ctx context.Context) ([]*domain.TaskWithOwner, error) {
	if m.ListWithOwnersFn != nil {
		return m.ListWithOwnersFn(ctx)
	}

	out := make([]*domain.TaskWithOwner, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		out = append(out, &domain.TaskWithOwner{Task: *task, Owner: m.Owners[task.UserID]})
	}
	return out, nil
}

// ListByUserID implements the TaskStore interface
func (m *MockTaskStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}

	out := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

// ListCreatedBetween implements the TaskStore interface
func (m *MockTaskStore) ListCreatedBetween(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Task, error) {
	if m.ListCreatedBetweenFn != nil {
		return m.ListCreatedBetweenFn(ctx, start, end)
	}

	out := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if !task.CreatedAt.Before(start) && !task.CreatedAt.After(end) {
			out = append(out, task)
		}
	}
	return out, nil
}

// ListUndone implements the TaskStore interface
func (m *MockTaskStore) ListUndone(ctx context.Context) ([]*domain.Task, error) {
	if m.ListUndoneFn != nil {
		return m.ListUndoneFn(ctx)
	}

	out := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if !task.Done {
			out = append(out, task)
		}
	}
	return out, nil
}

// ListByUserIDs implements the TaskStore interface
func (m *MockTaskStore) ListByUserIDs(
	ctx context.Context,
	userIDs []uuid.UUID,
) ([]*domain.TaskWithOwner, error) {
	if m.ListByUserIDsFn != nil {
		return m.ListByUserIDsFn(ctx, userIDs)
	}

	wanted := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}

	out := make([]*domain.TaskWithOwner, 0)
	for _, task := range m.Tasks {
		if wanted[task.UserID] {
			owner := m.Owners[task.UserID]
			// The narrow projection of this listing carries no username.
			owner.Username = ""
			out = append(out, &domain.TaskWithOwner{Task: *task, Owner: owner})
		}
	}
	return out, nil
}

// MarkDone implements the TaskStore interface
func (m *MockTaskStore) MarkDone(ctx context.Context, id uuid.UUID, doneAt time.Time) error {
	if m.MarkDoneFn != nil {
		return m.MarkDoneFn(ctx, id, doneAt)
	}

	for _, task := range m.Tasks {
		if task.ID == id {
			task.MarkDone(doneAt)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, task := range m.Tasks {
		if task.ID == id {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return nil
		}
	}
	// Deleting a missing task is a no-op.
	return nil
}
