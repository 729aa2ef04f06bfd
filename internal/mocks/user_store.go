// Package mocks provides hand-rolled mock implementations of the store
// interfaces for testing. Each mock keeps a simple in-memory default
// implementation and per-method function fields for overriding behavior.
package mocks

import (
	"context"

	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	GetFirstFn      func(ctx context.Context) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)

	// Data for default implementation; Users preserves insertion order so
	// GetFirst is deterministic in tests.
	Users       []*domain.User
	CreateError error
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	m.Users = append(m.Users, user)
	return nil
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	for _, user := range m.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetFirst implements the UserStore interface
func (m *MockUserStore) GetFirst(ctx context.Context) (*domain.User, error) {
	if m.GetFirstFn != nil {
		return m.GetFirstFn(ctx)
	}

	if len(m.Users) == 0 {
		return nil, store.ErrUserNotFound
	}
	return m.Users[0], nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	return append([]*domain.User(nil), m.Users...), nil
}
