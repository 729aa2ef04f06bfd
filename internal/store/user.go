package store

import (
	"context"

	"github.com/minhvu/todo-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// The user must already carry a hashed password; hashing is handled
	// by the service layer.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetFirst retrieves any one user from the store. The tie-break is
	// store-determined; callers must not rely on a specific ordering.
	// Returns ErrUserNotFound if the store holds no users.
	GetFirst(ctx context.Context) (*domain.User, error)

	// List retrieves all users. Used by callers that apply predicates the
	// storage backend cannot be relied on to express portably (e.g. the
	// case-insensitive full-name prefix match).
	List(ctx context.Context) ([]*domain.User, error)
}
