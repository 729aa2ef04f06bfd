package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/platform/logger"
	"github.com/minhvu/todo-api/internal/service/auth"
	"github.com/minhvu/todo-api/internal/store"
)

// UserService provides user-related operations.
type UserService struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	logger         *slog.Logger
}

// NewUserService creates a new UserService with the given dependencies.
// If logger is nil, a default logger will be used.
func NewUserService(
	userStore store.UserStore,
	passwordHasher auth.PasswordHasher,
	log *slog.Logger,
) *UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if passwordHasher == nil {
		panic("passwordHasher cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserService{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		logger:         log.With(slog.String("component", "user_service")),
	}
}

// CreateUser hashes the given plaintext password, builds the domain User and
// persists it. Validation errors from the domain constructor and
// store.ErrUsernameExists pass through to the caller.
func (s *UserService) CreateUser(
	ctx context.Context,
	username, fullName, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if password == "" {
		return nil, ErrEmptyPassword
	}

	hashed, err := s.passwordHasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, fullName, hashed)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
