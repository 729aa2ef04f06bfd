package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/platform/logger"
	"github.com/minhvu/todo-api/internal/store"
)

// TaskService provides task-related operations: creation, the fixed set of
// query endpoints, quick-add against an arbitrary user, completion and
// deletion.
type TaskService struct {
	taskStore store.TaskStore
	userStore store.UserStore
	now       func() time.Time
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
// If logger is nil, a default logger will be used.
func NewTaskService(taskStore store.TaskStore, userStore store.UserStore, log *slog.Logger) *TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskService{
		taskStore: taskStore,
		userStore: userStore,
		now:       time.Now,
		logger:    log.With(slog.String("component", "task_service")),
	}
}

// CreateTask builds a task owned by the given user and persists it. The
// task starts undone unless done is true, in which case it is created
// already completed with DoneAt stamped at the creation instant.
// store.ErrInvalidEntity surfaces when the user ID references nobody.
func (s *TaskService) CreateTask(
	ctx context.Context,
	title, description string,
	userID uuid.UUID,
	done bool,
) (*domain.Task, error) {
	task, err := domain.NewTask(title, description, userID)
	if err != nil {
		return nil, err
	}
	if done {
		task.MarkDone(s.now())
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// ListAllTasks returns every task with its owner expanded to a
// username/full-name projection.
func (s *TaskService) ListAllTasks(ctx context.Context) ([]*domain.TaskWithOwner, error) {
	return s.taskStore.ListWithOwners(ctx)
}

// ListTasksByUsername resolves the username and returns that user's tasks.
// An unknown username yields an empty slice, not an error.
func (s *TaskService) ListTasksByUsername(
	ctx context.Context,
	username string,
) ([]*domain.Task, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return []*domain.Task{}, nil
		}
		return nil, err
	}

	return s.taskStore.ListByUserID(ctx, user.ID)
}

// ListTasksCreatedToday returns the tasks created within the server-local
// current calendar day, [00:00:00.000, 23:59:59.999] inclusive.
func (s *TaskService) ListTasksCreatedToday(ctx context.Context) ([]*domain.Task, error) {
	start, end := dayBounds(s.now())
	return s.taskStore.ListCreatedBetween(ctx, start, end)
}

// ListUndoneTasks returns tasks where done is false.
func (s *TaskService) ListUndoneTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.taskStore.ListUndone(ctx)
}

// ListTasksByFullNamePrefix returns all tasks whose owner's full name starts
// with the given prefix, compared case-insensitively. The predicate runs in
// Go over the full user set so the behavior does not depend on the storage
// backend's regex or collation support.
func (s *TaskService) ListTasksByFullNamePrefix(
	ctx context.Context,
	prefix string,
) ([]*domain.TaskWithOwner, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		if HasFullNamePrefix(user.FullName, prefix) {
			userIDs = append(userIDs, user.ID)
		}
	}

	return s.taskStore.ListByUserIDs(ctx, userIDs)
}

// QuickAddTask creates a task with the given title attached to an arbitrary
// existing user (whichever the store yields first). Returns ErrNoUsers when
// the user store is empty; no task is created in that case.
func (s *TaskService) QuickAddTask(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetFirst(ctx)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn("quick-add requested with no users in store")
			return nil, ErrNoUsers
		}
		return nil, err
	}

	return s.CreateTask(ctx, title, "", user.ID, false)
}

// CompleteTask marks the task done and stamps its completion time.
// Completing an already-done task keeps the original stamp.
// store.ErrTaskNotFound passes through when the ID references nothing.
func (s *TaskService) CompleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := s.taskStore.MarkDone(ctx, id, s.now().UTC()); err != nil {
		return nil, err
	}

	return s.taskStore.GetByID(ctx, id)
}

// DeleteTask removes the task with the given ID. Deletion is idempotent: a
// missing ID is not an error.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.taskStore.Delete(ctx, id)
}

// HasFullNamePrefix reports whether fullName starts with prefix, compared
// case-insensitively with Unicode simple folding. The prefix is anchored at
// the start: "Trần Nguyễn C" does not match prefix "Nguyễn".
func HasFullNamePrefix(fullName, prefix string) bool {
	if prefix == "" {
		return true
	}

	nameRunes := []rune(fullName)
	prefixRunes := []rune(prefix)
	if len(nameRunes) < len(prefixRunes) {
		return false
	}

	return strings.EqualFold(string(nameRunes[:len(prefixRunes)]), prefix)
}

// dayBounds returns the inclusive bounds of the calendar day containing t,
// in t's location: [00:00:00.000, 23:59:59.999].
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
