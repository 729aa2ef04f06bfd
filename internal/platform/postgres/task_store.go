package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/minhvu/todo-api/internal/domain"
	"github.com/minhvu/todo-api/internal/platform/logger"
	"github.com/minhvu/todo-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// taskColumns is the canonical column list for scanning bare tasks.
const taskColumns = "id, title, description, done, done_at, user_id, created_at"

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, done, done_at, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Done,
		task.DoneAt,
		task.UserID,
		task.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Done,
		&task.DoneAt,
		&task.UserID,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, fmt.Errorf("failed to get task by ID: %w", err)
	}

	return &task, nil
}

// ListWithOwners implements store.TaskStore.ListWithOwners
// Each task's owner is expanded to a username/full-name projection, the
// way a document store would populate the user reference.
func (s *PostgresTaskStore) ListWithOwners(ctx context.Context) ([]*domain.TaskWithOwner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.id, t.title, t.description, t.done, t.done_at, t.user_id, t.created_at,
		       u.id, u.username, u.full_name
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tasks with owners", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks with owners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.TaskWithOwner, 0)
	for rows.Next() {
		var t domain.TaskWithOwner
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Done,
			&t.DoneAt,
			&t.UserID,
			&t.CreatedAt,
			&t.Owner.ID,
			&t.Owner.Username,
			&t.Owner.FullName,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}

// ListByUserID implements store.TaskStore.ListByUserID
func (s *PostgresTaskStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at`
	return s.listTasks(ctx, query, userID)
}

// ListCreatedBetween implements store.TaskStore.ListCreatedBetween
// Both bounds are inclusive.
func (s *PostgresTaskStore) ListCreatedBetween(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at`
	return s.listTasks(ctx, query, start, end)
}

// ListUndone implements store.TaskStore.ListUndone
func (s *PostgresTaskStore) ListUndone(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE done = FALSE ORDER BY created_at`
	return s.listTasks(ctx, query)
}

// ListByUserIDs implements store.TaskStore.ListByUserIDs
// An empty ID set short-circuits to an empty result without touching the
// database.
func (s *PostgresTaskStore) ListByUserIDs(
	ctx context.Context,
	userIDs []uuid.UUID,
) ([]*domain.TaskWithOwner, error) {
	if len(userIDs) == 0 {
		return []*domain.TaskWithOwner{}, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.id, t.title, t.description, t.done, t.done_at, t.user_id, t.created_at,
		       u.id, u.full_name
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = ANY($1)
		ORDER BY t.created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userIDs)
	if err != nil {
		log.Error("failed to list tasks by user IDs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks by user IDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.TaskWithOwner, 0)
	for rows.Next() {
		var t domain.TaskWithOwner
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Done,
			&t.DoneAt,
			&t.UserID,
			&t.CreatedAt,
			&t.Owner.ID,
			&t.Owner.FullName,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}

// MarkDone implements store.TaskStore.MarkDone
// The done_at stamp is only written the first time a task is completed.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) MarkDone(ctx context.Context, id uuid.UUID, doneAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET done = TRUE, done_at = COALESCE(done_at, $1)
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, doneAt, id)
	if err != nil {
		log.Error("failed to mark task done",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return fmt.Errorf("failed to mark task done: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task marked done", slog.String("task_id", id.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Deleting a task that does not exist is treated as a no-op.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("no task found with ID to delete", slog.String("task_id", id.String()))
	}

	return nil
}

// listTasks runs a query returning bare task rows and scans them.
func (s *PostgresTaskStore) listTasks(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Done,
			&task.DoneAt,
			&task.UserID,
			&task.CreatedAt,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}
