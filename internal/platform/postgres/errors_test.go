package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil_error",
			err:      nil,
			expected: false,
		},
		{
			name: "unique_violation",
			err: &pgconn.PgError{
				Code:           pgUniqueViolationCode,
				ConstraintName: "users_username_key",
			},
			expected: true,
		},
		{
			name: "wrapped_unique_violation",
			err: fmt.Errorf("inserting user: %w", &pgconn.PgError{
				Code: pgUniqueViolationCode,
			}),
			expected: true,
		},
		{
			name: "foreign_key_violation",
			err: &pgconn.PgError{
				Code: pgForeignKeyViolationCode,
			},
			expected: false,
		},
		{
			name:     "plain_error",
			err:      errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsUniqueViolation(tc.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil_error",
			err:      nil,
			expected: false,
		},
		{
			name: "foreign_key_violation",
			err: &pgconn.PgError{
				Code:           pgForeignKeyViolationCode,
				ConstraintName: "tasks_user_id_fkey",
			},
			expected: true,
		},
		{
			name: "wrapped_foreign_key_violation",
			err: fmt.Errorf("inserting task: %w", &pgconn.PgError{
				Code: pgForeignKeyViolationCode,
			}),
			expected: true,
		},
		{
			name: "unique_violation",
			err: &pgconn.PgError{
				Code: pgUniqueViolationCode,
			},
			expected: false,
		},
		{
			name:     "plain_error",
			err:      errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsForeignKeyViolation(tc.err))
		})
	}
}
