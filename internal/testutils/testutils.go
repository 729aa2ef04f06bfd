// Package testutils provides shared helpers for database integration tests.
// Tests using it run each case inside a transaction that is rolled back on
// cleanup, so cases stay isolated and leave no rows behind.
package testutils

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// migrationsRunOnce ensures migrations are only applied once per test binary.
var migrationsRunOnce sync.Once

// IsIntegrationTestEnvironment returns true if the environment is configured
// for running integration tests with a database connection. Integration tests
// should check this and skip when it returns false.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// GetTestDatabaseURL returns the database URL for integration tests, failing
// the test if DATABASE_URL is not set.
func GetTestDatabaseURL(t *testing.T) string {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL environment variable is required for this test")
	}
	return dbURL
}

// MustGetTestDatabaseURL returns the database URL for integration tests.
// Designed for TestMain functions where a testing.T is not available.
func MustGetTestDatabaseURL() string {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		panic("DATABASE_URL environment variable is required for integration tests")
	}
	return dbURL
}

// GetTestDB opens a connection to the test database, verifies it with a
// ping, and registers a cleanup to close it when the test finishes.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", GetTestDatabaseURL(t))
	require.NoError(t, err, "failed to open test database connection")

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	require.NoError(t, db.Ping(), "failed to ping test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database connection: %v", err)
		}
	})

	return db
}

// SetupTestDatabaseSchema applies all pending migrations to the given
// database. Safe to call from multiple tests; migrations run once per
// test binary.
func SetupTestDatabaseSchema(db *sql.DB) error {
	var setupErr error
	migrationsRunOnce.Do(func() {
		if err := goose.SetDialect("postgres"); err != nil {
			setupErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}
		if err := goose.Up(db, migrationsDir()); err != nil {
			setupErr = fmt.Errorf("failed to apply migrations: %w", err)
		}
	})
	return setupErr
}

// migrationsDir locates the server migrations directory relative to this
// source file, so integration tests work regardless of the working directory
// the test binary runs from.
func migrationsDir() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "cmd", "server", "migrations")
}

// WithTx runs fn inside a transaction that is rolled back when the test
// completes, keeping tests isolated from each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
