// Package testdb provides helpers for tests that need a real postgres
// database. Tests using it skip themselves when no database is configured.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/fitload/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// Environment variables consulted by GetTestDatabaseURL, in order.
const (
	TestDatabaseURLEnv = "FITLOAD_TEST_DB_URL"
	DatabaseURLEnv     = "DATABASE_URL"
)

// GetTestDatabaseURL returns the database URL to use for tests, or "" when
// none is configured.
func GetTestDatabaseURL() string {
	if url := os.Getenv(TestDatabaseURLEnv); url != "" {
		return url
	}
	return os.Getenv(DatabaseURLEnv)
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDBWithT opens the test database and applies all migrations.
// The test is skipped when no database URL is configured. The connection
// is closed when the test finishes.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip(TestDatabaseURLEnv + " or " + DatabaseURLEnv + " not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	require.NoError(t, postgres.Migrate(ctx, db, "up", nil), "Failed to apply migrations")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// sharing a database stay isolated.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		// sql.ErrTxDone is expected if fn already ended the transaction
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
