// Package dbtest opens throwaway migrated sqlite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"tournament/config"
	"tournament/database"
	"tournament/logging"

	"github.com/stretchr/testify/require"
)

// New returns a migrated database in the test's temp dir, closed on cleanup.
func New(t testing.TB) *database.DB {
	t.Helper()
	db := Open(t)
	require.NoError(t, database.Migrate(context.Background(), db, logging.Discard()))
	return db
}

// Open returns an empty, unmigrated database.
func Open(t testing.TB) *database.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tournament.db")
	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite, URL: path}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
