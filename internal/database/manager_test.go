package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	manager, err := NewManager(ctx, ":memory:")

	require.NoError(t, err)
	require.NotNil(t, manager)
	require.NotNil(t, manager.DB())

	// Cleanup
	err = manager.Close()
	assert.NoError(t, err)
}

func TestWALModeEnabled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Use file database since :memory: doesn't support WAL
	tempFile := t.TempDir() + "/test.db"
	manager, err := NewManager(ctx, tempFile)
	require.NoError(t, err)
	require.NotNil(t, manager)
	defer func() { _ = manager.Close() }()

	// Verify WAL mode is enabled
	var journalMode string
	err = manager.DB().QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
	require.NoError(t, err)
	assert.Equal(t, "wal", journalMode)
}

func TestMigrationsExecuted(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	manager, err := NewManager(ctx, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, manager)
	defer func() { _ = manager.Close() }()

	db := manager.DB()

	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='resolutions'").
		Scan(&name)
	require.NoError(t, err, "resolutions table should exist")
	assert.Equal(t, "resolutions", name)
}

func TestMigrationVersion(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	manager, err := NewManager(ctx, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, manager)
	defer func() { _ = manager.Close() }()

	db := manager.DB()

	// Check user_version was set to the latest migration
	var version int
	err = db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestReopenKeepsRows(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	path := t.TempDir() + "/resolutions.db"

	first, err := NewManager(ctx, path)
	require.NoError(t, err)
	_, err = first.DB().ExecContext(ctx,
		"INSERT INTO resolutions (coordinate, path) VALUES (?, ?)", "g:a:1", "/repo/g/a/1/a-1.jar")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewManager(ctx, path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	var got string
	err = second.DB().QueryRowContext(ctx, "SELECT path FROM resolutions WHERE coordinate = ?", "g:a:1").Scan(&got)
	require.NoError(t, err)
	assert.Equal(t, "/repo/g/a/1/a-1.jar", got)
}

func TestCloseNilDB(t *testing.T) {
	t.Parallel()
	assert.NoError(t, (&Manager{}).Close())
}
