package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olreader/internal/config"
	"olreader/internal/testutil"
)

func TestCollectMigrations_ParsesMigrationsDir(t *testing.T) {
	migrations, err := goose.CollectMigrations(testutil.MigrationsDir(), 0, goose.MaxVersion)
	require.NoError(t, err)
	assert.NotEmpty(t, migrations)
}

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := testutil.MigrationsDir()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)

		s := string(b)
		assert.Contains(t, s, "-- +goose Up", e.Name())
		assert.Contains(t, s, "-- +goose Down", e.Name())
	}
}

func TestBooksMigration_DeclaresUniqueKeys(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(testutil.MigrationsDir(), "00001_create_books.sql"))
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, "UNIQUE (external_id)")
	assert.Contains(t, s, "UNIQUE (isbn)")
}

func TestRun_CreateWritesMigration(t *testing.T) {
	cfg := config.Config{MigrationsDir: t.TempDir()}

	require.NoError(t, run(context.Background(), cfg, "create", "add_subjects"))

	entries, err := os.ReadDir(cfg.MigrationsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_add_subjects.sql"))
}

func TestRun_CreateRequiresName(t *testing.T) {
	err := run(context.Background(), config.Config{MigrationsDir: t.TempDir()}, "create", "")
	assert.ErrorContains(t, err, "name is required")
}
