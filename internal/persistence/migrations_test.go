package persistence

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmbeddedMigrationsPresentAndOrdered(t *testing.T) {
	names, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	require.True(t, sort.StringsAreSorted(names))

	for _, name := range names {
		require.True(t, strings.HasSuffix(name, ".sql"), "unexpected migration file %q", name)
		content, err := migrationsFS.ReadFile("migrations/" + name)
		require.NoError(t, err)
		require.NotEmpty(t, content)
	}
}

func TestEmbeddedMigrationsCreateAuditTable(t *testing.T) {
	content, err := migrationsFS.ReadFile("migrations/001_create_audit_events.sql")
	require.NoError(t, err)
	require.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS audit_events")
}

func TestRunMigrationsSkipsWithoutPool(t *testing.T) {
	require.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}
