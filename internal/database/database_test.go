package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/numentry/internal/database/repository"
)

func TestMigrateAndSeed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	_, ok, err := SchemaVersion(dbPath)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath), "second run must be a no-op")

	version, ok, err := SchemaVersion(dbPath)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint(1), version)

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	envs, err := repository.NewEnvelopeRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, envs, len(DefaultEnvelopes))
	for i, env := range envs {
		require.Equal(t, DefaultEnvelopes[i], env.Name)
		require.Equal(t, EnvelopeID(env.Name), env.ID)
		require.False(t, env.Amount.Valid, "seeded amounts start empty")
	}
}

func TestEnvelopeIDStable(t *testing.T) {
	require.Equal(t, EnvelopeID("Rent"), EnvelopeID("Rent"))
	require.NotEqual(t, EnvelopeID("Rent"), EnvelopeID("Fun"))
}
