package main

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/numentry/internal/database"
	"github.com/jask/numentry/internal/database/repository"
	"github.com/jask/numentry/internal/logging"
	"github.com/jask/numentry/internal/numfmt"
	"github.com/jask/numentry/internal/prefs"
)

func seededRepo(t *testing.T) *repository.EnvelopeRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "layout.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(context.Background(), db))
	return repository.NewEnvelopeRepo(db)
}

func TestSyncLayoutWritesMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	repo := seededRepo(t)

	require.NoError(t, syncLayout(context.Background(), repo, logging.Discard()))
	layout, err := prefs.LoadLayout()
	require.NoError(t, err)
	require.Len(t, layout, len(database.DefaultEnvelopes))
	require.Equal(t, "Rent", layout[0].Name)
}

func TestSyncLayoutKeepsAmounts(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	repo := seededRepo(t)
	require.NoError(t, repo.SetAmount(ctx, database.EnvelopeID("Fun"), sql.NullFloat64{Float64: 50, Valid: true}))

	require.NoError(t, prefs.SaveLayout([]prefs.Envelope{
		{Name: "Fun", Format: "$0,0"},
		{Name: "Holiday", Format: "0.0a"},
	}))
	require.NoError(t, syncLayout(ctx, repo, logging.Discard()))

	fun, err := repo.Get(ctx, database.EnvelopeID("Fun"))
	require.NoError(t, err)
	require.Equal(t, 0, fun.SortOrder)
	require.Equal(t, "$0,0", fun.Format)
	require.Equal(t, 50.0, fun.Amount.Float64)

	holiday, err := repo.Get(ctx, database.EnvelopeID("Holiday"))
	require.NoError(t, err)
	require.Equal(t, 1, holiday.SortOrder)
	require.False(t, holiday.Amount.Valid)
}

func TestSyncLayoutResolvesPresets(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	repo := seededRepo(t)

	require.NoError(t, prefs.SaveLayout([]prefs.Envelope{{Name: "Rent", Format: "currency"}}))
	require.NoError(t, syncLayout(ctx, repo, logging.Discard()))
	rent, err := repo.Get(ctx, database.EnvelopeID("Rent"))
	require.NoError(t, err)
	require.Equal(t, "$0,0.00", rent.Format)

	require.NoError(t, prefs.SaveLayout([]prefs.Envelope{{Name: "Rent", Format: "curency"}}))
	require.ErrorIs(t, syncLayout(ctx, repo, logging.Discard()), numfmt.ErrUnknownPreset)
}

func TestSyncLayoutDropsUnlisted(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	repo := seededRepo(t)
	require.NoError(t, repo.SetAmount(ctx, database.EnvelopeID("Savings"), sql.NullFloat64{Float64: 80, Valid: true}))

	require.NoError(t, prefs.SaveLayout([]prefs.Envelope{{Name: "Savings"}, {Name: "Rent"}}))
	require.NoError(t, syncLayout(ctx, repo, logging.Discard()))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Savings", list[0].Name)
	require.Equal(t, 0, list[0].SortOrder)
	require.Equal(t, 80.0, list[0].Amount.Float64)
	require.Equal(t, "Rent", list[1].Name)
	require.Equal(t, 1, list[1].SortOrder)

	_, err = repo.Get(ctx, database.EnvelopeID("Groceries"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSyncLayoutBadFormatChangesNothing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	repo := seededRepo(t)

	require.NoError(t, prefs.SaveLayout([]prefs.Envelope{{Name: "Fun"}, {Name: "Rent", Format: "curency"}}))
	require.Error(t, syncLayout(ctx, repo, logging.Discard()))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(database.DefaultEnvelopes))
	require.Equal(t, "Rent", list[0].Name)
}
