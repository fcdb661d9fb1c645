package tui

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/numentry/internal/config"
	"github.com/jask/numentry/internal/database"
	"github.com/jask/numentry/internal/database/repository"
	"github.com/jask/numentry/internal/logging"
	"github.com/jask/numentry/internal/numinput"
)

func testConfig() config.Config {
	return config.Config{
		Number: config.NumberConfig{
			Format:      "0,0.00",
			TotalFormat: "$0,0.00",
			Locale:      "en-US",
		},
	}
}

func newTestApp(t *testing.T) (*App, *repository.EnvelopeRepo) {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "app.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	repo := repository.NewEnvelopeRepo(db)
	a := New(ctx, testConfig(), repo, logging.Discard(),
		WithFieldOptions(numinput.WithCursorMode(cursor.CursorStatic)))
	drive(a, a.Init())
	return a, repo
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive runs cmd and feeds every resulting message back into the app until
// nothing is left. It reports whether the app asked to quit.
func drive(a *App, cmd tea.Cmd) bool {
	quit := false
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
			continue
		}
		_, next := a.Update(msg)
		queue = append(queue, collect(next)...)
	}
	return quit
}

func press(a *App, msg tea.KeyMsg) bool {
	return drive(a, func() tea.Msg { return msg })
}

func typeText(a *App, s string) bool {
	return press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func storedAmount(t *testing.T, repo *repository.EnvelopeRepo, name string) sql.NullFloat64 {
	t.Helper()
	env, err := repo.Get(context.Background(), database.EnvelopeID(name))
	require.NoError(t, err)
	return env.Amount
}

func TestAppLoadsEnvelopes(t *testing.T) {
	a, _ := newTestApp(t)
	require.Len(t, a.fields, len(database.DefaultEnvelopes))
	require.Equal(t, -1, a.focus)
	for _, f := range a.fields {
		require.True(t, f.Value().IsEmpty())
	}
	require.True(t, a.Total().IsEmpty())

	view := a.View()
	require.Contains(t, view, "Rent")
	require.Contains(t, view, "Total")
	require.Contains(t, view, "—")
}

func TestAppTypeThenEscSaves(t *testing.T) {
	a, repo := newTestApp(t)

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, a.focus)
	require.True(t, a.fields[0].Focused())

	typeText(a, "1200.5")
	require.Equal(t, "1200.5", a.fields[0].Display())
	require.False(t, storedAmount(t, repo, "Rent").Valid, "nothing is saved while typing")

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, -1, a.focus)
	require.Equal(t, "1,200.50", a.fields[0].Display())

	amount := storedAmount(t, repo, "Rent")
	require.True(t, amount.Valid)
	require.InDelta(t, 1200.5, amount.Float64, 1e-9)
	require.Equal(t, "saved Rent", a.status)
	require.False(t, a.statusErr)
	require.Contains(t, a.View(), "$1,200.50")
}

func TestAppTabMovesAndSavesPrevious(t *testing.T) {
	a, repo := newTestApp(t)

	press(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, len(a.fields)-1, a.focus, "shift+tab from nothing wraps to the last field")

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, a.focus, "tab wraps to the first field")

	typeText(a, "10")
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, a.focus)
	require.False(t, a.fields[0].Focused())
	require.Equal(t, 10.0, storedAmount(t, repo, "Rent").Float64)

	typeText(a, "2.25")
	total, ok := a.Total().Float()
	require.True(t, ok)
	require.InDelta(t, 12.25, total, 1e-9, "total includes the field being edited")
}

func TestAppReloadKeepsFocusedEdit(t *testing.T) {
	a, repo := newTestApp(t)
	ctx := context.Background()

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	typeText(a, "5")

	require.NoError(t, repo.SetAmount(ctx, database.EnvelopeID("Rent"), sql.NullFloat64{Float64: 99, Valid: true}))
	require.NoError(t, repo.SetAmount(ctx, database.EnvelopeID("Groceries"), sql.NullFloat64{Float64: 40, Valid: true}))

	press(a, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, 0, a.focus)
	require.True(t, a.fields[0].Focused())
	require.Equal(t, "5", a.fields[0].Display(), "focused field ignores the reload")
	require.Equal(t, "40.00", a.fields[1].Display())

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 5.0, storedAmount(t, repo, "Rent").Float64)
}

func TestAppQuitOnlyWhenNothingFocused(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, typeText(a, "q"), "q is text while editing")
	require.True(t, a.fields[0].Value().IsEmpty())

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, typeText(a, "q"))
}

func TestAppCtrlCAlwaysQuits(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, press(a, tea.KeyMsg{Type: tea.KeyCtrlC}))
}

func TestAppSaveAll(t *testing.T) {
	a, repo := newTestApp(t)

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	typeText(a, "700")
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	typeText(a, "-30")

	press(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, 1, a.focus, "saving keeps the edit open")
	require.Equal(t, 700.0, storedAmount(t, repo, "Rent").Float64)
	require.Equal(t, -30.0, storedAmount(t, repo, "Groceries").Float64)
	require.False(t, storedAmount(t, repo, "Fun").Valid)
	require.True(t, strings.HasPrefix(a.status, "saved "))
}

func TestAppEnvelopeFormatOverride(t *testing.T) {
	ctx := context.Background()
	a, repo := newTestApp(t)

	env, err := repo.Get(ctx, database.EnvelopeID("Savings"))
	require.NoError(t, err)
	env.Format = "0%"
	env.Amount = sql.NullFloat64{Float64: 0.25, Valid: true}
	require.NoError(t, repo.Upsert(ctx, *env))

	press(a, tea.KeyMsg{Type: tea.KeyCtrlR})
	for _, f := range a.fields {
		if f.ID() == env.ID {
			require.Equal(t, "25%", f.Display())
			return
		}
	}
	t.Fatal("savings field missing")
}

func TestAppFieldLimitsAndStyles(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	typeText(a, strings.Repeat("9", fieldCharLimit+8))
	require.Len(t, a.fields[0].Display(), fieldCharLimit, "typing stops at the char limit")

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Contains(t, a.fields[1].View(), "—")
	require.Equal(t, fieldStyles().Placeholder.Render("—"), a.fields[1].View())
}
