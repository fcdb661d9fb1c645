package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/numentry/internal/config"
	"github.com/jask/numentry/internal/database"
	"github.com/jask/numentry/internal/database/repository"
	"github.com/jask/numentry/internal/numinput"
)

// checkAmount is typed into the first envelope during a check run.
const checkAmount = 1234.5

// runCheck edits one envelope through the field component against a
// temporary database and verifies the stored amount matches the field.
func runCheck(ctx context.Context, w io.Writer, cfg config.Config) error {
	dir, err := os.MkdirTemp("", "numentry-check-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	dbPath := filepath.Join(dir, "check.db")
	if err := database.RunMigrations(dbPath); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := database.SeedDefaults(ctx, db); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	repo := repository.NewEnvelopeRepo(db)
	envs, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list envelopes: %w", err)
	}
	if len(envs) == 0 {
		return fmt.Errorf("no envelopes seeded")
	}
	env := envs[0]

	conv := numinput.NewConverter(cfg.Formatter())
	field := numinput.NewModel(env.ID, numinput.Props{
		Value:     numinput.ValueFromNull(env.Amount),
		Format:    cfg.Number.Format,
		Converter: &conv,
	}, numinput.WithCursorMode(cursor.CursorStatic))

	var blurred *numinput.BlurMsg
	handle := func(cmd tea.Cmd) {
		for _, msg := range runCmd(cmd) {
			if m, ok := msg.(numinput.BlurMsg); ok {
				blurred = &m
			}
		}
	}

	handle(field.Focus())
	typed := conv.Raw(numinput.Number(checkAmount))
	handle(field.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(typed)}))
	if got := field.Display(); got != typed {
		return fmt.Errorf("edit buffer = %q, want %q", got, typed)
	}
	handle(field.Blur())
	if blurred == nil {
		return fmt.Errorf("no blur message")
	}
	if err := repo.SetAmount(ctx, blurred.ID, blurred.Value.NullFloat64()); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	stored, err := repo.Get(ctx, env.ID)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if got := numinput.ValueFromNull(stored.Amount); !got.Equal(field.Value()) {
		return fmt.Errorf("stored %s, field holds %s", got, field.Value())
	}

	fmt.Fprintf(w, "locale=%s format=%q\n", cfg.Formatter().Locale().Tag, cfg.Number.Format)
	fmt.Fprintf(w, "envelope=%s typed=%q display=%q stored=%s\n", env.Name, typed, field.Display(), field.Value())
	fmt.Fprintln(w, "check ok")
	return nil
}

// runCmd executes cmd and any batched commands it returns.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
