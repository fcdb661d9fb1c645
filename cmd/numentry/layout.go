package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jask/numentry/internal/database"
	"github.com/jask/numentry/internal/database/repository"
	"github.com/jask/numentry/internal/logging"
	"github.com/jask/numentry/internal/numfmt"
	"github.com/jask/numentry/internal/prefs"
)

// syncLayout applies the envelope layout file: listed envelopes take the
// file's order and formats and keep their stored amounts, and envelopes the
// file no longer lists are removed. When there is no file yet the current
// envelopes are written out so the user has something to edit.
func syncLayout(ctx context.Context, repo *repository.EnvelopeRepo, logger *slog.Logger) error {
	layout, err := prefs.LoadLayout()
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	envs, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list envelopes: %w", err)
	}
	if len(layout) == 0 {
		if len(envs) == 0 {
			return nil
		}
		out := make([]prefs.Envelope, 0, len(envs))
		for _, env := range envs {
			out = append(out, prefs.Envelope{Name: env.Name, Format: env.Format})
		}
		return prefs.SaveLayout(out)
	}

	// Resolve every format before writing so a bad entry changes nothing.
	formats := make([]string, len(layout))
	for i, entry := range layout {
		if entry.Format == "" {
			continue
		}
		if formats[i], err = numfmt.ResolveFormat(entry.Format); err != nil {
			return fmt.Errorf("layout %s: %w", entry.Name, err)
		}
	}

	byName := make(map[string]repository.Envelope, len(envs))
	for _, env := range envs {
		byName[env.Name] = env
	}
	for i, entry := range layout {
		env := repository.Envelope{
			ID:        database.EnvelopeID(entry.Name),
			Name:      entry.Name,
			Format:    formats[i],
			SortOrder: i,
		}
		if existing, ok := byName[entry.Name]; ok {
			env.ID = existing.ID
			env.Amount = existing.Amount
			delete(byName, entry.Name)
		}
		if err := repo.Upsert(ctx, env); err != nil {
			return fmt.Errorf("apply %s: %w", entry.Name, err)
		}
	}

	for name, env := range byName {
		if err := repo.Delete(ctx, env.ID); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
		logger.Info("envelope removed by layout", logging.FieldName, name, logging.FieldEnvelope, env.ID)
	}
	return nil
}
