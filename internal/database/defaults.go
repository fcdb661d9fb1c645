package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/numentry/internal/database/repository"
)

// DefaultEnvelopes are created on a fresh database, in display order.
var DefaultEnvelopes = []string{
	"Rent",
	"Groceries",
	"Transport",
	"Utilities",
	"Savings",
	"Fun",
}

// EnvelopeID derives the stable id for an envelope name.
func EnvelopeID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("envelope:"+name)).String()
}

// SeedDefaults ensures baseline envelopes exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewEnvelopeRepo(db)
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list envelopes: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for idx, name := range DefaultEnvelopes {
		env := repository.Envelope{ID: EnvelopeID(name), Name: name, SortOrder: idx}
		if err := repo.Upsert(ctx, env); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return nil
}
