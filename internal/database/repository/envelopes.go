package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when no envelope has the requested id.
var ErrNotFound = errors.New("envelope not found")

const envelopeColumns = `id, name, amount, format, sort_order, updated_at`

// EnvelopeRepo handles envelopes.
type EnvelopeRepo struct {
	db *sql.DB
}

func NewEnvelopeRepo(db *sql.DB) *EnvelopeRepo { return &EnvelopeRepo{db: db} }

func (r *EnvelopeRepo) Upsert(ctx context.Context, e Envelope) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO envelopes(id, name, amount, format, sort_order, updated_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 amount=excluded.amount,
	 format=excluded.format,
	 sort_order=excluded.sort_order,
	 updated_at=CURRENT_TIMESTAMP;
	`, e.ID, e.Name, e.Amount, e.Format, e.SortOrder)
	return err
}

// SetAmount stores amount for id; an invalid NullFloat64 clears it.
func (r *EnvelopeRepo) SetAmount(ctx context.Context, id string, amount sql.NullFloat64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE envelopes SET amount = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, amount, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAmounts stores several amounts in one transaction.
func (r *EnvelopeRepo) SetAmounts(ctx context.Context, amounts map[string]sql.NullFloat64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for id, amount := range amounts {
		if _, err := tx.ExecContext(ctx, `UPDATE envelopes SET amount = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, amount, id); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *EnvelopeRepo) Get(ctx context.Context, id string) (*Envelope, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+envelopeColumns+` FROM envelopes WHERE id = ?`, id)
	e, err := scanEnvelope(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnvelopeRepo) List(ctx context.Context) ([]Envelope, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+envelopeColumns+` FROM envelopes ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Envelope
	for rows.Next() {
		e, err := scanEnvelope(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EnvelopeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM envelopes WHERE id = ?`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEnvelope(s scanner) (Envelope, error) {
	var e Envelope
	err := s.Scan(&e.ID, &e.Name, &e.Amount, &e.Format, &e.SortOrder, &e.UpdatedAt)
	return e, err
}
