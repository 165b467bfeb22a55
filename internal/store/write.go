package store

import (
	"context"
	"fmt"

	"github.com/roach88/mixq/internal/engine"
	"github.com/roach88/mixq/internal/mixed"
)

// Seed appends values as new records in one transaction and returns them.
//
// Seq numbers continue after the highest seq already stored, so repeated
// seeds keep a single insertion order. On any failure nothing is written.
func (s *Store) Seed(ctx context.Context, values []mixed.Value) ([]mixed.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	var last int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM records`).Scan(&last); err != nil {
		return nil, fmt.Errorf("seed: last seq: %w", err)
	}
	clock := engine.NewClockAt(last)

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (seq, id, kind, payload, key)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("seed: prepare insert: %w", err)
	}
	defer stmt.Close()

	records := make([]mixed.Record, len(values))
	for i, v := range values {
		rec := mixed.Record{ID: s.ids.Generate(), Seq: clock.Next(), Mixed: v}
		kind, payload := mixed.Encode(v)
		if _, err := stmt.ExecContext(ctx, rec.Seq, rec.ID, kind, payload, v.Key()); err != nil {
			return nil, fmt.Errorf("seed: insert record %d: %w", i, err)
		}
		records[i] = rec
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("seed: commit: %w", err)
	}
	return records, nil
}

// Reset deletes every record.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("reset records: %w", err)
	}
	return nil
}
