package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/roach88/mixq/internal/engine"
	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
	"github.com/roach88/mixq/internal/querysql"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

var _ engine.Source = (*Store)(nil)

// ReadAll returns every record in seq order.
func (s *Store) ReadAll(ctx context.Context) ([]mixed.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, kind, payload
		FROM records
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query all records: %w", err)
	}
	return collectRecords(rows)
}

// ReadRecord returns the record with the given id.
func (s *Store) ReadRecord(ctx context.Context, id string) (mixed.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, kind, payload
		FROM records
		WHERE id = ?
	`, id)

	var seq int64
	var rid, kind, payload string
	if err := row.Scan(&seq, &rid, &kind, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mixed.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return mixed.Record{}, fmt.Errorf("read record %s: %w", id, err)
	}
	return decodeRecord(seq, rid, kind, payload)
}

// Snapshot loads every record into an immutable in-memory snapshot.
func (s *Store) Snapshot(ctx context.Context) (*engine.Snapshot, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return engine.NewSnapshot(records), nil
}

// Scan implements engine.Source. Filters the SQL compiler cannot express
// are left to the caller (pushed=false).
func (s *Store) Scan(ctx context.Context, filter query.Predicate) (iter.Seq[mixed.Record], bool, error) {
	compiler := querysql.NewSQLCompiler()
	compiler.Table = s.table

	sqlText, params, err := compiler.Compile(filter)
	pushed := true
	if err != nil {
		if !querysql.IsUnsupported(err) {
			return nil, false, fmt.Errorf("compile filter: %w", err)
		}
		sqlText, params, _ = compiler.Compile(nil)
		pushed = false
	}

	rows, err := s.db.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, false, fmt.Errorf("scan records: %w", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, false, err
	}
	return slices.Values(records), pushed, nil
}

// Count returns the number of records matching filter. Only filters the SQL
// compiler supports are accepted; use engine.Executor.Count otherwise.
func (s *Store) Count(ctx context.Context, filter query.Predicate) (int, error) {
	compiler := querysql.NewSQLCompiler()
	compiler.Table = s.table

	sqlText, params, err := compiler.CompileCount(filter)
	if err != nil {
		return 0, fmt.Errorf("compile count: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, sqlText, params...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// LastSeq returns the highest seq stored, or 0 when empty.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM records`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq, nil
}

func collectRecords(rows *sql.Rows) ([]mixed.Record, error) {
	defer rows.Close()

	records := []mixed.Record{}
	for rows.Next() {
		var seq int64
		var id, kind, payload string
		if err := rows.Scan(&seq, &id, &kind, &payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := decodeRecord(seq, id, kind, payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func decodeRecord(seq int64, id, kind, payload string) (mixed.Record, error) {
	v, err := mixed.Decode(kind, payload)
	if err != nil {
		return mixed.Record{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return mixed.Record{ID: id, Seq: seq, Mixed: v}, nil
}
