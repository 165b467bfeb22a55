package engine

import (
	"context"
	"iter"
	"slices"
	"strconv"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// Source yields the records a query runs over, in Seq order.
//
// A Source may apply filter itself; pushed reports whether it did. When
// pushed is false the executor evaluates the filter in memory.
type Source interface {
	Scan(ctx context.Context, filter query.Predicate) (records iter.Seq[mixed.Record], pushed bool, err error)
}

// Snapshot is an immutable, in-memory set of records ordered by Seq.
type Snapshot struct {
	records []mixed.Record
}

// NewSnapshot copies records and orders them by Seq.
func NewSnapshot(records []mixed.Record) *Snapshot {
	rs := slices.Clone(records)
	slices.SortStableFunc(rs, func(a, b mixed.Record) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
	return &Snapshot{records: rs}
}

// SnapshotOf stamps values with consecutive Seq numbers starting at 1.
// IDs are the decimal Seq.
func SnapshotOf(values []mixed.Value) *Snapshot {
	clock := NewClock()
	rs := make([]mixed.Record, len(values))
	for i, v := range values {
		seq := clock.Next()
		rs[i] = mixed.Record{ID: strconv.FormatInt(seq, 10), Seq: seq, Mixed: v}
	}
	return &Snapshot{records: rs}
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// At returns the i-th record in Seq order.
func (s *Snapshot) At(i int) mixed.Record {
	return s.records[i]
}

// All yields every record in Seq order.
func (s *Snapshot) All() iter.Seq[mixed.Record] {
	return slices.Values(s.records)
}

// Records returns a copy of the records.
func (s *Snapshot) Records() []mixed.Record {
	return slices.Clone(s.records)
}

// Scan implements Source. Snapshots never push filters down.
func (s *Snapshot) Scan(ctx context.Context, _ query.Predicate) (iter.Seq[mixed.Record], bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	return s.All(), false, nil
}
