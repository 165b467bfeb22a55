package engine

import (
	"iter"
	"slices"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// Filter yields the records m accepts.
func Filter(seq iter.Seq[mixed.Record], m Matcher) iter.Seq[mixed.Record] {
	return func(yield func(mixed.Record) bool) {
		for r := range seq {
			if m(r) && !yield(r) {
				return
			}
		}
	}
}

// Count consumes seq and returns its length.
func Count(seq iter.Seq[mixed.Record]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// Sort returns the records of seq stably ordered by get. Records with equal
// values keep their input order in both directions.
func Sort(seq iter.Seq[mixed.Record], get Accessor, order query.Order) []mixed.Record {
	rs := slices.Collect(seq)
	slices.SortStableFunc(rs, func(a, b mixed.Record) int {
		c := mixed.Compare(get(a), get(b))
		if order == query.Descending {
			return -c
		}
		return c
	})
	return rs
}

// Distinct yields the first record for every distinct value of get.
func Distinct(seq iter.Seq[mixed.Record], get Accessor) iter.Seq[mixed.Record] {
	return func(yield func(mixed.Record) bool) {
		seen := make(map[string]struct{})
		for r := range seq {
			key := get(r).Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if !yield(r) {
				return
			}
		}
	}
}

// Limit yields at most n records.
func Limit(seq iter.Seq[mixed.Record], n int) iter.Seq[mixed.Record] {
	return func(yield func(mixed.Record) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for r := range seq {
			if !yield(r) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// Apply runs descriptors over seq in order.
func Apply(seq iter.Seq[mixed.Record], descriptors []query.Descriptor) (iter.Seq[mixed.Record], error) {
	for _, d := range descriptors {
		switch desc := d.(type) {
		case query.SortBy:
			get, err := FieldAccessor(desc.Field)
			if err != nil {
				return nil, err
			}
			seq = slices.Values(Sort(seq, get, desc.Order))
		case query.DistinctOn:
			get, err := FieldAccessor(desc.Field)
			if err != nil {
				return nil, err
			}
			seq = Distinct(seq, get)
		case query.LimitTo:
			seq = Limit(seq, desc.N)
		}
	}
	return seq, nil
}
