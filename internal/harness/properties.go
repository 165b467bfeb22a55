package harness

import (
	"context"
	"fmt"

	"github.com/roach88/mixq/internal/engine"
	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// PropertyError is a violated query invariant.
type PropertyError struct {
	Property string
	Message  string
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	return fmt.Sprintf("property %s violated: %s", e.Property, e.Message)
}

// Property names.
const (
	PropNullPartition = "null_partition"
	PropEmptyRejected = "empty_rejected"
	PropSortOrder     = "sort_order"
	PropDistinct      = "distinct"
	PropCount         = "count"
)

// CheckProperties runs the invariant queries against src and reports every
// violation. The queries are independent and run concurrently.
func CheckProperties(ctx context.Context, exec *engine.Executor, src engine.Source) []*PropertyError {
	field := mixed.FieldMixed
	queries := []*query.Query{
		{},
		{Filter: query.IsNull{Field: field}},
		{Filter: query.IsNotNull{Field: field}},
		{Descriptors: []query.Descriptor{query.SortBy{Field: field, Order: query.Ascending}}},
		{Descriptors: []query.Descriptor{query.SortBy{Field: field, Order: query.Descending}}},
		{Descriptors: []query.Descriptor{query.DistinctOn{Field: field}}},
	}

	var failures []*PropertyError
	fail := func(prop, format string, args ...any) {
		failures = append(failures, &PropertyError{Property: prop, Message: fmt.Sprintf(format, args...)})
	}

	results, err := exec.ExecuteAll(ctx, src, queries)
	if err != nil {
		fail(PropCount, "invariant queries failed: %v", err)
		return failures
	}
	all, nulls, others, asc, desc, distinct := results[0], results[1], results[2], results[3], results[4], results[5]

	// count
	n, err := exec.Count(ctx, src, nil)
	switch {
	case err != nil:
		fail(PropCount, "count failed: %v", err)
	case n != all.Len():
		fail(PropCount, "count() = %d, scan returned %d records", n, all.Len())
	}

	// isNull and isNotNull split the records with no overlap and no loss.
	seen := make(map[int64]int, all.Len())
	for _, r := range nulls.Records {
		seen[r.Seq]++
	}
	for _, r := range others.Records {
		seen[r.Seq]++
	}
	if !nulls.AllNull() {
		fail(PropNullPartition, "isNull returned a non-null record")
	}
	if !others.NoneNull() {
		fail(PropNullPartition, "isNotNull returned a null record")
	}
	for _, r := range all.Records {
		switch seen[r.Seq] {
		case 1:
		case 0:
			fail(PropNullPartition, "record seq %d matched neither isNull nor isNotNull", r.Seq)
		default:
			fail(PropNullPartition, "record seq %d matched both isNull and isNotNull", r.Seq)
		}
	}

	// isEmpty and isNotEmpty never apply to the scalar field.
	for _, p := range []query.Predicate{query.IsEmpty{Field: field}, query.IsNotEmpty{Field: field}} {
		_, err := exec.Execute(ctx, src, &query.Query{Filter: p})
		if !query.IsInvalidArgument(err) {
			fail(PropEmptyRejected, "%s returned %v, want invalid argument", query.Describe(p), err)
		}
	}

	// Sort keeps every record and orders them.
	for _, sorted := range []struct {
		res   *engine.Results
		order query.Order
	}{{asc, query.Ascending}, {desc, query.Descending}} {
		if sorted.res.Len() != all.Len() {
			fail(PropSortOrder, "SORT %s returned %d of %d records", sorted.order, sorted.res.Len(), all.Len())
		}
		if i := firstUnsorted(sorted.res.Values(), sorted.order); i >= 0 {
			fail(PropSortOrder, "SORT %s out of order at index %d", sorted.order, i)
		}
	}

	// Distinct values are pairwise unequal and cover every value.
	if !distinct.Unique() {
		fail(PropDistinct, "DISTINCT returned equal values")
	}
	if distinct.Len() > all.Len() {
		fail(PropDistinct, "DISTINCT returned %d records from %d", distinct.Len(), all.Len())
	}
	kept := make(map[string]struct{}, distinct.Len())
	for _, v := range distinct.Values() {
		kept[v.Key()] = struct{}{}
	}
	for _, v := range all.Values() {
		if _, ok := kept[v.Key()]; !ok {
			fail(PropDistinct, "value %s missing from DISTINCT", v)
			break
		}
	}

	return failures
}
