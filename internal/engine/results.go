package engine

import (
	"github.com/roach88/mixq/internal/mixed"
)

// Results is the output of one query.
type Results struct {
	// Query is the textual form of the executed query.
	Query string `json:"query"`

	// Records are the matching records after all descriptors.
	Records []mixed.Record `json:"records"`

	// Scanned is the number of records read from the source.
	Scanned int `json:"scanned"`

	// Pushed reports whether the source applied the filter.
	Pushed bool `json:"pushed"`
}

// Len returns the number of result records.
func (r *Results) Len() int {
	return len(r.Records)
}

// First returns the first record.
func (r *Results) First() (mixed.Record, bool) {
	if len(r.Records) == 0 {
		return mixed.Record{}, false
	}
	return r.Records[0], true
}

// Last returns the last record.
func (r *Results) Last() (mixed.Record, bool) {
	if len(r.Records) == 0 {
		return mixed.Record{}, false
	}
	return r.Records[len(r.Records)-1], true
}

// Values returns the mixed field of every record.
func (r *Results) Values() []mixed.Value {
	vs := make([]mixed.Value, len(r.Records))
	for i, rec := range r.Records {
		vs[i] = rec.Mixed
	}
	return vs
}

// AllNull reports whether every record holds null. True when empty.
func (r *Results) AllNull() bool {
	for _, rec := range r.Records {
		if !rec.Mixed.IsNull() {
			return false
		}
	}
	return true
}

// NoneNull reports whether no record holds null. True when empty.
func (r *Results) NoneNull() bool {
	for _, rec := range r.Records {
		if rec.Mixed.IsNull() {
			return false
		}
	}
	return true
}

// Unique reports whether no two records hold equal values.
func (r *Results) Unique() bool {
	seen := make(map[string]struct{}, len(r.Records))
	for _, rec := range r.Records {
		key := rec.Mixed.Key()
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}
