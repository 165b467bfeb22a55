// Package store persists mixed records in SQLite.
//
// Each record is one row of the records table:
//
//	seq      INTEGER PRIMARY KEY  insertion order, the scan order
//	id       TEXT UNIQUE          opaque record id (UUIDv7 by default)
//	kind     TEXT                 mixed.Kind name
//	payload  TEXT                 mixed.Encode payload
//	key      TEXT                 mixed.Value.Key, equal iff values are equal
//
// Seed writes a batch in a single transaction: either every record becomes
// visible or none does.
//
// Store implements engine.Source. Scan pushes null checks and equality down
// to SQL through internal/querysql and falls back to a full scan for
// predicates SQL cannot express; both paths return records in seq order.
//
// The database runs in WAL mode with a single connection, matching SQLite's
// single-writer model.
package store
