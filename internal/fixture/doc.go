// Package fixture generates deterministic mixed-value datasets.
//
// A Plan lists groups of (kind, records, distinct). Generate interleaves the
// groups round-robin: round r emits, for every group in plan order whose
// record count exceeds r, the value with index r % distinct. The same plan
// always yields the same values in the same order.
//
// The reference plan produces 106 records: 9 null, 97 non-null, 60 distinct
// values. Its null group comes first, so the first record in scan order is
// null, and its highest-ranked kind is uuid, so an ascending sort ends with
// a uuid.
//
// Plans can also be loaded from CUE or JSON files; they are unified with an
// embedded CUE schema before decoding.
package fixture
