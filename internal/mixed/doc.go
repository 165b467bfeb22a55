// Package mixed provides the dynamically-typed value stored in a mixed column.
//
// A Value is a tagged variant: a closed Kind plus exactly one payload that is
// valid for that kind. Values are immutable once constructed and every
// kind-specific behavior (ordering, equality, canonical keys, encoding) is
// dispatched on the tag, never on runtime type inspection.
//
// Key design constraints:
//   - Null is a value of its own kind, distinct from an absent field
//   - Compare is total over every pair of values (kind rank first, payload second)
//   - Equal and Key agree: Equal(a, b) if and only if a.Key() == b.Key()
//   - mixed imports nothing internal; every other package builds on it
package mixed
