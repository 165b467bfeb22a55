// Package query defines the query model evaluated against mixed records.
//
// A Query is a filter Predicate plus an ordered list of Descriptors
// (SORT, DISTINCT, LIMIT). Descriptors apply in the order they were added,
// so SORT then DISTINCT keeps the first record of each value in sorted
// order, while DISTINCT then SORT keeps the first record in scan order.
//
// SEALED INTERFACES:
//
// Predicate and Descriptor are sealed using the marker method pattern. Only
// types in this package implement them, which keeps type switches in the
// matcher (internal/engine) and the SQL compiler (internal/querysql)
// exhaustive.
//
// VALIDATION:
//
// Queries are validated against a Schema before any record is scanned.
// Validation failures are returned as *ValidationError wrapping
// ErrInvalidArgument:
//
//   - unknown field names
//   - isEmpty / isNotEmpty on a scalar mixed field (only collections can be empty)
//   - LIMIT below 1
//   - NOT with no predicate to negate
//
// The Builder validates each call as it is made and reports the first
// failure from Build, mirroring a fluent query API that throws on the
// offending call.
//
// TEXTUAL FORM:
//
// Query.String renders the textual query language form, for example:
//
//	mixed == NULL SORT(mixed ASC) DISTINCT(mixed) LIMIT(5)
//
// An empty filter renders as TRUEPREDICATE.
package query
