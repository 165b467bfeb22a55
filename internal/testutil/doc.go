// Package testutil provides seeded stores, snapshots and quiet loggers for
// tests in packages above the store layer.
package testutil
