package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/engine"
	"github.com/roach88/mixq/internal/fixture"
	"github.com/roach88/mixq/internal/query"
	"github.com/roach88/mixq/internal/store"
)

// IDPrefix prefixes record ids in stores opened by this package, so the
// n-th seeded record has id "rec-n".
const IDPrefix = "rec"

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewExecutor returns an executor over the default schema with logging
// suppressed.
func NewExecutor(opts ...engine.ExecutorOption) *engine.Executor {
	opts = append([]engine.ExecutorOption{engine.WithLogger(DiscardLogger())}, opts...)
	return engine.NewExecutor(query.DefaultSchema(), opts...)
}

// ReferenceSnapshot returns the reference fixture as an in-memory snapshot.
func ReferenceSnapshot() *engine.Snapshot {
	return engine.SnapshotOf(fixture.MustGenerate(fixture.Reference()))
}

// SeededStore opens an in-memory store seeded with plan. The store is
// closed when the test ends.
func SeededStore(t testing.TB, plan fixture.Plan) *store.Store {
	t.Helper()

	values, err := fixture.Generate(plan)
	require.NoError(t, err)

	st, err := store.Open(":memory:", store.WithIDGenerator(store.NewSequentialGenerator(IDPrefix)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	_, err = st.Seed(context.Background(), values)
	require.NoError(t, err)
	return st
}

// ReferenceStore is SeededStore with the reference plan.
func ReferenceStore(t testing.TB) *store.Store {
	t.Helper()
	return SeededStore(t, fixture.Reference())
}
