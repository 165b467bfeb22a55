package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/fixture"
	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

func TestReferenceStore(t *testing.T) {
	st := ReferenceStore(t)

	n, err := st.Count(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, 106, n)

	rec, err := st.ReadRecord(t.Context(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Seq)
	assert.True(t, rec.Mixed.IsNull())
}

func TestSeededStore_Isolated(t *testing.T) {
	plan := fixture.Plan{Name: "one", Groups: []fixture.Group{{Kind: mixed.KindUUID, Records: 1, Distinct: 1}}}
	a := SeededStore(t, plan)
	b := SeededStore(t, plan)

	ra, err := a.ReadAll(t.Context())
	require.NoError(t, err)
	rb, err := b.ReadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, ra, 1)
	require.Len(t, rb, 1)
	assert.Equal(t, "rec-1", ra[0].ID)
	assert.Equal(t, "rec-1", rb[0].ID)
}

func TestReferenceSnapshot(t *testing.T) {
	assert.Equal(t, 106, ReferenceSnapshot().Len())
}

func TestNewExecutor(t *testing.T) {
	q := &query.Query{Filter: query.IsNull{Field: mixed.FieldMixed}}

	fromSnapshot, err := NewExecutor().Execute(t.Context(), ReferenceSnapshot(), q)
	require.NoError(t, err)
	fromStore, err := NewExecutor().Execute(t.Context(), ReferenceStore(t), q)
	require.NoError(t, err)

	assert.Equal(t, 9, fromSnapshot.Len())
	assert.Equal(t, fromSnapshot.Len(), fromStore.Len())
	assert.False(t, fromSnapshot.Pushed)
	assert.True(t, fromStore.Pushed)
}
