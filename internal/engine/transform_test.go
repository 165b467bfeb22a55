package engine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

func mixedField(t *testing.T) Accessor {
	t.Helper()
	get, err := FieldAccessor(mixed.FieldMixed)
	require.NoError(t, err)
	return get
}

func seqs(rs []mixed.Record) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.Seq
	}
	return out
}

func TestSort_StableForEqualValues(t *testing.T) {
	snap := SnapshotOf([]mixed.Value{
		mixed.Int(2), mixed.Null(), mixed.Int(1), mixed.Null(), mixed.Int(2),
	})

	asc := Sort(snap.All(), mixedField(t), query.Ascending)
	assert.Equal(t, []int64{2, 4, 3, 1, 5}, seqs(asc))

	desc := Sort(snap.All(), mixedField(t), query.Descending)
	assert.Equal(t, []int64{1, 5, 3, 2, 4}, seqs(desc))
}

func TestSort_DoesNotMutateSource(t *testing.T) {
	snap := SnapshotOf([]mixed.Value{mixed.Int(3), mixed.Int(1)})
	_ = Sort(snap.All(), mixedField(t), query.Ascending)
	assert.Equal(t, int64(1), snap.At(0).Seq)
}

func TestDistinct_KeepsFirstOccurrence(t *testing.T) {
	snap := SnapshotOf([]mixed.Value{
		mixed.Int(1), mixed.Double(1), mixed.Int(1), mixed.Null(), mixed.Null(), mixed.Double(1),
	})

	got := slices.Collect(Distinct(snap.All(), mixedField(t)))
	assert.Equal(t, []int64{1, 2, 4}, seqs(got))
}

func TestLimit(t *testing.T) {
	snap := SnapshotOf([]mixed.Value{mixed.Int(1), mixed.Int(2), mixed.Int(3)})

	assert.Equal(t, 2, Count(Limit(snap.All(), 2)))
	assert.Equal(t, 3, Count(Limit(snap.All(), 10)))
	assert.Equal(t, 0, Count(Limit(snap.All(), 0)))
}

func TestApply_DescriptorOrderMatters(t *testing.T) {
	snap := SnapshotOf([]mixed.Value{
		mixed.Int(5), mixed.Int(1), mixed.Int(5), mixed.Int(1),
	})

	sortThenDistinct, err := Apply(snap.All(), []query.Descriptor{
		query.SortBy{Field: mixed.FieldMixed},
		query.DistinctOn{Field: mixed.FieldMixed},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, seqs(slices.Collect(sortThenDistinct)))

	limitThenSort, err := Apply(snap.All(), []query.Descriptor{
		query.LimitTo{N: 1},
		query.SortBy{Field: mixed.FieldMixed},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, seqs(slices.Collect(limitThenSort)))
}

func TestSnapshot_OrdersBySeq(t *testing.T) {
	snap := NewSnapshot([]mixed.Record{
		{ID: "b", Seq: 2, Mixed: mixed.Int(2)},
		{ID: "a", Seq: 1, Mixed: mixed.Int(1)},
	})
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, "a", snap.At(0).ID)

	copied := snap.Records()
	copied[0].ID = "z"
	assert.Equal(t, "a", snap.At(0).ID)
}
