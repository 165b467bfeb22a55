package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/fixture"
	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedReference(t *testing.T, s *Store) []mixed.Record {
	t.Helper()
	records, err := s.Seed(context.Background(), fixture.MustGenerate(fixture.Reference()))
	require.NoError(t, err)
	return records
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))

	version, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.Seed(context.Background(), []mixed.Value{mixed.Int(1)})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Seed(context.Background(), []mixed.Value{mixed.Null(), mixed.String("x")})
	require.NoError(t, err)

	n, err := s.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSeed_RoundTripsEveryValue(t *testing.T) {
	s := createTestStore(t)
	values := fixture.MustGenerate(fixture.Reference())

	seeded, err := s.Seed(context.Background(), values)
	require.NoError(t, err)
	require.Len(t, seeded, len(values))

	read, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, read, len(values))

	for i, rec := range read {
		assert.Equal(t, int64(i+1), rec.Seq)
		assert.Equal(t, seeded[i].ID, rec.ID)
		assert.True(t, mixed.Equal(values[i], rec.Mixed), "seq %d: %s != %s", rec.Seq, values[i], rec.Mixed)
	}
}

func TestSeed_ContinuesSeq(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(NewSequentialGenerator("rec")))
	ctx := context.Background()

	first, err := s.Seed(ctx, []mixed.Value{mixed.Int(1), mixed.Int(2)})
	require.NoError(t, err)
	second, err := s.Seed(ctx, []mixed.Value{mixed.Int(3)})
	require.NoError(t, err)

	assert.Equal(t, int64(2), first[1].Seq)
	assert.Equal(t, int64(3), second[0].Seq)
	assert.Equal(t, "rec-3", second[0].ID)

	last, err := s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), last)
}

type repeatingGenerator struct{}

func (repeatingGenerator) Generate() string { return "same" }

func TestSeed_AllOrNothing(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(repeatingGenerator{}))
	ctx := context.Background()

	_, err := s.Seed(ctx, []mixed.Value{mixed.Int(1), mixed.Int(2)})
	require.Error(t, err, "duplicate id violates UNIQUE")

	n, err := s.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n, "failed batch must leave no records")
}

func TestReadRecord(t *testing.T) {
	s := createTestStore(t)
	records := seedReference(t, s)

	got, err := s.ReadRecord(context.Background(), records[5].ID)
	require.NoError(t, err)
	assert.Equal(t, records[5].Seq, got.Seq)

	_, err = s.ReadRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCount_Reference(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter query.Predicate
		want   int
	}{
		{"all", nil, 106},
		{"null", query.IsNull{Field: "mixed"}, 9},
		{"not null", query.IsNotNull{Field: "mixed"}, 97},
		{"equal int", query.Compare{Field: "mixed", Op: query.OpEqual, Value: mixed.Int(-3)}, 3},
		{"equal bool", query.Compare{Field: "mixed", Op: query.OpEqual, Value: mixed.Bool(true)}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := s.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestScan_PushdownAndFallback(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s)
	ctx := context.Background()

	seq, pushed, err := s.Scan(ctx, query.IsNull{Field: "mixed"})
	require.NoError(t, err)
	assert.True(t, pushed)
	n := 0
	for rec := range seq {
		assert.True(t, rec.Mixed.IsNull())
		n++
	}
	assert.Equal(t, 9, n)

	seq, pushed, err = s.Scan(ctx, query.Compare{Field: "mixed", Op: query.OpGreater, Value: mixed.Int(0)})
	require.NoError(t, err)
	assert.False(t, pushed)
	var prev int64
	n = 0
	for rec := range seq {
		assert.Greater(t, rec.Seq, prev)
		prev = rec.Seq
		n++
	}
	assert.Equal(t, 106, n)
}

func TestSnapshot(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s)

	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 106, snap.Len())
	assert.True(t, snap.At(0).Mixed.IsNull())
}

func TestReset(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s)
	ctx := context.Background()

	require.NoError(t, s.Reset(ctx))
	n, err := s.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()
	assert.Len(t, id, 36)
	assert.Equal(t, byte('7'), id[14])
	assert.NotEqual(t, id, UUIDv7Generator{}.Generate())
}
