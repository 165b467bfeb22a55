package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/fixture"
	"github.com/roach88/mixq/internal/store"
)

func TestSeedReference(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mixq.db")

	out, err := execute(t, "seed", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 106 records (9 null, 60 distinct)")
	assert.Contains(t, out, "[seq 1..106]")
}

func TestSeedJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mixq.db")

	out, err := execute(t, "seed", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   SeedResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, SeedResult{
		Database: dbPath,
		Plan:     "reference",
		Records:  106,
		Nulls:    9,
		Distinct: 60,
		FirstSeq: 1,
		LastSeq:  106,

		Fingerprint: fixture.Fingerprint(fixture.MustGenerate(fixture.Reference())),
	}, resp.Data)
}

func TestSeedAppendsAndResets(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mixq.db")

	_, err := execute(t, "seed", "--db", dbPath)
	require.NoError(t, err)

	out, err := execute(t, "seed", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "[seq 107..212]")

	out, err = execute(t, "seed", "--db", dbPath, "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 106 records")

	out, err = execute(t, "query", "--db", dbPath, "--count")
	require.NoError(t, err)
	assert.Equal(t, "106\n", out)
}

func TestSeedPlanFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mixq.db")
	planPath := filepath.Join(dir, "tiny.cue")
	require.NoError(t, os.WriteFile(planPath, []byte(`
name: "tiny"
groups: [{kind: "null", records: 1, distinct: 1}, {kind: "uuid", records: 2, distinct: 2}]
`), 0644))

	out, err := execute(t, "seed", "--db", dbPath, "--plan", planPath)
	require.NoError(t, err)
	assert.Contains(t, out, `Seeded 3 records (1 null, 3 distinct) from plan "tiny"`)
}

func TestSeedBadPlan(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(planPath, []byte(`groups: [{kind: "complex", records: 1, distinct: 1}]`), 0644))

	_, err := execute(t, "seed", "--db", filepath.Join(dir, "mixq.db"), "--plan", planPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load plan")
}

func TestSeedIDGenerator(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mixq.db")

	opts := &SeedOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    dbPath,
		IDGenerator: store.NewSequentialGenerator("r"),
	}
	cmd := NewSeedCommand(opts.RootOptions)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetContext(t.Context())
	require.NoError(t, runSeed(opts, cmd))

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	rec, err := st.ReadRecord(t.Context(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Seq)
	assert.True(t, rec.Mixed.IsNull())
}
