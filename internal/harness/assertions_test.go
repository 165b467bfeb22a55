package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/engine"
	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func stepResult(values ...mixed.Value) StepResult {
	records := make([]mixed.Record, len(values))
	for i, v := range values {
		records[i] = mixed.Record{Seq: int64(i + 1), Mixed: v}
	}
	sr := StepResult{Name: "s", Query: "TRUEPREDICATE", Count: len(values)}
	if len(values) > 0 {
		sr.FirstKind = values[0].Kind().String()
		sr.LastKind = values[len(values)-1].Kind().String()
	}
	sr.results = &engine.Results{Records: records}
	return sr
}

func TestEvaluateExpect_AllPass(t *testing.T) {
	step := Step{Name: "s", Expect: Expect{
		Count:     intPtr(3),
		NoneNull:  boolPtr(true),
		Unique:    boolPtr(true),
		FirstKind: "integer",
		LastKind:  "string",
		Sorted:    "asc",
	}}
	sr := stepResult(mixed.Int(1), mixed.Int(2), mixed.String("a"))

	assert.Empty(t, EvaluateExpect(step, sr))
}

func TestEvaluateExpect_Failures(t *testing.T) {
	step := Step{Name: "s", Expect: Expect{
		Count:    intPtr(2),
		AllNull:  boolPtr(true),
		Unique:   boolPtr(true),
		LastKind: "uuid",
		Sorted:   "asc",
	}}
	sr := stepResult(mixed.Int(2), mixed.Int(1), mixed.Int(1))

	failures := EvaluateExpect(step, sr)
	var checks []string
	for _, f := range failures {
		checks = append(checks, f.Check)
	}
	assert.Equal(t, []string{"count", "last_kind", "all_null", "unique", "sorted"}, checks)

	sorted := failures[len(failures)-1]
	assert.Contains(t, sorted.Actual, "at index 1")
	assert.Contains(t, sorted.Error(), `step "s": sorted failed`)
	assert.Contains(t, sorted.Error(), "Query: TRUEPREDICATE")
}

func TestEvaluateExpect_Errors(t *testing.T) {
	t.Run("expected error matches", func(t *testing.T) {
		step := Step{Name: "s", Expect: Expect{Error: ErrInvalidArgument}}
		sr := StepResult{Name: "s", Error: ErrInvalidArgument}
		assert.Empty(t, EvaluateExpect(step, sr))
	})

	t.Run("expected error missing", func(t *testing.T) {
		step := Step{Name: "s", Expect: Expect{Error: ErrInvalidArgument}}
		failures := EvaluateExpect(step, stepResult(mixed.Null()))
		require.Len(t, failures, 1)
		assert.Equal(t, "invalid_argument", failures[0].Expected)
		assert.Equal(t, "no error", failures[0].Actual)
	})

	t.Run("unexpected error", func(t *testing.T) {
		step := Step{Name: "s", Expect: Expect{Count: intPtr(1)}}
		sr := StepResult{Name: "s", Error: ErrQuotaExceeded, Detail: "scan quota exceeded"}
		failures := EvaluateExpect(step, sr)
		require.Len(t, failures, 1)
		assert.Equal(t, "error", failures[0].Check)
		assert.Equal(t, "quota_exceeded (scan quota exceeded)", failures[0].Actual)
	})
}

func TestEvaluateExpect_EmptyResult(t *testing.T) {
	step := Step{Name: "s", Expect: Expect{FirstKind: "null"}}
	failures := EvaluateExpect(step, stepResult())
	require.Len(t, failures, 1)
	assert.Equal(t, "<no records>", failures[0].Actual)
}

func TestFirstUnsorted(t *testing.T) {
	values := []mixed.Value{mixed.Null(), mixed.Bool(true), mixed.Int(-1), mixed.Int(-1)}

	assert.Equal(t, -1, firstUnsorted(values, query.Ascending))
	assert.Equal(t, 1, firstUnsorted(values, query.Descending))
	assert.Equal(t, -1, firstUnsorted(nil, query.Ascending))
}
