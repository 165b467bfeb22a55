package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/mixq/internal/engine"
	"github.com/roach88/mixq/internal/fixture"
	"github.com/roach88/mixq/internal/query"
	"github.com/roach88/mixq/internal/store"
)

// Harness executes scenario steps against one seeded store.
type Harness struct {
	store    *store.Store
	executor *engine.Executor
	schema   query.Schema
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, seeded
// with sequential record ids so results are reproducible.
//
// Execution flow:
// 1. Resolve the fixture plan and generate its values
// 2. Seed a fresh in-memory store in one transaction
// 3. Execute each step and evaluate its expectations
// 4. Optionally check the query invariants over the store
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	plan, err := loadFixture(scenario.Fixture)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}
	values, err := fixture.Generate(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to generate fixture: %w", err)
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(store.NewSequentialGenerator("rec")))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if _, err := st.Seed(ctx, values); err != nil {
		return nil, fmt.Errorf("failed to seed fixture: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	schema := query.DefaultSchema()
	h := &Harness{
		store:    st,
		executor: engine.NewExecutor(schema, engine.WithLogger(logger)),
		schema:   schema,
		logger:   logger,
	}

	result := NewResult()
	result.Fixture = plan.Name
	result.Records = len(values)

	for _, step := range scenario.Steps {
		sr := h.executeStep(ctx, step)
		result.Steps = append(result.Steps, sr)
		for _, failure := range EvaluateExpect(step, sr) {
			result.AddError(failure.Error())
		}
	}

	if scenario.Properties {
		for _, failure := range CheckProperties(ctx, h.executor, st) {
			result.AddError(failure.Error())
		}
	}

	return result, nil
}

// executeStep builds and runs one step. Query errors are recorded in the
// step result, not returned.
func (h *Harness) executeStep(ctx context.Context, step Step) StepResult {
	sr := StepResult{Name: step.Name}

	q, err := step.Query.Build(h.schema)
	if err != nil {
		sr.Error, sr.Detail = ErrorClass(err), err.Error()
		return sr
	}
	sr.Query = q.String()

	res, err := h.executor.Execute(ctx, h.store, q)
	if err != nil {
		sr.Error, sr.Detail = ErrorClass(err), err.Error()
		return sr
	}

	sr.Count = res.Len()
	sr.Pushed = res.Pushed
	if first, ok := res.First(); ok {
		sr.FirstKind = first.Mixed.Kind().String()
	}
	if last, ok := res.Last(); ok {
		sr.LastKind = last.Mixed.Kind().String()
	}
	if res.Len() > 0 {
		sr.Kinds = make(map[string]int)
		for _, v := range res.Values() {
			sr.Kinds[v.Kind().String()]++
		}
	}
	h.logger.Debug("step executed", "step", step.Name, "query", sr.Query, "count", sr.Count)

	sr.results = res
	return sr
}

// ErrorClass maps an execution error to its class name.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return ""
	case query.IsInvalidArgument(err):
		return ErrInvalidArgument
	case engine.IsQuotaError(err):
		return ErrQuotaExceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCancelled
	default:
		return ErrOther
	}
}
