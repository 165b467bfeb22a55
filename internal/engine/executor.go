package engine

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// DefaultWorkers bounds concurrent queries in ExecuteAll.
const DefaultWorkers = 4

// Executor runs queries against a Source.
//
// An Executor holds no per-query state and is safe for concurrent use.
type Executor struct {
	schema  query.Schema
	logger  *slog.Logger
	maxScan int // 0 = unlimited
	workers int
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithMaxScan fails executions that read more than n records. n <= 0
// disables the check.
func WithMaxScan(n int) ExecutorOption {
	return func(e *Executor) {
		e.maxScan = n
	}
}

// WithWorkers sets how many queries ExecuteAll runs at once.
func WithWorkers(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewExecutor creates an executor for records described by schema.
func NewExecutor(schema query.Schema, opts ...ExecutorOption) *Executor {
	e := &Executor{
		schema:  schema,
		logger:  slog.Default(),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schema returns the schema queries are validated against.
func (e *Executor) Schema() query.Schema {
	return e.schema
}

// Execute validates q, scans src and applies the filter and descriptors.
func (e *Executor) Execute(ctx context.Context, src Source, q *query.Query) (*Results, error) {
	if err := query.Validate(e.schema, q); err != nil {
		return nil, invalidQuery(q, err)
	}
	text := q.String()

	matcher, err := Compile(e.schema, q.Filter)
	if err != nil {
		return nil, invalidQuery(q, err)
	}

	st, err := e.scan(ctx, src, q.Filter)
	if err != nil {
		return nil, e.fail(text, err)
	}

	seq := st.records
	if !st.pushed {
		seq = Filter(seq, matcher)
	}
	seq, err = Apply(seq, q.Descriptors)
	if err != nil {
		return nil, invalidQuery(q, err)
	}

	records := slices.Collect(seq)
	if st.err != nil {
		return nil, e.fail(text, st.err)
	}

	e.logger.Debug("query executed",
		"query", text,
		"pushed", st.pushed,
		"scanned", st.quota.Current(),
		"results", len(records),
	)
	return &Results{
		Query:   text,
		Records: records,
		Scanned: st.quota.Current(),
		Pushed:  st.pushed,
	}, nil
}

// Count returns how many records satisfy pred. Descriptors do not apply.
func (e *Executor) Count(ctx context.Context, src Source, pred query.Predicate) (int, error) {
	res, err := e.Execute(ctx, src, &query.Query{Filter: pred})
	if err != nil {
		return 0, err
	}
	return res.Len(), nil
}

// ExecuteAll runs independent queries concurrently and returns results in
// query order. The first failure cancels the rest.
func (e *Executor) ExecuteAll(ctx context.Context, src Source, queries []*query.Query) ([]*Results, error) {
	results := make([]*Results, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, q := range queries {
		g.Go(func() error {
			res, err := e.Execute(gctx, src, q)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanState is one execution's view of the source. err is set when the
// scan stopped early and is only meaningful once records has been drained.
type scanState struct {
	records iter.Seq[mixed.Record]
	pushed  bool
	quota   *QuotaEnforcer
	err     error
}

// scan wraps the source sequence with cancellation and quota checks.
func (e *Executor) scan(ctx context.Context, src Source, filter query.Predicate) (*scanState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, pushed, err := src.Scan(ctx, filter)
	if err != nil {
		return nil, &RuntimeError{Code: ErrCodeSourceFailed, Message: "scan failed", Err: err}
	}

	st := &scanState{pushed: pushed, quota: NewQuotaEnforcer(e.maxScan)}
	st.records = func(yield func(mixed.Record) bool) {
		for r := range records {
			if err := ctx.Err(); err != nil {
				st.err = err
				return
			}
			if err := st.quota.Check(); err != nil {
				st.err = err
				return
			}
			if !yield(r) {
				return
			}
		}
	}
	return st, nil
}

func invalidQuery(q *query.Query, err error) error {
	re := &RuntimeError{Code: ErrCodeInvalidQuery, Message: "query rejected", Err: err}
	if q != nil {
		re.Query = q.String()
	}
	return re
}

// fail attaches the query text and logs.
func (e *Executor) fail(text string, err error) error {
	var re *RuntimeError
	switch {
	case errors.As(err, &re):
		if re.Query == "" {
			re.Query = text
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		re = &RuntimeError{Code: ErrCodeCancelled, Message: "execution cancelled", Query: text, Err: err}
	default:
		re = &RuntimeError{Code: ErrCodeSourceFailed, Message: "execution failed", Query: text, Err: err}
	}
	e.logger.Error("query failed", "query", text, "code", re.Code, "error", err)
	return re
}
