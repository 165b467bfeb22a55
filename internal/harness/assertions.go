package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// ExpectationError is a failed step expectation.
type ExpectationError struct {
	Step     string // Step name
	Check    string // Expectation key, e.g. "count"
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Query    string // Query text, when the query was built
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "step %q: %s failed", e.Step, e.Check)
	fmt.Fprintf(&buf, "\n  Expected: %s", e.Expected)
	fmt.Fprintf(&buf, "\n  Actual: %s", e.Actual)
	if e.Query != "" {
		fmt.Fprintf(&buf, "\n  Query: %s", e.Query)
	}
	return buf.String()
}

// EvaluateExpect checks a step result against the step's expectations.
// Returns one error per failed check, in a fixed order.
func EvaluateExpect(step Step, sr StepResult) []*ExpectationError {
	e := step.Expect
	var failures []*ExpectationError
	fail := func(check, expected, actual string) {
		failures = append(failures, &ExpectationError{
			Step: step.Name, Check: check, Expected: expected, Actual: actual, Query: sr.Query,
		})
	}

	if e.Error != "" || sr.Error != "" {
		if e.Error != sr.Error {
			fail("error", describeError(e.Error), describeError(sr.Error)+detail(sr.Detail))
		}
		return failures
	}

	if e.Count != nil && *e.Count != sr.Count {
		fail("count", fmt.Sprint(*e.Count), fmt.Sprint(sr.Count))
	}
	if e.FirstKind != "" && e.FirstKind != sr.FirstKind {
		fail("first_kind", e.FirstKind, orNone(sr.FirstKind))
	}
	if e.LastKind != "" && e.LastKind != sr.LastKind {
		fail("last_kind", e.LastKind, orNone(sr.LastKind))
	}

	res := sr.results
	if res == nil {
		return failures
	}
	if e.AllNull != nil && *e.AllNull != res.AllNull() {
		fail("all_null", fmt.Sprint(*e.AllNull), fmt.Sprint(res.AllNull()))
	}
	if e.NoneNull != nil && *e.NoneNull != res.NoneNull() {
		fail("none_null", fmt.Sprint(*e.NoneNull), fmt.Sprint(res.NoneNull()))
	}
	if e.Unique != nil && *e.Unique != res.Unique() {
		fail("unique", fmt.Sprint(*e.Unique), fmt.Sprint(res.Unique()))
	}
	if e.Sorted != "" {
		order, _ := query.ParseOrder(e.Sorted)
		if i := firstUnsorted(res.Values(), order); i >= 0 {
			fail("sorted", "records in "+order.String()+" order",
				fmt.Sprintf("%s before %s at index %d", res.Records[i-1].Mixed, res.Records[i].Mixed, i))
		}
	}
	return failures
}

// firstUnsorted returns the first index out of order, or -1.
func firstUnsorted(values []mixed.Value, order query.Order) int {
	for i := 1; i < len(values); i++ {
		c := mixed.Compare(values[i-1], values[i])
		if (order == query.Ascending && c > 0) || (order == query.Descending && c < 0) {
			return i
		}
	}
	return -1
}

func describeError(class string) string {
	if class == "" {
		return "no error"
	}
	return class
}

func detail(msg string) string {
	if msg == "" {
		return ""
	}
	return " (" + msg + ")"
}

func orNone(s string) string {
	if s == "" {
		return "<no records>"
	}
	return s
}
