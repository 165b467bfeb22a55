package harness

import "github.com/roach88/mixq/internal/engine"

// Error classes reported in StepResult.Error and matched by Expect.Error.
const (
	ErrInvalidArgument = "invalid_argument"
	ErrQuotaExceeded   = "quota_exceeded"
	ErrCancelled       = "cancelled"
	ErrOther           = "error"
)

// StepResult is the observable outcome of one step.
type StepResult struct {
	Name      string         `json:"name"`
	Query     string         `json:"query,omitempty"`
	Count     int            `json:"count"`
	Pushed    bool           `json:"pushed"`
	FirstKind string         `json:"first_kind,omitempty"`
	LastKind  string         `json:"last_kind,omitempty"`
	Kinds     map[string]int `json:"kinds,omitempty"`
	Error     string         `json:"error,omitempty"`

	// Detail is the full error message, kept out of golden output.
	Detail string `json:"-"`

	results *engine.Results
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation and property held.
	Pass bool `json:"pass"`

	// Fixture is the plan name; Records is how many records were seeded.
	Fixture string `json:"fixture"`
	Records int    `json:"records"`

	// Steps holds one entry per scenario step, in order.
	Steps []StepResult `json:"steps"`

	// Errors contains failed expectations and properties.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
