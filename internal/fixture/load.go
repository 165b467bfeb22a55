package fixture

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed plan.cue
var planSchema []byte

// PlanError is a plan file that failed schema unification or decoding.
type PlanError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *PlanError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadPlan reads a CUE or JSON plan file.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}
	return LoadPlanBytes(path, data)
}

// LoadPlanBytes parses plan source. filename is used in error positions.
//
// The source is unified with the #Plan definition, so unknown kinds,
// negative counts and distinct > records are rejected with a position.
func LoadPlanBytes(filename string, data []byte) (Plan, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(planSchema, cue.Filename("plan.cue"))
	if err := schema.Err(); err != nil {
		return Plan{}, formatCUEError("schema", err)
	}

	src := ctx.CompileBytes(data, cue.Filename(filename))
	if err := src.Err(); err != nil {
		return Plan{}, formatCUEError("plan", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Plan")).Unify(src)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Plan{}, formatCUEError("plan", err)
	}

	var p Plan
	if err := v.Decode(&p); err != nil {
		return Plan{}, formatCUEError("plan", err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, &PlanError{Field: "groups", Message: err.Error()}
	}
	return p, nil
}

// formatCUEError keeps the first CUE error with its position.
func formatCUEError(field string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &PlanError{Field: field, Message: err.Error()}
	}
	first := errs[0]
	pe := &PlanError{Field: field, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		pe.Pos = positions[0]
	}
	return pe
}
