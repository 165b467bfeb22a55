package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mixq/internal/fixture"
	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// ReferenceFixture names the built-in reference plan.
const ReferenceFixture = "reference"

// Scenario is a fixture plus query steps.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is "reference" or a path to a CUE/JSON plan file.
	// Relative paths resolve against the scenario file's directory.
	Fixture string `yaml:"fixture"`

	// Properties runs CheckProperties over the seeded fixture.
	Properties bool `yaml:"properties,omitempty"`

	// Steps run in order against the same store.
	Steps []Step `yaml:"steps"`
}

// Step is one query and its expectations.
type Step struct {
	Name   string    `yaml:"name"`
	Query  QuerySpec `yaml:"query"`
	Expect Expect    `yaml:"expect"`
}

// QuerySpec is the YAML form of a query.
type QuerySpec struct {
	// Field defaults to "mixed".
	Field string `yaml:"field,omitempty"`

	// Where is a named predicate (see query.NamedPredicates). Empty means
	// TRUEPREDICATE.
	Where string `yaml:"where,omitempty"`

	// Descriptors apply in list order.
	Descriptors []DescriptorSpec `yaml:"descriptors,omitempty"`
}

// DescriptorSpec sets exactly one of its fields.
type DescriptorSpec struct {
	Sort     string `yaml:"sort,omitempty"` // asc | desc
	Distinct bool   `yaml:"distinct,omitempty"`
	Limit    *int   `yaml:"limit,omitempty"`
}

// Expect lists the checks for a step. Unset fields are not checked.
type Expect struct {
	Count     *int   `yaml:"count,omitempty"`
	AllNull   *bool  `yaml:"all_null,omitempty"`
	NoneNull  *bool  `yaml:"none_null,omitempty"`
	Unique    *bool  `yaml:"unique,omitempty"`
	FirstKind string `yaml:"first_kind,omitempty"`
	LastKind  string `yaml:"last_kind,omitempty"`
	Sorted    string `yaml:"sorted,omitempty"` // asc | desc
	Error     string `yaml:"error,omitempty"`  // see ErrorClass
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML, resolving a relative fixture path
// against basePath.
func ParseScenario(data []byte, basePath string) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Fixture != "" && scenario.Fixture != ReferenceFixture &&
		!filepath.IsAbs(scenario.Fixture) && basePath != "" {
		scenario.Fixture = filepath.Join(basePath, scenario.Fixture)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Fixture == "" {
		return fmt.Errorf("fixture is required")
	}
	if s.Fixture != ReferenceFixture {
		if _, err := os.Stat(s.Fixture); os.IsNotExist(err) {
			return fmt.Errorf("fixture file not found: %s", s.Fixture)
		}
	}
	if len(s.Steps) == 0 && !s.Properties {
		return fmt.Errorf("steps list is required unless properties is set")
	}

	for i, step := range s.Steps {
		if step.Name == "" {
			return fmt.Errorf("steps[%d]: name is required", i)
		}
		for j, d := range step.Query.Descriptors {
			if err := validateDescriptor(d); err != nil {
				return fmt.Errorf("steps[%d].query.descriptors[%d]: %w", i, j, err)
			}
		}
		if err := validateExpect(step.Expect); err != nil {
			return fmt.Errorf("steps[%d].expect: %w", i, err)
		}
	}
	return nil
}

func validateDescriptor(d DescriptorSpec) error {
	set := 0
	if d.Sort != "" {
		set++
	}
	if d.Distinct {
		set++
	}
	if d.Limit != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one of sort, distinct, limit must be set")
	}
	return nil
}

func validateExpect(e Expect) error {
	for _, k := range []string{e.FirstKind, e.LastKind} {
		if k == "" {
			continue
		}
		if _, err := mixed.ParseKind(k); err != nil {
			return err
		}
	}
	if e.Sorted != "" {
		if _, err := query.ParseOrder(e.Sorted); err != nil {
			return err
		}
	}
	switch e.Error {
	case "", ErrInvalidArgument, ErrQuotaExceeded, ErrCancelled, ErrOther:
	default:
		return fmt.Errorf("unknown error class %q", e.Error)
	}
	if e.Error != "" && (e.Count != nil || e.AllNull != nil || e.NoneNull != nil ||
		e.Unique != nil || e.FirstKind != "" || e.LastKind != "" || e.Sorted != "") {
		return fmt.Errorf("error cannot be combined with result expectations")
	}
	return nil
}

// Build turns the YAML query into a query over schema.
func (q QuerySpec) Build(schema query.Schema) (*query.Query, error) {
	field := q.Field
	if field == "" {
		field = mixed.FieldMixed
	}

	b := query.NewBuilder(schema)
	if q.Where != "" {
		p, err := query.Named(q.Where, field)
		if err != nil {
			return nil, err
		}
		b.Where(p)
	}
	for _, d := range q.Descriptors {
		switch {
		case d.Sort != "":
			order, err := query.ParseOrder(d.Sort)
			if err != nil {
				return nil, err
			}
			b.Sort(field, order)
		case d.Distinct:
			b.Distinct(field)
		case d.Limit != nil:
			b.Limit(*d.Limit)
		}
	}
	return b.Build()
}

// loadFixture resolves the scenario's fixture to a plan.
func loadFixture(ref string) (fixture.Plan, error) {
	if ref == ReferenceFixture {
		return fixture.Reference(), nil
	}
	return fixture.LoadPlan(ref)
}
