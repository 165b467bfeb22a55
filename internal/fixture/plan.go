package fixture

import (
	"fmt"

	"github.com/roach88/mixq/internal/mixed"
)

// Group is a run of values of one kind.
type Group struct {
	Kind     mixed.Kind `json:"kind"`
	Records  int        `json:"records"`
	Distinct int        `json:"distinct"`
}

// Plan describes a dataset.
type Plan struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// Reference returns the plan of the reference dataset.
func Reference() Plan {
	return Plan{
		Name: "reference",
		Groups: []Group{
			{Kind: mixed.KindNull, Records: 9, Distinct: 1},
			{Kind: mixed.KindBoolean, Records: 6, Distinct: 2},
			{Kind: mixed.KindInteger, Records: 15, Distinct: 7},
			{Kind: mixed.KindFloat, Records: 10, Distinct: 6},
			{Kind: mixed.KindDouble, Records: 10, Distinct: 6},
			{Kind: mixed.KindString, Records: 10, Distinct: 6},
			{Kind: mixed.KindBinary, Records: 8, Distinct: 6},
			{Kind: mixed.KindDate, Records: 8, Distinct: 6},
			{Kind: mixed.KindObjectID, Records: 10, Distinct: 6},
			{Kind: mixed.KindDecimal128, Records: 10, Distinct: 6},
			{Kind: mixed.KindUUID, Records: 10, Distinct: 8},
		},
	}
}

// Total returns the number of records the plan generates.
func (p Plan) Total() int {
	n := 0
	for _, g := range p.Groups {
		n += g.Records
	}
	return n
}

// Nulls returns the number of null records.
func (p Plan) Nulls() int {
	n := 0
	for _, g := range p.Groups {
		if g.Kind == mixed.KindNull {
			n += g.Records
		}
	}
	return n
}

// NonNull returns the number of non-null records.
func (p Plan) NonNull() int {
	return p.Total() - p.Nulls()
}

// Distinct returns the number of distinct values. Groups of the same kind
// share value indexes, so their distinct counts overlap.
func (p Plan) Distinct() int {
	widest := make(map[mixed.Kind]int)
	for _, g := range p.Groups {
		if g.Records > 0 {
			widest[g.Kind] = max(widest[g.Kind], g.Distinct)
		}
	}
	n := 0
	for _, d := range widest {
		n += d
	}
	return n
}

// Validate checks group invariants.
func (p Plan) Validate() error {
	for i, g := range p.Groups {
		if !g.Kind.Valid() {
			return fmt.Errorf("group %d: invalid kind %d", i, g.Kind)
		}
		if g.Records < 0 {
			return fmt.Errorf("group %d (%s): records must not be negative", i, g.Kind)
		}
		if g.Records == 0 {
			continue
		}
		if g.Distinct < 1 || g.Distinct > g.Records {
			return fmt.Errorf("group %d (%s): distinct must be in [1, %d], got %d", i, g.Kind, g.Records, g.Distinct)
		}
		if g.Kind == mixed.KindNull && g.Distinct != 1 {
			return fmt.Errorf("group %d (null): null has exactly one distinct value", i)
		}
		if g.Kind == mixed.KindBoolean && g.Distinct > 2 {
			return fmt.Errorf("group %d (boolean): boolean has at most two distinct values", i)
		}
	}
	return nil
}
