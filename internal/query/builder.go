package query

import "github.com/roach88/mixq/internal/mixed"

// Builder assembles a Query fluently.
//
// Consecutive predicates are joined with AND; Or starts a new disjunct, so
// a.b.Or().c reads as (a AND b) OR c. Not negates the next predicate only.
// Every call is validated immediately and the first failure is returned by
// Build; later calls after a failure are ignored.
type Builder struct {
	schema      Schema
	groups      [][]Predicate
	negateNext  bool
	descriptors []Descriptor
	err         error
}

// NewBuilder starts an empty query over schema.
func NewBuilder(schema Schema) *Builder {
	return &Builder{schema: schema, groups: [][]Predicate{nil}}
}

// Err returns the first validation failure so far.
func (b *Builder) Err() error {
	return b.err
}

// Where adds an arbitrary predicate.
func (b *Builder) Where(p Predicate) *Builder {
	return b.add(p)
}

func (b *Builder) IsNull(field string) *Builder {
	return b.add(IsNull{Field: field})
}

func (b *Builder) IsNotNull(field string) *Builder {
	return b.add(IsNotNull{Field: field})
}

func (b *Builder) IsEmpty(field string) *Builder {
	return b.add(IsEmpty{Field: field})
}

func (b *Builder) IsNotEmpty(field string) *Builder {
	return b.add(IsNotEmpty{Field: field})
}

func (b *Builder) EqualTo(field string, v mixed.Value) *Builder {
	return b.add(Compare{Field: field, Op: OpEqual, Value: v})
}

func (b *Builder) NotEqualTo(field string, v mixed.Value) *Builder {
	return b.add(Compare{Field: field, Op: OpNotEqual, Value: v})
}

func (b *Builder) GreaterThan(field string, v mixed.Value) *Builder {
	return b.add(Compare{Field: field, Op: OpGreater, Value: v})
}

func (b *Builder) GreaterThanOrEqual(field string, v mixed.Value) *Builder {
	return b.add(Compare{Field: field, Op: OpGreaterOrEqual, Value: v})
}

func (b *Builder) LessThan(field string, v mixed.Value) *Builder {
	return b.add(Compare{Field: field, Op: OpLess, Value: v})
}

func (b *Builder) LessThanOrEqual(field string, v mixed.Value) *Builder {
	return b.add(Compare{Field: field, Op: OpLessOrEqual, Value: v})
}

func (b *Builder) Between(field string, low, high mixed.Value) *Builder {
	return b.add(Between{Field: field, Low: low, High: high})
}

func (b *Builder) BeginsWith(field, s string, c Case) *Builder {
	return b.add(Text{Field: field, Op: OpBeginsWith, Value: s, Case: c})
}

func (b *Builder) EndsWith(field, s string, c Case) *Builder {
	return b.add(Text{Field: field, Op: OpEndsWith, Value: s, Case: c})
}

func (b *Builder) Contains(field, s string, c Case) *Builder {
	return b.add(Text{Field: field, Op: OpContains, Value: s, Case: c})
}

func (b *Builder) Like(field, pattern string, c Case) *Builder {
	return b.add(Text{Field: field, Op: OpLike, Value: pattern, Case: c})
}

// AlwaysTrue adds TRUEPREDICATE.
func (b *Builder) AlwaysTrue() *Builder {
	return b.add(Always{Value: true})
}

// AlwaysFalse adds FALSEPREDICATE.
func (b *Builder) AlwaysFalse() *Builder {
	return b.add(Always{Value: false})
}

// Not negates the next predicate.
func (b *Builder) Not() *Builder {
	if b.err != nil {
		return b
	}
	b.negateNext = !b.negateNext
	return b
}

// Or closes the current AND group. A leading Or is a no-op.
func (b *Builder) Or() *Builder {
	if b.err != nil {
		return b
	}
	if b.negateNext {
		b.err = invalid("", "or", "NOT must be followed by a predicate")
		return b
	}
	if len(b.groups[len(b.groups)-1]) > 0 {
		b.groups = append(b.groups, nil)
	}
	return b
}

// Sort appends a stable sort descriptor.
func (b *Builder) Sort(field string, order Order) *Builder {
	return b.descriptor(SortBy{Field: field, Order: order})
}

// Distinct appends a first-occurrence distinct descriptor.
func (b *Builder) Distinct(field string) *Builder {
	return b.descriptor(DistinctOn{Field: field})
}

// Limit appends a limit descriptor. n must be at least 1.
func (b *Builder) Limit(n int) *Builder {
	return b.descriptor(LimitTo{N: n})
}

// Build returns the assembled query or the first validation failure.
func (b *Builder) Build() (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.negateNext {
		return nil, invalid("", "not", "NOT must be followed by a predicate")
	}
	return &Query{
		Filter:      b.filter(),
		Descriptors: append([]Descriptor(nil), b.descriptors...),
	}, nil
}

func (b *Builder) add(p Predicate) *Builder {
	if b.err != nil {
		return b
	}
	if err := ValidatePredicate(b.schema, p); err != nil {
		b.err = err
		return b
	}
	if b.negateNext {
		p = Not{Predicate: p}
		b.negateNext = false
	}
	last := len(b.groups) - 1
	b.groups[last] = append(b.groups[last], p)
	return b
}

func (b *Builder) descriptor(d Descriptor) *Builder {
	if b.err != nil {
		return b
	}
	if err := ValidateDescriptor(b.schema, d); err != nil {
		b.err = err
		return b
	}
	b.descriptors = append(b.descriptors, d)
	return b
}

// filter folds the groups into a predicate, nil when nothing was added.
func (b *Builder) filter() Predicate {
	disjuncts := make([]Predicate, 0, len(b.groups))
	for _, group := range b.groups {
		switch len(group) {
		case 0:
		case 1:
			disjuncts = append(disjuncts, group[0])
		default:
			disjuncts = append(disjuncts, And{Predicates: append([]Predicate(nil), group...)})
		}
	}
	switch len(disjuncts) {
	case 0:
		return nil
	case 1:
		return disjuncts[0]
	default:
		return Or{Predicates: disjuncts}
	}
}
