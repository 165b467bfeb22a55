package query

import (
	"strings"

	"github.com/roach88/mixq/internal/mixed"
)

// Predicate is a filter condition over one record.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// IsNull matches records whose field holds the null value.
type IsNull struct {
	Field string
}

func (IsNull) predicateNode() {}

// IsNotNull matches records whose field holds any non-null value.
type IsNotNull struct {
	Field string
}

func (IsNotNull) predicateNode() {}

// IsEmpty matches empty collections. It never validates against a scalar
// mixed field.
type IsEmpty struct {
	Field string
}

func (IsEmpty) predicateNode() {}

// IsNotEmpty matches non-empty collections. It never validates against a
// scalar mixed field.
type IsNotEmpty struct {
	Field string
}

func (IsNotEmpty) predicateNode() {}

// CompareOp is a comparison operator.
type CompareOp uint8

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpGreater
	OpGreaterOrEqual
	OpLess
	OpLessOrEqual
)

var compareOpSymbols = [...]string{
	OpEqual:          "==",
	OpNotEqual:       "!=",
	OpGreater:        ">",
	OpGreaterOrEqual: ">=",
	OpLess:           "<",
	OpLessOrEqual:    "<=",
}

// String returns the operator symbol.
func (op CompareOp) String() string {
	if int(op) < len(compareOpSymbols) {
		return compareOpSymbols[op]
	}
	return "?"
}

// Compare matches records whose field compares to Value under Op.
//
// Ordering uses mixed.Compare, so comparisons across kinds follow the kind
// rank: Int(1) < String("0") holds.
type Compare struct {
	Field string
	Op    CompareOp
	Value mixed.Value
}

func (Compare) predicateNode() {}

// Between matches Low <= field <= High.
type Between struct {
	Field string
	Low   mixed.Value
	High  mixed.Value
}

func (Between) predicateNode() {}

// TextOp is a string matching operator.
type TextOp uint8

const (
	OpBeginsWith TextOp = iota
	OpEndsWith
	OpContains
	OpLike
)

var textOpNames = [...]string{
	OpBeginsWith: "BEGINSWITH",
	OpEndsWith:   "ENDSWITH",
	OpContains:   "CONTAINS",
	OpLike:       "LIKE",
}

// String returns the operator keyword.
func (op TextOp) String() string {
	if int(op) < len(textOpNames) {
		return textOpNames[op]
	}
	return "?"
}

// Case selects case sensitivity for text predicates.
type Case bool

const (
	Sensitive   Case = true
	Insensitive Case = false
)

// Text matches String-kind values against Value. Values of any other kind
// never match. LIKE understands '*' (any run) and '?' (one rune).
type Text struct {
	Field string
	Op    TextOp
	Value string
	Case  Case
}

func (Text) predicateNode() {}

// And matches when every predicate matches. Empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Or matches when any predicate matches. Empty Or is always false.
type Or struct {
	Predicates []Predicate
}

func (Or) predicateNode() {}

// Not negates a predicate.
type Not struct {
	Predicate Predicate
}

func (Not) predicateNode() {}

// Always is TRUEPREDICATE or FALSEPREDICATE.
type Always struct {
	Value bool
}

func (Always) predicateNode() {}

// Order is a sort direction.
type Order uint8

const (
	Ascending Order = iota
	Descending
)

// String returns ASC or DESC.
func (o Order) String() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseOrder accepts asc/ascending and desc/descending in any case.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, invalid("", "sort", "unknown sort order %q", s)
	}
}

// Descriptor post-processes the filtered records.
//
// This is a sealed interface - only types in this package implement it.
type Descriptor interface {
	descriptorNode() // Marker method - seals interface to this package
}

// SortBy orders records by a field, stably.
type SortBy struct {
	Field string
	Order Order
}

func (SortBy) descriptorNode() {}

// DistinctOn keeps the first record of every distinct field value.
type DistinctOn struct {
	Field string
}

func (DistinctOn) descriptorNode() {}

// LimitTo keeps at most N records.
type LimitTo struct {
	N int
}

func (LimitTo) descriptorNode() {}

// Query is a filter plus descriptors applied in order.
type Query struct {
	Filter      Predicate    // nil = TRUEPREDICATE
	Descriptors []Descriptor // applied in order after filtering
}
