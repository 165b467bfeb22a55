package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// Matcher reports whether a record satisfies a predicate.
type Matcher func(mixed.Record) bool

// Accessor reads a field from a record.
type Accessor func(mixed.Record) mixed.Value

// FieldAccessor returns the accessor for a record field.
func FieldAccessor(field string) (Accessor, error) {
	switch field {
	case mixed.FieldMixed:
		return func(r mixed.Record) mixed.Value { return r.Mixed }, nil
	default:
		return nil, fmt.Errorf("no accessor for field %q", field)
	}
}

// Compile validates p against schema and returns its Matcher.
// A nil predicate matches every record.
func Compile(schema query.Schema, p query.Predicate) (Matcher, error) {
	if p == nil {
		return func(mixed.Record) bool { return true }, nil
	}
	if err := query.ValidatePredicate(schema, p); err != nil {
		return nil, err
	}
	return compile(p)
}

func compile(p query.Predicate) (Matcher, error) {
	switch pred := p.(type) {
	case query.IsNull:
		get, err := FieldAccessor(pred.Field)
		if err != nil {
			return nil, err
		}
		return func(r mixed.Record) bool { return get(r).IsNull() }, nil

	case query.IsNotNull:
		get, err := FieldAccessor(pred.Field)
		if err != nil {
			return nil, err
		}
		return func(r mixed.Record) bool { return !get(r).IsNull() }, nil

	case query.Compare:
		get, err := FieldAccessor(pred.Field)
		if err != nil {
			return nil, err
		}
		accept := compareAcceptor(pred.Op)
		want := pred.Value
		return func(r mixed.Record) bool { return accept(mixed.Compare(get(r), want)) }, nil

	case query.Between:
		get, err := FieldAccessor(pred.Field)
		if err != nil {
			return nil, err
		}
		low, high := pred.Low, pred.High
		return func(r mixed.Record) bool {
			v := get(r)
			return mixed.Compare(v, low) >= 0 && mixed.Compare(v, high) <= 0
		}, nil

	case query.Text:
		get, err := FieldAccessor(pred.Field)
		if err != nil {
			return nil, err
		}
		match := textMatcher(pred.Op, pred.Value, pred.Case)
		return func(r mixed.Record) bool {
			s, ok := get(r).AsString()
			return ok && match(s)
		}, nil

	case query.And:
		children, err := compileAll(pred.Predicates)
		if err != nil {
			return nil, err
		}
		return func(r mixed.Record) bool {
			for _, m := range children {
				if !m(r) {
					return false
				}
			}
			return true
		}, nil

	case query.Or:
		children, err := compileAll(pred.Predicates)
		if err != nil {
			return nil, err
		}
		return func(r mixed.Record) bool {
			for _, m := range children {
				if m(r) {
					return true
				}
			}
			return false
		}, nil

	case query.Not:
		inner, err := compile(pred.Predicate)
		if err != nil {
			return nil, err
		}
		return func(r mixed.Record) bool { return !inner(r) }, nil

	case query.Always:
		v := pred.Value
		return func(mixed.Record) bool { return v }, nil

	default:
		// IsEmpty / IsNotEmpty never pass validation on a scalar field.
		return nil, fmt.Errorf("cannot evaluate predicate %T", p)
	}
}

func compileAll(preds []query.Predicate) ([]Matcher, error) {
	out := make([]Matcher, len(preds))
	for i, p := range preds {
		m, err := compile(p)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func compareAcceptor(op query.CompareOp) func(int) bool {
	switch op {
	case query.OpNotEqual:
		return func(c int) bool { return c != 0 }
	case query.OpGreater:
		return func(c int) bool { return c > 0 }
	case query.OpGreaterOrEqual:
		return func(c int) bool { return c >= 0 }
	case query.OpLess:
		return func(c int) bool { return c < 0 }
	case query.OpLessOrEqual:
		return func(c int) bool { return c <= 0 }
	default:
		return func(c int) bool { return c == 0 }
	}
}

func textMatcher(op query.TextOp, needle string, c query.Case) func(string) bool {
	norm := func(s string) string { return s }
	if c == query.Insensitive {
		// cases.Caser is stateful, so each call gets its own.
		norm = func(s string) string { return cases.Fold().String(s) }
	}
	needle = norm(needle)

	switch op {
	case query.OpEndsWith:
		return func(s string) bool { return strings.HasSuffix(norm(s), needle) }
	case query.OpContains:
		return func(s string) bool { return strings.Contains(norm(s), needle) }
	case query.OpLike:
		return func(s string) bool { return globMatch(needle, norm(s)) }
	default:
		return func(s string) bool { return strings.HasPrefix(norm(s), needle) }
	}
}

// globMatch matches s against pattern where '*' is any run of runes and
// '?' is exactly one rune.
func globMatch(pattern, s string) bool {
	px, sx := 0, 0
	starPx, starSx := -1, 0
	for sx < len(s) {
		if px < len(pattern) {
			pc, pw := utf8.DecodeRuneInString(pattern[px:])
			switch pc {
			case '*':
				starPx, starSx = px, sx
				px += pw
				continue
			case '?':
				_, sw := utf8.DecodeRuneInString(s[sx:])
				px += pw
				sx += sw
				continue
			default:
				sc, sw := utf8.DecodeRuneInString(s[sx:])
				if pc == sc {
					px += pw
					sx += sw
					continue
				}
			}
		}
		if starPx < 0 {
			return false
		}
		// Backtrack: let the last '*' absorb one more rune.
		_, sw := utf8.DecodeRuneInString(s[starSx:])
		starSx += sw
		px, sx = starPx+1, starSx
	}
	for px < len(pattern) && pattern[px] == '*' {
		px++
	}
	return px == len(pattern)
}
