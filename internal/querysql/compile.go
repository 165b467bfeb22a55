package querysql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

// ErrUnsupported marks predicates with no SQL translation. Callers fall back
// to evaluating them in memory.
var ErrUnsupported = errors.New("predicate not expressible in SQL")

// SQLCompiler compiles query predicates to parameterized SQL for SQLite.
//
// CRITICAL: every SELECT ends in ORDER BY seq so scans keep insertion order.
// CRITICAL: values are always parameterized, never interpolated.
//
// Only predicates whose meaning survives the storage encoding are pushed
// down: null checks read the kind column, equality reads the canonical key
// column. Ordering comparisons and text matching depend on mixed.Compare and
// return ErrUnsupported.
type SQLCompiler struct {
	// Table is the records table name.
	Table string
}

// NewSQLCompiler creates a compiler for the records table.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{Table: "records"}
}

// Compile returns a SELECT of seq, id, kind and payload for records
// matching filter, in seq order.
func (c *SQLCompiler) Compile(filter query.Predicate) (string, []any, error) {
	where, params, err := c.CompileWhere(filter)
	if err != nil {
		return "", nil, err
	}
	sql := fmt.Sprintf("SELECT seq, id, kind, payload FROM %s WHERE %s ORDER BY seq ASC", c.Table, where)
	return sql, params, nil
}

// CompileCount returns a COUNT(*) over records matching filter.
func (c *SQLCompiler) CompileCount(filter query.Predicate) (string, []any, error) {
	where, params, err := c.CompileWhere(filter)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", c.Table, where), params, nil
}

// CompileWhere compiles filter to a WHERE clause fragment. A nil filter is
// always true.
func (c *SQLCompiler) CompileWhere(filter query.Predicate) (string, []any, error) {
	return c.compilePredicate(filter)
}

func (c *SQLCompiler) compilePredicate(p query.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "1 = 1", nil, nil

	case query.IsNull:
		if err := checkField(pred.Field); err != nil {
			return "", nil, err
		}
		return "kind = ?", []any{mixed.KindNull.String()}, nil

	case query.IsNotNull:
		if err := checkField(pred.Field); err != nil {
			return "", nil, err
		}
		return "kind <> ?", []any{mixed.KindNull.String()}, nil

	case query.Compare:
		return c.compileCompare(pred)

	case query.And:
		return c.compileJunction(pred.Predicates, " AND ", "1 = 1")

	case query.Or:
		return c.compileJunction(pred.Predicates, " OR ", "1 = 0")

	case query.Not:
		sql, params, err := c.compilePredicate(pred.Predicate)
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + sql + ")", params, nil

	case query.Always:
		if pred.Value {
			return "1 = 1", nil, nil
		}
		return "1 = 0", nil, nil

	default:
		return "", nil, fmt.Errorf("%w: %T", ErrUnsupported, p)
	}
}

// compileCompare pushes down == and != via the canonical key, which is equal
// exactly when mixed.Equal holds.
func (c *SQLCompiler) compileCompare(cmp query.Compare) (string, []any, error) {
	if err := checkField(cmp.Field); err != nil {
		return "", nil, err
	}
	switch cmp.Op {
	case query.OpEqual:
		return "key = ?", []any{cmp.Value.Key()}, nil
	case query.OpNotEqual:
		return "key <> ?", []any{cmp.Value.Key()}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s comparison", ErrUnsupported, cmp.Op)
	}
}

func (c *SQLCompiler) compileJunction(preds []query.Predicate, sep, empty string) (string, []any, error) {
	if len(preds) == 0 {
		return empty, nil, nil
	}

	parts := make([]string, 0, len(preds))
	var params []any
	for _, pred := range preds {
		sql, ps, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		params = append(params, ps...)
	}
	return strings.Join(parts, sep), params, nil
}

func checkField(field string) error {
	if field != mixed.FieldMixed {
		return fmt.Errorf("no column for field %q", field)
	}
	return nil
}

// IsUnsupported reports whether err means the predicate must be evaluated
// in memory.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
