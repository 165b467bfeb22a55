package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/mixed"
	"github.com/roach88/mixq/internal/query"
)

func TestCompile_AlwaysOrdersBySeq(t *testing.T) {
	c := NewSQLCompiler()

	sql, params, err := c.Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT seq, id, kind, payload FROM records WHERE 1 = 1 ORDER BY seq ASC", sql)
	assert.Empty(t, params)
}

func TestCompile_NullChecks(t *testing.T) {
	c := NewSQLCompiler()

	sql, params, err := c.CompileWhere(query.IsNull{Field: "mixed"})
	require.NoError(t, err)
	assert.Equal(t, "kind = ?", sql)
	assert.Equal(t, []any{"null"}, params)

	sql, params, err = c.CompileWhere(query.IsNotNull{Field: "mixed"})
	require.NoError(t, err)
	assert.Equal(t, "kind <> ?", sql)
	assert.Equal(t, []any{"null"}, params)
}

func TestCompile_EqualityUsesKey(t *testing.T) {
	c := NewSQLCompiler()

	sql, params, err := c.CompileWhere(query.Compare{Field: "mixed", Op: query.OpEqual, Value: mixed.Int(42)})
	require.NoError(t, err)
	assert.Equal(t, "key = ?", sql)
	assert.Equal(t, []any{"integer\x1f42"}, params)
}

func TestCompile_Junctions(t *testing.T) {
	c := NewSQLCompiler()

	p := query.Or{Predicates: []query.Predicate{
		query.IsNull{Field: "mixed"},
		query.And{Predicates: []query.Predicate{
			query.Not{Predicate: query.Compare{Field: "mixed", Op: query.OpEqual, Value: mixed.Bool(true)}},
			query.Always{Value: true},
		}},
	}}

	sql, params, err := c.CompileWhere(p)
	require.NoError(t, err)
	assert.Equal(t, "(kind = ?) OR ((NOT (key = ?)) AND (1 = 1))", sql)
	assert.Equal(t, []any{"null", "boolean\x1f1"}, params)

	sql, _, err = c.CompileWhere(query.Or{})
	require.NoError(t, err)
	assert.Equal(t, "1 = 0", sql)
}

func TestCompile_Unsupported(t *testing.T) {
	c := NewSQLCompiler()

	for _, p := range []query.Predicate{
		query.Compare{Field: "mixed", Op: query.OpGreater, Value: mixed.Int(1)},
		query.Between{Field: "mixed", Low: mixed.Int(0), High: mixed.Int(1)},
		query.Text{Field: "mixed", Op: query.OpContains, Value: "x"},
		query.IsEmpty{Field: "mixed"},
		query.And{Predicates: []query.Predicate{query.IsNull{Field: "mixed"}, query.Text{Field: "mixed"}}},
	} {
		_, _, err := c.CompileWhere(p)
		assert.True(t, IsUnsupported(err), "%T", p)
	}
}

func TestCompile_UnknownField(t *testing.T) {
	_, _, err := NewSQLCompiler().CompileWhere(query.IsNull{Field: "other"})
	require.Error(t, err)
	assert.False(t, IsUnsupported(err))
}

func TestCompileCount(t *testing.T) {
	sql, params, err := NewSQLCompiler().CompileCount(query.IsNotNull{Field: "mixed"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM records WHERE kind <> ?", sql)
	assert.Equal(t, []any{"null"}, params)
}
