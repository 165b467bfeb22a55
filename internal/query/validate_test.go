package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mixq/internal/mixed"
)

func TestValidate_NullPredicatesOnMixed(t *testing.T) {
	schema := DefaultSchema()

	assert.NoError(t, ValidatePredicate(schema, IsNull{Field: "mixed"}))
	assert.NoError(t, ValidatePredicate(schema, IsNotNull{Field: "mixed"}))
}

func TestValidate_EmptinessRejectedOnScalar(t *testing.T) {
	schema := DefaultSchema()

	for _, p := range []Predicate{IsEmpty{Field: "mixed"}, IsNotEmpty{Field: "mixed"}} {
		err := ValidatePredicate(schema, p)
		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "mixed", ve.Field)
		assert.Contains(t, ve.Reason, "only supported on collections")
	}
}

func TestValidate_UnknownField(t *testing.T) {
	err := ValidatePredicate(DefaultSchema(), IsNull{Field: "missing"})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), `unknown field "missing"`)
}

func TestValidate_NestedFailureSurfaces(t *testing.T) {
	p := Or{Predicates: []Predicate{
		IsNull{Field: "mixed"},
		Not{Predicate: IsEmpty{Field: "mixed"}},
	}}

	err := ValidatePredicate(DefaultSchema(), p)
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "isEmpty", ve.Op)
}

func TestValidate_Descriptors(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name    string
		desc    Descriptor
		wantErr bool
	}{
		{"sort mixed", SortBy{Field: "mixed"}, false},
		{"sort unknown", SortBy{Field: "other"}, true},
		{"distinct mixed", DistinctOn{Field: "mixed"}, false},
		{"limit one", LimitTo{N: 1}, false},
		{"limit zero", LimitTo{N: 0}, true},
		{"limit negative", LimitTo{N: -4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescriptor(schema, tt.desc)
			if tt.wantErr {
				assert.True(t, IsInvalidArgument(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Query(t *testing.T) {
	schema := DefaultSchema()

	assert.NoError(t, Validate(schema, &Query{}))
	assert.Error(t, Validate(schema, nil))
	assert.Error(t, Validate(schema, &Query{
		Filter:      Compare{Field: "mixed", Op: OpEqual, Value: mixed.Int(1)},
		Descriptors: []Descriptor{LimitTo{N: 0}},
	}))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, Descending, o)

	o, err = ParseOrder("ascending")
	require.NoError(t, err)
	assert.Equal(t, Ascending, o)

	_, err = ParseOrder("sideways")
	assert.True(t, IsInvalidArgument(err))
}

func TestNamed(t *testing.T) {
	p, err := Named("is_null", "mixed")
	require.NoError(t, err)
	assert.Equal(t, IsNull{Field: "mixed"}, p)

	p, err = Named("Is-Not-Null", "mixed")
	require.NoError(t, err)
	assert.Equal(t, IsNotNull{Field: "mixed"}, p)

	_, err = Named("is_blue", "mixed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is_not_empty")
}
