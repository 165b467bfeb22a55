package query

import (
	"sort"

	"github.com/roach88/mixq/internal/mixed"
)

// FieldType is the declared type of a queryable field.
type FieldType string

const (
	// TypeMixed is a scalar field holding one mixed.Value.
	TypeMixed FieldType = "mixed"
)

// collection reports whether fields of this type can be empty.
func (t FieldType) collection() bool {
	return false
}

// Schema declares the queryable fields of a record class.
type Schema struct {
	Class  string
	Fields map[string]FieldType
}

// DefaultSchema is the schema of mixed.Record: one scalar mixed field.
func DefaultSchema() Schema {
	return Schema{
		Class:  "MixedNotIndexed",
		Fields: map[string]FieldType{mixed.FieldMixed: TypeMixed},
	}
}

// Lookup returns the type of a field.
func (s Schema) Lookup(field string) (FieldType, bool) {
	t, ok := s.Fields[field]
	return t, ok
}

// FieldNames returns the declared field names, sorted.
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
