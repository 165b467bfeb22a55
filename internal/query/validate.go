package query

// Validate checks a query against a schema.
//
// It returns the first *ValidationError found, walking the filter first and
// then the descriptors in order. Validate is a pure function with no side
// effects.
func Validate(schema Schema, q *Query) error {
	if q == nil {
		return invalid("", "query", "nil query")
	}
	if q.Filter != nil {
		if err := ValidatePredicate(schema, q.Filter); err != nil {
			return err
		}
	}
	for _, d := range q.Descriptors {
		if err := ValidateDescriptor(schema, d); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePredicate checks one predicate tree against a schema.
func ValidatePredicate(schema Schema, p Predicate) error {
	switch pred := p.(type) {
	case nil:
		return invalid("", "predicate", "nil predicate")
	case IsNull:
		_, err := lookupField(schema, pred.Field, "isNull")
		return err
	case IsNotNull:
		_, err := lookupField(schema, pred.Field, "isNotNull")
		return err
	case IsEmpty:
		return requireCollection(schema, pred.Field, "isEmpty")
	case IsNotEmpty:
		return requireCollection(schema, pred.Field, "isNotEmpty")
	case Compare:
		if pred.Op > OpLessOrEqual {
			return invalid(pred.Field, "compare", "unknown operator %d", pred.Op)
		}
		_, err := lookupField(schema, pred.Field, compareOpNames[pred.Op])
		return err
	case Between:
		_, err := lookupField(schema, pred.Field, "between")
		return err
	case Text:
		if pred.Op > OpLike {
			return invalid(pred.Field, "text", "unknown operator %d", pred.Op)
		}
		_, err := lookupField(schema, pred.Field, textOpFuncs[pred.Op])
		return err
	case And:
		for _, child := range pred.Predicates {
			if err := ValidatePredicate(schema, child); err != nil {
				return err
			}
		}
		return nil
	case Or:
		for _, child := range pred.Predicates {
			if err := ValidatePredicate(schema, child); err != nil {
				return err
			}
		}
		return nil
	case Not:
		if pred.Predicate == nil {
			return invalid("", "not", "nothing to negate")
		}
		return ValidatePredicate(schema, pred.Predicate)
	case Always:
		return nil
	default:
		return invalid("", "predicate", "unsupported predicate %T", p)
	}
}

// ValidateDescriptor checks one descriptor against a schema.
func ValidateDescriptor(schema Schema, d Descriptor) error {
	switch desc := d.(type) {
	case SortBy:
		if desc.Order > Descending {
			return invalid(desc.Field, "sort", "unknown order %d", desc.Order)
		}
		_, err := lookupField(schema, desc.Field, "sort")
		return err
	case DistinctOn:
		_, err := lookupField(schema, desc.Field, "distinct")
		return err
	case LimitTo:
		if desc.N < 1 {
			return invalid("", "limit", "limit must be at least 1, got %d", desc.N)
		}
		return nil
	default:
		return invalid("", "descriptor", "unsupported descriptor %T", d)
	}
}

var compareOpNames = [...]string{
	OpEqual:          "equalTo",
	OpNotEqual:       "notEqualTo",
	OpGreater:        "greaterThan",
	OpGreaterOrEqual: "greaterThanOrEqual",
	OpLess:           "lessThan",
	OpLessOrEqual:    "lessThanOrEqual",
}

var textOpFuncs = [...]string{
	OpBeginsWith: "beginsWith",
	OpEndsWith:   "endsWith",
	OpContains:   "contains",
	OpLike:       "like",
}

func lookupField(schema Schema, field, op string) (FieldType, error) {
	if field == "" {
		return "", invalid(field, op, "field name is required")
	}
	t, ok := schema.Lookup(field)
	if !ok {
		return "", invalid(field, op, "unknown field %q on %s", field, schema.Class)
	}
	return t, nil
}

func requireCollection(schema Schema, field, op string) error {
	t, err := lookupField(schema, field, op)
	if err != nil {
		return err
	}
	if !t.collection() {
		return invalid(field, op, "%s is only supported on collections, %q is a scalar %s field", op, field, t)
	}
	return nil
}
