package query

import (
	"sort"
	"strings"
)

var namedPredicates = map[string]func(field string) Predicate{
	"is_null":      func(f string) Predicate { return IsNull{Field: f} },
	"is_not_null":  func(f string) Predicate { return IsNotNull{Field: f} },
	"is_empty":     func(f string) Predicate { return IsEmpty{Field: f} },
	"is_not_empty": func(f string) Predicate { return IsNotEmpty{Field: f} },
	"true":         func(string) Predicate { return Always{Value: true} },
	"false":        func(string) Predicate { return Always{Value: false} },
}

// Named returns the predicate registered under name, applied to field.
// Names are case-insensitive and accept '-' for '_'.
func Named(name, field string) (Predicate, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	ctor, ok := namedPredicates[key]
	if !ok {
		return nil, invalid(field, "where", "unknown predicate %q (want one of %s)", name, strings.Join(NamedPredicates(), ", "))
	}
	return ctor(field), nil
}

// NamedPredicates lists the names accepted by Named, sorted.
func NamedPredicates() []string {
	names := make([]string, 0, len(namedPredicates))
	for name := range namedPredicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
