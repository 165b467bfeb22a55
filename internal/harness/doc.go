// Package harness runs YAML query scenarios against a seeded store.
//
// A scenario names a fixture (the built-in "reference" plan or a CUE/JSON
// plan file relative to the scenario) and a list of steps. Each step builds
// a query from a named predicate and an ordered descriptor list, executes
// it, and checks the step's expectations:
//
//	name: reference-is-null
//	description: null check over the reference fixture
//	fixture: reference
//	steps:
//	  - name: nulls
//	    query:
//	      where: is_null
//	    expect:
//	      count: 9
//	      all_null: true
//
// Every scenario runs in a fresh in-memory SQLite store with sequential
// record ids, so results are reproducible and can be compared against
// golden files with RunWithGolden.
//
// CheckProperties verifies the query invariants (null partition, sort
// order, distinct uniqueness, count) over any source and is run for every
// scenario that sets properties: true.
package harness
