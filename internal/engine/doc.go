// Package engine evaluates queries over mixed records.
//
// Evaluation is a pipeline over iter.Seq[mixed.Record]:
//
//  1. Scan: a Source yields records in Seq (insertion) order. A Source may
//     push the filter down (internal/store compiles simple predicates to SQL)
//     and report that it did.
//  2. Filter: the compiled Matcher drops records the predicate rejects,
//     unless the source already applied it.
//  3. Descriptors, in the order the query lists them:
//     SORT materializes and stably sorts by mixed.Compare,
//     DISTINCT keeps the first record per mixed.Value.Key,
//     LIMIT truncates.
//
// Sorting is stable, so records with equal values keep scan order and
// distinct after sort is deterministic.
//
// Snapshots are immutable and sources are read-only, so Executor.ExecuteAll
// can evaluate independent queries against one source concurrently.
package engine
