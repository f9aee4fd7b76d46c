// Package agg turns OMNeT++ result files into per-node, per-signal summary
// statistics and combines repeated simulation runs into mean/deviation
// estimates.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - stats.go: the RunningStat accumulator and its merge rule
//   - repetition.go: the per-repetition pipeline (split, scan, merge)
//   - combine.go: cross-repetition combination into the final report
//
// # Pipeline
//
// One repetition is aggregated in two passes. A first pass collects every
// vector declaration into an immutable lookup table. The file is then
// split into byte ranges (chunk.go) and scanned by a bounded worker pool
// (worker.go); each worker folds its range into private accumulators, and
// the partials are merged on a single goroutine. Because RunningStat
// merging is associative and commutative and every line is attributed to
// exactly one range, the chunked result equals a sequential scan.
//
// Cross-repetition combination (combine.go) reduces each repetition to a
// per-signal mean and reports the mean and population standard deviation
// of those means. The result persists as a JSON AggregateReport
// (report.go).
//
// The file-format layer lives in agg/vecfile and has no dependency on
// this package.
package agg
