// Package batch repairs a set of trace files in parallel.
//
// Each file is loaded, optionally pruned with the column preferences,
// repaired, rounded and written next to its source (or into the
// configured output directory). Files are independent: one failure is
// recorded in its FileReport and the remaining files still run.
package batch
