// Package parallel implements the fork-join work-unit driver (spec.md
// §4.9): first-column choices are distributed round-robin across a
// fixed worker pool, each worker counts its share with the enumerate
// package, and the driver sums partials into a single result — or, on
// cooperative cancellation, an explicit partial/cancelled result.
package parallel
