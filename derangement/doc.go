// Package derangement implements the lexicographic derangement
// generator (spec.md §4.2, "C2") and the binary on-disk derangement
// cache (spec.md §4.3/§6.2, "C3"): pre-computed signs and
// position-value conflict indices for every derangement of a given n,
// built once, persisted, and shared read-only across workers.
package derangement
