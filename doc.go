// Package latinrect counts normalized Latin rectangles by the sign of
// their row permutations.
//
// A normalized (r, n) Latin rectangle fixes row 0 to the identity
// permutation; its sign is the product of the signs of its other r-1
// rows, each an inversion-parity-derived +1/-1. latinrect answers,
// exactly, how many such rectangles are positive and how many are
// negative for a given (r, n) — a question with no closed form once
// r >= 3.
//
// The module is organized bottom-up:
//
//	permutation/ — sign, inversion count, derangement recurrence
//	constraint/  — bitset column constraints, lexicographic backtracking
//	rectangle/   — 128-bit accumulators, the public CountResult type
//	derangement/ — derangement generation and its binary on-disk cache
//	enumerate/   — the r=2 fast path, the row-by-row enumerator,
//	               completion fusion, and the first-column reducer
//	parallel/    — fan-out of first-column work units across goroutines
//	progress/    — a non-blocking progress-sink interface
//	store/       — a result-store interface (in-memory and YAML)
//	dispatch/    — Count/CountWithCompletion/CountRange, mode
//	               selection, and the Failure error taxonomy
//	cmd/latinctl/ — a CLI wrapper over dispatch
//
// dispatch is the only package most callers need:
//
//	result, err := dispatch.Count(ctx, r, n, dispatch.Options{})
package latinrect
