// Package constraint implements the per-column forbidden-value
// bookkeeping shared by the derangement generator and the row-by-row
// rectangle enumerator, plus the lexicographic constrained-permutation
// walk built on top of it.
//
// Columns and Bitset instances are each owned by exactly one
// enumeration task and mutated only by that task, per this module's
// ownership model (see rectangle and enumerate package docs).
// Enumerator keeps its own search buffers (current permutation,
// used-value masks, per-position cursors) and only reads the Columns
// it walks.
package constraint
