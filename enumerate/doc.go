// Package enumerate implements the counting cores dispatched over a
// single (r, n): the r=2 closed form, the row-by-row backtracking
// enumerator over derangement indices, its completion-fusion variant,
// and the first-column symmetry reducer that drives both from the
// parallel work-unit layer.
package enumerate
