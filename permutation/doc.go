// Package permutation provides the pure, allocation-light primitives
// that every other package in this module builds on: the sign of a
// permutation, the derangement predicate, the derangement-count
// recurrence, and exact integer determinants of small matrices.
//
// Every function here is pure and side-effect-free: no logging, no
// I/O, no shared state. Callers that need validation call Validate
// explicitly; the hot-path functions (Sign, IsDerangement) trust their
// input the way spec-following code in this module always does once a
// value has been validated once at a boundary.
package permutation
