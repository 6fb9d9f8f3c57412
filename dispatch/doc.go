// Package dispatch is the single public entry point to the counting
// core. It owns mode selection (fast path vs. first-column reducer,
// single vs. parallel backend), cache lifecycle (load-or-build), and
// error classification into the typed Failure taxonomy — every other
// package's sentinel errors are translated here before crossing the
// API boundary.
package dispatch
