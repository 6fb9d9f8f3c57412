// Package progress defines the coarse, best-effort progress-reporting
// interface consumed by the parallel driver (spec.md §6.4), plus a
// no-op implementation and a zap-backed implementation for CLI use.
package progress
