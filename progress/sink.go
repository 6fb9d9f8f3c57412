package progress

import "github.com/latinrect/latinrect/rectangle"

// Sink receives coarse, best-effort progress events from a running
// count (spec.md §6.4). Calls happen from arbitrary worker goroutines
// concurrently; implementations must not block the caller and must
// tolerate being skipped under contention — the core never waits on a
// Sink.
type Sink interface {
	// OnStart fires once, before any worker begins, with the total
	// number of work units the run has been split into.
	OnStart(r, n, totalWorkUnits int)

	// OnUnitComplete fires after a worker finishes one work unit
	// (spec.md §4.9's granularity), reporting that worker's own
	// running partials, not the global total.
	OnUnitComplete(workerID string, unitsDone, rectanglesScanned int, partialPositive, partialNegative rectangle.Uint128)

	// OnFinish fires once, after every worker has joined, with the
	// final result. A cancelled run ends without calling it.
	OnFinish(result rectangle.CountResult)
}
