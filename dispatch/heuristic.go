package dispatch

// estimatedSequentialSeconds approximates how long a single-threaded
// first-column reduction would take for (r, n), grounded on the
// empirical timing table and factorial/exponential extrapolation
// original_source/core/smart_parallel_dispatcher.py uses for the same
// decision. It is a heuristic, not a measurement: good enough to pick
// a backend, not to report as a real duration.
func estimatedSequentialSeconds(r, n int) float64 {
	if n == 6 {
		switch r {
		case 3:
			return 0.005
		case 4:
			return 0.10
		case 5:
			return 0.60
		case 6:
			return 1.60
		}
	}

	const baseTime = 0.001
	rFactor := 1.0
	for i := 0; i < r-3; i++ {
		rFactor *= 10
	}
	nFactor := 1.0
	for i := 4; i <= n; i++ {
		nFactor *= float64(i)
	}
	return baseTime * rFactor * nFactor / 1000
}

// parallelThresholdSeconds is spec.md §4.10's "~0.3s" cutoff: below
// it, ProcessPoolExecutor-equivalent goroutine fan-out overhead
// dominates and single-threaded is faster in practice.
const parallelThresholdSeconds = 0.3

func shouldUseParallel(r, n int) bool {
	return estimatedSequentialSeconds(r, n) > parallelThresholdSeconds
}
