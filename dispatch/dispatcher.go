package dispatch

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/zap"

	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/enumerate"
	"github.com/latinrect/latinrect/parallel"
	"github.com/latinrect/latinrect/rectangle"
)

// validate applies spec.md §4.10's first gate, before any cache is
// touched or any enumerator runs.
func validate(r, n int) error {
	if n < 2 || r < 2 || r > n {
		return newFailure(InvalidInput, "r=%d n=%d: require 2 <= r <= n", r, n)
	}
	return nil
}

// loadCache resolves the shared, read-only derangement cache handle
// for n, building and persisting it on first use. spec.md §7 treats a
// corrupt cache as internally recoverable: derangement.LoadOrBuild
// already rebuilds on a failed load, so an error reaching here comes
// from the rebuild (ErrTooLarge) or from saving it (ErrCacheIO), and
// classify maps it to TooLarge or CacheIO.
func loadCache(dir string, n int, logger *zap.Logger) (*derangement.CacheHandle, error) {
	h, err := derangement.GetShared(dir, n, logger)
	if err != nil {
		return nil, classify(err)
	}
	return h, nil
}

// autoWorkers implements spec.md §4.10's worker-count heuristic: the
// minimum of hardware parallelism, the number of first-column work
// units, and maxAutoWorkers. A positive configured count replaces that
// heuristic and is clamped only to the number of units.
func autoWorkers(units int, configured int) int {
	if configured > 0 {
		if configured < units {
			return configured
		}
		return units
	}

	hw, err := cpu.Counts(true)
	if err != nil || hw < 1 {
		hw = 1
	}
	limit := maxAutoWorkers
	if hw < limit {
		limit = hw
	}
	if units < limit {
		return units
	}
	return limit
}

// routeOutcome is the internal result of running one backend, before
// dispatch converts it into a rectangle.CountResult or a Failure.
type routeOutcome struct {
	positive, negative rectangle.Uint128
	cancelled          bool
	unitsDone          int
	unitsTotal         int
}

// route implements the rest of spec.md §4.10's decision tree: given a
// validated (r, n) and a loaded cache, pick the fast path, the
// single-threaded reducer, or the parallel driver.
func route(ctx context.Context, h *derangement.CacheHandle, r int, opts Options) (routeOutcome, error) {
	n := h.N()

	if r == 2 {
		pos, neg, err := enumerate.FastPath(n)
		if err != nil {
			return routeOutcome{}, classify(err)
		}
		return routeOutcome{positive: pos, negative: neg, unitsDone: 1, unitsTotal: 1}, nil
	}

	units := enumerate.Combinations(r, n)
	useParallel := opts.Mode == ModeParallel || (opts.Mode == ModeAuto && shouldUseParallel(r, n))

	sink := opts.sink()
	if !useParallel {
		sink.OnStart(r, n, len(units))
		res, err := enumerate.Reduce(ctx, h, r, nil)
		if err != nil {
			return routeOutcome{}, classify(err)
		}

		factor := enumerate.Factorial(r - 1)
		var scanned int
		var runningPos, runningNeg rectangle.Uint128
		for i, one := range res.PerChoice {
			scanned += one.RectanglesScanned
			runningPos = runningPos.Add(one.Positive.MulUint64(factor))
			runningNeg = runningNeg.Add(one.Negative.MulUint64(factor))
			sink.OnUnitComplete("single", i+1, scanned, runningPos, runningNeg)
		}

		if res.Cancelled {
			return routeOutcome{cancelled: true, positive: res.Positive, negative: res.Negative,
				unitsDone: len(res.PerChoice), unitsTotal: len(units)}, nil
		}
		out := routeOutcome{positive: res.Positive, negative: res.Negative,
			unitsDone: len(res.PerChoice), unitsTotal: len(units)}
		sink.OnFinish(rectangle.NewCountResult(r, n, out.positive, out.negative, 0))
		return out, nil
	}

	workers := autoWorkers(len(units), opts.Workers)
	runRes, err := parallel.Run(ctx, h, r, parallel.Options{Workers: workers, Sink: sink})
	if err != nil {
		return routeOutcome{}, classify(err)
	}
	if runRes.Cancelled {
		return routeOutcome{cancelled: true, positive: runRes.PartialPositive, negative: runRes.PartialNegative,
			unitsDone: runRes.UnitsDone, unitsTotal: runRes.UnitsTotal}, nil
	}
	return routeOutcome{positive: runRes.Positive, negative: runRes.Negative,
		unitsDone: runRes.UnitsDone, unitsTotal: runRes.UnitsTotal}, nil
}
