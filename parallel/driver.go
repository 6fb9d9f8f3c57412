package parallel

import (
	"context"
	"sync/atomic"

	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"

	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/enumerate"
	"github.com/latinrect/latinrect/progress"
	"github.com/latinrect/latinrect/rectangle"
)

// Options configures a Run call.
type Options struct {
	// Workers is the number of goroutines to fan out across. Values
	// <= 0 are clamped to 1 by NewPlan.
	Workers int

	// Sink receives progress events. A nil Sink is treated as
	// progress.Noop{}.
	Sink progress.Sink
}

// Run counts (r, n) rectangles by distributing enumerate.Combinations
// work units across Options.Workers goroutines via golang.org/x/sync/
// errgroup, each independently running enumerate.Backtrack against the
// shared, read-only derangement cache handle h — spec.md §4.9's
// "parallel threads sharing only immutable inputs" model, with
// errgroup's shared context standing in for the single cancel signal
// propagated to every worker.
func Run(ctx context.Context, h *derangement.CacheHandle, r int, opts Options) (RunResult, error) {
	n := h.N()
	if r < 3 || r > n {
		return RunResult{}, enumerate.ErrInvalidInput
	}

	sink := opts.Sink
	if sink == nil {
		sink = progress.Noop{}
	}

	units := enumerate.Combinations(r, n)
	factor := enumerate.Factorial(r - 1)
	plan := NewPlan(units, opts.Workers)

	sink.OnStart(r, n, len(units))

	var cancelled atomic.Bool
	group, gctx := errgroup.WithContext(ctx)
	partials := make([]workerPartial, plan.Workers())

	for w := 0; w < plan.Workers(); w++ {
		w := w
		group.Go(func() error {
			workerID := ksuid.New().String()
			bucket := plan.Bucket(w)

			var pos, neg rectangle.Uint128
			done, scanned := 0, 0
			for _, choice := range bucket {
				res, err := enumerate.Backtrack(gctx, h, r, choice.Values, nil)
				if err != nil {
					return err
				}
				pos = pos.Add(res.Positive)
				neg = neg.Add(res.Negative)
				scanned += res.RectanglesScanned
				done++
				sink.OnUnitComplete(workerID, done, scanned, pos, neg)
				if res.Cancelled {
					cancelled.Store(true)
					break
				}
			}
			partials[w] = workerPartial{positive: pos, negative: neg, unitsDone: done}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return RunResult{}, err
	}

	var totalPos, totalNeg rectangle.Uint128
	unitsDone := 0
	for _, p := range partials {
		totalPos = totalPos.Add(p.positive)
		totalNeg = totalNeg.Add(p.negative)
		unitsDone += p.unitsDone
	}

	if cancelled.Load() {
		return RunResult{
			Cancelled:       true,
			PartialPositive: totalPos,
			PartialNegative: totalNeg,
			UnitsDone:       unitsDone,
			UnitsTotal:      len(units),
		}, nil
	}

	result := RunResult{
		Positive:   totalPos.MulUint64(factor),
		Negative:   totalNeg.MulUint64(factor),
		UnitsDone:  unitsDone,
		UnitsTotal: len(units),
	}
	sink.OnFinish(rectangle.NewCountResult(r, n, result.Positive, result.Negative, 0))
	return result, nil
}

type workerPartial struct {
	positive, negative rectangle.Uint128
	unitsDone          int
}
