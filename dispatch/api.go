package dispatch

import (
	"context"
	"time"

	"github.com/latinrect/latinrect/enumerate"
	"github.com/latinrect/latinrect/rectangle"
)

// Count computes the signed (r, n) normalized Latin rectangle count,
// per spec.md §6.1. On success, CountResult carries the elapsed wall
// time; on failure the returned error is always a *Failure.
//
// When r = n-1 and opts.Fuse is set, Count runs the same completion
// fusion CountWithCompletion uses and, if opts.Store is configured,
// opportunistically stores the (r+1, n) result too — spec.md §4.10's
// "caller wants (r+1, n) as well" case, exercised without requiring
// the caller to make a second, separate call.
func Count(ctx context.Context, r, n int, opts Options) (rectangle.CountResult, error) {
	if err := validate(r, n); err != nil {
		return rectangle.CountResult{}, err
	}

	if st := opts.Store; st != nil {
		if cached, ok, err := st.Lookup(r, n); err == nil && ok {
			return cached, nil
		}
	}

	if opts.Fuse && r == n-1 {
		base, _, err := CountWithCompletion(ctx, r, n, opts)
		return base, err
	}

	start := time.Now()
	h, err := loadCache(opts.cacheDir(), n, opts.logger())
	if err != nil {
		return rectangle.CountResult{}, err
	}

	out, err := route(ctx, h, r, opts)
	if err != nil {
		return rectangle.CountResult{}, err
	}
	if out.cancelled {
		return rectangle.CountResult{}, newFailure(Cancelled,
			"count(%d,%d): %d/%d units complete before cancellation", r, n, out.unitsDone, out.unitsTotal)
	}

	result := rectangle.NewCountResult(r, n, out.positive, out.negative, time.Since(start))
	if st := opts.Store; st != nil {
		_ = st.Store(r, n, result)
	}
	return result, nil
}

// CountWithCompletion counts (r, n) and (r+1, n) in a single pass via
// completion fusion, valid only when r = n-1 (spec.md §6.1). It always
// runs the single-threaded first-column reducer: fusion's per-choice
// work already includes both the base and completion tallies, so there
// is no separate parallel backend for it (spec.md leaves this
// unspecified; see DESIGN.md).
func CountWithCompletion(ctx context.Context, r, n int, opts Options) (rectangle.CountResult, rectangle.CountResult, error) {
	if err := validate(r, n); err != nil {
		return rectangle.CountResult{}, rectangle.CountResult{}, err
	}
	if r != n-1 {
		return rectangle.CountResult{}, rectangle.CountResult{},
			newFailure(InvalidInput, "count_with_completion requires r = n-1, got r=%d n=%d", r, n)
	}

	start := time.Now()
	h, err := loadCache(opts.cacheDir(), n, opts.logger())
	if err != nil {
		return rectangle.CountResult{}, rectangle.CountResult{}, err
	}

	sink := opts.sink()
	choices := enumerate.Combinations(r, n)
	factor := enumerate.Factorial(r - 1)
	sink.OnStart(r, n, len(choices))

	var basePos, baseNeg, compPos, compNeg rectangle.Uint128
	unitsDone := 0
	cancelled := false
	for _, choice := range choices {
		res, err := enumerate.BacktrackWithCompletion(ctx, h, r, choice.Values, nil)
		if err != nil {
			return rectangle.CountResult{}, rectangle.CountResult{}, classify(err)
		}
		basePos = basePos.Add(res.Base.Positive.MulUint64(factor))
		baseNeg = baseNeg.Add(res.Base.Negative.MulUint64(factor))
		compPos = compPos.Add(res.Completion.Positive.MulUint64(factor))
		compNeg = compNeg.Add(res.Completion.Negative.MulUint64(factor))
		unitsDone++
		sink.OnUnitComplete("fused", unitsDone, res.Base.RectanglesScanned, basePos, baseNeg)
		if res.Base.Cancelled {
			cancelled = true
			break
		}
	}
	if cancelled {
		return rectangle.CountResult{}, rectangle.CountResult{}, newFailure(Cancelled,
			"count_with_completion(%d,%d): %d/%d units complete before cancellation", r, n, unitsDone, len(choices))
	}

	elapsed := time.Since(start)
	baseResult := rectangle.NewCountResult(r, n, basePos, baseNeg, elapsed)
	compResult := rectangle.NewCountResult(r+1, n, compPos, compNeg, elapsed)
	sink.OnFinish(compResult)

	if st := opts.Store; st != nil {
		_ = st.Store(r, n, baseResult)
		_ = st.Store(r+1, n, compResult)
	}
	return baseResult, compResult, nil
}

// RangeRequest bounds a CountRange sweep. Pairs outside r <= n are
// skipped rather than erroring, since a rectangular (r_min..r_max) x
// (n_min..n_max) grid necessarily contains some.
type RangeRequest struct {
	RMin, RMax int
	NMin, NMax int
}

// CountRange runs Count over every (r, n) pair in req with r <= n, in
// ascending n then ascending r (spec.md §6.1). The first failure
// aborts the sweep; results already computed are discarded rather than
// returned partially, since CountRange's contract is "all or nothing".
func CountRange(ctx context.Context, req RangeRequest, opts Options) ([]rectangle.CountResult, error) {
	var out []rectangle.CountResult
	for n := req.NMin; n <= req.NMax; n++ {
		for r := req.RMin; r <= req.RMax; r++ {
			if r > n {
				continue
			}
			res, err := Count(ctx, r, n, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, res)
		}
	}
	return out, nil
}
