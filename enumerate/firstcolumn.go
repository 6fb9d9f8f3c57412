package enumerate

import (
	"context"

	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/rectangle"
)

// FirstColumnChoice is one canonical first-column choice from
// Combinations: the ascending sequence a_1 < ... < a_{r-1} drawn from
// {2,...,n} (spec.md §4.8 step 1). It doubles as the parallel driver's
// work-unit payload (see parallel.Plan).
type FirstColumnChoice struct {
	Values FirstColumn
}

// Combinations returns every ascending (r-1)-combination of
// {2,...,n}, in lexicographic order — the C(n-1, r-1) canonical first
// columns spec.md §4.8 enumerates. r must be >= 2 and <= n.
func Combinations(r, n int) []FirstColumnChoice {
	k := r - 1
	if k == 0 {
		return []FirstColumnChoice{{Values: FirstColumn{}}}
	}
	if k < 0 || k > n-1 {
		return nil
	}

	pool := make([]uint8, n-1)
	for i := range pool {
		pool[i] = uint8(i + 2)
	}

	var out []FirstColumnChoice
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make(FirstColumn, k)
		for i, p := range idx {
			combo[i] = pool[p]
		}
		out = append(out, FirstColumnChoice{Values: combo})

		i := k - 1
		for i >= 0 && idx[i] == i+len(pool)-k {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

// Factorial returns k! for small k (this module only ever needs
// (r-1)! for r <= 15).
func Factorial(k int) uint64 {
	f := uint64(1)
	for i := 2; i <= k; i++ {
		f *= uint64(i)
	}
	return f
}

// ReduceResult is the first-column reducer's total, plus the
// per-choice detail needed to verify spec.md §8 property 7 (the sum
// across choices, scaled by (r-1)!, matches a direct enumeration).
type ReduceResult struct {
	Positive, Negative rectangle.Uint128
	PerChoice          []Result
	Cancelled          bool
}

// Reduce implements the first-column reducer (spec.md §4.8): it
// enumerates every canonical first column via Combinations, counts
// each with Backtrack, and sums the per-choice (positive, negative)
// pairs scaled by (r-1)!.
//
// This is the single-threaded reference path; parallel.Run
// distributes the same Combinations() list across workers and
// performs the same scale-and-sum at the join instead of here.
func Reduce(ctx context.Context, h *derangement.CacheHandle, r int, progress ProgressFunc) (ReduceResult, error) {
	n := h.N()
	if r < 2 || r > n {
		return ReduceResult{}, ErrInvalidInput
	}

	choices := Combinations(r, n)
	factor := Factorial(r - 1)

	res := ReduceResult{PerChoice: make([]Result, 0, len(choices))}
	for _, choice := range choices {
		var fc FirstColumn
		if len(choice.Values) > 0 {
			fc = choice.Values
		}
		one, err := Backtrack(ctx, h, r, fc, progress)
		if err != nil {
			return ReduceResult{}, err
		}
		res.PerChoice = append(res.PerChoice, one)
		res.Positive = res.Positive.Add(one.Positive.MulUint64(factor))
		res.Negative = res.Negative.Add(one.Negative.MulUint64(factor))
		if one.Cancelled {
			res.Cancelled = true
			break
		}
	}
	return res, nil
}
