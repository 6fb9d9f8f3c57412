package rectangle

import (
	"fmt"
	"math/big"
	"time"
)

// CountResult is the public result of counting normalized (r, n)
// Latin rectangles by sign, per spec.md §6.1. Positive and Negative
// are non-negative; Difference = Positive - Negative and may be
// negative, hence *big.Int rather than Uint128 at this boundary.
type CountResult struct {
	R, N            int
	Positive        *big.Int
	Negative        *big.Int
	Difference      *big.Int
	ComputationTime time.Duration
}

// NewCountResult builds a CountResult from per-sign Uint128
// accumulators, computing Difference exactly via big.Int subtraction.
func NewCountResult(r, n int, positive, negative Uint128, elapsed time.Duration) CountResult {
	pos := positive.BigInt()
	neg := negative.BigInt()
	diff := new(big.Int).Sub(pos, neg)
	return CountResult{
		R: r, N: n,
		Positive:        pos,
		Negative:        neg,
		Difference:      diff,
		ComputationTime: elapsed,
	}
}

// Total returns Positive + Negative, the total rectangle count.
func (c CountResult) Total() *big.Int {
	return new(big.Int).Add(c.Positive, c.Negative)
}

// String renders a one-line human-readable summary, used by the CLI.
func (c CountResult) String() string {
	return fmt.Sprintf("(r=%d, n=%d): positive=%s negative=%s difference=%s total=%s [%s]",
		c.R, c.N, c.Positive, c.Negative, c.Difference, c.Total(), c.ComputationTime)
}
