package parallel

import "github.com/latinrect/latinrect/rectangle"

// RunResult is the outcome of one Run call.
//
// On success (Cancelled == false), Positive/Negative already carry the
// (r-1)! symmetry factor. On cancellation, Positive/Negative are zero
// and PartialPositive/PartialNegative hold the raw, unscaled sums
// accumulated before the cancel signal was observed — spec.md §5's
// "reported as raw pre-multiplied totals" contract.
type RunResult struct {
	Positive, Negative               rectangle.Uint128
	Cancelled                        bool
	PartialPositive, PartialNegative rectangle.Uint128
	UnitsDone, UnitsTotal            int
}
