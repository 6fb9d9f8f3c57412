package enumerate

import (
	"github.com/latinrect/latinrect/permutation"
	"github.com/latinrect/latinrect/rectangle"
)

// FastPath computes the (2, n) signed rectangle count via the closed
// form (spec.md §4.5), without enumerating a single derangement:
//
//	total = D(n)
//	diff  = (-1)^(n-1) * (n-1)   [ = det(J_n - I_n) ]
//	positive = (total + diff) / 2
//	negative = (total - diff) / 2
//
// n must be >= 2. total fits a uint64 for every n this module accepts
// (n <= 15, per derangement.maxN), so the intermediate arithmetic uses
// plain 64-bit integers rather than Uint128's carry path.
func FastPath(n int) (positive, negative rectangle.Uint128, err error) {
	if n < 2 {
		return rectangle.Uint128{}, rectangle.Uint128{}, ErrInvalidInput
	}

	total := int64(permutation.DerangementCount(n))
	diff := int64(n - 1)
	if (n-1)%2 != 0 {
		diff = -diff
	}

	positive = rectangle.Uint128{Lo: uint64((total + diff) / 2)}
	negative = rectangle.Uint128{Lo: uint64((total - diff) / 2)}
	return positive, negative, nil
}
