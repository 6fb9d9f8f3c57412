package permutation

import "errors"

// ErrInvalidPermutation is returned by Validate (and by any function
// asked to validate its input) when a slice is not a permutation of
// 1..len(p).
var ErrInvalidPermutation = errors.New("permutation: not a permutation of 1..n")
