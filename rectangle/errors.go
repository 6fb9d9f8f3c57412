package rectangle

import "errors"

// ErrInvalidRectangle is returned by Validate when a Rectangle
// violates spec.md §3's invariants: row count out of [2, n], a row
// that is not a permutation of 1..n, or a column collision between
// rows.
var ErrInvalidRectangle = errors.New("rectangle: invalid normalized Latin rectangle")

// ErrNotNormalized is returned by Validate when row 0 is not the
// identity permutation.
var ErrNotNormalized = errors.New("rectangle: row 0 is not the identity")
