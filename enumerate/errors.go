package enumerate

import "errors"

var (
	// ErrInvalidInput is returned for r or n values outside a counting
	// core's supported domain (dispatch is expected to reject these
	// before they ever reach here; these checks exist as a second line
	// of defense for callers that use this package directly).
	ErrInvalidInput = errors.New("enumerate: invalid r/n")

	// ErrInternal marks an invariant violation — e.g. a fully placed
	// rectangle whose compatibility mask has zero or more than one bit
	// set where the algorithm guarantees exactly one. Per spec.md §7
	// this kind surfaces rather than silently degrading correctness.
	ErrInternal = errors.New("enumerate: internal invariant violated")
)
