package store

import "github.com/latinrect/latinrect/rectangle"

// Store is the opaque result cache the core treats as a collaborator,
// never a dependency: spec.md §6.3 deliberately keeps this outside the
// counting core's own correctness contract.
type Store interface {
	// Lookup returns a previously stored result for (r, n), if any.
	Lookup(r, n int) (rectangle.CountResult, bool, error)

	// Store records result for (r, n), overwriting any prior entry.
	Store(r, n int, result rectangle.CountResult) error
}
