package derangement

import "errors"

// Sentinel errors for cache I/O and format validation (spec.md §7's
// failure taxonomy, at the package level; dispatch classifies these
// into a dispatch.Failure at the public API boundary).
var (
	// ErrCacheCorrupt is returned when a cache file's CRC32 checksum,
	// magic, or version does not match what format.go expects.
	ErrCacheCorrupt = errors.New("derangement: cache file corrupt")

	// ErrCacheIO wraps an underlying filesystem error encountered while
	// reading or writing a cache file.
	ErrCacheIO = errors.New("derangement: cache i/o error")

	// ErrTooLarge is returned when n exceeds the module's supported
	// range for derangement generation.
	ErrTooLarge = errors.New("derangement: n too large")
)
