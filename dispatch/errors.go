package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/enumerate"
)

// FailureKind classifies a Failure per spec.md §7's error taxonomy.
// It is the only vocabulary a caller of dispatch ever needs to decide
// how to react — no package-level sentinel error crosses this
// boundary undressed.
type FailureKind int

const (
	// InvalidInput covers r < 2, n < 2, r > n, or a non-integer input
	// that never reached the enumerator. Recovery: reject the call.
	InvalidInput FailureKind = iota

	// CacheCorrupt covers a magic/CRC/dimension mismatch on cache
	// load. dispatch handles this internally (rebuild and proceed);
	// it is only surfaced here if the rebuild itself then fails.
	CacheCorrupt

	// CacheIO covers a missing or unwritable cache directory.
	CacheIO

	// TooLarge covers n exceeding the implementation cap or a count
	// overflowing the chosen integer width.
	TooLarge

	// Cancelled covers cooperative cancellation triggering before a
	// count completed.
	Cancelled

	// Internal covers an invariant violation such as a broken bitmask
	// invariant inside the enumerator.
	Internal
)

func (k FailureKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case CacheCorrupt:
		return "CacheCorrupt"
	case CacheIO:
		return "CacheIO"
	case TooLarge:
		return "TooLarge"
	case Cancelled:
		return "Cancelled"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Failure is the only error type crossing the public dispatch API
// boundary. Every package-level sentinel error (derangement.ErrTooLarge,
// enumerate.ErrInvalidInput, ...) is classified into one of these
// before Count, CountWithCompletion, or CountRange return.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("dispatch: %s: %s", f.Kind, f.Message)
}

func newFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// classify maps an internal package error into a Failure. Errors
// already of type *Failure pass through unchanged, so callers deep in
// the stack (e.g. a partial dispatch composed from another dispatch
// call) never get double-wrapped.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	switch {
	case errors.Is(err, enumerate.ErrInvalidInput):
		return newFailure(InvalidInput, "%v", err)
	case errors.Is(err, enumerate.ErrInternal):
		return newFailure(Internal, "%v", err)
	case errors.Is(err, derangement.ErrTooLarge):
		return newFailure(TooLarge, "%v", err)
	case errors.Is(err, derangement.ErrCacheCorrupt):
		return newFailure(CacheCorrupt, "%v", err)
	case errors.Is(err, derangement.ErrCacheIO):
		return newFailure(CacheIO, "%v", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return newFailure(Cancelled, "%v", err)
	default:
		return newFailure(Internal, "%v", err)
	}
}
