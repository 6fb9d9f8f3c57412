package dispatch

import (
	"go.uber.org/zap"

	"github.com/latinrect/latinrect/progress"
	"github.com/latinrect/latinrect/store"
)

// Mode selects how a dispatch call picks its backend.
type Mode int

const (
	// ModeAuto lets the dispatcher choose single vs. parallel by the
	// estimated-runtime heuristic in spec.md §4.10.
	ModeAuto Mode = iota

	// ModeSingle forces the single-threaded first-column reducer
	// regardless of estimated cost.
	ModeSingle

	// ModeParallel forces the parallel driver regardless of estimated
	// cost, subject to Workers/hardware clamping.
	ModeParallel
)

// Options configures a Count, CountWithCompletion, or CountRange call.
type Options struct {
	// Mode selects the backend. The zero value is ModeAuto.
	Mode Mode

	// Workers, when positive, sets the parallel backend's worker count
	// (clamped to the number of first-column work units) whenever that
	// backend runs, under ModeParallel or ModeAuto. Zero or negative
	// means "auto": min of hardware parallelism, the number of
	// first-column work units, and maxAutoWorkers.
	Workers int

	// Fuse makes Count, when r = n-1, run the completion-fusion pass
	// that derives (n, n) from the (n-1, n) enumeration, and also store
	// the (r+1, n) result when Store is set. CountWithCompletion always
	// fuses and ignores Fuse.
	Fuse bool

	// CacheDir is where the derangement cache is loaded from or built
	// into. Empty means the current working directory.
	CacheDir string

	// Store, if non-nil, is checked before computing and written to
	// after — a cache-aside layer entirely outside the counting core.
	Store store.Store

	// Progress, if non-nil, receives OnStart/OnUnitComplete/OnFinish
	// callbacks. A nil Progress is treated as progress.Noop{}.
	Progress progress.Sink

	// Logger receives structured diagnostic output (cache rebuilds and
	// cache save failures). A nil Logger is treated as zap.NewNop().
	Logger *zap.Logger
}

// maxAutoWorkers is the configured upper bound spec.md §4.10 asks for
// on top of hardware parallelism and unit count.
const maxAutoWorkers = 8

func (o Options) sink() progress.Sink {
	if o.Progress == nil {
		return progress.Noop{}
	}
	return o.Progress
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) cacheDir() string {
	if o.CacheDir == "" {
		return "."
	}
	return o.CacheDir
}
