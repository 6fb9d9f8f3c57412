package progress

import (
	"go.uber.org/zap"

	"github.com/latinrect/latinrect/rectangle"
)

// unitEvent is what ZapSink funnels through its internal channel; a
// single struct keeps the channel and the drop policy uniform across
// the three Sink events instead of one channel per event kind.
type unitEvent struct {
	kind                          string
	workerID                      string
	unitsDone, rectanglesScanned  int
	partialPositive, partialNegative rectangle.Uint128
	r, n, totalWorkUnits          int
	result                        rectangle.CountResult
}

// ZapSink logs progress events through a zap.Logger, off the calling
// goroutine: events are pushed into a small buffered channel and
// dropped (never blocking the worker) when that buffer is full,
// matching spec.md §5's "non-blocking; best-effort drop on
// contention" requirement. A background goroutine drains the channel
// for the lifetime of the sink; Close stops it.
type ZapSink struct {
	logger *zap.Logger
	events chan unitEvent
	done   chan struct{}
}

// NewZapSink starts a ZapSink logging through logger, with a buffer of
// bufSize pending events before drops begin.
func NewZapSink(logger *zap.Logger, bufSize int) *ZapSink {
	if bufSize <= 0 {
		bufSize = 64
	}
	s := &ZapSink{
		logger: logger,
		events: make(chan unitEvent, bufSize),
		done:   make(chan struct{}),
	}
	go s.drain()
	return s
}

func (s *ZapSink) drain() {
	defer close(s.done)
	for ev := range s.events {
		switch ev.kind {
		case "start":
			s.logger.Info("count started",
				zap.Int("r", ev.r), zap.Int("n", ev.n), zap.Int("work_units", ev.totalWorkUnits))
		case "unit":
			s.logger.Debug("work unit complete",
				zap.String("worker", ev.workerID),
				zap.Int("units_done", ev.unitsDone),
				zap.Int("rectangles_scanned", ev.rectanglesScanned),
				zap.Uint64("partial_positive_lo", ev.partialPositive.Lo),
				zap.Uint64("partial_negative_lo", ev.partialNegative.Lo))
		case "finish":
			s.logger.Info("count finished",
				zap.Int("r", ev.result.R), zap.Int("n", ev.result.N),
				zap.Duration("elapsed", ev.result.ComputationTime))
		}
	}
}

func (s *ZapSink) push(ev unitEvent) {
	select {
	case s.events <- ev:
	default:
		// buffer full: drop, per the best-effort contract.
	}
}

func (s *ZapSink) OnStart(r, n, totalWorkUnits int) {
	s.push(unitEvent{kind: "start", r: r, n: n, totalWorkUnits: totalWorkUnits})
}

func (s *ZapSink) OnUnitComplete(workerID string, unitsDone, rectanglesScanned int, partialPositive, partialNegative rectangle.Uint128) {
	s.push(unitEvent{
		kind: "unit", workerID: workerID, unitsDone: unitsDone, rectanglesScanned: rectanglesScanned,
		partialPositive: partialPositive, partialNegative: partialNegative,
	})
}

func (s *ZapSink) OnFinish(result rectangle.CountResult) {
	s.push(unitEvent{kind: "finish", result: result})
}

// Close stops the drain goroutine once all buffered events are
// flushed. Callers should not call OnStart/OnUnitComplete/OnFinish
// after Close.
func (s *ZapSink) Close() {
	close(s.events)
	<-s.done
}
