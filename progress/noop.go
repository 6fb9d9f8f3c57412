package progress

import "github.com/latinrect/latinrect/rectangle"

// Noop implements Sink by discarding every event. It is the default
// Sink when a caller supplies none.
type Noop struct{}

func (Noop) OnStart(r, n, totalWorkUnits int) {}
func (Noop) OnUnitComplete(workerID string, unitsDone, rectanglesScanned int, partialPositive, partialNegative rectangle.Uint128) {
}
func (Noop) OnFinish(result rectangle.CountResult) {}
