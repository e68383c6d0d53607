package export

import (
	"image"
	"sync/atomic"
)

// PipelineState is the mutable state shared by the workers and the
// aggregator for one export request. Created fresh per request, discarded
// once the request resolves, never reused.
//
// The cancellation flag is the only field written from outside the
// aggregating goroutine. It is monotonic: false to true exactly once,
// never reset mid-run. The slot array is written by worker results relayed
// through the aggregator, each slot at most once, so no per-slot locking
// is needed. completed is written only by the aggregator and always equals
// the number of non-nil slots.
type PipelineState struct {
	cancelled atomic.Bool
	done      chan struct{} // closed on first Cancel, wakes blocked waits

	completed int
	slots     []image.Image
}

func newPipelineState(totalSelected int) *PipelineState {
	return &PipelineState{
		done:  make(chan struct{}),
		slots: make([]image.Image, totalSelected),
	}
}

// Cancel sets the cancellation flag. Safe to call from any goroutine and
// idempotent; only the first call has any effect.
func (s *PipelineState) Cancel() {
	if s.cancelled.CompareAndSwap(false, true) {
		close(s.done)
	}
}

// Cancelled reports whether the flag is set. Never blocks.
func (s *PipelineState) Cancelled() bool {
	return s.cancelled.Load()
}

// Completed returns the number of non-empty render slots. Meaningful only
// on the aggregating goroutine while the run is live, or anywhere after the
// run resolves.
func (s *PipelineState) Completed() int {
	return s.completed
}
