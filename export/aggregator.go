package export

import (
	"context"
	"image"

	"github.com/flightdeck-io/flightdeck/types"
)

// aggregate collects worker results into the pre-sized slot array,
// preserving sampling order regardless of completion order, and
// republishes monotonic progress to the observer.
//
// It runs on the goroutine that owns all observer side effects: it is the
// only writer of the completed count and the only caller of onProgress, so
// observers need no synchronization of their own.
//
// Returns ErrCancelled when the cancellation flag (or ctx) is observed,
// ErrNoFramesRendered when every slot ended empty, and otherwise the
// surviving images in slot order.
func (p *Pipeline) aggregate(ctx context.Context, results <-chan renderResult, onProgress types.ProgressObserver) ([]image.Image, error) {
	total := len(p.state.slots)
	observed := 0

	for observed < total {
		// Cancel check before each wait. Workers stop claiming tasks once
		// the flag is set, so a blocked wait ends within one in-flight
		// rasterization: either a straggler result arrives or the pool
		// closes the channel.
		if p.state.Cancelled() || ctx.Err() != nil {
			return nil, ErrCancelled
		}

		select {
		case res, ok := <-results:
			if !ok {
				// Pool shut down early; only possible under cancellation.
				return nil, ErrCancelled
			}
			observed++
			if res.image != nil {
				p.state.slots[res.slot] = res.image
				p.state.completed++
			}
			if onProgress != nil {
				onProgress(types.ProgressEvent{
					ExportID:  p.meta.ExportID,
					Completed: p.state.completed,
					Total:     total,
					Tier:      p.profile.Tier,
				})
			}
		case <-p.state.done:
			return nil, ErrCancelled
		case <-ctx.Done():
			return nil, ErrCancelled
		}
	}

	// Filter to the surviving frames in original sampling order.
	survivors := make([]image.Image, 0, total)
	for _, img := range p.state.slots {
		if img != nil {
			survivors = append(survivors, img)
		}
	}
	if len(survivors) == 0 {
		return nil, ErrNoFramesRendered
	}
	return survivors, nil
}
