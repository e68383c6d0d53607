package export

import (
	"context"
	"image"
	"sync"

	"github.com/flightdeck-io/flightdeck/log"
	"github.com/flightdeck-io/flightdeck/types"
)

// MaxRenderWorkers bounds the render pool size. The pool never spawns more
// workers than there are selected frames.
const MaxRenderWorkers = 8

// renderTask is one unit of rasterization work: render the source frame at
// frameIndex into slot.
type renderTask struct {
	slot       int
	frameIndex int
}

// renderResult is one worker's output. Image is nil when the frame failed
// to render; the failure has already been logged at the worker boundary
// and is non-fatal to the rest of the pool.
type renderResult struct {
	slot  int
	image image.Image
}

// renderPool fans selected frames out to a bounded set of workers.
//
// Workers synchronize only through the task and result channels and the
// shared PipelineState; no worker ever blocks on another worker. Each task
// is claimed by exactly one worker and each slot receives at most one
// result, so slots never contend.
type renderPool struct {
	rasterizer Rasterizer
	profile    types.QualityProfile
	state      *PipelineState
	logger     *log.Logger
}

// run dispatches every (slot, frameIndex) pair to the worker pool and
// returns the completion channel. The channel is closed once all workers
// have exited; after cancellation workers stop claiming tasks, so the
// channel may close before every slot has produced a result.
func (p *renderPool) run(ctx context.Context, frames []any, indices []int) <-chan renderResult {
	tasks := make(chan renderTask, len(indices))
	for slot, frameIndex := range indices {
		tasks <- renderTask{slot: slot, frameIndex: frameIndex}
	}
	close(tasks)

	results := make(chan renderResult, len(indices))

	workers := len(indices)
	if workers > MaxRenderWorkers {
		workers = MaxRenderWorkers
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, frames, tasks, results)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// worker claims tasks until the queue drains or cancellation is observed.
func (p *renderPool) worker(ctx context.Context, frames []any, tasks <-chan renderTask, results chan<- renderResult) {
	opts := RasterOptions{
		Width:  p.profile.TargetWidth,
		Height: p.profile.TargetHeight,
		Scale:  p.profile.RasterScale,
	}

	for task := range tasks {
		// Cooperative cancel check before the expensive part.
		if p.state.Cancelled() || ctx.Err() != nil {
			return
		}

		img, err := p.rasterizer.Rasterize(ctx, frames[task.frameIndex], opts)
		if err != nil {
			// Absorbed here: the slot stays empty and the pool carries on.
			ferr := &frameRenderError{frameIndex: task.frameIndex, slot: task.slot, err: err}
			p.logger.Warn("frame render failed", map[string]any{
				"frame_index": task.frameIndex,
				"slot":        task.slot,
				"error":       ferr.Error(),
			})
			results <- renderResult{slot: task.slot}
			continue
		}

		// Reduced-palette tiers quantize here, in parallel, so the encoder
		// only assembles.
		if p.profile.Encoding.Mode == types.ColorReducedPalette {
			img = quantize(img, p.profile.Encoding.PaletteSize)
		}

		// A cancel observed after rendering still submits the result; the
		// aggregator discards anything that arrives after the flag.
		results <- renderResult{slot: task.slot, image: img}
	}
}
