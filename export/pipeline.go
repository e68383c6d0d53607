package export

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flightdeck-io/flightdeck/log"
	"github.com/flightdeck-io/flightdeck/metrics"
	"github.com/flightdeck-io/flightdeck/types"
)

// Request configures a single export.
type Request struct {
	// Frames is the full ordered sequence of source frame descriptors.
	// The sampler selects a subset; descriptors are handed opaquely to the
	// Rasterizer.
	Frames []any
	// Tier selects the quality profile.
	Tier types.QualityTier
	// Rasterizer renders one frame descriptor into an image.
	Rasterizer Rasterizer
	// Override carries optional per-invocation profile overrides.
	Override *types.ProfileOverride
	// OnProgress is an optional progress observer. Called only from the
	// aggregating goroutine, so it needs no synchronization of its own.
	OnProgress types.ProgressObserver
	// Collector is the metrics collector for this export.
	// If nil, no metrics are recorded (all Collector methods are nil-safe).
	Collector *metrics.Collector
	// Logger overrides the default logger. If nil, a logger with export
	// context writing to stderr is created.
	Logger *log.Logger
	// ExportID identifies the export. Generated when empty.
	ExportID string
	// Dataset is an optional label for the source dataset, carried into
	// log context.
	Dataset string
}

// Result represents the terminal state of an export.
type Result struct {
	// ExportID is the export identifier.
	ExportID string
	// Outcome is the outcome classification.
	Outcome *types.ExportOutcome
	// Artifact is the encoded animation. Nil unless the outcome is
	// completed.
	Artifact *types.AnimatedArtifact
	// FramesSelected is the number of frames the sampler selected.
	FramesSelected int
	// FramesRendered is the number of frames that rasterized successfully.
	FramesRendered int
	// Duration is the total export duration.
	Duration time.Duration
	// Tier is the quality tier the export ran under.
	Tier types.QualityTier
}

// Pipeline orchestrates a single export end-to-end: sampling, fan-out
// rendering, ordered aggregation, and assembly. Created fresh per request
// and never reused.
type Pipeline struct {
	req     *Request
	meta    *types.ExportMeta
	profile types.QualityProfile
	plan    SamplePlan
	indices []int
	state   *PipelineState
	logger  *log.Logger

	startTime time.Time
}

// NewPipeline validates the request and resolves the quality profile.
// All configuration errors surface here, before any rendering work starts;
// they are ConfigurationErrors and map to the config_invalid outcome.
func NewPipeline(req *Request) (*Pipeline, error) {
	if len(req.Frames) == 0 {
		return nil, &ConfigurationError{Field: "frames", Msg: "frame sequence is empty"}
	}
	if req.Rasterizer == nil {
		return nil, &ConfigurationError{Field: "rasterizer", Msg: "rasterizer is required"}
	}

	profile, plan, err := ResolveProfile(req.Tier, len(req.Frames))
	if err != nil {
		return nil, err
	}
	profile = req.Override.Apply(profile)

	exportID := req.ExportID
	if exportID == "" {
		exportID = uuid.NewString()
	}
	meta := &types.ExportMeta{
		ExportID: exportID,
		Tier:     req.Tier,
		Dataset:  req.Dataset,
	}

	logger := req.Logger
	if logger == nil {
		logger = log.NewLogger(meta)
	}

	indices := SampleIndices(len(req.Frames), plan.Stride, plan.Cap)

	return &Pipeline{
		req:     req,
		meta:    meta,
		profile: profile,
		plan:    plan,
		indices: indices,
		state:   newPipelineState(len(indices)),
		logger:  logger,
	}, nil
}

// ExportID returns the export identifier.
func (p *Pipeline) ExportID() string {
	return p.meta.ExportID
}

// FramesSelected returns the number of frames the sampler selected.
func (p *Pipeline) FramesSelected() int {
	return len(p.indices)
}

// Cancel requests cancellation. Safe to call from any goroutine at any
// point in the run, including before Run starts, and idempotent.
func (p *Pipeline) Cancel() {
	p.state.Cancel()
	p.logger.Info("cancellation requested", nil)
}

// Run executes the export end-to-end.
//
// Execution flow:
//  1. Fan selected frames out to the render pool
//  2. Aggregate results in sampling order (concurrent with rendering)
//  3. Assemble survivors into the animated artifact
//  4. Classify outcome
//
// The returned error is always nil; terminal failures are classified into
// Result.Outcome so callers handle one shape for every ending.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.startTime = time.Now()
	p.req.Collector.IncExportStarted()
	p.req.Collector.SetFramesSelected(len(p.indices))

	p.logger.Info("starting export", map[string]any{
		"frames_total":    len(p.req.Frames),
		"frames_selected": len(p.indices),
		"stride":          p.plan.Stride,
		"width":           p.profile.TargetWidth,
		"height":          p.profile.TargetHeight,
	})

	pool := &renderPool{
		rasterizer: p.req.Rasterizer,
		profile:    p.profile,
		state:      p.state,
		logger:     p.logger,
	}
	results := pool.run(ctx, p.req.Frames, p.indices)

	survivors, err := p.aggregate(ctx, results, p.req.OnProgress)
	if err != nil {
		return p.classify(err), nil
	}

	for i := 0; i < p.state.Completed(); i++ {
		p.req.Collector.IncFrameRendered()
	}
	for i := p.state.Completed(); i < len(p.indices); i++ {
		p.req.Collector.IncFrameFailed()
	}

	p.logger.Info("rendering complete", map[string]any{
		"rendered": len(survivors),
		"failed":   len(p.indices) - len(survivors),
	})

	artifact, err := EncodeAnimation(survivors, p.profile)
	if err != nil {
		p.req.Collector.IncEncodeFailure()
		return p.classify(err), nil
	}

	p.req.Collector.IncExportCompleted()
	p.logger.Info("export complete", map[string]any{
		"size_bytes":  artifact.SizeBytes,
		"frame_count": artifact.FrameCount,
	})

	result := p.buildResult(&types.ExportOutcome{
		Status:  types.OutcomeCompleted,
		Message: "export completed",
	})
	result.Artifact = artifact
	return result, nil
}

// classify maps a pipeline error to its terminal outcome. Cancellation
// discards all partial work: no artifact is ever produced for a cancelled
// export, even when some frames rendered before the flag was observed.
func (p *Pipeline) classify(err error) *Result {
	switch {
	case errors.Is(err, ErrCancelled):
		p.req.Collector.IncExportCancelled()
		p.logger.Info("export cancelled", map[string]any{
			"rendered_before_cancel": p.state.Completed(),
		})
		return p.buildResult(&types.ExportOutcome{
			Status:  types.OutcomeCancelled,
			Message: "export cancelled",
		})
	case errors.Is(err, ErrNoFramesRendered):
		p.req.Collector.IncExportFailed()
		p.logger.Error("all frames failed to render", nil)
		return p.buildResult(&types.ExportOutcome{
			Status:  types.OutcomeRenderFailure,
			Message: "no frames rendered",
		})
	case IsEncodingError(err):
		p.req.Collector.IncExportFailed()
		p.logger.Error("animation assembly failed", map[string]any{
			"error": err.Error(),
		})
		return p.buildResult(&types.ExportOutcome{
			Status:  types.OutcomeEncodingError,
			Message: err.Error(),
		})
	default:
		p.req.Collector.IncExportFailed()
		p.logger.Error("export failed", map[string]any{
			"error": err.Error(),
		})
		return p.buildResult(&types.ExportOutcome{
			Status:  types.OutcomeRenderFailure,
			Message: err.Error(),
		})
	}
}

func (p *Pipeline) buildResult(outcome *types.ExportOutcome) *Result {
	return &Result{
		ExportID:       p.meta.ExportID,
		Outcome:        outcome,
		FramesSelected: len(p.indices),
		FramesRendered: p.state.Completed(),
		Duration:       time.Since(p.startTime),
		Tier:           p.profile.Tier,
	}
}
