// Package export implements the animated-chart export pipeline: quality
// profile resolution, frame sampling, parallel rasterization, ordered
// aggregation, cooperative cancellation, and GIF assembly.
package export

import (
	"errors"
	"fmt"
)

// Sentinel errors for terminal pipeline outcomes.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrCancelled indicates a user-initiated cancel was observed.
	ErrCancelled = errors.New("export cancelled")

	// ErrNoFramesRendered indicates every selected frame failed to render.
	ErrNoFramesRendered = errors.New("no frames rendered")
)

// ConfigurationError indicates an invalid export request: an unrecognized
// quality tier, a missing rasterizer, or an empty frame sequence.
// It always fails fast, before any rendering work starts.
type ConfigurationError struct {
	// Field is the offending request field (e.g. "tier", "frames").
	Field string
	// Msg describes what was wrong.
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid export config: %s: %s", e.Field, e.Msg)
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// EncodingError indicates the assembly step rejected the surviving frames.
// Terminal and non-retryable for the export request.
type EncodingError struct {
	// Op is the assembly operation that failed (e.g. "validate", "encode").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode animation: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// IsEncodingError reports whether err is an EncodingError.
func IsEncodingError(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee)
}

// frameRenderError is a single-frame rasterization failure. It is absorbed
// at the worker boundary: the worker logs it and reports an empty slot, and
// the rest of the pool is unaffected. It never escapes the pipeline.
type frameRenderError struct {
	frameIndex int
	slot       int
	err        error
}

func (e *frameRenderError) Error() string {
	return fmt.Sprintf("render frame %d (slot %d): %v", e.frameIndex, e.slot, e.err)
}

func (e *frameRenderError) Unwrap() error {
	return e.err
}
