// Package types defines core domain types for the flightdeck export pipeline.
//
//nolint:revive // types is a common Go package naming convention
package types

import "time"

// QualityTier names a built-in quality profile.
type QualityTier string

// Built-in quality tiers, ordered from cheapest to most faithful.
const (
	// TierFastest trades almost everything for speed: tiny frames, a hard
	// frame budget, and a 16-color palette.
	TierFastest QualityTier = "fastest"
	// TierFastPreview is a quick full-color preview at reduced resolution.
	TierFastPreview QualityTier = "fast-preview"
	// TierStandard is the default balance of size and fidelity.
	TierStandard QualityTier = "standard"
	// TierHigh renders at full scale with the densest practical frame set.
	TierHigh QualityTier = "high"
)

// Tiers returns all built-in tiers in display order.
func Tiers() []QualityTier {
	return []QualityTier{TierFastest, TierFastPreview, TierStandard, TierHigh}
}

// ColorMode selects the frame color-encoding strategy.
type ColorMode string

const (
	// ColorReducedPalette quantizes every frame to a small fixed palette.
	ColorReducedPalette ColorMode = "reduced_palette"
	// ColorFull keeps 24-bit color until final assembly.
	ColorFull ColorMode = "full_color"
)

// ColorEncoding is the color-encoding strategy for rendered frames.
// PaletteSize is only meaningful for ColorReducedPalette.
type ColorEncoding struct {
	Mode        ColorMode `json:"mode" yaml:"mode"`
	PaletteSize int       `json:"palette_size,omitempty" yaml:"palette_size,omitempty"`
}

// QualityProfile is a fully resolved bundle of export parameters.
// Immutable once resolved; copied by value into the pipeline.
type QualityProfile struct {
	// Tier is the tier this profile was resolved from.
	Tier QualityTier `json:"tier" yaml:"tier"`
	// TargetWidth and TargetHeight are the chart layout size in pixels.
	TargetWidth  int `json:"target_width" yaml:"target_width"`
	TargetHeight int `json:"target_height" yaml:"target_height"`
	// RasterScale multiplies the layout size to the final raster size.
	RasterScale float64 `json:"raster_scale" yaml:"raster_scale"`
	// MaxFrameBudget caps the rendered frame count. Zero means no cap.
	MaxFrameBudget int `json:"max_frame_budget,omitempty" yaml:"max_frame_budget,omitempty"`
	// FrameThreshold is the stride divisor for stride-based tiers:
	// stride = max(1, totalFrames/FrameThreshold). Zero for bucket-based tiers.
	FrameThreshold int `json:"frame_threshold,omitempty" yaml:"frame_threshold,omitempty"`
	// PerFrameDuration is how long each frame is displayed.
	PerFrameDuration time.Duration `json:"per_frame_duration" yaml:"per_frame_duration"`
	// Encoding is the color-encoding strategy.
	Encoding ColorEncoding `json:"encoding" yaml:"encoding"`
}

// ProfileOverride carries optional per-invocation overrides applied on top
// of a resolved profile. Zero values leave the resolved field untouched.
type ProfileOverride struct {
	TargetWidth      int           `yaml:"target_width"`
	TargetHeight     int           `yaml:"target_height"`
	RasterScale      float64       `yaml:"raster_scale"`
	PerFrameDuration time.Duration `yaml:"per_frame_duration"`
	PaletteSize      int           `yaml:"palette_size"`
}

// Apply returns a copy of p with non-zero override fields applied.
func (o *ProfileOverride) Apply(p QualityProfile) QualityProfile {
	if o == nil {
		return p
	}
	if o.TargetWidth > 0 {
		p.TargetWidth = o.TargetWidth
	}
	if o.TargetHeight > 0 {
		p.TargetHeight = o.TargetHeight
	}
	if o.RasterScale > 0 {
		p.RasterScale = o.RasterScale
	}
	if o.PerFrameDuration > 0 {
		p.PerFrameDuration = o.PerFrameDuration
	}
	if o.PaletteSize > 0 && p.Encoding.Mode == ColorReducedPalette {
		p.Encoding.PaletteSize = o.PaletteSize
	}
	return p
}
