package export

import (
	"time"

	"github.com/flightdeck-io/flightdeck/types"
)

// SamplePlan is the concrete stride and cap the sampler applies.
// Cap == 0 means no cap (frame-step only).
type SamplePlan struct {
	Stride int
	Cap    int
}

// fastestBucket maps a coarse source-size bucket to a (stride, cap) pair.
// Buckets are tuned so the fastest tier renders at most 8-10 frames
// regardless of source size.
type fastestBucket struct {
	maxCount int // inclusive upper bound; 0 means "everything above"
	stride   int // 0 means stride = totalFrames / cap
	cap      int
}

var fastestBuckets = []fastestBucket{
	{maxCount: 10, stride: 1, cap: 10},
	{maxCount: 30, stride: 3, cap: 10},
	{maxCount: 60, stride: 6, cap: 10},
	{maxCount: 100, stride: 10, cap: 10},
	{maxCount: 0, stride: 0, cap: 8}, // >100: stride derived from count
}

// strideThresholds are per-tier divisors for stride-based tiers:
// stride = max(1, totalFrames/threshold). Larger threshold means denser
// sampling. The high tier sits below standard because its frames cost
// roughly four times as much to rasterize.
var strideThresholds = map[types.QualityTier]int{
	types.TierFastPreview: 30,
	types.TierHigh:        60,
	types.TierStandard:    100,
}

// builtinProfiles is the base parameter table for the built-in tiers.
// Sampling fields (MaxFrameBudget, FrameThreshold) are filled in by
// ResolveProfile since the fastest tier's budget depends on source size.
var builtinProfiles = map[types.QualityTier]types.QualityProfile{
	types.TierFastest: {
		Tier:             types.TierFastest,
		TargetWidth:      240,
		TargetHeight:     160,
		RasterScale:      0.3,
		PerFrameDuration: 500 * time.Millisecond,
		Encoding:         types.ColorEncoding{Mode: types.ColorReducedPalette, PaletteSize: 16},
	},
	types.TierFastPreview: {
		Tier:             types.TierFastPreview,
		TargetWidth:      320,
		TargetHeight:     240,
		RasterScale:      0.4,
		PerFrameDuration: 300 * time.Millisecond,
		Encoding:         types.ColorEncoding{Mode: types.ColorFull},
	},
	types.TierStandard: {
		Tier:             types.TierStandard,
		TargetWidth:      480,
		TargetHeight:     360,
		RasterScale:      0.6,
		PerFrameDuration: 250 * time.Millisecond,
		Encoding:         types.ColorEncoding{Mode: types.ColorFull},
	},
	types.TierHigh: {
		Tier:             types.TierHigh,
		TargetWidth:      800,
		TargetHeight:     600,
		RasterScale:      1.0,
		PerFrameDuration: 200 * time.Millisecond,
		Encoding:         types.ColorEncoding{Mode: types.ColorFull},
	},
}

// Profiles returns the base profile table for display (e.g. the tiers
// command). Sampling fields are unresolved since they depend on source size.
func Profiles() []types.QualityProfile {
	out := make([]types.QualityProfile, 0, len(builtinProfiles))
	for _, tier := range types.Tiers() {
		out = append(out, builtinProfiles[tier])
	}
	return out
}

// ResolveProfile maps a tier name and the total source frame count to a
// fully resolved profile and a concrete sampling plan.
//
// The fastest tier picks (stride, cap) from a fixed bucket table keyed by
// coarse source-size buckets. Other tiers derive stride from a per-tier
// threshold with no cap: large inputs simply render more frames at a
// coarser stride.
//
// An unrecognized tier fails with a ConfigurationError.
func ResolveProfile(tier types.QualityTier, totalFrames int) (types.QualityProfile, SamplePlan, error) {
	profile, ok := builtinProfiles[tier]
	if !ok {
		return types.QualityProfile{}, SamplePlan{}, &ConfigurationError{
			Field: "tier",
			Msg:   "unknown quality tier " + string(tier),
		}
	}

	if tier == types.TierFastest {
		plan := fastestPlan(totalFrames)
		profile.MaxFrameBudget = plan.Cap
		return profile, plan, nil
	}

	threshold := strideThresholds[tier]
	profile.FrameThreshold = threshold
	stride := totalFrames / threshold
	if stride < 1 {
		stride = 1
	}
	return profile, SamplePlan{Stride: stride}, nil
}

// fastestPlan picks the (stride, cap) bucket for the fastest tier.
func fastestPlan(totalFrames int) SamplePlan {
	for _, b := range fastestBuckets {
		if b.maxCount == 0 || totalFrames <= b.maxCount {
			stride := b.stride
			if stride == 0 {
				stride = totalFrames / b.cap
				if stride < 1 {
					stride = 1
				}
			}
			return SamplePlan{Stride: stride, Cap: b.cap}
		}
	}
	// Unreachable: the last bucket matches everything.
	return SamplePlan{Stride: 1, Cap: 10}
}
