// Package chart builds animated line-chart frame sequences from decoded
// parameter series and rasterizes them into images.
//
// A frame sequence animates the chart growing left to right: frame k shows
// the first k+2 points of every series, and the final frame shows the
// complete chart. The sequence feeds the export pipeline, which samples,
// renders, and assembles it.
package chart

import "fmt"

// Series is one named parameter curve.
type Series struct {
	// Name is the display label, typically the source column name.
	Name string
	// Values are the data points in sample order.
	Values []float64
}

// Frame is one animation step: every series truncated to its first Upto
// points. Frames share the underlying series slices; they are read-only
// views, not copies.
type Frame struct {
	Series []Series
	// Upto is the number of points visible in this frame.
	Upto int
	// Total is the full point count, kept so the renderer can hold the
	// x axis fixed across the whole animation.
	Total int
}

// BuildFrames expands series into the cumulative frame sequence.
//
// The first frame shows two points rather than one, since a single point
// draws no line. Series of fewer than two points yield a single static
// frame. All series must be the same length.
func BuildFrames(series []Series) ([]any, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("build frames: no series")
	}
	total := len(series[0].Values)
	for _, s := range series[1:] {
		if len(s.Values) != total {
			return nil, fmt.Errorf("build frames: series %q has %d points, want %d",
				s.Name, len(s.Values), total)
		}
	}

	if total <= 2 {
		return []any{&Frame{Series: series, Upto: total, Total: total}}, nil
	}

	frames := make([]any, 0, total-1)
	for upto := 2; upto <= total; upto++ {
		frames = append(frames, &Frame{Series: series, Upto: upto, Total: total})
	}
	return frames, nil
}
