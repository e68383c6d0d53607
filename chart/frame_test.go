package chart

import (
	"context"
	"image"
	"math"
	"testing"

	"github.com/flightdeck-io/flightdeck/export"
)

func TestBuildFrames_CumulativeGrowth(t *testing.T) {
	series := []Series{{Name: "alt", Values: []float64{1, 2, 3, 4, 5}}}

	frames, err := BuildFrames(series)
	if err != nil {
		t.Fatal(err)
	}

	// 5 points yield frames at upto 2, 3, 4, 5.
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	for i, raw := range frames {
		f := raw.(*Frame)
		if f.Upto != i+2 {
			t.Errorf("frame %d upto = %d, want %d", i, f.Upto, i+2)
		}
		if f.Total != 5 {
			t.Errorf("frame %d total = %d, want 5", i, f.Total)
		}
	}
}

func TestBuildFrames_FirstFrameShowsTwoPoints(t *testing.T) {
	frames, err := BuildFrames([]Series{{Name: "spd", Values: []float64{10, 20, 30}}})
	if err != nil {
		t.Fatal(err)
	}

	if first := frames[0].(*Frame); first.Upto != 2 {
		t.Errorf("first frame upto = %d, want 2", first.Upto)
	}
}

func TestBuildFrames_ShortSeries(t *testing.T) {
	frames, err := BuildFrames([]Series{{Name: "x", Values: []float64{42}}})
	if err != nil {
		t.Fatal(err)
	}

	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1 static frame", len(frames))
	}
}

func TestBuildFrames_NoSeries(t *testing.T) {
	if _, err := BuildFrames(nil); err == nil {
		t.Error("expected error for empty series list")
	}
}

func TestBuildFrames_LengthMismatch(t *testing.T) {
	_, err := BuildFrames([]Series{
		{Name: "a", Values: []float64{1, 2, 3}},
		{Name: "b", Values: []float64{1, 2}},
	})
	if err == nil {
		t.Error("expected error for mismatched series lengths")
	}
}

func TestRenderer_FrameDimensions(t *testing.T) {
	series := []Series{{Name: "alt", Values: []float64{1, 5, 3, 8, 2}}}
	frames, err := BuildFrames(series)
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(series)
	opts := export.RasterOptions{Width: 480, Height: 360, Scale: 0.5}

	img, err := r.Rasterize(context.Background(), frames[0], opts)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 240 || img.Bounds().Dy() != 180 {
		t.Errorf("raster = %dx%d, want 240x180", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderer_StableAxesAcrossFrames(t *testing.T) {
	// The plotted pixel for a shared early point must not move between a
	// partial and the final frame: axes are fixed over the full series.
	series := []Series{{Name: "alt", Values: []float64{0, 100, 50, 75, 25, 60, 90, 10}}}
	frames, err := BuildFrames(series)
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(series)
	opts := export.RasterOptions{Width: 480, Height: 360, Scale: 1.0}

	partial, err := r.Rasterize(context.Background(), frames[1], opts)
	if err != nil {
		t.Fatal(err)
	}
	final, err := r.Rasterize(context.Background(), frames[len(frames)-1], opts)
	if err != nil {
		t.Fatal(err)
	}

	// The first line segment exists in both renders; sample a band around
	// the left edge of the plot area and compare colored pixels.
	found := 0
	for y := 0; y < 360; y++ {
		for x := 40; x < 80; x++ {
			p1 := partial.(*image.RGBA).RGBAAt(x, y)
			p2 := final.(*image.RGBA).RGBAAt(x, y)
			if p1 != p2 {
				t.Fatalf("pixel (%d,%d) differs between partial and final frame: %v vs %v", x, y, p1, p2)
			}
			if p1.R != 0xff || p1.G != 0xff || p1.B != 0xff {
				found++
			}
		}
	}
	if found == 0 {
		t.Error("no drawn pixels found in sampled band")
	}
}

func TestRenderer_RejectsForeignFrameType(t *testing.T) {
	r := NewRenderer([]Series{{Name: "x", Values: []float64{1, 2}}})

	_, err := r.Rasterize(context.Background(), "not a frame", export.RasterOptions{Width: 100, Height: 100, Scale: 1})
	if err == nil {
		t.Error("expected error for foreign frame type")
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	series := []Series{{Name: "x", Values: []float64{1, 2, 3}}}
	frames, _ := BuildFrames(series)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(series)
	if _, err := r.Rasterize(ctx, frames[0], export.RasterOptions{Width: 100, Height: 100, Scale: 1}); err == nil {
		t.Error("expected context error")
	}
}

func TestRenderer_LeadingNaN(t *testing.T) {
	// A column can pass the numeric probe yet start with a missing cell,
	// so the first value is NaN. The polyline must seed from the first
	// finite point instead of projecting NaN to a coordinate.
	series := []Series{{Name: "alt", Values: []float64{math.NaN(), 2, 3, 4, 5}}}
	frames, err := BuildFrames(series)
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(series)
	opts := export.RasterOptions{Width: 480, Height: 360, Scale: 0.6}

	img, err := r.Rasterize(context.Background(), frames[len(frames)-1], opts)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	rgba := img.(*image.RGBA)
	b := rgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if p := rgba.RGBAAt(x, y); p.B > p.R && p.B > p.G {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no series pixels drawn for a series with a leading NaN")
	}
}

func TestRenderer_AllNaNSeries(t *testing.T) {
	series := []Series{{Name: "gap", Values: []float64{math.NaN(), math.NaN(), math.NaN()}}}
	frames, err := BuildFrames(series)
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(series)
	if _, err := r.Rasterize(context.Background(), frames[0], export.RasterOptions{Width: 240, Height: 160, Scale: 0.3}); err != nil {
		t.Fatalf("all-NaN series should render an empty plot: %v", err)
	}
}

func TestRenderer_FlatSeries(t *testing.T) {
	series := []Series{{Name: "level", Values: []float64{5, 5, 5, 5}}}
	frames, err := BuildFrames(series)
	if err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(series)
	if _, err := r.Rasterize(context.Background(), frames[0], export.RasterOptions{Width: 240, Height: 160, Scale: 0.3}); err != nil {
		t.Fatalf("flat series should render: %v", err)
	}
}
