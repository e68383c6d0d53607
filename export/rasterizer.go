package export

import (
	"context"
	"image"
)

// RasterOptions carries the profile parameters a rasterizer needs for one
// frame.
type RasterOptions struct {
	// Width and Height are the chart layout size in pixels.
	Width  int
	Height int
	// Scale multiplies the layout size to the final raster size.
	Scale float64
}

// PixelSize returns the final raster dimensions after scaling.
func (o RasterOptions) PixelSize() (w, h int) {
	w = int(float64(o.Width) * o.Scale)
	h = int(float64(o.Height) * o.Scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Rasterizer renders one frame descriptor into an image.
//
// Frame descriptors are opaque to the pipeline: the charting layer that
// built the frame sequence supplies the matching rasterizer. Descriptors
// are owned by the caller and borrowed read-only for the duration of one
// Rasterize call; implementations must be safe for concurrent calls on
// distinct descriptors.
type Rasterizer interface {
	Rasterize(ctx context.Context, frame any, opts RasterOptions) (image.Image, error)
}
