package chart

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/flightdeck-io/flightdeck/export"
)

// Line colors cycled across series, picked for contrast on white.
var seriesColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // orange
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, // purple
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, // brown
}

var (
	bgColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	axisColor = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	gridColor = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	textColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// Renderer rasterizes chart frames.
//
// The y range is computed once over the complete series at construction,
// so axes stay fixed while the animation grows instead of rescaling every
// frame. Safe for concurrent Rasterize calls: all fields are set at
// construction and never mutated.
type Renderer struct {
	// Title is drawn across the top when non-empty.
	Title string

	yMin, yMax float64
}

var _ export.Rasterizer = (*Renderer)(nil)

// NewRenderer creates a renderer with the y range fixed over all of
// series' points.
func NewRenderer(series []Series) *Renderer {
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if !finite(v) {
				continue
			}
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}
	if yMin > yMax {
		yMin, yMax = 0, 1
	}
	if yMin == yMax {
		// A flat line still needs a visible band around it.
		yMin, yMax = yMin-1, yMax+1
	}
	return &Renderer{yMin: yMin, yMax: yMax}
}

// Rasterize draws one frame at the requested size.
func (r *Renderer) Rasterize(ctx context.Context, frame any, opts export.RasterOptions) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, ok := frame.(*Frame)
	if !ok {
		return nil, fmt.Errorf("rasterize: unexpected frame type %T", frame)
	}

	w, h := opts.PixelSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)

	// Plot area inside fixed margins; tiny rasters shrink margins to keep
	// some plot area.
	left, right, top, bottom := 40, 12, 20, 24
	if w < 120 {
		left, right = 24, 6
	}
	if h < 100 {
		top, bottom = 12, 14
	}
	plot := image.Rect(left, top, w-right, h-bottom)
	if plot.Dx() < 2 || plot.Dy() < 2 {
		plot = img.Bounds()
	}

	r.drawGrid(img, plot)
	r.drawAxes(img, plot)

	for i, s := range f.Series {
		upto := f.Upto
		if upto > len(s.Values) {
			upto = len(s.Values)
		}
		r.drawSeries(img, plot, s.Values[:upto], f.Total, seriesColors[i%len(seriesColors)])
	}

	if w >= 120 && h >= 100 {
		r.drawLabels(img, plot, f)
	}
	return img, nil
}

func (r *Renderer) drawGrid(img *image.RGBA, plot image.Rectangle) {
	for i := 1; i < 4; i++ {
		y := plot.Min.Y + plot.Dy()*i/4
		hline(img, plot.Min.X, plot.Max.X, y, gridColor)
		x := plot.Min.X + plot.Dx()*i/4
		vline(img, x, plot.Min.Y, plot.Max.Y, gridColor)
	}
}

func (r *Renderer) drawAxes(img *image.RGBA, plot image.Rectangle) {
	hline(img, plot.Min.X, plot.Max.X, plot.Max.Y, axisColor)
	vline(img, plot.Min.X, plot.Min.Y, plot.Max.Y, axisColor)
}

// drawSeries plots values as a polyline. The x axis spans total points so
// partial frames occupy only the left portion of the plot.
func (r *Renderer) drawSeries(img *image.RGBA, plot image.Rectangle, values []float64, total int, c color.RGBA) {
	if total < 2 || len(values) < 2 {
		return
	}
	span := r.yMax - r.yMin

	toPoint := func(i int, v float64) (int, int) {
		x := plot.Min.X + int(float64(plot.Dx())*float64(i)/float64(total-1))
		y := plot.Max.Y - int(float64(plot.Dy())*(v-r.yMin)/span)
		return x, y
	}

	// Missing cells decode to NaN and must never reach the line rasterizer,
	// including as the seed point. Seed from the first finite value and
	// bridge over gaps.
	start := 0
	for start < len(values) && !finite(values[start]) {
		start++
	}
	if start >= len(values) {
		return
	}

	prevX, prevY := toPoint(start, values[start])
	for i := start + 1; i < len(values); i++ {
		if !finite(values[i]) {
			continue
		}
		x, y := toPoint(i, values[i])
		line(img, prevX, prevY, x, y, c)
		prevX, prevY = x, y
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (r *Renderer) drawLabels(img *image.RGBA, plot image.Rectangle, f *Frame) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(textColor), Face: face}

	if r.Title != "" {
		drawer.Dot = fixed.Point26_6{X: fixed.I(plot.Min.X), Y: fixed.I(14)}
		drawer.DrawString(r.Title)
	}

	// Y-range endpoints at the axis.
	drawer.Dot = fixed.Point26_6{X: fixed.I(2), Y: fixed.I(plot.Min.Y + 10)}
	drawer.DrawString(compactFloat(r.yMax))
	drawer.Dot = fixed.Point26_6{X: fixed.I(2), Y: fixed.I(plot.Max.Y)}
	drawer.DrawString(compactFloat(r.yMin))

	// Series legend along the bottom, color-keyed.
	x := plot.Min.X
	for i, s := range f.Series {
		c := seriesColors[i%len(seriesColors)]
		legend := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(img.Bounds().Max.Y - 6)},
		}
		legend.DrawString(s.Name)
		x += legend.MeasureString(s.Name).Ceil() + 12
		if x > plot.Max.X {
			break
		}
	}
}

// compactFloat formats a value for axis labels: short, no trailing zeros.
func compactFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

// line draws a segment with Bresenham's algorithm.
func line(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
