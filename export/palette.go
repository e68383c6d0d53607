package export

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
)

// quantize converts img to a paletted image with at most maxColors colors.
//
// Palette selection is by popularity: pixel colors are bucketed to 15-bit
// RGB, the most frequent buckets become palette entries, and the image is
// drawn onto the palette with Floyd-Steinberg dithering. Charts have few
// distinct colors, so popularity selection keeps lines and background
// exact; photographic inputs would dither.
func quantize(img image.Image, maxColors int) *image.Paletted {
	if maxColors < 2 {
		maxColors = 2
	}
	if maxColors > 256 {
		maxColors = 256
	}

	pal := popularPalette(img, maxColors)
	dst := image.NewPaletted(img.Bounds(), pal)
	draw.FloydSteinberg.Draw(dst, img.Bounds(), img, img.Bounds().Min)
	return dst
}

// exactPalette converts img using a palette built from the image's own
// colors, which is lossless whenever 256 or fewer are present. Charts are
// flat fills over a handful of colors, so the full-color path stays exact;
// an input with more distinct colors falls back to quantize.
func exactPalette(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	seen := make(map[color.RGBA]struct{}, 64)
	pal := make(color.Palette, 0, 64)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			c := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == 256 {
				return quantize(img, 256)
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	if len(pal) == 0 {
		pal = color.Palette{color.White}
	}

	dst := image.NewPaletted(bounds, pal)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}

// popularPalette returns the maxColors most frequent colors of img,
// bucketed to 5 bits per channel.
func popularPalette(img image.Image, maxColors int) color.Palette {
	counts := make(map[uint16]int)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := uint16(r>>11)<<10 | uint16(g>>11)<<5 | uint16(b>>11)
			counts[key]++
		}
	}

	keys := make([]uint16, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j] // deterministic tie-break
	})
	if len(keys) > maxColors {
		keys = keys[:maxColors]
	}

	pal := make(color.Palette, 0, len(keys))
	for _, k := range keys {
		// Expand 5-bit channels back to 8 bits, centering in the bucket.
		r := uint8(k>>10&0x1f)<<3 | 0x04
		g := uint8(k>>5&0x1f)<<3 | 0x04
		b := uint8(k&0x1f)<<3 | 0x04
		pal = append(pal, color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	if len(pal) == 0 {
		pal = color.Palette{color.White, color.Black}
	}
	return pal
}
