package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"

	"github.com/flightdeck-io/flightdeck/types"
)

// EncodeAnimation serializes the ordered frame sequence into a single
// animated GIF.
//
// Reduced-palette frames arrive already quantized from the workers and are
// assembled with restore-to-background disposal, which lets the encoder
// drop inter-frame redundancy and keeps low-quality exports small.
// Full-color frames are mapped to a per-frame palette at assembly time
// with no disposal. Looping is unconditional.
//
// Zero frames or inconsistent frame dimensions fail with an EncodingError:
// terminal and non-retryable for the export request.
func EncodeAnimation(frames []image.Image, profile types.QualityProfile) (*types.AnimatedArtifact, error) {
	if len(frames) == 0 {
		return nil, &EncodingError{Op: "validate", Err: errors.New("no frames to encode")}
	}

	bounds := frames[0].Bounds()
	for i, frame := range frames[1:] {
		if frame.Bounds().Dx() != bounds.Dx() || frame.Bounds().Dy() != bounds.Dy() {
			return nil, &EncodingError{
				Op: "validate",
				Err: fmt.Errorf("frame %d is %dx%d, want %dx%d",
					i+1, frame.Bounds().Dx(), frame.Bounds().Dy(), bounds.Dx(), bounds.Dy()),
			}
		}
	}

	// GIF delay units are hundredths of a second.
	delay := int(profile.PerFrameDuration.Milliseconds() / 10)
	if delay < 1 {
		delay = 1
	}

	reduced := profile.Encoding.Mode == types.ColorReducedPalette
	disposal := byte(gif.DisposalNone)
	if reduced {
		disposal = gif.DisposalBackground
	}

	anim := &gif.GIF{LoopCount: 0} // 0 loops forever
	for _, frame := range frames {
		paletted, ok := frame.(*image.Paletted)
		if !ok {
			if reduced {
				// Workers should have quantized already; recover anyway.
				paletted = quantize(frame, profile.Encoding.PaletteSize)
			} else {
				paletted = exactPalette(frame)
			}
		}
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, disposal)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, &EncodingError{Op: "encode", Err: err}
	}

	return &types.AnimatedArtifact{
		Data:       buf.Bytes(),
		SizeBytes:  int64(buf.Len()),
		FrameCount: len(frames),
		Format:     types.FormatGIF,
		Tier:       profile.Tier,
	}, nil
}
