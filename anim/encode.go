package anim

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/gogpu/nonnon/internal/parallel"
)

// MaxColors is the largest palette a GIF frame can carry.
const MaxColors = 256

// GIFEncoder encodes frames as an animated GIF.
type GIFEncoder struct {
	// Colors is the palette size per frame, 2..256. Zero means 256.
	Colors int

	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int

	// Workers bounds how many frames are quantized at once.
	// Zero uses GOMAXPROCS.
	Workers int
}

// Encode implements Encoder.
//
// Each frame gets a median-cut palette and is dithered with
// Floyd-Steinberg error diffusion. Frame order and delays are preserved;
// delays are rounded to the nearest centisecond.
func (e GIFEncoder) Encode(frames []Frame, width, height int) ([]byte, error) {
	return e.EncodeContext(context.Background(), frames, width, height)
}

// EncodeContext is Encode with cancellation between frames.
func (e GIFEncoder) EncodeContext(ctx context.Context, frames []Frame, width, height int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, &EncodeError{Frame: -1, Err: ErrNoFrames}
	}
	for i, f := range frames {
		if f.Surface == nil || f.Surface.Width() != width || f.Surface.Height() != height {
			return nil, &EncodeError{Frame: i, Err: fmt.Errorf("%w: want %dx%d", ErrInconsistentSize, width, height)}
		}
	}

	colors := e.Colors
	if colors <= 0 || colors > MaxColors {
		colors = MaxColors
	}
	colors = max(colors, 2)

	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: e.LoopCount,
		Config: image.Config{
			Width:  width,
			Height: height,
		},
	}

	pool := parallel.NewWorkerPool(e.Workers)
	defer pool.Close()
	err := pool.Run(ctx, len(frames), func(_ context.Context, i int) error {
		out.Image[i] = quantizeFrame(frames[i], colors)
		out.Delay[i] = DelayCentiseconds(frames[i].DelayMs)
		out.Disposal[i] = gif.DisposalNone
		return nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, &EncodeError{Frame: -1, Err: err}
	}
	return buf.Bytes(), nil
}

// quantizeFrame builds a median-cut palette for the frame and dithers the
// frame onto it.
func quantizeFrame(f Frame, colors int) *image.Paletted {
	src := f.Surface.NRGBA()
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, colors), src)
	if len(pal) == 0 {
		pal = color.Palette{color.Black}
	}
	dst := image.NewPaletted(src.Bounds(), pal)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, image.Point{})
	return dst
}
