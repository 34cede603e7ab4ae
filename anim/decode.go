package anim

import (
	"bytes"
	"image"
	"image/gif"

	"github.com/h2non/filetype"

	"github.com/gogpu/nonnon/pixel"
)

// GIFDecoder decodes animated GIFs into full-canvas frames.
type GIFDecoder struct {
	// DefaultDelayMs replaces a zero frame delay when positive.
	DefaultDelayMs int
}

// Decode implements Decoder.
//
// Every sub-image is drawn over the running canvas at its offset. After a
// frame is emitted its disposal is applied: DisposalNone keeps the canvas,
// DisposalBackground clears the frame's rectangle to transparent and
// DisposalPrevious restores the canvas as it was before the frame.
func (d GIFDecoder) Decode(data []byte) ([]Frame, error) {
	if !filetype.Is(data, "gif") {
		return nil, &DecodeError{Err: ErrNotGIF}
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(g.Image) == 0 {
		return nil, &DecodeError{Err: ErrNoFrames}
	}

	screen := logicalScreen(g)
	canvas := pixel.New(screen.Dx(), screen.Dy())
	frames := make([]Frame, 0, len(g.Image))

	for i, img := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var saved *pixel.Surface
		if disposal == gif.DisposalPrevious {
			saved = canvas.Clone()
		}

		b := img.Bounds()
		canvas.Over(pixel.FromImage(img), b.Min.X-screen.Min.X, b.Min.Y-screen.Min.Y)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i] * 10
		}
		if delay == 0 && d.DefaultDelayMs > 0 {
			delay = d.DefaultDelayMs
		}
		frames = append(frames, Frame{Surface: canvas.Clone(), DelayMs: delay})

		switch disposal {
		case gif.DisposalBackground:
			clearRect(canvas, b.Sub(screen.Min))
		case gif.DisposalPrevious:
			canvas = saved
		}
	}
	return frames, nil
}

// logicalScreen returns the GIF's logical screen, falling back to the
// union of all sub-image bounds when the header declares no size.
func logicalScreen(g *gif.GIF) image.Rectangle {
	if g.Config.Width > 0 && g.Config.Height > 0 {
		return image.Rect(0, 0, g.Config.Width, g.Config.Height)
	}
	var r image.Rectangle
	for _, img := range g.Image {
		r = r.Union(img.Bounds())
	}
	return r
}

func clearRect(s *pixel.Surface, r image.Rectangle) {
	r = r.Intersect(s.Bounds())
	pix := s.Pix()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := pix[(y*s.Width()+r.Min.X)*4 : (y*s.Width()+r.Max.X)*4]
		clear(row)
	}
}
