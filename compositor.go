package nonnon

import (
	"log/slog"

	"github.com/gogpu/nonnon/anim"
	"github.com/gogpu/nonnon/pixel"
)

// Compositor draws the word onto source frames.
//
// The word is normalized once to the curve's maximum height. Frames must
// be passed in increasing index order: the ramp step advances once per
// composited ramp frame, so a skipped frame never shifts the curve.
//
// A Compositor is not safe for concurrent use.
type Compositor struct {
	word   *pixel.Surface
	maxH   int
	cfg    Config
	step   int
	reveal map[int]*pixel.Surface
	log    *slog.Logger
}

// NewCompositor prepares word for compositing with cfg.
func NewCompositor(word *pixel.Surface, cfg Config) *Compositor {
	maxH := cfg.Curve.Max()
	return &Compositor{
		word:   NormalizeWord(word, maxH),
		maxH:   maxH,
		cfg:    cfg,
		reveal: make(map[int]*pixel.Surface),
		log:    Logger(),
	}
}

// Word returns the normalized word surface.
func (c *Compositor) Word() *pixel.Surface {
	return c.word
}

// Step returns how many ramp frames have been composited.
func (c *Compositor) Step() int {
	return c.step
}

// Composite returns the output frames of source frame index.
//
// Every sub-image of the source asset yields one output frame with the
// same delay, resized to the output size. Plain frames carry no word;
// ramp frames carry the word revealed to the current curve height; steady
// frames carry the whole word. Frames outside the timeline return nil.
func (c *Compositor) Composite(index int, frames []anim.Frame) []anim.Frame {
	zone := c.cfg.Timeline.Zone(index)
	if zone == ZoneOutside || len(frames) == 0 {
		return nil
	}

	var overlay *pixel.Surface
	switch zone {
	case ZoneRamp:
		overlay = c.revealed(c.cfg.Curve.Height(c.step))
	case ZoneSteady:
		overlay = c.word
	}

	out := make([]anim.Frame, 0, len(frames))
	for _, f := range frames {
		canvas := f.Surface
		if overlay != nil {
			canvas = f.Surface.Clone()
			x, y := c.anchor(canvas, overlay)
			canvas.Over(overlay, x, y)
		}
		out = append(out, anim.Frame{
			Surface: canvas.Resize(c.cfg.Output.Width, c.cfg.Output.Height),
			DelayMs: f.DelayMs,
		})
	}

	if zone == ZoneRamp {
		c.step++
	}
	c.log.Debug("frame composited", "index", index, "zone", zone, "frames", len(out), "step", c.step)
	return out
}

// anchor places overlay centered horizontally with its bottom edge where
// the bottom of the full word would be.
func (c *Compositor) anchor(canvas, overlay *pixel.Surface) (int, int) {
	centerY := canvas.Height()/2 + c.cfg.Layout.BaselineOffset
	bottom := centerY - c.maxH/2 + c.maxH
	return canvas.Width()/2 - overlay.Width()/2, bottom - overlay.Height()
}

func (c *Compositor) revealed(h int) *pixel.Surface {
	if s, ok := c.reveal[h]; ok {
		return s
	}
	s := RevealWord(c.word, h, c.cfg.Reveal)
	c.reveal[h] = s
	return s
}
