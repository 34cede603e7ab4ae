// Package anim decodes and encodes animated GIFs as sequences of
// full-canvas frames.
//
// Decoding resolves every sub-image against the logical screen, honoring
// frame offsets, transparency and disposal, so callers only ever see
// complete RGBA frames. Encoding quantizes each frame to its own palette.
package anim

import (
	"math"

	"github.com/gogpu/nonnon/pixel"
)

// Frame is one displayed image of an animation.
type Frame struct {
	// Surface holds the full logical-screen pixels.
	Surface *pixel.Surface

	// DelayMs is how long the frame stays on screen, in milliseconds.
	// GIF stores delays in 10 ms units; see DelayCentiseconds.
	DelayMs int
}

// DelayCentiseconds converts a delay in milliseconds to the GIF unit,
// rounding to the nearest 10 ms. A positive delay never becomes 0, which
// decoders would read as "no delay".
func DelayCentiseconds(ms int) int {
	if ms <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(ms)/10)))
}

// Decoder turns an encoded animation into frames.
type Decoder interface {
	Decode(data []byte) ([]Frame, error)
}

// Encoder turns frames of a common size into an encoded animation.
type Encoder interface {
	Encode(frames []Frame, width, height int) ([]byte, error)
}
