package anim

import (
	"errors"
	"fmt"
)

// Sentinel errors for anim package.
var (
	// ErrNoFrames is returned when an animation has no images.
	ErrNoFrames = errors.New("anim: no frames")

	// ErrInconsistentSize is returned when a frame does not match the
	// requested output size.
	ErrInconsistentSize = errors.New("anim: inconsistent frame size")

	// ErrNotGIF is returned when the data is not a GIF container.
	ErrNotGIF = errors.New("anim: not a GIF")
)

// DecodeError is returned when animation bytes cannot be turned into
// frames. A pipeline treats it as recoverable for a single frame.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("anim: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError is returned when frames cannot be encoded.
type EncodeError struct {
	// Frame is the index of the offending frame, or -1.
	Frame int
	Err   error
}

func (e *EncodeError) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("anim: encode frame %d: %v", e.Frame, e.Err)
	}
	return fmt.Sprintf("anim: encode: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
