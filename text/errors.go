package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrMissingGlyph is returned when the font has no glyph for a rune.
	ErrMissingGlyph = errors.New("text: font has no glyph for rune")

	// ErrSourceClosed is returned when a closed FontSource is used.
	ErrSourceClosed = errors.New("text: font source is closed")

	// ErrInvalidSize is returned for a non-positive glyph size.
	ErrInvalidSize = errors.New("text: glyph size must be positive")
)

// ErrUnsupportedFontType is returned when the font data is not a format the
// selected parser understands.
var ErrUnsupportedFontType = &FontError{Reason: "unsupported font type"}

// FontError represents a font-related error.
type FontError struct {
	Reason string
}

func (e *FontError) Error() string {
	return "text: " + e.Reason
}

// RasterizeError is returned when a character cannot be turned into a
// glyph bitmap. It is fatal for a generation run.
type RasterizeError struct {
	Char rune
	Err  error
}

func (e *RasterizeError) Error() string {
	return fmt.Sprintf("text: rasterize %q: %v", e.Char, e.Err)
}

func (e *RasterizeError) Unwrap() error {
	return e.Err
}
