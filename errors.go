package nonnon

import (
	"errors"
	"fmt"

	"github.com/gogpu/nonnon/anim"
	"github.com/gogpu/nonnon/fetch"
	"github.com/gogpu/nonnon/text"
)

// Sentinel errors for the nonnon package.
var (
	// ErrEmptyText is returned when the input text is empty or blank.
	ErrEmptyText = errors.New("nonnon: empty text")

	// ErrWrongLength is returned when the input does not have GlyphCount characters.
	ErrWrongLength = errors.New("nonnon: wrong character count")

	// ErrInvalidRune is returned for invalid UTF-8 or control characters.
	ErrInvalidRune = errors.New("nonnon: invalid character")

	// ErrNotJapanese is returned by strict validation for characters outside
	// the hiragana, katakana and kanji blocks.
	ErrNotJapanese = errors.New("nonnon: not a Japanese character")

	// ErrNoFetcher is returned by New when no asset fetcher was configured.
	ErrNoFetcher = errors.New("nonnon: no asset fetcher")

	// ErrNoRasterizer is returned by New when neither a font nor a
	// rasterizer was configured.
	ErrNoRasterizer = errors.New("nonnon: no glyph rasterizer")
)

// The error types below come from the packages that produce them.
// They are aliased here so callers can match them without extra imports.
type (
	// AssetFetchError reports a source frame that could not be fetched.
	AssetFetchError = fetch.AssetFetchError

	// DecodeError reports a source frame that could not be decoded.
	DecodeError = anim.DecodeError

	// RasterizeError reports a character that could not be rendered.
	RasterizeError = text.RasterizeError

	// EncodeError reports a failure of the final encoding.
	EncodeError = anim.EncodeError
)

// ValidationError is returned when the input text is rejected.
type ValidationError struct {
	// Text is the rejected input.
	Text string

	// Count is the number of characters found.
	Count int

	// Err is one of ErrEmptyText, ErrWrongLength, ErrInvalidRune or ErrNotJapanese.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("nonnon: invalid text %q (%d characters): %v", e.Text, e.Count, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
