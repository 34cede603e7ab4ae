package nonnon

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// japanese covers hiragana, katakana, CJK unified ideographs and
// extension A.
var japanese = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3040, Hi: 0x309f, Stride: 1},
		{Lo: 0x30a0, Hi: 0x30ff, Stride: 1},
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9faf, Stride: 1},
	},
}

// ValidateText checks that s is exactly GlyphCount characters and returns
// them. The text is normalized to NFC first, so a base letter followed by
// a combining mark counts once when a precomposed form exists.
//
// Failures are *ValidationError.
func ValidateText(s string) ([]rune, error) {
	if !utf8.ValidString(s) {
		return nil, &ValidationError{Text: s, Err: ErrInvalidRune}
	}
	if strings.TrimSpace(s) == "" {
		return nil, &ValidationError{Text: s, Err: ErrEmptyText}
	}

	runes := []rune(norm.NFC.String(s))
	if len(runes) != GlyphCount {
		return nil, &ValidationError{
			Text:  s,
			Count: len(runes),
			Err:   fmt.Errorf("%w: want %d", ErrWrongLength, GlyphCount),
		}
	}
	for _, r := range runes {
		if unicode.IsControl(r) {
			return nil, &ValidationError{Text: s, Count: len(runes), Err: fmt.Errorf("%w: %U", ErrInvalidRune, r)}
		}
	}
	return runes, nil
}

// ValidateJapanese is ValidateText restricted to hiragana, katakana and
// kanji.
func ValidateJapanese(s string) ([]rune, error) {
	runes, err := ValidateText(s)
	if err != nil {
		return nil, err
	}
	for _, r := range runes {
		if !unicode.Is(japanese, r) {
			return nil, &ValidationError{Text: s, Count: len(runes), Err: fmt.Errorf("%w: %q", ErrNotJapanese, r)}
		}
	}
	return runes, nil
}
