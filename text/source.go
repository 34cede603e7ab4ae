package text

import (
	"fmt"
	"os"
	"sync"

	"github.com/gogpu/nonnon/internal/cache"
)

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared across the application;
// one source serves every glyph of a run.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	mu       sync.RWMutex
	parsed   ParsedFont
	name     string
	outlines *cache.Cache[outlineKey, *GlyphOutline]
}

type outlineKey struct {
	gid  GlyphID
	size float64
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is not retained.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := config.parser.Parse(data)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		parsed:   parsed,
		outlines: cache.New[outlineKey, *GlyphOutline](config.outlineCacheSize),
	}
	s.addr = s
	s.name = parsed.Name()
	if s.name == "" {
		s.name = "Unknown Font"
	}
	slogger().Debug("font source loaded", "name", s.name, "upem", parsed.UnitsPerEm())
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parsed returns the parsed font, or nil after Close.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// HasGlyph reports whether the font maps r to a glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	p := s.Parsed()
	return p != nil && p.GlyphIndex(r) != 0
}

// GlyphOutline returns the outline of r at size pixels per em.
// A rune the font does not map fails with ErrMissingGlyph.
//
// Outlines are cached per glyph and size. The returned outline is shared
// and must not be modified; use Transform to derive a new one.
func (s *FontSource) GlyphOutline(r rune, size float64) (*GlyphOutline, error) {
	p := s.Parsed()
	if p == nil {
		return nil, ErrSourceClosed
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	gid := p.GlyphIndex(r)
	if gid == 0 {
		return nil, ErrMissingGlyph
	}

	key := outlineKey{gid: gid, size: size}
	if o, ok := s.outlines.Get(key); ok {
		return o, nil
	}
	o, err := p.LoadOutline(gid, size)
	if err != nil {
		return nil, err
	}
	s.outlines.Set(key, o)
	return o, nil
}

// Close releases the parsed font. Further lookups fail with ErrSourceClosed.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsed = nil
	s.outlines.Clear()
	return nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}
