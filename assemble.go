package nonnon

import (
	"fmt"
	"math"

	"github.com/gogpu/nonnon/pixel"
	"github.com/gogpu/nonnon/text"
)

// GlyphSpecs turns validated runes into rasterizer requests using the
// style table and layout of cfg.
func GlyphSpecs(runes []rune, cfg Config) ([]text.GlyphSpec, error) {
	if len(runes) != len(cfg.Styles) {
		return nil, fmt.Errorf("nonnon: %d characters for %d styles", len(runes), len(cfg.Styles))
	}
	specs := make([]text.GlyphSpec, len(runes))
	for i, r := range runes {
		s := cfg.Styles[i]
		specs[i] = text.GlyphSpec{
			Char:         r,
			Size:         float64(s.Size),
			Rotation:     s.Rotation,
			Fill:         s.Fill.NRGBA(),
			StrokeWidth:  cfg.Layout.StrokeWidth,
			CanvasFactor: cfg.Layout.GlyphCanvasFactor,
		}
	}
	return specs, nil
}

// AssembleWord pastes trimmed glyph surfaces into one word surface.
//
// The canvas is cfg.WordWidth() wide and Layout.WordHeight tall. Glyph i
// is first stretched vertically to round(size×heightScale) with its width
// kept, then drawn at Styles[i].Offset in index order, so later glyphs
// overlap earlier ones. The first glyph always sits at the origin. The
// result is trimmed to its visible pixels.
func AssembleWord(glyphs []*pixel.Surface, cfg Config) (*pixel.Surface, error) {
	if len(glyphs) != GlyphCount || len(cfg.Styles) != GlyphCount {
		return nil, fmt.Errorf("nonnon: assemble %d glyphs with %d styles, want %d", len(glyphs), len(cfg.Styles), GlyphCount)
	}

	canvas := pixel.New(cfg.WordWidth(), cfg.Layout.WordHeight)
	for i, g := range glyphs {
		if g == nil {
			return nil, fmt.Errorf("nonnon: glyph %d is nil", i)
		}
		s := cfg.Styles[i]
		h := int(math.Round(float64(s.Size) * s.HeightScale))
		stretched := g
		if h > 0 && g.Width() > 0 && g.Height() > 0 {
			stretched = g.ResizeHeight(h)
		}
		x, y := s.Offset.X, s.Offset.Y
		if i == 0 {
			x, y = 0, 0
		}
		canvas.Over(stretched, x, y)
	}
	return pixel.Trim(canvas), nil
}
