package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// GoTextParser implements FontParser using go-text/typesetting.
// Outlines come from the glyf/CFF tables through font.Face.GlyphData.
type GoTextParser struct{}

// Parse implements FontParser.Parse.
func (GoTextParser) Parse(data []byte) (ParsedFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &goTextParsedFont{face: face}, nil
}

// goTextParsedFont implements ParsedFont over a go-text font.Face.
// font.Face is not safe for concurrent use, so access is serialized.
type goTextParsedFont struct {
	mu   sync.Mutex
	face *font.Face
}

// Name implements ParsedFont.Name. go-text does not expose the name table
// through Face, so the source falls back to its default name.
func (f *goTextParsedFont) Name() string {
	return ""
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *goTextParsedFont) UnitsPerEm() int {
	return int(f.face.Upem())
}

func (f *goTextParsedFont) scale(ppem float64) float32 {
	return float32(ppem) / float32(f.face.Upem())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *goTextParsedFont) GlyphIndex(r rune) GlyphID {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return GlyphID(gid)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *goTextParsedFont) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.face.HorizontalAdvance(font.GID(gid)) * f.scale(ppem))
}

// Metrics implements ParsedFont.Metrics.
func (f *goTextParsedFont) Metrics(ppem float64) FontMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	ext, ok := f.face.FontHExtents()
	if !ok {
		return FontMetrics{}
	}
	s := f.scale(ppem)
	return FontMetrics{
		Ascent:  float64(ext.Ascender * s),
		Descent: float64(ext.Descender * s),
		LineGap: float64(ext.LineGap * s),
	}
}

// LoadOutline implements ParsedFont.LoadOutline.
// Font units are scaled by ppem/upem and the Y axis is flipped to point down.
func (f *goTextParsedFont) LoadOutline(gid GlyphID, ppem float64) (*GlyphOutline, error) {
	f.mu.Lock()
	data := f.face.GlyphData(font.GID(gid))
	f.mu.Unlock()

	outline := &GlyphOutline{
		GID:     gid,
		Advance: f.GlyphAdvance(gid, ppem),
	}
	glyph, ok := data.(font.GlyphOutline)
	if !ok {
		if data == nil {
			return outline, nil
		}
		return nil, ErrUnsupportedFontType
	}

	s := f.scale(ppem)
	outline.Segments = make([]OutlineSegment, 0, len(glyph.Segments))
	for _, seg := range glyph.Segments {
		var out OutlineSegment
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			out.Op = OutlineOpMoveTo
		case opentype.SegmentOpLineTo:
			out.Op = OutlineOpLineTo
		case opentype.SegmentOpQuadTo:
			out.Op = OutlineOpQuadTo
		case opentype.SegmentOpCubeTo:
			out.Op = OutlineOpCubicTo
		default:
			continue
		}
		for i := 0; i < out.Op.PointCount(); i++ {
			out.Points[i] = OutlinePoint{X: seg.Args[i].X * s, Y: -seg.Args[i].Y * s}
		}
		outline.Segments = append(outline.Segments, out)
	}
	outline.Bounds = outline.computeBounds()
	return outline, nil
}
