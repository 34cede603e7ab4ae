package nonnon

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/nonnon/pixel"
	"github.com/gogpu/nonnon/text"
)

// indexColor gives every glyph index its own opaque color.
func indexColor(i int) color.NRGBA {
	return color.NRGBA{R: uint8(30 * (i + 1)), G: uint8(200 - 20*i), B: 77, A: 255}
}

func squareGlyphs(cfg Config) []*pixel.Surface {
	glyphs := make([]*pixel.Surface, len(cfg.Styles))
	for i, s := range cfg.Styles {
		glyphs[i] = solidSurface(s.Size, s.Size, indexColor(i))
	}
	return glyphs
}

func TestGlyphSpecs(t *testing.T) {
	cfg := DefaultConfig()
	specs, err := GlyphSpecs([]rune("のんのんびより"), cfg)
	require.NoError(t, err)
	require.Len(t, specs, GlyphCount)

	assert.Equal(t, 'の', specs[0].Char)
	assert.Equal(t, 80.0, specs[0].Size)
	assert.Equal(t, -12.0, specs[0].Rotation)
	assert.Equal(t, cfg.Styles[0].Fill.NRGBA(), specs[0].Fill)
	assert.Equal(t, 2.0, specs[0].StrokeWidth)
	assert.Equal(t, 3.0, specs[0].CanvasFactor)
	assert.Equal(t, 'り', specs[6].Char)
	assert.Equal(t, 10.0, specs[6].Rotation)

	_, err = GlyphSpecs([]rune("のんの"), cfg)
	assert.Error(t, err)
}

func TestAssembleWordLayout(t *testing.T) {
	cfg := DefaultConfig()
	word, err := AssembleWord(squareGlyphs(cfg), cfg)
	require.NoError(t, err)

	// Glyph 6 ends at 335+72; glyph 0 stretched to 160 is the tallest.
	assert.Equal(t, 407, word.Width())
	assert.Equal(t, 160, word.Height())

	assert.Equal(t, indexColor(0), word.NRGBAAt(0, 0))
	assert.Equal(t, indexColor(0), word.NRGBAAt(10, 159))
	// Glyph 1 is drawn after glyph 0 where they overlap.
	assert.Equal(t, indexColor(1), word.NRGBAAt(75, 100))
	// Glyph 6 at its offset.
	assert.Equal(t, indexColor(6), word.NRGBAAt(400, 20))
	// Glyph 3 is stretched to round(54×1.2) = 65 rows: 70..134.
	assert.Equal(t, indexColor(3), word.NRGBAAt(205, 134))
}

func TestAssembleWordFirstGlyphAtOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Styles[0].Offset.X = 50
	cfg.Styles[0].Offset.Y = 50

	word, err := AssembleWord(squareGlyphs(cfg), cfg)
	require.NoError(t, err)
	assert.Equal(t, indexColor(0), word.NRGBAAt(0, 0))
}

func TestAssembleWordErrors(t *testing.T) {
	cfg := DefaultConfig()
	glyphs := squareGlyphs(cfg)

	_, err := AssembleWord(glyphs[:6], cfg)
	assert.Error(t, err)

	short := cfg.Clone()
	short.Styles = short.Styles[:6]
	_, err = AssembleWord(glyphs, short)
	assert.Error(t, err)

	glyphs[3] = nil
	_, err = AssembleWord(glyphs, cfg)
	assert.Error(t, err)
}

func TestAssembleWordDeterministic(t *testing.T) {
	src, err := text.NewFontSource(goregular.TTF)
	require.NoError(t, err)
	defer src.Close()

	cfg := DefaultConfig()
	r := text.NewRasterizer(src)
	specs, err := GlyphSpecs([]rune("Nonnon!"), cfg)
	require.NoError(t, err)

	render := func() *pixel.Surface {
		glyphs := make([]*pixel.Surface, len(specs))
		for i, spec := range specs {
			g, err := r.Rasterize(spec)
			require.NoError(t, err)
			glyphs[i] = r.Trim(g)
		}
		word, err := AssembleWord(glyphs, cfg)
		require.NoError(t, err)
		return word
	}

	a, b := render(), render()
	assert.Equal(t, a.Width(), b.Width())
	assert.Equal(t, a.Height(), b.Height())
	assert.Equal(t, a.Pix(), b.Pix())
	assert.LessOrEqual(t, a.Width(), cfg.WordWidth())
	assert.LessOrEqual(t, a.Height(), cfg.Layout.WordHeight)
	assert.False(t, pixel.FindBounds(a).Empty())
}
