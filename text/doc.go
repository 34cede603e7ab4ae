// Package text loads fonts and turns single characters into styled,
// rotated glyph bitmaps.
//
// The package is organized around a few pieces:
//
//   - FontSource: a parsed font file, shared by every glyph of a run
//   - FontParser: pluggable parsing backend (default: golang.org/x/image)
//   - GlyphOutline: vector outline of one glyph in pixel space
//   - Rasterizer: renders a GlyphSpec into a pixel.Surface
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("NotoSansJP-Bold.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	r := text.NewRasterizer(source)
//	glyph, err := r.Rasterize(text.GlyphSpec{
//	    Char:        'の',
//	    Size:        80,
//	    Rotation:    -12,
//	    Fill:        color.NRGBA{R: 0xdd, G: 0x18, B: 0x8b, A: 0xff},
//	    StrokeWidth: 2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	glyph = r.Trim(glyph)
//
// # Pluggable Parser Backend
//
// By default, fonts are parsed with golang.org/x/image/font/opentype.
// The go-text/typesetting backend can be selected per source:
//
//	source, err := text.NewFontSource(data, text.WithParser(text.GoTextParser{}))
package text
