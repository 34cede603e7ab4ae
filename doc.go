// Package nonnon personalizes a short base animation with a seven
// character word.
//
// Each character is rasterized with its own size, rotation and color,
// the glyphs are assembled into one word image using fixed offsets, and
// the word is composited onto a numbered sequence of base animation
// frames. During the ramp range the word stands up from the baseline
// following a reveal curve; afterwards it stays fully visible. The
// composited frames are encoded into a new animated GIF.
//
// # Quick Start
//
//	font, err := text.NewFontSourceFromFile("NotoSansJP-Bold.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer font.Close()
//
//	p, err := nonnon.New(nonnon.DefaultConfig(),
//	    nonnon.WithFont(font),
//	    nonnon.WithFetcher(fetch.NewDir("assets")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blob, err := p.Run(ctx, "のんのんびより")
//
// # Architecture
//
// The pipeline is built from swappable capabilities:
//
//   - text.Rasterizer: glyph bitmaps (native x/image/vector or ImageMagick)
//   - fetch.Fetcher: asset bytes by identifier (directory, HTTP, memory)
//   - anim.Decoder / anim.Encoder: GIF frames in and out (native or gifsicle)
//
// All tunable numbers (style table, reveal curve, frame ranges, output
// size) live in one Config value, which can be loaded from TOML.
//
// # Logging
//
// nonnon uses log/slog and is silent by default. See SetLogger.
package nonnon
