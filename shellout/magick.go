package shellout

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/gogpu/nonnon/pixel"
	"github.com/gogpu/nonnon/text"
)

// MagickRasterizer renders glyphs with ImageMagick's label: coder.
// It implements text.Rasterizer.
type MagickRasterizer struct {
	// Font is the font file passed to -font.
	Font string

	// Command is the ImageMagick binary, "convert" when empty.
	Command string
}

var _ text.Rasterizer = (*MagickRasterizer)(nil)

// Rasterize implements text.Rasterizer. The label is trimmed before it is
// rotated, so the returned canvas is only as large as the rotated glyph.
func (m *MagickRasterizer) Rasterize(spec text.GlyphSpec) (*pixel.Surface, error) {
	out, err := run(context.Background(), m.command(), magickArgs(m.Font, spec)...)
	if err != nil {
		return nil, &text.RasterizeError{Char: spec.Char, Err: err}
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, &text.RasterizeError{Char: spec.Char, Err: fmt.Errorf("decode convert output: %w", err)}
	}
	return pixel.FromImage(img), nil
}

// Trim implements text.Rasterizer.
func (m *MagickRasterizer) Trim(s *pixel.Surface) *pixel.Surface {
	return pixel.Trim(s)
}

func (m *MagickRasterizer) command() string {
	if m.Command == "" {
		return "convert"
	}
	return m.Command
}

func magickArgs(font string, spec text.GlyphSpec) []string {
	hex := hexColor(spec.Fill)
	args := []string{"-background", "none"}
	if font != "" {
		args = append(args, "-font", font)
	}
	args = append(args,
		"-pointsize", strconv.FormatFloat(spec.Size, 'f', -1, 64),
		"-fill", hex,
	)
	if spec.StrokeWidth > 0 {
		args = append(args,
			"-stroke", hex,
			"-strokewidth", strconv.FormatFloat(spec.StrokeWidth, 'f', -1, 64),
		)
	}
	return append(args,
		"label:"+escapeLabel(spec.Char),
		"-trim",
		"-rotate", strconv.FormatFloat(spec.Rotation, 'f', -1, 64),
		"png32:-",
	)
}

// escapeLabel protects the characters label: treats specially: a leading
// '@' reads a file, '%' starts a property escape.
func escapeLabel(r rune) string {
	switch r {
	case '@':
		return `\@`
	case '%':
		return "%%"
	case '\\':
		return `\\`
	}
	return string(r)
}

func hexColor(c color.NRGBA) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%02x%02x%02x", c.R, c.G, c.B)
	if c.A != 0xff {
		fmt.Fprintf(&b, "%02x", c.A)
	}
	return b.String()
}
