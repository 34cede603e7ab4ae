// Package pixel provides the RGBA pixel surfaces that flow through the
// nonnon pipeline, together with the trim, crop, paste and resize
// primitives the compositing stages are built from.
//
// A Surface stores non-premultiplied RGBA, 4 bytes per pixel, row-major
// with no padding, so len(Pix()) == Width()*Height()*4 always holds.
package pixel

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
)

// Surface represents a rectangular pixel buffer.
type Surface struct {
	width  int
	height int
	pix    []uint8 // non-premultiplied RGBA, 4 bytes per pixel
}

// New creates a fully transparent surface with the given dimensions.
// Negative dimensions are treated as zero.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies img into a new surface whose origin is img.Bounds().Min.
func FromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := New(b.Dx(), b.Dy())
	if n, ok := img.(*image.NRGBA); ok && n.Stride == b.Dx()*4 {
		copy(s.pix, n.Pix[n.PixOffset(b.Min.X, b.Min.Y):])
		return s
	}
	xdraw.Draw(s.NRGBA(), s.NRGBA().Bounds(), img, b.Min, xdraw.Src)
	return s
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	return s.height
}

// Pix returns the raw pixel data. The slice aliases the surface.
func (s *Surface) Pix() []uint8 {
	return s.pix
}

// NRGBA returns an *image.NRGBA view sharing the surface's pixels.
// Writes through the view are visible in the surface.
func (s *Surface) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    s.pix,
		Stride: s.width * 4,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	c := New(s.width, s.height)
	copy(c.pix, s.pix)
	return c
}

// NRGBAAt returns the pixel at (x, y), or transparent when out of range.
func (s *Surface) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return color.NRGBA{}
	}
	i := (y*s.width + x) * 4
	return color.NRGBA{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}
}

// SetNRGBA sets the pixel at (x, y). Out of range writes are ignored.
func (s *Surface) SetNRGBA(x, y int, c color.NRGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.pix[i+0] = c.R
	s.pix[i+1] = c.G
	s.pix[i+2] = c.B
	s.pix[i+3] = c.A
}

// Fill sets every pixel to c.
func (s *Surface) Fill(c color.NRGBA) {
	for i := 0; i < len(s.pix); i += 4 {
		s.pix[i+0] = c.R
		s.pix[i+1] = c.G
		s.pix[i+2] = c.B
		s.pix[i+3] = c.A
	}
}

// Resize returns a copy of the surface resampled to width x height with
// linear filtering. Alpha is resampled premultiplied so transparent
// neighbours do not bleed color into edges.
func (s *Surface) Resize(width, height int) *Surface {
	if width <= 0 || height <= 0 {
		return New(width, height)
	}
	if width == s.width && height == s.height {
		return s.Clone()
	}
	if s.width == 0 || s.height == 0 {
		return New(width, height)
	}
	return FromImage(transform.Resize(s.NRGBA(), width, height, transform.Linear))
}

// ResizeHeight returns a copy resampled to the given height with the width
// unchanged.
func (s *Surface) ResizeHeight(height int) *Surface {
	return s.Resize(s.width, height)
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return s.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
