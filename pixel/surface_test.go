package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func TestNewSurfaceBufferLength(t *testing.T) {
	s := New(7, 3)
	assert.Equal(t, 7, s.Width())
	assert.Equal(t, 3, s.Height())
	assert.Len(t, s.Pix(), 7*3*4)

	neg := New(-2, 5)
	assert.Equal(t, 0, neg.Width())
	assert.Empty(t, neg.Pix())
}

func TestFindBounds(t *testing.T) {
	s := New(10, 8)
	s.SetNRGBA(2, 3, red)
	s.SetNRGBA(6, 5, red)

	b := FindBounds(s)
	assert.Equal(t, Bounds{Left: 2, Top: 3, Right: 7, Bottom: 6}, b)
	assert.False(t, b.Empty())
	assert.Equal(t, 5, b.Width())
	assert.Equal(t, 3, b.Height())
}

func TestFindBoundsTransparent(t *testing.T) {
	b := FindBounds(New(4, 4))
	assert.True(t, b.Empty())
	assert.Zero(t, b.Width())
	assert.Zero(t, b.Height())
}

func TestTrim(t *testing.T) {
	s := New(10, 10)
	s.SetNRGBA(4, 4, red)
	s.SetNRGBA(5, 6, blue)

	trimmed := Trim(s)
	require.Equal(t, 2, trimmed.Width())
	require.Equal(t, 3, trimmed.Height())
	assert.Equal(t, red, trimmed.NRGBAAt(0, 0))
	assert.Equal(t, blue, trimmed.NRGBAAt(1, 2))
	assert.Equal(t, color.NRGBA{}, trimmed.NRGBAAt(1, 0))
}

func TestTrimEmptyIsNoop(t *testing.T) {
	s := New(6, 6)
	assert.Same(t, s, Trim(s))
}

func TestTrimIgnoresColorOfTransparentPixels(t *testing.T) {
	s := New(5, 5)
	s.SetNRGBA(0, 0, color.NRGBA{R: 255})
	s.SetNRGBA(3, 3, red)
	trimmed := Trim(s)
	assert.Equal(t, 1, trimmed.Width())
	assert.Equal(t, 1, trimmed.Height())
}

func TestCropClipsToSurface(t *testing.T) {
	s := New(4, 4)
	s.Fill(red)
	c := s.Crop(Bounds{Left: 2, Top: -3, Right: 9, Bottom: 1})
	assert.Equal(t, 2, c.Width())
	assert.Equal(t, 1, c.Height())
}

func TestOverOpaqueAndTransparent(t *testing.T) {
	dst := New(4, 4)
	dst.Fill(blue)

	src := New(2, 2)
	src.SetNRGBA(0, 0, red)

	dst.Over(src, 1, 1)
	assert.Equal(t, red, dst.NRGBAAt(1, 1))
	assert.Equal(t, blue, dst.NRGBAAt(2, 2), "transparent source pixel must keep destination")
	assert.Equal(t, blue, dst.NRGBAAt(0, 0))
}

func TestOverHalfAlpha(t *testing.T) {
	dst := New(1, 1)
	dst.Fill(color.NRGBA{B: 255, A: 255})
	src := New(1, 1)
	src.Fill(color.NRGBA{R: 255, A: 128})

	dst.Over(src, 0, 0)
	got := dst.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.InDelta(t, 127, int(got.B), 1)
}

func TestOverOntoTransparentKeepsSourceColor(t *testing.T) {
	dst := New(1, 1)
	src := New(1, 1)
	src.Fill(color.NRGBA{R: 200, G: 100, A: 64})

	dst.Over(src, 0, 0)
	assert.Equal(t, color.NRGBA{R: 200, G: 100, A: 64}, dst.NRGBAAt(0, 0))
}

func TestOverClipsOutside(t *testing.T) {
	dst := New(3, 3)
	src := New(3, 3)
	src.Fill(red)

	dst.Over(src, 2, -2)
	assert.Equal(t, red, dst.NRGBAAt(2, 0))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(2, 1))

	dst.Over(src, 10, 10)
}

func TestResize(t *testing.T) {
	s := New(20, 10)
	s.Fill(red)

	r := s.Resize(40, 5)
	require.Equal(t, 40, r.Width())
	require.Equal(t, 5, r.Height())
	got := r.NRGBAAt(20, 2)
	assert.InDelta(t, 255, int(got.R), 2)
	assert.InDelta(t, 255, int(got.A), 2)
	assert.InDelta(t, 0, int(got.B), 2)

	h := s.ResizeHeight(30)
	assert.Equal(t, 20, h.Width())
	assert.Equal(t, 30, h.Height())
}

func TestResizeSameSizeCopies(t *testing.T) {
	s := New(3, 3)
	s.Fill(red)
	r := s.Resize(3, 3)
	r.SetNRGBA(0, 0, blue)
	assert.Equal(t, red, s.NRGBAAt(0, 0))
}

func TestFromImageAndNRGBAView(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	img.Set(5, 5, red)
	s := FromImage(img)
	require.Equal(t, 3, s.Width())
	require.Equal(t, 2, s.Height())
	assert.Equal(t, red, s.NRGBAAt(0, 0))

	view := s.NRGBA()
	view.SetNRGBA(2, 1, blue)
	assert.Equal(t, blue, s.NRGBAAt(2, 1))
}

func TestSurfaceImplementsImage(t *testing.T) {
	var img image.Image = New(2, 2)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.NRGBAModel, img.ColorModel())
}
