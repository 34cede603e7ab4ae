package pixel

import "image"

// Bounds is the smallest rectangle containing every pixel with non-zero
// alpha. Right and Bottom are exclusive.
type Bounds struct {
	Left, Top, Right, Bottom int
}

// Empty reports whether the bounds enclose no pixels, which is how a fully
// transparent surface is represented.
func (b Bounds) Empty() bool {
	return b.Left >= b.Right || b.Top >= b.Bottom
}

// Width returns the width of the bounds, or 0 when empty.
func (b Bounds) Width() int {
	if b.Empty() {
		return 0
	}
	return b.Right - b.Left
}

// Height returns the height of the bounds, or 0 when empty.
func (b Bounds) Height() int {
	if b.Empty() {
		return 0
	}
	return b.Bottom - b.Top
}

// Rect converts the bounds to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// FindBounds scans the alpha channel and returns the opaque bounding box.
// For a fully transparent surface the result is Empty, with Left and Top
// left at the surface size and Right and Bottom at zero.
func FindBounds(s *Surface) Bounds {
	b := Bounds{Left: s.width, Top: s.height}
	for y := 0; y < s.height; y++ {
		row := s.pix[y*s.width*4 : (y+1)*s.width*4]
		first := -1
		for x := 0; x < s.width; x++ {
			if row[x*4+3] != 0 {
				first = x
				break
			}
		}
		if first < 0 {
			continue
		}
		last := first
		for x := s.width - 1; x > first; x-- {
			if row[x*4+3] != 0 {
				last = x
				break
			}
		}
		b.Left = min(b.Left, first)
		b.Right = max(b.Right, last+1)
		b.Top = min(b.Top, y)
		b.Bottom = max(b.Bottom, y+1)
	}
	return b
}

// Trim crops s to its opaque bounding box. A fully transparent surface is
// returned unchanged rather than reported as an error; downstream stages
// treat it as wasted space.
func Trim(s *Surface) *Surface {
	b := FindBounds(s)
	if b.Empty() {
		return s
	}
	if b.Left == 0 && b.Top == 0 && b.Right == s.width && b.Bottom == s.height {
		return s
	}
	return s.Crop(b)
}

// Crop returns a copy of the region b, clipped to the surface.
func (s *Surface) Crop(b Bounds) *Surface {
	r := b.Rect().Intersect(s.Bounds())
	c := New(r.Dx(), r.Dy())
	rowLen := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		src := ((r.Min.Y+y)*s.width + r.Min.X) * 4
		copy(c.pix[y*rowLen:(y+1)*rowLen], s.pix[src:src+rowLen])
	}
	return c
}
