package stroke

import "math"

// maxSubdivisions bounds the number of line segments a single curve can
// be flattened into.
const maxSubdivisions = 64

// Flattener accumulates path commands and emits closed polylines.
type Flattener struct {
	tolerance float64
	contours  []Contour
	cur       Contour
}

// NewFlattener creates a flattener. tolerance is the maximum distance, in
// pixels, between a curve and its flattened approximation.
func NewFlattener(tolerance float64) *Flattener {
	if tolerance <= 0 {
		tolerance = 0.25
	}
	return &Flattener{tolerance: tolerance}
}

// MoveTo starts a new contour, closing the current one.
func (f *Flattener) MoveTo(p Point) {
	f.Close()
	f.cur = Contour{p}
}

// LineTo adds a straight edge.
func (f *Flattener) LineTo(p Point) {
	if len(f.cur) == 0 {
		f.cur = Contour{p}
		return
	}
	if f.cur[len(f.cur)-1] != p {
		f.cur = append(f.cur, p)
	}
}

// QuadTo adds a quadratic Bezier curve.
func (f *Flattener) QuadTo(c, p Point) {
	p0 := f.last()
	// Distance of the curve's midpoint from the chord midpoint.
	dev := math.Hypot(p0.X-2*c.X+p.X, p0.Y-2*c.Y+p.Y) / 4
	n := subdivisions(dev, f.tolerance)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		a := p0.Lerp(c, t)
		b := c.Lerp(p, t)
		f.LineTo(a.Lerp(b, t))
	}
}

// CubicTo adds a cubic Bezier curve.
func (f *Flattener) CubicTo(c1, c2, p Point) {
	p0 := f.last()
	d1 := math.Hypot(p0.X-2*c1.X+c2.X, p0.Y-2*c1.Y+c2.Y)
	d2 := math.Hypot(c1.X-2*c2.X+p.X, c1.Y-2*c2.Y+p.Y)
	dev := 0.75 * math.Max(d1, d2)
	n := subdivisions(dev, f.tolerance)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		a, b, c := p0.Lerp(c1, t), c1.Lerp(c2, t), c2.Lerp(p, t)
		ab, bc := a.Lerp(b, t), b.Lerp(c, t)
		f.LineTo(ab.Lerp(bc, t))
	}
}

// Close finishes the current contour. Contours with fewer than two
// distinct points are dropped.
func (f *Flattener) Close() {
	c := f.cur
	f.cur = nil
	if len(c) > 1 && c[0] == c[len(c)-1] {
		c = c[:len(c)-1]
	}
	if len(c) >= 2 {
		f.contours = append(f.contours, c)
	}
}

// Contours closes any open contour and returns everything flattened so far.
func (f *Flattener) Contours() []Contour {
	f.Close()
	return f.contours
}

func (f *Flattener) last() Point {
	if len(f.cur) == 0 {
		return Point{}
	}
	return f.cur[len(f.cur)-1]
}

func subdivisions(dev, tolerance float64) int {
	n := int(math.Ceil(math.Sqrt(dev / tolerance)))
	return max(1, min(n, maxSubdivisions))
}
