package text

import "math"

// OutlinePoint represents a point in a glyph outline, in pixels.
type OutlinePoint struct {
	X, Y float32
}

// OutlineSegment represents a segment of a glyph outline.
type OutlineSegment struct {
	// Op is the segment operation type.
	Op OutlineOp

	// Points contains the control and end points for this segment.
	// - MoveTo: Points[0] is the target point
	// - LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]OutlinePoint
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo moves to a new point without drawing.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// PointCount returns how many entries of OutlineSegment.Points the
// operation uses.
func (op OutlineOp) PointCount() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	default:
		return 1
	}
}

// GlyphOutline represents the vector outline of a glyph.
// The outline consists of zero or more closed contours.
type GlyphOutline struct {
	// Segments is the list of path segments that make up the outline.
	Segments []OutlineSegment

	// Bounds is the bounding box of all segment points.
	Bounds Rect

	// Advance is the horizontal advance width of the glyph.
	Advance float64

	// GID is the glyph ID this outline represents.
	GID GlyphID
}

// IsEmpty returns true if the outline has no segments.
func (o *GlyphOutline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// Transform returns a new outline with all coordinates transformed.
func (o *GlyphOutline) Transform(m *AffineTransform) *GlyphOutline {
	if o == nil {
		return nil
	}
	out := &GlyphOutline{
		Segments: make([]OutlineSegment, len(o.Segments)),
		Advance:  o.Advance,
		GID:      o.GID,
	}
	for i, seg := range o.Segments {
		out.Segments[i].Op = seg.Op
		for j := 0; j < seg.Op.PointCount(); j++ {
			x, y := m.TransformPoint(seg.Points[j].X, seg.Points[j].Y)
			out.Segments[i].Points[j] = OutlinePoint{X: x, Y: y}
		}
	}
	out.Bounds = out.computeBounds()
	return out
}

// computeBounds returns the bounding box of the control polygon. Bezier
// curves never leave the hull of their control points, so this is a
// conservative bound on the filled shape.
func (o *GlyphOutline) computeBounds() Rect {
	if len(o.Segments) == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, seg := range o.Segments {
		for j := 0; j < seg.Op.PointCount(); j++ {
			x, y := float64(seg.Points[j].X), float64(seg.Points[j].Y)
			r.MinX = math.Min(r.MinX, x)
			r.MinY = math.Min(r.MinY, y)
			r.MaxX = math.Max(r.MaxX, x)
			r.MaxY = math.Max(r.MaxY, y)
		}
	}
	return r
}

// AffineTransform represents a 2D affine transformation matrix.
// The matrix is:
//
//	[A B Tx]
//	[C D Ty]
//	[0 0 1 ]
type AffineTransform struct {
	A, B, C, D float32 // Matrix coefficients
	Tx, Ty     float32 // Translation
}

// IdentityTransform returns the identity transformation.
func IdentityTransform() *AffineTransform {
	return &AffineTransform{A: 1, D: 1}
}

// TranslateTransform returns a translation transformation.
func TranslateTransform(tx, ty float32) *AffineTransform {
	return &AffineTransform{A: 1, D: 1, Tx: tx, Ty: ty}
}

// RotateTransform returns a rotation by the given angle in degrees.
// With the Y axis pointing down, positive angles turn clockwise on screen.
func RotateTransform(degrees float64) *AffineTransform {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return &AffineTransform{A: float32(c), B: float32(-s), C: float32(s), D: float32(c)}
}

// TransformPoint applies the transformation to a point.
func (m *AffineTransform) TransformPoint(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.Tx, m.C*x + m.D*y + m.Ty
}

// Multiply returns the composition m·other: other is applied first.
func (m *AffineTransform) Multiply(other *AffineTransform) *AffineTransform {
	return &AffineTransform{
		A:  m.A*other.A + m.B*other.C,
		B:  m.A*other.B + m.B*other.D,
		C:  m.C*other.A + m.D*other.C,
		D:  m.C*other.B + m.D*other.D,
		Tx: m.A*other.Tx + m.B*other.Ty + m.Tx,
		Ty: m.C*other.Tx + m.D*other.Ty + m.Ty,
	}
}
