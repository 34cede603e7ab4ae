package text

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/nonnon/internal/stroke"
	"github.com/gogpu/nonnon/pixel"
)

// MinCanvasFactor is the smallest glyph canvas side, as a multiple of the
// glyph size. Rotated glyphs with a stroke always fit inside it.
const MinCanvasFactor = 3

// flattenTolerance is the maximum curve flattening error, in pixels, of
// the stroke outline.
const flattenTolerance = 0.2

// GlyphSpec describes one styled character.
type GlyphSpec struct {
	// Char is the character to render.
	Char rune

	// Size is the font size in pixels per em.
	Size float64

	// Rotation is the clockwise rotation in degrees about the glyph center.
	Rotation float64

	// Fill is the color of both the glyph body and its stroke.
	Fill color.NRGBA

	// StrokeWidth is the width of the outline stroke in pixels.
	// Zero disables the stroke.
	StrokeWidth float64

	// CanvasFactor sets the canvas side as a multiple of Size.
	// Values below MinCanvasFactor are raised to it.
	CanvasFactor float64
}

// Rasterizer turns a GlyphSpec into a bitmap.
//
// Rasterize returns a square canvas with the glyph centered. Trim crops a
// surface to its visible pixels; a fully transparent surface is returned
// unchanged.
type Rasterizer interface {
	Rasterize(spec GlyphSpec) (*pixel.Surface, error)
	Trim(s *pixel.Surface) *pixel.Surface
}

// NativeRasterizer renders glyph outlines from a FontSource with
// golang.org/x/image/vector.
//
// NativeRasterizer is safe for concurrent use.
type NativeRasterizer struct {
	source *FontSource
}

// NewRasterizer creates a rasterizer drawing glyphs from source.
func NewRasterizer(source *FontSource) *NativeRasterizer {
	return &NativeRasterizer{source: source}
}

// Rasterize implements Rasterizer.
//
// The glyph outline is centered on its bounding box, rotated by
// spec.Rotation and moved to the canvas center. The fill coverage and the
// stroke coverage are rasterized separately and merged, so the stroke
// widens the glyph by StrokeWidth/2 on every side without cancelling the
// counters of the fill.
func (r *NativeRasterizer) Rasterize(spec GlyphSpec) (*pixel.Surface, error) {
	if r.source == nil {
		return nil, &RasterizeError{Char: spec.Char, Err: ErrSourceClosed}
	}
	outline, err := r.source.GlyphOutline(spec.Char, spec.Size)
	if err != nil {
		return nil, &RasterizeError{Char: spec.Char, Err: err}
	}

	side := canvasSide(spec, outline)
	if outline.IsEmpty() {
		return pixel.New(side, side), nil
	}

	cx, cy := outline.Bounds.Center()
	half := float32(side) / 2
	m := TranslateTransform(half, half).
		Multiply(RotateTransform(spec.Rotation)).
		Multiply(TranslateTransform(float32(-cx), float32(-cy)))
	placed := outline.Transform(m)

	fill := fillMask(placed, side)
	if spec.StrokeWidth > 0 {
		unionMask(fill, strokeMask(placed, side, spec.StrokeWidth))
	}

	slogger().Debug("glyph rasterized",
		"char", string(spec.Char), "size", spec.Size, "rotation", spec.Rotation, "canvas", side)
	return paint(fill, spec.Fill), nil
}

// Trim implements Rasterizer.
func (r *NativeRasterizer) Trim(s *pixel.Surface) *pixel.Surface {
	return pixel.Trim(s)
}

// canvasSide returns the side of the square glyph canvas: CanvasFactor
// times the size, grown when the rotated outline plus stroke would not fit.
func canvasSide(spec GlyphSpec, outline *GlyphOutline) int {
	factor := math.Max(spec.CanvasFactor, MinCanvasFactor)
	side := int(math.Ceil(spec.Size * factor))
	if outline.IsEmpty() {
		return side
	}
	diag := math.Hypot(outline.Bounds.Width(), outline.Bounds.Height())
	need := int(math.Ceil(diag + 2*spec.StrokeWidth + 2))
	return max(side, need)
}

// fillMask rasterizes the outline with nonzero coverage.
func fillMask(o *GlyphOutline, side int) *image.Alpha {
	z := vector.NewRasterizer(side, side)
	z.DrawOp = draw.Src
	open := false
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case OutlineOpMoveTo:
			// vector.Rasterizer.MoveTo does not close the previous contour.
			if open {
				z.ClosePath()
			}
			z.MoveTo(p[0].X, p[0].Y)
			open = true
		case OutlineOpLineTo:
			z.LineTo(p[0].X, p[0].Y)
		case OutlineOpQuadTo:
			z.QuadTo(p[0].X, p[0].Y, p[1].X, p[1].Y)
		case OutlineOpCubicTo:
			z.CubeTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
		}
	}
	if open {
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, side, side))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// strokeMask rasterizes a centered stroke of the given width around every
// contour of the outline.
func strokeMask(o *GlyphOutline, side int, width float64) *image.Alpha {
	f := stroke.NewFlattener(flattenTolerance)
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case OutlineOpMoveTo:
			f.MoveTo(toStrokePoint(p[0]))
		case OutlineOpLineTo:
			f.LineTo(toStrokePoint(p[0]))
		case OutlineOpQuadTo:
			f.QuadTo(toStrokePoint(p[0]), toStrokePoint(p[1]))
		case OutlineOpCubicTo:
			f.CubicTo(toStrokePoint(p[0]), toStrokePoint(p[1]), toStrokePoint(p[2]))
		}
	}

	z := vector.NewRasterizer(side, side)
	z.DrawOp = draw.Src
	for _, poly := range stroke.Expand(f.Contours(), width, flattenTolerance) {
		z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, q := range poly[1:] {
			z.LineTo(float32(q.X), float32(q.Y))
		}
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, side, side))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

func toStrokePoint(p OutlinePoint) stroke.Point {
	return stroke.Point{X: float64(p.X), Y: float64(p.Y)}
}

// unionMask merges src into dst, keeping the larger coverage per pixel.
func unionMask(dst, src *image.Alpha) {
	for i, a := range src.Pix {
		if a > dst.Pix[i] {
			dst.Pix[i] = a
		}
	}
}

// paint turns a coverage mask into a surface of color c.
func paint(mask *image.Alpha, c color.NRGBA) *pixel.Surface {
	b := mask.Bounds()
	out := pixel.New(b.Dx(), b.Dy())
	pix := out.Pix()
	for i, a := range mask.Pix {
		if a == 0 {
			continue
		}
		o := i * 4
		pix[o] = c.R
		pix[o+1] = c.G
		pix[o+2] = c.B
		pix[o+3] = uint8((uint32(a)*uint32(c.A) + 127) / 255)
	}
	return out
}
