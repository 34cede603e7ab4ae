// Package stroke converts closed glyph outlines into fill polygons for a
// centered stroke of a given width.
//
// # Algorithm Overview
//
// Curves are first flattened into closed polylines (contours). The stroke
// of a contour is then the union of:
//   - one quad per edge, offset by ±width/2 along the edge normal
//   - one disc of radius width/2 per vertex (round joins)
//
// Every emitted polygon is normalized to the same winding, so a nonzero
// coverage rasterizer that clamps accumulated coverage (such as
// golang.org/x/image/vector) unions overlapping pieces instead of
// cancelling them. The fill of the glyph itself is rasterized separately,
// because its contours rely on opposite windings for counters.
//
// # Usage
//
//	f := stroke.NewFlattener(0.25)
//	f.MoveTo(stroke.Point{X: 0, Y: 0})
//	f.LineTo(stroke.Point{X: 10, Y: 0})
//	f.QuadTo(stroke.Point{X: 10, Y: 10}, stroke.Point{X: 0, Y: 10})
//	f.Close()
//
//	polys := stroke.Expand(f.Contours(), 2, 0.25)
package stroke
