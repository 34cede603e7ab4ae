package stroke

import "math"

// minJoinSegments is the smallest polygon used to approximate a round join.
const minJoinSegments = 8

// Expand returns fill polygons covering a centered stroke of the given
// width along every contour. All polygons share a positive signed area.
// tolerance controls how finely the round joins are approximated.
func Expand(contours []Contour, width, tolerance float64) []Contour {
	if width <= 0 {
		return nil
	}
	if tolerance <= 0 {
		tolerance = 0.25
	}
	hw := width / 2
	disc := joinDisc(hw, tolerance)

	var out []Contour
	for _, c := range contours {
		for i, a := range c {
			b := c[(i+1)%len(c)]
			if q := edgeQuad(a, b, hw); q != nil {
				out = append(out, q)
			}
			j := make(Contour, len(disc))
			for k, v := range disc {
				j[k] = a.Add(v)
			}
			out = append(out, j)
		}
	}
	return out
}

// edgeQuad returns the rectangle of half-width hw around segment a-b, or
// nil for a degenerate segment.
func edgeQuad(a, b Point, hw float64) Contour {
	d := b.Sub(a)
	l := d.Length()
	if l < 1e-9 {
		return nil
	}
	n := d.Perp().Scale(hw / l)
	q := Contour{a.Add(n), b.Add(n), b.Add(n.Neg()), a.Add(n.Neg())}
	if q.SignedArea() < 0 {
		q.Reverse()
	}
	return q
}

// joinDisc returns the vertices of a regular polygon of radius r centered
// on the origin, wound with positive area.
func joinDisc(r, tolerance float64) []Vec2 {
	n := minJoinSegments
	if r > tolerance {
		// Sagitta of each chord stays under tolerance.
		step := 2 * math.Acos(1-tolerance/r)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	n = min(n, maxSubdivisions)
	v := make([]Vec2, n)
	for i := range v {
		a := 2 * math.Pi * float64(i) / float64(n)
		v[i] = Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return v
}
