package pixel

import "image"

// Over composites src onto s with its top-left corner at (x, y) using
// source-over blending in non-premultiplied space. Parts of src outside s
// are clipped. s is modified in place.
func (s *Surface) Over(src *Surface, x, y int) {
	dr := image.Rect(x, y, x+src.width, y+src.height).Intersect(s.Bounds())
	if dr.Empty() {
		return
	}
	for dy := dr.Min.Y; dy < dr.Max.Y; dy++ {
		sy := dy - y
		for dx := dr.Min.X; dx < dr.Max.X; dx++ {
			sx := dx - x
			si := (sy*src.width + sx) * 4
			di := (dy*s.width + dx) * 4
			blendOver(s.pix[di:di+4:di+4], src.pix[si:si+4:si+4])
		}
	}
}

// blendOver applies S + D*(1-Sa) to one non-premultiplied pixel.
func blendOver(d, sp []uint8) {
	sa := uint32(sp[3])
	switch sa {
	case 0:
		return
	case 255:
		copy(d, sp)
		return
	}
	da := uint32(d[3])
	inv := 255 - sa
	// Alpha scaled by 255 to keep the color division exact enough.
	outA := sa*255 + da*inv
	if outA == 0 {
		d[0], d[1], d[2], d[3] = 0, 0, 0, 0
		return
	}
	for c := 0; c < 3; c++ {
		v := (uint32(sp[c])*sa*255 + uint32(d[c])*da*inv + outA/2) / outA
		d[c] = uint8(min(v, 255))
	}
	d[3] = uint8((outA + 127) / 255)
}
