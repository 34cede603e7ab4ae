package nonnon

import (
	"errors"
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/nonnon/pixel"
)

// RevealCurve maps the k-th ramp frame to the visible word height.
// Values are positive and non-decreasing; the last one is the full height.
type RevealCurve []int

// Height returns the target height for ramp step k. Steps past the end
// of the curve yield the maximum height.
func (c RevealCurve) Height(k int) int {
	if len(c) == 0 {
		return 0
	}
	if k < 0 {
		k = 0
	}
	if k >= len(c) {
		return c[len(c)-1]
	}
	return c[k]
}

// Max returns the fully revealed height.
func (c RevealCurve) Max() int {
	return c.Height(len(c))
}

// Validate checks that the curve is non-empty, positive and non-decreasing.
func (c RevealCurve) Validate() error {
	if len(c) == 0 {
		return errors.New("curve must not be empty")
	}
	prev := 0
	for i, h := range c {
		if h <= 0 {
			return fmt.Errorf("curve[%d] must be > 0, got %d", i, h)
		}
		if h < prev {
			return fmt.Errorf("curve[%d] = %d decreases from %d", i, h, prev)
		}
		prev = h
	}
	return nil
}

// RowProjection is where one row of the word lands when folded.
type RowProjection struct {
	// DestY is the projected height of the row above the baseline.
	DestY float64

	// Scale is the horizontal and vertical scale of the row.
	Scale float64
}

// ProjectRow projects the row at height y above the baseline of a word of
// height maxHeight that is tipped away from the viewer about its baseline.
//
// progress runs from 0 (upright) to 1 (tipped by foldDegrees). perspective
// is the viewer distance in pixels. The baseline row (y = 0) never moves;
// rows nearer the top recede further, so they shrink more and drop toward
// the baseline. At progress 0 the projection is the identity.
func ProjectRow(y, maxHeight, progress, perspective, foldDegrees float64) RowProjection {
	if maxHeight <= 0 {
		return RowProjection{DestY: y, Scale: 1}
	}
	rot := progress * foldDegrees * math.Pi / 180
	yRatio := y / maxHeight
	z := yRatio * perspective * math.Sin(rot)
	scale := perspective / (perspective + z)
	destY := y*scale - yRatio*maxHeight*(1-math.Cos(rot))*progress
	return RowProjection{DestY: destY, Scale: scale}
}

// RevealProgress returns the fold progress for a target height:
// 0 when fully revealed, approaching 1 as the target shrinks.
func RevealProgress(targetHeight, maxHeight int) float64 {
	if maxHeight <= 0 || targetHeight >= maxHeight {
		return 0
	}
	if targetHeight <= 0 {
		return 1
	}
	return 1 - float64(targetHeight)/float64(maxHeight)
}

// WarpWord draws word folded to the progress implied by targetHeight.
//
// Every source row becomes a one pixel strip scaled by its projection and
// centered horizontally, then blended with Surface.Over. Strips are placed from the baseline up, so the
// bottom row of the result is the bottom row of word at full width and the
// top edge recedes. Strips that project below the baseline are clipped.
// The result keeps the word width and is cropped to the rows the strips
// cover. When targetHeight is at least the word height, word is returned
// as is.
func WarpWord(word *pixel.Surface, targetHeight int, r Reveal) *pixel.Surface {
	h := word.Height()
	w := word.Width()
	if targetHeight >= h || w == 0 || h == 0 {
		return word
	}
	progress := RevealProgress(targetHeight, h)
	fh := float64(h)

	// rects[row] is in word coordinates with the baseline at y = h.
	rects := make([]image.Rectangle, h)
	minY := h - 1
	for row := range h {
		p := ProjectRow(float64(h-1-row), fh, progress, r.Perspective, r.FoldDegrees)
		rowW := float64(w) * p.Scale
		x0 := math.Round((float64(w) - rowW) / 2)
		bottom := int(math.Round(fh - p.DestY))
		top := min(bottom-1, int(math.Round(fh-p.DestY-p.Scale)))
		rects[row] = image.Rect(int(x0), top, int(math.Round(x0+rowW)), bottom)
		minY = min(minY, top)
	}

	out := pixel.New(w, h-minY)
	src := word.NRGBA()
	for row := h - 1; row >= 0; row-- {
		dr := rects[row]
		if dr.Dx() <= 0 || dr.Min.Y >= h {
			continue
		}
		strip := pixel.New(dr.Dx(), dr.Dy())
		dst := strip.NRGBA()
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, image.Rect(0, row, w, row+1), xdraw.Src, nil)
		out.Over(strip, dr.Min.X, dr.Min.Y-minY)
	}
	return out
}

// CropWord returns the top targetHeight rows of word.
func CropWord(word *pixel.Surface, targetHeight int) *pixel.Surface {
	if targetHeight >= word.Height() {
		return word
	}
	if targetHeight <= 0 {
		return pixel.New(word.Width(), 0)
	}
	return word.Crop(pixel.Bounds{Right: word.Width(), Bottom: targetHeight})
}

// SquashWord scales word vertically to targetHeight.
func SquashWord(word *pixel.Surface, targetHeight int) *pixel.Surface {
	if targetHeight >= word.Height() {
		return word
	}
	return word.ResizeHeight(targetHeight)
}

// NormalizeWord scales word vertically to height, keeping its width.
func NormalizeWord(word *pixel.Surface, height int) *pixel.Surface {
	if word.Height() == height {
		return word
	}
	return word.ResizeHeight(height)
}

// RevealWord builds the partially revealed word for targetHeight using
// the mode selected in r.
func RevealWord(word *pixel.Surface, targetHeight int, r Reveal) *pixel.Surface {
	switch r.Mode {
	case RevealCrop:
		return CropWord(word, targetHeight)
	case RevealSquash:
		return SquashWord(word, targetHeight)
	default:
		return WarpWord(word, targetHeight, r)
	}
}
