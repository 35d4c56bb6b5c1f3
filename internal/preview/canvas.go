package preview

import (
	"image"
	"math"
)

// Canvas holds the plot target as a flat RGBA slice for cache locality.
type Canvas struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewCanvas allocates a transparent canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// Fill paints every pixel with c.
func (cv *Canvas) Fill(c [4]uint8) {
	for i := 0; i < len(cv.Color); i += 4 {
		copy(cv.Color[i:i+4], c[:])
	}
}

// blend composites c over the pixel at (x, y) with coverage a in [0,1].
func (cv *Canvas) blend(x, y int, c [4]uint8, a float64) {
	if x < 0 || y < 0 || x >= cv.Width || y >= cv.Height || a <= 0 {
		return
	}
	a *= float64(c[3]) / 255.0
	if a > 1 {
		a = 1
	}
	i := (y*cv.Width + x) * 4
	for k := 0; k < 3; k++ {
		dst := float64(cv.Color[i+k])
		cv.Color[i+k] = uint8(dst + (float64(c[k])-dst)*a + 0.5)
	}
	da := float64(cv.Color[i+3]) / 255.0
	cv.Color[i+3] = uint8((a+da*(1-a))*255.0 + 0.5)
}

// Disc stamps a filled anti-aliased disc centered at (cx, cy).
func (cv *Canvas) Disc(cx, cy, r float64, c [4]uint8) {
	x0 := int(math.Floor(cx - r - 1))
	x1 := int(math.Ceil(cx + r + 1))
	y0 := int(math.Floor(cy - r - 1))
	y1 := int(math.Ceil(cy + r + 1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			// One pixel of edge falloff
			cv.blend(x, y, c, r+0.5-d)
		}
	}
}

// Line draws a segment of the given width by stamping discs along it.
func (cv *Canvas) Line(x0, y0, x1, y1, width float64, c [4]uint8) {
	r := width / 2
	steps := int(math.Ceil(math.Hypot(x1-x0, y1-y0) / math.Max(r/2, 0.5)))
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		cv.stamp(x0+(x1-x0)*t, y0+(y1-y0)*t, r, c)
	}
}

// stamp writes a disc, setting fully covered pixels outright instead of
// blending them.
func (cv *Canvas) stamp(cx, cy, r float64, c [4]uint8) {
	x0 := int(math.Floor(cx - r - 1))
	x1 := int(math.Ceil(cx + r + 1))
	y0 := int(math.Floor(cy - r - 1))
	y1 := int(math.Ceil(cy + r + 1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x < 0 || y < 0 || x >= cv.Width || y >= cv.Height {
				continue
			}
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			a := r + 0.5 - d
			if a <= 0 {
				continue
			}
			if a >= 1 {
				i := (y*cv.Width + x) * 4
				cv.Color[i], cv.Color[i+1], cv.Color[i+2] = c[0], c[1], c[2]
				if c[3] > cv.Color[i+3] {
					cv.Color[i+3] = c[3]
				}
				continue
			}
			cv.blend(x, y, c, a)
		}
	}
}

// Image copies the canvas into an NRGBA image.
func (cv *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cv.Width, cv.Height))
	copy(img.Pix, cv.Color)
	return img
}
