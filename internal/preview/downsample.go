package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled plot to w×h. Filtering runs on
// premultiplied alpha so transparent pixels do not bleed into strokes.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premultiply(img), b, draw.Src, nil)
	return unpremultiply(scaled)
}

func premultiply(src *image.NRGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si, di := src.PixOffset(x, y), dst.PixOffset(x, y)
			a := uint32(src.Pix[si+3])
			for k := 0; k < 3; k++ {
				dst.Pix[di+k] = uint8((uint32(src.Pix[si+k])*a + 127) / 255)
			}
			dst.Pix[di+3] = uint8(a)
		}
	}
	return dst
}

func unpremultiply(src *image.RGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	for i := 0; i+3 < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		dst.Pix[i+3] = a
		if a == 0 {
			continue
		}
		for k := 0; k < 3; k++ {
			dst.Pix[i+k] = clamp8(float64(src.Pix[i+k]) * 255 / float64(a))
		}
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
