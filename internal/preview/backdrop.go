package preview

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// LoadBackdrop decodes a JPEG, PNG or TGA image to draw under the plot.
func LoadBackdrop(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preview: open backdrop %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("preview: decode backdrop %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// drawBackdrop scales bg over the whole canvas.
func (cv *Canvas) drawBackdrop(bg image.Image) {
	view := &image.NRGBA{
		Pix:    cv.Color,
		Stride: cv.Width * 4,
		Rect:   image.Rect(0, 0, cv.Width, cv.Height),
	}
	draw.ApproxBiLinear.Scale(view, view.Bounds(), bg, bg.Bounds(), draw.Over, nil)
}
