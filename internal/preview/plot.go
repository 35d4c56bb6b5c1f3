package preview

import (
	"errors"
	"image"
	"math"
)

var (
	ErrBufferShape = errors.New("preview: trajectory buffer needs x, y, z arrays")
	ErrSize        = errors.New("preview: size must be positive")
)

var (
	background = [4]uint8{255, 255, 255, 255}
	origColor  = [4]uint8{150, 150, 150, 255}
	editColor  = [4]uint8{255, 140, 0, 255}
	pinColor   = [4]uint8{200, 30, 30, 255}
)

// marginRatio is the blank border kept on each side of the plot.
const marginRatio = 0.08

// Options control the trajectory plot.
type Options struct {
	Size        int         // output edge length in pixels
	Supersample int         // render scale before downsampling
	Pin         int         // frame to mark on the edited path, -1 for none
	Backdrop    image.Image // drawn under the paths when non-nil
}

// DefaultOptions returns a 512px plot with 2x supersampling and no pin.
func DefaultOptions() Options {
	return Options{Size: 512, Supersample: 2, Pin: -1}
}

type point struct{ x, z float64 }

// path reads the x and z arrays of a trajectory buffer. Non-finite samples
// become NaN points that break the polyline.
func path(buf [][]float64) ([]point, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	if len(buf) < 3 {
		return nil, ErrBufferShape
	}
	n := min(len(buf[0]), len(buf[2]))
	pts := make([]point, n)
	for i := range pts {
		x, z := buf[0][i], buf[2][i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(z) || math.IsInf(z, 0) {
			pts[i] = point{math.NaN(), math.NaN()}
			continue
		}
		pts[i] = point{x, z}
	}
	return pts, nil
}

func (p point) valid() bool { return !math.IsNaN(p.x) }

// Plot draws the top-down (X/Z) projection of a root trajectory before and
// after an edit. Both buffers use the seven- or six-array layout whose first
// three arrays are x, y, z; before may be nil.
func Plot(before, after [][]float64, opts Options) (*image.NRGBA, error) {
	if opts.Size <= 0 {
		return nil, ErrSize
	}
	ss := max(opts.Supersample, 1)

	orig, err := path(before)
	if err != nil {
		return nil, err
	}
	edited, err := path(after)
	if err != nil {
		return nil, err
	}

	renderSize := opts.Size * ss
	cv := NewCanvas(renderSize, renderSize)
	cv.Fill(background)
	if opts.Backdrop != nil {
		cv.drawBackdrop(opts.Backdrop)
	}

	// Shared bounds so both paths use one projection
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, pts := range [][]point{orig, edited} {
		for _, p := range pts {
			if !p.valid() {
				continue
			}
			minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
			minZ, maxZ = math.Min(minZ, p.z), math.Max(maxZ, p.z)
		}
	}

	if !math.IsInf(minX, 1) {
		span := math.Max(maxX-minX, maxZ-minZ)
		usable := float64(renderSize) * (1 - 2*marginRatio)
		scale := 0.0
		if span > 1e-12 {
			scale = usable / span
		}
		cx, cz := (minX+maxX)/2, (minZ+maxZ)/2
		half := float64(renderSize) / 2
		project := func(p point) (float64, float64) {
			return half + (p.x-cx)*scale, half + (p.z-cz)*scale
		}

		width := 2 * float64(ss)
		cv.polyline(orig, project, width, origColor)
		cv.polyline(edited, project, width, editColor)

		if opts.Pin >= 0 && opts.Pin < len(edited) && edited[opts.Pin].valid() {
			px, py := project(edited[opts.Pin])
			cv.Disc(px, py, 5*float64(ss), pinColor)
		}
	}

	img := cv.Image()
	if ss > 1 {
		img = Downsample(img, opts.Size, opts.Size)
	}
	return img, nil
}

func (cv *Canvas) polyline(pts []point, project func(point) (float64, float64), width float64, c [4]uint8) {
	if len(pts) == 1 && pts[0].valid() {
		x, y := project(pts[0])
		cv.Disc(x, y, width/2, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		if !pts[i-1].valid() || !pts[i].valid() {
			continue
		}
		x0, y0 := project(pts[i-1])
		x1, y1 := project(pts[i])
		cv.Line(x0, y0, x1, y1, width, c)
	}
}
