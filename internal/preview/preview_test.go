package preview_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"mocap-kinematics/internal/preview"
)

// line returns a seven-array buffer walking x from 0 to 10 at constant z.
func line(n int, z float64) [][]float64 {
	buf := make([][]float64, 7)
	for c := range buf {
		buf[c] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		buf[0][i] = 10 * float64(i) / float64(n-1)
		buf[2][i] = z
		buf[6][i] = 1
	}
	return buf
}

func rgba(img *image.NRGBA, x, y int) [4]uint8 {
	i := img.PixOffset(x, y)
	return [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

func TestPlotDrawsBothPaths(t *testing.T) {
	opts := preview.Options{Size: 128, Supersample: 1, Pin: -1}
	img, err := preview.Plot(line(11, 0), line(11, 10), opts)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())

	// Span 10 over 128*(1-0.16) px: z=0 lands near row 10, z=10 near row 117
	assert.Equal(t, [4]uint8{150, 150, 150, 255}, rgba(img, 64, 10))
	assert.Equal(t, [4]uint8{255, 140, 0, 255}, rgba(img, 64, 117))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, rgba(img, 64, 64))
}

func TestPlotPinWithSupersample(t *testing.T) {
	opts := preview.DefaultOptions()
	opts.Size = 64
	opts.Pin = 5

	// Collinear edit so the pin lands at the plot center
	img, err := preview.Plot(nil, line(11, 3), opts)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	c := rgba(img, 32, 32)
	assert.InDelta(t, 200, float64(c[0]), 3)
	assert.InDelta(t, 30, float64(c[1]), 3)
	assert.InDelta(t, 30, float64(c[2]), 3)
}

func TestPlotDegenerate(t *testing.T) {
	t.Run("single point", func(t *testing.T) {
		buf := [][]float64{{2}, {0}, {4}, {0}, {0}, {0}, {1}}
		img, err := preview.Plot(nil, buf, preview.Options{Size: 32, Supersample: 1, Pin: -1})
		require.NoError(t, err)
		// Sub-pixel disc: the four center pixels are mostly orange
		c := rgba(img, 16, 16)
		assert.Equal(t, uint8(255), c[0])
		assert.Less(t, c[2], uint8(100))
	})

	t.Run("non-finite samples are skipped", func(t *testing.T) {
		buf := line(5, 0)
		buf[0][2] = math.NaN()
		_, err := preview.Plot(nil, buf, preview.Options{Size: 32, Supersample: 1, Pin: 2})
		assert.NoError(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		img, err := preview.Plot(nil, nil, preview.Options{Size: 16, Supersample: 2, Pin: -1})
		require.NoError(t, err)
		assert.Equal(t, [4]uint8{255, 255, 255, 255}, rgba(img, 8, 8))
	})

	t.Run("bad shape", func(t *testing.T) {
		_, err := preview.Plot(nil, [][]float64{{1}, {2}}, preview.DefaultOptions())
		assert.ErrorIs(t, err, preview.ErrBufferShape)
	})

	t.Run("bad size", func(t *testing.T) {
		_, err := preview.Plot(nil, line(3, 0), preview.Options{})
		assert.ErrorIs(t, err, preview.ErrSize)
	})
}

func TestDownsampleSolid(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []uint8{10, 200, 60, 255})
	}

	dst := preview.Downsample(src, 4, 4)
	require.Equal(t, image.Rect(0, 0, 4, 4), dst.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := rgba(dst, x, y)
			assert.InDelta(t, 10, float64(c[0]), 1)
			assert.InDelta(t, 200, float64(c[1]), 1)
			assert.InDelta(t, 60, float64(c[2]), 1)
			assert.Equal(t, uint8(255), c[3])
		}
	}

	assert.Same(t, src, preview.Downsample(src, 8, 8))
}

func TestBackdrop(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			bg.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, bg))
	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	loaded, err := preview.LoadBackdrop(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), loaded.Bounds())

	opts := preview.Options{Size: 32, Supersample: 1, Pin: -1, Backdrop: loaded}
	img, err := preview.Plot(nil, line(3, 0), opts)
	require.NoError(t, err)
	c := rgba(img, 0, 0)
	assert.InDelta(t, 0, float64(c[0]), 2)
	assert.InDelta(t, 255, float64(c[2]), 2)

	_, err = preview.LoadBackdrop(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestWriteWebP(t *testing.T) {
	img, err := preview.Plot(line(4, 0), line(4, 1), preview.Options{Size: 24, Supersample: 2, Pin: 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "plot.webp")
	require.NoError(t, preview.WriteWebP(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
