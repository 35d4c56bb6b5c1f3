package ripple_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"

	"mocap-kinematics/internal/mathutil"
	"mocap-kinematics/internal/ripple"
)

func TestAdjust(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}

	t.Run("zero counts touch only the index", func(t *testing.T) {
		got := ripple.Adjust(in, 2, 10, 0, 0)
		assert.Equal(t, []float64{1, 2, 13, 4, 5}, got)
	})

	t.Run("unbounded counts shift everything", func(t *testing.T) {
		got := ripple.Adjust(in, 2, 10, ripple.Unbounded, ripple.Unbounded)
		assert.Equal(t, []float64{11, 12, 13, 14, 15}, got)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		ripple.Adjust(in, 2, 10, -1, -1)
		assert.Equal(t, []float64{1, 2, 3, 4, 5}, in)
	})

	t.Run("index is clamped", func(t *testing.T) {
		assert.Equal(t, []float64{1, 2, 3, 4, 15}, ripple.Adjust(in, 99, 10, 0, 0))
		assert.Equal(t, []float64{11, 2, 3, 4, 5}, ripple.Adjust(in, -3, 10, 0, 0))
	})

	t.Run("hann falloff", func(t *testing.T) {
		zeros := make([]float64, 9)
		got := ripple.Adjust(zeros, 4, 1, 2, 4)
		want := []float64{
			0, 0, 0, 0.5,
			1,
			0.5 * (1 + math.Cos(math.Pi/4)),
			0.5,
			0.5 * (1 + math.Cos(3*math.Pi/4)),
			0,
		}
		assert.True(t, floats.EqualApprox(want, got, 1e-12), "want %v got %v", want, got)
	})

	t.Run("window truncated at array edge", func(t *testing.T) {
		got := ripple.Adjust([]float64{0, 0, 0}, 1, 1, 10, 10)
		assert.InDelta(t, ripple.HannWeight(1, 10), got[0], 1e-12)
		assert.InDelta(t, ripple.HannWeight(1, 10), got[2], 1e-12)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ripple.Adjust(nil, 0, 1, 1, 1))
	})
}

func TestHannWeight(t *testing.T) {
	assert.Equal(t, 1.0, ripple.HannWeight(0, 4))
	assert.Equal(t, 1.0, ripple.HannWeight(-2, 4))
	assert.Equal(t, 0.0, ripple.HannWeight(4, 4))
	assert.Equal(t, 0.0, ripple.HannWeight(7, 4))
	assert.InDelta(t, 0.5, ripple.HannWeight(2, 4), 1e-12)

	// monotonically decreasing inside the window
	prev := 1.0
	for d := 1; d < 10; d++ {
		w := ripple.HannWeight(d, 10)
		assert.Less(t, w, prev)
		prev = w
	}
}

func TestAdjustEuler(t *testing.T) {
	values := make([]mathutil.Euler, 6)
	values[3] = mathutil.Euler{X: 170}
	delta := mathutil.Euler{X: 30, Y: -10, Z: 5}

	t.Run("full to the left, none to the right", func(t *testing.T) {
		got := ripple.AdjustEuler(values, 3, delta,
			ripple.Side{Mode: ripple.Full},
			ripple.Side{Mode: ripple.None})

		for i := 0; i < 3; i++ {
			assert.Equal(t, delta, got[i])
		}
		// no wrapping past 180
		assert.Equal(t, 200.0, got[3].X)
		assert.Equal(t, mathutil.Euler{}, got[4])
		assert.Equal(t, mathutil.Euler{}, got[5])
	})

	t.Run("full ignores the count", func(t *testing.T) {
		got := ripple.AdjustEuler(values, 3, delta,
			ripple.Side{Mode: ripple.Full, Count: ripple.Unbounded},
			ripple.Side{Mode: ripple.Full, Count: 1})
		assert.Equal(t, delta, got[0])
		assert.Equal(t, delta, got[5])
	})

	t.Run("decay uses the hann window", func(t *testing.T) {
		got := ripple.AdjustEuler(values, 3, delta,
			ripple.Side{Mode: ripple.Decay, Count: 2},
			ripple.Side{Mode: ripple.Decay, Count: 4})

		w := ripple.HannWeight(1, 2)
		assert.InDelta(t, delta.X*w, got[2].X, 1e-12)
		assert.Equal(t, mathutil.Euler{}, got[1])
		assert.InDelta(t, delta.Y*ripple.HannWeight(2, 4), got[5].Y, 1e-12)
	})

	t.Run("decay with unbounded count is full", func(t *testing.T) {
		got := ripple.AdjustEuler(values, 3, delta,
			ripple.Side{Mode: ripple.Decay, Count: ripple.Unbounded},
			ripple.Side{Mode: ripple.None})
		assert.Equal(t, delta, got[0])
	})

	assert.Equal(t, mathutil.Euler{X: 170}, values[3], "input mutated")
}

func TestParseMode(t *testing.T) {
	for _, m := range []ripple.Mode{ripple.Full, ripple.Decay, ripple.None} {
		got, ok := ripple.ParseMode(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	got, ok := ripple.ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, ripple.None, got)

	_, ok = ripple.ParseMode("sideways")
	assert.False(t, ok)
}
