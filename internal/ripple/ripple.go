// Package ripple spreads a single-frame edit across neighbouring frames
// with a Hann-window falloff.
package ripple

import (
	"math"

	"mocap-kinematics/internal/mathutil"
)

// Unbounded as a prev/next count applies the full delta all the way to the array edge.
const Unbounded = -1

// HannWeight returns 0.5·(1+cos(π·d/count)) for 0 < d < count,
// 1 for d ≤ 0 and 0 for d ≥ count.
func HannWeight(d, count int) float64 {
	if d <= 0 {
		return 1
	}
	if d >= count {
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*float64(d)/float64(count)))
}

func clampIndex(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n-1 {
		return n - 1
	}
	return index
}

// sideWeights returns the weight for each distance 1..avail on one side.
// count == Unbounded gives weight 1 everywhere; count <= 0 otherwise gives nothing.
func sideWeights(count, avail int) []float64 {
	switch {
	case count == Unbounded:
		w := make([]float64, avail)
		for i := range w {
			w[i] = 1
		}
		return w
	case count > 0:
		n := min(count, avail)
		w := make([]float64, n)
		for d := 1; d <= n; d++ {
			w[d-1] = HannWeight(d, count)
		}
		return w
	}
	return nil
}

// Adjust returns a copy of values with delta applied at index and spread to
// prevCount frames before and nextCount frames after. index is clamped into
// range; values are not wrapped or normalized.
func Adjust(values []float64, index int, delta float64, prevCount, nextCount int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	n := len(out)
	if n == 0 {
		return out
	}

	idx := clampIndex(index, n)
	out[idx] += delta

	for d, w := range sideWeights(prevCount, idx) {
		out[idx-d-1] += delta * w
	}
	for d, w := range sideWeights(nextCount, n-1-idx) {
		out[idx+d+1] += delta * w
	}

	return out
}

// Mode selects how an Euler edit reaches one side of the edited frame.
type Mode int

const (
	// Full applies the whole delta to every frame on that side, up to the array edge.
	Full Mode = iota
	// Decay applies a Hann-window falloff over the side's count.
	Decay
	// None leaves that side untouched.
	None
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Decay:
		return "decay"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// ParseMode maps "full", "decay" and "none" to a Mode. An empty string is
// None, so an edit only spreads to the sides it names.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "full":
		return Full, true
	case "decay":
		return Decay, true
	case "none", "":
		return None, true
	}
	return None, false
}

// Side configures one side of an Euler ripple.
type Side struct {
	Mode  Mode
	Count int // frames reached under Decay; Unbounded means full delta to the edge
}

func (s Side) weights(avail int) []float64 {
	switch s.Mode {
	case Full:
		return sideWeights(Unbounded, avail)
	case Decay:
		return sideWeights(s.Count, avail)
	}
	return nil
}

// AdjustEuler is Adjust for per-axis Euler angles. Angles are added as-is and
// may leave ±180°.
func AdjustEuler(values []mathutil.Euler, index int, delta mathutil.Euler, prev, next Side) []mathutil.Euler {
	out := make([]mathutil.Euler, len(values))
	copy(out, values)
	n := len(out)
	if n == 0 {
		return out
	}

	idx := clampIndex(index, n)
	out[idx] = out[idx].Add(delta)

	for d, w := range prev.weights(idx) {
		out[idx-d-1] = out[idx-d-1].Add(delta.Scale(w))
	}
	for d, w := range next.weights(n - 1 - idx) {
		out[idx+d+1] = out[idx+d+1].Add(delta.Scale(w))
	}

	return out
}
