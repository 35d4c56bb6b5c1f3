package trajectory

import "mocap-kinematics/internal/mathutil"

// Smoothstep returns s²(3−2s) for s clamped to [0, 1]. Its derivative is zero
// at both ends, so the decay window joins the pinned frame and the rigid
// region without a kink.
func Smoothstep(s float64) float64 {
	s = mathutil.Clamp(s, 0, 1)
	return s * s * (3 - 2*s)
}

// decayFactor is the influence at distance d from the pinned frame.
func decayFactor(d, decay int) float64 {
	if decay <= 0 {
		return 1
	}
	return Smoothstep(float64(d) / float64(decay))
}
