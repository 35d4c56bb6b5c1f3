package trajectory

import "mocap-kinematics/internal/mathutil"

// Pose is one frame's root position and orientation.
type Pose struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
}

// TransformPath re-orients a whole path about its first frame by
// qDiff = now × start⁻¹. Every orientation is left-multiplied by qDiff.
// The input is not modified.
func TransformPath(frames []Pose, start, now mathutil.Quat) []Pose {
	out := make([]Pose, len(frames))
	if len(frames) == 0 {
		return out
	}

	diff := mathutil.Normalize(mathutil.Multiply(mathutil.Normalize(now), mathutil.Invert(mathutil.Normalize(start))))
	origin := frames[0].Position

	for i, f := range frames {
		rel := f.Position.Sub(origin)
		out[i] = Pose{
			Position: origin.Add(mathutil.RotateVector(rel, diff)),
			Rotation: mathutil.Normalize(mathutil.Multiply(diff, f.Rotation)),
		}
	}
	return out
}
