package motion

import (
	"maps"

	"mocap-kinematics/internal/mathutil"
)

// FloatingBase is the DOF name that expands to the seven root fields.
const FloatingBase = "floating_base_joint"

// Root field names.
const (
	FieldGlobalX = "global_x"
	FieldGlobalY = "global_y"
	FieldGlobalZ = "global_z"
	FieldQuaterX = "quater_x"
	FieldQuaterY = "quater_y"
	FieldQuaterZ = "quater_z"
	FieldQuaterW = "quater_w"
)

// BaseFields is the column order of the floating base: position then quaternion.
var BaseFields = []string{
	FieldGlobalX, FieldGlobalY, FieldGlobalZ,
	FieldQuaterX, FieldQuaterY, FieldQuaterZ, FieldQuaterW,
}

// Frame maps a field name to its value for one animation frame.
type Frame map[string]float64

// JointField names one axis of a three-axis joint, e.g. JointField("Hips", 'X') == "Hips_x".
func JointField(joint string, axis byte) string {
	switch axis {
	case 'X', 'x':
		return joint + "_x"
	case 'Y', 'y':
		return joint + "_y"
	default:
		return joint + "_z"
	}
}

// Clone returns an independent copy.
func (f Frame) Clone() Frame {
	if f == nil {
		return Frame{}
	}
	return maps.Clone(f)
}

// Position returns (global_x, global_y, global_z). Missing fields read as zero.
func (f Frame) Position() mathutil.Vec3 {
	return mathutil.Vec3{f[FieldGlobalX], f[FieldGlobalY], f[FieldGlobalZ]}
}

// SetPosition writes the root position fields.
func (f Frame) SetPosition(p mathutil.Vec3) {
	f[FieldGlobalX], f[FieldGlobalY], f[FieldGlobalZ] = p[0], p[1], p[2]
}

// Orientation returns the normalized root quaternion.
func (f Frame) Orientation() mathutil.Quat {
	return mathutil.Normalize(mathutil.Quat{f[FieldQuaterX], f[FieldQuaterY], f[FieldQuaterZ], f[FieldQuaterW]})
}

// SetOrientation writes the root quaternion fields.
func (f Frame) SetOrientation(q mathutil.Quat) {
	f[FieldQuaterX], f[FieldQuaterY], f[FieldQuaterZ], f[FieldQuaterW] = q[0], q[1], q[2], q[3]
}

// Euler reads the <joint>_x/_y/_z fields in degrees.
func (f Frame) Euler(joint string) mathutil.Euler {
	return mathutil.Euler{
		X: f[JointField(joint, 'X')],
		Y: f[JointField(joint, 'Y')],
		Z: f[JointField(joint, 'Z')],
	}
}

// SetEuler writes the <joint>_x/_y/_z fields.
func (f Frame) SetEuler(joint string, e mathutil.Euler) {
	f[JointField(joint, 'X')] = e.X
	f[JointField(joint, 'Y')] = e.Y
	f[JointField(joint, 'Z')] = e.Z
}

// CloneFrames deep-copies a frame sequence.
func CloneFrames(frames []Frame) []Frame {
	out := make([]Frame, len(frames))
	for i, f := range frames {
		out[i] = f.Clone()
	}
	return out
}
