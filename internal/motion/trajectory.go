package motion

import "mocap-kinematics/internal/mathutil"

// Scalars extracts one field across all frames.
func Scalars(frames []Frame, field string) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f[field]
	}
	return out
}

// ApplyScalars returns copies of frames with field replaced by values.
func ApplyScalars(frames []Frame, field string, values []float64) []Frame {
	out := CloneFrames(frames)
	for i := range out {
		if i < len(values) {
			out[i][field] = values[i]
		}
	}
	return out
}

// RootTrajectory returns the floating base as seven parallel arrays
// [x, y, z, qx, qy, qz, qw].
func RootTrajectory(frames []Frame) [][]float64 {
	buf := make([][]float64, len(BaseFields))
	for c, name := range BaseFields {
		buf[c] = Scalars(frames, name)
	}
	return buf
}

// ApplyRootTrajectory writes a seven-array buffer back into copies of frames.
func ApplyRootTrajectory(frames []Frame, buf [][]float64) []Frame {
	out := CloneFrames(frames)
	for c, name := range BaseFields {
		if c >= len(buf) {
			break
		}
		for i := range out {
			if i < len(buf[c]) {
				out[i][name] = buf[c][i]
			}
		}
	}
	return out
}

// EulerTrajectory returns the root position plus joint's Euler angles as six
// parallel arrays [x, y, z, rx, ry, rz].
func EulerTrajectory(frames []Frame, joint string) [][]float64 {
	return [][]float64{
		Scalars(frames, FieldGlobalX),
		Scalars(frames, FieldGlobalY),
		Scalars(frames, FieldGlobalZ),
		Scalars(frames, JointField(joint, 'X')),
		Scalars(frames, JointField(joint, 'Y')),
		Scalars(frames, JointField(joint, 'Z')),
	}
}

// ApplyEulerTrajectory writes a six-array buffer back into copies of frames.
func ApplyEulerTrajectory(frames []Frame, joint string, buf [][]float64) []Frame {
	fields := []string{
		FieldGlobalX, FieldGlobalY, FieldGlobalZ,
		JointField(joint, 'X'), JointField(joint, 'Y'), JointField(joint, 'Z'),
	}
	out := CloneFrames(frames)
	for c, name := range fields {
		if c >= len(buf) {
			break
		}
		for i := range out {
			if i < len(buf[c]) {
				out[i][name] = buf[c][i]
			}
		}
	}
	return out
}

// EulerSeries reads joint's angles for every frame.
func EulerSeries(frames []Frame, joint string) []mathutil.Euler {
	out := make([]mathutil.Euler, len(frames))
	for i, f := range frames {
		out[i] = f.Euler(joint)
	}
	return out
}

// ApplyEulerSeries writes joint's angles into copies of frames.
func ApplyEulerSeries(frames []Frame, joint string, values []mathutil.Euler) []Frame {
	out := CloneFrames(frames)
	for i := range out {
		if i < len(values) {
			out[i].SetEuler(joint, values[i])
		}
	}
	return out
}
