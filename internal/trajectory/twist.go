package trajectory

import "mocap-kinematics/internal/mathutil"

// Twist describes a quaternion drag on a pinned frame.
type Twist struct {
	StartFrame int
	Start      mathutil.Quat // orientation when the drag began
	Current    mathutil.Quat // orientation now
	Decay      int           // frames over which the rotation fades in; 0 = rigid from the next frame
	Direction  Direction
}

// WorldDelta returns the drag rotation re-expressed in the world frame:
// Δ = start⁻¹ × current, Δw = start × Δ × start⁻¹.
func (tw Twist) WorldDelta() mathutil.Quat {
	start := mathutil.Normalize(tw.Start)
	inv := mathutil.Invert(start)
	local := mathutil.Multiply(inv, mathutil.Normalize(tw.Current))
	return mathutil.Normalize(mathutil.Multiply(mathutil.Multiply(start, local), inv))
}

func readPose(buf [][]float64, i int) (mathutil.Vec3, mathutil.Quat) {
	return mathutil.Vec3{buf[0][i], buf[1][i], buf[2][i]},
		mathutil.Quat{buf[3][i], buf[4][i], buf[5][i], buf[6][i]}
}

func writePose(buf [][]float64, i int, p mathutil.Vec3, q mathutil.Quat) {
	q = mathutil.Normalize(q)
	buf[0][i], buf[1][i], buf[2][i] = p[0], p[1], p[2]
	buf[3][i], buf[4][i], buf[5][i], buf[6][i] = q[0], q[1], q[2], q[3]
}

// Rotate applies tw to a seven-array trajectory [x y z qx qy qz qw] and
// returns a new buffer.
//
// The pinned frame keeps its position and has Δw applied to its orientation.
// Frames within Decay of it rotate about the pinned position by
// slerp(identity, Δw, smoothstep(d/Decay)). Frames past the window move as one
// rigid body p' = Δw·p + t, with t chosen so the window's last frame is
// reproduced exactly.
func Rotate(buf [][]float64, tw Twist) ([][]float64, error) {
	n, err := validate(buf, QuatColumns)
	if err != nil {
		return nil, err
	}
	if err := checkArgs(tw.StartFrame, n, tw.Decay, tw.Direction); err != nil {
		return nil, err
	}

	out := cloneBuffer(buf)
	dw := tw.WorldDelta()
	start := tw.StartFrame
	pivot, q0 := readPose(buf, start)
	writePose(out, start, pivot, mathutil.Multiply(dw, q0))

	decayed := func(d int, p mathutil.Vec3) (mathutil.Vec3, mathutil.Quat) {
		r := mathutil.Slerp(mathutil.QuatIdentity, dw, decayFactor(d, tw.Decay))
		return pivot.Add(mathutil.RotateVector(p.Sub(pivot), r)), r
	}

	for _, step := range tw.Direction.sides() {
		// Rigid translation solved from the window's boundary frame.
		var t mathutil.Vec3
		if end := start + step*tw.Decay; end >= 0 && end < n {
			endOrig, _ := readPose(buf, end)
			endNew := pivot
			if tw.Decay > 0 {
				endNew, _ = decayed(tw.Decay, endOrig)
			}
			t = endNew.Sub(mathutil.RotateVector(endOrig, dw))
		}

		for d, i := 1, start+step; i >= 0 && i < n; d, i = d+1, i+step {
			p, q := readPose(buf, i)
			if d <= tw.Decay {
				np, r := decayed(d, p)
				writePose(out, i, np, mathutil.Multiply(r, q))
				continue
			}
			writePose(out, i, mathutil.RotateVector(p, dw).Add(t), mathutil.Multiply(dw, q))
		}
	}

	return out, nil
}

// EulerTwist describes an Euler-angle drag on a pinned frame. Angles are degrees.
type EulerTwist struct {
	StartFrame int
	Start      mathutil.Euler
	Current    mathutil.Euler
	Decay      int
	Direction  Direction
}

// Delta is the per-axis difference current − start; no re-basing is done.
func (tw EulerTwist) Delta() mathutil.Euler {
	return tw.Current.Sub(tw.Start)
}

func readEuler(buf [][]float64, i int) (mathutil.Vec3, mathutil.Euler) {
	return mathutil.Vec3{buf[0][i], buf[1][i], buf[2][i]},
		mathutil.Euler{X: buf[3][i], Y: buf[4][i], Z: buf[5][i]}
}

func writeEuler(buf [][]float64, i int, p mathutil.Vec3, e mathutil.Euler) {
	buf[0][i], buf[1][i], buf[2][i] = p[0], p[1], p[2]
	buf[3][i], buf[4][i], buf[5][i] = e.X, e.Y, e.Z
}

// RotateEuler is Rotate for a six-array trajectory [x y z rx ry rz]. Positions
// are rotated with the Rz·Ry·Rx matrix of the scaled delta and angles are
// offset by it.
func RotateEuler(buf [][]float64, tw EulerTwist) ([][]float64, error) {
	n, err := validate(buf, EulerColumns)
	if err != nil {
		return nil, err
	}
	if err := checkArgs(tw.StartFrame, n, tw.Decay, tw.Direction); err != nil {
		return nil, err
	}

	out := cloneBuffer(buf)
	delta := tw.Delta()
	full := mathutil.EulerMat3(delta)
	start := tw.StartFrame
	pivot, e0 := readEuler(buf, start)
	writeEuler(out, start, pivot, e0.Add(delta))

	decayed := func(d int, p mathutil.Vec3) (mathutil.Vec3, mathutil.Euler) {
		scaled := delta.Scale(decayFactor(d, tw.Decay))
		return pivot.Add(mathutil.RotateVectorByEuler(p.Sub(pivot), scaled)), scaled
	}

	for _, step := range tw.Direction.sides() {
		var t mathutil.Vec3
		if end := start + step*tw.Decay; end >= 0 && end < n {
			endOrig, _ := readEuler(buf, end)
			endNew := pivot
			if tw.Decay > 0 {
				endNew, _ = decayed(tw.Decay, endOrig)
			}
			t = endNew.Sub(full.MulVec3(endOrig))
		}

		for d, i := 1, start+step; i >= 0 && i < n; d, i = d+1, i+step {
			p, e := readEuler(buf, i)
			if d <= tw.Decay {
				np, scaled := decayed(d, p)
				writeEuler(out, i, np, e.Add(scaled))
				continue
			}
			writeEuler(out, i, full.MulVec3(p).Add(t), e.Add(delta))
		}
	}

	return out, nil
}
