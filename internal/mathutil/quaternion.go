package mathutil

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// QuatFromSlice reads an [x, y, z, w] slice. Short slices degrade to identity.
func QuatFromSlice(s []float64) Quat {
	if len(s) < 4 {
		return QuatIdentity
	}
	return Quat{s[0], s[1], s[2], s[3]}
}

func (q Quat) number() quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}

func fromNumber(n quat.Number) Quat {
	return Quat{n.Imag, n.Jmag, n.Kmag, n.Real}
}

// NormSq returns the squared norm.
func (q Quat) NormSq() float64 {
	return q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
}

// Dot returns the 4D dot product.
func (q Quat) Dot(r Quat) float64 {
	return q[0]*r[0] + q[1]*r[1] + q[2]*r[2] + q[3]*r[3]
}

func (q Quat) finite() bool {
	for _, c := range q {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Normalize returns the unit quaternion. Near-zero or non-finite input yields identity.
func Normalize(q Quat) Quat {
	if !q.finite() {
		return QuatIdentity
	}
	n2 := q.NormSq()
	if n2 <= normEpsilon {
		return QuatIdentity
	}
	return fromNumber(quat.Scale(1/quat.Abs(q.number()), q.number()))
}

// Conjugate returns (-x, -y, -z, w).
func Conjugate(q Quat) Quat {
	return fromNumber(quat.Conj(q.number()))
}

// Multiply returns the Hamilton product a × b: b is applied first, then a.
func Multiply(a, b Quat) Quat {
	return fromNumber(quat.Mul(a.number(), b.number()))
}

// Invert returns q⁻¹ (conjugate divided by the squared norm).
// Degenerate input yields identity.
func Invert(q Quat) Quat {
	if !q.finite() || q.NormSq() <= normEpsilon {
		return QuatIdentity
	}
	return fromNumber(quat.Inv(q.number()))
}

// Slerp interpolates along the shortest arc from a to b. t is clamped to [0, 1].
func Slerp(a, b Quat, t float64) Quat {
	t = Clamp(t, 0, 1)
	a, b = Normalize(a), Normalize(b)

	dot := a.Dot(b)
	if dot < 0 {
		b = Quat{-b[0], -b[1], -b[2], -b[3]}
		dot = -dot
	}

	if dot > slerpLinearThreshold {
		return Normalize(Quat{
			a[0] + (b[0]-a[0])*t,
			a[1] + (b[1]-a[1])*t,
			a[2] + (b[2]-a[2])*t,
			a[3] + (b[3]-a[3])*t,
		})
	}

	theta0 := math.Acos(dot)
	theta := theta0 * t
	sin0 := math.Sin(theta0)
	s0 := math.Cos(theta) - dot*math.Sin(theta)/sin0
	s1 := math.Sin(theta) / sin0

	return Normalize(Quat{
		a[0]*s0 + b[0]*s1,
		a[1]*s0 + b[1]*s1,
		a[2]*s0 + b[2]*s1,
		a[3]*s0 + b[3]*s1,
	})
}

// RotateVector returns the vector part of q × (v, 0) × q*.
func RotateVector(v Vec3, q Quat) Vec3 {
	q = Normalize(q)
	p := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	r := quat.Mul(quat.Mul(q.number(), p), quat.Conj(q.number()))
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// AxisAngle builds a unit quaternion rotating by angle radians about a unit axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	s := math.Sin(angle / 2)
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, math.Cos(angle / 2)}
}

// SameRotation reports whether a and b describe the same rotation within tol,
// treating q and -q as equal.
func SameRotation(a, b Quat, tol float64) bool {
	return math.Abs(math.Abs(Normalize(a).Dot(Normalize(b)))-1) <= tol
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
