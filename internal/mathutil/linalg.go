package mathutil

import "math"

// Vec3 is a point or direction in world units.
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// Scale multiplies each component by s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

func (a Vec3) Dot(b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Len is the Euclidean length.
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Mat3 is a row-major rotation matrix.
type Mat3 [9]float64

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for i := 0; i < 9; i++ {
		r, c := i/3*3, i%3
		m[i] = a[r]*b[c] + a[r+1]*b[3+c] + a[r+2]*b[6+c]
	}
	return m
}

// MulVec3 returns m × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		Vec3{m[0], m[1], m[2]}.Dot(v),
		Vec3{m[3], m[4], m[5]}.Dot(v),
		Vec3{m[6], m[7], m[8]}.Dot(v),
	}
}

// Mat4 is a row-major affine joint transform; the last row stays (0, 0, 0, 1).
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return FromMat3Translation(Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}, Vec3{})
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for i := 0; i < 16; i++ {
		r, c := i/4*4, i%4
		m[i] = a[r]*b[c] + a[r+1]*b[4+c] + a[r+2]*b[8+c] + a[r+3]*b[12+c]
	}
	return m
}

// Translation returns the origin of the transformed frame.
func (m Mat4) Translation() Vec3 { return Vec3{m[3], m[7], m[11]} }

// FromMat3Translation places rotation r at position t.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}

// RotX, RotY and RotZ are right-handed single-axis rotations; angles in radians.
func RotX(rad float64) Mat3 {
	s, c := math.Sincos(rad)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func RotY(rad float64) Mat3 {
	s, c := math.Sincos(rad)
	return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func RotZ(rad float64) Mat3 {
	s, c := math.Sincos(rad)
	return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
