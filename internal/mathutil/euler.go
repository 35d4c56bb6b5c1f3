package mathutil

import (
	"fmt"
	"math"
	"strings"
)

// Euler holds rotation angles in degrees about X, Y and Z.
// The order in which they are applied is supplied separately.
type Euler struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the per-axis sum.
func (e Euler) Add(o Euler) Euler {
	return Euler{e.X + o.X, e.Y + o.Y, e.Z + o.Z}
}

// Sub returns the per-axis difference.
func (e Euler) Sub(o Euler) Euler {
	return Euler{e.X - o.X, e.Y - o.Y, e.Z - o.Z}
}

// Scale multiplies every axis by s.
func (e Euler) Scale(s float64) Euler {
	return Euler{e.X * s, e.Y * s, e.Z * s}
}

// Axis returns the angle for axis 'X', 'Y' or 'Z'.
func (e Euler) Axis(a byte) float64 {
	switch a {
	case 'X':
		return e.X
	case 'Y':
		return e.Y
	default:
		return e.Z
	}
}

// RotationOrder names the intrinsic axis sequence, e.g. "ZXY" means
// R = Rz × Rx × Ry.
type RotationOrder string

const (
	OrderXYZ RotationOrder = "XYZ"
	OrderXZY RotationOrder = "XZY"
	OrderYXZ RotationOrder = "YXZ"
	OrderYZX RotationOrder = "YZX"
	OrderZXY RotationOrder = "ZXY"
	OrderZYX RotationOrder = "ZYX"
)

// Orders lists every supported rotation order.
var Orders = []RotationOrder{OrderXYZ, OrderXZY, OrderYXZ, OrderYZX, OrderZXY, OrderZYX}

// ParseOrder accepts any case permutation of "XYZ". An empty string means XYZ.
func ParseOrder(s string) (RotationOrder, error) {
	if s == "" {
		return OrderXYZ, nil
	}
	o := RotationOrder(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Orders {
		if o == known {
			return o, nil
		}
	}
	return "", fmt.Errorf("mathutil: invalid rotation order %q", s)
}

func axisVec(a byte) Vec3 {
	switch a {
	case 'X':
		return Vec3{1, 0, 0}
	case 'Y':
		return Vec3{0, 1, 0}
	default:
		return Vec3{0, 0, 1}
	}
}

// AxisQuat returns the rotation of deg degrees about a single axis 'X', 'Y' or 'Z'.
func AxisQuat(a byte, deg float64) Quat {
	return AxisAngle(axisVec(a), Deg2Rad(deg))
}

// EulerToQuat composes one quaternion per axis in the given order.
// An invalid order falls back to XYZ.
func EulerToQuat(e Euler, order RotationOrder) Quat {
	if len(order) != 3 {
		order = OrderXYZ
	}
	q := QuatIdentity
	for i := 0; i < 3; i++ {
		a := order[i]
		q = Multiply(q, AxisQuat(a, e.Axis(a)))
	}
	return Normalize(q)
}

// QuatToEuler extracts Euler angles (degrees) for the given order.
// At gimbal lock the last free angle is reported as zero.
func QuatToEuler(q Quat, order RotationOrder) Euler {
	m := QuatToMat3(Normalize(q))
	m11, m12, m13 := m[0], m[1], m[2]
	m21, m22, m23 := m[3], m[4], m[5]
	m31, m32, m33 := m[6], m[7], m[8]

	var x, y, z float64
	switch order {
	case OrderXZY:
		z = math.Asin(-Clamp(m12, -1, 1))
		if math.Abs(m12) < gimbalThreshold {
			x = math.Atan2(m32, m22)
			y = math.Atan2(m13, m11)
		} else {
			x = math.Atan2(-m23, m33)
		}
	case OrderYXZ:
		x = math.Asin(-Clamp(m23, -1, 1))
		if math.Abs(m23) < gimbalThreshold {
			y = math.Atan2(m13, m33)
			z = math.Atan2(m21, m22)
		} else {
			y = math.Atan2(-m31, m11)
		}
	case OrderYZX:
		z = math.Asin(Clamp(m21, -1, 1))
		if math.Abs(m21) < gimbalThreshold {
			x = math.Atan2(-m23, m22)
			y = math.Atan2(-m31, m11)
		} else {
			y = math.Atan2(m13, m33)
		}
	case OrderZXY:
		x = math.Asin(Clamp(m32, -1, 1))
		if math.Abs(m32) < gimbalThreshold {
			y = math.Atan2(-m31, m33)
			z = math.Atan2(-m12, m22)
		} else {
			z = math.Atan2(m21, m11)
		}
	case OrderZYX:
		y = math.Asin(-Clamp(m31, -1, 1))
		if math.Abs(m31) < gimbalThreshold {
			x = math.Atan2(m32, m33)
			z = math.Atan2(m21, m11)
		} else {
			z = math.Atan2(-m12, m22)
		}
	default: // XYZ
		y = math.Asin(Clamp(m13, -1, 1))
		if math.Abs(m13) < gimbalThreshold {
			x = math.Atan2(-m23, m33)
			z = math.Atan2(-m12, m11)
		} else {
			x = math.Atan2(m32, m22)
		}
	}

	return Euler{Rad2Deg(x), Rad2Deg(y), Rad2Deg(z)}
}

// EulerMat3 builds Rz × Ry × Rx from angles in degrees.
func EulerMat3(e Euler) Mat3 {
	return Mat3Mul(Mat3Mul(RotZ(Deg2Rad(e.Z)), RotY(Deg2Rad(e.Y))), RotX(Deg2Rad(e.X)))
}

// RotateVectorByEuler applies EulerMat3(e) to v.
func RotateVectorByEuler(v Vec3, e Euler) Vec3 {
	return EulerMat3(e).MulVec3(v)
}
