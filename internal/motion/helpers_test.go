package motion_test

import "mocap-kinematics/internal/mathutil"

func motionEuler(x, y, z float64) mathutil.Euler {
	return mathutil.Euler{X: x, Y: y, Z: z}
}
