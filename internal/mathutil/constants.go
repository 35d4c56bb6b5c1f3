package mathutil

const (
	// normEpsilon is the squared-norm floor below which a quaternion is treated as degenerate.
	normEpsilon = 1e-20

	// slerpLinearThreshold switches slerp to normalized lerp when the inputs are nearly parallel.
	slerpLinearThreshold = 0.9995

	// gimbalThreshold is the matrix element magnitude at which Euler extraction
	// collapses to a single free angle.
	gimbalThreshold = 0.9999999
)

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{0, 0, 0, 1}
