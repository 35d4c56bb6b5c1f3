package skeleton

import (
	"fmt"

	"mocap-kinematics/internal/mathutil"
	"mocap-kinematics/internal/motion"
)

// LocalQuat builds joint's local rotation from the frame's <name>_x/_y/_z
// fields, one axis quaternion at a time in the joint's rotation order.
func LocalQuat(j Joint, frame motion.Frame) mathutil.Quat {
	return mathutil.EulerToQuat(frame.Euler(j.Name), j.Order)
}

func (m *Metadata) resolve(name string) (int, error) {
	if m == nil || len(m.joints) == 0 {
		return -1, ErrNoMetadata
	}
	i, ok := m.Index(name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrJointNotFound, name)
	}
	return i, nil
}

// accumulate composes local rotations along a root-first chain, starting from
// the floating-base orientation: acc = base × local₀ × local₁ × ...
// A frame without a floating base has the identity as base.
func (m *Metadata) accumulate(chain []int, frame motion.Frame) mathutil.Quat {
	acc := frame.Orientation()
	for _, idx := range chain {
		acc = mathutil.Multiply(acc, LocalQuat(m.joints[idx], frame))
	}
	return mathutil.Normalize(acc)
}

// GlobalQuat returns the accumulated base→root→joint rotation.
func GlobalQuat(joint string, frame motion.Frame, meta *Metadata) (mathutil.Quat, error) {
	i, err := meta.resolve(joint)
	if err != nil {
		return mathutil.QuatIdentity, err
	}
	chain, err := meta.Chain(i)
	if err != nil {
		return mathutil.QuatIdentity, err
	}
	return meta.accumulate(chain, frame), nil
}

// GlobalRotation returns joint's accumulated rotation as XYZ Euler degrees.
func GlobalRotation(joint string, frame motion.Frame, meta *Metadata) (mathutil.Euler, error) {
	q, err := GlobalQuat(joint, frame, meta)
	if err != nil {
		return mathutil.Euler{}, err
	}
	return mathutil.QuatToEuler(q, mathutil.OrderXYZ), nil
}

// LocalRotation converts a global XYZ Euler rotation for joint into its local
// angles, expressed in the joint's own rotation order:
//
//	local = parentAccumulated⁻¹ × global
//
// The root's only ancestor is the floating base, so without one its local
// rotation equals the global one.
func LocalRotation(joint string, global mathutil.Euler, frame motion.Frame, meta *Metadata) (mathutil.Euler, error) {
	i, err := meta.resolve(joint)
	if err != nil {
		return mathutil.Euler{}, err
	}
	chain, err := meta.Chain(i)
	if err != nil {
		return mathutil.Euler{}, err
	}

	parentAcc := meta.accumulate(chain[:len(chain)-1], frame)
	g := mathutil.EulerToQuat(global, mathutil.OrderXYZ)
	local := mathutil.Multiply(mathutil.Invert(parentAcc), g)

	return mathutil.QuatToEuler(local, meta.joints[i].Order), nil
}

// WorldTransforms computes the world matrix of every joint for one frame.
// The root is translated by its offset plus the frame's global position and
// rotated by the floating-base orientation before its own angles.
func WorldTransforms(frame motion.Frame, meta *Metadata) ([]mathutil.Mat4, error) {
	if meta == nil || len(meta.joints) == 0 {
		return nil, ErrNoMetadata
	}

	worlds := make([]mathutil.Mat4, len(meta.joints))
	done := make([]bool, len(meta.joints))

	for i := range meta.joints {
		if done[i] {
			continue
		}
		chain, err := meta.Chain(i)
		if err != nil {
			return nil, err
		}

		// Chain with parent
		parent := mathutil.Mat4Identity()
		for _, idx := range chain {
			if !done[idx] {
				j := meta.joints[idx]
				pos := j.Offset
				local := LocalQuat(j, frame)
				if j.Parent == -1 {
					pos = pos.Add(frame.Position())
					local = mathutil.Multiply(frame.Orientation(), local)
				}
				rot := mathutil.QuatToMat3(local)
				worlds[idx] = mathutil.Mat4Mul(parent, mathutil.FromMat3Translation(rot, pos))
				done[idx] = true
			}
			parent = worlds[idx]
		}
	}

	return worlds, nil
}

// WorldPositions returns the world-space origin of every joint in index order.
func WorldPositions(frame motion.Frame, meta *Metadata) ([]mathutil.Vec3, error) {
	worlds, err := WorldTransforms(frame, meta)
	if err != nil {
		return nil, err
	}
	out := make([]mathutil.Vec3, len(worlds))
	for i, w := range worlds {
		out[i] = w.Translation()
	}
	return out, nil
}
