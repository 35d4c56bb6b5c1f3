package edit

import (
	"errors"
	"fmt"
	"slices"

	"mocap-kinematics/internal/mathutil"
	"mocap-kinematics/internal/motion"
	"mocap-kinematics/internal/ripple"
	"mocap-kinematics/internal/skeleton"
	"mocap-kinematics/internal/trajectory"
)

var (
	ErrUnknownOp      = errors.New("edit: unknown operation")
	ErrBadArgs        = errors.New("edit: bad arguments")
	ErrNoFloatingBase = errors.New("edit: document has no floating base")
	ErrFrameRange     = errors.New("edit: frame out of range")
)

// Apply runs every op of s in order and returns the edited document.
// doc itself is never modified. meta may be nil unless an op needs it.
func Apply(doc motion.Document, s Script, meta *skeleton.Metadata) (motion.Document, error) {
	out := doc.Clone()
	for i, op := range s.Ops {
		var err error
		out, err = ApplyOp(out, op, meta)
		if err != nil {
			return motion.Document{}, fmt.Errorf("edit: op %d (%s): %w", i, op.Op, err)
		}
	}
	return out, nil
}

// ApplyOp runs a single op.
func ApplyOp(doc motion.Document, op Op, meta *skeleton.Metadata) (motion.Document, error) {
	out := motion.Document{DOFNames: slices.Clone(doc.DOFNames), FPS: doc.FPS}
	var err error

	switch op.Op {
	case OpRipple:
		if op.Field != "" {
			if err := requireColumns(doc, op.Field); err != nil {
				return motion.Document{}, err
			}
		}
		out.Frames, err = applyRipple(doc.Frames, op)
	case OpRippleEuler:
		if err := requireJoint(doc, op.Joint, meta); err != nil {
			return motion.Document{}, err
		}
		out.Frames, err = applyRippleEuler(doc.Frames, op, meta)
	case OpTwist:
		if !doc.HasFloatingBase() {
			return motion.Document{}, ErrNoFloatingBase
		}
		out.Frames, err = applyTwist(doc.Frames, op)
	case OpTwistEuler:
		if !doc.HasFloatingBase() {
			return motion.Document{}, ErrNoFloatingBase
		}
		if err := requireJoint(doc, op.Joint, meta); err != nil {
			return motion.Document{}, err
		}
		out.Frames, err = applyTwistEuler(doc.Frames, op, meta)
	case OpTransformPath:
		if !doc.HasFloatingBase() {
			return motion.Document{}, ErrNoFloatingBase
		}
		out.Frames, err = applyTransformPath(doc.Frames, op)
	case OpSetGlobalRotation:
		if err := requireJoint(doc, op.Joint, meta); err != nil {
			return motion.Document{}, err
		}
		out.Frames, err = applySetGlobalRotation(doc.Frames, op, meta)
	default:
		return motion.Document{}, fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}

	if err != nil {
		return motion.Document{}, err
	}
	return out, nil
}

// jointName maps a user-supplied joint name to the skeleton's spelling when
// metadata is available, so field keys match the document.
func jointName(name string, meta *skeleton.Metadata) string {
	if i, ok := meta.Index(name); ok {
		return meta.Joint(i).Name
	}
	return name
}

// requireColumns fails when a field is not a column of doc. Writing such a
// field would be dropped on unparse.
func requireColumns(doc motion.Document, fields ...string) error {
	cols := motion.Columns(doc.DOFNames)
	for _, f := range fields {
		if !slices.Contains(cols, f) {
			return fmt.Errorf("%w: %q is not a column of the document", ErrBadArgs, f)
		}
	}
	return nil
}

// requireJoint checks the three angle columns of joint, resolved through meta.
// An empty joint is left to the op's own argument check.
func requireJoint(doc motion.Document, joint string, meta *skeleton.Metadata) error {
	if joint == "" {
		return nil
	}
	name := jointName(joint, meta)
	return requireColumns(doc,
		motion.JointField(name, 'X'), motion.JointField(name, 'Y'), motion.JointField(name, 'Z'))
}

func applyRipple(frames []motion.Frame, op Op) ([]motion.Frame, error) {
	if op.Field == "" {
		return nil, fmt.Errorf("%w: ripple needs a field", ErrBadArgs)
	}
	values := ripple.Adjust(motion.Scalars(frames, op.Field), op.Frame, op.Delta, op.Prev, op.Next)
	return motion.ApplyScalars(frames, op.Field, values), nil
}

func applyRippleEuler(frames []motion.Frame, op Op, meta *skeleton.Metadata) ([]motion.Frame, error) {
	if op.Joint == "" {
		return nil, fmt.Errorf("%w: ripple_euler needs a joint", ErrBadArgs)
	}
	prevMode, ok := ripple.ParseMode(op.PrevMode)
	if !ok {
		return nil, fmt.Errorf("%w: prev_mode %q", ErrBadArgs, op.PrevMode)
	}
	nextMode, ok := ripple.ParseMode(op.NextMode)
	if !ok {
		return nil, fmt.Errorf("%w: next_mode %q", ErrBadArgs, op.NextMode)
	}

	joint := jointName(op.Joint, meta)
	values := ripple.AdjustEuler(
		motion.EulerSeries(frames, joint), op.Frame, op.Angles,
		ripple.Side{Mode: prevMode, Count: op.Prev},
		ripple.Side{Mode: nextMode, Count: op.Next},
	)
	return motion.ApplyEulerSeries(frames, joint, values), nil
}

func quatArg(name string, v []float64) (mathutil.Quat, error) {
	if len(v) != 4 {
		return mathutil.Quat{}, fmt.Errorf("%w: %s must be [x, y, z, w]", ErrBadArgs, name)
	}
	return mathutil.QuatFromSlice(v), nil
}

func eulerArg(name string, v []float64) (mathutil.Euler, error) {
	if len(v) != 3 {
		return mathutil.Euler{}, fmt.Errorf("%w: %s must be [x, y, z]", ErrBadArgs, name)
	}
	return mathutil.Euler{X: v[0], Y: v[1], Z: v[2]}, nil
}

func applyTwist(frames []motion.Frame, op Op) ([]motion.Frame, error) {
	start, err := quatArg("start", op.Start)
	if err != nil {
		return nil, err
	}
	current, err := quatArg("current", op.Current)
	if err != nil {
		return nil, err
	}
	dir, err := trajectory.ParseDirection(op.Direction)
	if err != nil {
		return nil, err
	}

	buf, err := trajectory.Rotate(motion.RootTrajectory(frames), trajectory.Twist{
		StartFrame: op.Frame,
		Start:      start,
		Current:    current,
		Decay:      op.Decay,
		Direction:  dir,
	})
	if err != nil {
		return nil, err
	}
	return motion.ApplyRootTrajectory(frames, buf), nil
}

func applyTwistEuler(frames []motion.Frame, op Op, meta *skeleton.Metadata) ([]motion.Frame, error) {
	if op.Joint == "" {
		return nil, fmt.Errorf("%w: twist_euler needs a joint", ErrBadArgs)
	}
	start, err := eulerArg("start", op.Start)
	if err != nil {
		return nil, err
	}
	current, err := eulerArg("current", op.Current)
	if err != nil {
		return nil, err
	}
	dir, err := trajectory.ParseDirection(op.Direction)
	if err != nil {
		return nil, err
	}

	joint := jointName(op.Joint, meta)
	buf, err := trajectory.RotateEuler(motion.EulerTrajectory(frames, joint), trajectory.EulerTwist{
		StartFrame: op.Frame,
		Start:      start,
		Current:    current,
		Decay:      op.Decay,
		Direction:  dir,
	})
	if err != nil {
		return nil, err
	}
	return motion.ApplyEulerTrajectory(frames, joint, buf), nil
}

func applyTransformPath(frames []motion.Frame, op Op) ([]motion.Frame, error) {
	start, err := quatArg("start", op.Start)
	if err != nil {
		return nil, err
	}
	current, err := quatArg("current", op.Current)
	if err != nil {
		return nil, err
	}

	poses := make([]trajectory.Pose, len(frames))
	for i, f := range frames {
		poses[i] = trajectory.Pose{Position: f.Position(), Rotation: f.Orientation()}
	}

	moved := trajectory.TransformPath(poses, start, current)
	out := motion.CloneFrames(frames)
	for i, p := range moved {
		out[i].SetPosition(p.Position)
		out[i].SetOrientation(p.Rotation)
	}
	return out, nil
}

func applySetGlobalRotation(frames []motion.Frame, op Op, meta *skeleton.Metadata) ([]motion.Frame, error) {
	if op.Frame < 0 || op.Frame >= len(frames) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameRange, op.Frame, len(frames))
	}

	local, err := skeleton.LocalRotation(op.Joint, op.Angles, frames[op.Frame], meta)
	if err != nil {
		return nil, err
	}

	out := motion.CloneFrames(frames)
	out[op.Frame].SetEuler(jointName(op.Joint, meta), local)
	return out, nil
}
