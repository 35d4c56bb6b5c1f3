package edit_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-kinematics/internal/edit"
	"mocap-kinematics/internal/mathutil"
	"mocap-kinematics/internal/motion"
	"mocap-kinematics/internal/skeleton"
)

func makeDoc(n int) motion.Document {
	raw := motion.Raw{
		DOFNames: []string{motion.FloatingBase, "Hips_x", "Hips_y", "Hips_z", "Spine_x", "Spine_y", "Spine_z", "knee"},
		FPS:      30,
	}
	for i := 0; i < n; i++ {
		raw.Frames = append(raw.Frames, []float64{
			float64(i), 0, 1, 0, 0, 0, 1,
			0, float64(i), 0,
			5, 0, 0,
			float64(i) * 0.1,
		})
	}
	return motion.Parse(raw)
}

func makeMeta(t *testing.T) *skeleton.Metadata {
	t.Helper()
	meta, err := skeleton.New([]skeleton.Joint{
		{Name: "Hips", Parent: -1, Order: mathutil.OrderZXY},
		{Name: "Spine", Parent: 0, Offset: mathutil.Vec3{0, 10, 0}, Order: mathutil.OrderXYZ},
	})
	require.NoError(t, err)
	return meta
}

func TestApplyRipple(t *testing.T) {
	doc := makeDoc(5)
	out, err := edit.Apply(doc, edit.Script{Ops: []edit.Op{
		{Op: edit.OpRipple, Field: "knee", Frame: 2, Delta: 1, Prev: -1, Next: 0},
	}}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, out.Frames[0]["knee"], 1e-12)
	assert.InDelta(t, 1.2, out.Frames[2]["knee"], 1e-12)
	assert.InDelta(t, 0.3, out.Frames[3]["knee"], 1e-12)
	assert.InDelta(t, 0.0, doc.Frames[0]["knee"], 1e-12, "input mutated")
}

func TestApplyRippleEuler(t *testing.T) {
	doc := makeDoc(6)
	out, err := edit.Apply(doc, edit.Script{Ops: []edit.Op{{
		Op:       edit.OpRippleEuler,
		Joint:    "spine", // resolved through the skeleton
		Frame:    3,
		Angles:   mathutil.Euler{X: 10},
		PrevMode: "none",
		NextMode: "full",
	}}}, makeMeta(t))
	require.NoError(t, err)

	assert.Equal(t, 5.0, out.Frames[2]["Spine_x"])
	for i := 3; i < 6; i++ {
		assert.Equal(t, 15.0, out.Frames[i]["Spine_x"])
	}
	_, lowercase := out.Frames[0]["spine_x"]
	assert.False(t, lowercase)

	_, err = edit.ApplyOp(doc, edit.Op{Op: edit.OpRippleEuler, Joint: "Spine", PrevMode: "sideways"}, nil)
	assert.True(t, errors.Is(err, edit.ErrBadArgs))

	t.Run("omitted modes touch only the edited frame", func(t *testing.T) {
		out, err := edit.ApplyOp(doc, edit.Op{Op: edit.OpRippleEuler, Joint: "Spine", Frame: 2, Angles: mathutil.Euler{Y: 4}}, nil)
		require.NoError(t, err)
		for i, f := range out.Frames {
			want := doc.Frames[i]["Spine_y"]
			if i == 2 {
				want += 4
			}
			assert.Equal(t, want, f["Spine_y"], "frame %d", i)
		}
	})
}

func TestApplyTwist(t *testing.T) {
	doc := makeDoc(10)
	dw := mathutil.AxisQuat('Y', 90)
	out, err := edit.ApplyOp(doc, edit.Op{
		Op:      edit.OpTwist,
		Frame:   4,
		Start:   []float64{0, 0, 0, 1},
		Current: dw[:],
		Decay:   0,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, doc.Frames[4].Position(), out.Frames[4].Position())
	// (1,0,0) relative offset swings to (0,0,-1) about +Y, landing on z=0
	got := out.Frames[5].Position()
	assert.InDelta(t, 4, got[0], 1e-9)
	assert.InDelta(t, 0, got[2], 1e-9)
	assert.True(t, mathutil.SameRotation(dw, out.Frames[9].Orientation(), 1e-12))
	assert.Equal(t, doc.Frames[2], out.Frames[2])

	t.Run("argument errors", func(t *testing.T) {
		_, err := edit.ApplyOp(doc, edit.Op{Op: edit.OpTwist, Start: []float64{0, 0, 1}, Current: dw[:]}, nil)
		assert.True(t, errors.Is(err, edit.ErrBadArgs))

		_, err = edit.ApplyOp(doc, edit.Op{Op: edit.OpTwist, Frame: 99, Start: []float64{0, 0, 0, 1}, Current: dw[:]}, nil)
		assert.Error(t, err)

		noBase := motion.Document{DOFNames: []string{"knee"}, Frames: []motion.Frame{{"knee": 1}}}
		_, err = edit.ApplyOp(noBase, edit.Op{Op: edit.OpTwist, Start: []float64{0, 0, 0, 1}, Current: dw[:]}, nil)
		assert.True(t, errors.Is(err, edit.ErrNoFloatingBase))
	})
}

func TestApplyTwistEuler(t *testing.T) {
	doc := makeDoc(8)
	out, err := edit.ApplyOp(doc, edit.Op{
		Op:      edit.OpTwistEuler,
		Joint:   "Hips",
		Frame:   2,
		Start:   []float64{0, 2, 0},
		Current: []float64{0, 92, 0},
		Decay:   3,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, doc.Frames[2].Position(), out.Frames[2].Position())
	assert.InDelta(t, 92, out.Frames[2]["Hips_y"], 1e-12)
	assert.InDelta(t, 97, out.Frames[7]["Hips_y"], 1e-12)
	assert.Equal(t, doc.Frames[1], out.Frames[1])
}

func TestApplyTransformPath(t *testing.T) {
	doc := makeDoc(4)
	q := mathutil.AxisQuat('Z', 90)
	out, err := edit.ApplyOp(doc, edit.Op{
		Op:      edit.OpTransformPath,
		Start:   []float64{0, 0, 0, 1},
		Current: q[:],
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, doc.Frames[0].Position(), out.Frames[0].Position())
	got := out.Frames[3].Position()
	assert.InDelta(t, 0, got[0], 1e-9)
	assert.InDelta(t, 3, got[1], 1e-9)
}

func TestApplySetGlobalRotation(t *testing.T) {
	meta := makeMeta(t)
	doc := makeDoc(3)
	target := mathutil.Euler{X: 20, Y: -10, Z: 35}

	out, err := edit.ApplyOp(doc, edit.Op{
		Op:     edit.OpSetGlobalRotation,
		Joint:  "Spine",
		Frame:  1,
		Angles: target,
	}, meta)
	require.NoError(t, err)

	got, err := skeleton.GlobalRotation("Spine", out.Frames[1], meta)
	require.NoError(t, err)
	assert.InDelta(t, target.X, got.X, 1e-7)
	assert.InDelta(t, target.Y, got.Y, 1e-7)
	assert.InDelta(t, target.Z, got.Z, 1e-7)

	_, err = edit.ApplyOp(doc, edit.Op{Op: edit.OpSetGlobalRotation, Joint: "Spine", Frame: 1}, nil)
	assert.True(t, errors.Is(err, skeleton.ErrNoMetadata))

	_, err = edit.ApplyOp(doc, edit.Op{Op: edit.OpSetGlobalRotation, Joint: "Spine", Frame: 7}, meta)
	assert.True(t, errors.Is(err, edit.ErrFrameRange))
}

func TestApplyRejectsUnknownColumns(t *testing.T) {
	doc := makeDoc(4)
	meta := makeMeta(t)

	ops := []edit.Op{
		{Op: edit.OpRipple, Field: "kneee", Frame: 1, Delta: 1},
		{Op: edit.OpRippleEuler, Joint: "Spin", Frame: 1, Angles: mathutil.Euler{X: 5}},
		{Op: edit.OpTwistEuler, Joint: "Tail", Start: []float64{0, 0, 0}, Current: []float64{0, 10, 0}},
		{Op: edit.OpSetGlobalRotation, Joint: "Neck", Frame: 1},
	}
	for _, op := range ops {
		_, err := edit.ApplyOp(doc, op, meta)
		assert.True(t, errors.Is(err, edit.ErrBadArgs), "%s: %v", op.Op, err)
	}

	_, err := edit.Apply(doc, edit.Script{Ops: ops[:2]}, meta)
	assert.ErrorIs(t, err, edit.ErrBadArgs)

	noBase := motion.Document{DOFNames: []string{"Hips_x", "Hips_y", "Hips_z"}, Frames: []motion.Frame{{"Hips_x": 0, "Hips_y": 0, "Hips_z": 0}}}
	_, err = edit.ApplyOp(noBase, edit.Op{Op: edit.OpTwistEuler, Joint: "Hips", Start: []float64{0, 0, 0}, Current: []float64{0, 1, 0}}, nil)
	assert.ErrorIs(t, err, edit.ErrNoFloatingBase)
}

func TestApplyUnknownOp(t *testing.T) {
	_, err := edit.Apply(makeDoc(2), edit.Script{Ops: []edit.Op{{Op: "explode"}}}, nil)
	assert.True(t, errors.Is(err, edit.ErrUnknownOp))
	assert.Contains(t, err.Error(), "op 0")
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	data := `{"name": "lift", "ops": [
		{"op": "ripple", "field": "knee", "frame": 3, "delta": 0.5, "prev": 4, "next": 4},
		{"op": "twist", "frame": 10, "start": [0, 0, 0, 1], "current": [0, 0.3826834, 0, 0.9238795], "decay": 15, "direction": "both"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := edit.LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "lift", s.Name)
	require.Len(t, s.Ops, 2)
	assert.Equal(t, 0.5, s.Ops[0].Delta)
	assert.Equal(t, "both", s.Ops[1].Direction)
	assert.Len(t, s.Ops[1].Current, 4)

	_, err = edit.LoadScript(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestPinFrame(t *testing.T) {
	s := edit.Script{Ops: []edit.Op{
		{Op: edit.OpTwist, Frame: 4},
		{Op: edit.OpRipple, Frame: 9},
	}}
	assert.Equal(t, 4, s.PinFrame())
	assert.Equal(t, -1, edit.Script{Ops: []edit.Op{{Op: edit.OpRipple, Frame: 2}}}.PinFrame())
}
