package edit

import (
	"encoding/json"
	"fmt"
	"os"

	"mocap-kinematics/internal/mathutil"
)

// Operation names.
const (
	OpRipple            = "ripple"
	OpRippleEuler       = "ripple_euler"
	OpTwist             = "twist"
	OpTwistEuler        = "twist_euler"
	OpTransformPath     = "transform_path"
	OpSetGlobalRotation = "set_global_rotation"
)

// Op is one scripted edit. Which fields matter depends on Op.
type Op struct {
	Op    string `json:"op"`
	Field string `json:"field,omitempty"` // ripple
	Joint string `json:"joint,omitempty"` // ripple_euler, twist_euler, set_global_rotation
	Frame int    `json:"frame"`

	Delta  float64        `json:"delta,omitempty"` // ripple
	Angles mathutil.Euler `json:"angles"`          // ripple_euler delta, set_global_rotation target

	Prev     int    `json:"prev,omitempty"`
	Next     int    `json:"next,omitempty"`
	PrevMode string `json:"prev_mode,omitempty"`
	NextMode string `json:"next_mode,omitempty"`

	// Start and Current hold [x y z w] for quaternion ops or [x y z] degrees for twist_euler.
	Start     []float64 `json:"start,omitempty"`
	Current   []float64 `json:"current,omitempty"`
	Decay     int       `json:"decay,omitempty"`
	Direction string    `json:"direction,omitempty"`
}

// Script is an ordered list of edits.
type Script struct {
	Name string `json:"name,omitempty"`
	Ops  []Op   `json:"ops"`
}

// LoadScript reads a JSON edit script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("edit: read %s: %w", path, err)
	}

	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("edit: parse %s: %w", path, err)
	}
	return s, nil
}

// PinFrame returns the frame of the last twist or path edit, or -1.
func (s Script) PinFrame() int {
	for i := len(s.Ops) - 1; i >= 0; i-- {
		switch s.Ops[i].Op {
		case OpTwist, OpTwistEuler, OpTransformPath:
			return s.Ops[i].Frame
		}
	}
	return -1
}
