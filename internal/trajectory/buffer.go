package trajectory

import (
	"errors"
	"fmt"
)

var (
	ErrBufferShape      = errors.New("trajectory: malformed buffer")
	ErrFrameOutOfRange  = errors.New("trajectory: start frame out of range")
	ErrNegativeDecay    = errors.New("trajectory: negative decay distance")
	ErrUnknownDirection = errors.New("trajectory: unknown direction")
)

// Column counts of the two buffer layouts.
const (
	QuatColumns  = 7 // x y z qx qy qz qw
	EulerColumns = 6 // x y z rx ry rz
)

// validate checks that buf has want equal-length columns and returns the frame count.
func validate(buf [][]float64, want int) (int, error) {
	if len(buf) != want {
		return 0, fmt.Errorf("%w: expected %d arrays, got %d", ErrBufferShape, want, len(buf))
	}
	n := len(buf[0])
	for c, col := range buf {
		if len(col) != n {
			return 0, fmt.Errorf("%w: array %d has %d frames, expected %d", ErrBufferShape, c, len(col), n)
		}
	}
	return n, nil
}

func cloneBuffer(buf [][]float64) [][]float64 {
	out := make([][]float64, len(buf))
	for c, col := range buf {
		out[c] = make([]float64, len(col))
		copy(out[c], col)
	}
	return out
}

// Direction selects which side of the pinned frame a twist propagates to.
type Direction int

const (
	Forward Direction = iota
	Backward
	Both
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps "forward", "backward" and "both"; empty means forward.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	case "both":
		return Both, nil
	}
	return Forward, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// sides returns the step signs a direction covers: +1 forward, -1 backward.
func (d Direction) sides() []int {
	switch d {
	case Backward:
		return []int{-1}
	case Both:
		return []int{1, -1}
	default:
		return []int{1}
	}
}

func checkArgs(start, n, decay int, dir Direction) error {
	if start < 0 || start >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, start, n)
	}
	if decay < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDecay, decay)
	}
	if dir < Forward || dir > Both {
		return fmt.Errorf("%w: %v", ErrUnknownDirection, dir)
	}
	return nil
}
