package motion

import (
	"math"
	"slices"

	"mocap-kinematics/internal/mathutil"
)

// Raw is the compact matrix form: one row per frame, one column per scalar.
// The floating base occupies seven consecutive columns (x y z qx qy qz qw).
type Raw struct {
	DOFNames []string    `json:"dof_names"`
	FPS      float64     `json:"fps,omitempty"`
	Frames   [][]float64 `json:"frames"`
}

// Document is the keyed form used while editing.
type Document struct {
	DOFNames []string
	FPS      float64
	Frames   []Frame
}

// Columns returns the expanded field names in column order.
func Columns(dofNames []string) []string {
	cols := make([]string, 0, len(dofNames)+6)
	for _, name := range dofNames {
		if name == FloatingBase {
			cols = append(cols, BaseFields...)
			continue
		}
		cols = append(cols, name)
	}
	return cols
}

// HasFloatingBase reports whether the document carries a root pose.
func (d Document) HasFloatingBase() bool {
	return slices.Contains(d.DOFNames, FloatingBase)
}

// Parse expands every row of raw into a Frame. The root quaternion is renormalized.
// Short rows yield NaN for the missing columns.
func Parse(raw Raw) Document {
	cols := Columns(raw.DOFNames)
	hasBase := slices.Contains(raw.DOFNames, FloatingBase)
	frames := make([]Frame, len(raw.Frames))

	for i, row := range raw.Frames {
		f := make(Frame, len(cols))
		for c, name := range cols {
			if c < len(row) {
				f[name] = row[c]
			} else {
				f[name] = math.NaN()
			}
		}
		if hasBase {
			f.SetOrientation(mathutil.Normalize(mathutil.Quat{
				f[FieldQuaterX], f[FieldQuaterY], f[FieldQuaterZ], f[FieldQuaterW],
			}))
		}
		frames[i] = f
	}

	return Document{
		DOFNames: slices.Clone(raw.DOFNames),
		FPS:      raw.FPS,
		Frames:   frames,
	}
}

// Unparse collapses frames back into rows following doc.DOFNames.
// A field missing from a frame is written as NaN; WriteFile rejects those.
func Unparse(doc Document) Raw {
	cols := Columns(doc.DOFNames)
	rows := make([][]float64, len(doc.Frames))

	for i, f := range doc.Frames {
		row := make([]float64, len(cols))
		for c, name := range cols {
			v, ok := f[name]
			if !ok {
				v = math.NaN()
			}
			row[c] = v
		}
		rows[i] = row
	}

	return Raw{
		DOFNames: slices.Clone(doc.DOFNames),
		FPS:      doc.FPS,
		Frames:   rows,
	}
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	return Document{
		DOFNames: slices.Clone(d.DOFNames),
		FPS:      d.FPS,
		Frames:   CloneFrames(d.Frames),
	}
}
