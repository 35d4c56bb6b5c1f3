package skeleton

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"mocap-kinematics/internal/mathutil"
)

var (
	ErrNoMetadata     = errors.New("skeleton: no metadata")
	ErrJointNotFound  = errors.New("skeleton: joint not found")
	ErrCycle          = errors.New("skeleton: parent cycle")
	ErrBadParent      = errors.New("skeleton: parent index out of range")
	ErrNoRoot         = errors.New("skeleton: no root joint")
	ErrMultipleRoots  = errors.New("skeleton: more than one root joint")
	ErrDuplicateJoint = errors.New("skeleton: duplicate joint name")
)

// Joint holds the static description of one joint in the hierarchy.
type Joint struct {
	Name   string                 `json:"name"`
	Parent int                    `json:"parent"` // -1 for the root
	Offset mathutil.Vec3          `json:"offset"`
	Order  mathutil.RotationOrder `json:"rotation_order"`
}

// Metadata is an immutable joint hierarchy with name lookup.
type Metadata struct {
	joints []Joint
	exact  map[string]int
	folded map[string]int
}

// normalizeName folds case and width and drops separators so that
// "Left_Arm", "leftarm" and "LEFT-ARM" resolve to the same joint.
func normalizeName(name string) string {
	// Casers carry state; a fresh one keeps lookups goroutine-safe.
	s := cases.Fold().String(norm.NFKC.String(strings.TrimSpace(name)))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, s)
}

// New validates joints and builds the lookup tables.
// Exactly one joint is the root (parent -1); every joint must reach it
// without revisiting a joint.
func New(joints []Joint) (*Metadata, error) {
	m := &Metadata{
		joints: make([]Joint, len(joints)),
		exact:  make(map[string]int, len(joints)),
		folded: make(map[string]int, len(joints)),
	}

	roots := 0
	for i, j := range joints {
		order, err := mathutil.ParseOrder(string(j.Order))
		if err != nil {
			return nil, fmt.Errorf("skeleton: joint %q: %w", j.Name, err)
		}
		j.Order = order

		if j.Parent == -1 {
			roots++
		} else if j.Parent < 0 || j.Parent >= len(joints) {
			return nil, fmt.Errorf("%w: joint %q parent %d", ErrBadParent, j.Name, j.Parent)
		}

		if _, dup := m.exact[j.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateJoint, j.Name)
		}
		m.exact[j.Name] = i
		key := normalizeName(j.Name)
		if _, taken := m.folded[key]; !taken {
			m.folded[key] = i
		}
		m.joints[i] = j
	}

	switch {
	case len(joints) > 0 && roots == 0:
		return nil, ErrNoRoot
	case roots > 1:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleRoots, roots)
	}

	for i := range m.joints {
		if _, err := m.Chain(i); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Len returns the number of joints.
func (m *Metadata) Len() int {
	return len(m.joints)
}

// Joint returns joint i.
func (m *Metadata) Joint(i int) Joint {
	return m.joints[i]
}

// Names returns joint names in index order.
func (m *Metadata) Names() []string {
	names := make([]string, len(m.joints))
	for i, j := range m.joints {
		names[i] = j.Name
	}
	return names
}

// Index resolves a joint name, first exactly and then by normalized name.
func (m *Metadata) Index(name string) (int, bool) {
	if m == nil {
		return -1, false
	}
	if i, ok := m.exact[name]; ok {
		return i, true
	}
	if i, ok := m.folded[normalizeName(name)]; ok {
		return i, true
	}
	return -1, false
}

// Chain returns joint indices from the root down to i, inclusive.
func (m *Metadata) Chain(i int) ([]int, error) {
	if i < 0 || i >= len(m.joints) {
		return nil, fmt.Errorf("%w: index %d", ErrJointNotFound, i)
	}

	var chain []int
	for cur, steps := i, 0; cur != -1; cur, steps = m.joints[cur].Parent, steps+1 {
		if steps > len(m.joints) {
			return nil, fmt.Errorf("%w: at joint %q", ErrCycle, m.joints[i].Name)
		}
		chain = append(chain, cur)
	}

	// collected joint→root; flip to root→joint
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain, nil
}

// File is the on-disk JSON shape of a skeleton.
type File struct {
	Joints []Joint `json:"joints"`
}

// Load reads a skeleton JSON file.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skeleton: read %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("skeleton: parse %s: %w", path, err)
	}

	m, err := New(f.Joints)
	if err != nil {
		return nil, fmt.Errorf("skeleton: %s: %w", path, err)
	}
	return m, nil
}
