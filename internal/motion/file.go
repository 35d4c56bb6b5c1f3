package motion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrMissingField reports a non-finite value on write, usually a field absent from a frame.
var ErrMissingField = errors.New("motion: missing or non-finite field")

// Decode reads a Raw document from JSON.
func Decode(r io.Reader) (Raw, error) {
	var raw Raw
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Raw{}, fmt.Errorf("motion: decode: %w", err)
	}
	return raw, nil
}

// Encode writes raw as indented JSON after checking every value is finite.
func Encode(w io.Writer, raw Raw) error {
	cols := Columns(raw.DOFNames)
	for i, row := range raw.Frames {
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				name := "?"
				if c < len(cols) {
					name = cols[c]
				}
				return fmt.Errorf("%w: frame %d field %s", ErrMissingField, i, name)
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("motion: encode: %w", err)
	}
	return nil
}

// ReadFile loads and parses a motion JSON file.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("motion: read %s: %w", path, err)
	}
	defer f.Close()

	raw, err := Decode(f)
	if err != nil {
		return Document{}, fmt.Errorf("motion: read %s: %w", path, err)
	}
	return Parse(raw), nil
}

// WriteFile unparses doc and writes it to path. Nothing is written when
// encoding fails.
func WriteFile(path string, doc Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, Unparse(doc)); err != nil {
		return fmt.Errorf("motion: write %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("motion: write %s: %w", path, err)
	}
	return nil
}
