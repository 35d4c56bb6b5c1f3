package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ManifestEntry represents one file in the output manifest.
type ManifestEntry struct {
	File    string `json:"file"`
	Frames  int    `json:"frames"`
	Preview string `json:"preview,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Manifest summarizes a batch run.
type Manifest struct {
	Script    string          `json:"script,omitempty"`
	Generated time.Time       `json:"generated"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Files     []ManifestEntry `json:"files"`
}

// NewManifest builds a manifest from batch results.
func NewManifest(script string, results []Result) Manifest {
	m := Manifest{
		Script:    script,
		Generated: time.Now().UTC(),
		Files:     make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Files[i] = ManifestEntry{
			File:    filepath.ToSlash(r.File),
			Frames:  r.Frames,
			Preview: filepath.ToSlash(r.Preview),
			Error:   r.Error,
		}
		if r.Success {
			m.Succeeded++
		} else {
			m.Failed++
		}
	}
	return m
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
