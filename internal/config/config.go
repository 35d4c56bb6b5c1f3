package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and batch settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	Script    string `json:"script"`
	Skeleton  string `json:"skeleton"`
	Backdrop  string `json:"backdrop"`

	// Preview settings; previews are lossless WebP
	Preview     bool `json:"preview"`
	PreviewSize int  `json:"preview_size"`
	Supersample int  `json:"supersample"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	InputDir  string
	OutputDir string
	Script    string
	Skeleton  string
	Preview   bool
	Workers   int
}

// Resolve applies flag overrides, resolves relative paths against BaseDir
// and fills in defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Script != "" {
		c.Script = flags.Script
	}
	if flags.Skeleton != "" {
		c.Skeleton = flags.Skeleton
	}
	if flags.Preview {
		c.Preview = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	if c.InputDir == "" {
		c.InputDir = filepath.Join(c.BaseDir, "motions")
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "motions-edited")
	}
	c.InputDir = c.abs(c.InputDir)
	c.OutputDir = c.abs(c.OutputDir)
	c.Script = c.abs(c.Script)
	c.Skeleton = c.abs(c.Skeleton)
	c.Backdrop = c.abs(c.Backdrop)

	// Defaults for preview settings
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// abs resolves p against BaseDir; empty stays empty.
func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
