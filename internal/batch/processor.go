package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"mocap-kinematics/internal/edit"
	"mocap-kinematics/internal/motion"
	"mocap-kinematics/internal/preview"
	"mocap-kinematics/internal/skeleton"
)

// Config holds all shared resources for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Script    edit.Script
	Skeleton  *skeleton.Metadata // may be nil when no op needs FK

	Preview        bool
	PreviewOptions preview.Options

	Workers int
	Log     logrus.FieldLogger
}

// Result holds the outcome of processing one motion file.
type Result struct {
	File    string // path relative to InputDir
	Frames  int
	Preview string // path relative to OutputDir, empty when none was written
	Success bool
	Error   string
}

// ListMotions returns the .json files under dir, relative and sorted.
func ListMotions(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: list %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// Run processes all files using a worker pool. A failing file is reported in
// its Result and never stops the batch.
func Run(cfg Config, files []string) []Result {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	workers := max(cfg.Workers, 1)

	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.WithFields(logrus.Fields{
						"done":  p,
						"total": total,
						"rate":  fmt.Sprintf("%.1f files/sec", float64(p)/elapsed),
					}).Info("progress")
				}
			}
		}
	}()

	// Worker pool
	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				t0 := time.Now()
				r := processFile(cfg, files[idx])
				entry := log.WithFields(logrus.Fields{
					"file":    r.File,
					"frames":  r.Frames,
					"elapsed": time.Since(t0),
				})
				if r.Success {
					entry.Debug("edited")
				} else {
					entry.WithField("error", r.Error).Warn("failed")
				}
				results[idx] = r
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, rel string) Result {
	res := Result{File: rel}

	doc, err := motion.ReadFile(filepath.Join(cfg.InputDir, rel))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Frames = len(doc.Frames)

	edited, err := edit.Apply(doc, cfg.Script, cfg.Skeleton)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	outPath := filepath.Join(cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := motion.WriteFile(outPath, edited); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Preview && doc.HasFloatingBase() {
		opts := cfg.PreviewOptions
		opts.Pin = cfg.Script.PinFrame()
		img, err := preview.Plot(motion.RootTrajectory(doc.Frames), motion.RootTrajectory(edited.Frames), opts)
		if err != nil {
			res.Error = fmt.Sprintf("preview: %v", err)
			return res
		}
		previewRel := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".webp"
		if err := preview.WriteWebP(filepath.Join(cfg.OutputDir, previewRel), img); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Preview = previewRel
	}

	res.Success = true
	return res
}
