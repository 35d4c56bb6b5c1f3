package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"mocap-kinematics/internal/batch"
	"mocap-kinematics/internal/config"
	"mocap-kinematics/internal/edit"
	"mocap-kinematics/internal/preview"
	"mocap-kinematics/internal/skeleton"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Edit only first N motion files for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	inputDir := flag.String("input", "", "Input directory (default: <base>/motions)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/motions-edited)")
	scriptPath := flag.String("script", "", "Edit script JSON")
	skeletonPath := flag.String("skeleton", "", "Skeleton metadata JSON")
	withPreview := flag.Bool("preview", false, "Write a WebP trajectory preview per file")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.WithError(err).Fatal("loading config")
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Script:    *scriptPath,
		Skeleton:  *skeletonPath,
		Preview:   *withPreview,
		Workers:   *workers,
	})

	if cfg.Script == "" {
		fmt.Fprintln(os.Stderr, "Error: no edit script. Use -script flag or config.json.")
		os.Exit(1)
	}

	script, err := edit.LoadScript(cfg.Script)
	if err != nil {
		log.WithError(err).Fatal("loading script")
	}

	var meta *skeleton.Metadata
	if cfg.Skeleton != "" {
		meta, err = skeleton.Load(cfg.Skeleton)
		if err != nil {
			log.WithError(err).Fatal("loading skeleton")
		}
		log.WithField("joints", meta.Len()).Debug("skeleton loaded")
	}

	opts := preview.DefaultOptions()
	opts.Size = cfg.PreviewSize
	opts.Supersample = cfg.Supersample
	if cfg.Backdrop != "" {
		bg, err := preview.LoadBackdrop(cfg.Backdrop)
		if err != nil {
			log.WithError(err).Warn("backdrop ignored")
		} else {
			opts.Backdrop = bg
		}
	}

	files, err := batch.ListMotions(cfg.InputDir)
	if err != nil {
		log.WithError(err).Fatal("listing motions")
	}

	// Limit for testing
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}

	if len(files) == 0 {
		fmt.Println("No motion files to edit.")
		os.Exit(0)
	}

	// Print summary
	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Motion edit %q: %d ops%s\n", script.Name, len(script.Ops), mode)
	fmt.Printf("Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		InputDir:       cfg.InputDir,
		OutputDir:      cfg.OutputDir,
		Script:         script,
		Skeleton:       meta,
		Preview:        cfg.Preview,
		PreviewOptions: opts,
		Workers:        cfg.Workers,
		Log:            log,
	}, files)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Processed: %d/%d\n", success, len(files))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, batch.NewManifest(script.Name, results)); err != nil {
		log.WithError(err).Warn("manifest write failed")
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
