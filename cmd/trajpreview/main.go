package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"mocap-kinematics/internal/edit"
	"mocap-kinematics/internal/motion"
	"mocap-kinematics/internal/preview"
	"mocap-kinematics/internal/skeleton"
)

func main() {
	scriptPath := flag.String("script", "", "Edit script JSON")
	skeletonPath := flag.String("skeleton", "", "Skeleton metadata JSON (needed by FK ops)")
	output := flag.String("o", "preview.webp", "Output WebP path")
	size := flag.Int("size", 512, "Image size in pixels")
	supersample := flag.Int("ss", 2, "Supersample factor")
	backdrop := flag.String("backdrop", "", "Optional JPEG/PNG/TGA backdrop")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *scriptPath == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: trajpreview -script edit.json [-skeleton skel.json] [-o out.webp] motion.json")
		os.Exit(2)
	}

	log := logrus.WithField("motion", flag.Arg(0))

	doc, err := motion.ReadFile(flag.Arg(0))
	if err != nil {
		log.WithError(err).Fatal("loading motion")
	}
	if !doc.HasFloatingBase() {
		log.Fatal("motion has no floating base to plot")
	}

	script, err := edit.LoadScript(*scriptPath)
	if err != nil {
		log.WithError(err).Fatal("loading script")
	}

	var meta *skeleton.Metadata
	if *skeletonPath != "" {
		if meta, err = skeleton.Load(*skeletonPath); err != nil {
			log.WithError(err).Fatal("loading skeleton")
		}
	}

	edited, err := edit.Apply(doc, script, meta)
	if err != nil {
		log.WithError(err).Fatal("applying script")
	}
	log.WithFields(logrus.Fields{"frames": len(doc.Frames), "ops": len(script.Ops)}).Debug("edited")

	opts := preview.Options{Size: *size, Supersample: *supersample, Pin: script.PinFrame()}
	if *backdrop != "" {
		bg, err := preview.LoadBackdrop(*backdrop)
		if err != nil {
			log.WithError(err).Fatal("loading backdrop")
		}
		opts.Backdrop = bg
	}

	img, err := preview.Plot(motion.RootTrajectory(doc.Frames), motion.RootTrajectory(edited.Frames), opts)
	if err != nil {
		log.WithError(err).Fatal("plotting")
	}
	if err := preview.WriteWebP(*output, img); err != nil {
		log.WithError(err).Fatal("writing preview")
	}
	fmt.Printf("Preview: %s\n", *output)
}
