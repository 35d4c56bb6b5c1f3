package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"mocap-kinematics/internal/mathutil"
	"mocap-kinematics/internal/motion"
	"mocap-kinematics/internal/skeleton"
)

func main() {
	skeletonPath := flag.String("skeleton", "", "Skeleton metadata JSON")
	frameIdx := flag.Int("frame", 0, "Frame to inspect")
	joint := flag.String("joint", "", "Only print this joint")
	flag.Parse()

	if *skeletonPath == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: fkinspect -skeleton skel.json [-frame N] [-joint name] motion.json")
		os.Exit(2)
	}

	log := logrus.WithField("motion", flag.Arg(0))

	meta, err := skeleton.Load(*skeletonPath)
	if err != nil {
		log.WithError(err).Fatal("loading skeleton")
	}
	doc, err := motion.ReadFile(flag.Arg(0))
	if err != nil {
		log.WithError(err).Fatal("loading motion")
	}
	if *frameIdx < 0 || *frameIdx >= len(doc.Frames) {
		log.WithField("frames", len(doc.Frames)).Fatalf("frame %d out of range", *frameIdx)
	}
	frame := doc.Frames[*frameIdx]

	positions, err := skeleton.WorldPositions(frame, meta)
	if err != nil {
		log.WithError(err).Fatal("world positions")
	}

	fmt.Printf("Frames: %d, FPS: %.1f, Joints: %d\n", len(doc.Frames), doc.FPS, meta.Len())
	if doc.HasFloatingBase() {
		p, q := frame.Position(), frame.Orientation()
		fmt.Printf("Root: pos=(%.3f, %.3f, %.3f) quat=(%.4f, %.4f, %.4f, %.4f)\n",
			p[0], p[1], p[2], q[0], q[1], q[2], q[3])
	}
	fmt.Printf("Frame %d\n", *frameIdx)

	for i, name := range meta.Names() {
		if *joint != "" {
			if idx, ok := meta.Index(*joint); !ok || idx != i {
				continue
			}
		}
		j := meta.Joint(i)
		local := frame.Euler(j.Name)
		global, err := skeleton.GlobalRotation(j.Name, frame, meta)
		if err != nil {
			fmt.Printf("  %s: %v\n", name, err)
			continue
		}
		pos := positions[i]
		fmt.Printf("  %-20s order=%s local=%s global=%s world=(%.3f, %.3f, %.3f)\n",
			name, j.Order, fmtEuler(local), fmtEuler(global), pos[0], pos[1], pos[2])
	}
}

func fmtEuler(e mathutil.Euler) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", e.X, e.Y, e.Z)
}
