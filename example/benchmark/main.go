package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/akmonengine/animtransfer"
	"github.com/akmonengine/animtransfer/linalg"
	"github.com/akmonengine/animtransfer/memhost"
	"github.com/go-gl/mathgl/mgl64"
)

// limb describes a chain hanging from the pelvis
type limb struct {
	name   string
	length int
	axis   mgl64.Vec3
}

var limbs = []limb{
	{"spine", 4, mgl64.Vec3{1, 0, 0}},
	{"leftLeg", 3, mgl64.Vec3{0, 0, 1}},
	{"rightLeg", 3, mgl64.Vec3{0, 0, 1}},
}

// buildSource creates an animated source rig keyed on frames [0, frames)
func buildSource(scene *memhost.Scene, frames int) *memhost.Joint {
	root := scene.AddJoint("pelvis", nil, memhost.NewPose())
	for f := 0; f < frames; f++ {
		t := float64(f) / float64(frames)
		pose := memhost.NewPose()
		pose.Rotation = mgl64.QuatRotate(0.2*math.Sin(2*math.Pi*t), mgl64.Vec3{0, 1, 0}).Mat4()
		pose.Translation = mgl64.Vec3{0, 1 + 0.05*math.Sin(4*math.Pi*t), t}
		scene.SetKey(root, f, pose)
	}

	for l, part := range limbs {
		parent := root
		for j := 0; j < part.length; j++ {
			rest := memhost.NewPose()
			rest.Rotation = memhost.Rotate(0.1*float64(j), 0, 0.05*float64(l))
			rest.Translation = mgl64.Vec3{0, 0.3, 0}
			joint := scene.AddJoint(fmt.Sprintf("%s%d", part.name, j), parent, rest)

			for f := 0; f < frames; f++ {
				t := float64(f) / float64(frames)
				pose := rest
				swing := mgl64.QuatRotate(0.5*math.Sin(2*math.Pi*t+float64(j)), part.axis).Mat4()
				pose.Rotation = swing.Mul4(rest.Rotation)
				scene.SetKey(joint, f, pose)
			}
			parent = joint
		}
	}

	return root
}

// buildTarget duplicates the source in its bind pose and tilts every joint orient
func buildTarget(scene *memhost.Scene, source *memhost.Joint) (*memhost.Joint, error) {
	if err := scene.SetCurrentFrame(0); err != nil {
		return nil, err
	}
	target, err := scene.Duplicate(source, "target_", nil)
	if err != nil {
		return nil, err
	}

	var tilt func(joint *memhost.Joint, depth int) error
	tilt = func(joint *memhost.Joint, depth int) error {
		pose := scene.Pose(joint)
		pose.Orientation = memhost.Rotate(0, 0.1*float64(depth), 0)
		scene.SetPose(joint, pose)

		children, err := joint.Children()
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := tilt(child.(*memhost.Joint), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	return target, tilt(target, 0)
}

func main() {
	runs := flag.Int("runs", 2, "number of transfers to time")
	frames := flag.Int("frames", 120, "animated frames on the source rig")
	output := flag.String("out", "animtransfer_times.txt", "file receiving one duration per line")
	backend := flag.String("backend", "mathgl", "matrix backend: mathgl or gonum")
	workers := flag.Int("workers", 1, "goroutines used for the per-joint matrix work")
	flag.Parse()

	var algebra linalg.Algebra
	switch *backend {
	case "mathgl":
		algebra = linalg.MathGL{}
	case "gonum":
		algebra = linalg.Gonum{}
	default:
		log.Fatalf("unknown backend %q", *backend)
	}

	scene := memhost.New()
	source := buildSource(scene, *frames)
	target, err := buildTarget(scene, source)
	if err != nil {
		log.Fatalf("build target: %v", err)
	}

	file, err := os.OpenFile(*output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("open %s: %v", *output, err)
	}
	defer file.Close()

	transfer := animtransfer.Transfer{Algebra: algebra, Workers: *workers}
	transfer.Events.Subscribe(animtransfer.JOINT_SKIPPED, func(event animtransfer.Event) {
		log.Printf("skipped: %v", event.(animtransfer.JointSkippedEvent).Err)
	})

	for i := 0; i < *runs; i++ {
		start := time.Now()
		report, err := transfer.Run(scene, source, target)
		elapsed := time.Since(start)
		if err != nil {
			log.Fatalf("run %d: %v", i, err)
		}

		if _, err := fmt.Fprintf(file, "%f\n", elapsed.Seconds()); err != nil {
			log.Fatalf("write %s: %v", *output, err)
		}
		log.Printf("run %d: %d frames, %d joints, %d skipped in %s", i, report.Frames, report.Joints, len(report.Skipped), elapsed)
	}
}
