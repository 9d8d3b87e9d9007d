package animtransfer

import (
	"math"
	"testing"

	"github.com/akmonengine/animtransfer/memhost"
	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-5

func mat4AlmostEqual(a, b mgl64.Mat4, epsilon float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func assertMat4(t *testing.T, label string, got, want mgl64.Mat4) {
	t.Helper()
	if !mat4AlmostEqual(got, want, tolerance) {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

func pose(rotation, orientation mgl64.Mat4) memhost.Pose {
	return memhost.Pose{Rotation: rotation, Orientation: orientation}
}

// rig is a source skeleton root -> spine -> chest, root -> leg, keyed on [0, frames)
type rig struct {
	scene  *memhost.Scene
	source []*memhost.Joint
	target []*memhost.Joint
}

func swing(frame, joint int) mgl64.Mat4 {
	return memhost.Rotate(0.1*float64(frame), 0.05*float64(joint*frame), -0.07*float64(frame))
}

func newRig(t *testing.T, frames int) *rig {
	t.Helper()
	scene := memhost.New()

	root := scene.AddJoint("root", nil, memhost.NewPose())
	spine := scene.AddJoint("spine", root, pose(memhost.Rotate(0.3, 0, 0), memhost.Rotate(0, 0, 0.2)))
	chest := scene.AddJoint("chest", spine, pose(memhost.Rotate(0, 0.4, 0), memhost.Rotate(0.1, 0, 0)))
	leg := scene.AddJoint("leg", root, pose(memhost.Rotate(0, 0, -0.5), memhost.Rotate(0, 0.3, 0)))
	joints := []*memhost.Joint{root, spine, chest, leg}

	for f := 0; f < frames; f++ {
		rootPose := memhost.NewPose()
		rootPose.Rotation = memhost.Rotate(0, 0.2*float64(f), 0)
		rootPose.Orientation = memhost.Rotate(0.01*float64(f), 0, 0)
		rootPose.Translation = mgl64.Vec3{float64(f), 1, -float64(f) / 2}
		scene.SetKey(root, f, rootPose)

		for i, joint := range joints[1:] {
			p := scene.Pose(joint)
			p.Rotation = swing(f, i+1).Mul4(p.Rotation)
			scene.SetKey(joint, f, p)
		}
	}

	return &rig{scene: scene, source: joints}
}

// duplicate builds the target as a copy of the source at frame 0, then applies edit to each target joint pose
func (r *rig) duplicate(t *testing.T, edit func(i int, p *memhost.Pose)) {
	t.Helper()
	if err := r.scene.SetCurrentFrame(0); err != nil {
		t.Fatalf("SetCurrentFrame() error = %v", err)
	}
	root, err := r.scene.Duplicate(r.source[0], "t_", nil)
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}

	hierarchy, err := Walk(root, -1)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	r.target = make([]*memhost.Joint, len(hierarchy))
	for i, entry := range hierarchy {
		r.target[i] = entry.Joint.(*memhost.Joint)
		if edit != nil {
			p := r.scene.Pose(r.target[i])
			edit(i, &p)
			r.scene.SetPose(r.target[i], p)
		}
	}
}

func (r *rig) key(t *testing.T, joint *memhost.Joint, frame int) memhost.Pose {
	t.Helper()
	p, ok := r.scene.Key(joint, frame)
	if !ok {
		t.Fatalf("no key on %s", joint.Name())
	}
	return p
}
