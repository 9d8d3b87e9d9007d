package memhost

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/petar/GoLLRB/llrb"
)

// CHANNEL_COUNT is the number of keyable channels per joint:
// translate xyz, rotate xyz, scale xyz and visibility
const CHANNEL_COUNT = 10

// Pose holds the keyable state of a joint
type Pose struct {
	Rotation    mgl64.Mat4
	Orientation mgl64.Mat4
	Translation mgl64.Vec3
}

// NewPose creates an identity pose
func NewPose() Pose {
	return Pose{
		Rotation:    mgl64.Ident4(),
		Orientation: mgl64.Ident4(),
	}
}

type key struct {
	frame int
	pose  Pose
}

func (k key) Less(than llrb.Item) bool {
	return k.frame < than.(key).frame
}

// curve stores the keys of one joint ordered by frame
type curve struct {
	tree *llrb.LLRB
}

func newCurve() *curve {
	return &curve{tree: llrb.New()}
}

func (c *curve) set(frame int, pose Pose) {
	c.tree.ReplaceOrInsert(key{frame: frame, pose: pose})
}

func (c *curve) len() int {
	return c.tree.Len()
}

// sample returns the last key at or before frame, holding the first key before the curve starts
func (c *curve) sample(frame int) (Pose, bool) {
	if c.tree.Len() == 0 {
		return Pose{}, false
	}

	var found *key
	c.tree.DescendLessOrEqual(key{frame: frame}, func(item llrb.Item) bool {
		k := item.(key)
		found = &k
		return false
	})
	if found == nil {
		return c.tree.Min().(key).pose, true
	}

	return found.pose, true
}

// frames lists keyed frames in ascending order
func (c *curve) frames() []int {
	frames := make([]int, 0, c.tree.Len())
	if c.tree.Len() == 0 {
		return frames
	}
	c.tree.AscendGreaterOrEqual(c.tree.Min(), func(item llrb.Item) bool {
		frames = append(frames, item.(key).frame)
		return true
	})

	return frames
}
