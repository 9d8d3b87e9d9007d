package skeleton

import "github.com/go-gl/mathgl/mgl64"

// Node is any element of the host scene graph.
type Node interface {
	Name() string
	// Parent returns nil for a top-level node
	Parent() (Node, error)
	// Children are returned in the host's native order
	Children() ([]Node, error)
}

// Joint is a Node carrying a local rotation, a fixed orientation offset (joint orient)
// and a translation. Rotation and orientation are exchanged as 4x4 matrices, column-vector convention.
type Joint interface {
	Node

	Rotation() (mgl64.Mat4, error)
	SetRotation(rotation mgl64.Mat4) error

	Orientation() (mgl64.Mat4, error)
	SetOrientation(orientation mgl64.Mat4) error

	Translation() (mgl64.Vec3, error)
	SetTranslation(translation mgl64.Vec3) error
}

// Timeline is the shared time cursor of the host and its keyframe store.
type Timeline interface {
	SetCurrentFrame(frame int) error
	// KeyframeCount returns the raw number of keys set on the joint, all channels included
	KeyframeCount(joint Joint) (int, error)
	// RecordKeyframe keys every channel of the joint at the current frame
	RecordKeyframe(joint Joint) error
}

// Host is the scene graph the retargeting engine drives.
type Host interface {
	Timeline
	// JointCount returns the number of joints in the whole scene
	JointCount() (int, error)
}

// AsJoint reports whether the node has the joint capability.
func AsJoint(node Node) (Joint, bool) {
	if node == nil {
		return nil, false
	}
	joint, ok := node.(Joint)

	return joint, ok
}
