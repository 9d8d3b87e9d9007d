package memhost

import (
	"fmt"

	"github.com/akmonengine/animtransfer/skeleton"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tiendc/go-deepcopy"
)

// Op identifies a host call, used by fault hooks
type Op uint8

const (
	OP_SET_FRAME Op = iota
	OP_KEYFRAME_COUNT
	OP_RECORD_KEYFRAME
	OP_READ
	OP_WRITE
	OP_PARENT
	OP_CHILDREN
)

// FaultHook is called before every host call; a non-nil error fails the call
type FaultHook func(op Op, node string, frame int) error

type nodeData struct {
	Name     string
	IsJoint  bool
	Parent   int
	Children []int
	Pose     Pose
}

// Scene is an in-memory scene graph with a single time cursor and per-joint keyframe curves.
// It implements skeleton.Host.
type Scene struct {
	nodes  []nodeData
	curves map[int]*curve
	frame  int

	Fault FaultHook
}

var _ skeleton.Host = (*Scene)(nil)

// New creates an empty scene
func New() *Scene {
	return &Scene{
		nodes:  make([]nodeData, 0, 64),
		curves: make(map[int]*curve),
	}
}

func (s *Scene) fault(op Op, id int) error {
	if s.Fault == nil {
		return nil
	}
	name := ""
	if id >= 0 {
		name = s.nodes[id].Name
	}

	return s.Fault(op, name, s.frame)
}

func (s *Scene) add(name string, parent skeleton.Node, isJoint bool, pose Pose) int {
	parentID := idOf(parent)
	id := len(s.nodes)
	s.nodes = append(s.nodes, nodeData{
		Name:    name,
		IsJoint: isJoint,
		Parent:  parentID,
		Pose:    pose,
	})
	if parentID >= 0 {
		s.nodes[parentID].Children = append(s.nodes[parentID].Children, id)
	}

	return id
}

// AddJoint creates a joint under parent; parent may be nil
func (s *Scene) AddJoint(name string, parent skeleton.Node, pose Pose) *Joint {
	return &Joint{Node{scene: s, id: s.add(name, parent, true, pose)}}
}

// AddGroup creates a plain transform node which is not a joint
func (s *Scene) AddGroup(name string, parent skeleton.Node) *Node {
	return &Node{scene: s, id: s.add(name, parent, false, NewPose())}
}

// SetKey authors a key directly, without moving the time cursor
func (s *Scene) SetKey(joint *Joint, frame int, pose Pose) {
	c, ok := s.curves[joint.id]
	if !ok {
		c = newCurve()
		s.curves[joint.id] = c
	}
	c.set(frame, pose)
}

// Key returns the pose keyed on the joint as seen at frame
func (s *Scene) Key(joint *Joint, frame int) (Pose, bool) {
	c, ok := s.curves[joint.id]
	if !ok {
		return Pose{}, false
	}

	return c.sample(frame)
}

// KeyedFrames lists the frames carrying a key for the joint
func (s *Scene) KeyedFrames(joint *Joint) []int {
	c, ok := s.curves[joint.id]
	if !ok {
		return nil
	}

	return c.frames()
}

// CurrentFrame returns the time cursor
func (s *Scene) CurrentFrame() int {
	return s.frame
}

// Duplicate copies the subtree rooted at root, with its current poses and without keys.
// Copied nodes are renamed with prefix and attached under parent.
func (s *Scene) Duplicate(root *Joint, prefix string, parent skeleton.Node) (*Joint, error) {
	ids := s.subtree(root.id, nil)

	source := make([]nodeData, len(ids))
	for i, id := range ids {
		source[i] = s.nodes[id]
	}
	var copies []nodeData
	if err := deepcopy.Copy(&copies, source); err != nil {
		return nil, fmt.Errorf("duplicate %s: %w", root.Name(), err)
	}

	remap := make(map[int]int, len(ids))
	base := len(s.nodes)
	for i, id := range ids {
		remap[id] = base + i
	}

	parentID := idOf(parent)
	for i := range copies {
		copies[i].Name = prefix + copies[i].Name
		if i == 0 {
			copies[i].Parent = parentID
		} else {
			copies[i].Parent = remap[copies[i].Parent]
		}
		for c, child := range copies[i].Children {
			copies[i].Children[c] = remap[child]
		}
	}
	s.nodes = append(s.nodes, copies...)
	if parentID >= 0 {
		s.nodes[parentID].Children = append(s.nodes[parentID].Children, base)
	}

	return &Joint{Node{scene: s, id: base}}, nil
}

// subtree lists ids in pre-order
func (s *Scene) subtree(id int, ids []int) []int {
	ids = append(ids, id)
	for _, child := range s.nodes[id].Children {
		ids = s.subtree(child, ids)
	}

	return ids
}

func (s *Scene) handle(id int) skeleton.Node {
	if id < 0 {
		return nil
	}
	if s.nodes[id].IsJoint {
		return &Joint{Node{scene: s, id: id}}
	}

	return &Node{scene: s, id: id}
}

// SetCurrentFrame moves the time cursor and evaluates every keyed joint at the new frame
func (s *Scene) SetCurrentFrame(frame int) error {
	if err := s.fault(OP_SET_FRAME, -1); err != nil {
		return err
	}

	s.frame = frame
	for id, c := range s.curves {
		if pose, ok := c.sample(frame); ok {
			s.nodes[id].Pose = pose
		}
	}

	return nil
}

// KeyframeCount counts keys over every channel of the joint
func (s *Scene) KeyframeCount(joint skeleton.Joint) (int, error) {
	id := idOf(joint)
	if err := s.fault(OP_KEYFRAME_COUNT, id); err != nil {
		return 0, err
	}

	c, ok := s.curves[id]
	if !ok {
		return 0, nil
	}

	return c.len() * CHANNEL_COUNT, nil
}

// RecordKeyframe keys the joint's current pose at the current frame
func (s *Scene) RecordKeyframe(joint skeleton.Joint) error {
	id := idOf(joint)
	if err := s.fault(OP_RECORD_KEYFRAME, id); err != nil {
		return err
	}

	c, ok := s.curves[id]
	if !ok {
		c = newCurve()
		s.curves[id] = c
	}
	c.set(s.frame, s.nodes[id].Pose)

	return nil
}

// JointCount counts the joints of the whole scene
func (s *Scene) JointCount() (int, error) {
	count := 0
	for _, node := range s.nodes {
		if node.IsJoint {
			count++
		}
	}

	return count, nil
}

func idOf(node skeleton.Node) int {
	switch n := node.(type) {
	case *Joint:
		if n != nil {
			return n.id
		}
	case *Node:
		if n != nil {
			return n.id
		}
	}

	return -1
}

// Pose returns the current pose of a joint
func (s *Scene) Pose(joint *Joint) Pose {
	return s.nodes[joint.id].Pose
}

// SetPose overwrites the current pose of a joint without keying it
func (s *Scene) SetPose(joint *Joint, pose Pose) {
	s.nodes[joint.id].Pose = pose
}

// Rotate is a helper building a rotation matrix from euler angles in radians, XYZ order
func Rotate(x, y, z float64) mgl64.Mat4 {
	return mgl64.AnglesToQuat(x, y, z, mgl64.XYZ).Mat4()
}
