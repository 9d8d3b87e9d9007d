package memhost

import (
	"github.com/akmonengine/animtransfer/skeleton"
	"github.com/go-gl/mathgl/mgl64"
)

// Node is a handle on a scene node
type Node struct {
	scene *Scene
	id    int
}

func (n *Node) Name() string {
	return n.scene.nodes[n.id].Name
}

func (n *Node) Parent() (skeleton.Node, error) {
	if err := n.scene.fault(OP_PARENT, n.id); err != nil {
		return nil, err
	}

	return n.scene.handle(n.scene.nodes[n.id].Parent), nil
}

func (n *Node) Children() ([]skeleton.Node, error) {
	if err := n.scene.fault(OP_CHILDREN, n.id); err != nil {
		return nil, err
	}

	ids := n.scene.nodes[n.id].Children
	children := make([]skeleton.Node, len(ids))
	for i, id := range ids {
		children[i] = n.scene.handle(id)
	}

	return children, nil
}

// Joint is a handle on a joint node
type Joint struct {
	Node
}

var _ skeleton.Joint = (*Joint)(nil)

func (j *Joint) pose(op Op) (*Pose, error) {
	if err := j.scene.fault(op, j.id); err != nil {
		return nil, err
	}

	return &j.scene.nodes[j.id].Pose, nil
}

func (j *Joint) Rotation() (mgl64.Mat4, error) {
	p, err := j.pose(OP_READ)
	if err != nil {
		return mgl64.Mat4{}, err
	}

	return p.Rotation, nil
}

func (j *Joint) SetRotation(rotation mgl64.Mat4) error {
	p, err := j.pose(OP_WRITE)
	if err != nil {
		return err
	}
	p.Rotation = rotation

	return nil
}

func (j *Joint) Orientation() (mgl64.Mat4, error) {
	p, err := j.pose(OP_READ)
	if err != nil {
		return mgl64.Mat4{}, err
	}

	return p.Orientation, nil
}

func (j *Joint) SetOrientation(orientation mgl64.Mat4) error {
	p, err := j.pose(OP_WRITE)
	if err != nil {
		return err
	}
	p.Orientation = orientation

	return nil
}

func (j *Joint) Translation() (mgl64.Vec3, error) {
	p, err := j.pose(OP_READ)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	return p.Translation, nil
}

func (j *Joint) SetTranslation(translation mgl64.Vec3) error {
	p, err := j.pose(OP_WRITE)
	if err != nil {
		return err
	}
	p.Translation = translation

	return nil
}
