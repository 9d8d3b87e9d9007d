package animtransfer

import (
	"fmt"

	"github.com/akmonengine/animtransfer/skeleton"
)

// Entry is one joint of an ordered joint list.
// Parent is the nearest ancestor with the joint capability, nil when the parent is not a joint.
// Ancestors above the walked root keep Index -1.
type Entry struct {
	Index  int
	Joint  skeleton.Joint
	Parent *Entry
}

// Hierarchy is the pre-order list of a skeleton, index 0 being the root
type Hierarchy []*Entry

// Walk lists the joints below root depth first, node before children, children in host order.
// It stops once size joints are collected; size <= 0 walks the whole subtree.
// Children without the joint capability are not descended.
func Walk(root skeleton.Joint, size int) (Hierarchy, error) {
	parent, err := ancestors(root)
	if err != nil {
		return nil, err
	}

	capacity := size
	if capacity <= 0 {
		capacity = 16
	}
	hierarchy := make(Hierarchy, 0, capacity)

	_, err = hierarchy.visit(root, parent, size)
	if err != nil {
		return nil, err
	}

	return hierarchy, nil
}

func (h *Hierarchy) visit(joint skeleton.Joint, parent *Entry, size int) (bool, error) {
	if size > 0 && len(*h) >= size {
		return true, nil
	}

	entry := &Entry{Index: len(*h), Joint: joint, Parent: parent}
	*h = append(*h, entry)

	children, err := joint.Children()
	if err != nil {
		return false, fmt.Errorf("children of %s: %w", joint.Name(), err)
	}
	for _, child := range children {
		childJoint, ok := skeleton.AsJoint(child)
		if !ok {
			continue
		}
		full, err := h.visit(childJoint, entry, size)
		if err != nil || full {
			return full, err
		}
	}

	return size > 0 && len(*h) >= size, nil
}

// ancestors links the joint ancestors of root, stopping at the first node which is not a joint
func ancestors(root skeleton.Joint) (*Entry, error) {
	node, err := root.Parent()
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", root.Name(), err)
	}

	var chain []skeleton.Joint
	for {
		joint, ok := skeleton.AsJoint(node)
		if !ok {
			break
		}
		chain = append(chain, joint)
		if node, err = joint.Parent(); err != nil {
			return nil, fmt.Errorf("parent of %s: %w", joint.Name(), err)
		}
	}

	var parent *Entry
	for i := len(chain) - 1; i >= 0; i-- {
		parent = &Entry{Index: -1, Joint: chain[i], Parent: parent}
	}

	return parent, nil
}

// HalfJointCount returns half the joints of the scene, for scenes holding exactly a source and a target skeleton
func HalfJointCount(host skeleton.Host) (int, error) {
	count, err := host.JointCount()
	if err != nil {
		return 0, err
	}

	return count / 2, nil
}
