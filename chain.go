package animtransfer

import (
	"fmt"

	"github.com/akmonengine/animtransfer/linalg"
	"github.com/go-gl/mathgl/mgl64"
)

// AncestorChain composes orientation*rotation of every joint ancestor of entry,
// root-most factor leftmost. A joint without joint ancestor yields identity.
func AncestorChain(algebra linalg.Algebra, entry *Entry) (mgl64.Mat4, error) {
	if entry.Parent == nil {
		return mgl64.Ident4(), nil
	}

	chain, err := AncestorChain(algebra, entry.Parent)
	if err != nil {
		return mgl64.Mat4{}, err
	}

	parent := entry.Parent.Joint
	rotation, err := parent.Rotation()
	if err != nil {
		return mgl64.Mat4{}, fmt.Errorf("rotation of %s: %w", parent.Name(), err)
	}
	orientation, err := parent.Orientation()
	if err != nil {
		return mgl64.Mat4{}, fmt.Errorf("orientation of %s: %w", parent.Name(), err)
	}

	return algebra.Mul(chain, algebra.Mul(orientation, rotation)), nil
}
