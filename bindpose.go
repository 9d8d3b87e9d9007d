package animtransfer

import (
	"fmt"

	"github.com/akmonengine/animtransfer/linalg"
	"github.com/go-gl/mathgl/mgl64"
)

// BindPose holds, per joint index, the rest rotation and the ancestor chain captured on the first processed frame.
// The root slot is never used.
type BindPose struct {
	Rest  []mgl64.Mat4
	Chain []mgl64.Mat4

	captured bool
}

func NewBindPose(size int) *BindPose {
	b := &BindPose{
		Rest:  make([]mgl64.Mat4, size),
		Chain: make([]mgl64.Mat4, size),
	}
	for i := range b.Rest {
		b.Rest[i] = mgl64.Ident4()
		b.Chain[i] = mgl64.Ident4()
	}

	return b
}

// Captured reports whether Capture already ran
func (b *BindPose) Captured() bool {
	return b.captured
}

// Capture records the current rotation and ancestor chain of every non-root joint.
// It runs once, later calls keep the first capture.
func (b *BindPose) Capture(algebra linalg.Algebra, hierarchy Hierarchy) error {
	if b.captured {
		return nil
	}

	for _, entry := range hierarchy[1:] {
		rest, err := entry.Joint.Rotation()
		if err != nil {
			return fmt.Errorf("rotation of %s: %w", entry.Joint.Name(), err)
		}
		chain, err := AncestorChain(algebra, entry)
		if err != nil {
			return err
		}
		b.Rest[entry.Index] = rest
		b.Chain[entry.Index] = chain
	}
	b.captured = true

	return nil
}
