package animtransfer

import (
	"github.com/akmonengine/animtransfer/linalg"
	"github.com/go-gl/mathgl/mgl64"
)

// Isolate removes the bind pose from the current rotation of source joint i and conjugates the delta
// by its ancestor chain and orientation, so the result no longer depends on the source skeleton.
// Compose is its exact inverse.
//
//	isolated = key * rest⁻¹
//	world    = chain * orient * isolated * orient⁻¹ * chain⁻¹
func Isolate(algebra linalg.Algebra, bind *BindPose, i int, key, orientation mgl64.Mat4) (mgl64.Mat4, error) {
	// a degenerate key must be reported on the source joint, not later on the target
	if _, err := algebra.Inverse(key); err != nil {
		return mgl64.Mat4{}, err
	}
	restInverse, err := algebra.Inverse(bind.Rest[i])
	if err != nil {
		return mgl64.Mat4{}, err
	}
	chainInverse, err := algebra.Inverse(bind.Chain[i])
	if err != nil {
		return mgl64.Mat4{}, err
	}
	orientationInverse, err := algebra.Inverse(orientation)
	if err != nil {
		return mgl64.Mat4{}, err
	}

	isolated := algebra.Mul(key, restInverse)

	return linalg.Product(algebra, bind.Chain[i], orientation, isolated, orientationInverse, chainInverse), nil
}
