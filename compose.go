package animtransfer

import (
	"github.com/akmonengine/animtransfer/linalg"
	"github.com/go-gl/mathgl/mgl64"
)

// Compose projects a world rotation back through target joint i's orientation and ancestor chain,
// reapplies its bind pose and returns the local rotation to write.
//
//	reprojected = orient⁻¹ * chain⁻¹ * world * chain * orient
//	final       = reprojected * rest
func Compose(algebra linalg.Algebra, bind *BindPose, i int, world, orientation mgl64.Mat4) (mgl64.Mat4, error) {
	chainInverse, err := algebra.Inverse(bind.Chain[i])
	if err != nil {
		return mgl64.Mat4{}, err
	}
	orientationInverse, err := algebra.Inverse(orientation)
	if err != nil {
		return mgl64.Mat4{}, err
	}

	reprojected := linalg.Product(algebra, orientationInverse, chainInverse, world, bind.Chain[i], orientation)

	return algebra.Rotation(algebra.Mul(reprojected, bind.Rest[i]))
}
