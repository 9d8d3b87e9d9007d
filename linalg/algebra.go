package linalg

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DETERMINANT_EPSILON is the smallest absolute determinant accepted as invertible
const DETERMINANT_EPSILON = 1e-12

// ErrSingular is returned when a matrix has no usable inverse
var ErrSingular = errors.New("linalg: singular matrix")

// invertible is the singularity criterion shared by every backend,
// so a matrix rejected by one is rejected by all
func invertible(det float64) error {
	if math.IsNaN(det) || math.Abs(det) < DETERMINANT_EPSILON {
		return ErrSingular
	}

	return nil
}

// Algebra is the 4x4 matrix backend used by the retargeting engine.
// Every implementation works in the column-vector convention of mgl64.
type Algebra interface {
	Mul(a, b mgl64.Mat4) mgl64.Mat4
	Inverse(m mgl64.Mat4) (mgl64.Mat4, error)
	// Rotation decomposes m into a unit quaternion and rebuilds the pure rotation matrix
	Rotation(m mgl64.Mat4) (mgl64.Mat4, error)
}

// Product multiplies the matrices left to right.
func Product(algebra Algebra, matrices ...mgl64.Mat4) mgl64.Mat4 {
	result := mgl64.Ident4()
	for _, m := range matrices {
		result = algebra.Mul(result, m)
	}

	return result
}

// Default returns the mathgl backend
func Default() Algebra {
	return MathGL{}
}
