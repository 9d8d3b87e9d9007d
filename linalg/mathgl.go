package linalg

import "github.com/go-gl/mathgl/mgl64"

// MathGL backs the engine with go-gl/mathgl
type MathGL struct{}

func (MathGL) Mul(a, b mgl64.Mat4) mgl64.Mat4 {
	return a.Mul4(b)
}

func (MathGL) Inverse(m mgl64.Mat4) (mgl64.Mat4, error) {
	if err := invertible(m.Det()); err != nil {
		return mgl64.Mat4{}, err
	}

	return m.Inv(), nil
}

func (MathGL) Rotation(m mgl64.Mat4) (mgl64.Mat4, error) {
	if err := invertible(m.Mat3().Det()); err != nil {
		return mgl64.Mat4{}, err
	}

	q := mgl64.Mat4ToQuat(m)
	if q.Len() < DETERMINANT_EPSILON {
		return mgl64.Mat4{}, ErrSingular
	}

	return q.Normalize().Mat4(), nil
}
