package linalg

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// Gonum backs the engine with gonum's dense LU inverse and quaternion numbers
type Gonum struct{}

func toDense(m mgl64.Mat4) *mat.Dense {
	data := make([]float64, 16)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			data[row*4+col] = m.At(row, col)
		}
	}

	return mat.NewDense(4, 4, data)
}

func toDense3(m mgl64.Mat4) *mat.Dense {
	data := make([]float64, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			data[row*3+col] = m.At(row, col)
		}
	}

	return mat.NewDense(3, 3, data)
}

func fromDense(d mat.Matrix) mgl64.Mat4 {
	var m mgl64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.Set(row, col, d.At(row, col))
		}
	}

	return m
}

func (Gonum) Mul(a, b mgl64.Mat4) mgl64.Mat4 {
	var c mat.Dense
	c.Mul(toDense(a), toDense(b))

	return fromDense(&c)
}

func (Gonum) Inverse(m mgl64.Mat4) (mgl64.Mat4, error) {
	a := toDense(m)
	if err := invertible(mat.Det(a)); err != nil {
		return mgl64.Mat4{}, err
	}

	// a finite mat.Condition only warns about conditioning, the inverse is still computed
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		var condition mat.Condition
		if !errors.As(err, &condition) || math.IsInf(float64(condition), 1) {
			return mgl64.Mat4{}, errors.Join(ErrSingular, err)
		}
	}

	return fromDense(&inv), nil
}

func (Gonum) Rotation(m mgl64.Mat4) (mgl64.Mat4, error) {
	if err := invertible(mat.Det(toDense3(m))); err != nil {
		return mgl64.Mat4{}, err
	}

	q := matrixToQuat(m)
	length := quat.Abs(q)
	if length < DETERMINANT_EPSILON {
		return mgl64.Mat4{}, ErrSingular
	}
	q = quat.Scale(1/length, q)

	return quatToMatrix(q), nil
}

// matrixToQuat extracts a quaternion from the upper 3x3 block (Shepperd's method)
func matrixToQuat(m mgl64.Mat4) quat.Number {
	trace := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)

	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		return quat.Number{
			Real: 0.25 / s,
			Imag: (m.At(2, 1) - m.At(1, 2)) * s,
			Jmag: (m.At(0, 2) - m.At(2, 0)) * s,
			Kmag: (m.At(1, 0) - m.At(0, 1)) * s,
		}
	case m.At(0, 0) > m.At(1, 1) && m.At(0, 0) > m.At(2, 2):
		s := 2 * math.Sqrt(1+m.At(0, 0)-m.At(1, 1)-m.At(2, 2))
		return quat.Number{
			Real: (m.At(2, 1) - m.At(1, 2)) / s,
			Imag: 0.25 * s,
			Jmag: (m.At(0, 1) + m.At(1, 0)) / s,
			Kmag: (m.At(0, 2) + m.At(2, 0)) / s,
		}
	case m.At(1, 1) > m.At(2, 2):
		s := 2 * math.Sqrt(1+m.At(1, 1)-m.At(0, 0)-m.At(2, 2))
		return quat.Number{
			Real: (m.At(0, 2) - m.At(2, 0)) / s,
			Imag: (m.At(0, 1) + m.At(1, 0)) / s,
			Jmag: 0.25 * s,
			Kmag: (m.At(1, 2) + m.At(2, 1)) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m.At(2, 2)-m.At(0, 0)-m.At(1, 1))
		return quat.Number{
			Real: (m.At(1, 0) - m.At(0, 1)) / s,
			Imag: (m.At(0, 2) + m.At(2, 0)) / s,
			Jmag: (m.At(1, 2) + m.At(2, 1)) / s,
			Kmag: 0.25 * s,
		}
	}
}

func quatToMatrix(q quat.Number) mgl64.Mat4 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	return mgl64.Mat4{
		1 - 2*y*y - 2*z*z, 2*x*y + 2*w*z, 2*x*z - 2*w*y, 0,
		2*x*y - 2*w*z, 1 - 2*x*x - 2*z*z, 2*y*z + 2*w*x, 0,
		2*x*z + 2*w*y, 2*y*z - 2*w*x, 1 - 2*x*x - 2*y*y, 0,
		0, 0, 0, 1,
	}
}
