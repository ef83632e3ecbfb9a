package handfollow

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Note that the path wire format orders its six numbers column-wise
// (the SVG/Canvas convention); use [MatrixFromSVG] to convert.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{A: 1, B: x, D: y, E: 1}
}

// MatrixFromSVG builds a Matrix from the six numbers of an SVG/Canvas
// transform [a, b, c, d, e, f], where x' = a*x + c*y + e and
// y' = b*x + d*y + f.
func MatrixFromSVG(a, b, c, d, e, f float64) Matrix {
	return Matrix{
		A: a, B: c, C: e,
		D: b, E: d, F: f,
	}
}

// SVG returns the matrix in SVG/Canvas order [a, b, c, d, e, f].
func (m Matrix) SVG() [6]float64 {
	return [6]float64{m.A, m.D, m.B, m.E, m.C, m.F}
}

// MatrixFromAff3 converts an x/image affine matrix.
// f64.Aff3 shares the row-major layout of Matrix.
func MatrixFromAff3(a f64.Aff3) Matrix {
	return Matrix{
		A: a[0], B: a[1], C: a[2],
		D: a[3], E: a[4], F: a[5],
	}
}

// Aff3 returns the matrix as an x/image affine matrix, the form accepted
// by golang.org/x/image/draw transformers.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// MaxScale returns the largest factor by which the matrix can stretch a
// unit vector (the spectral norm of the linear part). Skew contributes
// through the off-diagonal terms.
func (m Matrix) MaxScale() float64 {
	// Largest singular value of [[A B] [D E]].
	p := m.A*m.A + m.B*m.B + m.D*m.D + m.E*m.E
	det := m.A*m.E - m.B*m.D
	disc := p*p - 4*det*det
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt((p + math.Sqrt(disc)) / 2)
}
