package imagefill

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix in canvas order:
//
//	| A  C  E |
//	| B  D  F |
//
// This represents the transformation:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// Matrix is a value type. Every method returns a new matrix and leaves the
// receiver unchanged.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, E: x, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, D: y}
}

// Rotate creates a rotation matrix. The angle is in degrees; positive
// angles turn clockwise in a y-down coordinate system.
func Rotate(deg float64) Matrix {
	sin, cos := sincos(deg)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// sincos returns the sine and cosine of deg degrees. Quarter turns are
// exact so that 90/180/270 rotations do not leak rounding noise.
func sincos(deg float64) (sin, cos float64) {
	switch math.Mod(deg, 360) {
	case 0:
		return 0, 1
	case 90, -270:
		return 1, 0
	case 180, -180:
		return 0, -1
	case 270, -90:
		return -1, 0
	}
	return math.Sincos(deg * math.Pi / 180)
}

// Multiply multiplies two matrices (m * other). The result applies other
// first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

// Translate returns m followed by a translation in outer space.
func (m Matrix) Translate(dx, dy float64) Matrix {
	m.E += dx
	m.F += dy
	return m
}

// TranslateInner returns m preceded by a translation in the local space
// of m.
func (m Matrix) TranslateInner(dx, dy float64) Matrix {
	m.E += m.A*dx + m.C*dy
	m.F += m.B*dx + m.D*dy
	return m
}

// Scale returns m preceded by a scale of the local axes.
func (m Matrix) Scale(sx, sy float64) Matrix {
	m.A *= sx
	m.B *= sx
	m.C *= sy
	m.D *= sy
	return m
}

// ScaleUniform is Scale(s, s).
func (m Matrix) ScaleUniform(s float64) Matrix {
	return m.Scale(s, s)
}

// Rotate rotates the linear part of m about the current origin. The
// translation is left as it is.
func (m Matrix) Rotate(deg float64) Matrix {
	sin, cos := sincos(deg)
	a, b, c, d := m.A, m.B, m.C, m.D
	m.A = a*cos - b*sin
	m.B = a*sin + b*cos
	m.C = c*cos - d*sin
	m.D = c*sin + d*cos
	return m
}

// RotateAbout returns m followed by a rotation of deg degrees about center,
// where center is given in outer space.
func (m Matrix) RotateAbout(center Point, deg float64) Matrix {
	p := m.Invert().TransformPoint(center)
	return m.TranslateInner(p.X, p.Y).Rotate(deg).TranslateInner(-p.X, -p.Y)
}

// ScaleAbout scales the local axes of m about center, where center is
// given in outer space. For uniform scales this is the same as scaling
// about center after m.
func (m Matrix) ScaleAbout(center Point, sx, sy float64) Matrix {
	p := m.Invert().TransformPoint(center)
	return m.TranslateInner(p.X, p.Y).Scale(sx, sy).TranslateInner(-p.X, -p.Y)
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.A*m.D - m.B*m.C
	if math.Abs(det) < 1e-12 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.D * invDet,
		B: -m.B * invDet,
		C: -m.C * invDet,
		D: m.A * invDet,
		E: (m.C*m.F - m.D*m.E) * invDet,
		F: (m.B*m.E - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 1 && m.E == 0 && m.F == 0
}

// Aff3 returns the matrix in the row-major layout used by
// golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
}
