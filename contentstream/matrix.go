package contentstream

import "math"

// Matrix is a 2D affine transformation [a b c d e f], mapping (x, y) to
// (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float32

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float32) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float32) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a counterclockwise rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := float32(math.Cos(angle))
	sin := float32(math.Sin(angle))
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Multiply returns the matrix that applies m first and then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// IsIdentity reports whether m is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Concat writes cm with m. Identity matrices are skipped.
func (c *Content) Concat(m Matrix) *Content {
	if m.IsIdentity() {
		return c
	}
	return c.Transform(m[0], m[1], m[2], m[3], m[4], m[5])
}
