package math

import "math"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Element (row, col) lives at index col*4+row, so the translation of an
// affine transform occupies indices 12, 13 and 14.
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// RotateZ returns a rotation matrix around the Z axis (the engine's up axis).
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Frustum returns an off-axis perspective projection from the tangents of the
// four half angles of a field of view. left and down are measured towards
// negative X and Y, so a symmetric 90 degree view is Frustum(1, 1, 1, 1, ...).
func Frustum(left, right, up, down, near, far float32) Mat4 {
	l, r := -left*near, right*near
	b, t := -down*near, up*near
	nf := 1.0 / (near - far)

	return Mat4{
		2 * near / (r - l), 0, 0, 0,
		0, 2 * near / (t - b), 0, 0,
		(r + l) / (r - l), (t + b) / (t - b), (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Set assigns the element at the given row and column.
func (m *Mat4) Set(row, col int, v float32) {
	m[col*4+row] = v
}

// Column returns the first three rows of a column as a vector.
func (m Mat4) Column(col int) Vec3 {
	return Vec3{m[col*4], m[col*4+1], m[col*4+2]}
}

// SetColumn writes the first three rows of a column.
func (m *Mat4) SetColumn(col int, v Vec3) {
	m[col*4], m[col*4+1], m[col*4+2] = v.X, v.Y, v.Z
}

// Position returns the translation part of an affine matrix.
func (m Mat4) Position() Vec3 {
	return m.Column(3)
}

// SetPosition replaces the translation part of an affine matrix.
func (m *Mat4) SetPosition(p Vec3) {
	m.SetColumn(3, p)
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			result[col*4+row] = sum
		}
	}
	return result
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			t[row*4+col] = m[col*4+row]
		}
	}
	return t
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// AffineInverse inverts a rigid transform (orthonormal rotation plus
// translation). It is what view matrices are built from.
func (m Mat4) AffineInverse() Mat4 {
	inv := Identity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			inv[col*4+row] = m[row*4+col]
		}
	}
	p := m.Position()
	inv.SetPosition(inv.TransformDirection(p).Scale(-1))
	return inv
}
