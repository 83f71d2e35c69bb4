// Package coords converts between the VR runtime's coordinate convention and
// the engine's.
//
// The runtime is right-handed with +Y up and -Z forward and hands out 3x4
// row-major affine matrices. The engine is right-handed with +Z up and +Y
// forward and uses 4x4 column-major matrices with the position in the last
// column. Everything here is pure.
package coords

import (
	"github.com/Faultbox/midgard-vr/internal/engine/input"
	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// PointToRuntime converts an engine point to runtime axes.
func PointToRuntime(p math.Vec3) openvr.Vector3 {
	return openvr.Vector3{-p.X, -p.Z, p.Y}
}

// PointFromRuntime converts a runtime point to engine axes.
func PointFromRuntime(v openvr.Vector3) math.Vec3 {
	return math.Vec3{X: -v[0], Y: v[2], Z: -v[1]}
}

// MatrixFromRuntime34 lifts a runtime 3x4 matrix into a 4x4 without touching
// the axes. The position ends up in the last column.
func MatrixFromRuntime34(m openvr.Matrix34) math.Mat4 {
	out := math.Identity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out.Set(row, col, m[row][col])
		}
	}
	return out
}

// MatrixToRuntime34 drops the last row of a 4x4 matrix.
func MatrixToRuntime34(m math.Mat4) openvr.Matrix34 {
	var out openvr.Matrix34
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out[row][col] = m.At(row, col)
		}
	}
	return out
}

// Matrix34FromColumns reads a 3x4 matrix stored column by column, the
// layout mathgl's Mat3x4 uses.
func Matrix34FromColumns(m [12]float32) openvr.Matrix34 {
	var out openvr.Matrix34
	for col := 0; col < 4; col++ {
		for row := 0; row < 3; row++ {
			out[row][col] = m[col*3+row]
		}
	}
	return out
}

// RawFromProjection recovers the half-angle tangents a runtime projection
// matrix was composed from. left and top come back negative.
func RawFromProjection(m math.Mat4) (left, right, top, bottom float32) {
	m00, m02 := m.At(0, 0), m.At(0, 2)
	m11, m12 := m.At(1, 1), m.At(1, 2)
	if m00 == 0 || m11 == 0 {
		return 0, 0, 0, 0
	}
	return (m02 - 1) / m00, (m02 + 1) / m00, (m12 - 1) / m11, (m12 + 1) / m11
}

// TransformFromRuntime permutes the axes of a lifted runtime matrix into the
// engine convention.
func TransformFromRuntime(m math.Mat4) math.Mat4 {
	c0, c1, c2, c3 := m.Column(0), m.Column(1), m.Column(2), m.Column(3)

	var out math.Mat4
	setRow(&out, 0, c0.X, -c2.X, c1.X, c3.X)
	setRow(&out, 1, -c0.Z, c2.Z, -c1.Z, -c3.Z)
	setRow(&out, 2, c0.Y, -c2.Y, c1.Y, c3.Y)
	setRow(&out, 3, 0, 0, 0, 1)
	return out
}

// TransformToRuntime is the exact inverse of TransformFromRuntime.
func TransformToRuntime(m math.Mat4) math.Mat4 {
	e0, e1, e2, e3 := m.Column(0), m.Column(1), m.Column(2), m.Column(3)

	out := math.Identity()
	out.SetColumn(0, math.Vec3{X: e0.X, Y: e0.Z, Z: -e0.Y})
	out.SetColumn(1, math.Vec3{X: e2.X, Y: e2.Z, Z: -e2.Y})
	out.SetColumn(2, math.Vec3{X: -e1.X, Y: -e1.Z, Z: e1.Y})
	out.SetColumn(3, math.Vec3{X: e3.X, Y: e3.Z, Z: -e3.Y})
	return out
}

// AffineFromRuntime converts a runtime pose matrix into an engine transform.
func AffineFromRuntime(m openvr.Matrix34) math.Mat4 {
	return TransformFromRuntime(MatrixFromRuntime34(m))
}

// AffineToRuntime converts an engine transform into a runtime pose matrix.
func AffineToRuntime(m math.Mat4) openvr.Matrix34 {
	return MatrixToRuntime34(TransformToRuntime(m))
}

func setRow(m *math.Mat4, row int, a, b, c, d float32) {
	m.Set(row, 0, a)
	m.Set(row, 1, b)
	m.Set(row, 2, c)
	m.Set(row, 3, d)
}

// MouseButtonToEngine maps a runtime overlay mouse button to an engine button.
func MouseButtonToEngine(b openvr.MouseButton) (input.Object, bool) {
	switch b {
	case openvr.MouseButtonLeft:
		return input.Button0, true
	case openvr.MouseButtonRight:
		return input.Button1, true
	case openvr.MouseButtonMiddle:
		return input.Button2, true
	}
	return input.ObjectInvalid, false
}

// MouseButtonToRuntime is the reverse of MouseButtonToEngine.
func MouseButtonToRuntime(o input.Object) (openvr.MouseButton, bool) {
	switch o {
	case input.Button0:
		return openvr.MouseButtonLeft, true
	case input.Button1:
		return openvr.MouseButtonRight, true
	case input.Button2:
		return openvr.MouseButtonMiddle, true
	}
	return 0, false
}

// Rect is a pixel rectangle inside a render target.
type Rect struct {
	X, Y, W, H int
}

// BoundsFromRect converts a pixel viewport into runtime UV bounds for a
// target of the given size.
func BoundsFromRect(r Rect, targetW, targetH int) openvr.TextureBounds {
	if targetW <= 0 || targetH <= 0 {
		return openvr.TextureBounds{}
	}
	w, h := float32(targetW), float32(targetH)
	return openvr.TextureBounds{
		UMin: float32(r.X) / w,
		VMin: float32(r.Y) / h,
		UMax: float32(r.X+r.W) / w,
		VMax: float32(r.Y+r.H) / h,
	}
}

// FlipV swaps the vertical bounds. OpenGL textures have their origin at the
// bottom left.
func FlipV(b openvr.TextureBounds) openvr.TextureBounds {
	b.VMin, b.VMax = b.VMax, b.VMin
	return b
}

// BoundsFor flips the bounds when the adapter is an OpenGL one.
func BoundsFor(adapter gpu.AdapterType, b openvr.TextureBounds) openvr.TextureBounds {
	if adapter == gpu.AdapterOpenGL {
		return FlipV(b)
	}
	return b
}

// RuntimeTexture describes a native GPU handle for the compositor. Handles of
// an unknown kind come back with TextureTypeInvalid.
func RuntimeTexture(h gpu.NativeHandle, cs openvr.ColorSpace) openvr.Texture {
	switch h.Kind {
	case gpu.HandleD3D11Texture2D:
		return openvr.Texture{Handle: h.Ptr, Type: openvr.TextureTypeDirectX, ColorSpace: cs}
	case gpu.HandleOpenGLName:
		return openvr.Texture{Handle: uintptr(h.Name), Type: openvr.TextureTypeOpenGL, ColorSpace: cs}
	}
	return openvr.Texture{Type: openvr.TextureTypeInvalid, ColorSpace: cs}
}
