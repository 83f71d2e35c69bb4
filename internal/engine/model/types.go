// Package model builds engine meshes for tracked-device render models.
package model

import (
	"github.com/Faultbox/midgard-vr/internal/engine/picking"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Mesh holds triangle data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   picking.AABB
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// FlipWinding reverses the vertex order of every triangle.
func (m *Mesh) FlipWinding() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i], m.Indices[i+2] = m.Indices[i+2], m.Indices[i]
	}
}

// UpdateBounds recomputes Bounds from the vertex positions.
func (m *Mesh) UpdateBounds() {
	b := picking.EmptyAABB()
	for _, v := range m.Vertices {
		b = b.Extend(v.Position)
	}
	m.Bounds = b
}
