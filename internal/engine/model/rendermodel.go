package model

import (
	"fmt"

	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// PointConverter maps a runtime-space vector into engine space.
type PointConverter func(openvr.Vector3) math.Vec3

// RenderModel is the engine-side mesh of a tracked device. The material is
// bound once the device texture is available.
type RenderModel struct {
	Name     string
	Mesh     *Mesh
	Material string
}

// NewRenderModel converts runtime vertex data into an engine mesh. Positions
// and normals go through convert; since the axis change mirrors handedness,
// triangle winding is reversed to keep front faces outward.
func NewRenderModel(name string, src *openvr.RenderModel, convert PointConverter) (*RenderModel, error) {
	if src == nil {
		return nil, fmt.Errorf("building render model %s: no data", name)
	}
	if len(src.Indices)%3 != 0 {
		return nil, fmt.Errorf("building render model %s: %d indices is not a triangle list", name, len(src.Indices))
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, len(src.Vertices)),
		Indices:  make([]uint32, len(src.Indices)),
	}
	for i, v := range src.Vertices {
		mesh.Vertices[i] = Vertex{
			Position: convert(v.Position),
			Normal:   convert(v.Normal),
			TexCoord: math.Vec2{X: v.TexCoord[0], Y: v.TexCoord[1]},
		}
	}
	for i, idx := range src.Indices {
		if int(idx) >= len(src.Vertices) {
			return nil, fmt.Errorf("building render model %s: index %d out of range", name, idx)
		}
		mesh.Indices[i] = uint32(idx)
	}
	mesh.FlipWinding()
	mesh.UpdateBounds()

	return &RenderModel{Name: name, Mesh: mesh}, nil
}

// SetMaterial binds the named material to the mesh.
func (m *RenderModel) SetMaterial(name string) {
	m.Material = name
}

// HasMaterial reports whether a material has been bound.
func (m *RenderModel) HasMaterial() bool {
	return m.Material != ""
}
