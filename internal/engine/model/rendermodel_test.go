package model

import (
	"testing"

	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/openvr/openvrtest"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// swapYZ stands in for the runtime to engine axis conversion.
func swapYZ(v openvr.Vector3) math.Vec3 {
	return math.Vec3{X: -v[0], Y: v[2], Z: -v[1]}
}

func TestNewRenderModel(t *testing.T) {
	m, err := NewRenderModel("generic_hmd", openvrtest.Triangle(3), swapYZ)
	if err != nil {
		t.Fatal(err)
	}
	if m.HasMaterial() {
		t.Error("fresh model has a material")
	}
	if got := m.Mesh.TriangleCount(); got != 1 {
		t.Errorf("triangles: got %d, want 1", got)
	}

	// Winding is reversed.
	want := []uint32{2, 1, 0}
	for i, idx := range m.Mesh.Indices {
		if idx != want[i] {
			t.Errorf("index %d: got %d, want %d", i, idx, want[i])
		}
	}

	// Runtime (1,0,0) maps to engine (-1,0,0); (0,1,0) to (0,0,-1).
	if p := m.Mesh.Vertices[1].Position; p != (math.Vec3{X: -1}) {
		t.Errorf("vertex 1: got %+v", p)
	}
	if p := m.Mesh.Vertices[2].Position; p != (math.Vec3{Z: -1}) {
		t.Errorf("vertex 2: got %+v", p)
	}
	if uv := m.Mesh.Vertices[1].TexCoord; uv != (math.Vec2{X: 1}) {
		t.Errorf("uv 1: got %+v", uv)
	}

	b := m.Mesh.Bounds
	if b.Min != (math.Vec3{X: -1, Z: -1}) || b.Max != (math.Vec3{}) {
		t.Errorf("bounds: got %+v", b)
	}

	m.SetMaterial("generic_hmd3_Mat")
	if !m.HasMaterial() {
		t.Error("SetMaterial did not bind")
	}
}

func TestNewRenderModelErrors(t *testing.T) {
	if _, err := NewRenderModel("x", nil, swapYZ); err == nil {
		t.Error("nil model accepted")
	}
	bad := openvrtest.Triangle(0)
	bad.Indices = []uint16{0, 1}
	if _, err := NewRenderModel("x", bad, swapYZ); err == nil {
		t.Error("partial triangle accepted")
	}
	bad = openvrtest.Triangle(0)
	bad.Indices = []uint16{0, 1, 7}
	if _, err := NewRenderModel("x", bad, swapYZ); err == nil {
		t.Error("out of range index accepted")
	}
}
