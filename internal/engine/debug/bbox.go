package debug

import (
	"github.com/Faultbox/midgard-vr/internal/engine/picking"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// PlayAreaHeight is how tall the play area box is drawn, in meters.
const PlayAreaHeight = 2.0

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// AABBWireframe creates wireframe vertices for box, grown by padding on
// every side.
func AABBWireframe(box picking.AABB, padding float32) []float32 {
	return GenerateBBoxWireframeVertices(
		box.Min.X-padding, box.Min.Y-padding, box.Min.Z-padding,
		box.Max.X+padding, box.Max.Y+padding, box.Max.Z+padding)
}

// PlayAreaWireframe extrudes the flat chaperone play area rectangle up the
// engine Z axis so it can be drawn as a box.
func PlayAreaWireframe(rect picking.AABB) []float32 {
	box := rect
	box.Max.Z = box.Min.Z + PlayAreaHeight
	return AABBWireframe(box, 0)
}
