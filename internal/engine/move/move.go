// Package move holds the extended move channels: fixed slots carrying
// tracked positions, rotations and opaque per-slot data from input devices
// to movement consumers.
package move

import (
	"github.com/Faultbox/midgard-vr/pkg/math"
)

const (
	// MaxPositionsRotations is the number of tracked slots.
	MaxPositionsRotations = 3
	// MaxBinBlobSize is the capacity of each slot's binary blob.
	MaxBinBlobSize = 2048
)

// Extended is the extended move state for one frame.
type Extended struct {
	DeviceActive [MaxPositionsRotations]bool
	Pos          [MaxPositionsRotations]math.Vec3
	Rot          [MaxPositionsRotations]math.Quat

	blob     [MaxPositionsRotations][MaxBinBlobSize]byte
	blobSize [MaxPositionsRotations]int

	// YawLeft and YawRight are the turn speeds requested by move actions
	// this frame.
	YawLeft, YawRight float32
}

// ValidSlot reports whether idx addresses a slot.
func ValidSlot(idx int) bool {
	return idx >= 0 && idx < MaxPositionsRotations
}

// SetPose marks slot idx active and stores a position and rotation.
func (m *Extended) SetPose(idx int, pos math.Vec3, rot math.Quat) bool {
	if !ValidSlot(idx) {
		return false
	}
	m.DeviceActive[idx] = true
	m.Pos[idx] = pos
	m.Rot[idx] = rot
	return true
}

// BlobBuffer returns the full-capacity buffer of slot idx for writing, or
// nil for an invalid slot. Call SetBlobSize after filling it.
func (m *Extended) BlobBuffer(idx int) []byte {
	if !ValidSlot(idx) {
		return nil
	}
	return m.blob[idx][:]
}

// SetBlobSize records how many bytes of slot idx's blob are valid.
func (m *Extended) SetBlobSize(idx, n int) {
	if !ValidSlot(idx) || n < 0 || n > MaxBinBlobSize {
		return
	}
	m.blobSize[idx] = n
}

// Blob returns the valid part of slot idx's blob.
func (m *Extended) Blob(idx int) []byte {
	if !ValidSlot(idx) {
		return nil
	}
	return m.blob[idx][:m.blobSize[idx]]
}

// FrameYaw returns the yaw delta requested by move actions.
func (m *Extended) FrameYaw() float32 {
	return m.YawLeft - m.YawRight
}

// Reset clears every slot.
func (m *Extended) Reset() {
	*m = Extended{}
}
