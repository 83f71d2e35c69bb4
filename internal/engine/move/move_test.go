package move

import (
	"testing"

	"github.com/Faultbox/midgard-vr/pkg/math"
)

func TestSetPose(t *testing.T) {
	var m Extended
	pos := math.Vec3{X: 1, Y: 2, Z: 3}
	if !m.SetPose(2, pos, math.QuatIdentity()) {
		t.Fatal("SetPose(2) rejected")
	}
	if !m.DeviceActive[2] || m.Pos[2] != pos {
		t.Errorf("slot 2: active=%v pos=%v", m.DeviceActive[2], m.Pos[2])
	}
	if m.SetPose(MaxPositionsRotations, pos, math.QuatIdentity()) {
		t.Error("SetPose accepted an out of range slot")
	}
	if m.SetPose(-1, pos, math.QuatIdentity()) {
		t.Error("SetPose accepted a negative slot")
	}
}

func TestBlob(t *testing.T) {
	var m Extended
	buf := m.BlobBuffer(1)
	if len(buf) != MaxBinBlobSize {
		t.Fatalf("buffer len: got %d, want %d", len(buf), MaxBinBlobSize)
	}
	copy(buf, []byte{9, 8, 7})
	m.SetBlobSize(1, 3)
	if got := m.Blob(1); len(got) != 3 || got[0] != 9 {
		t.Errorf("blob: got %v", got)
	}
	m.SetBlobSize(1, MaxBinBlobSize+1)
	if len(m.Blob(1)) != 3 {
		t.Error("oversized SetBlobSize was applied")
	}
	if m.BlobBuffer(5) != nil {
		t.Error("invalid slot returned a buffer")
	}
}

func TestFrameYaw(t *testing.T) {
	m := Extended{YawLeft: 0.5, YawRight: 0.2}
	if got := m.FrameYaw(); got < 0.299 || got > 0.301 {
		t.Errorf("FrameYaw: got %v, want 0.3", got)
	}
	m.Reset()
	if m.FrameYaw() != 0 {
		t.Error("Reset did not clear yaw")
	}
}
