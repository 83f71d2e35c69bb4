// Package events defines the notifications the VR core publishes.
//
// Everything the runtime integration wants the rest of the program to hear
// about goes through a Sink, one method per kind of notification. The script
// bridge is one implementation; tests use Recorder.
package events

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Sink receives VR core notifications. Methods are called on the main thread
// from inside Process and from overlay event pumps.
type Sink interface {
	// HMDPose fires once per frame with the pose the next frame renders with.
	HMDPose(pose coords.Pose)
	DeviceActivated(index openvr.TrackedDeviceIndex)
	DeviceRoleChanged()
	InputReady()

	DigitalAction(callback string, origin openvr.InputValueHandle, state bool)
	AnalogAction(callback string, origin openvr.InputValueHandle, x, y, z float32)
	PoseAction(callback string, origin openvr.InputValueHandle, pos math.Vec3, rot math.Quat)
	PoseVelocity(callback string, origin openvr.InputValueHandle, vel, angVel math.Vec3)

	KeyboardClosed(overlay int, cookie uint64)
	KeyboardInput(overlay int, text string, cookie uint64)
	KeyboardDone(overlay int, cookie uint64)
}

// Nop ignores everything.
type Nop struct{}

func (Nop) HMDPose(coords.Pose) {}
func (Nop) DeviceActivated(openvr.TrackedDeviceIndex) {}
func (Nop) DeviceRoleChanged() {}
func (Nop) InputReady() {}
func (Nop) DigitalAction(string, openvr.InputValueHandle, bool) {}
func (Nop) AnalogAction(string, openvr.InputValueHandle, float32, float32, float32) {}
func (Nop) PoseAction(string, openvr.InputValueHandle, math.Vec3, math.Quat) {}
func (Nop) PoseVelocity(string, openvr.InputValueHandle, math.Vec3, math.Vec3) {}
func (Nop) KeyboardClosed(int, uint64) {}
func (Nop) KeyboardInput(int, string, uint64) {}
func (Nop) KeyboardDone(int, uint64) {}

// Multi fans every notification out to each sink in order.
type Multi []Sink

func (m Multi) HMDPose(pose coords.Pose) {
	for _, s := range m {
		s.HMDPose(pose)
	}
}

func (m Multi) DeviceActivated(index openvr.TrackedDeviceIndex) {
	for _, s := range m {
		s.DeviceActivated(index)
	}
}

func (m Multi) DeviceRoleChanged() {
	for _, s := range m {
		s.DeviceRoleChanged()
	}
}

func (m Multi) InputReady() {
	for _, s := range m {
		s.InputReady()
	}
}

func (m Multi) DigitalAction(callback string, origin openvr.InputValueHandle, state bool) {
	for _, s := range m {
		s.DigitalAction(callback, origin, state)
	}
}

func (m Multi) AnalogAction(callback string, origin openvr.InputValueHandle, x, y, z float32) {
	for _, s := range m {
		s.AnalogAction(callback, origin, x, y, z)
	}
}

func (m Multi) PoseAction(callback string, origin openvr.InputValueHandle, pos math.Vec3, rot math.Quat) {
	for _, s := range m {
		s.PoseAction(callback, origin, pos, rot)
	}
}

func (m Multi) PoseVelocity(callback string, origin openvr.InputValueHandle, vel, angVel math.Vec3) {
	for _, s := range m {
		s.PoseVelocity(callback, origin, vel, angVel)
	}
}

func (m Multi) KeyboardClosed(overlay int, cookie uint64) {
	for _, s := range m {
		s.KeyboardClosed(overlay, cookie)
	}
}

func (m Multi) KeyboardInput(overlay int, text string, cookie uint64) {
	for _, s := range m {
		s.KeyboardInput(overlay, text, cookie)
	}
}

func (m Multi) KeyboardDone(overlay int, cookie uint64) {
	for _, s := range m {
		s.KeyboardDone(overlay, cookie)
	}
}
