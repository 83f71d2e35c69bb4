package script

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/logger"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/events"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Global callback names.
const (
	CallbackHMDPose           = "onHMDPose"
	CallbackDeviceActivated   = "onOVRDeviceActivated"
	CallbackDeviceRoleChanged = "onOVRDeviceRoleChanged"
	CallbackInputReady        = "onOVRInputReady"
	CallbackKeyboardClosed    = "onKeyboardClosed"
	CallbackKeyboardInput     = "onKeyboardInput"
	CallbackKeyboardDone      = "onKeyboardDone"
)

// Bridge forwards VR events to global Lua functions. Action events call
// the function named when the action was registered.
type Bridge struct {
	vm *VM
}

var _ events.Sink = (*Bridge)(nil)

// NewBridge returns a sink calling into vm.
func NewBridge(vm *VM) *Bridge {
	return &Bridge{vm: vm}
}

func (b *Bridge) call(name string, args ...lua.LValue) {
	if name == "" {
		return
	}
	if err := b.vm.Call(name, args...); err != nil {
		logger.Warn("Script callback failed", zap.String("callback", name), zap.Error(err))
	}
}

func (b *Bridge) HMDPose(pose coords.Pose) {
	b.call(CallbackHMDPose,
		b.vm.Vec3(pose.Position),
		b.vm.Quat(pose.Orientation),
		b.vm.Vec3(pose.Velocity),
		b.vm.Vec3(pose.AngularVelocity))
}

func (b *Bridge) DeviceActivated(index openvr.TrackedDeviceIndex) {
	b.call(CallbackDeviceActivated, lua.LNumber(index))
}

func (b *Bridge) DeviceRoleChanged() {
	b.call(CallbackDeviceRoleChanged)
}

func (b *Bridge) InputReady() {
	b.call(CallbackInputReady)
}

func (b *Bridge) DigitalAction(callback string, origin openvr.InputValueHandle, state bool) {
	b.call(callback, lua.LNumber(origin), lua.LBool(state))
}

func (b *Bridge) AnalogAction(callback string, origin openvr.InputValueHandle, x, y, z float32) {
	b.call(callback, lua.LNumber(origin), lua.LNumber(x), lua.LNumber(y), lua.LNumber(z))
}

func (b *Bridge) PoseAction(callback string, origin openvr.InputValueHandle, pos math.Vec3, rot math.Quat) {
	b.call(callback, lua.LNumber(origin), b.vm.Vec3(pos), b.vm.Quat(rot))
}

func (b *Bridge) PoseVelocity(callback string, origin openvr.InputValueHandle, vel, angVel math.Vec3) {
	b.call(callback, lua.LNumber(origin), b.vm.Vec3(vel), b.vm.Vec3(angVel))
}

func (b *Bridge) KeyboardClosed(overlay int, cookie uint64) {
	b.call(CallbackKeyboardClosed, lua.LNumber(overlay), lua.LNumber(cookie))
}

func (b *Bridge) KeyboardInput(overlay int, text string, cookie uint64) {
	b.call(CallbackKeyboardInput, lua.LNumber(overlay), lua.LString(text), lua.LNumber(cookie))
}

func (b *Bridge) KeyboardDone(overlay int, cookie uint64) {
	b.call(CallbackKeyboardDone, lua.LNumber(overlay), lua.LNumber(cookie))
}
