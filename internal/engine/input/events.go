// Package input defines the device-independent input events delivered to GUI
// canvases, whether they come from the desktop mouse or a VR overlay pointer.
package input

import "fmt"

// DeviceType identifies the class of device that produced an InputEvent.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceKeyboard
	DeviceMouse
	// DeviceOverlay is a VR overlay pointer (laser mouse).
	DeviceOverlay
)

// ObjectType is the kind of control an InputEvent refers to.
type ObjectType int

const (
	ObjectNone ObjectType = iota
	ObjectAxis
	ObjectButton
	ObjectKey
)

// Action describes what happened to the control.
type Action int

const (
	ActionMake Action = iota
	ActionBreak
	ActionMove
)

// Object identifies a specific axis or button.
type Object int

const (
	ObjectInvalid Object = iota
	XAxis
	YAxis
	ZAxis
	Button0
	Button1
	Button2
)

func (o Object) String() string {
	switch o {
	case XAxis:
		return "XAxis"
	case YAxis:
		return "YAxis"
	case ZAxis:
		return "ZAxis"
	case Button0:
		return "Button0"
	case Button1:
		return "Button1"
	case Button2:
		return "Button2"
	}
	return fmt.Sprintf("Object(%d)", int(o))
}

// InputEvent is a device-independent input notification, the form in which
// both desktop and VR overlay input reach GUI canvases.
type InputEvent struct {
	Device DeviceType
	Type   ObjectType
	Action Action
	Object Object
	Value  float32
}

// Receiver accepts input events. It reports whether the event was consumed.
type Receiver interface {
	ProcessInputEvent(ev InputEvent) bool
}

// AxisEvent returns an axis make event.
func AxisEvent(dev DeviceType, axis Object, value float32) InputEvent {
	return InputEvent{Device: dev, Type: ObjectAxis, Action: ActionMake, Object: axis, Value: value}
}

// ButtonEvent returns a button make (pressed) or break (released) event.
func ButtonEvent(dev DeviceType, button Object, pressed bool) InputEvent {
	ev := InputEvent{Device: dev, Type: ObjectButton, Action: ActionBreak, Object: button}
	if pressed {
		ev.Action = ActionMake
		ev.Value = 1
	}
	return ev
}

// MouseButtonObject maps an SDL mouse button index (1 = left, 2 = middle,
// 3 = right) to a button object.
func MouseButtonObject(sdlButton uint8) (Object, bool) {
	switch sdlButton {
	case 1:
		return Button0, true
	case 3:
		return Button1, true
	case 2:
		return Button2, true
	}
	return ObjectInvalid, false
}
