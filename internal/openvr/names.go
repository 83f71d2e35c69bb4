package openvr

import "strings"

var deviceClassNames = [...]string{
	TrackedDeviceClassInvalid:           "Invalid",
	TrackedDeviceClassHMD:               "HMD",
	TrackedDeviceClassController:        "Controller",
	TrackedDeviceClassGenericTracker:    "GenericTracker",
	TrackedDeviceClassTrackingReference: "TrackingReference",
	TrackedDeviceClassDisplayRedirect:   "Other",
}

// String returns the script-facing name of the class.
func (c TrackedDeviceClass) String() string {
	if c < 0 || int(c) >= len(deviceClassNames) {
		return "Invalid"
	}
	return deviceClassNames[c]
}

// ParseTrackedDeviceClass looks up a class by name, ignoring case.
func ParseTrackedDeviceClass(s string) (TrackedDeviceClass, bool) {
	for i, name := range deviceClassNames {
		if strings.EqualFold(name, s) {
			return TrackedDeviceClass(i), true
		}
	}
	return TrackedDeviceClassInvalid, false
}

var axisTypeNames = [...]string{
	ControllerAxisNone:     "None",
	ControllerAxisTrackPad: "TrackPad",
	ControllerAxisJoystick: "Joystick",
	ControllerAxisTrigger:  "Trigger",
}

func (a ControllerAxisType) String() string {
	if a < 0 || int(a) >= len(axisTypeNames) {
		return "None"
	}
	return axisTypeNames[a]
}

// ParseControllerAxisType looks up an axis type by name, ignoring case.
func ParseControllerAxisType(s string) (ControllerAxisType, bool) {
	for i, name := range axisTypeNames {
		if strings.EqualFold(name, s) {
			return ControllerAxisType(i), true
		}
	}
	return ControllerAxisNone, false
}
