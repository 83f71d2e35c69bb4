package openvr

import "fmt"

// EventType identifies a runtime event.
type EventType uint32

const (
	EventNone                                EventType = 0
	EventTrackedDeviceActivated              EventType = 100
	EventTrackedDeviceDeactivated            EventType = 101
	EventTrackedDeviceUpdated                EventType = 102
	EventTrackedDeviceUserInteractionStarted EventType = 103
	EventTrackedDeviceUserInteractionEnded   EventType = 104
	EventIpdChanged                          EventType = 105
	EventEnterStandbyMode                    EventType = 106
	EventLeaveStandbyMode                    EventType = 107
	EventTrackedDeviceRoleChanged            EventType = 108
	EventButtonPress                         EventType = 200
	EventButtonUnpress                       EventType = 201
	EventMouseMove                           EventType = 300
	EventMouseButtonDown                     EventType = 301
	EventMouseButtonUp                       EventType = 302
	EventFocusEnter                          EventType = 303
	EventFocusLeave                          EventType = 304
	EventScrollDiscrete                      EventType = 305
	EventTouchPadMove                        EventType = 306
	EventOverlayFocusChanged                 EventType = 307
	EventInputFocusCaptured                  EventType = 400
	EventInputFocusReleased                  EventType = 401
	EventOverlayShown                        EventType = 500
	EventOverlayHidden                       EventType = 501
	EventDashboardActivated                  EventType = 502
	EventDashboardDeactivated                EventType = 503
	EventDashboardRequested                  EventType = 505
	EventQuit                                EventType = 700
	EventProcessQuit                         EventType = 701
	EventChaperoneDataHasChanged             EventType = 800
	EventKeyboardClosed                      EventType = 1200
	EventKeyboardCharInput                   EventType = 1201
	EventKeyboardDone                        EventType = 1202
)

var eventNames = map[EventType]string{
	EventNone:                                "VREvent_None",
	EventTrackedDeviceActivated:              "VREvent_TrackedDeviceActivated",
	EventTrackedDeviceDeactivated:            "VREvent_TrackedDeviceDeactivated",
	EventTrackedDeviceUpdated:                "VREvent_TrackedDeviceUpdated",
	EventTrackedDeviceUserInteractionStarted: "VREvent_TrackedDeviceUserInteractionStarted",
	EventTrackedDeviceUserInteractionEnded:   "VREvent_TrackedDeviceUserInteractionEnded",
	EventIpdChanged:                          "VREvent_IpdChanged",
	EventEnterStandbyMode:                    "VREvent_EnterStandbyMode",
	EventLeaveStandbyMode:                    "VREvent_LeaveStandbyMode",
	EventTrackedDeviceRoleChanged:            "VREvent_TrackedDeviceRoleChanged",
	EventButtonPress:                         "VREvent_ButtonPress",
	EventButtonUnpress:                       "VREvent_ButtonUnpress",
	EventMouseMove:                           "VREvent_MouseMove",
	EventMouseButtonDown:                     "VREvent_MouseButtonDown",
	EventMouseButtonUp:                       "VREvent_MouseButtonUp",
	EventFocusEnter:                          "VREvent_FocusEnter",
	EventFocusLeave:                          "VREvent_FocusLeave",
	EventScrollDiscrete:                      "VREvent_ScrollDiscrete",
	EventTouchPadMove:                        "VREvent_TouchPadMove",
	EventOverlayFocusChanged:                 "VREvent_OverlayFocusChanged",
	EventInputFocusCaptured:                  "VREvent_InputFocusCaptured",
	EventInputFocusReleased:                  "VREvent_InputFocusReleased",
	EventOverlayShown:                        "VREvent_OverlayShown",
	EventOverlayHidden:                       "VREvent_OverlayHidden",
	EventDashboardActivated:                  "VREvent_DashboardActivated",
	EventDashboardDeactivated:                "VREvent_DashboardDeactivated",
	EventDashboardRequested:                  "VREvent_DashboardRequested",
	EventQuit:                                "VREvent_Quit",
	EventProcessQuit:                         "VREvent_ProcessQuit",
	EventChaperoneDataHasChanged:             "VREvent_ChaperoneDataHasChanged",
	EventKeyboardClosed:                      "VREvent_KeyboardClosed",
	EventKeyboardCharInput:                   "VREvent_KeyboardCharInput",
	EventKeyboardDone:                        "VREvent_KeyboardDone",
}

// String returns the runtime's name for the event.
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("VREvent_%d", uint32(t))
}

// MouseButton is the runtime's overlay mouse button bit.
type MouseButton uint32

const (
	MouseButtonLeft   MouseButton = 0x0001
	MouseButtonRight  MouseButton = 0x0002
	MouseButtonMiddle MouseButton = 0x0004
)

// MouseEvent is the payload of overlay mouse events, in overlay mouse
// coordinates (origin bottom-left, scaled by the overlay's mouse scale).
type MouseEvent struct {
	X, Y   float32
	Button MouseButton
}

// KeyboardEvent is the payload of virtual keyboard events. NewInput holds up
// to eight bytes of UTF-8, NUL padded.
type KeyboardEvent struct {
	NewInput  [8]byte
	UserValue uint64
	Overlay   OverlayHandle
}

// Text returns the characters carried by the event.
func (k KeyboardEvent) Text() string {
	n := 0
	for n < len(k.NewInput) && k.NewInput[n] != 0 {
		n++
	}
	return string(k.NewInput[:n])
}

// Event is one entry from a runtime or overlay event queue. Only the payload
// matching Type is meaningful.
type Event struct {
	Type               EventType
	TrackedDeviceIndex TrackedDeviceIndex
	AgeSeconds         float32
	Mouse              MouseEvent
	Keyboard           KeyboardEvent
	Ipd                float32
}
