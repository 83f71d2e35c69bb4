package openvr

// OverlayFlags are the per-overlay feature bits.
type OverlayFlags uint32

const (
	OverlayFlagsNone                               OverlayFlags = 0
	OverlayFlagsNoDashboardTab                     OverlayFlags = 1 << 3
	OverlayFlagsSendVRDiscreteScrollEvents         OverlayFlags = 1 << 6
	OverlayFlagsSendVRTouchpadEvents               OverlayFlags = 1 << 7
	OverlayFlagsShowTouchPadScrollWheel            OverlayFlags = 1 << 8
	OverlayFlagsTransferOwnershipToInternalProcess OverlayFlags = 1 << 9
	OverlayFlagsSideBySideParallel                 OverlayFlags = 1 << 10
	OverlayFlagsSideBySideCrossed                  OverlayFlags = 1 << 11
	OverlayFlagsPanorama                           OverlayFlags = 1 << 12
	OverlayFlagsStereoPanorama                     OverlayFlags = 1 << 13
	OverlayFlagsSortWithNonSceneOverlays           OverlayFlags = 1 << 14
	OverlayFlagsVisibleInDashboard                 OverlayFlags = 1 << 15
	OverlayFlagsMakeOverlaysInteractiveIfVisible   OverlayFlags = 1 << 16
	OverlayFlagsSendVRSmoothScrollEvents           OverlayFlags = 1 << 17
	OverlayFlagsProtectedContent                   OverlayFlags = 1 << 18
	OverlayFlagsHideLaserIntersection              OverlayFlags = 1 << 19
	OverlayFlagsWantsModalBehavior                 OverlayFlags = 1 << 20
	OverlayFlagsIsPremultiplied                    OverlayFlags = 1 << 21
)

// OverlayFlagNames lists every flag by the name scripts use for it.
var OverlayFlagNames = map[string]OverlayFlags{
	"NoDashboardTab":                     OverlayFlagsNoDashboardTab,
	"SendVRDiscreteScrollEvents":         OverlayFlagsSendVRDiscreteScrollEvents,
	"SendVRTouchpadEvents":               OverlayFlagsSendVRTouchpadEvents,
	"ShowTouchPadScrollWheel":            OverlayFlagsShowTouchPadScrollWheel,
	"TransferOwnershipToInternalProcess": OverlayFlagsTransferOwnershipToInternalProcess,
	"SideBySide_Parallel":                OverlayFlagsSideBySideParallel,
	"SideBySide_Crossed":                 OverlayFlagsSideBySideCrossed,
	"Panorama":                           OverlayFlagsPanorama,
	"StereoPanorama":                     OverlayFlagsStereoPanorama,
	"SortWithNonSceneOverlays":           OverlayFlagsSortWithNonSceneOverlays,
	"VisibleInDashboard":                 OverlayFlagsVisibleInDashboard,
	"MakeOverlaysInteractiveIfVisible":   OverlayFlagsMakeOverlaysInteractiveIfVisible,
	"SendVRSmoothScrollEvents":           OverlayFlagsSendVRSmoothScrollEvents,
	"ProtectedContent":                   OverlayFlagsProtectedContent,
	"HideLaserIntersection":              OverlayFlagsHideLaserIntersection,
	"WantsModalBehavior":                 OverlayFlagsWantsModalBehavior,
	"IsPremultiplied":                    OverlayFlagsIsPremultiplied,
}

// OverlayInputMethod selects how the overlay receives pointer input.
type OverlayInputMethod int

const (
	OverlayInputMethodNone OverlayInputMethod = iota
	OverlayInputMethodMouse
)

// KeyboardInputMode is the virtual keyboard's input mode.
type KeyboardInputMode int

const (
	KeyboardInputModeNormal KeyboardInputMode = iota
	KeyboardInputModePassword
	KeyboardInputModeSubmit
)

// KeyboardLineMode selects single or multi-line keyboard input.
type KeyboardLineMode int

const (
	KeyboardLineModeSingleLine KeyboardLineMode = iota
	KeyboardLineModeMultipleLines
)

// KeyboardFlags modify the virtual keyboard.
type KeyboardFlags uint32

const (
	KeyboardFlagMinimal       KeyboardFlags = 1 << 0
	KeyboardFlagModal         KeyboardFlags = 1 << 1
	KeyboardFlagShowArrowKeys KeyboardFlags = 1 << 2
	KeyboardFlagHideDoneKey   KeyboardFlags = 1 << 3
)

// KeyboardRequest describes a virtual keyboard invocation.
type KeyboardRequest struct {
	InputMode    KeyboardInputMode
	LineMode     KeyboardLineMode
	Flags        KeyboardFlags
	Description  string
	MaxChars     uint32
	ExistingText string
	UserValue    uint64
}

// MessageOverlayResponse is the button a user picked in a message overlay.
type MessageOverlayResponse int

const (
	MessageOverlayButtonPress0                     MessageOverlayResponse = 0
	MessageOverlayButtonPress1                     MessageOverlayResponse = 1
	MessageOverlayButtonPress2                     MessageOverlayResponse = 2
	MessageOverlayButtonPress3                     MessageOverlayResponse = 3
	MessageOverlayCouldntFindSystemOverlay         MessageOverlayResponse = 4
	MessageOverlayCouldntFindOrCreateClientOverlay MessageOverlayResponse = 5
	MessageOverlayApplicationQuit                  MessageOverlayResponse = 6
)

// IntersectionParams is a ray cast against an overlay, in runtime space.
type IntersectionParams struct {
	Source    Vector3
	Direction Vector3
	Origin    TrackingUniverseOrigin
}

// IntersectionResults describes where a ray hit an overlay.
type IntersectionResults struct {
	Point    Vector3
	Normal   Vector3
	UVs      Vector2
	Distance float32
}
