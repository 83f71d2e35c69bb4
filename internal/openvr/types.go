// Package openvr describes the VR runtime surface the engine talks to.
//
// The types mirror the runtime's C API closely (handles, 3x4 row-major
// matrices, status codes) so an adapter over the native library stays thin.
// Everything above this package works through the interfaces in runtime.go.
package openvr

// Handles issued by the runtime. Zero is always the invalid value.
type (
	OverlayHandle    uint64
	ActionHandle     uint64
	ActionSetHandle  uint64
	InputValueHandle uint64
)

const (
	InvalidOverlayHandle    OverlayHandle    = 0
	InvalidActionHandle     ActionHandle     = 0
	InvalidActionSetHandle  ActionSetHandle  = 0
	InvalidInputValueHandle InputValueHandle = 0
)

// TrackedDeviceIndex identifies a tracked device slot.
type TrackedDeviceIndex uint32

const (
	TrackedDeviceIndexHmd     TrackedDeviceIndex = 0
	TrackedDeviceIndexInvalid TrackedDeviceIndex = 0xFFFFFFFF
	MaxTrackedDeviceCount                        = 64
)

// TextureID identifies a render-model texture.
type TextureID int32

const InvalidTextureID TextureID = -1

// Matrix34 is the runtime's 3x4 row-major affine matrix. Position is column 3.
type Matrix34 [3][4]float32

// IdentityMatrix34 returns the 3x4 identity.
func IdentityMatrix34() Matrix34 {
	return Matrix34{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

// Matrix44 is a 4x4 row-major matrix.
type Matrix44 [4][4]float32

type (
	Vector2 [2]float32
	Vector3 [3]float32
	Vector4 [4]float32
)

// Quaternion uses the runtime's W-first layout.
type Quaternion struct {
	W, X, Y, Z float32
}

// Color is a linear RGBA colour.
type Color struct {
	R, G, B, A float32
}

// Rect2 is an axis-aligned rectangle in overlay UV space.
type Rect2 struct {
	TopLeft     Vector2
	BottomRight Vector2
}

// Quad is the play-area rectangle as four runtime-space corners.
type Quad [4]Vector3

// ApplicationType selects how the runtime treats this process.
type ApplicationType int

const (
	ApplicationOther ApplicationType = iota
	ApplicationScene
	ApplicationOverlay
	ApplicationBackground
	ApplicationUtility
)

// TrackingUniverseOrigin selects the tracking space for poses.
type TrackingUniverseOrigin int

const (
	TrackingUniverseSeated TrackingUniverseOrigin = iota
	TrackingUniverseStanding
	TrackingUniverseRawAndUncalibrated
)

// TrackingResult is the tracking quality of a pose.
type TrackingResult int

const (
	TrackingResultUninitialized         TrackingResult = 1
	TrackingResultCalibratingInProgress TrackingResult = 100
	TrackingResultCalibratingOutOfRange TrackingResult = 101
	TrackingResultRunningOK             TrackingResult = 200
	TrackingResultRunningOutOfRange     TrackingResult = 201
	TrackingResultFallbackRotationOnly  TrackingResult = 300
)

// TrackedDevicePose is one device pose in runtime coordinates.
type TrackedDevicePose struct {
	DeviceToAbsoluteTracking Matrix34
	Velocity                 Vector3
	AngularVelocity          Vector3
	TrackingResult           TrackingResult
	PoseIsValid              bool
	DeviceIsConnected        bool
}

// TrackedDeviceClass categorises tracked devices.
type TrackedDeviceClass int

const (
	TrackedDeviceClassInvalid TrackedDeviceClass = iota
	TrackedDeviceClassHMD
	TrackedDeviceClassController
	TrackedDeviceClassGenericTracker
	TrackedDeviceClassTrackingReference
	TrackedDeviceClassDisplayRedirect
)

// ControllerAxisType describes what physical control drives an axis.
type ControllerAxisType int

const (
	ControllerAxisNone ControllerAxisType = iota
	ControllerAxisTrackPad
	ControllerAxisJoystick
	ControllerAxisTrigger
)

// Eye selects a stereo eye.
type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

// TextureType is the graphics API a submitted texture belongs to.
type TextureType int

const (
	TextureTypeInvalid   TextureType = -1
	TextureTypeDirectX   TextureType = 0
	TextureTypeOpenGL    TextureType = 1
	TextureTypeVulkan    TextureType = 2
	TextureTypeIOSurface TextureType = 3
)

// ColorSpace tells the compositor how to interpret texture values.
type ColorSpace int

const (
	ColorSpaceAuto ColorSpace = iota
	ColorSpaceGamma
	ColorSpaceLinear
)

// Texture is a native texture handed to the compositor or an overlay.
// Handle is an ID3D11Texture2D pointer or an OpenGL texture name.
type Texture struct {
	Handle     uintptr
	Type       TextureType
	ColorSpace ColorSpace
}

// TextureBounds is the UV sub-rectangle of a texture to display.
type TextureBounds struct {
	UMin, VMin, UMax, VMax float32
}

// SubmitFlags modify compositor submission.
type SubmitFlags int

const SubmitDefault SubmitFlags = 0

// CalibrationState is the chaperone calibration status.
type CalibrationState int

const (
	CalibrationOK                             CalibrationState = 1
	CalibrationWarning                        CalibrationState = 100
	CalibrationWarningBaseStationMayHaveMoved CalibrationState = 101
	CalibrationWarningBaseStationRemoved      CalibrationState = 102
	CalibrationWarningSeatedBoundsInvalid     CalibrationState = 103
	CalibrationError                          CalibrationState = 200
	CalibrationErrorBaseStationUninitialized  CalibrationState = 201
	CalibrationErrorBaseStationConflict       CalibrationState = 202
	CalibrationErrorPlayAreaInvalid           CalibrationState = 203
	CalibrationErrorCollisionBoundsInvalid    CalibrationState = 204
)

// StageRenderSettings controls how the compositor draws a stage override.
type StageRenderSettings struct {
	PrimaryColor        Color
	SecondaryColor      Color
	VignetteInnerRadius float32
	VignetteOuterRadius float32
	FresnelStrength     float32
	BackfaceCulling     bool
	Greyscale           bool
	Wireframe           bool
}

// DefaultStageRenderSettings matches the compositor's own defaults.
func DefaultStageRenderSettings() StageRenderSettings {
	return StageRenderSettings{
		PrimaryColor:   Color{1, 1, 1, 1},
		SecondaryColor: Color{1, 1, 1, 1},
	}
}
