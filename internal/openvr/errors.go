package openvr

import "fmt"

// Runtime status codes. Each type implements error so callers can match a
// specific code with errors.Is. A zero code is success and is never returned
// as a non-nil error.

// InitError is returned when the runtime cannot start.
type InitError int

const (
	InitErrorNone                      InitError = 0
	InitErrorUnknown                   InitError = 1
	InitErrorInstallationNotFound      InitError = 100
	InitErrorInstallationCorrupt       InitError = 101
	InitErrorClientDLLNotFound         InitError = 102
	InitErrorFileNotFound              InitError = 103
	InitErrorFactoryNotFound           InitError = 104
	InitErrorInterfaceNotFound         InitError = 105
	InitErrorInvalidInterface          InitError = 106
	InitErrorUserConfigDirInvalid      InitError = 107
	InitErrorHmdNotFound               InitError = 108
	InitErrorNotInitialized            InitError = 109
	InitErrorPathRegistryNotFound      InitError = 110
	InitErrorNoConfigPath              InitError = 111
	InitErrorNoLogPath                 InitError = 112
	InitErrorPathRegistryNotWritable   InitError = 113
	InitErrorInitCanceledByUser        InitError = 141
	InitErrorDriverNotFound            InitError = 200
	InitErrorHmdNotFoundPresenceFailed InitError = 1101
)

var initErrorNames = map[InitError]string{
	InitErrorUnknown:                   "unknown error",
	InitErrorInstallationNotFound:      "installation not found",
	InitErrorInstallationCorrupt:       "installation corrupt",
	InitErrorClientDLLNotFound:         "client library not found",
	InitErrorFileNotFound:              "file not found",
	InitErrorFactoryNotFound:           "factory not found",
	InitErrorInterfaceNotFound:         "interface not found",
	InitErrorInvalidInterface:          "invalid interface",
	InitErrorUserConfigDirInvalid:      "user config directory invalid",
	InitErrorHmdNotFound:               "hmd not found",
	InitErrorNotInitialized:            "not initialized",
	InitErrorPathRegistryNotFound:      "path registry not found",
	InitErrorNoConfigPath:              "no config path",
	InitErrorNoLogPath:                 "no log path",
	InitErrorPathRegistryNotWritable:   "path registry not writable",
	InitErrorInitCanceledByUser:        "init canceled by user",
	InitErrorDriverNotFound:            "driver not found",
	InitErrorHmdNotFoundPresenceFailed: "hmd not found (presence check failed)",
}

func (e InitError) Error() string {
	if name, ok := initErrorNames[e]; ok {
		return "vr init: " + name
	}
	return fmt.Sprintf("vr init: error %d", int(e))
}

// CompositorError is returned by compositor calls.
type CompositorError int

const (
	CompositorErrorNone                         CompositorError = 0
	CompositorErrorRequestFailed                CompositorError = 1
	CompositorErrorIncompatibleVersion          CompositorError = 100
	CompositorErrorDoNotHaveFocus               CompositorError = 101
	CompositorErrorInvalidTexture               CompositorError = 102
	CompositorErrorIsNotSceneApplication        CompositorError = 103
	CompositorErrorTextureIsOnWrongDevice       CompositorError = 104
	CompositorErrorTextureUsesUnsupportedFormat CompositorError = 105
	CompositorErrorSharedTexturesNotSupported   CompositorError = 106
	CompositorErrorIndexOutOfRange              CompositorError = 107
	CompositorErrorAlreadySubmitted             CompositorError = 108
	CompositorErrorInvalidBounds                CompositorError = 109
)

func (e CompositorError) Error() string {
	return fmt.Sprintf("vr compositor: error %d", int(e))
}

// InputError is returned by the action input API.
type InputError int

const (
	InputErrorNone                     InputError = 0
	InputErrorNameNotFound             InputError = 1
	InputErrorWrongType                InputError = 2
	InputErrorInvalidHandle            InputError = 3
	InputErrorInvalidParam             InputError = 4
	InputErrorNoSteam                  InputError = 5
	InputErrorMaxCapacityReached       InputError = 6
	InputErrorIPCError                 InputError = 7
	InputErrorNoActiveActionSet        InputError = 8
	InputErrorInvalidDevice            InputError = 9
	InputErrorInvalidSkeleton          InputError = 10
	InputErrorInvalidBoneCount         InputError = 11
	InputErrorInvalidCompressedData    InputError = 12
	InputErrorNoData                   InputError = 13
	InputErrorBufferTooSmall           InputError = 14
	InputErrorMismatchedActionManifest InputError = 15
	InputErrorMissingSkeletonData      InputError = 16
	InputErrorInvalidBoneIndex         InputError = 17
)

var inputErrorNames = map[InputError]string{
	InputErrorNameNotFound:             "name not found",
	InputErrorWrongType:                "wrong type",
	InputErrorInvalidHandle:            "invalid handle",
	InputErrorInvalidParam:             "invalid parameter",
	InputErrorNoSteam:                  "no steam",
	InputErrorMaxCapacityReached:       "max capacity reached",
	InputErrorIPCError:                 "ipc error",
	InputErrorNoActiveActionSet:        "no active action set",
	InputErrorInvalidDevice:            "invalid device",
	InputErrorInvalidSkeleton:          "invalid skeleton",
	InputErrorInvalidBoneCount:         "invalid bone count",
	InputErrorInvalidCompressedData:    "invalid compressed data",
	InputErrorNoData:                   "no data",
	InputErrorBufferTooSmall:           "buffer too small",
	InputErrorMismatchedActionManifest: "mismatched action manifest",
	InputErrorMissingSkeletonData:      "missing skeleton data",
	InputErrorInvalidBoneIndex:         "invalid bone index",
}

func (e InputError) Error() string {
	if name, ok := inputErrorNames[e]; ok {
		return "vr input: " + name
	}
	return fmt.Sprintf("vr input: error %d", int(e))
}

// OverlayError is returned by overlay calls.
type OverlayError int

const (
	OverlayErrorNone                     OverlayError = 0
	OverlayErrorUnknownOverlay           OverlayError = 10
	OverlayErrorInvalidHandle            OverlayError = 11
	OverlayErrorPermissionDenied         OverlayError = 12
	OverlayErrorOverlayLimitExceeded     OverlayError = 13
	OverlayErrorWrongVisibilityType      OverlayError = 14
	OverlayErrorKeyTooLong               OverlayError = 15
	OverlayErrorNameTooLong              OverlayError = 16
	OverlayErrorKeyInUse                 OverlayError = 17
	OverlayErrorWrongTransformType       OverlayError = 18
	OverlayErrorInvalidTrackedDevice     OverlayError = 19
	OverlayErrorInvalidParameter         OverlayError = 20
	OverlayErrorThumbnailCantBeDestroyed OverlayError = 21
	OverlayErrorArrayTooSmall            OverlayError = 22
	OverlayErrorRequestFailed            OverlayError = 23
	OverlayErrorInvalidTexture           OverlayError = 24
	OverlayErrorUnableToLoadFile         OverlayError = 25
	OverlayErrorKeyboardAlreadyInUse     OverlayError = 26
	OverlayErrorNoNeighbor               OverlayError = 27
)

var overlayErrorNames = map[OverlayError]string{
	OverlayErrorUnknownOverlay:           "unknown overlay",
	OverlayErrorInvalidHandle:            "invalid handle",
	OverlayErrorPermissionDenied:         "permission denied",
	OverlayErrorOverlayLimitExceeded:     "overlay limit exceeded",
	OverlayErrorWrongVisibilityType:      "wrong visibility type",
	OverlayErrorKeyTooLong:               "key too long",
	OverlayErrorNameTooLong:              "name too long",
	OverlayErrorKeyInUse:                 "key in use",
	OverlayErrorWrongTransformType:       "wrong transform type",
	OverlayErrorInvalidTrackedDevice:     "invalid tracked device",
	OverlayErrorInvalidParameter:         "invalid parameter",
	OverlayErrorThumbnailCantBeDestroyed: "thumbnail can't be destroyed",
	OverlayErrorArrayTooSmall:            "array too small",
	OverlayErrorRequestFailed:            "request failed",
	OverlayErrorInvalidTexture:           "invalid texture",
	OverlayErrorUnableToLoadFile:         "unable to load file",
	OverlayErrorKeyboardAlreadyInUse:     "keyboard already in use",
	OverlayErrorNoNeighbor:               "no neighbor",
}

func (e OverlayError) Error() string {
	if name, ok := overlayErrorNames[e]; ok {
		return "vr overlay: " + name
	}
	return fmt.Sprintf("vr overlay: error %d", int(e))
}

// RenderModelError is returned by render-model loads. Loading is not a
// failure; it means the asynchronous load has not finished yet.
type RenderModelError int

const (
	RenderModelErrorNone               RenderModelError = 0
	RenderModelErrorLoading            RenderModelError = 100
	RenderModelErrorNotSupported       RenderModelError = 200
	RenderModelErrorInvalidArg         RenderModelError = 300
	RenderModelErrorInvalidModel       RenderModelError = 301
	RenderModelErrorNoShapes           RenderModelError = 302
	RenderModelErrorMultipleShapes     RenderModelError = 303
	RenderModelErrorTooManyVertices    RenderModelError = 304
	RenderModelErrorMultipleTextures   RenderModelError = 305
	RenderModelErrorBufferTooSmall     RenderModelError = 306
	RenderModelErrorNotEnoughNormals   RenderModelError = 307
	RenderModelErrorNotEnoughTexCoords RenderModelError = 308
	RenderModelErrorInvalidTexture     RenderModelError = 400
)

func (e RenderModelError) Error() string {
	if e == RenderModelErrorLoading {
		return "vr render model: loading"
	}
	return fmt.Sprintf("vr render model: error %d", int(e))
}

// TrackedPropertyError is the status of a device property query.
type TrackedPropertyError int

const (
	TrackedPropSuccess                  TrackedPropertyError = 0
	TrackedPropWrongDataType            TrackedPropertyError = 1
	TrackedPropWrongDeviceClass         TrackedPropertyError = 2
	TrackedPropBufferTooSmall           TrackedPropertyError = 3
	TrackedPropUnknownProperty          TrackedPropertyError = 4
	TrackedPropInvalidDevice            TrackedPropertyError = 5
	TrackedPropCouldNotContactServer    TrackedPropertyError = 6
	TrackedPropValueNotProvidedByDevice TrackedPropertyError = 7
	TrackedPropNotYetAvailable          TrackedPropertyError = 12
)

func (e TrackedPropertyError) Error() string {
	return fmt.Sprintf("vr property: error %d", int(e))
}
