package openvr

// Runtime is the process-wide entry point of the VR runtime. Interface
// accessors return nil when that interface is unavailable (for example
// before Init or after Shutdown).
type Runtime interface {
	// IsHmdPresent is a cheap probe that works without a session.
	IsHmdPresent() bool
	Init(app ApplicationType) (System, error)
	Shutdown()

	Compositor() Compositor
	Input() Input
	Overlay() Overlay
	Chaperone() Chaperone
	RenderModels() (RenderModels, error)
}

// System is the per-session device and display interface.
type System interface {
	RecommendedRenderTargetSize() (width, height uint32)
	// ProjectionRaw returns the tangents of the half angles of an eye's
	// frustum as left, right, top, bottom.
	ProjectionRaw(eye Eye) (left, right, top, bottom float32)
	EyeToHeadTransform(eye Eye) Matrix34

	PollNextEvent(ev *Event) bool

	TrackedDeviceClass(index TrackedDeviceIndex) TrackedDeviceClass
	IsTrackedDeviceConnected(index TrackedDeviceIndex) bool
	SortedTrackedDeviceIndicesOfClass(class TrackedDeviceClass, out []TrackedDeviceIndex, relativeTo TrackedDeviceIndex) uint32

	StringTrackedDeviceProperty(index TrackedDeviceIndex, prop TrackedDeviceProperty) (string, TrackedPropertyError)
	BoolTrackedDeviceProperty(index TrackedDeviceIndex, prop TrackedDeviceProperty) (bool, TrackedPropertyError)
	Int32TrackedDeviceProperty(index TrackedDeviceIndex, prop TrackedDeviceProperty) (int32, TrackedPropertyError)
	Uint64TrackedDeviceProperty(index TrackedDeviceIndex, prop TrackedDeviceProperty) (uint64, TrackedPropertyError)
	FloatTrackedDeviceProperty(index TrackedDeviceIndex, prop TrackedDeviceProperty) (float32, TrackedPropertyError)
}

// Compositor receives eye textures and controls compositor-side visuals.
type Compositor interface {
	TrackingSpace() TrackingUniverseOrigin
	SetTrackingSpace(origin TrackingUniverseOrigin)

	// WaitGetPoses blocks until the runtime is ready for the next frame and
	// fills the pose slices.
	WaitGetPoses(render, game []TrackedDevicePose) error
	Submit(eye Eye, tex *Texture, bounds *TextureBounds, flags SubmitFlags) error

	FadeToColor(seconds float32, color Color, background bool)
	CurrentFadeColor(background bool) Color
	FadeGrid(seconds float32, fadeIn bool)
	CurrentGridAlpha() float32

	SetSkyboxOverride(textures []Texture) error
	ClearSkyboxOverride()
	SetStageOverrideAsync(modelPath string, transform Matrix34, settings StageRenderSettings) error
	ClearStageOverride()
}

// Input is the action-based input API.
type Input interface {
	SetActionManifestPath(path string) error
	ActionSetHandle(name string) (ActionSetHandle, error)
	ActionHandle(name string) (ActionHandle, error)

	UpdateActionState(sets []ActiveActionSet) error
	DigitalActionData(action ActionHandle, restrict InputValueHandle) (DigitalActionData, error)
	AnalogActionData(action ActionHandle, restrict InputValueHandle) (AnalogActionData, error)
	PoseActionDataRelativeToNow(action ActionHandle, origin TrackingUniverseOrigin, secondsFromNow float32, restrict InputValueHandle) (PoseActionData, error)
	SkeletalActionData(action ActionHandle) (SkeletalActionData, error)
	SkeletalBoneData(action ActionHandle, space SkeletalTransformSpace, motion SkeletalMotionRange, out []BoneTransform) error
	// SkeletalBoneDataCompressed writes into buf and returns the bytes used.
	SkeletalBoneDataCompressed(action ActionHandle, motion SkeletalMotionRange, buf []byte) (int, error)

	TriggerHapticVibrationAction(action ActionHandle, startSecondsFromNow, duration, frequency, amplitude float32, restrict InputValueHandle) error
	ShowActionOrigins(set ActionSetHandle, action ActionHandle) error
	ShowBindingsForActionSet(sets []ActiveActionSet, origin InputValueHandle) error
}

// Overlay manages 2D quads composited into the VR view.
type Overlay interface {
	CreateOverlay(key, name string) (OverlayHandle, error)
	CreateDashboardOverlay(key, name string) (main, thumbnail OverlayHandle, err error)
	DestroyOverlay(h OverlayHandle) error
	SetOverlayName(h OverlayHandle, name string) error

	SetOverlayFlag(h OverlayHandle, flag OverlayFlags, enabled bool) error
	SetOverlayColor(h OverlayHandle, r, g, b float32) error
	SetOverlayAlpha(h OverlayHandle, alpha float32) error
	SetOverlayTexelAspect(h OverlayHandle, aspect float32) error
	SetOverlaySortOrder(h OverlayHandle, order uint32) error
	SetOverlayWidthInMeters(h OverlayHandle, width float32) error
	SetOverlayCurvature(h OverlayHandle, curvature float32) error
	SetOverlayTextureBounds(h OverlayHandle, bounds TextureBounds) error
	SetOverlayInputMethod(h OverlayHandle, method OverlayInputMethod) error
	SetOverlayMouseScale(h OverlayHandle, scale Vector2) error

	SetOverlayTransformAbsolute(h OverlayHandle, origin TrackingUniverseOrigin, transform Matrix34) error
	SetOverlayTransformTrackedDeviceRelative(h OverlayHandle, device TrackedDeviceIndex, transform Matrix34) error
	SetOverlayTransformTrackedDeviceComponent(h OverlayHandle, device TrackedDeviceIndex, component string) error
	SetOverlayTransformCursor(h OverlayHandle, hotspot Vector2) error
	SetOverlayTransformOverlayRelative(h OverlayHandle, parent OverlayHandle, transform Matrix34) error
	TransformForOverlayCoordinates(h OverlayHandle, origin TrackingUniverseOrigin, coords Vector2) (Matrix34, error)

	ShowOverlay(h OverlayHandle) error
	HideOverlay(h OverlayHandle) error
	IsOverlayVisible(h OverlayHandle) bool
	IsHoverTargetOverlay(h OverlayHandle) bool
	ShowDashboard(key string)
	IsActiveDashboardOverlay(h OverlayHandle) bool
	PrimaryDashboardDevice() TrackedDeviceIndex

	SetOverlayTexture(h OverlayHandle, tex *Texture) error
	SetOverlayFromFile(h OverlayHandle, path string) error
	OverlayTextureSize(h OverlayHandle) (width, height uint32, err error)

	PollNextOverlayEvent(h OverlayHandle, ev *Event) bool
	ComputeOverlayIntersection(h OverlayHandle, params IntersectionParams) (IntersectionResults, bool)
	TriggerLaserMouseHapticVibration(h OverlayHandle, duration, frequency, amplitude float32) error
	SetOverlayCursor(h OverlayHandle, cursor OverlayHandle) error
	SetOverlayCursorPositionOverride(h OverlayHandle, cursor Vector2) error
	ClearOverlayCursorPositionOverride(h OverlayHandle) error

	ShowKeyboard(req KeyboardRequest) error
	ShowKeyboardForOverlay(h OverlayHandle, req KeyboardRequest) error
	HideKeyboard()
	KeyboardText() string
	SetKeyboardTransformAbsolute(origin TrackingUniverseOrigin, transform Matrix34)
	SetKeyboardPositionForOverlay(h OverlayHandle, avoid Rect2)

	ShowMessageOverlay(text, caption, button0, button1, button2, button3 string) MessageOverlayResponse
	CloseMessageOverlay()
}

// RenderModels loads controller and HMD meshes asynchronously. Both loaders
// return RenderModelErrorLoading until the data is ready.
type RenderModels interface {
	LoadRenderModelAsync(name string) (*RenderModel, error)
	FreeRenderModel(m *RenderModel)
	LoadTextureAsync(id TextureID) (*TextureMap, error)
	FreeTexture(t *TextureMap)
}

// RenderModelVertex is one vertex of a runtime render model, in runtime space.
type RenderModelVertex struct {
	Position Vector3
	Normal   Vector3
	TexCoord Vector2
}

// RenderModel is a loaded runtime mesh. Indices form triangles.
type RenderModel struct {
	Vertices         []RenderModelVertex
	Indices          []uint16
	DiffuseTextureID TextureID
}

// TextureMap is a loaded render-model texture with 4 bytes per pixel in
// BGRA order.
type TextureMap struct {
	Width, Height uint16
	Data          []byte
}

// Chaperone exposes the play-area bounds.
type Chaperone interface {
	CalibrationState() CalibrationState
	PlayAreaSize() (x, z float32, ok bool)
	PlayAreaRect() (Quad, bool)
	ReloadInfo()
	SetSceneColor(color Color)
	AreBoundsVisible() bool
	ForceBoundsVisible(force bool)
	ResetZeroPose(origin TrackingUniverseOrigin)
}
