package openvrtest

import (
	"github.com/Faultbox/midgard-vr/internal/openvr"
)

// Transform kinds recorded by OverlayState.TransformKind.
const (
	TransformAbsolute        = "absolute"
	TransformDeviceRelative  = "device-relative"
	TransformDeviceComponent = "device-component"
	TransformCursor          = "cursor"
	TransformOverlayRelative = "overlay-relative"
)

// OverlayState is everything the fake knows about one runtime overlay.
type OverlayState struct {
	Key, Name   string
	Thumbnail   bool
	Flags       openvr.OverlayFlags
	Color       [3]float32
	Alpha       float32
	TexelAspect float32
	SortOrder   uint32
	Width       float32
	Curvature   float32
	Bounds      openvr.TextureBounds
	InputMethod openvr.OverlayInputMethod
	MouseScale  openvr.Vector2

	TransformKind string
	Transform     openvr.Matrix34
	Origin        openvr.TrackingUniverseOrigin
	Device        openvr.TrackedDeviceIndex
	Component     string
	Hotspot       openvr.Vector2
	Parent        openvr.OverlayHandle

	Visible        bool
	Texture        *openvr.Texture
	File           string
	TextureSize    [2]uint32
	Events         []openvr.Event
	Cursor         openvr.OverlayHandle
	CursorOverride *openvr.Vector2
	Hover          bool
	Intersection   *openvr.IntersectionResults
	Haptics        int
}

// Overlay is a scriptable openvr.Overlay.
type Overlay struct {
	Overlays map[openvr.OverlayHandle]*OverlayState
	next     openvr.OverlayHandle

	// Calls lists method names in call order.
	Calls []string
	// Errs injects an error for the named method.
	Errs map[string]error

	DashboardsShown []string
	ActiveDashboard openvr.OverlayHandle
	PrimaryDevice   openvr.TrackedDeviceIndex
	CoordTransform  openvr.Matrix34

	KeyboardVisible   bool
	KeyboardRequest   openvr.KeyboardRequest
	KeyboardOverlay   openvr.OverlayHandle
	KeyboardTextValue string
	KeyboardOrigin    openvr.TrackingUniverseOrigin
	KeyboardTransform openvr.Matrix34
	KeyboardAvoid     openvr.Rect2

	MessageResponse openvr.MessageOverlayResponse
	Messages        [][6]string
	MessageClosed   int
}

// NewOverlay returns an overlay fake with no overlays.
func NewOverlay() *Overlay {
	return &Overlay{
		Overlays:       map[openvr.OverlayHandle]*OverlayState{},
		Errs:           map[string]error{},
		PrimaryDevice:  openvr.TrackedDeviceIndexInvalid,
		CoordTransform: openvr.IdentityMatrix34(),
	}
}

// Push queues an event on an overlay's event queue.
func (o *Overlay) Push(h openvr.OverlayHandle, ev openvr.Event) {
	if st := o.Overlays[h]; st != nil {
		st.Events = append(st.Events, ev)
	}
}

// Count returns how many overlays are alive.
func (o *Overlay) Count() int { return len(o.Overlays) }

func (o *Overlay) call(name string) error {
	o.Calls = append(o.Calls, name)
	return o.Errs[name]
}

func (o *Overlay) state(name string, h openvr.OverlayHandle) (*OverlayState, error) {
	if err := o.call(name); err != nil {
		return nil, err
	}
	st := o.Overlays[h]
	if st == nil {
		return nil, openvr.OverlayErrorUnknownOverlay
	}
	return st, nil
}

func (o *Overlay) create(key, name string, thumb bool) openvr.OverlayHandle {
	o.next++
	o.Overlays[o.next] = &OverlayState{Key: key, Name: name, Thumbnail: thumb, Alpha: 1, Width: 1}
	return o.next
}

func (o *Overlay) CreateOverlay(key, name string) (openvr.OverlayHandle, error) {
	if err := o.call("CreateOverlay"); err != nil {
		return openvr.InvalidOverlayHandle, err
	}
	for _, st := range o.Overlays {
		if st.Key == key && !st.Thumbnail {
			return openvr.InvalidOverlayHandle, openvr.OverlayErrorKeyInUse
		}
	}
	return o.create(key, name, false), nil
}

func (o *Overlay) CreateDashboardOverlay(key, name string) (openvr.OverlayHandle, openvr.OverlayHandle, error) {
	if err := o.call("CreateDashboardOverlay"); err != nil {
		return openvr.InvalidOverlayHandle, openvr.InvalidOverlayHandle, err
	}
	main := o.create(key, name, false)
	thumb := o.create(key, name, true)
	return main, thumb, nil
}

func (o *Overlay) DestroyOverlay(h openvr.OverlayHandle) error {
	if _, err := o.state("DestroyOverlay", h); err != nil {
		return err
	}
	delete(o.Overlays, h)
	return nil
}

func (o *Overlay) SetOverlayName(h openvr.OverlayHandle, name string) error {
	st, err := o.state("SetOverlayName", h)
	if err != nil {
		return err
	}
	st.Name = name
	return nil
}

func (o *Overlay) SetOverlayFlag(h openvr.OverlayHandle, flag openvr.OverlayFlags, enabled bool) error {
	st, err := o.state("SetOverlayFlag", h)
	if err != nil {
		return err
	}
	if enabled {
		st.Flags |= flag
	} else {
		st.Flags &^= flag
	}
	return nil
}

func (o *Overlay) SetOverlayColor(h openvr.OverlayHandle, r, g, b float32) error {
	st, err := o.state("SetOverlayColor", h)
	if err != nil {
		return err
	}
	st.Color = [3]float32{r, g, b}
	return nil
}

func (o *Overlay) SetOverlayAlpha(h openvr.OverlayHandle, alpha float32) error {
	st, err := o.state("SetOverlayAlpha", h)
	if err != nil {
		return err
	}
	st.Alpha = alpha
	return nil
}

func (o *Overlay) SetOverlayTexelAspect(h openvr.OverlayHandle, aspect float32) error {
	st, err := o.state("SetOverlayTexelAspect", h)
	if err != nil {
		return err
	}
	st.TexelAspect = aspect
	return nil
}

func (o *Overlay) SetOverlaySortOrder(h openvr.OverlayHandle, order uint32) error {
	st, err := o.state("SetOverlaySortOrder", h)
	if err != nil {
		return err
	}
	st.SortOrder = order
	return nil
}

func (o *Overlay) SetOverlayWidthInMeters(h openvr.OverlayHandle, width float32) error {
	st, err := o.state("SetOverlayWidthInMeters", h)
	if err != nil {
		return err
	}
	st.Width = width
	return nil
}

func (o *Overlay) SetOverlayCurvature(h openvr.OverlayHandle, curvature float32) error {
	st, err := o.state("SetOverlayCurvature", h)
	if err != nil {
		return err
	}
	st.Curvature = curvature
	return nil
}

func (o *Overlay) SetOverlayTextureBounds(h openvr.OverlayHandle, bounds openvr.TextureBounds) error {
	st, err := o.state("SetOverlayTextureBounds", h)
	if err != nil {
		return err
	}
	st.Bounds = bounds
	return nil
}

func (o *Overlay) SetOverlayInputMethod(h openvr.OverlayHandle, method openvr.OverlayInputMethod) error {
	st, err := o.state("SetOverlayInputMethod", h)
	if err != nil {
		return err
	}
	st.InputMethod = method
	return nil
}

func (o *Overlay) SetOverlayMouseScale(h openvr.OverlayHandle, scale openvr.Vector2) error {
	st, err := o.state("SetOverlayMouseScale", h)
	if err != nil {
		return err
	}
	st.MouseScale = scale
	return nil
}

func (o *Overlay) SetOverlayTransformAbsolute(h openvr.OverlayHandle, origin openvr.TrackingUniverseOrigin, transform openvr.Matrix34) error {
	st, err := o.state("SetOverlayTransformAbsolute", h)
	if err != nil {
		return err
	}
	st.TransformKind, st.Origin, st.Transform = TransformAbsolute, origin, transform
	return nil
}

func (o *Overlay) SetOverlayTransformTrackedDeviceRelative(h openvr.OverlayHandle, device openvr.TrackedDeviceIndex, transform openvr.Matrix34) error {
	st, err := o.state("SetOverlayTransformTrackedDeviceRelative", h)
	if err != nil {
		return err
	}
	st.TransformKind, st.Device, st.Transform = TransformDeviceRelative, device, transform
	return nil
}

func (o *Overlay) SetOverlayTransformTrackedDeviceComponent(h openvr.OverlayHandle, device openvr.TrackedDeviceIndex, component string) error {
	st, err := o.state("SetOverlayTransformTrackedDeviceComponent", h)
	if err != nil {
		return err
	}
	st.TransformKind, st.Device, st.Component = TransformDeviceComponent, device, component
	return nil
}

func (o *Overlay) SetOverlayTransformCursor(h openvr.OverlayHandle, hotspot openvr.Vector2) error {
	st, err := o.state("SetOverlayTransformCursor", h)
	if err != nil {
		return err
	}
	st.TransformKind, st.Hotspot = TransformCursor, hotspot
	return nil
}

func (o *Overlay) SetOverlayTransformOverlayRelative(h openvr.OverlayHandle, parent openvr.OverlayHandle, transform openvr.Matrix34) error {
	st, err := o.state("SetOverlayTransformOverlayRelative", h)
	if err != nil {
		return err
	}
	st.TransformKind, st.Parent, st.Transform = TransformOverlayRelative, parent, transform
	return nil
}

func (o *Overlay) TransformForOverlayCoordinates(h openvr.OverlayHandle, _ openvr.TrackingUniverseOrigin, _ openvr.Vector2) (openvr.Matrix34, error) {
	if _, err := o.state("TransformForOverlayCoordinates", h); err != nil {
		return openvr.Matrix34{}, err
	}
	return o.CoordTransform, nil
}

func (o *Overlay) ShowOverlay(h openvr.OverlayHandle) error {
	st, err := o.state("ShowOverlay", h)
	if err != nil {
		return err
	}
	st.Visible = true
	return nil
}

func (o *Overlay) HideOverlay(h openvr.OverlayHandle) error {
	st, err := o.state("HideOverlay", h)
	if err != nil {
		return err
	}
	st.Visible = false
	return nil
}

func (o *Overlay) IsOverlayVisible(h openvr.OverlayHandle) bool {
	st := o.Overlays[h]
	return st != nil && st.Visible
}

func (o *Overlay) IsHoverTargetOverlay(h openvr.OverlayHandle) bool {
	st := o.Overlays[h]
	return st != nil && st.Hover
}

func (o *Overlay) ShowDashboard(key string) {
	o.Calls = append(o.Calls, "ShowDashboard")
	o.DashboardsShown = append(o.DashboardsShown, key)
}

func (o *Overlay) IsActiveDashboardOverlay(h openvr.OverlayHandle) bool {
	return h != openvr.InvalidOverlayHandle && h == o.ActiveDashboard
}

func (o *Overlay) PrimaryDashboardDevice() openvr.TrackedDeviceIndex { return o.PrimaryDevice }

func (o *Overlay) SetOverlayTexture(h openvr.OverlayHandle, tex *openvr.Texture) error {
	st, err := o.state("SetOverlayTexture", h)
	if err != nil {
		return err
	}
	t := *tex
	st.Texture = &t
	return nil
}

func (o *Overlay) SetOverlayFromFile(h openvr.OverlayHandle, path string) error {
	st, err := o.state("SetOverlayFromFile", h)
	if err != nil {
		return err
	}
	st.File = path
	return nil
}

func (o *Overlay) OverlayTextureSize(h openvr.OverlayHandle) (uint32, uint32, error) {
	st, err := o.state("OverlayTextureSize", h)
	if err != nil {
		return 0, 0, err
	}
	return st.TextureSize[0], st.TextureSize[1], nil
}

func (o *Overlay) PollNextOverlayEvent(h openvr.OverlayHandle, ev *openvr.Event) bool {
	st := o.Overlays[h]
	if st == nil || len(st.Events) == 0 {
		return false
	}
	*ev = st.Events[0]
	st.Events = st.Events[1:]
	return true
}

func (o *Overlay) ComputeOverlayIntersection(h openvr.OverlayHandle, _ openvr.IntersectionParams) (openvr.IntersectionResults, bool) {
	st := o.Overlays[h]
	if st == nil || st.Intersection == nil {
		return openvr.IntersectionResults{}, false
	}
	return *st.Intersection, true
}

func (o *Overlay) TriggerLaserMouseHapticVibration(h openvr.OverlayHandle, _, _, _ float32) error {
	st, err := o.state("TriggerLaserMouseHapticVibration", h)
	if err != nil {
		return err
	}
	st.Haptics++
	return nil
}

func (o *Overlay) SetOverlayCursor(h openvr.OverlayHandle, cursor openvr.OverlayHandle) error {
	st, err := o.state("SetOverlayCursor", h)
	if err != nil {
		return err
	}
	st.Cursor = cursor
	return nil
}

func (o *Overlay) SetOverlayCursorPositionOverride(h openvr.OverlayHandle, cursor openvr.Vector2) error {
	st, err := o.state("SetOverlayCursorPositionOverride", h)
	if err != nil {
		return err
	}
	st.CursorOverride = &cursor
	return nil
}

func (o *Overlay) ClearOverlayCursorPositionOverride(h openvr.OverlayHandle) error {
	st, err := o.state("ClearOverlayCursorPositionOverride", h)
	if err != nil {
		return err
	}
	st.CursorOverride = nil
	return nil
}

func (o *Overlay) ShowKeyboard(req openvr.KeyboardRequest) error {
	if err := o.call("ShowKeyboard"); err != nil {
		return err
	}
	if o.KeyboardVisible {
		return openvr.OverlayErrorKeyboardAlreadyInUse
	}
	o.KeyboardVisible, o.KeyboardRequest, o.KeyboardOverlay = true, req, openvr.InvalidOverlayHandle
	return nil
}

func (o *Overlay) ShowKeyboardForOverlay(h openvr.OverlayHandle, req openvr.KeyboardRequest) error {
	if _, err := o.state("ShowKeyboardForOverlay", h); err != nil {
		return err
	}
	if o.KeyboardVisible {
		return openvr.OverlayErrorKeyboardAlreadyInUse
	}
	o.KeyboardVisible, o.KeyboardRequest, o.KeyboardOverlay = true, req, h
	return nil
}

func (o *Overlay) HideKeyboard() {
	o.Calls = append(o.Calls, "HideKeyboard")
	o.KeyboardVisible = false
}

func (o *Overlay) KeyboardText() string { return o.KeyboardTextValue }

func (o *Overlay) SetKeyboardTransformAbsolute(origin openvr.TrackingUniverseOrigin, transform openvr.Matrix34) {
	o.KeyboardOrigin, o.KeyboardTransform = origin, transform
}

func (o *Overlay) SetKeyboardPositionForOverlay(h openvr.OverlayHandle, avoid openvr.Rect2) {
	o.KeyboardOverlay, o.KeyboardAvoid = h, avoid
}

func (o *Overlay) ShowMessageOverlay(text, caption, b0, b1, b2, b3 string) openvr.MessageOverlayResponse {
	o.Messages = append(o.Messages, [6]string{text, caption, b0, b1, b2, b3})
	return o.MessageResponse
}

func (o *Overlay) CloseMessageOverlay() { o.MessageClosed++ }
