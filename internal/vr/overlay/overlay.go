// Package overlay manages compositor overlays: flat or curved quads drawn by
// the VR runtime on top of (or instead of) the scene, textured from an image
// file or from a live off-screen GUI canvas.
//
// Overlay parameters are cached locally and pushed to the runtime lazily.
// Setters only mark the overlay dirty; Update pushes everything in one pass.
// Changing the kind destroys and recreates the runtime overlay.
package overlay

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/engine/canvas"
	"github.com/Faultbox/midgard-vr/internal/engine/picking"
	"github.com/Faultbox/midgard-vr/internal/engine/signal"
	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Kind selects between an in-world overlay and a dashboard tab.
type Kind int

const (
	KindOverlay Kind = iota
	KindDashboard
)

func (k Kind) String() string {
	switch k {
	case KindOverlay:
		return "overlay"
	case KindDashboard:
		return "dashboard"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// TransformKind selects what an overlay's transform is relative to.
type TransformKind int

const (
	// TransformAbsolute places the overlay in the tracking universe.
	TransformAbsolute TransformKind = iota
	// TransformDeviceRelative follows a tracked device.
	TransformDeviceRelative
	// TransformComponent draws on a render model component of a device.
	TransformComponent
	// TransformCursor uses the transform's x and y position as the
	// cursor hotspot in texture space.
	TransformCursor
	// TransformMountable is relative to another overlay.
	TransformMountable
)

var transformKindNames = [...]string{"absolute", "device-relative", "component", "cursor", "mountable"}

func (k TransformKind) String() string {
	if k >= 0 && int(k) < len(transformKindNames) {
		return transformKindNames[k]
	}
	return fmt.Sprintf("TransformKind(%d)", int(k))
}

// ParseTransformKind accepts the names String returns.
func ParseTransformKind(s string) (TransformKind, error) {
	for i, name := range transformKindNames {
		if strings.EqualFold(s, name) {
			return TransformKind(i), nil
		}
	}
	return TransformAbsolute, fmt.Errorf("unknown overlay transform %q", s)
}

// SupportedFlags are the runtime overlay flags an overlay may set. Update
// pushes each of them, on or off, every time.
const SupportedFlags = openvr.OverlayFlagsNoDashboardTab |
	openvr.OverlayFlagsSendVRDiscreteScrollEvents |
	openvr.OverlayFlagsSendVRTouchpadEvents |
	openvr.OverlayFlagsShowTouchPadScrollWheel |
	openvr.OverlayFlagsSideBySideParallel |
	openvr.OverlayFlagsSideBySideCrossed |
	openvr.OverlayFlagsPanorama |
	openvr.OverlayFlagsStereoPanorama |
	openvr.OverlayFlagsSortWithNonSceneOverlays |
	openvr.OverlayFlagsVisibleInDashboard |
	openvr.OverlayFlagsMakeOverlaysInteractiveIfVisible |
	openvr.OverlayFlagsSendVRSmoothScrollEvents |
	openvr.OverlayFlagsProtectedContent |
	openvr.OverlayFlagsHideLaserIntersection |
	openvr.OverlayFlagsWantsModalBehavior |
	openvr.OverlayFlagsIsPremultiplied

// Overlay is one compositor overlay. Create overlays with Manager.Add.
type Overlay struct {
	m    *Manager
	id   int
	key  string
	name string

	handle openvr.OverlayHandle
	thumb  openvr.OverlayHandle

	kind          Kind
	transformKind TransformKind
	transform     math.Mat4
	device        openvr.TrackedDeviceIndex
	component     string

	flags       openvr.OverlayFlags
	inputMethod openvr.OverlayInputMethod
	mouseScale  math.Vec2
	uvMin       math.Vec2
	uvMax       math.Vec2
	width       float32
	color       [4]float32
	texelAspect float32
	sortOrder   uint32
	curvature   float32

	textureFile     string
	thumbnailFile   string
	textureLoaded   bool
	thumbnailLoaded bool
	fileTextures    [2]gpu.Texture

	canvas      *canvas.Offscreen
	canvasFrame signal.ID
	canvasGone  signal.ID

	cursor  int
	mountTo int

	dirty     bool
	typeDirty bool
}

func newOverlay(m *Manager, id int, key, name string) *Overlay {
	return &Overlay{
		m:           m,
		id:          id,
		key:         key,
		name:        name,
		transform:   math.Identity(),
		device:      openvr.TrackedDeviceIndexHmd,
		inputMethod: openvr.OverlayInputMethodNone,
		mouseScale:  math.Vec2{X: 1, Y: 1},
		uvMax:       math.Vec2{X: 1, Y: 1},
		width:       1.5,
		color:       [4]float32{1, 1, 1, 1},
		texelAspect: 1,
		dirty:       true,
		typeDirty:   true,
	}
}

// ID returns the overlay's manager id.
func (o *Overlay) ID() int { return o.id }

// Key returns the unique runtime key.
func (o *Overlay) Key() string { return o.key }

// Name returns the user-visible name.
func (o *Overlay) Name() string { return o.name }

// Handle returns the runtime handle, invalid until the first Update.
func (o *Overlay) Handle() openvr.OverlayHandle { return o.handle }

// ThumbnailHandle returns the dashboard thumbnail handle.
func (o *Overlay) ThumbnailHandle() openvr.OverlayHandle { return o.thumb }

// Dirty reports whether parameters wait to be pushed.
func (o *Overlay) Dirty() bool { return o.dirty }

// TypeDirty reports whether the runtime overlay must be recreated.
func (o *Overlay) TypeDirty() bool { return o.typeDirty }

func (o *Overlay) live() bool {
	return o.m.ovl != nil && o.handle != openvr.InvalidOverlayHandle
}

// Kind returns the overlay kind.
func (o *Overlay) Kind() Kind { return o.kind }

// SetKind changes the kind. The runtime overlay is recreated on the next
// Update.
func (o *Overlay) SetKind(k Kind) {
	if k == o.kind {
		return
	}
	o.kind = k
	o.typeDirty = true
}

// MarkDirty forces the next Update to push every parameter.
func (o *Overlay) MarkDirty() { o.dirty = true }

// Transform returns the engine-space transform.
func (o *Overlay) Transform() math.Mat4 { return o.transform }

// SetTransform sets the engine-space transform.
func (o *Overlay) SetTransform(m math.Mat4) {
	o.transform = m
	o.dirty = true
}

// TransformKind returns what the transform is relative to.
func (o *Overlay) TransformKind() TransformKind { return o.transformKind }

// SetTransformKind changes what the transform is relative to.
func (o *Overlay) SetTransformKind(k TransformKind) {
	o.transformKind = k
	o.dirty = true
}

// SetTransformDevice sets the device used by device-relative and component
// transforms.
func (o *Overlay) SetTransformDevice(device openvr.TrackedDeviceIndex) {
	o.device = device
	o.dirty = true
}

// SetTransformComponent sets the render model component for component
// transforms.
func (o *Overlay) SetTransformComponent(component string) {
	o.component = component
	o.dirty = true
}

// Flags returns the requested flags.
func (o *Overlay) Flags() openvr.OverlayFlags { return o.flags }

// SetFlags replaces the requested flags. Bits outside SupportedFlags are
// dropped.
func (o *Overlay) SetFlags(flags openvr.OverlayFlags) {
	o.flags = flags & SupportedFlags
	o.dirty = true
}

// SetFlag turns one flag on or off.
func (o *Overlay) SetFlag(flag openvr.OverlayFlags, on bool) {
	if on {
		o.SetFlags(o.flags | flag)
	} else {
		o.SetFlags(o.flags &^ flag)
	}
}

// SetInputMethod selects how the overlay receives laser mouse input.
func (o *Overlay) SetInputMethod(m openvr.OverlayInputMethod) {
	o.inputMethod = m
	o.dirty = true
}

// SetMouseScale sets the size of the overlay in mouse coordinates.
func (o *Overlay) SetMouseScale(scale math.Vec2) {
	o.mouseScale = scale
	o.dirty = true
}

// UVBounds returns the part of the texture shown.
func (o *Overlay) UVBounds() (lo, hi math.Vec2) { return o.uvMin, o.uvMax }

// SetUVBounds sets the part of the texture shown.
func (o *Overlay) SetUVBounds(lo, hi math.Vec2) {
	o.uvMin, o.uvMax = lo, hi
	o.dirty = true
}

// Width returns the overlay width in meters.
func (o *Overlay) Width() float32 { return o.width }

// SetWidth sets the overlay width in meters.
func (o *Overlay) SetWidth(meters float32) {
	o.width = meters
	o.dirty = true
}

// Color returns the tint and alpha.
func (o *Overlay) Color() [4]float32 { return o.color }

// SetColor sets the tint and alpha.
func (o *Overlay) SetColor(r, g, b, a float32) {
	o.color = [4]float32{r, g, b, a}
	o.dirty = true
}

// SetTexelAspect sets the texel aspect ratio.
func (o *Overlay) SetTexelAspect(aspect float32) {
	o.texelAspect = aspect
	o.dirty = true
}

// SetSortOrder sets the draw order among overlays.
func (o *Overlay) SetSortOrder(order uint32) {
	o.sortOrder = order
	o.dirty = true
}

// SetCurvature sets the curvature, 0 flat to 1 a full cylinder.
func (o *Overlay) SetCurvature(c float32) {
	o.curvature = c
	o.dirty = true
}

// SetName renames the overlay, immediately if it is live.
func (o *Overlay) SetName(name string) {
	o.name = name
	if !o.live() {
		return
	}
	if err := o.m.ovl.SetOverlayName(o.handle, name); err != nil {
		log().Error("VR overlay rename failed", zap.String("overlay", o.key), zap.Error(err))
	}
}

// TextureFile returns the image file shown when no canvas is set.
func (o *Overlay) TextureFile() string { return o.textureFile }

// SetTextureFile shows an image file on the overlay. Setting the same file
// again does nothing.
func (o *Overlay) SetTextureFile(path string) {
	if path == o.textureFile {
		return
	}
	o.textureFile = path
	o.textureLoaded = false
	if o.live() && path != "" {
		o.textureLoaded = o.loadFileTexture(0, o.handle, path)
	}
}

// SetThumbnailFile sets the dashboard thumbnail image.
func (o *Overlay) SetThumbnailFile(path string) {
	if path == o.thumbnailFile {
		return
	}
	o.thumbnailFile = path
	o.thumbnailLoaded = false
	if o.m.ovl != nil && o.thumb != openvr.InvalidOverlayHandle && path != "" {
		o.thumbnailLoaded = o.loadFileTexture(1, o.thumb, path)
	}
}

// TextureLoaded reports whether the file texture reached the runtime.
func (o *Overlay) TextureLoaded() bool { return o.textureLoaded }

// loadFileTexture uploads an image and hands it to overlay h. The texture is
// kept in slot until replaced or the overlay goes away.
func (o *Overlay) loadFileTexture(slot int, h openvr.OverlayHandle, path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	tex, err := o.m.device.LoadTexture(path, true)
	if err != nil {
		log().Error("VR overlay texture load failed", zap.String("path", path), zap.Error(err))
		return false
	}

	rt := coords.RuntimeTexture(tex.Native(), openvr.ColorSpaceAuto)
	if rt.Type == openvr.TextureTypeInvalid {
		tex.Release()
		return false
	}
	if err := o.m.ovl.SetOverlayTexture(h, &rt); err != nil {
		log().Error("VR overlay texture rejected", zap.String("path", path), zap.Error(err))
		tex.Release()
		return false
	}

	if old := o.fileTextures[slot]; old != nil {
		old.Release()
	}
	o.fileTextures[slot] = tex
	return true
}

func (o *Overlay) releaseFileTextures() {
	for i, tex := range o.fileTextures {
		if tex != nil {
			tex.Release()
			o.fileTextures[i] = nil
		}
	}
}

// Canvas returns the GUI canvas feeding the overlay, or nil.
func (o *Overlay) Canvas() *canvas.Offscreen { return o.canvas }

// SetCanvas feeds the overlay from a GUI canvas. Every rendered canvas frame
// is resubmitted; a deleted canvas is dropped automatically.
func (o *Overlay) SetCanvas(c *canvas.Offscreen) {
	if c == o.canvas {
		return
	}
	o.detachCanvas()

	o.canvas = c
	if c == nil {
		return
	}
	o.canvasFrame = c.Rendered().Subscribe(func(*canvas.Offscreen) { o.onCanvasFrame() })
	o.canvasGone = c.Deleting().Subscribe(o.onCanvasDeleted)

	if o.live() && c.RenderCount() > 0 {
		o.onCanvasFrame()
	}
}

func (o *Overlay) detachCanvas() {
	if o.canvas == nil {
		return
	}
	o.canvas.Rendered().Unsubscribe(o.canvasFrame)
	o.canvas.Deleting().Unsubscribe(o.canvasGone)
	o.canvas = nil
}

func (o *Overlay) onCanvasDeleted(c *canvas.Offscreen) {
	if c == o.canvas {
		o.detachCanvas()
	}
}

// onCanvasFrame pushes pending parameters and submits the canvas target.
func (o *Overlay) onCanvasFrame() {
	if !o.live() || o.canvas == nil {
		return
	}
	o.Update()

	target := o.canvas.Target()
	if target == nil {
		return
	}
	rt := coords.RuntimeTexture(target.Color().Native(), openvr.ColorSpaceAuto)
	if rt.Type == openvr.TextureTypeInvalid {
		return
	}
	if err := o.m.ovl.SetOverlayTexture(o.handle, &rt); err != nil {
		log().Error("VR overlay canvas submit failed", zap.String("overlay", o.key), zap.Error(err))
	}
}

// SetCursorOverlay uses overlay id as this overlay's laser cursor. Zero
// clears it.
func (o *Overlay) SetCursorOverlay(id int) {
	if id == o.cursor {
		return
	}
	o.cursor = id
	if !o.live() {
		return
	}
	h := openvr.InvalidOverlayHandle
	if c, ok := o.m.Get(id); ok {
		h = c.handle
	}
	if err := o.m.ovl.SetOverlayCursor(o.handle, h); err != nil {
		log().Error("VR overlay cursor failed", zap.String("overlay", o.key), zap.Error(err))
	}
}

// CursorOverlay returns the cursor overlay id, or zero.
func (o *Overlay) CursorOverlay() int { return o.cursor }

// SetMountToOverlay sets the parent of a mountable transform. Zero clears it.
func (o *Overlay) SetMountToOverlay(id int) {
	if id == o.mountTo {
		return
	}
	o.mountTo = id
	if o.live() {
		o.pushTransform()
	}
}

// MountToOverlay returns the parent overlay id, or zero.
func (o *Overlay) MountToOverlay() int { return o.mountTo }

// reset destroys and recreates the runtime overlay for the current kind.
func (o *Overlay) reset() {
	ovl := o.m.ovl
	if ovl == nil {
		return
	}
	o.destroyHandles()

	var err error
	if o.kind == KindDashboard {
		o.handle, o.thumb, err = ovl.CreateDashboardOverlay(o.key, o.name)
	} else {
		o.handle, err = ovl.CreateOverlay(o.key, o.name)
	}
	if err != nil {
		log().Error("VR overlay create failed",
			zap.String("overlay", o.key),
			zap.Stringer("kind", o.kind),
			zap.Error(err))
		o.handle, o.thumb = openvr.InvalidOverlayHandle, openvr.InvalidOverlayHandle
	}

	o.dirty = true
	o.typeDirty = false
	o.textureLoaded = false
	o.thumbnailLoaded = false
}

func (o *Overlay) destroyHandles() {
	if o.m.ovl != nil {
		for _, h := range []openvr.OverlayHandle{o.handle, o.thumb} {
			if h == openvr.InvalidOverlayHandle {
				continue
			}
			if err := o.m.ovl.DestroyOverlay(h); err != nil {
				log().Warn("VR overlay destroy failed", zap.String("overlay", o.key), zap.Error(err))
			}
		}
	}
	o.handle = openvr.InvalidOverlayHandle
	o.thumb = openvr.InvalidOverlayHandle
}

// Update recreates the runtime overlay if its kind changed and pushes every
// parameter if anything changed since the last push.
func (o *Overlay) Update() {
	if o.typeDirty {
		o.reset()
	}
	if !o.dirty || !o.live() {
		return
	}

	ovl, h := o.m.ovl, o.handle
	o.check("mouse scale", ovl.SetOverlayMouseScale(h, openvr.Vector2{o.mouseScale.X, o.mouseScale.Y}))
	o.check("colour", ovl.SetOverlayColor(h, o.color[0], o.color[1], o.color[2]))
	o.check("alpha", ovl.SetOverlayAlpha(h, o.color[3]))
	o.check("input method", ovl.SetOverlayInputMethod(h, o.inputMethod))
	o.check("width", ovl.SetOverlayWidthInMeters(h, o.width))
	o.check("texel aspect", ovl.SetOverlayTexelAspect(h, o.texelAspect))
	o.check("sort order", ovl.SetOverlaySortOrder(h, o.sortOrder))
	o.check("curvature", ovl.SetOverlayCurvature(h, o.curvature))

	if o.canvas == nil && !o.textureLoaded && o.textureFile != "" {
		o.textureLoaded = o.loadFileTexture(0, h, o.textureFile)
	}
	if o.thumb != openvr.InvalidOverlayHandle && !o.thumbnailLoaded && o.thumbnailFile != "" {
		o.thumbnailLoaded = o.loadFileTexture(1, o.thumb, o.thumbnailFile)
	}

	bounds := openvr.TextureBounds{UMin: o.uvMin.X, VMin: o.uvMin.Y, UMax: o.uvMax.X, VMax: o.uvMax.Y}
	o.check("texture bounds", ovl.SetOverlayTextureBounds(h, coords.BoundsFor(o.m.device.AdapterType(), bounds)))

	o.pushFlags()
	o.pushTransform()

	o.dirty = false
}

func (o *Overlay) check(what string, err error) {
	if err != nil {
		log().Error("VR overlay update failed",
			zap.String("overlay", o.key),
			zap.String("param", what),
			zap.Error(err))
	}
}

func (o *Overlay) pushFlags() {
	for flag := openvr.OverlayFlagsNoDashboardTab; flag <= openvr.OverlayFlagsIsPremultiplied; flag <<= 1 {
		if flag&SupportedFlags == 0 {
			continue
		}
		if err := o.m.ovl.SetOverlayFlag(o.handle, flag, o.flags&flag != 0); err != nil {
			log().Error("VR overlay flag failed",
				zap.String("overlay", o.key),
				zap.Uint32("flag", uint32(flag)),
				zap.Error(err))
		}
	}
}

func (o *Overlay) pushTransform() {
	ovl, h := o.m.ovl, o.handle
	rt := coords.AffineToRuntime(o.transform)

	var err error
	switch o.transformKind {
	case TransformAbsolute:
		err = ovl.SetOverlayTransformAbsolute(h, o.m.origin(), rt)
	case TransformDeviceRelative:
		err = ovl.SetOverlayTransformTrackedDeviceRelative(h, o.device, rt)
	case TransformComponent:
		err = ovl.SetOverlayTransformTrackedDeviceComponent(h, o.device, o.component)
	case TransformCursor:
		p := o.transform.Position()
		err = ovl.SetOverlayTransformCursor(h, openvr.Vector2{p.X, p.Y})
	case TransformMountable:
		parent, ok := o.m.Get(o.mountTo)
		if !ok || parent.handle == openvr.InvalidOverlayHandle {
			return
		}
		err = ovl.SetOverlayTransformOverlayRelative(h, parent.handle, rt)
	}
	o.check("transform", err)
}

// Show pushes pending parameters and shows the overlay. Dashboard overlays
// open their dashboard tab instead.
func (o *Overlay) Show() {
	o.Update()
	if !o.live() {
		return
	}
	if o.kind == KindDashboard {
		o.m.ovl.ShowDashboard(o.key)
		return
	}
	if err := o.m.ovl.ShowOverlay(o.handle); err != nil {
		log().Error("VR overlay show failed", zap.String("overlay", o.key), zap.Error(err))
	}
}

// Hide hides an in-world overlay. Dashboard overlays are hidden by the
// runtime and are left alone.
func (o *Overlay) Hide() {
	if !o.live() || o.kind == KindDashboard {
		return
	}
	if err := o.m.ovl.HideOverlay(o.handle); err != nil {
		log().Error("VR overlay hide failed", zap.String("overlay", o.key), zap.Error(err))
	}
}

// IsVisible reports whether the runtime is drawing the overlay.
func (o *Overlay) IsVisible() bool {
	return o.live() && o.m.ovl.IsOverlayVisible(o.handle)
}

// IsHoverTarget reports whether a laser pointer is on the overlay.
func (o *Overlay) IsHoverTarget() bool {
	return o.live() && o.m.ovl.IsHoverTargetOverlay(o.handle)
}

// IsActiveDashboard reports whether the overlay's dashboard tab is open.
func (o *Overlay) IsActiveDashboard() bool {
	return o.live() && o.m.ovl.IsActiveDashboardOverlay(o.handle)
}

// TriggerHapticVibration buzzes the controller pointing at the overlay.
func (o *Overlay) TriggerHapticVibration(duration, frequency, amplitude float32) bool {
	if !o.live() {
		return false
	}
	if err := o.m.ovl.TriggerLaserMouseHapticVibration(o.handle, duration, frequency, amplitude); err != nil {
		log().Error("VR overlay haptic failed", zap.String("overlay", o.key), zap.Error(err))
		return false
	}
	return true
}

// SetCursorPositionOverride pins the laser cursor at a position in mouse
// coordinates.
func (o *Overlay) SetCursorPositionOverride(pos math.Vec2) bool {
	if !o.live() {
		return false
	}
	if err := o.m.ovl.SetOverlayCursorPositionOverride(o.handle, openvr.Vector2{pos.X, pos.Y}); err != nil {
		log().Error("VR overlay cursor override failed", zap.String("overlay", o.key), zap.Error(err))
		return false
	}
	return true
}

// ClearCursorPositionOverride hands the cursor back to the laser.
func (o *Overlay) ClearCursorPositionOverride() bool {
	if !o.live() {
		return false
	}
	if err := o.m.ovl.ClearOverlayCursorPositionOverride(o.handle); err != nil {
		log().Error("VR overlay cursor override failed", zap.String("overlay", o.key), zap.Error(err))
		return false
	}
	return true
}

// TransformForOverlayCoordinates returns the engine transform of a point on
// the overlay given in mouse coordinates, or identity on failure.
func (o *Overlay) TransformForOverlayCoordinates(pos math.Vec2) math.Mat4 {
	if !o.live() {
		return math.Identity()
	}
	m, err := o.m.ovl.TransformForOverlayCoordinates(o.handle, o.m.origin(), openvr.Vector2{pos.X, pos.Y})
	if err != nil {
		log().Error("VR overlay coordinate transform failed", zap.String("overlay", o.key), zap.Error(err))
		return math.Identity()
	}
	return coords.AffineFromRuntime(m)
}

// CastRay intersects an engine-space ray with the overlay.
func (o *Overlay) CastRay(origin, direction math.Vec3) (picking.RayInfo, bool) {
	if !o.live() {
		return picking.RayInfo{}, false
	}
	params := openvr.IntersectionParams{
		Source:    coords.PointToRuntime(origin),
		Direction: coords.PointToRuntime(direction),
		Origin:    o.m.origin(),
	}
	res, hit := o.m.ovl.ComputeOverlayIntersection(o.handle, params)
	if !hit {
		return picking.RayInfo{}, false
	}
	return picking.RayInfo{
		T:        res.Distance,
		Point:    coords.PointFromRuntime(res.Point),
		Normal:   coords.PointFromRuntime(res.Normal),
		UV:       math.Vec2{X: res.UVs[0], Y: res.UVs[1]},
		UserData: o,
	}, true
}

// TextureSize returns the size of the texture the runtime holds.
func (o *Overlay) TextureSize() (width, height int) {
	if !o.live() {
		return 0, 0
	}
	w, h, err := o.m.ovl.OverlayTextureSize(o.handle)
	if err != nil {
		log().Error("VR overlay texture size failed", zap.String("overlay", o.key), zap.Error(err))
		return 0, 0
	}
	return int(w), int(h)
}

// ShowKeyboardForOverlay opens the virtual keyboard attached to the overlay.
// Its events arrive through the overlay.
func (o *Overlay) ShowKeyboardForOverlay(req openvr.KeyboardRequest) bool {
	if !o.live() {
		return false
	}
	if err := o.m.ovl.ShowKeyboardForOverlay(o.handle, req); err != nil {
		log().Error("VR keyboard failed", zap.String("overlay", o.key), zap.Error(err))
		return false
	}
	return true
}

// SetKeyboardPositionForOverlay places the keyboard so it does not cover
// avoid, a rectangle in overlay mouse coordinates.
func (o *Overlay) SetKeyboardPositionForOverlay(avoid coords.Rect) {
	if !o.live() {
		return
	}
	o.m.ovl.SetKeyboardPositionForOverlay(o.handle, openvr.Rect2{
		TopLeft:     openvr.Vector2{float32(avoid.X), float32(avoid.Y)},
		BottomRight: openvr.Vector2{float32(avoid.X + avoid.W), float32(avoid.Y + avoid.H)},
	})
}

// release drops everything the overlay holds. The overlay is unusable
// afterwards.
func (o *Overlay) release() {
	o.detachCanvas()
	o.destroyHandles()
	o.releaseFileTextures()
}
