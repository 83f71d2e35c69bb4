package script

import (
	"errors"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/Faultbox/midgard-vr/internal/engine/canvas"
	"github.com/Faultbox/midgard-vr/internal/engine/debug"
	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/actions"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/modelcache"
	"github.com/Faultbox/midgard-vr/internal/vr/overlay"
	"github.com/Faultbox/midgard-vr/internal/vr/provider"
	"github.com/Faultbox/midgard-vr/internal/vr/renderstate"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// ModuleName is the name scripts require the provider under. The module
// is also set as a global of the same name.
const ModuleName = "openvr"

// Script-visible variables backed by the provider.
const (
	VarUniverseYaw    = "TrackingUniverseYaw"
	VarFrameYaw       = "HMDmvYaw"
	VarRotateWithMove = "HMDRotateYawWithMoveActions"
	VarCachePath      = "cachePath"
)

// OverlayFlagPrefix starts the name of every overlay flag constant.
const OverlayFlagPrefix = "OverlayFlags_"

// CanvasTypeName is the metatable name of canvas userdata.
const CanvasTypeName = "openvr.canvas"

type api struct {
	vm *VM
	p  *provider.Provider

	// skybox holds the textures of the current skybox override.
	skybox []gpu.Texture
}

// Register binds p into vm: the openvr module, the overlay flag constants
// and the provider-backed globals.
func Register(vm *VM, p *provider.Provider) {
	a := &api{vm: vm, p: p}
	L := vm.L

	mod := L.SetFuncs(L.NewTable(), a.functions())
	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
	L.SetGlobal(ModuleName, mod)

	mt := L.NewTypeMetatable(CanvasTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"render": a.renderCanvas,
		"delete": a.deleteCanvas,
		"resize": a.resizeCanvas,
		"size":   a.canvasSize,
	}))

	names := make([]string, 0, len(openvr.OverlayFlagNames))
	for name := range openvr.OverlayFlagNames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		flag := openvr.OverlayFlagNames[name]
		if flag&overlay.SupportedFlags == 0 {
			continue
		}
		L.SetGlobal(OverlayFlagPrefix+name, lua.LNumber(flag))
	}

	a.bindGlobals()
}

// bindGlobals routes reads and writes of the provider variables through a
// metatable on the globals table. The variables are never stored in it.
func (a *api) bindGlobals() {
	L := a.vm.L
	mt := L.NewTable()
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		key, _ := L.Get(2).(lua.LString)
		switch string(key) {
		case VarUniverseYaw:
			L.Push(lua.LNumber(a.p.UniverseYaw()))
		case VarFrameYaw:
			L.Push(lua.LNumber(a.p.FrameYaw()))
		case VarRotateWithMove:
			L.Push(lua.LBool(a.p.RotateYawWithMoveActions()))
		case VarCachePath:
			L.Push(lua.LString(a.p.CachePath()))
		default:
			L.Push(lua.LNil)
		}
		return 1
	}))
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		g := L.CheckTable(1)
		key, val := L.Get(2), L.Get(3)
		if s, ok := key.(lua.LString); ok {
			switch string(s) {
			case VarUniverseYaw:
				a.p.RotateUniverse(float32(L.CheckNumber(3)))
				return 0
			case VarFrameYaw:
				a.p.SetFrameYaw(float32(L.CheckNumber(3)))
				return 0
			case VarRotateWithMove:
				a.p.SetRotateYawWithMoveActions(lua.LVAsBool(val))
				return 0
			case VarCachePath:
				a.p.SetCachePath(L.CheckString(3))
				return 0
			}
		}
		L.RawSet(g, key, val)
		return 0
	}))
	L.SetMetatable(L.G.Global, mt)
}

func (a *api) functions() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		// Provider
		"isHmdPresent":              a.isHmdPresent,
		"setEnabled":                a.setEnabled,
		"isEnabled":                 a.isEnabled,
		"isDeviceActive":            a.isDeviceActive,
		"setRoomTracking":           a.setRoomTracking,
		"orientUniverse":            a.orientUniverse,
		"rotateUniverse":            a.rotateUniverse,
		"getHMDTrackingHeight":      a.getHMDTrackingHeight,
		"setHMDTrackingHeight":      a.setHMDTrackingHeight,
		"getPreviewTexture":         a.getPreviewTexture,
		"setDrawMode":               a.setDrawMode,
		"getFrameEyePose":           a.getFrameEyePose,
		"getTrackedDevicePose":      a.getTrackedDevicePose,
		"getDeviceClass":            a.getDeviceClass,
		"getControllerAxisType":     a.getControllerAxisType,
		"getControllerModel":        a.getControllerModel,
		"getTrackedDeviceIndices":   a.getTrackedDeviceIndices,
		"getDevicePropertyString":   a.getDevicePropertyString,
		"getDevicePropertyBool":     a.getDevicePropertyBool,
		"getDevicePropertyInt":      a.getDevicePropertyInt,
		"getDevicePropertyUInt":     a.getDevicePropertyUInt,
		"getDevicePropertyFloat":    a.getDevicePropertyFloat,
		"resetRenderModels":         a.resetRenderModels,
		"preloadRenderModel":        a.preloadRenderModel,
		"preloadRenderModelTexture": a.preloadRenderModelTexture,
		"getRenderModel":            a.getRenderModel,
		"getRenderModelTextureName": a.getRenderModelTextureName,
		"fadeGrid":                  a.fadeGrid,
		"getCurrentGridAlpha":       a.getCurrentGridAlpha,
		"fadeToColor":               a.fadeToColor,
		"setSkyboxOverride":         a.setSkyboxOverride,
		"clearSkyboxOverride":       a.clearSkyboxOverride,
		"setStageOverride":          a.setStageOverride,
		"clearStageOverride":        a.clearStageOverride,

		// Input
		"setActionManifestPath": a.setActionManifestPath,
		"addActionSet":          a.addActionSet,
		"addDigitalAction":      a.addDigitalAction,
		"addAnalogAction":       a.addAnalogAction,
		"addPoseAction":         a.addPoseAction,
		"setPoseCallbacks":      a.setPoseCallbacks,
		"addSkeletalAction":     a.addSkeletalAction,
		"addHapticOutput":       a.addHapticOutput,
		"activateActionSet":     a.activateActionSet,
		"pushActionSetLayer":    a.pushActionSetLayer,
		"popActionSetLayer":     a.popActionSetLayer,
		"triggerHapticEvent":    a.triggerHapticEvent,
		"showActionOrigins":     a.showActionOrigins,
		"showActionSetBinds":    a.showActionSetBinds,
		"getPoseIndex":          a.getPoseIndex,
		"getSkeletonIndex":      a.getSkeletonIndex,
		"setSkeletonMode":       a.setSkeletonMode,

		// Overlays
		"addOverlay":                         a.addOverlay,
		"removeOverlay":                      a.removeOverlay,
		"setOverlayDashboard":                a.setOverlayDashboard,
		"setOverlayName":                     a.setOverlayName,
		"setOverlayTextureFile":              a.setOverlayTextureFile,
		"setOverlayThumbnailFile":            a.setOverlayThumbnailFile,
		"setOverlayCanvas":                   a.setOverlayCanvas,
		"setOverlayTextureUVMin":             a.setOverlayTextureUVMin,
		"setOverlayTextureUVMax":             a.setOverlayTextureUVMax,
		"setOverlayTexelAspect":              a.setOverlayTexelAspect,
		"setOverlaySortOrder":                a.setOverlaySortOrder,
		"setOverlayCurvature":                a.setOverlayCurvature,
		"setOverlayInputMethod":              a.setOverlayInputMethod,
		"setOverlayMouseScale":               a.setOverlayMouseScale,
		"setOverlayFlag":                     a.setOverlayFlag,
		"setOverlayWidth":                    a.setOverlayWidth,
		"setOverlayColor":                    a.setOverlayColor,
		"setOverlayTransform":                a.setOverlayTransform,
		"setOverlayTransformKind":            a.setOverlayTransformKind,
		"setOverlayTransformDevice":          a.setOverlayTransformDevice,
		"setOverlayTransformDeviceComponent": a.setOverlayTransformDeviceComponent,
		"getTransformForOverlayCoordinates":  a.getTransformForOverlayCoordinates,
		"setCursorOverlay":                   a.setCursorOverlay,
		"mountToOverlay":                     a.mountToOverlay,
		"showOverlay":                        a.showOverlay,
		"hideOverlay":                        a.hideOverlay,
		"isOverlayVisible":                   a.isOverlayVisible,
		"isActiveDashboardOverlay":           a.isActiveDashboardOverlay,
		"isHoverTarget":                      a.isHoverTarget,
		"triggerHapticVibration":             a.triggerHapticVibration,
		"setCursorPositionOverride":          a.setCursorPositionOverride,
		"clearCursorPositionOverride":        a.clearCursorPositionOverride,
		"showKeyboard":                       a.showKeyboard,
		"showKeyboardForOverlay":             a.showKeyboardForOverlay,
		"hideKeyboard":                       a.hideKeyboard,
		"setKeyboardPositionForOverlay":      a.setKeyboardPositionForOverlay,
		"setKeyboardTransformAbsolute":       a.setKeyboardTransformAbsolute,
		"getKeyboardText":                    a.getKeyboardText,
		"showMessageOverlay":                 a.showMessageOverlay,
		"closeMessageOverlay":                a.closeMessageOverlay,
		"getPrimaryDashboardDevice":          a.getPrimaryDashboardDevice,

		// Chaperone
		"getCalibrationState":  a.getCalibrationState,
		"getPlayAreaSize":      a.getPlayAreaSize,
		"getPlayAreaRect":      a.getPlayAreaRect,
		"getPlayAreaWireframe": a.getPlayAreaWireframe,
		"reloadChaperone":      a.reloadChaperone,
		"setSceneColor":        a.setSceneColor,
		"areBoundsVisible":     a.areBoundsVisible,
		"forceBoundsVisible":   a.forceBoundsVisible,
		"resetZeroPose":        a.resetZeroPose,

		// Canvases
		"createCanvas": a.createCanvas,
	}
}

func pushBool(L *lua.LState, b bool) int {
	L.Push(lua.LBool(b))
	return 1
}

func pushInt(L *lua.LState, n int) int {
	L.Push(lua.LNumber(n))
	return 1
}

func (a *api) pushPose(L *lua.LState, pose coords.Pose) int {
	t := L.CreateTable(0, 6)
	t.RawSetString("position", a.vm.Vec3(pose.Position))
	t.RawSetString("orientation", a.vm.Quat(pose.Orientation))
	t.RawSetString("velocity", a.vm.Vec3(pose.Velocity))
	t.RawSetString("angularVelocity", a.vm.Vec3(pose.AngularVelocity))
	t.RawSetString("valid", lua.LBool(pose.Valid))
	t.RawSetString("connected", lua.LBool(pose.Connected))
	L.Push(t)
	return 1
}

// Provider

func (a *api) isHmdPresent(L *lua.LState) int { return pushBool(L, a.p.IsHmdPresent()) }

func (a *api) setEnabled(L *lua.LState) int { return pushBool(L, a.p.SetEnabled(L.CheckBool(1))) }

func (a *api) isEnabled(L *lua.LState) int { return pushBool(L, a.p.IsEnabled()) }

func (a *api) isDeviceActive(L *lua.LState) int { return pushBool(L, a.p.IsDeviceActive()) }

func (a *api) setRoomTracking(L *lua.LState) int {
	a.p.SetRoomTracking(L.CheckBool(1))
	return 0
}

func (a *api) orientUniverse(L *lua.LState) int {
	a.p.OrientUniverse(checkMat4(L, 1))
	return 0
}

func (a *api) rotateUniverse(L *lua.LState) int {
	a.p.RotateUniverse(float32(L.CheckNumber(1)))
	return 0
}

func (a *api) getHMDTrackingHeight(L *lua.LState) int {
	L.Push(lua.LNumber(a.p.HMDTrackingHeight()))
	return 1
}

func (a *api) setHMDTrackingHeight(L *lua.LState) int {
	a.p.SetHMDTrackingHeight(float32(L.CheckNumber(1)))
	return 0
}

// getPreviewTexture returns the preview texture as userdata, or nil.
func (a *api) getPreviewTexture(L *lua.LState) int {
	tex := a.p.PreviewTexture()
	if tex == nil {
		L.Push(lua.LNil)
		return 1
	}
	ud := L.NewUserData()
	ud.Value = tex
	L.Push(ud)
	return 1
}

func (a *api) setDrawMode(L *lua.LState) int {
	mode, err := renderstate.ParseMode(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	return pushBool(L, a.p.SetDrawMode(mode) == nil)
}

func (a *api) getFrameEyePose(L *lua.LState) int {
	return a.pushPose(L, a.p.FrameEyePose(L.OptInt(1, -1)))
}

func (a *api) getTrackedDevicePose(L *lua.LState) int {
	return a.pushPose(L, a.p.TrackedDevicePose(L.CheckInt(1)))
}

func (a *api) getDeviceClass(L *lua.LState) int {
	L.Push(lua.LString(a.p.DeviceClass(L.CheckInt(1)).String()))
	return 1
}

func (a *api) getControllerAxisType(L *lua.LState) int {
	L.Push(lua.LString(a.p.ControllerAxisType(L.CheckInt(1), L.CheckInt(2)).String()))
	return 1
}

func (a *api) getControllerModel(L *lua.LState) int {
	L.Push(lua.LString(a.p.ControllerModel(L.CheckInt(1))))
	return 1
}

func (a *api) getTrackedDeviceIndices(L *lua.LState) int {
	class, ok := openvr.ParseTrackedDeviceClass(L.CheckString(1))
	if !ok {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(a.p.TrackedDeviceIndices(class)))
	return 1
}

func checkProp(L *lua.LState, n int) openvr.TrackedDeviceProperty {
	return openvr.TrackedDeviceProperty(L.CheckInt(n))
}

func (a *api) getDevicePropertyString(L *lua.LState) int {
	L.Push(lua.LString(a.p.DevicePropertyString(L.CheckInt(1), checkProp(L, 2))))
	return 1
}

func (a *api) getDevicePropertyBool(L *lua.LState) int {
	return pushBool(L, a.p.DevicePropertyBool(L.CheckInt(1), checkProp(L, 2)))
}

func (a *api) getDevicePropertyInt(L *lua.LState) int {
	return pushInt(L, int(a.p.DevicePropertyInt(L.CheckInt(1), checkProp(L, 2))))
}

func (a *api) getDevicePropertyUInt(L *lua.LState) int {
	L.Push(lua.LString(a.p.DevicePropertyUInt(L.CheckInt(1), checkProp(L, 2))))
	return 1
}

func (a *api) getDevicePropertyFloat(L *lua.LState) int {
	L.Push(lua.LNumber(a.p.DevicePropertyFloat(L.CheckInt(1), checkProp(L, 2))))
	return 1
}

func (a *api) resetRenderModels(L *lua.LState) int {
	a.p.ResetRenderModels()
	return 0
}

func (a *api) preloadRenderModel(L *lua.LState) int {
	return pushInt(L, a.p.PreloadRenderModel(L.CheckString(1), L.CheckString(2)))
}

func (a *api) preloadRenderModelTexture(L *lua.LState) int {
	return pushInt(L, a.p.PreloadRenderModelTexture(L.CheckString(1), openvr.TextureID(L.CheckInt(2))))
}

// getRenderModel(slot) returns the load state name and, once ready, a
// table with the model's name, material and vertex and index counts.
func (a *api) getRenderModel(L *lua.LState) int {
	m, state := a.p.RenderModel(L.CheckInt(1))
	L.Push(lua.LString(state.String()))
	if state != modelcache.Ready || m == nil {
		return 1
	}
	t := L.CreateTable(0, 4)
	t.RawSetString("name", lua.LString(m.Name))
	t.RawSetString("material", lua.LString(m.Material))
	if m.Mesh != nil {
		t.RawSetString("vertexCount", lua.LNumber(len(m.Mesh.Vertices)))
		t.RawSetString("indexCount", lua.LNumber(len(m.Mesh.Indices)))
	}
	L.Push(t)
	return 2
}

// getRenderModelTextureName returns the material texture name of a
// texture slot, or nil until it is ready.
func (a *api) getRenderModelTextureName(L *lua.LState) int {
	name, ok := a.p.RenderModelTextureName(L.CheckInt(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(name))
	return 1
}

func (a *api) fadeGrid(L *lua.LState) int {
	a.p.FadeGrid(float32(L.CheckNumber(1)), L.CheckBool(2))
	return 0
}

func (a *api) getCurrentGridAlpha(L *lua.LState) int {
	L.Push(lua.LNumber(a.p.CurrentGridAlpha()))
	return 1
}

// fadeToColor(seconds, r, g, b, a, background)
func (a *api) fadeToColor(L *lua.LState) int {
	c := openvr.Color{
		R: float32(L.CheckNumber(2)),
		G: float32(L.CheckNumber(3)),
		B: float32(L.CheckNumber(4)),
		A: float32(L.OptNumber(5, 1)),
	}
	a.p.FadeToColor(float32(L.CheckNumber(1)), c, L.OptBool(6, false))
	return 0
}

// setSkyboxOverride(file, ...) loads one, two or six images and shows them
// as the compositor background.
func (a *api) setSkyboxOverride(L *lua.LState) int {
	n := L.GetTop()
	textures := make([]gpu.Texture, 0, n)
	release := func() {
		for _, t := range textures {
			t.Release()
		}
	}
	for i := 1; i <= n; i++ {
		tex, err := a.p.Device().LoadTexture(L.CheckString(i), true)
		if err != nil {
			release()
			return pushBool(L, false)
		}
		textures = append(textures, tex)
	}
	if err := a.p.SetSkyboxOverride(textures); err != nil {
		release()
		return pushBool(L, false)
	}
	a.releaseSkybox()
	a.skybox = textures
	return pushBool(L, true)
}

func (a *api) releaseSkybox() {
	for _, t := range a.skybox {
		t.Release()
	}
	a.skybox = nil
}

func (a *api) clearSkyboxOverride(L *lua.LState) int {
	a.p.ClearSkyboxOverride()
	a.releaseSkybox()
	return 0
}

// setStageOverride(objFile, transform, settings) reports success. The
// settings table is optional and uses the StageRenderSettings field names
// in lower camel case.
func (a *api) setStageOverride(L *lua.LState) int {
	stage := provider.StageModel{
		ObjModelFile: L.CheckString(1),
		Settings:     openvr.DefaultStageRenderSettings(),
	}
	transform := math.Identity()
	if L.GetTop() >= 2 && L.Get(2) != lua.LNil {
		transform = checkMat4(L, 2)
	}
	if t, ok := L.Get(3).(*lua.LTable); ok {
		s := &stage.Settings
		s.VignetteInnerRadius = field(t, "vignetteInnerRadius")
		s.VignetteOuterRadius = field(t, "vignetteOuterRadius")
		s.FresnelStrength = field(t, "fresnelStrength")
		s.BackfaceCulling = lua.LVAsBool(t.RawGetString("backfaceCulling"))
		s.Greyscale = lua.LVAsBool(t.RawGetString("greyscale"))
		s.Wireframe = lua.LVAsBool(t.RawGetString("wireframe"))
	}
	return pushBool(L, a.p.SetStageOverride(stage, transform) == nil)
}

func (a *api) clearStageOverride(L *lua.LState) int {
	a.p.ClearStageOverride()
	return 0
}

// Input

// setActionManifestPath returns 0 on success or the runtime's input error
// code. A manager without a session reports -1.
func (a *api) setActionManifestPath(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	err := in.SetActionManifestPath(L.CheckString(1))
	if err == nil {
		return pushInt(L, 0)
	}
	var code openvr.InputError
	if errors.As(err, &code) {
		return pushInt(L, int(code))
	}
	return pushInt(L, -1)
}

func (a *api) addActionSet(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.AddActionSet(L.CheckString(1)))
}

func (a *api) addDigitalAction(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.AddDigitalAction(L.CheckInt(1), L.CheckString(2), L.CheckString(3)))
}

func (a *api) addAnalogAction(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.AddAnalogAction(L.CheckInt(1), L.CheckString(2), L.CheckString(3)))
}

func (a *api) addPoseAction(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.AddPoseAction(L.CheckInt(1), L.CheckString(2), L.OptString(3, ""), L.OptString(4, ""), L.OptInt(5, -1)))
}

// setPoseCallbacks(index, poseCallback, velocityCallback) renames the
// callbacks of a pose action.
func (a *api) setPoseCallbacks(L *lua.LState) int {
	in := a.p.Input()
	return pushBool(L, in != nil && in.SetPoseCallbacks(L.CheckInt(1), L.OptString(2, ""), L.OptString(3, "")))
}

func (a *api) addSkeletalAction(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.AddSkeletalAction(L.CheckInt(1), L.CheckString(2), L.CheckInt(3)))
}

func (a *api) addHapticOutput(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.AddHapticOutput(L.CheckString(1)))
}

// The stack functions take a controller index first; there is one stack
// for every controller.

func (a *api) activateActionSet(L *lua.LState) int {
	in := a.p.Input()
	return pushBool(L, in != nil && in.ActivateActionSet(L.CheckInt(2)))
}

func (a *api) pushActionSetLayer(L *lua.LState) int {
	in := a.p.Input()
	return pushBool(L, in != nil && in.PushActionSetLayer(L.CheckInt(2)))
}

func (a *api) popActionSetLayer(L *lua.LState) int {
	in := a.p.Input()
	return pushBool(L, in != nil && in.PopActionSetLayer(L.CheckInt(2)))
}

func (a *api) triggerHapticEvent(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushBool(L, false)
	}
	ok := in.TriggerHapticEvent(L.CheckInt(1),
		float32(L.CheckNumber(2)),
		float32(L.CheckNumber(3)),
		float32(L.CheckNumber(4)),
		float32(L.CheckNumber(5)))
	return pushBool(L, ok)
}

func parseKind(s string) (actions.Kind, bool) {
	for k := actions.KindDigital; k <= actions.KindSkeletal; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// showActionOrigins(set, kind, index)
func (a *api) showActionOrigins(L *lua.LState) int {
	in := a.p.Input()
	kind, ok := parseKind(L.CheckString(2))
	if in == nil || !ok {
		return 0
	}
	in.ShowActionOrigins(L.CheckInt(1), kind, L.CheckInt(3))
	return 0
}

func (a *api) showActionSetBinds(L *lua.LState) int {
	if in := a.p.Input(); in != nil {
		in.ShowActionSetBinds(L.CheckInt(1))
	}
	return 0
}

func (a *api) getPoseIndex(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.PoseIndex(L.CheckString(1)))
}

func (a *api) getSkeletonIndex(L *lua.LState) int {
	in := a.p.Input()
	if in == nil {
		return pushInt(L, -1)
	}
	return pushInt(L, in.SkeletonIndex(L.CheckString(1)))
}

func (a *api) setSkeletonMode(L *lua.LState) int {
	in := a.p.Input()
	return pushBool(L, in != nil && in.SetSkeletonMode(L.CheckInt(1), L.CheckBool(2)))
}

// Overlays

func (a *api) overlay(L *lua.LState) *overlay.Overlay {
	o, _ := a.p.Overlays().Get(L.CheckInt(1))
	return o
}

// addOverlay(name, key) returns the new overlay's id, or -1.
func (a *api) addOverlay(L *lua.LState) int {
	o, err := a.p.Overlays().Add(L.CheckString(1), L.CheckString(2))
	if err != nil {
		return pushInt(L, -1)
	}
	return pushInt(L, o.ID())
}

func (a *api) removeOverlay(L *lua.LState) int {
	return pushBool(L, a.p.Overlays().Remove(L.CheckInt(1)))
}

func (a *api) setOverlayDashboard(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		kind := overlay.KindOverlay
		if L.CheckBool(2) {
			kind = overlay.KindDashboard
		}
		o.SetKind(kind)
	}
	return 0
}

func (a *api) setOverlayTextureFile(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetTextureFile(L.CheckString(2))
	}
	return 0
}

func (a *api) setOverlayName(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetName(L.CheckString(2))
	}
	return 0
}

func (a *api) setOverlayThumbnailFile(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetThumbnailFile(L.CheckString(2))
	}
	return 0
}

// setOverlayCanvas(id, canvas) feeds the overlay from a canvas. A nil
// canvas goes back to the texture file.
func (a *api) setOverlayCanvas(L *lua.LState) int {
	o := a.overlay(L)
	if o == nil {
		return pushBool(L, false)
	}
	if L.Get(2) == lua.LNil {
		o.SetCanvas(nil)
		return pushBool(L, true)
	}
	o.SetCanvas(checkCanvas(L, 2))
	return pushBool(L, true)
}

func (a *api) setOverlayTextureUVMin(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		_, hi := o.UVBounds()
		o.SetUVBounds(checkVec2(L, 2), hi)
	}
	return 0
}

func (a *api) setOverlayTextureUVMax(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		lo, _ := o.UVBounds()
		o.SetUVBounds(lo, checkVec2(L, 2))
	}
	return 0
}

func (a *api) setOverlayTexelAspect(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetTexelAspect(float32(L.CheckNumber(2)))
	}
	return 0
}

func (a *api) setOverlaySortOrder(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetSortOrder(uint32(L.CheckInt(2)))
	}
	return 0
}

func (a *api) setOverlayCurvature(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetCurvature(float32(L.CheckNumber(2)))
	}
	return 0
}

// setOverlayInputMethod(id, method) takes "mouse" or "none".
func (a *api) setOverlayInputMethod(L *lua.LState) int {
	o := a.overlay(L)
	var method openvr.OverlayInputMethod
	switch L.CheckString(2) {
	case "none":
		method = openvr.OverlayInputMethodNone
	case "mouse":
		method = openvr.OverlayInputMethodMouse
	default:
		return pushBool(L, false)
	}
	if o == nil {
		return pushBool(L, false)
	}
	o.SetInputMethod(method)
	return pushBool(L, true)
}

func (a *api) setOverlayMouseScale(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetMouseScale(checkVec2(L, 2))
	}
	return 0
}

func (a *api) setOverlayFlag(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetFlag(openvr.OverlayFlags(L.CheckInt(2)), L.CheckBool(3))
	}
	return 0
}

func (a *api) setOverlayWidth(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetWidth(float32(L.CheckNumber(2)))
	}
	return 0
}

func (a *api) setOverlayColor(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetColor(float32(L.CheckNumber(2)), float32(L.CheckNumber(3)), float32(L.CheckNumber(4)), float32(L.OptNumber(5, 1)))
	}
	return 0
}

func (a *api) setOverlayTransform(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetTransform(checkMat4(L, 2))
	}
	return 0
}

func (a *api) setOverlayTransformKind(L *lua.LState) int {
	o := a.overlay(L)
	kind, err := overlay.ParseTransformKind(L.CheckString(2))
	if o == nil || err != nil {
		return pushBool(L, false)
	}
	o.SetTransformKind(kind)
	return pushBool(L, true)
}

func (a *api) setOverlayTransformDevice(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetTransformDevice(openvr.TrackedDeviceIndex(L.CheckInt(2)))
		if comp := L.OptString(3, ""); comp != "" {
			o.SetTransformComponent(comp)
		}
	}
	return 0
}

func (a *api) setOverlayTransformDeviceComponent(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetTransformComponent(L.CheckString(2))
	}
	return 0
}

// getTransformForOverlayCoordinates(id, {x, y}) returns the engine
// transform of a point in overlay mouse coordinates.
func (a *api) getTransformForOverlayCoordinates(L *lua.LState) int {
	o := a.overlay(L)
	if o == nil {
		L.Push(a.vm.Mat4(math.Identity()))
		return 1
	}
	L.Push(a.vm.Mat4(o.TransformForOverlayCoordinates(checkVec2(L, 2))))
	return 1
}

func (a *api) setCursorOverlay(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetCursorOverlay(L.CheckInt(2))
	}
	return 0
}

func (a *api) mountToOverlay(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetMountToOverlay(L.CheckInt(2))
	}
	return 0
}

func (a *api) showOverlay(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.Show()
	}
	return 0
}

func (a *api) hideOverlay(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.Hide()
	}
	return 0
}

func (a *api) isOverlayVisible(L *lua.LState) int {
	o := a.overlay(L)
	return pushBool(L, o != nil && o.IsVisible())
}

func (a *api) isActiveDashboardOverlay(L *lua.LState) int {
	o := a.overlay(L)
	return pushBool(L, o != nil && o.IsActiveDashboard())
}

func (a *api) isHoverTarget(L *lua.LState) int {
	o := a.overlay(L)
	return pushBool(L, o != nil && o.IsHoverTarget())
}

func (a *api) triggerHapticVibration(L *lua.LState) int {
	o := a.overlay(L)
	if o == nil {
		return pushBool(L, false)
	}
	return pushBool(L, o.TriggerHapticVibration(float32(L.CheckNumber(2)), float32(L.CheckNumber(3)), float32(L.CheckNumber(4))))
}

func (a *api) setCursorPositionOverride(L *lua.LState) int {
	o := a.overlay(L)
	return pushBool(L, o != nil && o.SetCursorPositionOverride(checkVec2(L, 2)))
}

func (a *api) clearCursorPositionOverride(L *lua.LState) int {
	o := a.overlay(L)
	return pushBool(L, o != nil && o.ClearCursorPositionOverride())
}

// checkKeyboard reads (inputMode, lineMode, flags, description, maxChars,
// existingText, userValue) starting at argument n.
func checkKeyboard(L *lua.LState, n int) openvr.KeyboardRequest {
	return openvr.KeyboardRequest{
		InputMode:    openvr.KeyboardInputMode(L.CheckInt(n)),
		LineMode:     openvr.KeyboardLineMode(L.CheckInt(n + 1)),
		Flags:        openvr.KeyboardFlags(L.OptInt(n+2, 0)),
		Description:  L.OptString(n+3, ""),
		MaxChars:     uint32(L.OptInt(n+4, 256)),
		ExistingText: L.OptString(n+5, ""),
		UserValue:    uint64(L.OptInt64(n+6, 0)),
	}
}

func (a *api) showKeyboard(L *lua.LState) int {
	return pushBool(L, a.p.Overlays().ShowKeyboard(checkKeyboard(L, 1)))
}

func (a *api) showKeyboardForOverlay(L *lua.LState) int {
	o := a.overlay(L)
	if o == nil {
		return pushBool(L, false)
	}
	return pushBool(L, o.ShowKeyboardForOverlay(checkKeyboard(L, 2)))
}

func (a *api) hideKeyboard(L *lua.LState) int {
	a.p.Overlays().HideKeyboard()
	return 0
}

// setKeyboardPositionForOverlay(id, x, y, w, h) keeps the keyboard clear of
// a rectangle in overlay mouse coordinates.
func (a *api) setKeyboardPositionForOverlay(L *lua.LState) int {
	if o := a.overlay(L); o != nil {
		o.SetKeyboardPositionForOverlay(coords.Rect{
			X: L.CheckInt(2),
			Y: L.CheckInt(3),
			W: L.CheckInt(4),
			H: L.CheckInt(5),
		})
	}
	return 0
}

func (a *api) setKeyboardTransformAbsolute(L *lua.LState) int {
	a.p.Overlays().SetKeyboardTransformAbsolute(checkMat4(L, 1))
	return 0
}

func (a *api) getKeyboardText(L *lua.LState) int {
	L.Push(lua.LString(a.p.Overlays().KeyboardText()))
	return 1
}

// showMessageOverlay(title, message, button0, button1, button2, button3)
func (a *api) showMessageOverlay(L *lua.LState) int {
	resp := a.p.Overlays().ShowMessageOverlay(
		L.CheckString(1),
		L.CheckString(2),
		L.CheckString(3),
		L.OptString(4, ""),
		L.OptString(5, ""),
		L.OptString(6, ""))
	return pushInt(L, int(resp))
}

func (a *api) closeMessageOverlay(L *lua.LState) int {
	a.p.Overlays().CloseMessageOverlay()
	return 0
}

func (a *api) getPrimaryDashboardDevice(L *lua.LState) int {
	return pushInt(L, a.p.Overlays().PrimaryDashboardDevice())
}

// Chaperone

func (a *api) getCalibrationState(L *lua.LState) int {
	return pushInt(L, int(a.p.Chaperone().CalibrationState()))
}

// getPlayAreaSize returns x and y, or nothing when unavailable.
func (a *api) getPlayAreaSize(L *lua.LState) int {
	size, ok := a.p.Chaperone().PlayAreaSize()
	if !ok {
		return 0
	}
	L.Push(lua.LNumber(size.X))
	L.Push(lua.LNumber(size.Y))
	return 2
}

// getPlayAreaRect returns the engine-space bounds of the play area as min
// and max vectors, or nothing when unavailable.
func (a *api) getPlayAreaRect(L *lua.LState) int {
	rect, ok := a.p.Chaperone().PlayAreaRect()
	if !ok {
		return 0
	}
	L.Push(a.vm.Vec3(rect.Min))
	L.Push(a.vm.Vec3(rect.Max))
	return 2
}

// getPlayAreaWireframe returns the play area as a flat list of line
// endpoints, three numbers per vertex, or nothing when unavailable.
func (a *api) getPlayAreaWireframe(L *lua.LState) int {
	rect, ok := a.p.Chaperone().PlayAreaRect()
	if !ok {
		return 0
	}
	verts := debug.PlayAreaWireframe(rect)
	t := L.CreateTable(len(verts), 0)
	for _, v := range verts {
		t.Append(lua.LNumber(v))
	}
	L.Push(t)
	return 1
}

func (a *api) reloadChaperone(L *lua.LState) int {
	a.p.Chaperone().ReloadInfo()
	return 0
}

func (a *api) setSceneColor(L *lua.LState) int {
	a.p.Chaperone().SetSceneColor(float32(L.CheckNumber(1)), float32(L.CheckNumber(2)), float32(L.CheckNumber(3)), float32(L.OptNumber(4, 1)))
	return 0
}

func (a *api) areBoundsVisible(L *lua.LState) int {
	return pushBool(L, a.p.Chaperone().AreBoundsVisible())
}

func (a *api) forceBoundsVisible(L *lua.LState) int {
	a.p.Chaperone().ForceBoundsVisible(L.CheckBool(1))
	return 0
}

// resetZeroPose(standing) recentres the given universe, standing by
// default.
func (a *api) resetZeroPose(L *lua.LState) int {
	origin := openvr.TrackingUniverseStanding
	if !L.OptBool(1, true) {
		origin = openvr.TrackingUniverseSeated
	}
	a.p.Chaperone().ResetZeroPose(origin)
	return 0
}

// Canvases

func checkCanvas(L *lua.LState, n int) *canvas.Offscreen {
	ud := L.CheckUserData(n)
	if c, ok := ud.Value.(*canvas.Offscreen); ok {
		return c
	}
	L.ArgError(n, "canvas expected")
	return nil
}

// createCanvas(name, width, height) returns an off-screen canvas, or nil
// when its target cannot be allocated.
func (a *api) createCanvas(L *lua.LState) int {
	c, err := canvas.NewOffscreen(a.p.Device(), L.CheckString(1), L.CheckInt(2), L.CheckInt(3))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	ud := L.NewUserData()
	ud.Value = c
	L.SetMetatable(ud, L.GetTypeMetatable(CanvasTypeName))
	L.Push(ud)
	return 1
}

// renderCanvas counts a frame, which resubmits it to any overlay it feeds.
func (a *api) renderCanvas(L *lua.LState) int {
	checkCanvas(L, 1).Render(nil)
	return 0
}

func (a *api) deleteCanvas(L *lua.LState) int {
	checkCanvas(L, 1).Delete()
	return 0
}

func (a *api) resizeCanvas(L *lua.LState) int {
	return pushBool(L, checkCanvas(L, 1).Resize(L.CheckInt(2), L.CheckInt(3)) == nil)
}

func (a *api) canvasSize(L *lua.LState) int {
	w, h := checkCanvas(L, 1).Extent()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}
