// Package native binds the OpenVR C runtime through openvr-go and registers
// it under RuntimeName. Import it for its side effect:
//
//	import _ "github.com/Faultbox/midgard-vr/internal/openvr/native"
//
// The binding exposes the system, compositor and a synchronous pose pump.
// Input, overlays and the chaperone are not reachable through it, so the
// provider runs without them.
package native

import (
	"go.uber.org/zap"

	vr "github.com/tbogdala/openvr-go"

	"github.com/Faultbox/midgard-vr/internal/logger"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// RuntimeName is the name the binding is registered under.
const RuntimeName = "native"

// Clip planes for the eye projections. Only the tangents are kept, so the
// values do not matter beyond being valid.
const (
	nearClip = 0.1
	farClip  = 100.0
)

func init() {
	openvr.RegisterRuntime(RuntimeName, func() (openvr.Runtime, error) { return &Runtime{}, nil })
}

func log() *zap.Logger { return logger.Named("vr.native") }

// integer lists the kinds the binding uses for device indices and
// properties.
type integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// argOf converts n to the argument type fn takes.
func argOf[I integer, R any](_ func(I) R, n int) I { return I(n) }

// argsOf converts a and b to the argument types fn takes.
func argsOf[A, B integer, R, S any](_ func(A, B) (R, S), a, b int) (A, B) { return A(a), B(b) }

// Runtime is the openvr-go runtime.
type Runtime struct {
	sys  *System
	comp *Compositor
}

var _ openvr.Runtime = (*Runtime)(nil)

// IsHmdPresent reports whether a session with a headset is running. The
// binding has no presence probe that works without one.
func (r *Runtime) IsHmdPresent() bool {
	return r.sys != nil && r.sys.IsTrackedDeviceConnected(openvr.TrackedDeviceIndexHmd)
}

// Init starts a scene application session. The application type is fixed
// by the binding.
func (r *Runtime) Init(app openvr.ApplicationType) (openvr.System, error) {
	if r.sys != nil {
		return r.sys, nil
	}
	sys, err := vr.Init()
	if err != nil {
		return nil, err
	}
	comp, err := vr.GetCompositor()
	if err != nil {
		return nil, err
	}

	r.sys = newSystem(sys)
	r.comp = &Compositor{sys: r.sys, comp: comp, space: openvr.TrackingUniverseStanding, gridAlpha: 1}
	log().Info("OpenVR session started", zap.Int("app", int(app)))
	return r.sys, nil
}

// Shutdown drops the session interfaces.
func (r *Runtime) Shutdown() {
	r.sys = nil
	r.comp = nil
}

// Compositor returns the compositor, or nil without a session.
func (r *Runtime) Compositor() openvr.Compositor {
	if r.comp == nil {
		return nil
	}
	return r.comp
}

func (r *Runtime) Input() openvr.Input         { return nil }
func (r *Runtime) Overlay() openvr.Overlay     { return nil }
func (r *Runtime) Chaperone() openvr.Chaperone { return nil }

// RenderModels returns a loader that reports every model as unsupported,
// so the model cache marks them failed instead of polling forever.
func (r *Runtime) RenderModels() (openvr.RenderModels, error) {
	return renderModels{}, nil
}

type renderModels struct{}

func (renderModels) LoadRenderModelAsync(string) (*openvr.RenderModel, error) {
	return nil, openvr.RenderModelErrorNotSupported
}

func (renderModels) FreeRenderModel(*openvr.RenderModel) {}

func (renderModels) LoadTextureAsync(openvr.TextureID) (*openvr.TextureMap, error) {
	return nil, openvr.RenderModelErrorNotSupported
}

func (renderModels) FreeTexture(*openvr.TextureMap) {}

// System wraps the binding's IVRSystem.
type System struct {
	sys *vr.System

	eyeToHead [2]openvr.Matrix34
	raw       [2][4]float32
}

var _ openvr.System = (*System)(nil)

func newSystem(sys *vr.System) *System {
	s := &System{sys: sys}
	et := sys.GetEyeTransforms(nearClip, farClip)

	// Position* are view offsets, the inverse of eye-to-head.
	pos := [2]math.Mat4{math.Mat4(et.PositionLeft), math.Mat4(et.PositionRight)}
	proj := [2]math.Mat4{math.Mat4(et.ProjectionLeft), math.Mat4(et.ProjectionRight)}
	for i := range pos {
		s.eyeToHead[i] = coords.MatrixToRuntime34(pos[i].AffineInverse())
		l, r, t, b := coords.RawFromProjection(proj[i])
		s.raw[i] = [4]float32{l, r, t, b}
	}
	return s
}

func (s *System) RecommendedRenderTargetSize() (width, height uint32) {
	w, h := s.sys.GetRecommendedRenderTargetSize()
	return uint32(w), uint32(h)
}

func (s *System) ProjectionRaw(eye openvr.Eye) (left, right, top, bottom float32) {
	if eye != openvr.EyeLeft && eye != openvr.EyeRight {
		return 0, 0, 0, 0
	}
	r := s.raw[eye]
	return r[0], r[1], r[2], r[3]
}

func (s *System) EyeToHeadTransform(eye openvr.Eye) openvr.Matrix34 {
	if eye != openvr.EyeLeft && eye != openvr.EyeRight {
		return openvr.IdentityMatrix34()
	}
	return s.eyeToHead[eye]
}

func (s *System) PollNextEvent(ev *openvr.Event) bool {
	var e vr.VREvent
	if !s.sys.PollNextEvent(&e) {
		return false
	}
	*ev = openvr.Event{
		Type:               openvr.EventType(e.EventType),
		TrackedDeviceIndex: openvr.TrackedDeviceIndex(e.TrackedDeviceIndex),
	}
	return true
}

func (s *System) TrackedDeviceClass(index openvr.TrackedDeviceIndex) openvr.TrackedDeviceClass {
	if index >= openvr.MaxTrackedDeviceCount {
		return openvr.TrackedDeviceClassInvalid
	}
	return openvr.TrackedDeviceClass(s.sys.GetTrackedDeviceClass(int(index)))
}

func (s *System) IsTrackedDeviceConnected(index openvr.TrackedDeviceIndex) bool {
	if index >= openvr.MaxTrackedDeviceCount {
		return false
	}
	return s.sys.IsTrackedDeviceConnected(uint32(index))
}

// SortedTrackedDeviceIndicesOfClass lists connected devices of class in
// index order. relativeTo is ignored.
func (s *System) SortedTrackedDeviceIndicesOfClass(class openvr.TrackedDeviceClass, out []openvr.TrackedDeviceIndex, relativeTo openvr.TrackedDeviceIndex) uint32 {
	var n uint32
	for i := openvr.TrackedDeviceIndex(0); i < openvr.MaxTrackedDeviceCount; i++ {
		if !s.IsTrackedDeviceConnected(i) || s.TrackedDeviceClass(i) != class {
			continue
		}
		if int(n) < len(out) {
			out[n] = i
		}
		n++
	}
	return n
}

func (s *System) StringTrackedDeviceProperty(index openvr.TrackedDeviceIndex, prop openvr.TrackedDeviceProperty) (string, openvr.TrackedPropertyError) {
	if index >= openvr.MaxTrackedDeviceCount {
		return "", openvr.TrackedPropInvalidDevice
	}
	get := s.sys.GetStringTrackedDeviceProperty
	idx, p := argsOf(get, int(index), int(prop))
	v, status := get(idx, p)
	if status != vr.TrackedPropSuccess {
		return "", openvr.TrackedPropValueNotProvidedByDevice
	}
	return v, openvr.TrackedPropSuccess
}

// The binding only reads string properties.

func (s *System) BoolTrackedDeviceProperty(openvr.TrackedDeviceIndex, openvr.TrackedDeviceProperty) (bool, openvr.TrackedPropertyError) {
	return false, openvr.TrackedPropUnknownProperty
}

func (s *System) Int32TrackedDeviceProperty(openvr.TrackedDeviceIndex, openvr.TrackedDeviceProperty) (int32, openvr.TrackedPropertyError) {
	return 0, openvr.TrackedPropUnknownProperty
}

func (s *System) Uint64TrackedDeviceProperty(openvr.TrackedDeviceIndex, openvr.TrackedDeviceProperty) (uint64, openvr.TrackedPropertyError) {
	return 0, openvr.TrackedPropUnknownProperty
}

func (s *System) FloatTrackedDeviceProperty(openvr.TrackedDeviceIndex, openvr.TrackedDeviceProperty) (float32, openvr.TrackedPropertyError) {
	return 0, openvr.TrackedPropUnknownProperty
}
