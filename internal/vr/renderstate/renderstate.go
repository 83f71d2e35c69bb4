// Package renderstate owns the stereo render target, per-eye viewports and
// projection data, and the ring of textures eye images are submitted from.
package renderstate

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/engine/signal"
	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// ErrNoHMD is returned when render targets are requested without a session.
var ErrNoHMD = errors.New("renderstate: no HMD")

// Mode is the stereo render style.
type Mode int

const (
	// ModeStandard renders a single mono view; no VR targets exist.
	ModeStandard Mode = iota
	// ModeStereoSeparate renders each eye into the same eye-sized target.
	ModeStereoSeparate
	// ModeSideBySide renders both eyes into one double-width target.
	ModeSideBySide
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeStereoSeparate:
		return "separate"
	case ModeSideBySide:
		return "side-by-side"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names String returns.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "standard", "":
		return ModeStandard, nil
	case "separate", "stereo-separate":
		return ModeStereoSeparate, nil
	case "side-by-side", "sidebyside":
		return ModeSideBySide, nil
	}
	return ModeStandard, fmt.Errorf("unknown render mode %q", s)
}

// FovPort holds the tangents of an eye's half angles in engine axes.
type FovPort struct {
	Left, Right, Up, Down float32
}

// Projection builds the off-axis projection for the port.
func (f FovPort) Projection(near, far float32) math.Mat4 {
	return math.Frustum(f.Left, f.Right, f.Up, f.Down, near, far)
}

// HMD is the part of the runtime system render state reads from.
type HMD interface {
	RecommendedRenderTargetSize() (width, height uint32)
	ProjectionRaw(eye openvr.Eye) (left, right, top, bottom float32)
	EyeToHeadTransform(eye openvr.Eye) openvr.Matrix34
}

// State is the HMD render state.
type State struct {
	device    gpu.Device
	hmd       HMD
	ringDepth int

	mode      Mode
	requested Mode

	viewports [2]coords.Rect
	eyePose   [2]math.Mat4
	fov       [2]FovPort

	color  gpu.Texture
	depth  gpu.Texture
	target gpu.RenderTarget
	ring   *Ring

	texSub signal.ID
}

// New creates render state on a device and listens for its texture events
// until Close.
func New(device gpu.Device, ringDepth int) *State {
	if ringDepth < MinRingDepth {
		ringDepth = MinRingDepth
	}
	s := &State{
		device:    device,
		ringDepth: ringDepth,
		eyePose:   [2]math.Mat4{math.Identity(), math.Identity()},
	}
	s.texSub = device.TextureEvents().Subscribe(s.HandleTextureEvent)
	return s
}

// Close releases everything and stops listening to the device.
func (s *State) Close() {
	s.release()
	s.device.TextureEvents().Unsubscribe(s.texSub)
}

// Reset releases all render resources, caches hmd and refreshes the
// projection from it. A nil hmd leaves the state empty.
func (s *State) Reset(hmd HMD) {
	s.release()
	s.hmd = hmd
	if hmd == nil {
		return
	}
	s.UpdateHMDProjection()
}

func (s *State) release() {
	if s.target != nil {
		s.target.Release()
		s.target = nil
	}
	if s.color != nil {
		s.color.Release()
		s.color = nil
	}
	if s.depth != nil {
		s.depth.Release()
		s.depth = nil
	}
	if s.ring != nil {
		s.ring.Release()
		s.ring = nil
	}
	s.mode = ModeStandard
}

// SetupRenderTargets switches to mode, reallocating the stereo target when
// needed. Requesting the current mode does nothing.
func (s *State) SetupRenderTargets(mode Mode) error {
	if s.hmd == nil {
		return ErrNoHMD
	}
	s.requested = mode
	if s.mode == mode {
		return nil
	}

	if mode == ModeStandard {
		s.Reset(s.hmd)
		return nil
	}

	rw, rh := s.hmd.RecommendedRenderTargetSize()
	w, h := int(rw), int(rh)

	var viewports [2]coords.Rect
	targetW := w
	switch mode {
	case ModeStereoSeparate:
		viewports[0] = coords.Rect{W: w, H: h}
		viewports[1] = coords.Rect{W: w, H: h}
	case ModeSideBySide:
		viewports[0] = coords.Rect{W: w, H: h}
		viewports[1] = coords.Rect{X: w, W: w, H: h}
		targetW = 2 * w
	default:
		return fmt.Errorf("setting up render targets: unknown mode %v", mode)
	}

	// Old resources go first so a failed allocation never leaves a mix.
	s.release()

	if err := s.allocate(targetW, h); err != nil {
		s.release()
		return fmt.Errorf("setting up %v render targets: %w", mode, err)
	}

	s.viewports = viewports
	s.mode = mode
	log().Debug("VR render targets ready",
		zap.Stringer("mode", mode),
		zap.Int("width", targetW),
		zap.Int("height", h),
		zap.Int("ring", s.ring.Len()))
	return nil
}

func (s *State) allocate(w, h int) error {
	var err error
	if s.color, err = s.device.NewTexture(w, h, gpu.FormatRGBA8SRGB); err != nil {
		return fmt.Errorf("stereo colour: %w", err)
	}
	if s.depth, err = s.device.NewTexture(w, h, gpu.FormatD24S8); err != nil {
		return fmt.Errorf("stereo depth: %w", err)
	}
	if s.target, err = s.device.NewRenderTarget(s.color, s.depth); err != nil {
		return err
	}
	if s.ring, err = NewRing(s.device, s.ringDepth, w, h, gpu.FormatRGBA8SRGB); err != nil {
		return err
	}
	return nil
}

// UpdateHMDProjection refreshes eye offsets and FOV ports from the HMD.
func (s *State) UpdateHMDProjection() {
	if s.hmd == nil {
		return
	}
	for i, eye := range []openvr.Eye{openvr.EyeLeft, openvr.EyeRight} {
		s.eyePose[i] = coords.AffineFromRuntime(s.hmd.EyeToHeadTransform(eye))
		s.fov[i] = fovFromRaw(s.hmd.ProjectionRaw(eye))
	}
}

// fovFromRaw flips the runtime's left and top signs, then swaps up and down
// since the runtime's top is the engine's down.
func fovFromRaw(left, right, top, bottom float32) FovPort {
	return FovPort{
		Left:  -left,
		Right: right,
		Up:    bottom,
		Down:  -top,
	}
}

// HandleTextureEvent tears targets down when device textures are lost and
// rebuilds the last requested mode when they come back.
func (s *State) HandleTextureEvent(ev gpu.TextureEvent) {
	switch ev {
	case gpu.TextureZombify:
		requested := s.requested
		s.Reset(s.hmd)
		s.requested = requested
	case gpu.TextureResurrect:
		if s.hmd == nil || s.requested == ModeStandard {
			return
		}
		if err := s.SetupRenderTargets(s.requested); err != nil {
			log().Error("VR render targets lost", zap.Error(err))
		}
	}
}

// ResolveEye copies the stereo target into the current ring slot, advances
// the ring and returns the slot written.
func (s *State) ResolveEye() (gpu.Texture, error) {
	if s.target == nil || s.ring == nil {
		return nil, errors.New("resolving eye: no stereo target")
	}
	tex := s.ring.Current()
	if err := s.target.Resolve(tex); err != nil {
		return nil, fmt.Errorf("resolving eye: %w", err)
	}
	s.ring.Advance()
	return tex, nil
}

// EyeBounds returns an eye's viewport as UV bounds of the stereo target.
func (s *State) EyeBounds(eye int) openvr.TextureBounds {
	if eye < 0 || eye > 1 || s.target == nil {
		return openvr.TextureBounds{}
	}
	w, h := s.target.Size()
	return coords.BoundsFromRect(s.viewports[eye], w, h)
}

// HMD returns the cached runtime system, or nil.
func (s *State) HMD() HMD { return s.hmd }

// Mode returns the active render mode.
func (s *State) Mode() Mode { return s.mode }

// Viewports returns the per-eye viewports inside the stereo target.
func (s *State) Viewports() [2]coords.Rect { return s.viewports }

// EyePose returns an eye's eye-to-head transform in engine space.
func (s *State) EyePose(eye int) math.Mat4 {
	if eye < 0 || eye > 1 {
		return math.Identity()
	}
	return s.eyePose[eye]
}

// EyeOffsets returns the position part of both eye poses.
func (s *State) EyeOffsets() [2]math.Vec3 {
	return [2]math.Vec3{s.eyePose[0].Position(), s.eyePose[1].Position()}
}

// FovPorts returns both eyes' tangent ports.
func (s *State) FovPorts() [2]FovPort { return s.fov }

// Target returns the stereo render target, or nil outside stereo modes.
func (s *State) Target() gpu.RenderTarget { return s.target }

// PreviewTexture returns the stereo colour texture.
func (s *State) PreviewTexture() gpu.Texture { return s.color }

// CurrentEyeTexture returns the ring slot the next resolve goes into.
func (s *State) CurrentEyeTexture() gpu.Texture {
	if s.ring == nil {
		return nil
	}
	return s.ring.Current()
}

// RingDepth returns the configured output ring depth.
func (s *State) RingDepth() int { return s.ringDepth }
