// Package provider ties a VR runtime session to the engine: it owns the
// session lifecycle, the per-frame pump, stereo submission and the device
// queries scripts use, and hands out the input, overlay and chaperone
// managers that live for as long as the provider does.
package provider

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/engine/material"
	"github.com/Faultbox/midgard-vr/internal/engine/move"
	"github.com/Faultbox/midgard-vr/internal/engine/signal"
	"github.com/Faultbox/midgard-vr/internal/gpu"
	"github.com/Faultbox/midgard-vr/internal/logger"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/vr/actions"
	"github.com/Faultbox/midgard-vr/internal/vr/chaperone"
	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/events"
	"github.com/Faultbox/midgard-vr/internal/vr/modelcache"
	"github.com/Faultbox/midgard-vr/internal/vr/overlay"
	"github.com/Faultbox/midgard-vr/internal/vr/renderstate"
	"github.com/Faultbox/midgard-vr/pkg/math"
)

// Config holds the provider's start-up settings.
type Config struct {
	// RingDepth is the number of textures eye images rotate through.
	RingDepth int
	// StandingHeight is removed from standing poses.
	StandingHeight float32
	// Seated selects the seated tracking universe.
	Seated bool
	// CachePath is where render-model textures are written.
	CachePath string
	// AppRoot resolves relative action manifest paths.
	AppRoot string
	// Mode is set up on Enable. ModeStandard leaves stereo targets off.
	Mode renderstate.Mode
	// RotateYawWithMoveActions turns the universe by the move turn speeds.
	RotateYawWithMoveActions bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		RingDepth:      renderstate.DefaultRingDepth,
		StandingHeight: coords.DefaultStandingHeight,
		CachePath:      "cache/vr",
		AppRoot:        ".",
		Mode:           renderstate.ModeStereoSeparate,
	}
}

// Provider is the VR device provider. It is driven from the main thread.
type Provider struct {
	cfg       Config
	runtime   openvr.Runtime
	device    gpu.Device
	materials *material.Registry
	sink      events.Sink
	fatal     func(string, ...zap.Field)

	sys        openvr.System
	compositor openvr.Compositor
	models     openvr.RenderModels
	enabled    bool
	driver     string
	display    string

	universe       coords.TrackingUniverse
	move           *move.Extended
	rotateWithMove bool
	frameYaw       float32

	poses        [openvr.MaxTrackedDeviceCount]openvr.TrackedDevicePose
	hmdPose      coords.Pose
	hmdTransform math.Mat4

	render    *renderstate.State
	cache     *modelcache.Cache
	input     *actions.Manager
	overlays  *overlay.Manager
	chaperone *chaperone.Chaperone

	// leftSeen is set once the left eye was rendered this frame, so a
	// side-by-side frame is submitted only after both halves are drawn.
	leftSeen bool
	devSub   signal.ID
}

// New returns a disabled provider. mv receives tracked poses and supplies
// the move turn speeds; a nil mv gets a private one.
func New(cfg Config, runtime openvr.Runtime, device gpu.Device, materials *material.Registry, mv *move.Extended, sink events.Sink) *Provider {
	if sink == nil {
		sink = events.Nop{}
	}
	if mv == nil {
		mv = &move.Extended{}
	}
	if materials == nil {
		materials = material.NewRegistry()
	}

	p := &Provider{
		cfg:            cfg,
		runtime:        runtime,
		device:         device,
		materials:      materials,
		sink:           sink,
		fatal:          logger.Fatal,
		universe:       coords.NewTrackingUniverse(),
		move:           mv,
		rotateWithMove: cfg.RotateYawWithMoveActions,
		hmdPose:        coords.IdentityPose(),
		hmdTransform:   math.Identity(),
		render:         renderstate.New(device, cfg.RingDepth),
		chaperone:      chaperone.New(nil),
	}
	if cfg.StandingHeight > 0 {
		p.universe.StandingHeight = cfg.StandingHeight
	}
	if cfg.Seated {
		p.universe.Origin = openvr.TrackingUniverseSeated
	}
	p.overlays = overlay.NewManager(device, &p.universe, sink)
	p.devSub = device.DeviceEvents().Subscribe(p.HandleDeviceEvent)
	return p
}

// Close ends the session and stops listening to the device.
func (p *Provider) Close() {
	p.Disable()
	p.device.DeviceEvents().Unsubscribe(p.devSub)
	p.render.Close()
}

// SetSink replaces the event sink of the provider and its managers.
func (p *Provider) SetSink(sink events.Sink) {
	if sink == nil {
		sink = events.Nop{}
	}
	p.sink = sink
	p.overlays.SetSink(sink)
	if p.input != nil {
		p.input.SetSink(sink)
	}
}

// SetFatal replaces the handler for a runtime quit request.
func (p *Provider) SetFatal(fatal func(string, ...zap.Field)) {
	p.fatal = fatal
	p.overlays.SetFatal(fatal)
}

// Enable starts a session. Any running session is ended first.
func (p *Provider) Enable() error {
	p.Disable()

	sys, err := p.runtime.Init(openvr.ApplicationScene)
	if err != nil {
		log().Error("Unable to init VR runtime", zap.Error(err))
		return fmt.Errorf("starting VR session: %w", err)
	}
	models, err := p.runtime.RenderModels()
	if err != nil {
		log().Error("Unable to get render model interface", zap.Error(err))
		p.runtime.Shutdown()
		return fmt.Errorf("starting VR session: render models: %w", err)
	}

	p.sys = sys
	p.models = models
	p.compositor = p.runtime.Compositor()
	p.driver = p.deviceString(openvr.TrackedDeviceIndexHmd, openvr.PropTrackingSystemNameString)
	p.display = p.deviceString(openvr.TrackedDeviceIndexHmd, openvr.PropSerialNumberString)

	p.hmdPose = coords.IdentityPose()
	p.hmdTransform = math.Identity()
	p.render.Reset(sys)
	p.cache = modelcache.New(models, p.materials, p.cfg.CachePath)
	if in := p.runtime.Input(); in != nil {
		p.input = actions.New(in, &p.universe, p.move, p.sink, p.cfg.AppRoot)
	}
	p.overlays.SetRuntime(p.runtime.Overlay())
	p.chaperone.SetRuntime(p.runtime.Chaperone())
	p.leftSeen = false
	p.enabled = true

	if p.cfg.Mode != renderstate.ModeStandard {
		if err := p.render.SetupRenderTargets(p.cfg.Mode); err != nil {
			log().Error("VR render targets failed", zap.Error(err))
		}
	}

	log().Info("VR session started",
		zap.String("driver", p.driver),
		zap.String("display", p.display))
	return nil
}

// Disable ends the session. Overlays and configuration survive; runtime
// handles, registered actions and cached models do not.
func (p *Provider) Disable() {
	if p.sys != nil {
		p.ResetRenderModels()
		if p.input != nil {
			p.input.Reset()
		}
		p.input = nil
		p.overlays.SetRuntime(nil)
		p.chaperone.SetRuntime(nil)
		p.models = nil
		p.compositor = nil
		p.sys = nil
		p.render.Reset(nil)
		p.runtime.Shutdown()
		log().Info("VR session ended")
	}
	p.cache = nil
	p.enabled = false
}

// SetEnabled enables or disables the session and reports whether it is
// now running.
func (p *Provider) SetEnabled(enabled bool) bool {
	if !enabled {
		p.Disable()
		return false
	}
	return p.Enable() == nil
}

// IsEnabled reports whether a session is running.
func (p *Provider) IsEnabled() bool { return p.enabled }

// IsDeviceActive reports whether the session has an HMD to drive.
func (p *Provider) IsDeviceActive() bool { return p.enabled && p.sys != nil }

// IsHmdPresent probes for a headset without needing a session.
func (p *Provider) IsHmdPresent() bool { return p.runtime.IsHmdPresent() }

// DriverName returns the HMD's tracking system name.
func (p *Provider) DriverName() string { return p.driver }

// DisplayName returns the HMD's serial number.
func (p *Provider) DisplayName() string { return p.display }

// Input returns the action manager, or nil without a session.
func (p *Provider) Input() *actions.Manager { return p.input }

// Overlays returns the overlay manager.
func (p *Provider) Overlays() *overlay.Manager { return p.overlays }

// Chaperone returns the play-area interface.
func (p *Provider) Chaperone() *chaperone.Chaperone { return p.chaperone }

// Device returns the GPU device the provider renders with.
func (p *Provider) Device() gpu.Device { return p.device }

// RenderState returns the stereo render state.
func (p *Provider) RenderState() *renderstate.State { return p.render }

// Move returns the extended move state poses are written into.
func (p *Provider) Move() *move.Extended { return p.move }

// Universe returns the tracking universe.
func (p *Provider) Universe() *coords.TrackingUniverse { return &p.universe }

// CachePath returns where render-model textures are written.
func (p *Provider) CachePath() string { return p.cfg.CachePath }

// SetCachePath changes the texture cache directory, including for a
// running session.
func (p *Provider) SetCachePath(dir string) {
	p.cfg.CachePath = dir
	if p.cache != nil {
		p.cache.SetDir(dir)
	}
}
