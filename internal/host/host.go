// Package host runs the desktop VR host: it opens the mirror window, drives
// the VR provider once per frame, renders both eyes and runs the Lua game
// script against the openvr module.
package host

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/config"
	"github.com/Faultbox/midgard-vr/internal/engine/canvas"
	"github.com/Faultbox/midgard-vr/internal/engine/debug"
	"github.com/Faultbox/midgard-vr/internal/engine/input/sdlinput"
	"github.com/Faultbox/midgard-vr/internal/engine/material"
	"github.com/Faultbox/midgard-vr/internal/engine/move"
	"github.com/Faultbox/midgard-vr/internal/engine/window"
	"github.com/Faultbox/midgard-vr/internal/gpu/gldevice"
	"github.com/Faultbox/midgard-vr/internal/logger"
	"github.com/Faultbox/midgard-vr/internal/openvr"
	"github.com/Faultbox/midgard-vr/internal/script"
	"github.com/Faultbox/midgard-vr/internal/vr/provider"
)

// Title is the mirror window title.
const Title = "Midgard VR"

// eyeClear tints each eye so a broken submission is easy to spot.
var eyeClear = [2][3]float32{
	{0.10, 0.10, 0.16},
	{0.16, 0.10, 0.10},
}

// Host is the running VR host.
type Host struct {
	cfg     *config.Config
	running bool
	// overlayMouse forwards mirror window mouse input to an overlay canvas.
	overlayMouse bool

	window   *window.Window
	device   *gldevice.Device
	input    *sdlinput.Input
	move     *move.Extended
	vm       *script.VM
	provider *provider.Provider
	capture  *debug.Capture
}

// New opens the window and the runtime named by cfg, creates the provider
// and loads the game script. The VR session itself is started when
// cfg.VR.Enabled is set; a failed start is logged and the host keeps
// running as a desktop mirror.
func New(cfg *config.Config, runtimeName string) (*Host, error) {
	logger.Info("initializing host",
		zap.String("runtime", runtimeName),
		zap.String("mode", cfg.VR.RenderMode),
	)

	rt, err := openvr.Open(runtimeName)
	if err != nil {
		return nil, fmt.Errorf("opening VR runtime: %w", err)
	}

	format, err := debug.ParseFormat(cfg.Debug.CaptureFormat)
	if err != nil {
		return nil, err
	}

	h := &Host{
		cfg:     cfg,
		input:   sdlinput.New(),
		move:    &move.Extended{},
		capture: debug.NewCapture(cfg.Debug.CaptureDir, "vr_preview", format),
	}

	// Create window (this also creates the OpenGL context)
	h.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	h.device = gldevice.New()

	h.vm = script.New()
	h.provider = provider.New(cfg.VR.Provider(), rt, h.device, material.NewRegistry(), h.move, script.NewBridge(h.vm))
	h.provider.SetFatal(h.onFatal)
	h.provider.RotateUniverse(cfg.VR.UniverseYaw)
	script.Register(h.vm, h.provider)

	if cfg.VR.Enabled {
		if err := h.provider.Enable(); err != nil {
			logger.Warn("VR session unavailable, running as desktop mirror", zap.Error(err))
		} else {
			h.loadManifest()
		}
	}

	if err := h.loadScript(); err != nil {
		h.Close()
		return nil, err
	}

	logger.Info("host initialized")
	return h, nil
}

// onFatal replaces the provider's default fatal handler: a runtime quit
// request ends the loop instead of the process.
func (h *Host) onFatal(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
	h.running = false
}

func (h *Host) loadManifest() {
	in := h.provider.Input()
	if in == nil || h.cfg.VR.ActionManifest == "" {
		return
	}
	if err := in.SetActionManifestPath(h.cfg.VR.ActionManifest); err != nil {
		logger.Warn("action manifest rejected", zap.String("path", h.cfg.VR.ActionManifest), zap.Error(err))
	}
}

func (h *Host) loadScript() error {
	path := h.cfg.Script.Main
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info("no game script", zap.String("path", path))
		return nil
	}
	if err := h.vm.DoFile(path); err != nil {
		return fmt.Errorf("loading game script: %w", err)
	}
	return nil
}

// Run starts the main loop. It returns when the window is closed, Escape
// is pressed or the runtime asks the application to quit.
func (h *Host) Run() error {
	h.running = true

	var frameBudget time.Duration
	if h.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(h.cfg.Graphics.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting host loop")

	for h.running {
		frameStart := time.Now()

		// 1. Desktop input
		if h.input.Update() {
			break
		}
		h.handleKeys()

		// 2. VR events, poses and actions
		h.provider.Process()
		h.provider.Overlays().UpdateAll()

		// 3. Eyes and mirror
		if err := h.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		h.window.SwapBuffers()
		h.move.YawLeft, h.move.YawRight = 0, 0

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if h.cfg.Debug.ShowFPS {
				h.window.SetTitle(fmt.Sprintf("%s - %d fps", Title, frameCount))
			}
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (h *Host) handleKeys() {
	for _, event := range h.input.Events() {
		if event.Type != sdlinput.EventKeyDown {
			continue
		}
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			h.running = false
		case sdl.SCANCODE_F12:
			h.capturePreview()
		case sdl.SCANCODE_F5:
			if err := h.loadScript(); err != nil {
				logger.Error("script reload failed", zap.Error(err))
			}
		case sdl.SCANCODE_HOME:
			h.provider.Chaperone().ResetZeroPose(openvr.TrackingUniverseSeated)
		case sdl.SCANCODE_F2:
			h.overlayMouse = !h.overlayMouse
			logger.Info("overlay mouse", zap.Bool("enabled", h.overlayMouse))
		case sdl.SCANCODE_F3:
			if logger.Level() == "debug" {
				logger.SetLevel(h.cfg.Logging.Level)
			} else {
				logger.SetLevel("debug")
			}
			logger.Info("log level changed", zap.String("level", logger.Level()))
		}
	}
	// Held arrow keys turn the universe when move-action rotation is on.
	if h.input.IsKeyDown(sdl.SCANCODE_LEFT) {
		h.move.YawLeft = 0.02
	}
	if h.input.IsKeyDown(sdl.SCANCODE_RIGHT) {
		h.move.YawRight = 0.02
	}

	if h.overlayMouse {
		if c := h.mouseTarget(); c != nil {
			h.input.Dispatch(c)
		}
	}
}

// mouseTarget is the canvas of the first overlay that has one.
func (h *Host) mouseTarget() *canvas.Offscreen {
	for _, o := range h.provider.Overlays().All() {
		if c := o.Canvas(); c != nil {
			return c
		}
	}
	return nil
}

// render draws both eyes into the stereo target, lets the provider submit
// them and mirrors the preview texture into the window.
func (h *Host) render() error {
	h.device.BeginFrame()
	defer h.device.EndFrame()

	if target, ok := h.provider.StereoTarget().(*gldevice.RenderTarget); ok && target != nil {
		viewports := h.provider.StereoViewports()
		restore := target.Bind()
		gl.Enable(gl.SCISSOR_TEST)
		for eye := 0; eye < 2; eye++ {
			vp := viewports[eye]
			gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.W), int32(vp.H))
			gl.Scissor(int32(vp.X), int32(vp.Y), int32(vp.W), int32(vp.H))
			c := eyeClear[eye]
			gl.ClearColor(c[0], c[1], c[2], 1)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
			h.device.EyeRendered(eye)
		}
		gl.Disable(gl.SCISSOR_TEST)
		restore()
	}

	w, ht := h.window.DrawableSize()
	if preview := h.provider.PreviewTexture(); preview != nil {
		return h.device.Present(preview, w, ht)
	}
	gl.Viewport(0, 0, int32(w), int32(ht))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

func (h *Host) capturePreview() {
	preview := h.provider.PreviewTexture()
	if preview == nil {
		logger.Info("no preview texture to capture")
		return
	}
	img, err := h.device.ReadPixels(preview)
	if err != nil {
		logger.Error("preview readback failed", zap.Error(err))
		return
	}
	path, err := h.capture.CaptureFromImage(img)
	if err != nil {
		logger.Error("preview capture failed", zap.Error(err))
		return
	}
	logger.Info("preview captured", zap.String("path", path))
}

// Close shuts the session down and releases the window.
func (h *Host) Close() {
	logger.Info("closing host")

	if h.provider != nil {
		h.provider.Close()
	}
	if h.vm != nil {
		h.vm.Close()
	}
	if h.device != nil {
		h.device.Destroy()
	}
	if h.window != nil {
		h.window.Close()
	}
}
