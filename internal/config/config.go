// Package config handles host configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-vr/internal/vr/coords"
	"github.com/Faultbox/midgard-vr/internal/vr/provider"
	"github.com/Faultbox/midgard-vr/internal/vr/renderstate"
)

// Config holds all host settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	VR       VRConfig       `yaml:"vr"`
	Script   ScriptConfig   `yaml:"script"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds desktop window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// VRConfig holds the VR session settings.
type VRConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Runtime           string  `yaml:"runtime"`         // Registered runtime binding to open
	Simulate          bool    `yaml:"simulate"`        // Use the in-memory runtime
	RoomTracking      bool    `yaml:"room_tracking"`   // Standing universe when true
	StandingHeight    float32 `yaml:"standing_height"` // Meters removed from standing poses
	RenderMode        string  `yaml:"render_mode"`     // standard, separate or side-by-side
	EyeRingDepth      int     `yaml:"eye_ring_depth"`
	ActionManifest    string  `yaml:"action_manifest"`
	AppRoot           string  `yaml:"app_root"`
	CachePath         string  `yaml:"cache_path"`
	RotateYawWithMove bool    `yaml:"rotate_yaw_with_move"`
	UniverseYaw       float32 `yaml:"universe_yaw"` // Radians
	RayLength         float32 `yaml:"ray_length"`   // Overlay pick ray length in meters
}

// ScriptConfig holds the Lua entry point.
type ScriptConfig struct {
	Main string `yaml:"main"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ShowFPS       bool   `yaml:"show_fps"`
	CaptureDir    string `yaml:"capture_dir"`
	CaptureFormat string `yaml:"capture_format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      false,
			FPSLimit:   0,
		},
		VR: VRConfig{
			Enabled:        true,
			Runtime:        "native",
			RoomTracking:   true,
			StandingHeight: coords.DefaultStandingHeight,
			RenderMode:     "separate",
			EyeRingDepth:   renderstate.DefaultRingDepth,
			ActionManifest: "actions.json",
			AppRoot:        ".",
			CachePath:      "cache/vr",
			RayLength:      10,
		},
		Script: ScriptConfig{
			Main: "scripts/main.lua",
		},
		Debug: DebugConfig{
			CaptureDir:    "captures",
			CaptureFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the host cannot run with.
func (c *Config) Validate() error {
	if _, err := renderstate.ParseMode(c.VR.RenderMode); err != nil {
		return fmt.Errorf("vr.render_mode: %w", err)
	}
	if c.VR.EyeRingDepth < renderstate.MinRingDepth {
		return fmt.Errorf("vr.eye_ring_depth: %d is below %d", c.VR.EyeRingDepth, renderstate.MinRingDepth)
	}
	if c.VR.StandingHeight < 0 {
		return fmt.Errorf("vr.standing_height: %v is negative", c.VR.StandingHeight)
	}
	if c.VR.RayLength <= 0 {
		return fmt.Errorf("vr.ray_length: %v must be positive", c.VR.RayLength)
	}
	switch c.Debug.CaptureFormat {
	case "png", "webp":
	default:
		return fmt.Errorf("debug.capture_format: unknown format %q", c.Debug.CaptureFormat)
	}
	return nil
}

// RuntimeName returns the runtime binding the host should open.
func (v VRConfig) RuntimeName(simulated string) string {
	if v.Simulate {
		return simulated
	}
	return v.Runtime
}

// Provider converts the VR section into provider settings. The render mode
// must already have passed Validate.
func (v VRConfig) Provider() provider.Config {
	mode, _ := renderstate.ParseMode(v.RenderMode)
	return provider.Config{
		RingDepth:                v.EyeRingDepth,
		StandingHeight:           v.StandingHeight,
		Seated:                   !v.RoomTracking,
		CachePath:                v.CachePath,
		AppRoot:                  v.AppRoot,
		Mode:                     mode,
		RotateYawWithMoveActions: v.RotateYawWithMove,
	}
}
