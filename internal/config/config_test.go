package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-vr/internal/vr/renderstate"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be off; the compositor paces frames")
	}

	// Test VR defaults
	if !cfg.VR.Enabled || !cfg.VR.RoomTracking {
		t.Error("expected VR enabled with room tracking by default")
	}
	if cfg.VR.RenderMode != "separate" {
		t.Errorf("expected render mode 'separate', got %s", cfg.VR.RenderMode)
	}
	if cfg.VR.EyeRingDepth != renderstate.DefaultRingDepth {
		t.Errorf("expected ring depth %d, got %d", renderstate.DefaultRingDepth, cfg.VR.EyeRingDepth)
	}
	if cfg.VR.CachePath != "cache/vr" {
		t.Errorf("expected cache path 'cache/vr', got %s", cfg.VR.CachePath)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

vr:
  enabled: true
  room_tracking: false
  standing_height: 1.8
  render_mode: side-by-side
  eye_ring_depth: 3
  action_manifest: "input/actions.json"
  cache_path: "/tmp/vrcache"
  rotate_yaw_with_move: true
  universe_yaw: 1.57

script:
  main: "game/init.lua"

debug:
  capture_format: webp

logging:
  level: "debug"
  log_file: "vr.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || !cfg.Graphics.Fullscreen {
		t.Errorf("graphics: got %+v", cfg.Graphics)
	}
	if cfg.VR.RoomTracking {
		t.Error("expected room tracking to be off")
	}
	if cfg.VR.StandingHeight != 1.8 {
		t.Errorf("expected standing height 1.8, got %v", cfg.VR.StandingHeight)
	}
	if cfg.VR.RenderMode != "side-by-side" {
		t.Errorf("expected render mode side-by-side, got %s", cfg.VR.RenderMode)
	}
	if cfg.VR.EyeRingDepth != 3 {
		t.Errorf("expected ring depth 3, got %d", cfg.VR.EyeRingDepth)
	}
	if cfg.VR.ActionManifest != "input/actions.json" {
		t.Errorf("expected manifest input/actions.json, got %s", cfg.VR.ActionManifest)
	}
	if cfg.Script.Main != "game/init.lua" {
		t.Errorf("expected script game/init.lua, got %s", cfg.Script.Main)
	}
	if cfg.Debug.CaptureFormat != "webp" {
		t.Errorf("expected capture format webp, got %s", cfg.Debug.CaptureFormat)
	}
	// Keys missing from the file keep their defaults
	if cfg.VR.AppRoot != "." {
		t.Errorf("expected app root '.', got %s", cfg.VR.AppRoot)
	}
	if cfg.Logging.LogFile != "vr.log" {
		t.Errorf("expected log file 'vr.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	cases := map[string]string{
		"syntax":      "graphics:\n  width: not a number\n  invalid syntax here\n",
		"unknown key": "vr:\n  render_mod: separate\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, name+".yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.VR.RenderMode != "separate" {
		t.Errorf("expected defaults to survive, got render mode %s", cfg.VR.RenderMode)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"render mode", func(c *Config) { c.VR.RenderMode = "anaglyph" }},
		{"ring depth", func(c *Config) { c.VR.EyeRingDepth = 1 }},
		{"standing height", func(c *Config) { c.VR.StandingHeight = -1 }},
		{"ray length", func(c *Config) { c.VR.RayLength = 0 }},
		{"capture format", func(c *Config) { c.Debug.CaptureFormat = "gif" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected %s to be rejected", tt.name)
			}
		})
	}
}

func TestProviderConfig(t *testing.T) {
	cfg := Default()
	cfg.VR.RoomTracking = false
	cfg.VR.RenderMode = "side-by-side"
	cfg.VR.EyeRingDepth = 4
	cfg.VR.RotateYawWithMove = true

	pc := cfg.VR.Provider()
	if !pc.Seated {
		t.Error("expected seated universe without room tracking")
	}
	if pc.Mode != renderstate.ModeSideBySide {
		t.Errorf("mode: got %v, want %v", pc.Mode, renderstate.ModeSideBySide)
	}
	if pc.RingDepth != 4 {
		t.Errorf("ring depth: got %d, want 4", pc.RingDepth)
	}
	if pc.CachePath != cfg.VR.CachePath || pc.AppRoot != cfg.VR.AppRoot {
		t.Errorf("paths: got %q %q", pc.CachePath, pc.AppRoot)
	}
	if !pc.RotateYawWithMoveActions {
		t.Error("expected yaw rotation with move actions")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.VR.RenderMode = "standard"
	cfg.VR.UniverseYaw = 0.5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if loaded.VR.RenderMode != "standard" || loaded.VR.UniverseYaw != 0.5 {
		t.Errorf("saved VR section: got %+v", loaded.VR)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "simulate flag",
			setup: func() {
				*flagSimulate = true
			},
			verify: func(cfg *Config) {
				if !cfg.VR.Simulate {
					t.Error("expected simulate to be set")
				}
			},
			teardown: func() {
				*flagSimulate = false
			},
		},
		{
			name: "vr path and mode flags",
			setup: func() {
				*flagRenderMode = "side-by-side"
				*flagManifest = "custom.json"
				*flagCache = "/tmp/models"
			},
			verify: func(cfg *Config) {
				if cfg.VR.RenderMode != "side-by-side" {
					t.Errorf("expected render mode side-by-side, got %s", cfg.VR.RenderMode)
				}
				if cfg.VR.ActionManifest != "custom.json" {
					t.Errorf("expected manifest custom.json, got %s", cfg.VR.ActionManifest)
				}
				if cfg.VR.CachePath != "/tmp/models" {
					t.Errorf("expected cache /tmp/models, got %s", cfg.VR.CachePath)
				}
			},
			teardown: func() {
				*flagRenderMode = ""
				*flagManifest = ""
				*flagCache = ""
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
vr:
  render_mode: standard
  cache_path: from-file
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagRenderMode = "side-by-side"
	defer func() {
		*flagConfig = ""
		*flagRenderMode = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.VR.RenderMode != "side-by-side" {
		t.Errorf("expected render mode from flag, got %s", cfg.VR.RenderMode)
	}
	if cfg.VR.CachePath != "from-file" {
		t.Errorf("expected cache path from file, got %s", cfg.VR.CachePath)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("vr:\n  eye_ring_depth: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected a ring depth of 1 to be rejected")
	}
}
