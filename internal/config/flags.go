package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSimulate   = flag.Bool("simulate", false, "Run against the in-memory VR runtime")
	flagRenderMode = flag.String("render-mode", "", "Stereo mode: standard, separate or side-by-side")
	flagManifest   = flag.String("manifest", "", "Action manifest path")
	flagCache      = flag.String("cache", "", "Render model texture cache directory")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagSimulate {
		cfg.VR.Simulate = true
	}
	if *flagRenderMode != "" {
		cfg.VR.RenderMode = *flagRenderMode
	}
	if *flagManifest != "" {
		cfg.VR.ActionManifest = *flagManifest
	}
	if *flagCache != "" {
		cfg.VR.CachePath = *flagCache
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
