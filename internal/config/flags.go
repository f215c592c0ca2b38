package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagEffect     = flag.String("effect", "", "Effect to play")
	flagEvent      = flag.String("event", "", "Window event (open, close, minimize, ...)")
	flagDuration   = flag.Duration("duration", 0, "Base animation duration")
	flagSeed       = flag.Int64("seed", 0, "Random seed (0 = time based)")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewer width")
	flagHeight     = flag.Int("height", 0, "Viewer height")
	flagDamage     = flag.Bool("damage", false, "Outline the damage box each frame")
	flagSurface    = flag.String("surface", "", "Image to paint on the animated window")
	flagSound      = flag.Bool("sound", false, "Play a sound cue with every animation")
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
	}
	if *flagEffect != "" {
		cfg.Animation.Effect = *flagEffect
	}
	if *flagEvent != "" {
		cfg.Animation.Event = *flagEvent
	}
	if *flagDuration > 0 {
		cfg.Animation.Duration = *flagDuration
	}
	if *flagSeed != 0 {
		cfg.Animation.Seed = *flagSeed
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagDamage {
		cfg.Viewer.ShowDamage = true
	}
	if *flagSurface != "" {
		cfg.Animation.Window.Surface = *flagSurface
	}
	if *flagSound {
		cfg.Viewer.Sound = true
	}
}
