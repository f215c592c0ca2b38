// Package config handles animation and viewer configuration loading.
package config

import "time"

// Config holds all settings.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Animation AnimationConfig `yaml:"animation"`
	Effects   EffectsConfig   `yaml:"effects"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ViewerConfig holds display settings for the interactive viewer.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowDamage bool `yaml:"show_damage"`

	// Sound plays a cue with every animation: the WAV at SoundFile, or a
	// synthesized sweep when it is empty.
	Sound     bool    `yaml:"sound"`
	SoundFile string  `yaml:"sound_file"`
	Volume    float64 `yaml:"volume"`
}

// AnimationConfig describes the animation to play and the synthetic window
// it runs on. Offsets are measured from the screen origin.
type AnimationConfig struct {
	Effect   string        `yaml:"effect"`
	Event    string        `yaml:"event"`
	Duration time.Duration `yaml:"duration"`
	Seed     int64         `yaml:"seed"` // 0 picks a time based seed
	Window   WindowConfig  `yaml:"window"`
}

// WindowConfig is the animated window's geometry.
type WindowConfig struct {
	X          int `yaml:"x"`
	Y          int `yaml:"y"`
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	Border     int `yaml:"border"` // decoration width around the content
	Title      int `yaml:"title"`  // title bar height above the content
	Shadow     int `yaml:"shadow"` // shadow extent around the decorations
	IconX      int `yaml:"icon_x"`
	IconY      int `yaml:"icon_y"`
	IconWidth  int `yaml:"icon_width"`
	IconHeight int `yaml:"icon_height"`

	// Surface is an image painted on the window. Empty draws a synthetic
	// window.
	Surface string `yaml:"surface"`
}

// EffectsConfig holds the numeric parameters of every effect.
type EffectsConfig struct {
	Explode  ExplodeConfig  `yaml:"explode"`
	Fold     FoldConfig     `yaml:"fold"`
	Glide    GlideConfig    `yaml:"glide"`
	Airplane AirplaneConfig `yaml:"airplane"`
	Domino   DominoConfig   `yaml:"domino"`
	Razr     DominoConfig   `yaml:"razr"`
	Skewer   SkewerConfig   `yaml:"skewer"`
}

// ExplodeConfig configures the explode effect.
type ExplodeConfig struct {
	Tessellation string  `yaml:"tessellation"` // rectangular, hexagonal or glass
	GridX        int     `yaml:"grid_x"`
	GridY        int     `yaml:"grid_y"`
	Spokes       int     `yaml:"spokes"`
	Tiers        int     `yaml:"tiers"`
	Thickness    float32 `yaml:"thickness"`
}

// FoldConfig configures the fold effect.
type FoldConfig struct {
	GridX     int    `yaml:"grid_x"`
	GridY     int    `yaml:"grid_y"`
	Direction string `yaml:"direction"` // in or out
}

// GlideConfig configures the 3D glide effect.
type GlideConfig struct {
	AwayPosition float32 `yaml:"away_position"`
	AwayAngle    float32 `yaml:"away_angle"`
	Thickness    float32 `yaml:"thickness"`
}

// AirplaneConfig configures the paper airplane effect.
type AirplaneConfig struct {
	PathLength   float32 `yaml:"path_length"`
	FlyToTaskbar bool    `yaml:"fly_to_taskbar"`
}

// DominoConfig configures the domino and razr effects.
type DominoConfig struct {
	Direction string `yaml:"direction"` // up, down, left, right, random or auto
}

// SkewerConfig configures the skewer effect.
type SkewerConfig struct {
	Direction    string  `yaml:"direction"`
	Tessellation string  `yaml:"tessellation"` // rectangular or hexagonal
	GridX        int     `yaml:"grid_x"`
	GridY        int     `yaml:"grid_y"`
	Thickness    float32 `yaml:"thickness"`
	Rotation     int     `yaml:"rotation"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ShowDamage: false,
			Volume:     0.6,
		},
		Animation: AnimationConfig{
			Effect:   "explode",
			Event:    "close",
			Duration: 500 * time.Millisecond,
			Window: WindowConfig{
				X:          340,
				Y:          160,
				Width:      600,
				Height:     400,
				Border:     4,
				Title:      24,
				Shadow:     12,
				IconX:      600,
				IconY:      690,
				IconWidth:  48,
				IconHeight: 30,
			},
		},
		Effects: EffectsConfig{
			Explode: ExplodeConfig{
				Tessellation: "glass",
				GridX:        13,
				GridY:        10,
				Spokes:       2,
				Tiers:        3,
				Thickness:    15,
			},
			Fold: FoldConfig{
				GridX:     3,
				GridY:     3,
				Direction: "in",
			},
			Glide: GlideConfig{
				AwayPosition: 0.75,
				AwayAngle:    45,
				Thickness:    0,
			},
			Airplane: AirplaneConfig{
				PathLength:   1,
				FlyToTaskbar: true,
			},
			Domino: DominoConfig{Direction: "auto"},
			Razr:   DominoConfig{Direction: "auto"},
			Skewer: SkewerConfig{
				Direction:    "left-right",
				Tessellation: "rectangular",
				GridX:        6,
				GridY:        4,
				Thickness:    0,
				Rotation:     0,
			},
		},
	}
}
