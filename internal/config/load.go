package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := Path()
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads defaults merged with the YAML file at path. An empty path
// returns the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no effect can run with.
func (c *Config) Validate() error {
	a := c.Animation
	if a.Duration <= 0 {
		return fmt.Errorf("%w: animation.duration must be positive, got %v", ErrInvalid, a.Duration)
	}
	if a.Window.Width <= 0 || a.Window.Height <= 0 {
		return fmt.Errorf("%w: animation.window size %dx%d", ErrInvalid, a.Window.Width, a.Window.Height)
	}
	if a.Window.Border < 0 || a.Window.Title < 0 || a.Window.Shadow < 0 {
		return fmt.Errorf("%w: animation.window border, title and shadow must not be negative", ErrInvalid)
	}

	grids := []struct {
		name string
		x, y int
	}{
		{"effects.explode", c.Effects.Explode.GridX, c.Effects.Explode.GridY},
		{"effects.fold", c.Effects.Fold.GridX, c.Effects.Fold.GridY},
		{"effects.skewer", c.Effects.Skewer.GridX, c.Effects.Skewer.GridY},
	}
	for _, g := range grids {
		if g.x < 1 || g.y < 1 {
			return fmt.Errorf("%w: %s grid %dx%d", ErrInvalid, g.name, g.x, g.y)
		}
	}
	if c.Effects.Explode.Spokes < 1 || c.Effects.Explode.Tiers < 1 {
		return fmt.Errorf("%w: effects.explode needs at least one spoke and tier", ErrInvalid)
	}
	if v := c.Viewer.Volume; v < 0 || v > 1 {
		return fmt.Errorf("%w: viewer.volume %v outside [0, 1]", ErrInvalid, v)
	}
	if c.Effects.Airplane.PathLength < 0 {
		return fmt.Errorf("%w: effects.airplane.path_length %v", ErrInvalid, c.Effects.Airplane.PathLength)
	}
	return nil
}

// Path returns the file Load reads: the --config path, else the first
// standard location that exists, else "".
func Path() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	return findConfigFile()
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./polyfx.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := homedir.Dir()
		return filepath.Join(home, "Library", "Application Support", "PolyFX")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PolyFX")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "polyfx")
		}
		home, _ := homedir.Dir()
		return filepath.Join(home, ".config", "polyfx")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// expandPaths resolves a leading ~ in every file setting.
func (c *Config) expandPaths() error {
	for _, p := range []*string{
		&c.Logging.LogFile,
		&c.Viewer.SoundFile,
		&c.Animation.Window.Surface,
	} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		*p = expanded
	}
	return nil
}
