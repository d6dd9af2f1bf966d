package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neuralbg/internal/field"
)

const (
	DefaultFPS     = 60
	DefaultScale   = 4
	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultDataDir = ".neuralbg"
	DefaultPath    = "neuralbg.yaml"
)

var backends = map[string]bool{"tui": true, "gui": true, "screen": true}

type Config struct {
	Theme   string       `yaml:"theme"`
	Backend string       `yaml:"backend"`
	FPS     int          `yaml:"fps"`
	Seed    int64        `yaml:"seed"`
	DataDir string       `yaml:"data_dir"`
	Window  WindowConfig `yaml:"window"`
	TUI     TUIConfig    `yaml:"tui"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TUIConfig controls the terminal host. Scale is the number of viewport
// pixels covered by one braille dot.
type TUIConfig struct {
	Scale float64 `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:   string(field.ThemeDark),
		Backend: "tui",
		FPS:     DefaultFPS,
		DataDir: DefaultDataDir,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  "neuralbg",
		},
		TUI: TUIConfig{Scale: DefaultScale},
	}
}

// Load reads a config file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Theme != string(field.ThemeDark) && c.Theme != string(field.ThemeLight) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if !backends[c.Backend] {
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.TUI.Scale <= 0 {
		return fmt.Errorf("tui scale must be positive, got %g", c.TUI.Scale)
	}
	return nil
}

// FieldTheme returns the configured theme as a field.Theme.
func (c *Config) FieldTheme() field.Theme { return field.ParseTheme(c.Theme) }
