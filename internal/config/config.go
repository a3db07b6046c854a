// Package config loads render settings from TOML.
package config

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/ivlev/indexparadox/internal/builder"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

type Config struct {
	Seed      uint64   `toml:"seed"`
	Output    string   `toml:"output"`     // schedule path; empty means a timestamped file in OutputDir
	OutputDir string   `toml:"output_dir"` // used when Output is empty
	Workers   int      `toml:"workers"`
	Strict    bool     `toml:"strict"` // fail instead of warn on timing windows
	Scenes    []string `toml:"scenes"` // empty means all, in program order
	ShowStats bool     `toml:"show_stats"`

	Theme    ThemeConfig             `toml:"theme"`
	Preview  PreviewConfig           `toml:"preview"`
	Entities map[string]EntityConfig `toml:"entities"` // keyed by variant

	BuildVersion string `toml:"-"`
}

type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"` // role -> hex
}

// PreviewConfig controls the optional PNG frame dump.
type PreviewConfig struct {
	Enabled    bool    `toml:"enabled"`
	Dir        string  `toml:"dir"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	FPS        int     `toml:"fps"`
	MaxFrames  int     `toml:"max_frames"` // 0 means every frame
	FrameWidth float64 `toml:"frame_width"`
}

// EntityConfig overrides builder parameters. Nil fields keep the defaults.
type EntityConfig struct {
	Name         *string  `toml:"name"`
	PartCount    *int     `toml:"part_count"`
	JitterRangeX *float64 `toml:"jitter_x"`
	JitterRangeY *float64 `toml:"jitter_y"`
	Role         *string  `toml:"role"`
	StrokeWidth  *float64 `toml:"stroke_width"`
	FillOpacity  *float64 `toml:"fill_opacity"`
	BranchCount  *int     `toml:"branch_count"`
}

// New creates a new config with default settings
func New() *Config {
	return &Config{
		Seed:      42,
		OutputDir: "output",
		Workers:   runtime.NumCPU(),
		Theme:     ThemeConfig{Name: "default"},
		Preview: PreviewConfig{
			Dir:    "output/frames",
			Width:  640,
			Height: 360,
			FPS:    10,
		},
	}
}

// LoadFile reads path over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Output == "" && c.OutputDir == "" {
		return fmt.Errorf("either output or output_dir must be set")
	}
	if c.Preview.Enabled {
		p := c.Preview
		if p.Width <= 0 || p.Height <= 0 || p.FPS <= 0 {
			return fmt.Errorf("preview needs positive width, height and fps, got %dx%d@%d", p.Width, p.Height, p.FPS)
		}
		if p.MaxFrames < 0 || p.FrameWidth < 0 {
			return fmt.Errorf("preview max_frames and frame_width must not be negative")
		}
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if _, err := c.EntityParams(); err != nil {
		return err
	}
	return nil
}

// Palette applies the theme colors over the default palette and names it.
func (c *Config) Palette() (*theme.Palette, error) {
	overrides := make(map[theme.Role]string, len(c.Theme.Colors))
	for name, hex := range c.Theme.Colors {
		r, err := theme.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
		overrides[r] = hex
	}
	pal, err := theme.Default().With(overrides)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	if c.Theme.Name != "" {
		pal = pal.Named(c.Theme.Name)
	}
	return pal, nil
}

// EntityParams resolves every override into validated builder parameters.
func (c *Config) EntityParams() (map[model.Variant]builder.Params, error) {
	out := make(map[model.Variant]builder.Params, len(c.Entities))
	for key, ec := range c.Entities {
		v := model.Variant(key)
		if !slices.Contains(model.Variants(), v) {
			return nil, fmt.Errorf("entities.%s: not a configurable variant", key)
		}
		p, err := ec.apply(builder.DefaultParams(v))
		if err != nil {
			return nil, fmt.Errorf("entities.%s: %w", key, err)
		}
		if err := p.Validate(v); err != nil {
			return nil, fmt.Errorf("entities.%s: %w", key, err)
		}
		out[v] = p
	}
	return out, nil
}

func (ec EntityConfig) apply(p builder.Params) (builder.Params, error) {
	if ec.Name != nil {
		p.Name = *ec.Name
	}
	if ec.PartCount != nil {
		p.PartCount = *ec.PartCount
	}
	if ec.JitterRangeX != nil {
		p.JitterRangeX = *ec.JitterRangeX
	}
	if ec.JitterRangeY != nil {
		p.JitterRangeY = *ec.JitterRangeY
	}
	if ec.Role != nil {
		r, err := theme.ParseRole(*ec.Role)
		if err != nil {
			return p, err
		}
		p.PaletteRole = r
	}
	if ec.StrokeWidth != nil {
		p.StrokeWidth = *ec.StrokeWidth
	}
	if ec.FillOpacity != nil {
		p.FillOpacity = *ec.FillOpacity
	}
	if ec.BranchCount != nil {
		p.BranchCount = *ec.BranchCount
	}
	return p, nil
}
