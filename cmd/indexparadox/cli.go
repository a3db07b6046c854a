package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/ivlev/indexparadox/internal/config"
)

// DefaultConfigFile is picked up from the working directory when no config is given.
const DefaultConfigFile = "indexparadox.toml"

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

// CLI defines the command-line interface.
type CLI struct {
	Globals `embed:""`

	Render  RenderCmd  `cmd:"" default:"withargs" help:"Resolve the program and write the schedule"`
	Inspect InspectCmd `cmd:"" help:"Print the beat table of a program or schedule file"`
	Watch   WatchCmd   `cmd:"" help:"Re-render whenever the config file changes"`
	Version VersionCmd `cmd:"" help:"Show version information (${version})"`
}

// Globals are shared by every command.
type Globals struct {
	Config string `short:"c" env:"INDEXPARADOX_CONFIG" help:"TOML config path (default: ./indexparadox.toml if present)"`
}

// Overrides are the render flags layered over the config file.
type Overrides struct {
	Seed    int64    `default:"-1" help:"Random seed (-1 keeps the config value)"`
	Workers int      `short:"w" help:"Worker count (0 keeps the config value)"`
	Scenes  []string `short:"s" help:"Scenes to render, in order (default: all)"`
	Strict  bool     `help:"Fail when a scene misses its timing window"`
}

// RenderCmd resolves the program.
type RenderCmd struct {
	Overrides `embed:""`

	Output  string `short:"o" help:"Schedule output path"`
	Preview bool   `help:"Write PNG preview frames"`
	Stats   bool   `help:"Print the performance report"`
}

// InspectCmd prints beats.
type InspectCmd struct {
	Overrides `embed:""`

	Schedule string `arg:"" optional:"" help:"Schedule YAML to inspect instead of resolving the program"`
	Latest   bool   `help:"Inspect the newest schedule in the output directory"`
	Scene    string `help:"Only show beats of this scene"`
}

// WatchCmd re-renders on config changes.
type WatchCmd struct {
	RenderCmd `embed:""`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}

// load reads the config file, or the defaults when there is none.
func (g *Globals) load() (*config.Config, error) {
	path := g.Config
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	cfg := config.New()
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
		fmt.Printf("[*] Конфигурация: %s\n", path)
	}
	cfg.BuildVersion = version
	return cfg, nil
}

func (o Overrides) apply(cfg *config.Config) {
	if o.Seed >= 0 {
		cfg.Seed = uint64(o.Seed)
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if len(o.Scenes) > 0 {
		cfg.Scenes = o.Scenes
	}
	if o.Strict {
		cfg.Strict = true
	}
}

func (r *RenderCmd) apply(cfg *config.Config) {
	r.Overrides.apply(cfg)
	if r.Output != "" {
		cfg.Output = r.Output
	}
	if r.Preview {
		cfg.Preview.Enabled = true
	}
	if r.Stats {
		cfg.ShowStats = true
	}
}
