package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indexparadox.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Workers < 1 || cfg.Seed == 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
seed = 7
output = "out/schedule.yaml"
workers = 2
strict = true
scenes = ["cold-open", "challenge-1"]

[theme]
name = "night"
[theme.colors]
geometric = "#112233"

[preview]
enabled = true
width = 320
height = 180
fps = 5
max_frames = 12

[entities.swarm]
part_count = 120

[entities.organic]
branch_count = 4
role = "highlight"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Seed != 7 || cfg.Workers != 2 || !cfg.Strict || len(cfg.Scenes) != 2 {
		t.Errorf("top-level fields not decoded: %+v", cfg)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("unset keys should keep defaults, output_dir = %q", cfg.OutputDir)
	}
	if cfg.Preview.Dir != "output/frames" || cfg.Preview.MaxFrames != 12 {
		t.Errorf("preview = %+v", cfg.Preview)
	}

	pal, err := cfg.Palette()
	if err != nil {
		t.Fatal(err)
	}
	if pal.Name() != "night" {
		t.Errorf("palette name = %q, want night", pal.Name())
	}
	if got := pal.Hex(theme.Geometric); got != "#112233" {
		t.Errorf("geometric = %s, want #112233", got)
	}
	if got := pal.Hex(theme.Organic); got != theme.Default().Hex(theme.Organic) {
		t.Errorf("organic should keep the default, got %s", got)
	}

	params, err := cfg.EntityParams()
	if err != nil {
		t.Fatal(err)
	}
	if params[model.VariantSwarm].PartCount != 120 {
		t.Errorf("swarm part count = %d", params[model.VariantSwarm].PartCount)
	}
	org := params[model.VariantOrganic]
	if org.BranchCount != 4 || org.PaletteRole != theme.Highlight || org.PartCount != 15 {
		t.Errorf("organic params = %+v", org)
	}
	if _, ok := params[model.VariantGeometric]; ok {
		t.Errorf("variants without overrides should not appear")
	}
}

func TestLoadFileRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `seed = `},
		{"unknown key", `sede = 3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tt.body)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected error for a missing file")
	}
}

func TestValidateRejects(t *testing.T) {
	neg := -1
	big := 1.5
	role := "mauve"
	tests := []struct {
		name   string
		mutate func(*Config)
		param  bool
	}{
		{"no workers", func(c *Config) { c.Workers = 0 }, false},
		{"no output", func(c *Config) { c.Output, c.OutputDir = "", "" }, false},
		{"preview size", func(c *Config) { c.Preview.Enabled, c.Preview.Width = true, 0 }, false},
		{"bad color", func(c *Config) { c.Theme.Colors = map[string]string{"text": "white"} }, false},
		{"bad role", func(c *Config) { c.Theme.Colors = map[string]string{"mauve": "#FFFFFF"} }, false},
		{"bad variant", func(c *Config) { c.Entities = map[string]EntityConfig{"dragon": {}} }, false},
		{"index tree", func(c *Config) { c.Entities = map[string]EntityConfig{"index-tree": {}} }, false},
		{"negative count", func(c *Config) { c.Entities = map[string]EntityConfig{"swarm": {PartCount: &neg}} }, true},
		{"opacity", func(c *Config) { c.Entities = map[string]EntityConfig{"geometric": {FillOpacity: &big}} }, true},
		{"entity role", func(c *Config) { c.Entities = map[string]EntityConfig{"geometric": {Role: &role}} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.param && !errors.Is(err, model.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			t.Logf("%s: %v", tt.name, err)
		})
	}
}
