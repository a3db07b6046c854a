package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/ivlev/indexparadox/internal/config"
	"github.com/ivlev/indexparadox/internal/director"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kongVars())
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}
	return &cli, ctx
}

func TestRenderCmd_Flags(t *testing.T) {
	cli, ctx := parse(t, "render", "--seed", "9", "-w", "3", "-s", "cold-open", "-s", "challenge-1", "-o", "out.yaml", "--preview")
	if ctx.Command() != "render" {
		t.Errorf("command = %q", ctx.Command())
	}

	cfg := config.New()
	cli.Render.apply(cfg)
	if cfg.Seed != 9 || cfg.Workers != 3 || cfg.Output != "out.yaml" || !cfg.Preview.Enabled {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Scenes) != 2 || cfg.Scenes[1] != "challenge-1" {
		t.Errorf("scenes = %v", cfg.Scenes)
	}
}

func TestRenderCmd_DefaultsKeepConfig(t *testing.T) {
	cli, _ := parse(t, "render")
	cfg := config.New()
	cfg.Seed, cfg.Workers = 5, 7
	cli.Render.apply(cfg)
	if cfg.Seed != 5 || cfg.Workers != 7 || cfg.Strict || cfg.Preview.Enabled {
		t.Errorf("defaults should not override the config: %+v", cfg)
	}
}

func TestGlobalConfigFlag(t *testing.T) {
	cli, _ := parse(t, "--config", "scene.toml", "inspect", "--scene", "cold-open")
	if cli.Config != "scene.toml" {
		t.Errorf("config = %q", cli.Config)
	}
	if cli.Inspect.Scene != "cold-open" || cli.Inspect.Schedule != "" {
		t.Errorf("inspect = %+v", cli.Inspect)
	}
}

func TestVersionHelpUsesBuildVersion(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kongVars())
	if err != nil {
		t.Fatal(err)
	}
	for _, node := range parser.Model.Children {
		if node.Name == "version" {
			if !strings.Contains(node.Help, "("+version+")") {
				t.Errorf("version help = %q, want it to contain %q", node.Help, version)
			}
			return
		}
	}
	t.Errorf("no version command")
}

func TestPrintDocument(t *testing.T) {
	w := director.Window{Min: 1, Max: 2}
	doc := &director.Document{
		Version: director.DocumentVersion,
		Total:   3,
		Scenes: []director.SceneRecord{
			{Name: "cold-open", Start: 0, End: 3, Window: &w},
		},
		Beats: []director.BeatRecord{
			{Scene: "cold-open", Index: 0, Label: "query", Start: 0, End: 2, Hold: 1},
		},
		Entries: []director.EntryRecord{
			{Scene: "cold-open", Beat: 0, Entity: "query", Index: -1, Property: "opacity", Start: 0, End: 2},
		},
	}

	var buf bytes.Buffer
	if err := printDocument(&buf, doc, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"cold-open", "query", "miss", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if err := printDocument(&buf, doc, "library-scale"); err == nil {
		t.Errorf("expected error for a scene with no beats")
	}
}
