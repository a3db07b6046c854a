package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/ivlev/indexparadox/internal/builder"
	"github.com/ivlev/indexparadox/internal/config"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/renderer"
	"github.com/ivlev/indexparadox/internal/scenes"
	"github.com/ivlev/indexparadox/internal/theme"
	"golang.org/x/sync/errgroup"
)

// Project resolves the configured scenes into one schedule.
type Project struct {
	Config     *config.Config
	Compositor *director.Compositor

	palette *theme.Palette
	params  map[model.Variant]builder.Params
	scripts []slot
}

// slot is a script and its position in the full program, which fixes its seed.
type slot struct {
	index  int
	script scenes.Script
}

// Result summarizes a run.
type Result struct {
	Scenes       []*director.Scene
	Schedule     *director.Schedule
	SchedulePath string
	Frames       int
	Warnings     []error
}

func NewProject(cfg *config.Config) (*Project, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	params, err := cfg.EntityParams()
	if err != nil {
		return nil, err
	}
	scripts, err := selectScripts(cfg.Scenes)
	if err != nil {
		return nil, err
	}
	return &Project{
		Config:     cfg,
		Compositor: director.NewCompositor(),
		palette:    pal,
		params:     params,
		scripts:    scripts,
	}, nil
}

func selectScripts(names []string) ([]slot, error) {
	all := scenes.All()
	if len(names) == 0 {
		out := make([]slot, len(all))
		for i, s := range all {
			out[i] = slot{index: i, script: s}
		}
		return out, nil
	}
	out := make([]slot, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(s scenes.Script) bool { return s.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown scene %q (have %v)", name, scenes.Names())
		}
		// Scene names key the exported schedule and the preview cast.
		if slices.ContainsFunc(out, func(sl slot) bool { return sl.index == i }) {
			return nil, fmt.Errorf("scene %q selected twice", name)
		}
		out = append(out, slot{index: i, script: all[i]})
	}
	return out, nil
}

// Seed returns the seed a scene at program position index is built with.
func (p *Project) Seed(index int) uint64 {
	return p.Config.Seed + uint64(index)
}

// Build runs every selected script concurrently. Each scene gets its own
// builder and random stream, so results do not depend on scheduling.
func (p *Project) Build(ctx context.Context) ([]*director.Scene, error) {
	out := make([]*director.Scene, len(p.scripts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers)
	for i, sl := range p.scripts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			env := scenes.NewEnv(p.palette, p.Seed(sl.index), p.params)
			sc, err := sl.script.Run(env)
			if err != nil {
				return err
			}
			// Validate each scene on its own before the program is stitched.
			if _, err := p.Compositor.Compose(sc); err != nil {
				return fmt.Errorf("scene %s: %w", sc.Name, err)
			}
			out[i] = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve builds the scenes and composes them back to back.
func (p *Project) Resolve(ctx context.Context) ([]*director.Scene, *director.Schedule, error) {
	built, err := p.Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	sched, err := p.Compositor.ComposeProgram(built...)
	if err != nil {
		return nil, nil, err
	}
	return built, sched, nil
}

// CheckWindows returns one warning per scene outside its window. In strict
// mode the first miss is an error instead.
func (p *Project) CheckWindows(sched *director.Schedule) ([]error, error) {
	var warnings []error
	for _, sc := range sched.Scenes {
		if err := sc.Window.Check(sc.Duration()); err != nil {
			err = fmt.Errorf("scene %s: %w", sc.Name, err)
			if p.Config.Strict {
				return nil, err
			}
			warnings = append(warnings, err)
		}
	}
	return warnings, nil
}

// SchedulePath is the configured output or a fresh timestamped path.
func (p *Project) SchedulePath() string {
	if p.Config.Output != "" {
		return p.Config.Output
	}
	return director.GenerateSchedulePath(p.Config.OutputDir)
}

func (p *Project) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	fmt.Println("--- [PROJECT: INDEX PARADOX] ---")
	fmt.Printf("[*] Сцены: %d | Seed: %d | Потоки: %d | Тема: %s\n", len(p.scripts), p.Config.Seed, p.Config.Workers, p.palette.Name())
	fmt.Println("-----------------------------")

	built, sched, err := p.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки программы: %w", err)
	}
	resolveTime := time.Since(startTime)

	for _, sc := range sched.Scenes {
		fmt.Printf("[>] %s: %.2fs [%.2f - %.2f]\n", sc.Name, sc.Duration(), sc.Start, sc.End)
	}

	warnings, err := p.CheckWindows(sched)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Printf("[!] %v", w)
	}

	path := p.SchedulePath()
	if err := director.WriteSchedule(director.Export(sched), path); err != nil {
		return nil, fmt.Errorf("ошибка записи расписания: %w", err)
	}
	fmt.Printf("[+++] Расписание сохранено: %s (%.2fs, %d клипов)\n", path, sched.Total, len(sched.Entries))

	res := &Result{Scenes: built, Schedule: sched, SchedulePath: path, Warnings: warnings}

	var previewTime time.Duration
	if p.Config.Preview.Enabled {
		previewStart := time.Now()
		n, err := p.RenderPreview(ctx, sched)
		if err != nil {
			return nil, fmt.Errorf("ошибка рендера превью: %w", err)
		}
		previewTime = time.Since(previewStart)
		res.Frames = n
		fmt.Printf("[+++] Превью: %d кадров в %s\n", n, p.Config.Preview.Dir)
	}

	if p.Config.ShowStats {
		fmt.Printf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Build: %s\n"+
				"Total Time: %.2fs\n"+
				"Resolve: %.2fs\n"+
				"Preview: %.2fs (%d frames)\n"+
				"----------------------------\n",
			p.Config.BuildVersion, time.Since(startTime).Seconds(), resolveTime.Seconds(), previewTime.Seconds(), res.Frames,
		)
	}
	return res, nil
}

// FrameTimes samples [0, total] at fps, capped at limit frames when limit > 0.
func FrameTimes(total float64, fps, limit int) []float64 {
	if fps <= 0 || total < 0 {
		return nil
	}
	n := int(math.Floor(total*float64(fps))) + 1
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(fps)
	}
	return out
}

// RenderPreview writes PNG frames of the schedule. Frames are split into
// contiguous runs, one per worker; each worker owns a stage and a rasterizer
// and shares the frame pool.
func (p *Project) RenderPreview(ctx context.Context, sched *director.Schedule) (int, error) {
	pc := p.Config.Preview
	times := FrameTimes(sched.Total, pc.FPS, pc.MaxFrames)
	if len(times) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(pc.Dir, 0755); err != nil {
		return 0, err
	}

	vp := renderer.Viewport{
		Width:      pc.Width,
		Height:     pc.Height,
		FrameWidth: pc.FrameWidth,
		Background: p.palette.Color(theme.Background),
	}
	pool := renderer.NewFramePool()
	entities := sched.Entities()
	cast := castByScene(sched)

	workers := min(p.Config.Workers, len(times))
	chunk := (len(times) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, min((w+1)*chunk, len(times))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			r, err := renderer.NewRasterizer(vp, pool)
			if err != nil {
				return err
			}
			stage := renderer.NewStage(entities...)
			for k := lo; k < hi; k++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				stage.Seek(sched, times[k])
				img := r.Render(onStage(stage, sched, cast, times[k]))
				err := renderer.WritePNG(img, filepath.Join(pc.Dir, fmt.Sprintf("frame_%05d.png", k)))
				r.Release(img)
				if err != nil {
					return fmt.Errorf("кадр %d: %w", k, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("[!] Рендер превью прерван")
		}
		return 0, err
	}
	return len(times), nil
}

// castByScene lists, per scene, the entities its clips touch in first-use order.
func castByScene(sched *director.Schedule) map[string][]*model.Entity {
	out := make(map[string][]*model.Entity)
	seen := make(map[string]map[*model.Entity]bool)
	for _, e := range sched.Entries {
		ent := e.Clip.Target.Entity
		if seen[e.Scene] == nil {
			seen[e.Scene] = make(map[*model.Entity]bool)
		}
		if !seen[e.Scene][ent] {
			seen[e.Scene][ent] = true
			out[e.Scene] = append(out[e.Scene], ent)
		}
	}
	return out
}

// onStage returns the live entities of the scene playing at t. Scenes own
// the frame for [Start, End); the last scene also owns its end instant.
func onStage(stage *renderer.Stage, sched *director.Schedule, cast map[string][]*model.Entity, t float64) []*model.Entity {
	name := ""
	for i, sc := range sched.Scenes {
		if (t >= sc.Start && t < sc.End) || (i == len(sched.Scenes)-1 && t >= sc.Start) {
			name = sc.Name
			break
		}
	}
	var out []*model.Entity
	for _, src := range cast[name] {
		if e, ok := stage.Live(src); ok {
			out = append(out, e)
		}
	}
	return out
}
