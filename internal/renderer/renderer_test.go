package renderer

import (
	"image"
	"math"
	"path/filepath"
	"testing"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/behavior"
	"github.com/ivlev/indexparadox/internal/builder"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

func compose(t *testing.T, s *director.Scene) *director.Schedule {
	t.Helper()
	sched, err := director.NewCompositor().Compose(s)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	return sched
}

func near(a, b model.Point) bool {
	return math.Hypot(a[0]-b[0], a[1]-b[1]) < 1e-6
}

func TestSeekInterpolates(t *testing.T) {
	b := builder.New(theme.Default(), builder.NewRand(1))
	p := builder.DefaultParams(model.VariantSwarm)
	p.PartCount = 2
	dots, _ := b.Build(model.VariantSwarm, p)

	s := director.NewScene("seek", nil).Add(dots)
	s.Play(anim.MoveTo(dots.Ref(0), model.Pt(2, 0), anim.Over(2), anim.With(anim.Linear)))
	s.Play(anim.FadeTo(dots.Ref(1), 0, anim.Over(1), anim.With(anim.Linear)))
	sched := compose(t, s)

	tests := []struct {
		time    float64
		pos     model.Point
		opacity float64
	}{
		{0, model.Pt(0, 0), 1},
		{1, model.Pt(1, 0), 1},
		{2, model.Pt(2, 0), 1},
		{2.5, model.Pt(2, 0), 0.5},
		{10, model.Pt(2, 0), 0},
	}

	stage := NewStage(dots)
	for _, tt := range tests {
		stage.Seek(sched, tt.time)
		live, _ := stage.Live(dots)
		if !near(live.Parts[0].Center, tt.pos) {
			t.Errorf("t=%.1f: dot 0 at %v, want %v", tt.time, live.Parts[0].Center, tt.pos)
		}
		if math.Abs(live.Parts[1].Opacity-tt.opacity) > 1e-9 {
			t.Errorf("t=%.1f: dot 1 opacity %g, want %g", tt.time, live.Parts[1].Opacity, tt.opacity)
		}
	}

	if dots.Parts[0].Center != model.Pt(0, 0) || dots.Parts[1].Opacity != 1 {
		t.Errorf("Seek must not modify the source entity")
	}
}

func TestStageKeepsSameSeedEntitiesApart(t *testing.T) {
	a := builder.New(nil, nil).Geometric(model.Pt(-2, 0))
	b := builder.New(nil, nil).Geometric(model.Pt(2, 0))

	s := director.NewScene("pair", nil).Add(a, b)
	s.Play(anim.Shift(a.Whole(), model.Pt(0, 1)), anim.Shift(b.Whole(), model.Pt(0, -1)))
	sched := compose(t, s)

	stage := NewStage(a, b)
	if n := len(stage.Entities()); n != 2 {
		t.Fatalf("stage holds %d entities, want 2", n)
	}
	stage.Seek(sched, sched.Total)
	la, _ := stage.Live(a)
	lb, _ := stage.Live(b)
	if !near(la.Origin, model.Pt(-2, 1)) || !near(lb.Origin, model.Pt(2, -1)) {
		t.Errorf("origins %v and %v, want (-2, 1) and (2, -1)", la.Origin, lb.Origin)
	}
}

func TestTeleportLeavesGhostBehind(t *testing.T) {
	b := builder.New(theme.Default(), builder.NewRand(1))
	hash := b.Geometric(model.Pt(-4, -1))
	g, _ := behavior.NewGeometric(hash, nil)

	s := director.NewScene("teleport", nil).Add(hash)
	s.Play(g.TeleportTo(model.Pt(4, 1)))
	sched := compose(t, s)

	stage := NewStage(hash)
	stage.Seek(sched, sched.Total)
	live, _ := stage.Live(hash)

	hex, _ := live.GroupPart("hexagon", 0)
	ghost, _ := live.GroupPart("ghost", 0)
	flash, _ := live.GroupPart("flash", 0)
	if !near(hex.Center, model.Pt(4, 1)) || !near(live.Origin, model.Pt(4, 1)) {
		t.Errorf("hexagon at %v, origin %v, want (4, 1)", hex.Center, live.Origin)
	}
	if !near(ghost.Center, model.Pt(-4, -1)) || !near(flash.Center, model.Pt(-4, -1)) {
		t.Errorf("ghost %v and flash %v should stay at the departure point", ghost.Center, flash.Center)
	}
	if math.Abs(ghost.Opacity-0.3) > 1e-9 || flash.Opacity > 1e-9 {
		t.Errorf("ghost opacity %g, flash opacity %g", ghost.Opacity, flash.Opacity)
	}
	if math.Abs(flash.Scale-3) > 1e-9 {
		t.Errorf("flash should end expanded, scale %g", flash.Scale)
	}
}

func TestReversibleRecipesReturnToRest(t *testing.T) {
	b := builder.New(theme.Default(), builder.NewRand(1))
	tree := b.Organic(model.Pt(0, 0))
	o, _ := behavior.NewOrganic(tree, nil)

	s := director.NewScene("rest", nil).Add(tree)
	s.Play(o.Idle())
	s.Play(o.Celebrate())
	sched := compose(t, s)

	stage := NewStage(tree)
	stage.Seek(sched, sched.Total)
	live, _ := stage.Live(tree)
	for i, p := range live.Parts {
		if !near(p.Center, tree.Parts[i].Center) || math.Abs(p.Rotation) > 1e-9 {
			t.Errorf("part %s did not return to rest: %v rot %g", p.Name, p.Center, p.Rotation)
		}
	}

	stage.Seek(sched, o.Idle().Span()+o.Celebrate().Span()/2)
	live, _ = stage.Live(tree)
	if math.Abs(live.Rotation-math.Pi/12) > 1e-9 {
		t.Errorf("nod should peak at pi/12 halfway, got %g", live.Rotation)
	}
}

func TestRenderDrawsShapes(t *testing.T) {
	pal := theme.Default()
	b := builder.New(pal, builder.NewRand(1))
	disc := b.Prop("disc", model.Pt(0, 0), model.NewCircle("disc", model.Pt(0, 0), 1, pal.Color(theme.Text), 1))

	r, err := NewRasterizer(Viewport{Width: 160, Height: 90, Background: pal.Color(theme.Background)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := r.Render([]*model.Entity{disc})
	defer r.Release(img)

	center := img.RGBAAt(80, 45)
	if center.R < 250 || center.G < 250 || center.B < 250 {
		t.Errorf("center pixel should be white, got %v", center)
	}
	corner := img.RGBAAt(0, 0)
	if corner.R != 0x0A || corner.G != 0x0E || corner.B != 0x1A {
		t.Errorf("corner pixel should be background, got %v", corner)
	}

	disc.Opacity = 0
	hidden := r.Render([]*model.Entity{disc})
	if c := hidden.RGBAAt(80, 45); c.R != 0x0A {
		t.Errorf("hidden entity was drawn: %v", c)
	}
	r.Release(hidden)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WritePNG(img, path); err != nil {
		t.Errorf("WritePNG failed: %v", err)
	}

	if _, err := NewRasterizer(Viewport{}, nil); err == nil {
		t.Errorf("expected error for an empty viewport")
	}
}

func TestFramePool(t *testing.T) {
	p := NewFramePool()
	rect := image.Rect(0, 0, 32, 18)
	a := p.Get(rect)
	if a.Bounds() != rect {
		t.Fatalf("pool returned %v, want %v", a.Bounds(), rect)
	}
	p.Put(a)
	p.Put(nil)
	p.Put(image.NewRGBA(image.Rect(0, 0, 5, 5))) // unknown size, dropped

	b := p.Get(rect)
	if b.Bounds() != rect {
		t.Errorf("second Get returned %v", b.Bounds())
	}
}
