package anim

import (
	"math"
	"testing"

	"github.com/ivlev/indexparadox/internal/model"
)

func target(t *testing.T, n int) *model.Entity {
	t.Helper()
	e := model.NewEntity([16]byte{1}, "dots", model.VariantSwarm, model.Point{})
	for i := 0; i < n; i++ {
		e.AddGroup("dots", model.NewDot("d", model.Point{}, 0.1, Value{}.Color))
	}
	e.Seal()
	return e
}

func TestEasingEndpoints(t *testing.T) {
	curves := []Easing{Linear, Smooth, EaseInOutCubic, RushInto, RushFrom}
	for _, e := range curves {
		if v := e.At(0); math.Abs(v) > 1e-9 {
			t.Errorf("%s(0) = %g", e.Name(), v)
		}
		if v := e.At(1); math.Abs(v-1) > 1e-9 {
			t.Errorf("%s(1) = %g", e.Name(), v)
		}
		prev := -1.0
		for i := 0; i <= 20; i++ {
			v := e.At(float64(i) / 20)
			if v < prev-1e-12 {
				t.Errorf("%s not monotonic at step %d", e.Name(), i)
			}
			prev = v
		}
	}

	for _, e := range []Easing{ThereAndBack, ThereAndBackWith(Linear)} {
		if v := e.At(1); math.Abs(v) > 1e-9 {
			t.Errorf("%s should return to start, got %g", e.Name(), v)
		}
		if v := e.At(0.5); math.Abs(v-1) > 1e-9 {
			t.Errorf("%s should peak at the midpoint, got %g", e.Name(), v)
		}
		t.Logf("%s(0.25) = %.4f", e.Name(), e.At(0.25))
	}

	var zero Easing
	if zero.Name() != "smooth" || zero.At(0.3) != Smooth.At(0.3) {
		t.Errorf("zero easing should act as smooth")
	}
	if Linear.At(2) != 1 || Linear.At(-1) != 0 {
		t.Errorf("progress must be clamped")
	}
}

func TestEasingByName(t *testing.T) {
	for _, e := range []Easing{Linear, Smooth, EaseInOutCubic, RushInto, RushFrom, ThereAndBack} {
		got, ok := EasingByName(e.Name())
		if !ok || got.Name() != e.Name() {
			t.Errorf("EasingByName(%q) failed", e.Name())
		}
	}
	if _, ok := EasingByName("bounce"); ok {
		t.Errorf("unexpected easing resolved")
	}
}

func TestParallelSpan(t *testing.T) {
	e := target(t, 8)
	for _, k := range []int{1, 2, 8} {
		clips := make([]Node, k)
		for i := range clips {
			clips[i] = FadeTo(e.Ref(i), 0, Over(1.5))
		}
		g := Parallel(clips...)
		if g.Span() != 1.5 {
			t.Errorf("parallel of %d clips: span %g, want 1.5", k, g.Span())
		}
	}
}

func TestStaggeredSpan(t *testing.T) {
	e := target(t, 10)
	tests := []struct {
		k   int
		d   float64
		lag float64
	}{
		{1, 2, 0.5},
		{5, 1, 0.2},
		{10, 0.5, 0.05},
		{4, 1, 0},
		{4, 1, 1},
	}
	for _, tt := range tests {
		clips := make([]Node, tt.k)
		for i := range clips {
			clips[i] = MoveTo(e.Ref(i), model.Pt(1, 1), Over(tt.d))
		}
		g := Staggered(tt.lag, clips...)

		want := tt.d + float64(tt.k-1)*tt.lag*tt.d
		if math.Abs(g.Span()-want) > 1e-9 {
			t.Errorf("k=%d d=%g lag=%g: span %g, want %g", tt.k, tt.d, tt.lag, g.Span(), want)
		}
		offs := g.Offsets()
		for i := 1; i < len(offs); i++ {
			if step := offs[i] - offs[i-1]; math.Abs(step-tt.lag*tt.d) > 1e-9 {
				t.Errorf("k=%d: offset step %d is %g, want %g", tt.k, i, step, tt.lag*tt.d)
			}
		}
	}
}

func TestSequenceAndDelays(t *testing.T) {
	e := target(t, 3)
	seq := Sequence(
		FadeTo(e.Ref(0), 1, Over(0.5)),
		Wait(0.25),
		FadeTo(e.Ref(1), 1, Over(1), After(0.25)),
	)
	if got := seq.Span(); math.Abs(got-2) > 1e-9 {
		t.Errorf("sequence span %g, want 2", got)
	}
	want := []float64{0, 0.5, 0.75}
	for i, off := range seq.Offsets() {
		if math.Abs(off-want[i]) > 1e-9 {
			t.Errorf("offset %d = %g, want %g", i, off, want[i])
		}
	}

	empty := Staggered(0.3)
	if empty.Span() != 0 {
		t.Errorf("empty group should span 0, got %g", empty.Span())
	}
	if g := Parallel(nil, (*Clip)(nil)); len(g.Children) != 0 {
		t.Errorf("nil children should be dropped")
	}
}

func TestFitAndStaggerDuration(t *testing.T) {
	e := target(t, 20)
	d := StaggerDuration(1.5, 20, 0.01)
	clips := make([]*Clip, 20)
	for i := range clips {
		clips[i] = FadeTo(e.Ref(i), 0, Over(d))
	}
	g := Staggered(0.01, Nodes(clips)...)
	if math.Abs(g.Span()-1.5) > 1e-9 {
		t.Errorf("StaggerDuration: span %g, want 1.5", g.Span())
	}

	fitted := Fit(Sequence(FadeTo(e.Ref(0), 1, Over(2)), FadeTo(e.Ref(1), 1, Over(1), After(1))), 2)
	if math.Abs(fitted.Span()-2) > 1e-9 {
		t.Errorf("Fit: span %g, want 2", fitted.Span())
	}
	if len(Clips(fitted)) != 2 {
		t.Errorf("Fit lost clips")
	}
	if Clips(fitted)[1].Delay != 0.5 {
		t.Errorf("Fit should scale delays, got %g", Clips(fitted)[1].Delay)
	}
}

func TestClipConstructors(t *testing.T) {
	e := target(t, 1)
	c := ScaleBy(e.Whole(), 1.2, With(ThereAndBack), Over(0.6), Named("pose"))
	if !c.Relative || c.Property != Scale || c.Duration != 0.6 || c.Label != "pose" {
		t.Errorf("unexpected clip %+v", c)
	}
	s := Set(e.Ref(0), Opacity, Value{Scalar: 0}, Over(3))
	if s.Duration != 0 || s.Span() != 0 {
		t.Errorf("Set must be instantaneous")
	}
	if r := Recolor(e.Ref(0), Value{}.Color); r.To.Scalar != Keep {
		t.Errorf("Recolor should keep fill opacity")
	}
	for _, p := range []Property{Position, Scale, Opacity, Color, Rotation, Stroke} {
		got, err := ParseProperty(p.String())
		if err != nil || got != p {
			t.Errorf("ParseProperty(%s) = %v, %v", p, got, err)
		}
	}
	t.Logf("%s", c)
}
