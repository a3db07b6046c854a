package director

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/behavior"
	"github.com/ivlev/indexparadox/internal/builder"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

func dots(t *testing.T, n int) *model.Entity {
	t.Helper()
	p := builder.DefaultParams(model.VariantSwarm)
	p.PartCount = n
	e, err := builder.New(theme.Default(), builder.NewRand(2)).Build(model.VariantSwarm, p)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestResolveParallel(t *testing.T) {
	e := dots(t, 6)
	for _, k := range []int{1, 3, 6} {
		clips := make([]anim.Node, k)
		for i := range clips {
			clips[i] = anim.MoveTo(e.Ref(i), model.Pt(1, 1), anim.Over(0.8))
		}
		s, err := NewCompositor().Resolve(anim.Parallel(clips...))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if len(s.Entries) != k {
			t.Errorf("expected %d entries, got %d", k, len(s.Entries))
		}
		if s.Total != 0.8 {
			t.Errorf("parallel of %d: total %g, want 0.8", k, s.Total)
		}
		for _, en := range s.Entries {
			if en.Start != 0 || en.End != 0.8 {
				t.Errorf("entry %s at [%g, %g]", en.Path, en.Start, en.End)
			}
		}
	}
}

func TestResolveStaggered(t *testing.T) {
	e := dots(t, 5)
	const d, r = 1.0, 0.3
	clips := make([]anim.Node, 5)
	for i := range clips {
		clips[i] = anim.FadeTo(e.Ref(i), 0, anim.Over(d))
	}
	s, err := NewCompositor().Resolve(anim.Staggered(r, clips...))
	if err != nil {
		t.Fatal(err)
	}
	if want := d + 4*r*d; math.Abs(s.Total-want) > 1e-9 {
		t.Errorf("total %g, want %g", s.Total, want)
	}
	for i, en := range s.Entries {
		if en.Clip.Target != e.Ref(i) {
			t.Errorf("entry %d out of declaration order: %s", i, en.Clip.Target)
		}
		if math.Abs(en.Start-float64(i)*r*d) > 1e-9 {
			t.Errorf("entry %d starts at %g, want %g", i, en.Start, float64(i)*r*d)
		}
		t.Logf("%-40s [%.2f, %.2f]", en.Path, en.Start, en.End)
	}
}

func TestOverlappingMutationRejected(t *testing.T) {
	e := dots(t, 2)
	tests := []struct {
		name string
		node anim.Node
		want error
	}{
		{
			"same part position in parallel",
			anim.Parallel(
				anim.MoveTo(e.Ref(0), model.Pt(1, 0)),
				anim.Shift(e.Ref(0), model.Pt(0, 1), anim.After(0.5)),
			),
			model.ErrOverlappingMutation,
		},
		{
			"staggered overlap",
			anim.Staggered(0.5, anim.FadeTo(e.Ref(1), 0), anim.FadeTo(e.Ref(1), 1)),
			model.ErrOverlappingMutation,
		},
		{
			"two assignments at one instant",
			anim.Parallel(
				anim.Set(e.Ref(0), anim.Opacity, anim.Value{Scalar: 0}),
				anim.Set(e.Ref(0), anim.Opacity, anim.Value{Scalar: 1}),
			),
			model.ErrOverlappingMutation,
		},
		{
			"different properties",
			anim.Parallel(anim.MoveTo(e.Ref(0), model.Pt(1, 0)), anim.FadeTo(e.Ref(0), 0.5)),
			nil,
		},
		{
			"different parts",
			anim.Parallel(anim.MoveTo(e.Ref(0), model.Pt(1, 0)), anim.MoveTo(e.Ref(1), model.Pt(1, 0))),
			nil,
		},
		{
			"back to back",
			anim.Sequence(anim.FadeTo(e.Ref(0), 1, anim.Over(0.15)), anim.FadeTo(e.Ref(0), 0, anim.Over(0.15))),
			nil,
		},
		{
			"set then animate",
			anim.Sequence(anim.Set(e.Ref(0), anim.Position, anim.Value{}), anim.MoveTo(e.Ref(0), model.Pt(2, 2))),
			nil,
		},
		{
			"whole entity and part compose",
			anim.Parallel(anim.Shift(e.Whole(), model.Pt(1, 0)), anim.Shift(e.Ref(0), model.Pt(-1, 0))),
			nil,
		},
	}

	for _, tt := range tests {
		_, err := NewCompositor().Resolve(tt.node)
		if tt.want == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		if err != nil {
			t.Logf("%s: %v", tt.name, err)
		}
	}
}

// Builders with the same seed hand out equal IDs; the entities are still
// distinct targets.
func TestSameSeedEntitiesAreDistinctTargets(t *testing.T) {
	a := builder.New(nil, nil).Geometric(model.Pt(-2, 0))
	b := builder.New(nil, nil).Geometric(model.Pt(2, 0))
	if a.ID != b.ID {
		t.Fatalf("expected equal seeded IDs, got %s and %s", a.ID, b.ID)
	}

	sched, err := NewCompositor().Resolve(anim.Parallel(
		anim.MoveTo(a.Whole(), model.Pt(0, 1)),
		anim.MoveTo(b.Whole(), model.Pt(0, -1)),
	))
	if err != nil {
		t.Fatalf("moving two entities together failed: %v", err)
	}
	if len(sched.Entries) != 2 || len(sched.Entities()) != 2 {
		t.Errorf("got %d entries over %d entities, want 2 and 2", len(sched.Entries), len(sched.Entities()))
	}

	_, err = NewCompositor().Resolve(anim.Parallel(
		anim.MoveTo(a.Whole(), model.Pt(0, 1)),
		anim.MoveTo(a.Whole(), model.Pt(0, -1)),
	))
	if !errors.Is(err, model.ErrOverlappingMutation) {
		t.Errorf("same entity twice: expected ErrOverlappingMutation, got %v", err)
	}
}

func TestInvalidParametersRejected(t *testing.T) {
	e := dots(t, 1)
	tests := []struct {
		name string
		node anim.Node
	}{
		{"negative duration", anim.FadeTo(e.Ref(0), 1, anim.Over(-1))},
		{"NaN delay", anim.FadeTo(e.Ref(0), 1, anim.After(math.NaN()))},
		{"opacity above one", anim.FadeTo(e.Ref(0), 1.5)},
		{"opacity start below zero", anim.FadeTo(e.Ref(0), 1, anim.From(anim.Value{Scalar: -0.1}))},
		{"lag above one", anim.Staggered(1.5, anim.FadeTo(e.Ref(0), 1))},
		{"relative opacity", &anim.Clip{Target: e.Ref(0), Property: anim.Opacity, Relative: true, Duration: 1}},
		{"nil target", anim.FadeTo(model.PartRef{}, 1)},
		{"part out of range", anim.FadeTo(e.Ref(3), 1)},
		{"negative group delay", anim.Parallel(anim.FadeTo(e.Ref(0), 1)).After(-2)},
		{"negative stroke", anim.Restroke(e.Ref(0), theme.Default().Color(theme.Danger), -1)},
		{"nil clip child", &anim.Group{Children: []anim.Node{(*anim.Clip)(nil)}}},
		{"nil group child", &anim.Group{Kind: anim.KindParallel, Children: []anim.Node{anim.FadeTo(e.Ref(0), 1), (*anim.Group)(nil)}}},
		{"nil root clip", (*anim.Clip)(nil)},
		{"nil root", nil},
	}
	for _, tt := range tests {
		s, err := NewCompositor().Resolve(tt.node)
		if !errors.Is(err, model.ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", tt.name, err)
		}
		if s != nil {
			t.Errorf("%s: a rejected tree must not produce a schedule", tt.name)
		}
	}
}

func TestComposeBeatsAreSequential(t *testing.T) {
	e := dots(t, 3)
	s := NewScene("test", nil)
	s.Add(e)
	s.Play(anim.FadeTo(e.Ref(0), 0, anim.Over(2))).Wait(0.5)
	s.PlayLabeled("second", anim.FadeTo(e.Ref(0), 1, anim.Over(1)), anim.MoveTo(e.Ref(1), model.Pt(3, 0), anim.Over(1.5)))
	s.Wait(1)

	sched, err := NewCompositor().Compose(s)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(sched.Beats) != 2 {
		t.Fatalf("expected 2 beats, got %d", len(sched.Beats))
	}
	if b := sched.Beats[1]; b.Start != 2.5 || b.End != 4 || b.Label != "second" {
		t.Errorf("second beat placed at %+v", b)
	}
	if sched.Total != 5 || s.Duration() != 5 {
		t.Errorf("total %g, scene duration %g, want 5", sched.Total, s.Duration())
	}
	for _, en := range sched.Entries {
		if en.Beat == 1 && en.Start < 2.5 {
			t.Errorf("beat 1 entry starts before beat 0 finished: %g", en.Start)
		}
	}

	// Same target property in two beats is not a conflict.
	if sched.Entries[0].Clip.Target != sched.Entries[1].Clip.Target {
		t.Errorf("expected both opacity clips on part 0 first in order")
	}
}

func TestComposeProgramAndWindows(t *testing.T) {
	e := dots(t, 1)
	a := NewScene("a", nil)
	a.Window = Window{Min: 1, Max: 2}
	a.Play(anim.FadeTo(e.Ref(0), 0, anim.Over(1.5)))
	b := NewScene("b", nil)
	b.Window = Window{Min: 3, Max: 4}
	b.Play(anim.FadeTo(e.Ref(0), 1, anim.Over(1))).Wait(1)

	sched, err := NewCompositor().ComposeProgram(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if sched.Total != 3.5 {
		t.Errorf("program total %g, want 3.5", sched.Total)
	}
	sb, ok := sched.Scene("b")
	if !ok || sb.Start != 1.5 || sb.End != 3.5 {
		t.Errorf("scene b placed at %+v", sb)
	}
	sa, _ := sched.Scene("a")
	if err := sa.Window.Check(sa.Duration()); err != nil {
		t.Errorf("scene a within its window: %v", err)
	}
	if err := sb.Window.Check(sb.Duration()); !errors.Is(err, ErrTimingWindow) {
		t.Errorf("scene b should miss its window, got %v", err)
	}
	if err := (Window{}).Check(100); err != nil {
		t.Errorf("zero window accepts anything")
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	b := builder.New(theme.Default(), builder.NewRand(4))
	o, err := behavior.NewOrganic(b.Organic(model.Pt(0, 0)), nil)
	if err != nil {
		t.Fatal(err)
	}
	g := o.GrowFromSeed(model.Pt(0, -2))

	first, err := NewCompositor().Resolve(g)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := NewCompositor().Resolve(g)
		if err != nil {
			t.Fatal(err)
		}
		opt := cmpopts.IgnoreUnexported(anim.Easing{}, model.Entity{})
		if diff := cmp.Diff(first, again, opt); diff != "" {
			t.Fatalf("resolution %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestGrowFromSeedHasNoConflicts(t *testing.T) {
	b := builder.New(theme.Default(), builder.NewRand(8))
	hash, _ := behavior.NewGeometric(b.Geometric(model.Pt(-4, -1)), nil)
	tree, _ := behavior.NewOrganic(b.Organic(model.Pt(2, 0)), nil)

	s := NewScene("recipes", nil)
	s.Add(hash.Entity(), tree.Entity())
	s.Play(tree.GrowFromSeed(model.Pt(2, -2)))
	s.Play(hash.Idle(), tree.Idle())
	s.Play(hash.TeleportTo(model.Pt(4, 1)))
	s.Play(hash.Celebrate(), tree.Celebrate())
	s.Play(hash.Struggle(), tree.RangeSweep(model.Pt(-2, 0), model.Pt(2, 0)))

	if _, err := NewCompositor().Compose(s); err != nil {
		t.Fatalf("recipes should compose cleanly: %v", err)
	}
}

func TestScheduleWriteRead(t *testing.T) {
	e := dots(t, 2)
	s := NewScene("io", nil)
	s.Window = Window{Min: 0.5, Max: 3}
	s.Add(e)
	s.Play(anim.Shift(e.Whole(), model.Pt(1, 0), anim.With(anim.Linear)), anim.FadeTo(e.Ref(1), 0.5))
	sched, err := NewCompositor().Compose(s)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "nested", "schedule.yaml")
	if err := WriteSchedule(Export(sched), path); err != nil {
		t.Fatalf("WriteSchedule failed: %v", err)
	}
	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	if doc.Version != DocumentVersion || doc.Total != sched.Total {
		t.Errorf("header mismatch: %+v", doc)
	}
	if len(doc.Entries) != 2 || len(doc.Beats) != 1 || len(doc.Scenes) != 1 {
		t.Fatalf("record counts: %d entries, %d beats, %d scenes", len(doc.Entries), len(doc.Beats), len(doc.Scenes))
	}
	whole := doc.Entries[0]
	if whole.Index != model.Whole || whole.Part != "" || !whole.Relative || whole.Easing != "linear" {
		t.Errorf("whole-entity record: %+v", whole)
	}
	if doc.Entries[1].Part != "particle-1" || doc.Entries[1].Property != "opacity" {
		t.Errorf("part record: %+v", doc.Entries[1])
	}
	if doc.Scenes[0].Window == nil || doc.Scenes[0].Window.Max != 3 {
		t.Errorf("window not exported: %+v", doc.Scenes[0])
	}
}
