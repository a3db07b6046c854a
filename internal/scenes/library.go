package scenes

import (
	"math"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/behavior"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

const (
	focusBook  = 5
	clockTicks = 5
)

// layer is one parallax depth of shelves.
type layer struct {
	shelves []*model.Entity
	scale   float64
	opacity float64
	drop    float64
}

// LibraryScale: the library flies past, one record is found too late.
func LibraryScale(env Env) (*director.Scene, error) {
	s := director.NewScene("library-scale", env.Palette)

	grid := func(xs, ys []float64) ([]*model.Entity, error) {
		var out []*model.Entity
		for _, y := range ys {
			for _, x := range xs {
				e, err := env.build(model.VariantShelf, model.Pt(x, y))
				if err != nil {
					return nil, err
				}
				out = append(out, e)
			}
		}
		return out, nil
	}
	far, err := grid([]float64{-6, -2, 2, 6}, []float64{-2.5, 0, 2.5})
	if err != nil {
		return nil, err
	}
	mid, err := grid([]float64{-4.5, 0, 4.5}, []float64{-2, 0, 2})
	if err != nil {
		return nil, err
	}
	near, err := grid([]float64{0}, []float64{-1.5, -0.5, 0.5})
	if err != nil {
		return nil, err
	}
	layers := []layer{
		{shelves: far, scale: 0.3, opacity: 0.3, drop: 15},
		{shelves: mid, scale: 0.6, opacity: 0.6, drop: 10},
		{shelves: near, scale: 1, opacity: 1, drop: 5},
	}

	focus, err := env.build(model.VariantShelf, model.Pt(0, 0))
	if err != nil {
		return nil, err
	}
	shelf, err := behavior.NewShelf(focus)
	if err != nil {
		return nil, err
	}
	book, err := shelf.Book(focusBook)
	if err != nil {
		return nil, err
	}

	white := env.Palette.Color(theme.Text)
	card := env.Builder.Prop("record", model.Pt(0, 0),
		model.NewRect("page", model.Pt(0, 0), 2, 1.5, white, 0.9),
	)
	record := env.lines("record-line", model.Pt(0, 0.35), 0.14, 0.35, theme.Ink,
		"user_id: 7239482", "name: Sarah Chen", "email: s.chen@...")

	clockAt := model.Pt(6, 3.3)
	face := model.NewCircle("face", clockAt, 0.5, white, 0)
	face.Stroke, face.StrokeWidth = white, 2
	clock := env.Builder.Prop("clock", clockAt,
		face,
		model.NewLine("hour-hand", clockAt, model.Add(clockAt, model.Pt(0, 0.3)), white, 3),
	)
	// The minute hand is its own entity so it can turn about the clock center.
	hand := env.Builder.Prop("minute-hand", clockAt,
		model.NewLine("minute-hand", clockAt, model.Add(clockAt, model.Pt(0.4, 0)), env.Palette.Color(theme.Danger), 2),
	)

	alert := env.text("alert", "QUERY TIMEOUT", model.Pt(0, 3.3), 0.45, theme.Danger)
	stats := env.lines("stat", model.Pt(-4.5, 0.5), 0.22, 0.5, theme.Text,
		"2.3 billion records", "Linear search: 47 minutes")
	stats = append(stats, env.text("stat", "Unacceptable.", model.Pt(-4.5, -0.5), 0.26, theme.Danger))

	for _, l := range layers {
		s.Add(l.shelves...)
	}
	hidden := append([]*model.Entity{focus, card, clock, hand, alert}, record...)
	s.Hide(append(hidden, stats...)...)

	var depth []anim.Node
	for _, l := range layers[:2] {
		for _, e := range l.shelves {
			depth = append(depth,
				anim.Set(e.Whole(), anim.Scale, anim.Value{Scalar: l.scale}),
				anim.Set(e.Whole(), anim.Opacity, anim.Value{Scalar: l.opacity}),
			)
		}
	}
	s.PlayLabeled("depth", depth...)

	var fly []anim.Node
	for i, l := range layers {
		for _, e := range l.shelves {
			fly = append(fly, anim.Shift(e.Whole(), model.Pt(0, -l.drop), anim.Over(3), anim.With(anim.RushFrom)))
			if i < 2 {
				fly = append(fly, anim.FadeTo(e.Whole(), 0, anim.Over(3), anim.With(anim.RushFrom)))
			}
		}
	}
	s.PlayLabeled("parallax", fly...)

	s.PlayLabeled("focus-shelf", append(fadeOutAll(0.5, near...), fadeIn(focus, 0.5))...)

	// Bring the chosen book to the frame center.
	s.PlayLabeled("focus-book", anim.Shift(focus.Whole(), model.Sub(model.Pt(0, 0), book.Part().Center), anim.Over(1.5)))

	highlight, err := shelf.Highlight(focusBook)
	if err != nil {
		return nil, err
	}
	open := []anim.Node{highlight, fadeIn(card, 0.8)}
	for _, e := range record {
		open = append(open, fadeIn(e, 0.8))
	}
	s.PlayLabeled("open-record", open...)

	s.PlayLabeled("clock", fadeIn(clock, 0.3), fadeIn(hand, 0.3))

	ticks := make([]anim.Node, clockTicks)
	for i := range ticks {
		ticks[i] = anim.RotateBy(hand.Whole(), math.Pi/6, anim.Over(0.1))
	}
	s.PlayLabeled("ticks", anim.Sequence(ticks...))

	s.PlayLabeled("timeout", fadeInScaled(alert, 1.3, 0.8))

	d := anim.StaggerDuration(2, len(stats), 0.3)
	entries := make([]anim.Node, len(stats))
	for i, e := range stats {
		entries[i] = fadeInFrom(e, model.Pt(-0.3, 0), d)
	}
	s.PlayLabeled("stats", anim.Staggered(0.3, entries...))
	s.Wait(1)
	return s, nil
}
