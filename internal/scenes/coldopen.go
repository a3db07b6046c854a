package scenes

import (
	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/behavior"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// ColdOpen: a query line shatters into particles that reform into the title.
func ColdOpen(env Env) (*director.Scene, error) {
	s := director.NewScene("cold-open", env.Palette)

	query := env.text("query", "SELECT * FROM users WHERE id = 42", model.Pt(0, 0), 0.4, theme.Text)
	title := env.text("title", "THE INDEX PARADOX", model.Pt(0, 0.3), 0.7, theme.Text)
	subtitle := env.text("subtitle", "When faster isn't better", model.Pt(0, -0.8), 0.3, theme.Text)

	swarm, err := env.build(model.VariantSwarm, model.Pt(0, 0))
	if err != nil {
		return nil, err
	}
	// The first half explodes, the second half stays dark.
	streams := swarm.Pool()
	half := streams.Len() / 2
	scatter, dark := streams.Slice(0, half), streams.Slice(half, streams.Len())

	s.Hide(query, swarm, title, subtitle)

	s.PlayLabeled("query", anim.FadeTo(query.Whole(), 1, anim.Over(2), anim.With(anim.Linear)))
	s.Wait(0.5)

	explode, err := behavior.Explode(scatter, model.Pt(0, 0), model.Bounds(-4, 4, -3, 3), env.Rand, behavior.ExplodeBurst)
	if err != nil {
		return nil, err
	}
	shatter := []anim.Node{
		anim.Set(swarm.Whole(), anim.Opacity, anim.Value{Scalar: 1}),
		fadeOut(query, 0.2),
		explode,
	}
	s.PlayLabeled("shatter", append(shatter, conceal(dark)...)...)

	reform, err := behavior.Reform(scatter, title.Origin, 100, behavior.ReformBurst)
	if err != nil {
		return nil, err
	}
	s.PlayLabeled("reform", reform, anim.Fit(fadeInScaled(title, 1.2, 1), reform.Span()))

	s.PlayLabeled("subtitle", fadeInFrom(subtitle, model.Pt(0, -0.2), 0.8))
	s.Wait(1.5)

	s.PlayLabeled("title-out", append(fadeOutAll(0.8, title, subtitle), fadeOut(swarm, 0.8))...)
	return s, nil
}
