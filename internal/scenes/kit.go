package scenes

import (
	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/builder"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// params returns the configured parameters for v placed at at.
func (env Env) params(v model.Variant, at model.Point) builder.Params {
	p, ok := env.Params[v]
	if !ok {
		p = builder.DefaultParams(v)
	}
	p.At = at
	return p
}

func (env Env) build(v model.Variant, at model.Point) (*model.Entity, error) {
	return env.Builder.Build(v, env.params(v, at))
}

// text builds a one-line label entity centered at at.
func (env Env) text(name, s string, at model.Point, size float64, role theme.Role) *model.Entity {
	return env.Builder.Prop(name, at, model.NewText(name, s, at, size, env.Palette.Color(role)))
}

// lines builds one label entity per line, stacked downward from at.
func (env Env) lines(name string, at model.Point, size, gap float64, role theme.Role, texts ...string) []*model.Entity {
	out := make([]*model.Entity, len(texts))
	for i, s := range texts {
		out[i] = env.text(name, s, model.Add(at, model.Pt(0, -float64(i)*gap)), size, role)
	}
	return out
}

func fadeIn(e *model.Entity, d float64) *anim.Clip {
	return anim.FadeTo(e.Whole(), 1, anim.Over(d))
}

func fadeOut(e *model.Entity, d float64) *anim.Clip {
	return anim.FadeTo(e.Whole(), 0, anim.Over(d))
}

func fadeOutAll(d float64, es ...*model.Entity) []anim.Node {
	out := make([]anim.Node, len(es))
	for i, e := range es {
		out[i] = fadeOut(e, d)
	}
	return out
}

// fadeInFrom fades e in while it slides to its build origin from offset away.
func fadeInFrom(e *model.Entity, offset model.Point, d float64) *anim.Group {
	return anim.Parallel(
		fadeIn(e, d),
		anim.MoveTo(e.Whole(), e.Origin, anim.Over(d), anim.From(anim.Value{Point: model.Add(e.Origin, offset)})),
	)
}

// fadeInScaled fades e in while it settles from scale s to 1.
func fadeInScaled(e *model.Entity, s, d float64) *anim.Group {
	return anim.Parallel(
		fadeIn(e, d),
		anim.ScaleTo(e.Whole(), 1, anim.Over(d), anim.From(anim.Value{Scalar: s})),
	)
}

// fadeOutScaled fades e out while it scales to s.
func fadeOutScaled(e *model.Entity, s, d float64) *anim.Group {
	return anim.Parallel(
		fadeOut(e, d),
		anim.ScaleTo(e.Whole(), s, anim.Over(d)),
	)
}

// conceal zeroes each pool member instantly so a later cascade fades from 0.
func conceal(pool model.Pool) []anim.Node {
	out := make([]anim.Node, pool.Len())
	for i := range out {
		out[i] = anim.Set(pool.Ref(i), anim.Opacity, anim.Value{Scalar: 0})
	}
	return out
}
