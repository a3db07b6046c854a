package behavior

import (
	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// Timings of the geometric recipes.
const (
	GeometricIdleTime      = 2.0
	TeleportTime           = 0.3
	GeometricCelebrateTime = 1.0
	StruggleTime           = 0.5
)

// Geometric is the hash character: fast, exact, angular.
type Geometric struct {
	e   *model.Entity
	pal *theme.Palette
}

func NewGeometric(e *model.Entity, pal *theme.Palette) (*Geometric, error) {
	if err := require(e, "hexagon", "particles", "ghost", "flash"); err != nil {
		return nil, err
	}
	if pal == nil {
		pal = theme.Default()
	}
	return &Geometric{e: e, pal: pal}, nil
}

func (g *Geometric) Entity() *model.Entity { return g.e }

// Idle breathes the hexagon: slightly larger and dimmer, then back.
func (g *Geometric) Idle() *anim.Group {
	hex := ref(g.e, "hexagon")
	return anim.Parallel(
		anim.ScaleBy(hex, 1.05, anim.Over(GeometricIdleTime), anim.With(anim.ThereAndBack)),
		anim.FadeTo(hex, 0.5, anim.Over(GeometricIdleTime), anim.With(anim.ThereAndBack)),
	).Named("idle")
}

// TeleportTo jumps from the build origin to target. See TeleportBy.
func (g *Geometric) TeleportTo(target model.Point) *anim.Group {
	return g.TeleportBy(model.Sub(target, g.e.Origin))
}

// TeleportBy moves the entity by delta within TeleportTime. A ghost of the
// hexagon fades in and a flash marker expands at the departure point; both are
// counter-shifted so they stay behind while the rest of the entity moves.
func (g *Geometric) TeleportBy(delta model.Point) *anim.Group {
	ghost, flash := ref(g.e, "ghost"), ref(g.e, "flash")
	back := model.Mul(delta, -1)
	half := TeleportTime / 2
	lin := anim.With(anim.Linear)

	return anim.Parallel(
		anim.Shift(g.e.Whole(), delta, anim.Over(TeleportTime), lin),
		anim.FadeTo(ghost, 0.3, anim.Over(TeleportTime), anim.From(anim.Value{Scalar: 0}), lin),
		anim.Shift(ghost, back, anim.Over(TeleportTime), lin),
		anim.Shift(flash, back, anim.Over(TeleportTime), lin),
		anim.Sequence(
			anim.Parallel(
				anim.FadeTo(flash, 1, anim.Over(half), anim.From(anim.Value{Scalar: 0}), lin),
				anim.ScaleTo(flash, 1, anim.Over(half), anim.From(anim.Value{Scalar: 0.1}), lin),
			),
			anim.Parallel(
				anim.FadeTo(flash, 0, anim.Over(half), lin),
				anim.ScaleTo(flash, 3, anim.Over(half), lin),
			),
		),
	).Named("teleport")
}

// Celebrate is a quick there-and-back swell of the whole entity.
func (g *Geometric) Celebrate() *anim.Group {
	return anim.Parallel(
		anim.ScaleBy(g.e.Whole(), 1.2, anim.Over(GeometricCelebrateTime), anim.With(anim.ThereAndBack)),
	).Named("celebrate")
}

// Struggle shakes the entity and turns the hexagon outline to danger.
func (g *Geometric) Struggle() *anim.Group {
	return anim.Parallel(
		anim.Shift(g.e.Whole(), model.Pt(-0.1, 0), anim.Over(StruggleTime), anim.With(anim.ThereAndBack)),
		anim.Restroke(ref(g.e, "hexagon"), g.pal.Color(theme.Danger), 4, anim.Over(StruggleTime)),
	).Named("struggle")
}
