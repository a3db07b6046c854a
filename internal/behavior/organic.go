package behavior

import (
	"fmt"
	"math"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	OrganicIdleTime      = 3.0
	SeedFlashTime        = 1.0
	TrunkGrowthTime      = 1.2
	BranchGrowthTime     = 1.5
	LeafGrowthTime       = 1.0
	BranchLag            = 0.2
	LeafLag              = 0.05
	TraverseStepTime     = 1.0
	TraverseLag          = 0.3
	OrganicCelebrateTime = 1.0
	SweepTime            = 1.0
)

// Growth stage labels, in the order GrowFromSeed emits them.
const (
	StageSeedFlash    = "seed-flash"
	StageTrunkGrowth  = "trunk-growth"
	StageBranchGrowth = "branch-growth"
	StageLeafGrowth   = "leaf-growth"
)

// Organic is the b-tree character: patient, staged, dependent growth.
type Organic struct {
	e   *model.Entity
	pal *theme.Palette
}

func NewOrganic(e *model.Entity, pal *theme.Palette) (*Organic, error) {
	if err := require(e, "trunk", "branches", "leaves", "seed"); err != nil {
		return nil, err
	}
	if pal == nil {
		pal = theme.Default()
	}
	return &Organic{e: e, pal: pal}, nil
}

func (o *Organic) Entity() *model.Entity { return o.e }

// Idle sways each leaf sideways by a fixed per-leaf amount and back.
func (o *Organic) Idle() *anim.Group {
	leaves := refs(o.e, "leaves")
	clips := make([]anim.Node, len(leaves))
	for i, l := range leaves {
		clips[i] = anim.Shift(l, model.Pt(0.1*math.Sin(float64(i)), 0),
			anim.Over(OrganicIdleTime), anim.With(anim.ThereAndBack))
	}
	return anim.Parallel(clips...).Named("idle")
}

// GrowFromSeed returns the four growth stages as a strict sequence: a seed
// flashes at seed, the trunk grows, branches cascade out of the trunk top, and
// leaves fade in. Trunk, branches and leaves are hidden when it starts.
func (o *Organic) GrowFromSeed(seed model.Point) *anim.Group {
	trunk := ref(o.e, "trunk")
	branches := refs(o.e, "branches")
	leaves := refs(o.e, "leaves")
	s := ref(o.e, "seed")

	hide := make([]anim.Node, 0, 1+len(branches)+len(leaves))
	for _, r := range append(append([]model.PartRef{trunk}, branches...), leaves...) {
		hide = append(hide, anim.Set(r, anim.Opacity, anim.Value{Scalar: 0}))
	}
	half := SeedFlashTime / 2
	flash := anim.Parallel(
		anim.Parallel(hide...).Named("hide"),
		anim.Sequence(
			anim.Set(s, anim.Position, anim.Value{Point: seed}),
			anim.Parallel(
				anim.FadeTo(s, 1, anim.Over(half)),
				anim.ScaleTo(s, 1, anim.Over(half), anim.From(anim.Value{Scalar: 0.5})),
			),
			anim.FadeTo(s, 0, anim.Over(half)),
		),
	).Named(StageSeedFlash)

	grow := anim.Parallel(
		anim.Set(trunk, anim.Opacity, anim.Value{Scalar: 1}),
		anim.ScaleTo(trunk, 1, anim.Over(TrunkGrowthTime), anim.From(anim.Value{Scalar: 0}), anim.With(anim.RushFrom)),
	).Named(StageTrunkGrowth)

	top := trunk.Part().Top()
	bd := anim.StaggerDuration(BranchGrowthTime, len(branches), BranchLag)
	bs := make([]anim.Node, len(branches))
	for i, r := range branches {
		bs[i] = anim.Parallel(
			anim.Set(r, anim.Opacity, anim.Value{Scalar: 1}),
			anim.ScaleTo(r, 1, anim.Over(bd), anim.From(anim.Value{Scalar: 0})),
			anim.MoveTo(r, r.Part().Center, anim.Over(bd), anim.From(anim.Value{Point: top})),
		)
	}

	ld := anim.StaggerDuration(LeafGrowthTime, len(leaves), LeafLag)
	ls := make([]anim.Node, len(leaves))
	for i, r := range leaves {
		ls[i] = anim.Parallel(
			anim.FadeTo(r, 1, anim.Over(ld)),
			anim.ScaleTo(r, 1, anim.Over(ld), anim.From(anim.Value{Scalar: 0.5})),
		)
	}

	return anim.Sequence(
		flash,
		grow,
		anim.Staggered(BranchLag, bs...).Named(StageBranchGrowth),
		anim.Staggered(LeafLag, ls...).Named(StageLeafGrowth),
	).Named("grow-from-seed")
}

// TraversePath lights the given connector segments of path in order, each
// step starting after TraverseLag of the previous one. An empty segment list
// yields a zero-duration group.
func (o *Organic) TraversePath(path *model.Entity, segments []int) (*anim.Group, error) {
	return TraversePath(path, segments, o.pal.Color(theme.Success))
}

// Celebrate is a respectful nod.
func (o *Organic) Celebrate() *anim.Group {
	return anim.Parallel(
		anim.RotateBy(o.e.Whole(), math.Pi/12, anim.Over(OrganicCelebrateTime), anim.With(anim.ThereAndBack)),
	).Named("celebrate")
}

// RangeSweep places the entity at from and sweeps it to to.
func (o *Organic) RangeSweep(from, to model.Point) *anim.Group {
	return anim.Sequence(
		anim.Set(o.e.Whole(), anim.Position, anim.Value{Point: from}),
		anim.MoveTo(o.e.Whole(), to, anim.Over(SweepTime), anim.With(anim.Smooth)),
	).Named("range-sweep")
}

// TraversePath works on any entity whose "connectors" group holds lines.
func TraversePath(path *model.Entity, segments []int, glow colorful.Color) (*anim.Group, error) {
	if err := require(path, "connectors"); err != nil {
		return nil, err
	}
	conns := refs(path, "connectors")
	for _, r := range conns {
		if r.Part().Shape != model.ShapeLine {
			return nil, fmt.Errorf("%s connector %s is a %s: %w", path.Name, r, r.Part().Shape, model.ErrUnsupportedBehavior)
		}
	}
	steps := make([]anim.Node, 0, len(segments))
	for _, s := range segments {
		if s < 0 || s >= len(conns) {
			return nil, fmt.Errorf("segment %d of %d: %w", s, len(conns), model.ErrInvalidParameter)
		}
		steps = append(steps, anim.Restroke(conns[s], glow, 8, anim.Over(TraverseStepTime)))
	}
	return anim.Staggered(TraverseLag, steps...).Named("traverse"), nil
}
