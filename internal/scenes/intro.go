package scenes

import (
	"math"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/behavior"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// CharacterIntro: the hash coalesces from pixels, the b-tree grows from a seed.
func CharacterIntro(env Env) (*director.Scene, error) {
	s := director.NewScene("character-intro", env.Palette)

	hashAt, treeAt := model.Pt(-3, 0), model.Pt(3, -0.3)
	hash, err := env.build(model.VariantGeometric, hashAt)
	if err != nil {
		return nil, err
	}
	tree, err := env.build(model.VariantOrganic, treeAt)
	if err != nil {
		return nil, err
	}
	g, err := behavior.NewGeometric(hash, env.Palette)
	if err != nil {
		return nil, err
	}
	o, err := behavior.NewOrganic(tree, env.Palette)
	if err != nil {
		return nil, err
	}

	pp := env.params(model.VariantSwarm, hashAt)
	pp.Name, pp.PartCount = "pixels", 100
	pp.JitterRangeX, pp.JitterRangeY = 2, 2
	pp.FillOpacity = 0.8
	pixels, err := env.Builder.Build(model.VariantSwarm, pp)
	if err != nil {
		return nil, err
	}

	white := env.Palette.Color(theme.Text)
	divider := env.Builder.Prop("divider", model.Pt(0, 0),
		model.NewLine("rule", model.Pt(0, 4), model.Pt(0, -4), white, 2),
		model.NewLine("glow", model.Pt(0, 4), model.Pt(0, -4), env.Palette.Color(theme.Special), 8),
	)
	rule, _ := divider.GroupPart("rule", 0)
	rule.Opacity = 0.3
	glow, _ := divider.GroupPart("glow", 0)
	glow.Opacity = 0.2

	hashLabel := env.text("hash-label", "HASH INDEX", model.Add(hashAt, model.Pt(0, -2.2)), 0.35, theme.Geometric)
	hashSpecs := env.lines("hash-spec", model.Add(hashAt, model.Pt(0, -2.7)), 0.16, 0.3, theme.Text,
		"O(1) lookup", "Bucket-based", "Equality only")
	treeLabel := env.text("btree-label", "B-TREE INDEX", model.Add(treeAt, model.Pt(0, -1.9)), 0.35, theme.Organic)
	treeSpecs := env.lines("btree-spec", model.Add(treeAt, model.Pt(0, -2.4)), 0.16, 0.3, theme.Text,
		"O(log n) lookup", "Sorted structure", "Range queries")

	hidden := []*model.Entity{divider, pixels, hash, tree, hashLabel, treeLabel}
	hidden = append(hidden, hashSpecs...)
	s.Hide(append(hidden, treeSpecs...)...)

	s.PlayLabeled("divider", fadeIn(divider, 1))

	coalesce, err := behavior.Cascade(pixels.Pool(), 1, behavior.Burst{RunTime: 1, LagRatio: 0.01})
	if err != nil {
		return nil, err
	}
	reveal := append([]anim.Node{anim.Set(pixels.Whole(), anim.Opacity, anim.Value{Scalar: 1})}, conceal(pixels.Pool())...)
	s.PlayLabeled("pixels", append(reveal, coalesce)...)

	s.PlayLabeled("hash-appears", fadeOut(pixels, 1.2), fadeInScaled(hash, 0.8, 1.2))

	s.PlayLabeled("hash-labels", fadeIn(hashLabel, 1.5), specs(hashSpecs, 1.5))

	s.PlayLabeled("btree-grows",
		anim.Set(tree.Whole(), anim.Opacity, anim.Value{Scalar: 1}),
		o.GrowFromSeed(model.Add(treeAt, model.Pt(0, -2))),
	)

	s.PlayLabeled("btree-labels", fadeIn(treeLabel, 1.5), specs(treeSpecs, 1.5))

	labels := append([]*model.Entity{hashLabel, treeLabel}, hashSpecs...)
	s.PlayLabeled("labels-out", fadeOutAll(0.5, append(labels, treeSpecs...)...)...)

	s.PlayLabeled("turn",
		anim.RotateBy(hash.Whole(), 2*math.Pi, anim.Over(3)),
		anim.RotateBy(tree.Whole(), 2*math.Pi, anim.Over(3)),
	)

	s.PlayLabeled("idle", g.Idle(), o.Idle())
	s.Wait(1)
	return s, nil
}

// specs staggers spec lines in, each rising slightly, within total seconds.
func specs(lines []*model.Entity, total float64) *anim.Group {
	d := anim.StaggerDuration(total, len(lines), 0.2)
	nodes := make([]anim.Node, len(lines))
	for i, e := range lines {
		nodes[i] = fadeInFrom(e, model.Pt(0, -0.2), d)
	}
	return anim.Staggered(0.2, nodes...)
}
