package scenes

import (
	"fmt"
	"math"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/behavior"
	"github.com/ivlev/indexparadox/internal/builder"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// Challenge1: both characters race to find user_id = 42.
func Challenge1(env Env) (*director.Scene, error) {
	s := director.NewScene("challenge-1", env.Palette)
	pal := env.Palette

	hashAt, treeAt := model.Pt(-4, -1), model.Pt(-4, -1.2)
	hash, err := env.build(model.VariantGeometric, hashAt)
	if err != nil {
		return nil, err
	}
	tree, err := env.build(model.VariantOrganic, treeAt)
	if err != nil {
		return nil, err
	}
	g, err := behavior.NewGeometric(hash, pal)
	if err != nil {
		return nil, err
	}
	o, err := behavior.NewOrganic(tree, pal)
	if err != nil {
		return nil, err
	}

	// Briefing.
	top := model.Pt(0, 3.3)
	panel := model.NewRect("panel", top, 6.5, 0.8, pal.Color(theme.Ink), 0.7)
	panel.Stroke, panel.StrokeWidth = pal.Color(theme.Success), 2
	mission := env.Builder.Prop("mission", top,
		panel,
		model.NewText("mission", "MISSION: Find user_id = 42", top, 0.32, pal.Color(theme.Text)),
	)
	bookAt := model.Pt(5, 1)
	target := targetBook(env, "target-book", bookAt)

	countdown := make([]*model.Entity, 0, 4)
	for i := 3; i >= 1; i-- {
		countdown = append(countdown, env.text("count", fmt.Sprint(i), model.Pt(0, 0), 0.7, theme.Text))
	}
	goText := env.text("go", "GO!", model.Pt(0, 0), 0.9, theme.Success)

	// Hash race.
	query := env.text("query", "id = 42", model.Add(hashAt, model.Pt(-1.8, 0)), 0.24, theme.Text)
	spin := kaleidoscope(env, hashAt)
	bucket := env.text("bucket", "BUCKET[7]", model.Add(hashAt, model.Pt(0, 1)), 0.28, theme.Geometric)
	arrival := model.Add(bookAt, model.Pt(-0.5, 0))
	hashTime := env.text("hash-time", "0.003 seconds", model.Add(arrival, model.Pt(0, -1.2)), 0.32, theme.Success)
	hashBigO := env.text("hash-complexity", "O(1)", model.Add(arrival, model.Pt(0, -1.8)), 0.48, theme.Geometric)

	// B-tree race.
	second := targetBook(env, "target-book", bookAt)
	index := env.Builder.IndexTree(model.Pt(0, 0), builder.DefaultTreeKeys())
	root, _ := index.GroupRef("nodes", 0)
	left, _ := index.GroupRef("nodes", 1)
	leaf, _ := index.GroupRef("leaf", 0)
	ask1 := env.text("decision", "42 < 50 ?", model.Add(root.Part().Top(), model.Pt(0, 0.3)), 0.2, theme.Text)
	ask2 := env.text("decision", "42 > 25 ?", model.Add(left.Part().Top(), model.Pt(0, 0.3)), 0.2, theme.Text)
	found := model.Add(leaf.Part().Center, model.Pt(-0.2, 0))
	ring := model.NewCircle("ring", found, 0.15, pal.Color(theme.Highlight), 0)
	ring.Stroke, ring.StrokeWidth = pal.Color(theme.Highlight), 3
	highlight := env.Builder.Prop("found", found, ring)
	treeTime := env.text("btree-time", "0.012 seconds", model.Pt(3.5, -2.8), 0.32, theme.Success)
	treeBigO := env.text("btree-complexity", "O(log n)", model.Pt(3.5, -3.4), 0.48, theme.Organic)

	// Verdict.
	hashResult := []*model.Entity{
		env.text("hash-result", "0.003s", model.Pt(-3, 0.3), 0.24, theme.Success),
		env.text("hash-result", "O(1)", model.Pt(-3, -0.3), 0.32, theme.Geometric),
	}
	treeResult := []*model.Entity{
		env.text("btree-result", "0.012s", model.Pt(3, 0.3), 0.24, theme.Success),
		env.text("btree-result", "O(log n)", model.Pt(3, -0.3), 0.32, theme.Organic),
	}
	winner := env.text("winner", "Speed: Hash wins", top, 0.36, theme.Geometric)
	hint := env.text("hint", "But notice...", model.Pt(0, -3.3), 0.2, theme.Text)

	hidden := []*model.Entity{
		hash, tree, mission, target, goText, query, spin, bucket, hashTime, hashBigO,
		second, index, ask1, ask2, highlight, treeTime, treeBigO, winner, hint,
	}
	hidden = append(hidden, countdown...)
	hidden = append(hidden, hashResult...)
	s.Hide(append(hidden, treeResult...)...)

	s.PlayLabeled("enter",
		fadeInFrom(hash, model.Pt(-1, 0), 0.8),
		fadeInFrom(tree, model.Pt(-1, 0), 0.8),
	)
	s.PlayLabeled("mission", fadeIn(mission, 1.2))
	s.PlayLabeled("target", fadeInScaled(target, 1.2, 0.8))

	var count []anim.Node
	for _, n := range countdown {
		count = append(count, fadeInScaled(n, 2, 0.3), fadeOutScaled(n, 0.5, 0.3))
	}
	count = append(count, fadeInScaled(goText, 2, 0.3), fadeOut(goText, 0.2))
	s.PlayLabeled("countdown", anim.Sequence(count...))

	// The hash computes a bucket and jumps straight to it.
	s.PlayLabeled("query", fadeIn(query, 0.5), anim.MoveTo(query.Whole(), hashAt, anim.Over(0.5)))
	s.PlayLabeled("hash-function",
		fadeOut(query, 1),
		anim.Set(spin.Whole(), anim.Opacity, anim.Value{Scalar: 1}),
		anim.RotateBy(spin.Whole(), 4*math.Pi, anim.Over(1)),
		anim.ScaleBy(spin.Whole(), 2, anim.Over(1)),
		fadeOut(spin, 1),
	)
	s.PlayLabeled("bucket", fadeIn(bucket, 0.3))
	s.PlayLabeled("teleport", g.TeleportTo(arrival))

	ghost, _ := hash.GroupRef("ghost", 0)
	s.PlayLabeled("ghost-out", anim.FadeTo(ghost, 0, anim.Over(0.5)), fadeOut(bucket, 0.5))
	s.PlayLabeled("grab", anim.MoveTo(target.Whole(), arrival, anim.Over(0.4)))
	s.PlayLabeled("hash-celebrates", anim.Fit(g.Celebrate(), 0.6))
	s.PlayLabeled("hash-time", fadeIn(hashTime, 1), fadeInScaled(hashBigO, 1.5, 1))

	s.PlayLabeled("reset", fadeOutAll(0.5, hash, target, hashTime, hashBigO)...)
	s.PlayLabeled("second-book", fadeIn(second, 1))

	// The b-tree asks at every node on the way down.
	s.PlayLabeled("index", fadeIn(index, 0.8))
	s.PlayLabeled("decision-root",
		fadeIn(ask1, 0.8),
		anim.Restroke(root, pal.Color(theme.Success), 4, anim.Over(0.8)),
	)
	s.PlayLabeled("decision-left",
		fadeOut(ask1, 0.8),
		fadeIn(ask2, 0.8),
		anim.Restroke(left, pal.Color(theme.Success), 4, anim.Over(0.8)),
	)
	path, err := o.TraversePath(index, []int{builder.SegmentRootLeft, builder.SegmentLeftLeaf})
	if err != nil {
		return nil, err
	}
	step := path.Span() / 2
	s.PlayLabeled("traverse",
		path,
		anim.Sequence(
			anim.MoveTo(tree.Whole(), left.Part().Center, anim.Over(step)),
			anim.MoveTo(tree.Whole(), leaf.Part().Center, anim.Over(step)),
		),
		fadeOut(ask2, path.Span()),
	)
	s.PlayLabeled("found", fadeIn(highlight, 0.8))
	s.PlayLabeled("deliver", anim.MoveTo(second.Whole(), leaf.Part().Center, anim.Over(1)))
	s.PlayLabeled("btree-celebrates", anim.Fit(o.Celebrate(), 0.8))
	s.PlayLabeled("btree-time", fadeIn(treeTime, 1), fadeInScaled(treeBigO, 1.5, 1))

	s.PlayLabeled("clear", fadeOutAll(0.5, mission, tree, second, index, highlight, treeTime, treeBigO)...)

	results := append(append([]*model.Entity{}, hashResult...), treeResult...)
	var show []anim.Node
	for _, e := range results {
		show = append(show, fadeIn(e, 1))
	}
	s.PlayLabeled("results", show...)
	s.PlayLabeled("crown",
		anim.ScaleTo(hashResult[0].Whole(), 1.1, anim.Over(0.8)),
		anim.ScaleTo(hashResult[1].Whole(), 1.1, anim.Over(0.8)),
	)
	s.PlayLabeled("winner", fadeIn(winner, 1))
	s.PlayLabeled("hint", anim.FadeTo(hint.Whole(), 0.6, anim.Over(1)))
	s.Wait(1.5)
	return s, nil
}

// targetBook is the gold record both characters race for, with its glow.
func targetBook(env Env, name string, at model.Point) *model.Entity {
	gold := env.Palette.Color(theme.Highlight)
	cover := model.NewRect("cover", at, 0.5, 0.8, gold, 0.9)
	cover.Stroke, cover.StrokeWidth = env.Palette.Color(theme.Text), 2
	glow := model.NewRect("glow", at, 0.65, 1.04, gold, 0)
	glow.Stroke, glow.StrokeWidth, glow.Opacity = gold, 10, 0.3
	return env.Builder.Prop(name, at, cover, glow)
}

// kaleidoscope is six overlaid hexagons, the hash function at work.
func kaleidoscope(env Env, at model.Point) *model.Entity {
	c := env.Palette.Color(theme.Geometric)
	parts := make([]*model.Part, 6)
	for i := range parts {
		p := model.NewPolygon(fmt.Sprintf("facet-%d", i), at, 6, 0.5, c, 0.3)
		p.Rotation = math.Pi * float64(i) / 6
		p.Stroke, p.StrokeWidth = c, 2
		parts[i] = p
	}
	return env.Builder.Prop("kaleidoscope", at, parts...)
}
