package builder

import (
	"fmt"

	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

const shelfWidth = 10.0

// Shelf layout: base (1 rect), books (PartCount rects, the pool), glow (one
// hidden gold outline per book, same index as its book).
func (b *Builder) shelf(p Params) *model.Entity {
	e := b.entity(p.Name, model.VariantShelf, p.At)

	base := model.NewRect("base", p.At, shelfWidth, 0.1, b.palette.Color(p.PaletteRole), 0.3)
	e.AddGroup("base", base)

	choices := []theme.Role{theme.Organic, theme.Geometric, theme.Special}
	n := float64(p.PartCount)
	slot := shelfWidth / n
	top := base.Top()[1]

	books := make([]*model.Part, p.PartCount)
	glows := make([]*model.Part, p.PartCount)
	for i := range books {
		h := b.uniform(1.5, 2.5)
		fill := b.palette.Color(choices[b.rng.IntN(len(choices))])
		c := model.Pt(p.At[0]+(float64(i)-n/2)*slot, top+h/2)

		book := model.NewRect(fmt.Sprintf("book-%d", i), c, slot*0.8, h, fill, p.FillOpacity)
		book.Stroke = b.palette.Color(theme.Text)
		book.StrokeWidth = p.StrokeWidth
		books[i] = book

		glow := model.NewRect(fmt.Sprintf("glow-%d", i), c, slot*0.8*1.3, h*1.3, b.palette.Color(theme.Highlight), 0)
		glow.StrokeWidth = 10
		glow.Opacity = 0
		glows[i] = glow
	}
	e.AddGroup("books", books...)
	e.AddGroup("glow", glows...)

	e.SetPool("books")
	return e
}

// Swarm layout: particles (PartCount dots at At, optionally jittered).
func (b *Builder) swarm(p Params) *model.Entity {
	e := b.entity(p.Name, model.VariantSwarm, p.At)
	c := b.palette.Color(p.PaletteRole)
	dots := make([]*model.Part, p.PartCount)
	for i := range dots {
		pos := model.Add(p.At, b.jitter(p.JitterRangeX, p.JitterRangeY))
		d := model.NewDot(fmt.Sprintf("particle-%d", i), pos, 0.02, c)
		d.FillOpacity = p.FillOpacity
		dots[i] = d
	}
	e.AddGroup("particles", dots...)
	e.SetPool("particles")
	return e
}

// TreeKeys labels the index tree drawn in the lookup challenge.
type TreeKeys struct {
	Root, Left, Right string
	Leaf              string
}

func DefaultTreeKeys() TreeKeys {
	return TreeKeys{Root: "50", Left: "25", Right: "75", Leaf: "38, 39, 42, 45"}
}

// Index tree connector indices, usable as traversal segments.
const (
	SegmentRootLeft = iota
	SegmentRootRight
	SegmentLeftLeaf
)

// IndexTree builds the two-level decision tree rooted at at. Layout: nodes
// (root, left, right), connectors (root-left, root-right, left-leaf, the
// pool), leaf (1 rect), labels (4 texts in node order then leaf).
func (b *Builder) IndexTree(at model.Point, keys TreeKeys) *model.Entity {
	e := b.entity("index-tree", model.VariantIndexTree, at)
	fill := b.palette.Color(theme.Organic)
	line := b.palette.Color(theme.OrganicDeep)
	ink := b.palette.Color(theme.Ink)

	root := model.NewCircle("root", at, 0.4, fill, 0.6)
	left := model.NewCircle("left", model.Add(at, model.Pt(-2, -1.5)), 0.4, fill, 0.6)
	right := model.NewCircle("right", model.Add(at, model.Pt(2, -1.5)), 0.4, fill, 0.6)
	e.AddGroup("nodes", root, left, right)

	leaf := model.NewRect("leaf", model.Add(left.Bottom(), model.Pt(0, -1.2)), 1.5, 0.4, fill, 0.6)

	e.AddGroup("connectors",
		model.NewLine("root-left", root.Bottom(), left.Top(), line, 2),
		model.NewLine("root-right", root.Bottom(), right.Top(), line, 2),
		model.NewLine("left-leaf", left.Bottom(), leaf.Top(), line, 2),
	)
	e.AddGroup("leaf", leaf)
	e.AddGroup("labels",
		model.NewText("root-key", keys.Root, root.Center, 0.25, ink),
		model.NewText("left-key", keys.Left, left.Center, 0.25, ink),
		model.NewText("right-key", keys.Right, right.Center, 0.25, ink),
		model.NewText("leaf-keys", keys.Leaf, leaf.Center, 0.2, ink),
	)

	e.SetPool("connectors")
	e.Seal()
	return e
}
