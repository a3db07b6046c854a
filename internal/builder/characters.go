package builder

import (
	"fmt"
	"math"

	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// Geometric entity layout:
//
//	hexagon    1 six-sided polygon, r=1.5
//	inner      6 triangles, r=0.3
//	particles  PartCount dots on the hexagon perimeter (the pool)
//	ghost      1 hexagon duplicate, opacity 0 (teleport trail)
//	flash      1 circle r=2, opacity 0 (teleport marker)
const (
	hexRadius   = 1.5
	flashRadius = 2.0
)

func (b *Builder) geometric(p Params) *model.Entity {
	c := b.palette.Color(p.PaletteRole)
	e := b.entity(p.Name, model.VariantGeometric, p.At)

	hex := model.NewPolygon("hexagon", p.At, 6, hexRadius, c, p.FillOpacity)
	hex.StrokeWidth = p.StrokeWidth
	e.AddGroup("hexagon", hex)

	inner := make([]*model.Part, 6)
	for i := range inner {
		t := model.NewPolygon(fmt.Sprintf("inner-%d", i),
			model.Add(p.At, model.Pt(0, 0.5*math.Cos(float64(i)))), 3, 0.3, c, 0.7)
		t.Rotation = math.Pi * float64(i) / 3
		inner[i] = t
	}
	e.AddGroup("inner", inner...)

	outline := hex.Vertices(0)
	particles := make([]*model.Part, p.PartCount)
	for i := range particles {
		pos := perimeterPoint(outline, float64(i)/float64(p.PartCount))
		pos = model.Add(pos, b.jitter(p.JitterRangeX, p.JitterRangeY))
		particles[i] = model.NewDot(fmt.Sprintf("particle-%d", i), pos, 0.03, c)
	}
	e.AddGroup("particles", particles...)

	ghost := hex.Clone()
	ghost.Name = "ghost"
	ghost.Opacity = 0
	e.AddGroup("ghost", ghost)

	flash := model.NewCircle("flash", p.At, flashRadius, c, 0.5)
	flash.Opacity = 0
	e.AddGroup("flash", flash)

	e.SetPool("particles")
	return e
}

// perimeterPoint walks a closed outline and returns the point at proportion q
// of its total length.
func perimeterPoint(outline []model.Point, q float64) model.Point {
	n := len(outline)
	if n == 0 {
		return model.Point{}
	}
	lengths := make([]float64, n)
	var total float64
	for i := range outline {
		d := model.Sub(outline[(i+1)%n], outline[i])
		lengths[i] = math.Hypot(d[0], d[1])
		total += lengths[i]
	}
	target := q * total
	for i, l := range lengths {
		if target <= l || i == n-1 {
			t := 0.0
			if l > 0 {
				t = math.Min(target/l, 1)
			}
			return model.Lerp(outline[i], outline[(i+1)%n], t)
		}
		target -= l
	}
	return outline[0]
}

// Organic entity layout:
//
//	trunk       1 rect 0.3 x 1.2
//	branches    BranchCount (connector, node) pairs, in that order
//	connectors  view: the lines of branches
//	nodes       view: the circles of branches
//	leaves      PartCount dots at y=+2 (the pool)
//	seed        1 dot below the trunk, opacity 0
func (b *Builder) organic(p Params) *model.Entity {
	accent := b.palette.Color(p.PaletteRole)
	deep := b.palette.Color(theme.OrganicDeep)
	e := b.entity(p.Name, model.VariantOrganic, p.At)

	trunk := model.NewRect("trunk", p.At, 0.3, 1.2, deep, 0.8)
	e.AddGroup("trunk", trunk)

	var connectors, nodes []int
	half := float64(p.BranchCount-1) / 2
	for i := 0; i < p.BranchCount; i++ {
		node := model.NewCircle(fmt.Sprintf("node-%d", i),
			model.Add(p.At, model.Pt((float64(i)-half)*1.2, 0.8)), 0.3, accent, p.FillOpacity)
		node.Stroke = deep
		node.StrokeWidth = p.StrokeWidth
		line := model.NewLine(fmt.Sprintf("connector-%d", i), trunk.Top(), node.Bottom(), accent, p.StrokeWidth)
		idx := e.AddGroup("branches", line, node)
		connectors = append(connectors, idx[0])
		nodes = append(nodes, idx[1])
	}
	e.Alias("connectors", connectors)
	e.Alias("nodes", nodes)

	gradient := b.palette.Gradient(p.PaletteRole, theme.OrganicDeep, p.PartCount)
	leaves := make([]*model.Part, p.PartCount)
	for i := range leaves {
		pos := model.Add(p.At, model.Pt(0, 2))
		pos = model.Add(pos, b.jitter(p.JitterRangeX, p.JitterRangeY))
		leaves[i] = model.NewDot(fmt.Sprintf("leaf-%d", i), pos, 0.05, gradient[i])
	}
	e.AddGroup("leaves", leaves...)

	seed := model.NewDot("seed", model.Add(p.At, model.Pt(0, -2)), 0.1, accent)
	seed.Opacity = 0
	e.AddGroup("seed", seed)

	e.SetPool("leaves")
	return e
}
