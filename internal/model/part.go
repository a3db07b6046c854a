package model

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Shape is the closed set of primitives a Part can be.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapePolygon
	ShapeRectangle
	ShapeLine
	ShapeDot
	ShapeText
)

var shapeNames = [...]string{"circle", "polygon", "rectangle", "line", "dot", "text"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// Part is one primitive shape with animatable attributes.
//
// Geometry is local: Width/Height/Radius and the line offsets From/To are
// unscaled and unrotated, Center places the shape in the scene, and Scale and
// Rotation are applied around Center when the shape is drawn.
type Part struct {
	Name  string
	Shape Shape

	Center Point
	Width  float64 // rectangle
	Height float64 // rectangle, text size
	Radius float64 // circle, dot, polygon circumradius
	Sides  int     // polygon
	From   Point   // line start, relative to Center
	To     Point   // line end, relative to Center
	Text   string

	Fill        colorful.Color
	FillOpacity float64
	Stroke      colorful.Color
	StrokeWidth float64

	Scale    float64
	Rotation float64 // radians
	Opacity  float64 // overall alpha multiplier
}

// NewCircle returns a filled circle centered at c.
func NewCircle(name string, c Point, radius float64, fill colorful.Color, fillOpacity float64) *Part {
	return &Part{
		Name: name, Shape: ShapeCircle, Center: c, Radius: radius,
		Fill: fill, FillOpacity: fillOpacity, Stroke: fill,
		Scale: 1, Opacity: 1,
	}
}

// NewDot returns a small fully opaque dot, the particle primitive.
func NewDot(name string, c Point, radius float64, fill colorful.Color) *Part {
	p := NewCircle(name, c, radius, fill, 1)
	p.Shape = ShapeDot
	return p
}

// NewPolygon returns a regular polygon with the first vertex at angle 0.
func NewPolygon(name string, c Point, sides int, radius float64, fill colorful.Color, fillOpacity float64) *Part {
	return &Part{
		Name: name, Shape: ShapePolygon, Center: c, Sides: sides, Radius: radius,
		Fill: fill, FillOpacity: fillOpacity, Stroke: fill,
		Scale: 1, Opacity: 1,
	}
}

// NewRect returns a w x h rectangle centered at c.
func NewRect(name string, c Point, w, h float64, fill colorful.Color, fillOpacity float64) *Part {
	return &Part{
		Name: name, Shape: ShapeRectangle, Center: c, Width: w, Height: h,
		Fill: fill, FillOpacity: fillOpacity, Stroke: fill,
		Scale: 1, Opacity: 1,
	}
}

// NewLine returns a segment between two scene points. Center is the midpoint.
func NewLine(name string, a, b Point, stroke colorful.Color, width float64) *Part {
	mid := Lerp(a, b, 0.5)
	return &Part{
		Name: name, Shape: ShapeLine, Center: mid,
		From: Sub(a, mid), To: Sub(b, mid),
		Fill: stroke, Stroke: stroke, StrokeWidth: width,
		Scale: 1, Opacity: 1,
	}
}

// NewText returns a text label; size is the glyph height in scene units.
func NewText(name, text string, c Point, size float64, fill colorful.Color) *Part {
	return &Part{
		Name: name, Shape: ShapeText, Center: c, Text: text, Height: size,
		Fill: fill, FillOpacity: 1, Stroke: fill,
		Scale: 1, Opacity: 1,
	}
}

// Vertices returns the outline of the part in scene coordinates. Circles and
// dots are approximated with segments; text has no outline.
func (p *Part) Vertices(segments int) []Point {
	switch p.Shape {
	case ShapeCircle, ShapeDot:
		if segments < 3 {
			segments = 3
		}
		return p.ring(segments, p.Radius)
	case ShapePolygon:
		return p.ring(p.Sides, p.Radius)
	case ShapeRectangle:
		hw, hh := p.Width/2, p.Height/2
		return p.transform([]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}})
	case ShapeLine:
		return p.transform([]Point{p.From, p.To})
	}
	return nil
}

// Endpoints returns the world-space ends of a line part.
func (p *Part) Endpoints() (Point, Point) {
	v := p.transform([]Point{p.From, p.To})
	return v[0], v[1]
}

// Top returns the highest point of the part's untransformed bounding box.
func (p *Part) Top() Point {
	return Add(p.Center, Point{0, p.halfHeight() * p.Scale})
}

// Bottom returns the lowest point of the part's untransformed bounding box.
func (p *Part) Bottom() Point {
	return Sub(p.Center, Point{0, p.halfHeight() * p.Scale})
}

func (p *Part) halfHeight() float64 {
	switch p.Shape {
	case ShapeRectangle, ShapeText:
		return p.Height / 2
	case ShapeLine:
		return math.Max(math.Abs(p.From[1]), math.Abs(p.To[1]))
	}
	return p.Radius
}

func (p *Part) ring(n int, radius float64) []Point {
	if n < 3 {
		return nil
	}
	local := make([]Point, n)
	for i := range local {
		a := 2 * math.Pi * float64(i) / float64(n)
		local[i] = Point{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return p.transform(local)
}

func (p *Part) transform(local []Point) []Point {
	out := make([]Point, len(local))
	for i, v := range local {
		v = Rotate(Mul(v, p.Scale), Point{}, p.Rotation)
		out[i] = Add(p.Center, v)
	}
	return out
}

// Clone returns an independent copy of the part.
func (p *Part) Clone() *Part {
	c := *p
	return &c
}
