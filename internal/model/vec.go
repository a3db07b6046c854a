package model

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Point is a 2-D coordinate in scene units (the visible frame is roughly 14.2 x 8).
type Point = f64.Vec2

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{x, y}
}

func Add(a, b Point) Point {
	return Point{a[0] + b[0], a[1] + b[1]}
}

func Sub(a, b Point) Point {
	return Point{a[0] - b[0], a[1] - b[1]}
}

func Mul(a Point, k float64) Point {
	return Point{a[0] * k, a[1] * k}
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b Point, t float64) Point {
	return Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}

// Rotate turns p around pivot by angle radians (counter-clockwise).
func Rotate(p, pivot Point, angle float64) Point {
	s, c := math.Sincos(angle)
	d := Sub(p, pivot)
	return Point{pivot[0] + d[0]*c - d[1]*s, pivot[1] + d[0]*s + d[1]*c}
}

// Rect is an axis-aligned region, used for particle spread bounds.
type Rect struct {
	Min, Max Point
}

// Bounds builds a Rect from x and y ranges.
func Bounds(x0, x1, y0, y1 float64) Rect {
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

func (r Rect) Contains(p Point) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// Valid reports whether Min is not past Max on either axis.
func (r Rect) Valid() bool {
	return r.Min[0] <= r.Max[0] && r.Min[1] <= r.Max[1]
}

func (r Rect) Translate(d Point) Rect {
	return Rect{Min: Add(r.Min, d), Max: Add(r.Max, d)}
}
