// Package anim describes animation without executing it. Clips and groups are
// plain values; a compositor schedules them and a renderer applies them.
package anim

import (
	"fmt"

	"github.com/ivlev/indexparadox/internal/model"
	"github.com/lucasb-eyer/go-colorful"
)

// Property is the attribute a clip writes.
type Property int

const (
	Position Property = iota
	Scale
	Opacity
	Color
	Rotation
	Stroke
)

var propertyNames = [...]string{"position", "scale", "opacity", "color", "rotation", "stroke"}

func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return fmt.Sprintf("property(%d)", int(p))
	}
	return propertyNames[p]
}

// ParseProperty is the inverse of String.
func ParseProperty(s string) (Property, error) {
	for i, n := range propertyNames {
		if n == s {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("unknown property %q", s)
}

// Relative reports whether the property supports delta mode: position adds,
// rotation adds radians, scale multiplies.
func (p Property) Relative() bool {
	return p == Position || p == Scale || p == Rotation
}

// Keep in Value.Scalar of a color clip leaves fill opacity untouched.
const Keep = -1.0

// Value carries a target for any property; only the fields the property uses
// are read.
type Value struct {
	Point  model.Point    // position
	Scalar float64        // scale, opacity, rotation; fill opacity for color
	Color  colorful.Color // color, stroke
	Width  float64        // stroke width
}

// Clip is one timed attribute change.
type Clip struct {
	Target   model.PartRef
	Property Property
	To       Value
	From     *Value // assigned at clip start when set
	Relative bool

	Duration float64
	Delay    float64 // relative to the clip's slot in its parent group
	Easing   Easing
	Label    string
}

func (c *Clip) Span() float64 {
	return c.Delay + c.Duration
}

func (c *Clip) isNode() {}

func (c *Clip) String() string {
	mode := "to"
	if c.Relative {
		mode = "by"
	}
	return fmt.Sprintf("%s.%s %s over %.2fs", c.Target, c.Property, mode, c.Duration)
}

// Option adjusts a clip at construction.
type Option func(*Clip)

// Over sets the duration.
func Over(d float64) Option { return func(c *Clip) { c.Duration = d } }

// After sets the start delay.
func After(d float64) Option { return func(c *Clip) { c.Delay = d } }

// With sets the easing curve.
func With(e Easing) Option { return func(c *Clip) { c.Easing = e } }

// From sets an explicit start value.
func From(v Value) Option { return func(c *Clip) { c.From = &v } }

// Named labels the clip in exports.
func Named(label string) Option { return func(c *Clip) { c.Label = label } }

// DefaultDuration applies when no Over option is given.
const DefaultDuration = 1.0

func newClip(ref model.PartRef, p Property, to Value, rel bool, opts []Option) *Clip {
	c := &Clip{Target: ref, Property: p, To: to, Relative: rel, Duration: DefaultDuration, Easing: Smooth}
	for _, o := range opts {
		o(c)
	}
	return c
}

func MoveTo(ref model.PartRef, p model.Point, opts ...Option) *Clip {
	return newClip(ref, Position, Value{Point: p}, false, opts)
}

func Shift(ref model.PartRef, d model.Point, opts ...Option) *Clip {
	return newClip(ref, Position, Value{Point: d}, true, opts)
}

func ScaleTo(ref model.PartRef, s float64, opts ...Option) *Clip {
	return newClip(ref, Scale, Value{Scalar: s}, false, opts)
}

func ScaleBy(ref model.PartRef, k float64, opts ...Option) *Clip {
	return newClip(ref, Scale, Value{Scalar: k}, true, opts)
}

func FadeTo(ref model.PartRef, o float64, opts ...Option) *Clip {
	return newClip(ref, Opacity, Value{Scalar: o}, false, opts)
}

func RotateTo(ref model.PartRef, a float64, opts ...Option) *Clip {
	return newClip(ref, Rotation, Value{Scalar: a}, false, opts)
}

func RotateBy(ref model.PartRef, a float64, opts ...Option) *Clip {
	return newClip(ref, Rotation, Value{Scalar: a}, true, opts)
}

// Recolor changes fill color and keeps fill opacity.
func Recolor(ref model.PartRef, c colorful.Color, opts ...Option) *Clip {
	return newClip(ref, Color, Value{Color: c, Scalar: Keep}, false, opts)
}

// Refill changes fill color and fill opacity together.
func Refill(ref model.PartRef, c colorful.Color, fillOpacity float64, opts ...Option) *Clip {
	return newClip(ref, Color, Value{Color: c, Scalar: fillOpacity}, false, opts)
}

func Restroke(ref model.PartRef, c colorful.Color, width float64, opts ...Option) *Clip {
	return newClip(ref, Stroke, Value{Color: c, Width: width}, false, opts)
}

// Set is an instantaneous assignment: a zero-duration clip.
func Set(ref model.PartRef, p Property, v Value, opts ...Option) *Clip {
	c := newClip(ref, p, v, false, opts)
	c.Duration = 0
	c.Easing = Linear
	return c
}
