package renderer

import (
	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/lucasb-eyer/go-colorful"
)

// Stage is the reference backend: it owns copies of the scene's entities and
// samples a schedule at any time. Entities passed in are never modified.
type Stage struct {
	initial []*model.Entity
	live    []*model.Entity
	index   map[*model.Entity]int // source entity -> slot
}

// NewStage snapshots entities in their construction state.
func NewStage(entities ...*model.Entity) *Stage {
	s := &Stage{index: make(map[*model.Entity]int, len(entities))}
	for _, e := range entities {
		if e == nil {
			continue
		}
		if _, dup := s.index[e]; dup {
			continue
		}
		s.index[e] = len(s.initial)
		s.initial = append(s.initial, e.Clone())
	}
	s.Reset()
	return s
}

// Reset restores every entity to its construction state.
func (s *Stage) Reset() {
	s.live = make([]*model.Entity, len(s.initial))
	for i, e := range s.initial {
		s.live[i] = e.Clone()
	}
}

// Entities returns the live copies in registration order.
func (s *Stage) Entities() []*model.Entity {
	return s.live
}

// Live returns the live copy of a source entity.
func (s *Stage) Live(src *model.Entity) (*model.Entity, bool) {
	i, ok := s.index[src]
	if !ok {
		return nil, false
	}
	return s.live[i], true
}

// Seek resets the stage and replays every entry that has started by t.
func (s *Stage) Seek(sched *director.Schedule, t float64) {
	s.Reset()
	for _, e := range sched.Entries {
		if e.Start > t {
			break
		}
		s.Apply(e, t)
	}
}

// Apply advances one entry to time t, interpolating from the target's current
// value (or the clip's explicit start value) by the eased progress.
func (s *Stage) Apply(e director.Entry, t float64) {
	c := e.Clip
	ent, ok := s.Live(c.Target.Entity)
	if !ok {
		return
	}
	w := c.Easing.At(e.Progress(t))
	if c.Target.Index == model.Whole {
		applyEntity(ent, c, w)
		return
	}
	if p := ent.Part(c.Target.Index); p != nil {
		applyPart(p, c, w)
	}
}

func applyPart(p *model.Part, c *anim.Clip, w float64) {
	switch c.Property {
	case anim.Position:
		if c.From != nil {
			p.Center = c.From.Point
		}
		to := c.To.Point
		if c.Relative {
			to = model.Add(p.Center, to)
		}
		p.Center = model.Lerp(p.Center, to, w)
	case anim.Scale:
		if c.From != nil {
			p.Scale = c.From.Scalar
		}
		p.Scale = lerp(p.Scale, target(p.Scale, c, true), w)
	case anim.Rotation:
		if c.From != nil {
			p.Rotation = c.From.Scalar
		}
		p.Rotation = lerp(p.Rotation, target(p.Rotation, c, false), w)
	case anim.Opacity:
		if c.From != nil {
			p.Opacity = c.From.Scalar
		}
		p.Opacity = lerp(p.Opacity, c.To.Scalar, w)
	case anim.Color:
		if c.From != nil {
			p.Fill = c.From.Color
			if c.From.Scalar != anim.Keep {
				p.FillOpacity = c.From.Scalar
			}
		}
		p.Fill = blend(p.Fill, c.To.Color, w)
		if c.To.Scalar != anim.Keep {
			p.FillOpacity = lerp(p.FillOpacity, c.To.Scalar, w)
		}
	case anim.Stroke:
		if c.From != nil {
			p.Stroke, p.StrokeWidth = c.From.Color, c.From.Width
		}
		p.Stroke = blend(p.Stroke, c.To.Color, w)
		p.StrokeWidth = lerp(p.StrokeWidth, c.To.Width, w)
	}
}

// applyEntity transforms every part about the entity origin. Paint properties
// apply to each part individually.
func applyEntity(e *model.Entity, c *anim.Clip, w float64) {
	switch c.Property {
	case anim.Position:
		if c.From != nil {
			translate(e, model.Sub(c.From.Point, e.Origin))
		}
		to := c.To.Point
		if c.Relative {
			to = model.Add(e.Origin, to)
		}
		translate(e, model.Sub(model.Lerp(e.Origin, to, w), e.Origin))
	case anim.Scale:
		if c.From != nil {
			rescale(e, c.From.Scalar)
		}
		rescale(e, lerp(e.Scale, target(e.Scale, c, true), w))
	case anim.Rotation:
		if c.From != nil {
			rotate(e, c.From.Scalar)
		}
		rotate(e, lerp(e.Rotation, target(e.Rotation, c, false), w))
	case anim.Opacity:
		if c.From != nil {
			e.Opacity = c.From.Scalar
		}
		e.Opacity = lerp(e.Opacity, c.To.Scalar, w)
	case anim.Color, anim.Stroke:
		for _, p := range e.Parts {
			applyPart(p, c, w)
		}
	}
}

func translate(e *model.Entity, d model.Point) {
	e.Origin = model.Add(e.Origin, d)
	for _, p := range e.Parts {
		p.Center = model.Add(p.Center, d)
	}
}

// rescale sets the entity scale. A collapsed entity (scale 0) cannot be
// regrown through entity-level clips; its parts keep their own scale.
func rescale(e *model.Entity, s float64) {
	if e.Scale == 0 {
		e.Scale = s
		return
	}
	k := s / e.Scale
	for _, p := range e.Parts {
		p.Center = model.Add(e.Origin, model.Mul(model.Sub(p.Center, e.Origin), k))
		p.Scale *= k
	}
	e.Scale = s
}

func rotate(e *model.Entity, a float64) {
	d := a - e.Rotation
	for _, p := range e.Parts {
		p.Center = model.Rotate(p.Center, e.Origin, d)
		p.Rotation += d
	}
	e.Rotation = a
}

// target resolves a scalar clip's end value from its start value.
func target(start float64, c *anim.Clip, multiplicative bool) float64 {
	if !c.Relative {
		return c.To.Scalar
	}
	if multiplicative {
		return start * c.To.Scalar
	}
	return start + c.To.Scalar
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func blend(a, b colorful.Color, t float64) colorful.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a.BlendLab(b, t).Clamped()
}
