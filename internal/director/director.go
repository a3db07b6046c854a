package director

import (
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/model"
)

// Compositor resolves group trees into absolute schedules. It validates the
// whole input first and either returns a complete schedule or nothing.
type Compositor struct {
	// Epsilon absorbs float noise when deciding whether two intervals overlap.
	Epsilon float64
}

// NewCompositor creates a Compositor with default settings
func NewCompositor() *Compositor {
	return &Compositor{Epsilon: 1e-9}
}

// Resolve flattens a single tree starting at time zero.
func (c *Compositor) Resolve(n anim.Node) (*Schedule, error) {
	entries, err := c.beat(n, 0, "", 0)
	if err != nil {
		return nil, err
	}
	return &Schedule{
		Entries: entries,
		Beats:   []BeatSpan{{Label: label(n), End: n.Span()}},
		Total:   n.Span(),
	}, nil
}

// Compose resolves a scene's beats one after another: beat k starts when
// beat k-1 and its hold have finished.
func (c *Compositor) Compose(s *Scene) (*Schedule, error) {
	return c.ComposeProgram(s)
}

// ComposeProgram composes scenes back to back into one schedule.
func (c *Compositor) ComposeProgram(scenes ...*Scene) (*Schedule, error) {
	out := &Schedule{}
	t := 0.0
	for _, s := range scenes {
		if s == nil {
			return nil, fmt.Errorf("nil scene: %w", model.ErrInvalidParameter)
		}
		if !(s.Window.Min <= s.Window.Max) {
			return nil, fmt.Errorf("scene %s: window %+v: %w", s.Name, s.Window, model.ErrInvalidParameter)
		}
		start := t
		for i, b := range s.Beats {
			if b.Node == nil {
				return nil, fmt.Errorf("scene %s beat %d: empty beat: %w", s.Name, i, model.ErrInvalidParameter)
			}
			if !finite(b.Hold) || b.Hold < 0 {
				return nil, fmt.Errorf("scene %s beat %d: hold %g: %w", s.Name, i, b.Hold, model.ErrInvalidParameter)
			}
			entries, err := c.beat(b.Node, t, s.Name, i)
			if err != nil {
				return nil, fmt.Errorf("scene %s beat %d (%s): %w", s.Name, i, b.Label, err)
			}
			span := b.Node.Span()
			out.Entries = append(out.Entries, entries...)
			out.Beats = append(out.Beats, BeatSpan{
				Scene: s.Name, Index: i, Label: b.Label,
				Start: t, End: t + span, Hold: b.Hold,
			})
			t += span + b.Hold
		}
		out.Scenes = append(out.Scenes, SceneSpan{Name: s.Name, Start: start, End: t, Window: s.Window})
	}
	out.Total = t
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Start < out.Entries[j].Start
	})
	return out, nil
}

// beat validates, flattens and conflict-checks one tree placed at start.
func (c *Compositor) beat(n anim.Node, start float64, scene string, index int) ([]Entry, error) {
	if err := validate(n, label(n)); err != nil {
		return nil, err
	}
	var entries []Entry
	flatten(n, start, label(n), &entries)
	for i := range entries {
		entries[i].Scene = scene
		entries[i].Beat = index
	}
	if err := c.checkOverlaps(entries); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})
	return entries, nil
}

func flatten(n anim.Node, at float64, path string, out *[]Entry) {
	switch v := n.(type) {
	case *anim.Clip:
		s := at + v.Delay
		*out = append(*out, Entry{Clip: v, Start: s, End: s + v.Duration, Path: path})
	case *anim.Group:
		base := at + v.Delay
		for i, off := range v.Offsets() {
			child := v.Children[i]
			flatten(child, base+off, fmt.Sprintf("%s/%d:%s", path, i, label(child)), out)
		}
	}
}

// label names a node for error paths. Nil nodes are reported by validate.
func label(n anim.Node) string {
	switch v := n.(type) {
	case *anim.Clip:
		if v == nil {
			return "nil"
		}
		if v.Label != "" {
			return v.Label
		}
		return v.Property.String()
	case *anim.Group:
		if v == nil {
			return "nil"
		}
		if v.Label != "" {
			return v.Label
		}
		return v.Kind.String()
	}
	return "?"
}

type slot struct {
	key  model.TargetKey
	prop anim.Property
}

// checkOverlaps rejects two clips writing the same target property during
// overlapping intervals. Touching intervals are fine, as is an instantaneous
// assignment at the start of an interval; two assignments at the same
// instant conflict.
func (c *Compositor) checkOverlaps(entries []Entry) error {
	buckets := make(map[slot][]int)
	var order []slot
	for i, e := range entries {
		k := slot{e.Clip.Target.Key(), e.Clip.Property}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], i)
	}
	for _, k := range order {
		idx := buckets[k]
		for x := 0; x < len(idx); x++ {
			for y := x + 1; y < len(idx); y++ {
				a, b := entries[idx[x]], entries[idx[y]]
				if c.overlap(a, b) {
					return fmt.Errorf("%s.%s written by %s [%.3f, %.3f] and %s [%.3f, %.3f]: %w",
						a.Clip.Target, a.Clip.Property, a.Path, a.Start, a.End, b.Path, b.Start, b.End,
						model.ErrOverlappingMutation)
				}
			}
		}
	}
	return nil
}

func (c *Compositor) overlap(a, b Entry) bool {
	eps := c.Epsilon
	if a.End-a.Start <= eps && b.End-b.Start <= eps {
		return math.Abs(a.Start-b.Start) <= eps
	}
	return a.Start < b.End-eps && b.Start < a.End-eps
}

// validate walks the tree and rejects anything the renderer could not apply.
func validate(n anim.Node, path string) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%s: %s: %w", path, fmt.Sprintf(format, args...), model.ErrInvalidParameter)
	}
	switch v := n.(type) {
	case *anim.Clip:
		if v == nil {
			return bad("nil clip")
		}
		if v.Target.Entity == nil {
			return bad("clip has no target")
		}
		if !v.Target.Valid() {
			return bad("%s has no part %d", v.Target.Entity.Name, v.Target.Index)
		}
		if !finite(v.Duration) || v.Duration < 0 {
			return bad("duration %g", v.Duration)
		}
		if !finite(v.Delay) || v.Delay < 0 {
			return bad("delay %g", v.Delay)
		}
		if v.Property < anim.Position || v.Property > anim.Stroke {
			return bad("unknown property %d", int(v.Property))
		}
		if v.Relative && !v.Property.Relative() {
			return bad("%s has no relative mode", v.Property)
		}
		if err := checkValue(v.Property, v.To, v.Relative); err != nil {
			return bad("target %v", err)
		}
		if v.From != nil {
			if err := checkValue(v.Property, *v.From, false); err != nil {
				return bad("start %v", err)
			}
		}
	case *anim.Group:
		if v == nil {
			return bad("nil group")
		}
		if !finite(v.Delay) || v.Delay < 0 {
			return bad("delay %g", v.Delay)
		}
		if v.Kind == anim.KindStaggered && !(v.LagRatio >= 0 && v.LagRatio <= 1) {
			return bad("lag ratio %g outside [0,1]", v.LagRatio)
		}
		for i, child := range v.Children {
			if child == nil {
				return bad("nil child %d", i)
			}
			if err := validate(child, fmt.Sprintf("%s/%d:%s", path, i, label(child))); err != nil {
				return err
			}
		}
	default:
		return bad("unknown node %T", n)
	}
	return nil
}

func checkValue(p anim.Property, v anim.Value, relative bool) error {
	switch p {
	case anim.Position:
		if !finite(v.Point[0]) || !finite(v.Point[1]) {
			return fmt.Errorf("position %v", v.Point)
		}
	case anim.Scale:
		if !finite(v.Scalar) || (!relative && v.Scalar < 0) {
			return fmt.Errorf("scale %g", v.Scalar)
		}
	case anim.Opacity:
		if !(v.Scalar >= 0 && v.Scalar <= 1) {
			return fmt.Errorf("opacity %g outside [0,1]", v.Scalar)
		}
	case anim.Color:
		if v.Scalar != anim.Keep && !(v.Scalar >= 0 && v.Scalar <= 1) {
			return fmt.Errorf("fill opacity %g outside [0,1]", v.Scalar)
		}
	case anim.Rotation:
		if !finite(v.Scalar) {
			return fmt.Errorf("rotation %g", v.Scalar)
		}
	case anim.Stroke:
		if !finite(v.Width) || v.Width < 0 {
			return fmt.Errorf("stroke width %g", v.Width)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
