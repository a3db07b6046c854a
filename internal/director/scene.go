package director

import (
	"errors"
	"fmt"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// ErrTimingWindow reports a scene whose resolved length misses its window.
var ErrTimingWindow = errors.New("outside timing window")

// Window bounds a scene's total duration in seconds. The zero Window accepts
// anything.
type Window struct {
	Min float64 `yaml:"min" toml:"min"`
	Max float64 `yaml:"max" toml:"max"`
}

func (w Window) IsZero() bool {
	return w.Min == 0 && w.Max == 0
}

// Check returns ErrTimingWindow when total falls outside [Min, Max].
func (w Window) Check(total float64) error {
	if w.IsZero() {
		return nil
	}
	if total < w.Min || total > w.Max {
		return fmt.Errorf("%.2fs not in [%.1f, %.1f]: %w", total, w.Min, w.Max, ErrTimingWindow)
	}
	return nil
}

// Beat is one narrative step: a group that runs to completion, then Hold
// seconds of stillness.
type Beat struct {
	Label string
	Node  anim.Node
	Hold  float64
}

// Scene is an ordered list of beats plus the entities they animate.
type Scene struct {
	Name     string
	Palette  *theme.Palette
	Window   Window
	Entities []*model.Entity
	Beats    []Beat
}

func NewScene(name string, pal *theme.Palette) *Scene {
	if pal == nil {
		pal = theme.Default()
	}
	return &Scene{Name: name, Palette: pal}
}

// Add registers entities for rendering. Adding twice is a no-op.
func (s *Scene) Add(es ...*model.Entity) *Scene {
	for _, e := range es {
		if e == nil || s.has(e) {
			continue
		}
		s.Entities = append(s.Entities, e)
	}
	return s
}

func (s *Scene) has(e *model.Entity) bool {
	for _, x := range s.Entities {
		if x == e {
			return true
		}
	}
	return false
}

// Hide registers entities and appends an instantaneous beat that makes them
// invisible, for entities that enter later with a fade.
func (s *Scene) Hide(es ...*model.Entity) *Scene {
	s.Add(es...)
	nodes := make([]anim.Node, 0, len(es))
	for _, e := range es {
		nodes = append(nodes, anim.Set(e.Whole(), anim.Opacity, anim.Value{Scalar: 0}))
	}
	return s.PlayLabeled("hide", nodes...)
}

// Play appends a beat running nodes in parallel.
func (s *Scene) Play(nodes ...anim.Node) *Scene {
	return s.PlayLabeled("", nodes...)
}

func (s *Scene) PlayLabeled(label string, nodes ...anim.Node) *Scene {
	var n anim.Node
	if len(nodes) == 1 {
		n = nodes[0]
	} else {
		n = anim.Parallel(nodes...)
	}
	if label == "" {
		if g, ok := n.(*anim.Group); ok {
			label = g.Label
		}
	}
	if label == "" {
		label = fmt.Sprintf("beat-%d", len(s.Beats))
	}
	s.Beats = append(s.Beats, Beat{Label: label, Node: n})
	return s
}

// Wait holds the last beat for d more seconds.
func (s *Scene) Wait(d float64) *Scene {
	if len(s.Beats) == 0 {
		s.Beats = append(s.Beats, Beat{Label: "wait", Node: anim.Parallel()})
	}
	s.Beats[len(s.Beats)-1].Hold += d
	return s
}

// Duration sums beat spans and holds without validating anything.
func (s *Scene) Duration() float64 {
	total := 0.0
	for _, b := range s.Beats {
		total += b.Node.Span() + b.Hold
	}
	return total
}
