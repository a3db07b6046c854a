package director

import (
	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/model"
)

// Entry is one clip placed on the absolute timeline.
type Entry struct {
	Clip  *anim.Clip
	Start float64
	End   float64
	Scene string
	Beat  int    // beat index within the scene
	Path  string // position of the clip in its beat's tree
}

// Progress returns the clip's linear progress at time t in [0,1].
func (e Entry) Progress(t float64) float64 {
	if t < e.Start {
		return 0
	}
	if e.End <= e.Start || t >= e.End {
		return 1
	}
	return (t - e.Start) / (e.End - e.Start)
}

// BeatSpan is a beat placed on the timeline. End excludes the hold.
type BeatSpan struct {
	Scene string
	Index int
	Label string
	Start float64
	End   float64
	Hold  float64
}

// SceneSpan is a scene placed on the timeline.
type SceneSpan struct {
	Name   string
	Start  float64
	End    float64
	Window Window
}

func (s SceneSpan) Duration() float64 {
	return s.End - s.Start
}

// Schedule is the flattened, start-ordered result of composition.
type Schedule struct {
	Entries []Entry
	Beats   []BeatSpan
	Scenes  []SceneSpan
	Total   float64
}

// Active returns entries running at t, zero-length entries included at their instant.
func (s *Schedule) Active(t float64) []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if e.Start > t {
			break
		}
		if t <= e.End {
			out = append(out, e)
		}
	}
	return out
}

// Entities returns every entity the schedule touches, in first-use order.
func (s *Schedule) Entities() []*model.Entity {
	seen := make(map[*model.Entity]bool)
	var out []*model.Entity
	for _, e := range s.Entries {
		ent := e.Clip.Target.Entity
		if !seen[ent] {
			seen[ent] = true
			out = append(out, ent)
		}
	}
	return out
}

// Scene returns the placed span of a scene by name.
func (s *Schedule) Scene(name string) (SceneSpan, bool) {
	for _, sc := range s.Scenes {
		if sc.Name == name {
			return sc, true
		}
	}
	return SceneSpan{}, false
}
