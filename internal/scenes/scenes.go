// Package scenes holds the narrative scripts. Each script builds its entities
// through the builder, asks the behavior library for recipes and lays them
// out as beats. Nothing here renders.
package scenes

import (
	"fmt"
	"math/rand/v2"

	"github.com/ivlev/indexparadox/internal/builder"
	"github.com/ivlev/indexparadox/internal/director"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// Env is everything a script may depend on.
type Env struct {
	Palette *theme.Palette
	Builder *builder.Builder
	Rand    *rand.Rand
	// Params overrides builder defaults per variant. Placement is always
	// chosen by the script.
	Params map[model.Variant]builder.Params
}

// NewEnv wires a palette and seed into a fresh builder and random stream.
func NewEnv(pal *theme.Palette, seed uint64, params map[model.Variant]builder.Params) Env {
	if pal == nil {
		pal = theme.Default()
	}
	rng := builder.NewRand(seed)
	return Env{Palette: pal, Builder: builder.New(pal, rng), Rand: rng, Params: params}
}

// Script is one narrative scene and its accepted duration.
type Script struct {
	Name   string
	Window director.Window
	Build  func(Env) (*director.Scene, error)
}

// All returns the implemented scripts in program order.
func All() []Script {
	return []Script{
		{Name: "cold-open", Window: director.Window{Min: 8, Max: 12}, Build: ColdOpen},
		{Name: "library-scale", Window: director.Window{Min: 9, Max: 14}, Build: LibraryScale},
		{Name: "character-intro", Window: director.Window{Min: 14, Max: 20}, Build: CharacterIntro},
		{Name: "challenge-1", Window: director.Window{Min: 15, Max: 25}, Build: Challenge1},
	}
}

// Names lists script names in program order.
func Names() []string {
	var out []string
	for _, s := range All() {
		out = append(out, s.Name)
	}
	return out
}

// Lookup finds a script by name.
func Lookup(name string) (Script, error) {
	for _, s := range All() {
		if s.Name == name {
			return s, nil
		}
	}
	return Script{}, fmt.Errorf("unknown scene %q (have %v)", name, Names())
}

// Run builds the scene and stamps it with the script's name and window.
func (s Script) Run(env Env) (*director.Scene, error) {
	sc, err := s.Build(env)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	sc.Name = s.Name
	sc.Window = s.Window
	return sc, nil
}
