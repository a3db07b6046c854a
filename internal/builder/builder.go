// Package builder constructs entities procedurally. Every random draw comes
// from the injected source, so a seed fully determines the result.
package builder

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// Builder is not safe for concurrent use: it owns one random stream.
type Builder struct {
	palette *theme.Palette
	rng     *rand.Rand
}

// NewRand returns the seeded source used across the project.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func New(palette *theme.Palette, rng *rand.Rand) *Builder {
	if palette == nil {
		palette = theme.Default()
	}
	if rng == nil {
		rng = NewRand(0)
	}
	return &Builder{palette: palette, rng: rng}
}

func (b *Builder) Palette() *theme.Palette {
	return b.palette
}

// Build dispatches on variant. The returned entity is sealed.
func (b *Builder) Build(v model.Variant, p Params) (*model.Entity, error) {
	if err := p.Validate(v); err != nil {
		return nil, err
	}
	var e *model.Entity
	switch v {
	case model.VariantGeometric:
		e = b.geometric(p)
	case model.VariantOrganic:
		e = b.organic(p)
	case model.VariantShelf:
		e = b.shelf(p)
	case model.VariantSwarm:
		e = b.swarm(p)
	default:
		return nil, fmt.Errorf("unknown variant %q: %w", v, model.ErrInvalidParameter)
	}
	e.Seal()
	return e, nil
}

// Geometric builds the hash character with default parameters at a position.
func (b *Builder) Geometric(at model.Point) *model.Entity {
	return b.must(model.VariantGeometric, at)
}

// Organic builds the b-tree character with default parameters at a position.
func (b *Builder) Organic(at model.Point) *model.Entity {
	return b.must(model.VariantOrganic, at)
}

func (b *Builder) must(v model.Variant, at model.Point) *model.Entity {
	p := DefaultParams(v)
	p.At = at
	e, err := b.Build(v, p)
	if err != nil {
		panic(err) // defaults always validate
	}
	return e
}

// Prop wraps hand-placed parts in a sealed entity. Each part becomes a
// one-member group named after it, and "parts" views all of them.
func (b *Builder) Prop(name string, origin model.Point, parts ...*model.Part) *model.Entity {
	e := b.entity(name, model.VariantProp, origin)
	var all []int
	for _, p := range parts {
		all = append(all, e.AddGroup(p.Name, p)...)
	}
	e.Alias("parts", all)
	e.SetPool("parts")
	e.Seal()
	return e
}

func (b *Builder) entity(name string, v model.Variant, origin model.Point) *model.Entity {
	return model.NewEntity(b.id(), name, v, origin)
}

// id draws a UUID from the seeded stream instead of crypto/rand.
func (b *Builder) id() uuid.UUID {
	id, err := uuid.NewRandomFromReader(randReader{b.rng})
	if err != nil {
		panic(err) // randReader never fails
	}
	return id
}

type randReader struct {
	r *rand.Rand
}

func (rr randReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := rr.r.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// uniform draws from [lo, hi).
func (b *Builder) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*b.rng.Float64()
}

// jitter draws a symmetric offset; a zero range draws nothing so defaults do
// not consume the stream.
func (b *Builder) jitter(rx, ry float64) model.Point {
	var d model.Point
	if rx > 0 {
		d[0] = b.uniform(-rx, rx)
	}
	if ry > 0 {
		d[1] = b.uniform(-ry, ry)
	}
	return d
}
