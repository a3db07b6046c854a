package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Variant tags the procedural recipe an Entity was built from.
type Variant string

const (
	VariantGeometric Variant = "geometric"
	VariantOrganic   Variant = "organic"
	VariantShelf     Variant = "prop-shelf"
	VariantSwarm     Variant = "swarm"
	VariantIndexTree Variant = "index-tree"
	VariantProp      Variant = "prop"
)

// Variants lists the variants buildable from Params, in a stable order. The
// index tree takes node keys instead and props are assembled by hand.
func Variants() []Variant {
	return []Variant{VariantGeometric, VariantOrganic, VariantShelf, VariantSwarm}
}

// Whole is the PartRef index that addresses the entity itself instead of one part.
const Whole = -1

// Entity is a named aggregate of Parts. The Parts slice is fixed once the entity
// is sealed; sub-groups are ordered index views into it and may overlap.
//
// Identity is the pointer: ID is a reproducible label for exports and logs,
// and two builders with the same seed hand out the same IDs.
type Entity struct {
	ID      uuid.UUID
	Name    string
	Variant Variant

	Origin   Point   // anchor for entity-level scale and rotation
	Scale    float64 // entity-level multiplier, 1 by default
	Rotation float64
	Opacity  float64 // multiplies every part's alpha

	Parts []*Part

	groups map[string][]int
	order  []string
	pool   string
	sealed bool
}

// NewEntity returns an empty, unsealed entity anchored at origin.
func NewEntity(id uuid.UUID, name string, v Variant, origin Point) *Entity {
	return &Entity{
		ID:      id,
		Name:    name,
		Variant: v,
		Origin:  origin,
		Scale:   1,
		Opacity: 1,
		groups:  make(map[string][]int),
	}
}

// AddGroup appends parts and records them under name. Adding to an existing
// group extends it. Panics after Seal: the part list is fixed for playback.
func (e *Entity) AddGroup(name string, parts ...*Part) []int {
	if e.sealed {
		panic(fmt.Sprintf("model: AddGroup(%q) on sealed entity %q", name, e.Name))
	}
	idx := make([]int, 0, len(parts))
	for _, p := range parts {
		idx = append(idx, len(e.Parts))
		e.Parts = append(e.Parts, p)
	}
	e.alias(name, idx)
	return idx
}

// Alias records an extra view over parts already owned by the entity.
func (e *Entity) Alias(name string, indices []int) {
	if e.sealed {
		panic(fmt.Sprintf("model: Alias(%q) on sealed entity %q", name, e.Name))
	}
	for _, i := range indices {
		if i < 0 || i >= len(e.Parts) {
			panic(fmt.Sprintf("model: Alias(%q) index %d out of range", name, i))
		}
	}
	e.alias(name, append([]int(nil), indices...))
}

func (e *Entity) alias(name string, idx []int) {
	if _, ok := e.groups[name]; !ok {
		e.order = append(e.order, name)
	}
	e.groups[name] = append(e.groups[name], idx...)
}

// SetPool names the group exposed by Pool.
func (e *Entity) SetPool(name string) {
	e.pool = name
}

// Seal freezes the part list.
func (e *Entity) Seal() {
	e.sealed = true
}

func (e *Entity) Sealed() bool {
	return e.sealed
}

// Has reports whether every named group exists and is non-empty.
func (e *Entity) Has(names ...string) bool {
	for _, n := range names {
		if len(e.groups[n]) == 0 {
			return false
		}
	}
	return true
}

// Group returns a copy of the part indices recorded under name.
func (e *Entity) Group(name string) []int {
	return append([]int(nil), e.groups[name]...)
}

// Groups returns group names in the order they were declared.
func (e *Entity) Groups() []string {
	return append([]string(nil), e.order...)
}

// Part returns the i-th part, or nil when i is out of range.
func (e *Entity) Part(i int) *Part {
	if i < 0 || i >= len(e.Parts) {
		return nil
	}
	return e.Parts[i]
}

// GroupPart returns the i-th member of a group.
func (e *Entity) GroupPart(name string, i int) (*Part, bool) {
	g := e.groups[name]
	if i < 0 || i >= len(g) {
		return nil, false
	}
	return e.Parts[g[i]], true
}

// Ref addresses the i-th part.
func (e *Entity) Ref(i int) PartRef {
	return PartRef{Entity: e, Index: i}
}

// GroupRef addresses the i-th member of a group.
func (e *Entity) GroupRef(name string, i int) (PartRef, bool) {
	g := e.groups[name]
	if i < 0 || i >= len(g) {
		return PartRef{}, false
	}
	return PartRef{Entity: e, Index: g[i]}, true
}

// Whole addresses the entity itself.
func (e *Entity) Whole() PartRef {
	return PartRef{Entity: e, Index: Whole}
}

func (e *Entity) PoolName() string {
	return e.pool
}

// Pool returns the primary particle pool view. Entities without one return an
// empty pool.
func (e *Entity) Pool() Pool {
	return e.PoolOf(e.pool)
}

// PoolOf returns a pool view over any named group.
func (e *Entity) PoolOf(name string) Pool {
	return Pool{entity: e, name: name, idx: e.groups[name]}
}

// Center is the average of part centers, or Origin for an empty entity.
func (e *Entity) Center() Point {
	if len(e.Parts) == 0 {
		return e.Origin
	}
	var c Point
	for _, p := range e.Parts {
		c = Add(c, p.Center)
	}
	return Mul(c, 1/float64(len(e.Parts)))
}

// Clone deep-copies the entity. Group views are copied so the clone can be
// mutated by a renderer without touching the original.
func (e *Entity) Clone() *Entity {
	c := *e
	c.Parts = make([]*Part, len(e.Parts))
	for i, p := range e.Parts {
		c.Parts[i] = p.Clone()
	}
	c.groups = make(map[string][]int, len(e.groups))
	for k, v := range e.groups {
		c.groups[k] = append([]int(nil), v...)
	}
	c.order = append([]string(nil), e.order...)
	return &c
}

func (e *Entity) String() string {
	names := make([]string, 0, len(e.groups))
	for k := range e.groups {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s(%s, %d parts, groups=%v)", e.Name, e.Variant, len(e.Parts), names)
}

// PartRef addresses one part of an entity, or the entity itself when Index is Whole.
type PartRef struct {
	Entity *Entity
	Index  int
}

// TargetKey is a comparable identity for a PartRef.
type TargetKey struct {
	Entity *Entity
	Index  int
}

func (r PartRef) Key() TargetKey {
	return TargetKey{Entity: r.Entity, Index: r.Index}
}

func (r PartRef) IsWhole() bool {
	return r.Index == Whole
}

// Valid reports whether the ref points at an existing part or the whole entity.
func (r PartRef) Valid() bool {
	if r.Entity == nil {
		return false
	}
	return r.Index == Whole || (r.Index >= 0 && r.Index < len(r.Entity.Parts))
}

// Part returns the addressed part, nil for Whole or invalid refs.
func (r PartRef) Part() *Part {
	if r.Entity == nil {
		return nil
	}
	return r.Entity.Part(r.Index)
}

// String renders "entity/part" or "entity" for whole-entity refs.
func (r PartRef) String() string {
	if r.Entity == nil {
		return "<nil>"
	}
	if r.Index == Whole {
		return r.Entity.Name
	}
	if p := r.Part(); p != nil && p.Name != "" {
		return r.Entity.Name + "/" + p.Name
	}
	return fmt.Sprintf("%s/#%d", r.Entity.Name, r.Index)
}
