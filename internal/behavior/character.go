// Package behavior holds the named animation recipes for each entity variant.
// Recipes read an entity's construction-time geometry and return groups; they
// never mutate the entity.
package behavior

import (
	"fmt"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// Character is the behavior set shared by both factions.
type Character interface {
	Entity() *model.Entity
	Idle() *anim.Group
	Celebrate() *anim.Group
}

// For wraps e in the behavior set of its variant.
func For(e *model.Entity, pal *theme.Palette) (Character, error) {
	switch e.Variant {
	case model.VariantGeometric:
		return NewGeometric(e, pal)
	case model.VariantOrganic:
		return NewOrganic(e, pal)
	}
	return nil, fmt.Errorf("%s is a %s, not a character: %w", e.Name, e.Variant, model.ErrUnsupportedBehavior)
}

func require(e *model.Entity, groups ...string) error {
	if e == nil {
		return fmt.Errorf("nil entity: %w", model.ErrUnsupportedBehavior)
	}
	for _, g := range groups {
		if !e.Has(g) {
			return fmt.Errorf("%s has no %q parts: %w", e.Name, g, model.ErrUnsupportedBehavior)
		}
	}
	return nil
}

// refs addresses every member of a group.
func refs(e *model.Entity, group string) []model.PartRef {
	idx := e.Group(group)
	out := make([]model.PartRef, len(idx))
	for i, j := range idx {
		out[i] = e.Ref(j)
	}
	return out
}

func ref(e *model.Entity, group string) model.PartRef {
	r, _ := e.GroupRef(group, 0)
	return r
}
