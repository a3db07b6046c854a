package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Role is a semantic color slot. Entities and scripts ask for roles, never for
// literal colors.
type Role string

const (
	Background  Role = "background"
	Geometric   Role = "geometric"    // hash faction accent
	Organic     Role = "organic"      // b-tree faction accent
	OrganicDeep Role = "organic-deep" // trunk, gradient end
	Danger      Role = "danger"
	Success     Role = "success"
	Neutral     Role = "neutral"
	Highlight   Role = "highlight"
	Special     Role = "special"
	Text        Role = "text"
	Ink         Role = "ink"
)

// Roles returns every known role in a stable order.
func Roles() []Role {
	return []Role{Background, Geometric, Organic, OrganicDeep, Danger, Success, Neutral, Highlight, Special, Text, Ink}
}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range Roles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown palette role %q", s)
}

var defaults = map[Role]string{
	Background:  "#0A0E1A",
	Geometric:   "#00D9FF",
	Organic:     "#FFB347",
	OrganicDeep: "#FF6B35",
	Danger:      "#C41E3A",
	Success:     "#50C878",
	Neutral:     "#808080",
	Highlight:   "#FFD700",
	Special:     "#9D4EDD",
	Text:        "#FFFFFF",
	Ink:         "#000000",
}

// Palette maps roles to colors. It is immutable after construction; With
// returns a modified copy.
type Palette struct {
	name   string
	colors map[Role]colorful.Color
}

// Default returns the house palette.
func Default() *Palette {
	p, err := New("default", defaults)
	if err != nil {
		panic(err)
	}
	return p
}

// New builds a palette from hex strings. Roles left out resolve to the neutral
// gray through Color, so a partial theme is valid; use Default().With to keep
// the house colors instead.
func New(name string, hex map[Role]string) (*Palette, error) {
	p := &Palette{name: name, colors: make(map[Role]colorful.Color, len(hex))}
	for r, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", r, err)
		}
		p.colors[r] = c
	}
	return p, nil
}

// With returns a copy of p with the given roles replaced.
func (p *Palette) With(overrides map[Role]string) (*Palette, error) {
	o, err := New(p.name, overrides)
	if err != nil {
		return nil, err
	}
	for r, c := range p.colors {
		if _, ok := o.colors[r]; !ok {
			o.colors[r] = c
		}
	}
	return o, nil
}

// Named returns a copy of p under another name.
func (p *Palette) Named(name string) *Palette {
	c := &Palette{name: name, colors: make(map[Role]colorful.Color, len(p.colors))}
	for r, col := range p.colors {
		c.colors[r] = col
	}
	return c
}

func (p *Palette) Name() string {
	return p.name
}

// Lookup returns the color for r and whether the palette defines it.
func (p *Palette) Lookup(r Role) (colorful.Color, bool) {
	c, ok := p.colors[r]
	return c, ok
}

// Color returns the color for r. Unknown roles resolve to the neutral gray.
func (p *Palette) Color(r Role) colorful.Color {
	if c, ok := p.colors[r]; ok {
		return c
	}
	if c, ok := p.colors[Neutral]; ok {
		return c
	}
	c, _ := colorful.Hex(defaults[Neutral])
	return c
}

// Hex returns the #rrggbb form of a role color.
func (p *Palette) Hex(r Role) string {
	return p.Color(r).Hex()
}

// Gradient returns n colors blended in HCL space from one role to another.
func (p *Palette) Gradient(from, to Role, n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	a, b := p.Color(from), p.Color(to)
	if n == 1 {
		return []colorful.Color{a}
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = a.BlendHcl(b, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

// Entries returns the defined roles sorted by name, for listings.
func (p *Palette) Entries() []Role {
	rs := make([]Role, 0, len(p.colors))
	for r := range p.colors {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}
