package anim

import "fmt"

// Node is a Clip or a Group.
type Node interface {
	// Span is the time from the node's slot start to its last clip's end,
	// including its own delay.
	Span() float64
	isNode()
}

// Kind is a group's composition mode.
type Kind int

const (
	KindParallel Kind = iota
	KindStaggered
)

func (k Kind) String() string {
	if k == KindParallel {
		return "parallel"
	}
	return "staggered"
}

// Group composes children either concurrently or as a cascade. In a staggered
// group child i+1 starts LagRatio * span(child i) after child i; a lag of 1
// is a strict sequence.
type Group struct {
	Kind     Kind
	LagRatio float64
	Delay    float64
	Label    string
	Children []Node
}

func (g *Group) isNode() {}

// Offsets returns each child's start time relative to the group's start,
// after Delay.
func (g *Group) Offsets() []float64 {
	out := make([]float64, len(g.Children))
	if g.Kind == KindParallel {
		return out
	}
	at := 0.0
	for i, c := range g.Children {
		out[i] = at
		at += g.LagRatio * c.Span()
	}
	return out
}

func (g *Group) Span() float64 {
	end := 0.0
	for i, off := range g.Offsets() {
		end = max(end, off+g.Children[i].Span())
	}
	return g.Delay + end
}

// Named sets the label and returns g.
func (g *Group) Named(label string) *Group {
	g.Label = label
	return g
}

// After sets the delay and returns g.
func (g *Group) After(d float64) *Group {
	g.Delay = d
	return g
}

func (g *Group) String() string {
	name := g.Label
	if name == "" {
		name = g.Kind.String()
	}
	return fmt.Sprintf("%s[%d children, %.2fs]", name, len(g.Children), g.Span())
}

// Parallel starts every child together; the group ends with the slowest.
func Parallel(children ...Node) *Group {
	return &Group{Kind: KindParallel, Children: compact(children)}
}

// Staggered cascades children with the given lag ratio.
func Staggered(lag float64, children ...Node) *Group {
	return &Group{Kind: KindStaggered, LagRatio: lag, Children: compact(children)}
}

// Sequence runs children one after another.
func Sequence(children ...Node) *Group {
	return Staggered(1, children...)
}

// Wait is an empty span of d seconds, usable inside sequences.
func Wait(d float64) *Group {
	return &Group{Kind: KindParallel, Delay: d, Label: "wait"}
}

// compact drops nil children so behaviors can pass optional parts.
func compact(nodes []Node) []Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if c, ok := n.(*Clip); ok && c == nil {
			continue
		}
		if g, ok := n.(*Group); ok && g == nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Walk visits every node depth-first in declaration order.
func Walk(n Node, fn func(Node)) {
	fn(n)
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			Walk(c, fn)
		}
	}
}

// Clips returns the leaves of a tree in declaration order.
func Clips(n Node) []*Clip {
	var out []*Clip
	Walk(n, func(n Node) {
		if c, ok := n.(*Clip); ok {
			out = append(out, c)
		}
	})
	return out
}

// Fit returns a copy of n with every duration and delay scaled so its span is
// total. A zero-span tree is returned unchanged.
func Fit(n Node, total float64) Node {
	span := n.Span()
	if span == 0 || total < 0 {
		return n
	}
	return scaled(n, total/span)
}

func scaled(n Node, k float64) Node {
	switch v := n.(type) {
	case *Clip:
		c := *v
		c.Duration *= k
		c.Delay *= k
		return &c
	case *Group:
		g := *v
		g.Delay *= k
		g.Children = make([]Node, len(v.Children))
		for i, c := range v.Children {
			g.Children[i] = scaled(c, k)
		}
		return &g
	}
	return n
}

// StaggerDuration returns the per-child duration that makes a stagger of n
// equal children with the given lag span exactly total.
func StaggerDuration(total float64, n int, lag float64) float64 {
	if n <= 0 {
		return 0
	}
	return total / (1 + float64(n-1)*lag)
}

// Nodes widens a typed slice for the variadic group constructors.
func Nodes[T Node](xs []T) []Node {
	out := make([]Node, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
