package model

// Pool is an index-stable view over a fixed set of particle parts. Members are
// never removed; fading to zero opacity is how a particle disappears.
type Pool struct {
	entity *Entity
	name   string
	idx    []int
}

func (p Pool) Name() string      { return p.name }
func (p Pool) Entity() *Entity   { return p.entity }
func (p Pool) Len() int          { return len(p.idx) }
func (p Pool) Indices() []int    { return append([]int(nil), p.idx...) }
func (p Pool) Ref(i int) PartRef { return PartRef{Entity: p.entity, Index: p.idx[i]} }

// Part returns the i-th member.
func (p Pool) Part(i int) *Part {
	return p.entity.Parts[p.idx[i]]
}

// Slice returns members [lo, hi), clamped to the pool bounds. An empty result
// is a valid zero-length pool.
func (p Pool) Slice(lo, hi int) Pool {
	lo = clamp(lo, 0, len(p.idx))
	hi = clamp(hi, lo, len(p.idx))
	return Pool{entity: p.entity, name: p.name, idx: p.idx[lo:hi:hi]}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
