package behavior

import (
	"fmt"
	"math/rand/v2"

	"github.com/ivlev/indexparadox/internal/anim"
	"github.com/ivlev/indexparadox/internal/model"
)

const HighlightTime = 0.8

// Shelf animates a library shelf prop.
type Shelf struct {
	e *model.Entity
}

func NewShelf(e *model.Entity) (*Shelf, error) {
	if err := require(e, "books", "glow"); err != nil {
		return nil, err
	}
	return &Shelf{e: e}, nil
}

func (s *Shelf) Entity() *model.Entity { return s.e }

// Book addresses the i-th book.
func (s *Shelf) Book(i int) (model.PartRef, error) {
	r, ok := s.e.GroupRef("books", i)
	if !ok {
		return model.PartRef{}, fmt.Errorf("book %d of %d: %w", i, len(s.e.Group("books")), model.ErrInvalidParameter)
	}
	return r, nil
}

// Highlight fades in the book's gold outline and deepens its fill.
func (s *Shelf) Highlight(i int) (*anim.Group, error) {
	book, err := s.Book(i)
	if err != nil {
		return nil, err
	}
	glow, _ := s.e.GroupRef("glow", i)
	return anim.Parallel(
		anim.FadeTo(glow, 0.3, anim.Over(HighlightTime)),
		anim.Refill(book, book.Part().Fill, 0.9, anim.Over(HighlightTime)),
	).Named(fmt.Sprintf("highlight-%d", i)), nil
}

// Burst times a bulk particle move: the whole cascade spans RunTime and each
// member starts LagRatio of a member's duration after the previous one.
type Burst struct {
	RunTime  float64
	LagRatio float64
}

var (
	ExplodeBurst = Burst{RunTime: 1.5, LagRatio: 0.01}
	ReformBurst  = Burst{RunTime: 2, LagRatio: 0.02}
)

func (b Burst) validate() error {
	if !(b.RunTime >= 0) || !(b.LagRatio >= 0 && b.LagRatio <= 1) {
		return fmt.Errorf("burst %+v: %w", b, model.ErrInvalidParameter)
	}
	return nil
}

// Explode sends every pool member from origin to a random point inside spread,
// fading it out on the way. Destinations are drawn from rng in pool order.
func Explode(pool model.Pool, origin model.Point, spread model.Rect, rng *rand.Rand, b Burst) (*anim.Group, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if !spread.Valid() {
		return nil, fmt.Errorf("spread %v: %w", spread, model.ErrInvalidParameter)
	}
	if rng == nil && pool.Len() > 0 {
		return nil, fmt.Errorf("explode needs a random source: %w", model.ErrInvalidParameter)
	}
	d := anim.StaggerDuration(b.RunTime, pool.Len(), b.LagRatio)
	members := make([]anim.Node, pool.Len())
	for i := range members {
		dest := model.Pt(
			spread.Min[0]+(spread.Max[0]-spread.Min[0])*rng.Float64(),
			spread.Min[1]+(spread.Max[1]-spread.Min[1])*rng.Float64(),
		)
		r := pool.Ref(i)
		members[i] = anim.Parallel(
			anim.MoveTo(r, dest, anim.Over(d), anim.From(anim.Value{Point: origin})),
			anim.FadeTo(r, 0, anim.Over(d)),
		)
	}
	return anim.Staggered(b.LagRatio, members...).Named("explode"), nil
}

// Reform converges the first n pool members on target at full opacity. n is
// clamped to the pool size.
func Reform(pool model.Pool, target model.Point, n int, b Burst) (*anim.Group, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	n = max(0, min(n, pool.Len()))
	d := anim.StaggerDuration(b.RunTime, n, b.LagRatio)
	members := make([]anim.Node, n)
	for i := range members {
		r := pool.Ref(i)
		members[i] = anim.Parallel(
			anim.MoveTo(r, target, anim.Over(d)),
			anim.FadeTo(r, 1, anim.Over(d)),
		)
	}
	return anim.Staggered(b.LagRatio, members...).Named("reform"), nil
}

// Cascade fades pool members in one after another, the pixel coalesce of the
// character intro.
func Cascade(pool model.Pool, to float64, b Burst) (*anim.Group, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	d := anim.StaggerDuration(b.RunTime, pool.Len(), b.LagRatio)
	members := make([]anim.Node, pool.Len())
	for i := range members {
		members[i] = anim.FadeTo(pool.Ref(i), to, anim.Over(d))
	}
	return anim.Staggered(b.LagRatio, members...).Named("cascade"), nil
}
