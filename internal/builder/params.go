package builder

import (
	"fmt"
	"math"

	"github.com/ivlev/indexparadox/internal/model"
	"github.com/ivlev/indexparadox/internal/theme"
)

// Params is the entity parameter configuration. Zero values are not defaults:
// start from DefaultParams and override.
type Params struct {
	Name         string
	PartCount    int
	JitterRangeX float64
	JitterRangeY float64
	PaletteRole  theme.Role
	StrokeWidth  float64
	FillOpacity  float64
	At           model.Point
	BranchCount  int // organic only
}

// DefaultParams returns the stock parameters for a variant.
func DefaultParams(v model.Variant) Params {
	switch v {
	case model.VariantGeometric:
		return Params{Name: "hash", PartCount: 20, PaletteRole: theme.Geometric, StrokeWidth: 3, FillOpacity: 0.3}
	case model.VariantOrganic:
		return Params{Name: "btree", PartCount: 15, JitterRangeX: 2, PaletteRole: theme.Organic, StrokeWidth: 2, FillOpacity: 0.6, BranchCount: 3}
	case model.VariantShelf:
		return Params{Name: "shelf", PartCount: 20, PaletteRole: theme.Neutral, StrokeWidth: 1, FillOpacity: 0.6}
	case model.VariantSwarm:
		return Params{Name: "swarm", PartCount: 500, PaletteRole: theme.Geometric, FillOpacity: 1}
	}
	return Params{Name: string(v), PartCount: 1, PaletteRole: theme.Neutral, StrokeWidth: 1, FillOpacity: 1}
}

// Validate rejects parameter sets no variant can build from.
func (p Params) Validate(v model.Variant) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%s: %s: %w", v, fmt.Sprintf(format, args...), model.ErrInvalidParameter)
	}
	if p.PartCount <= 0 {
		return bad("partCount must be positive, got %d", p.PartCount)
	}
	if !finite(p.JitterRangeX) || !finite(p.JitterRangeY) || p.JitterRangeX < 0 || p.JitterRangeY < 0 {
		return bad("jitter ranges must be finite and non-negative, got (%g, %g)", p.JitterRangeX, p.JitterRangeY)
	}
	if !finite(p.FillOpacity) || p.FillOpacity < 0 || p.FillOpacity > 1 {
		return bad("fillOpacity must be in [0,1], got %g", p.FillOpacity)
	}
	if !finite(p.StrokeWidth) || p.StrokeWidth < 0 {
		return bad("strokeWidth must be non-negative, got %g", p.StrokeWidth)
	}
	if v == model.VariantOrganic && p.BranchCount <= 0 {
		return bad("branchCount must be positive, got %d", p.BranchCount)
	}
	if !finite(p.At[0]) || !finite(p.At[1]) {
		return bad("placement must be finite")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
