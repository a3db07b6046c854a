package anim

import "math"

// Easing maps clip progress in [0,1] to interpolation weight. The zero value
// behaves as Smooth.
type Easing struct {
	name string
	fn   func(float64) float64
}

func (e Easing) Name() string {
	if e.fn == nil {
		return Smooth.name
	}
	return e.name
}

// At evaluates the curve at progress t, clamped to [0,1].
func (e Easing) At(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	if e.fn == nil {
		return smooth(t)
	}
	return e.fn(t)
}

var (
	Linear         = Easing{"linear", func(t float64) float64 { return t }}
	Smooth         = Easing{"smooth", smooth}
	EaseInOutCubic = Easing{"ease_in_out_cubic", easeInOutCubic}
	RushInto       = Easing{"rush_into", func(t float64) float64 { return 2 * smooth(t/2) }}
	RushFrom       = Easing{"rush_from", func(t float64) float64 { return 2*smooth(t/2+0.5) - 1 }}
	ThereAndBack   = ThereAndBackWith(Smooth)
)

// ThereAndBackWith runs inner forward over the first half and backward over
// the second, so the clip ends where it started.
func ThereAndBackWith(inner Easing) Easing {
	name := "there_and_back"
	if inner.Name() != Smooth.name {
		name += "(" + inner.Name() + ")"
	}
	return Easing{name, func(t float64) float64 {
		if t < 0.5 {
			return inner.At(2 * t)
		}
		return inner.At(2 * (1 - t))
	}}
}

// EasingByName resolves the names written into exported schedules.
func EasingByName(name string) (Easing, bool) {
	for _, e := range []Easing{Linear, Smooth, EaseInOutCubic, RushInto, RushFrom, ThereAndBack} {
		if e.name == name {
			return e, true
		}
	}
	return Easing{}, false
}

const inflection = 10.0

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// smooth is a sigmoid rescaled to pass through (0,0) and (1,1).
func smooth(t float64) float64 {
	e := sigmoid(-inflection / 2)
	v := (sigmoid(inflection*(t-0.5)) - e) / (1 - 2*e)
	return math.Max(0, math.Min(1, v))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
