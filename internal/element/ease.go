package element

import (
	"fmt"
	"math"
	"strings"
)

// EaseFuncType selects an ease-out curve used by fade and warning animations.
type EaseFuncType int

const (
	EaseLinear EaseFuncType = iota
	EaseSine
	EaseQuad
	EaseCubic
	EaseQuart
	EaseBack
	EaseElastic
	EaseBounce
)

var easeNames = map[EaseFuncType]string{
	EaseLinear:  "linear",
	EaseSine:    "sine",
	EaseQuad:    "quad",
	EaseCubic:   "cubic",
	EaseQuart:   "quart",
	EaseBack:    "back",
	EaseElastic: "elastic",
	EaseBounce:  "bounce",
}

func (k EaseFuncType) String() string {
	if name, ok := easeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EaseFuncType(%d)", int(k))
}

// ParseEase converts a config name such as "cubic" into an EaseFuncType.
func ParseEase(name string) (EaseFuncType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range easeNames {
		if n == name {
			return k, nil
		}
	}
	return EaseLinear, fmt.Errorf("unknown ease function: %q", name)
}

// Ease maps t in [0,1] through the curve. t outside the range is clamped.
// Back and Elastic overshoot 1 before settling.
func (k EaseFuncType) Ease(t float32) float32 {
	x := math.Min(math.Max(float64(t), 0), 1)

	switch k {
	case EaseSine:
		return float32(math.Sin(x * math.Pi / 2))
	case EaseQuad:
		return float32(1 - math.Pow(1-x, 2))
	case EaseCubic:
		return float32(1 - math.Pow(1-x, 3))
	case EaseQuart:
		return float32(1 - math.Pow(1-x, 4))
	case EaseBack:
		const c1 = 1.70158
		const c3 = c1 + 1
		return float32(1 + c3*math.Pow(x-1, 3) + c1*math.Pow(x-1, 2))
	case EaseElastic:
		if x == 0 || x == 1 {
			return float32(x)
		}
		const c4 = 2 * math.Pi / 3
		return float32(math.Pow(2, -10*x)*math.Sin((x*10-0.75)*c4) + 1)
	case EaseBounce:
		return float32(bounceOut(x))
	default:
		return float32(x)
	}
}

func bounceOut(x float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	switch {
	case x < 1/d1:
		return n1 * x * x
	case x < 2/d1:
		x -= 1.5 / d1
		return n1*x*x + 0.75
	case x < 2.5/d1:
		x -= 2.25 / d1
		return n1*x*x + 0.9375
	default:
		x -= 2.625 / d1
		return n1*x*x + 0.984375
	}
}
