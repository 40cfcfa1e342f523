package world

import "math"

// Height curve constants.
const (
	DefaultCurve = 3.5
	MinCurve     = 3.5
	MaxCurve     = 4.5
)

// HeightCurve reshapes a normalized height with a softplus response,
// ln(1 + e^((x-1)c)). Low values flatten toward ln(1+e^-c) and the top end
// stays below ln 2.
func HeightCurve(x, c float64) float64 {
	return math.Log1p(math.Exp((x - 1) * c))
}
