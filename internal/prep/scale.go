package prep

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CapUpper clips values above the given percentile (0-100) down to it.
// Values at or below it, and missing values, are untouched.
func CapUpper(vals []float64, percentile float64) ([]float64, float64, int) {
	out := append([]float64(nil), vals...)
	limit := Quantile(vals, percentile/100)
	if math.IsNaN(limit) {
		return out, limit, 0
	}
	clipped := 0
	for i, v := range out {
		if v > limit {
			out[i] = limit
			clipped++
		}
	}
	return out, limit, clipped
}

// MinMaxNormalize rescales values to [0, 1] using the observed min and max.
// A constant column maps to 0; missing values stay missing.
func MinMaxNormalize(vals []float64) ([]float64, float64, float64) {
	out := make([]float64, len(vals))
	xs := present(vals)
	if len(xs) == 0 {
		copy(out, vals)
		return out, math.NaN(), math.NaN()
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	span := hi - lo
	for i, v := range vals {
		switch {
		case math.IsNaN(v):
			out[i] = v
		case span == 0:
			out[i] = 0
		default:
			out[i] = (v - lo) / span
		}
	}
	return out, lo, hi
}
