package prep

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Quantile returns the p-quantile (0 <= p <= 1) of the non-missing values
// using linear interpolation between closest ranks (Hyndman-Fan type 7).
// It returns NaN when no value is present.
func Quantile(vals []float64, p float64) float64 {
	xs := present(vals)
	if len(xs) == 0 {
		return math.NaN()
	}
	sort.Float64s(xs)
	return quantileSorted(xs, p)
}

func quantileSorted(xs []float64, p float64) float64 {
	n := len(xs)
	if p <= 0 {
		return xs[0]
	}
	if p >= 1 {
		return xs[n-1]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return xs[n-1]
	}
	t := h - float64(lo)
	a, b := xs[lo], xs[hi]
	diff := b - a
	// interpolate from the nearer end so results are monotonic in p
	if t >= 0.5 {
		return b - diff*(1-t)
	}
	return a + diff*t
}

// Median returns the median of the non-missing values, NaN if there are none.
func Median(vals []float64) float64 {
	xs := present(vals)
	if len(xs) == 0 {
		return math.NaN()
	}
	m, err := stats.Median(xs)
	if err != nil {
		return math.NaN()
	}
	return m
}
