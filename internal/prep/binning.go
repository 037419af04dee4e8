package prep

import (
	"math"
	"sort"
)

// QuantileEdges returns the de-duplicated equal-frequency edges for q
// buckets over the non-missing values.
func QuantileEdges(vals []float64, q int) []float64 {
	xs := present(vals)
	if len(xs) == 0 || q < 1 {
		return nil
	}
	sort.Float64s(xs)

	step := 1 / float64(q)
	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		p := float64(i) * step
		if i == q {
			p = 1
		}
		e := quantileSorted(xs, p)
		if len(edges) > 0 && e == edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// QuantileCut assigns each value the index of its equal-frequency bucket,
// 0 for the smallest. Buckets are right-closed, the lowest one includes its
// left edge. When edges collapse on repeated values fewer than q buckets
// exist; with a single distinct edge no bucket exists and every label is
// missing. Missing values map to NaN. The edges used are returned as well.
func QuantileCut(vals []float64, q int) ([]float64, []float64) {
	labels := make([]float64, len(vals))
	edges := QuantileEdges(vals, q)
	if len(edges) < 2 {
		for i := range labels {
			labels[i] = math.NaN()
		}
		return labels, edges
	}

	for i, v := range vals {
		if math.IsNaN(v) {
			labels[i] = math.NaN()
			continue
		}
		idx := sort.SearchFloat64s(edges, v)
		if v == edges[0] {
			idx = 1
		}
		if idx == 0 || idx == len(edges) {
			labels[i] = math.NaN()
			continue
		}
		labels[i] = float64(idx - 1)
	}
	return labels, edges
}
