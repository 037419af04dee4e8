package prep

import (
	"math"
	"sort"
	"strings"

	"titanicprep/internal/errors"
)

// GroupedFill is the result of the two-pass median imputation
type GroupedFill struct {
	Values       []float64
	GroupFilled  int
	GlobalFilled int
	GroupMedians map[string]float64
	GlobalMedian float64
	StillMissing int
}

// ImputeGroupedMedian fills missing values in two explicit passes. Pass one
// uses the median of each group's non-missing values, computed before any
// filling; rows whose group key is missing, or whose group has no observed
// value, are left for pass two. Pass two fills the remaining gaps with the
// median of the partially filled column.
func ImputeGroupedMedian(vals []float64, keys [][]string, keyMissing []bool) GroupedFill {
	out := append([]float64(nil), vals...)

	groups := make(map[string][]float64)
	rowKeys := make([]string, len(vals))
	for i := range vals {
		if keyMissing != nil && keyMissing[i] {
			continue
		}
		rowKeys[i] = strings.Join(keys[i], keySep)
		if !math.IsNaN(vals[i]) {
			groups[rowKeys[i]] = append(groups[rowKeys[i]], vals[i])
		}
	}

	medians := make(map[string]float64, len(groups))
	for k, g := range groups {
		medians[k] = Median(g)
	}

	res := GroupedFill{GroupMedians: medians}
	for i, v := range out {
		if !math.IsNaN(v) || (keyMissing != nil && keyMissing[i]) {
			continue
		}
		if m, ok := medians[rowKeys[i]]; ok {
			out[i] = m
			res.GroupFilled++
		}
	}

	res.GlobalMedian = Median(out)
	for i, v := range out {
		if !math.IsNaN(v) {
			continue
		}
		if math.IsNaN(res.GlobalMedian) {
			res.StillMissing++
			continue
		}
		out[i] = res.GlobalMedian
		res.GlobalFilled++
	}

	res.Values = out
	return res
}

// ImputeMedian fills missing values with the median of the observed ones.
// It returns the filled copy, the median used and how many cells changed.
func ImputeMedian(vals []float64) ([]float64, float64, int) {
	out := append([]float64(nil), vals...)
	m := Median(out)
	if math.IsNaN(m) {
		return out, m, 0
	}
	filled := 0
	for i, v := range out {
		if math.IsNaN(v) {
			out[i] = m
			filled++
		}
	}
	return out, m, filled
}

// Modes returns every most-frequent observed value, sorted.
func Modes(vals []string, missing []bool) []string {
	counts := make(map[string]int)
	best := 0
	for i, v := range vals {
		if missing[i] {
			continue
		}
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	var modes []string
	for v, c := range counts {
		if c == best {
			modes = append(modes, v)
		}
	}
	sort.Strings(modes)
	return modes
}

// ModeFill picks the value used to fill a categorical column: the single
// mode when there is one, fallback when several values tie.
func ModeFill(column string, vals []string, missing []bool, fallback string) (string, error) {
	modes := Modes(vals, missing)
	switch {
	case len(modes) == 0:
		return "", errors.NoMode(column)
	case len(modes) > 1:
		return fallback, nil
	default:
		return modes[0], nil
	}
}

// ImputeMode fills masked entries with the ModeFill value. A column with
// nothing missing is returned as is, whatever its modes.
func ImputeMode(column string, vals []string, missing []bool, fallback string) ([]string, []bool, string, int, error) {
	outVals := append([]string(nil), vals...)
	outMissing := append([]bool(nil), missing...)

	gaps := 0
	for _, m := range missing {
		if m {
			gaps++
		}
	}
	if gaps == 0 {
		return outVals, outMissing, "", 0, nil
	}

	fill, err := ModeFill(column, vals, missing, fallback)
	if err != nil {
		return nil, nil, "", 0, err
	}
	for i := range outVals {
		if outMissing[i] {
			outVals[i] = fill
			outMissing[i] = false
		}
	}
	return outVals, outMissing, fill, gaps, nil
}
