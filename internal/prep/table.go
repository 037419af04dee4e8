// Package prep holds the passenger table transformations: cleaning,
// feature derivation and encoding/scaling. Every function takes a table and
// returns a new one; inputs are never modified.
package prep

import (
	"math"
	"strconv"

	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// naToken is how gota spells a missing element on construction
const naToken = "NaN"

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func requireColumns(df dataframe.DataFrame, names ...string) error {
	for _, name := range names {
		if !hasColumn(df, name) {
			return errors.ColumnNotFound(name)
		}
	}
	return nil
}

func column(df dataframe.DataFrame, name string) (series.Series, error) {
	if !hasColumn(df, name) {
		return series.Series{}, errors.ColumnNotFound(name)
	}
	s := df.Col(name)
	if s.Err != nil {
		return series.Series{}, errors.Wrapf(s.Err, "read column %s", name)
	}
	return s, nil
}

// floatValues returns the column as floats with NaN for missing elements
func floatValues(df dataframe.DataFrame, name string) ([]float64, error) {
	s, err := column(df, name)
	if err != nil {
		return nil, err
	}
	vals := s.Float()
	for i := range vals {
		if s.Elem(i).IsNA() {
			vals[i] = math.NaN()
		}
	}
	return vals, nil
}

// stringValues returns the column as text plus a missing mask
func stringValues(df dataframe.DataFrame, name string) ([]string, []bool, error) {
	s, err := column(df, name)
	if err != nil {
		return nil, nil, err
	}
	vals := make([]string, s.Len())
	missing := make([]bool, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			missing[i] = true
			continue
		}
		vals[i] = e.String()
	}
	return vals, missing, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return naToken
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// floatSeries builds a Float column; NaN becomes a missing element
func floatSeries(name string, vals []float64) series.Series {
	raw := make([]string, len(vals))
	for i, v := range vals {
		raw[i] = formatFloat(v)
	}
	return series.New(raw, series.Float, name)
}

// intSeries builds an Int column from whole-number floats; NaN becomes missing
func intSeries(name string, vals []float64) series.Series {
	raw := make([]string, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			raw[i] = naToken
			continue
		}
		raw[i] = strconv.FormatInt(int64(v), 10)
	}
	return series.New(raw, series.Int, name)
}

// stringSeries builds a String column; masked entries become missing
func stringSeries(name string, vals []string, missing []bool) series.Series {
	raw := make([]string, len(vals))
	for i, v := range vals {
		if missing != nil && missing[i] {
			raw[i] = naToken
			continue
		}
		raw[i] = v
	}
	return series.New(raw, series.String, name)
}

func mutate(df dataframe.DataFrame, s series.Series) (dataframe.DataFrame, error) {
	out := df.Mutate(s)
	if out.Err != nil {
		return out, errors.Wrapf(out.Err, "set column %s", s.Name)
	}
	return out, nil
}

func dropColumns(df dataframe.DataFrame, names ...string) (dataframe.DataFrame, error) {
	if err := requireColumns(df, names...); err != nil {
		return df, err
	}
	out := df.Drop(names)
	if out.Err != nil {
		return out, errors.Wrapf(out.Err, "drop columns %v", names)
	}
	return out, nil
}

func countNaN(vals []float64) int {
	n := 0
	for _, v := range vals {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

func present(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
