package prep

import (
	"strings"

	"titanicprep/adapters/coercer"
	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	keySep  = "\x1f"
	keyNull = "\x00"
)

var numericText = coercer.NewNumericCoercer(coercer.DefaultCoercionConfig())

// DropDuplicates removes rows equal to an earlier row in every column,
// keeping the first occurrence. Missing values compare equal to each other.
// A text column whose present cells all parse as numbers compares by value,
// so "7.25" and "7.250" are the same fare.
func DropDuplicates(df dataframe.DataFrame) (dataframe.DataFrame, int, error) {
	nrows := df.Nrow()
	if nrows < 2 {
		return df, 0, nil
	}

	cols := make([][]string, 0, df.Ncol())
	for _, name := range df.Names() {
		s, err := column(df, name)
		if err != nil {
			return df, 0, err
		}
		cols = append(cols, cellKeys(s))
	}

	seen := make(map[string]struct{}, nrows)
	keep := make([]int, 0, nrows)
	var b strings.Builder
	for r := 0; r < nrows; r++ {
		b.Reset()
		for _, keys := range cols {
			b.WriteString(keys[r])
			b.WriteString(keySep)
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}

	dropped := nrows - len(keep)
	if dropped == 0 {
		return df, 0, nil
	}
	out := df.Subset(keep)
	if out.Err != nil {
		return df, 0, errors.Wrap(out.Err, "subset unique rows")
	}
	return out, dropped, nil
}

func cellKeys(s series.Series) []string {
	keys := make([]string, s.Len())
	if s.Type() == series.String {
		if vals, ok := numericCells(s); ok {
			for r, v := range vals {
				if s.Elem(r).IsNA() {
					keys[r] = keyNull
					continue
				}
				keys[r] = formatFloat(v)
			}
			return keys
		}
	}
	for r := range keys {
		keys[r] = cellKey(s, r)
	}
	return keys
}

// numericCells parses every present cell of a text series, reporting false
// as soon as one does not parse.
func numericCells(s series.Series) ([]float64, bool) {
	vals := make([]float64, s.Len())
	for r := range vals {
		e := s.Elem(r)
		if e.IsNA() {
			continue
		}
		v, ok := numericText.ParseFloat(e.String())
		if !ok {
			return nil, false
		}
		vals[r] = v
	}
	return vals, true
}

func cellKey(s series.Series, r int) string {
	e := s.Elem(r)
	if e.IsNA() {
		return keyNull
	}
	if s.Type() == series.Float {
		return formatFloat(e.Float())
	}
	return e.String()
}
