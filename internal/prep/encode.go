package prep

import (
	"fmt"
	"sort"
	"strconv"

	"titanicprep/domain/passenger"
	"titanicprep/internal"
	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
)

// Categories returns the distinct observed values of a column, sorted
// numerically when all of them are numbers and lexically otherwise.
func Categories(vals []string, missing []bool) []string {
	seen := make(map[string]struct{})
	var cats []string
	for i, v := range vals {
		if missing[i] {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cats = append(cats, v)
	}

	nums := make(map[string]float64, len(cats))
	numeric := true
	for _, c := range cats {
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[c] = f
	}
	if numeric {
		sort.SliceStable(cats, func(i, j int) bool { return nums[cats[i]] < nums[cats[j]] })
	} else {
		sort.Strings(cats)
	}
	return cats
}

// IndicatorName is the column name of one category's indicator
func IndicatorName(field, category string) string {
	return fmt.Sprintf("%s_%s", field, category)
}

// OneHot replaces each field with one 0/1 column per observed category.
// Untouched columns keep their order; indicator groups follow in field
// order. A missing value sets no indicator in its group.
func OneHot(df dataframe.DataFrame, fields ...string) (dataframe.DataFrame, map[string][]string, error) {
	type group struct {
		field   string
		vals    []string
		missing []bool
		cats    []string
	}
	groups := make([]group, 0, len(fields))
	for _, field := range fields {
		vals, missing, err := stringValues(df, field)
		if err != nil {
			return df, nil, err
		}
		groups = append(groups, group{field: field, vals: vals, missing: missing, cats: Categories(vals, missing)})
	}

	out, err := dropColumns(df, fields...)
	if err != nil {
		return df, nil, err
	}

	levels := make(map[string][]string, len(groups))
	for _, g := range groups {
		levels[g.field] = g.cats
		for _, cat := range g.cats {
			ind := make([]float64, len(g.vals))
			for i, v := range g.vals {
				if !g.missing[i] && v == cat {
					ind[i] = 1
				}
			}
			if out, err = mutate(out, intSeries(IndicatorName(g.field, cat), ind)); err != nil {
				return df, nil, err
			}
		}
	}
	return out, levels, nil
}

// Encoder one-hot encodes the categorical fields, drops identifiers and
// caps then min-max normalizes Age and Fare
type Encoder struct {
	logger     *internal.Logger
	percentile float64
}

// NewEncoder creates an encoder/scaler; a nil logger discards output
func NewEncoder(logger *internal.Logger) *Encoder {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &Encoder{logger: logger, percentile: passenger.OutlierPercentile}
}

// Name identifies the stage in logs and reports
func (e *Encoder) Name() string { return "encode" }

// Apply runs EncodeAndScale
func (e *Encoder) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return e.EncodeAndScale(df)
}

// EncodeAndScale returns the model-ready table
func (e *Encoder) EncodeAndScale(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := requireColumns(df, passenger.CategoricalColumns...); err != nil {
		return df, errors.Wrap(err, "encode")
	}
	if err := requireColumns(df, passenger.IdentifierColumns...); err != nil {
		return df, errors.Wrap(err, "encode")
	}
	if err := requireColumns(df, passenger.ScaledColumns...); err != nil {
		return df, errors.Wrap(err, "scale")
	}

	out, levels, err := OneHot(df, passenger.CategoricalColumns...)
	if err != nil {
		return df, err
	}
	for _, field := range passenger.CategoricalColumns {
		e.logger.Debug("[Encoder] %s levels %v", field, levels[field])
	}

	if out, err = dropColumns(out, passenger.IdentifierColumns...); err != nil {
		return df, err
	}

	for _, name := range passenger.ScaledColumns {
		vals, err := floatValues(out, name)
		if err != nil {
			return df, err
		}
		capped, limit, clipped := CapUpper(vals, e.percentile)
		scaled, lo, hi := MinMaxNormalize(capped)
		e.logger.Debug("[Encoder] %s capped at p%.0f=%.4f (%d clipped), range [%.4f, %.4f]",
			name, e.percentile, limit, clipped, lo, hi)
		if out, err = mutate(out, floatSeries(name, scaled)); err != nil {
			return df, err
		}
	}

	e.logger.Info("[Encoder] encoded %v, dropped %v, scaled %v: %d columns",
		passenger.CategoricalColumns, passenger.IdentifierColumns, passenger.ScaledColumns, out.Ncol())
	return out, nil
}
