package prep

import (
	"regexp"

	"titanicprep/domain/passenger"
	"titanicprep/internal"
	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
)

// titlePattern captures the honorific in "Last, Title. First"
var titlePattern = regexp.MustCompile(` ([A-Za-z]+)\.`)

// ExtractTitle returns the normalized title found in name, if any
func ExtractTitle(name string) (string, bool) {
	m := titlePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return passenger.NormalizeTitle(m[1]), true
}

// FamilySize is siblings/spouses plus parents/children plus the passenger.
// It is NaN when either count is missing.
func FamilySize(sibSp, parch float64) float64 {
	return sibSp + parch + 1
}

// IsAlone is 1 for a family of one, 0 otherwise (including unknown size)
func IsAlone(familySize float64) float64 {
	if familySize == 1 {
		return 1
	}
	return 0
}

// FeatureEngineer derives Title, FamilySize, IsAlone, AgeBin and FareBin
type FeatureEngineer struct {
	logger *internal.Logger
	bins   int
}

// NewFeatureEngineer creates a feature engineer; a nil logger discards output
func NewFeatureEngineer(logger *internal.Logger) *FeatureEngineer {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &FeatureEngineer{logger: logger, bins: passenger.QuantileBins}
}

// Name identifies the stage in logs and reports
func (f *FeatureEngineer) Name() string { return "engineer" }

// Apply runs Engineer
func (f *FeatureEngineer) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	return f.Engineer(df)
}

// Engineer appends the derived feature columns to a copy of df
func (f *FeatureEngineer) Engineer(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := requireColumns(df,
		passenger.ColName, passenger.ColSibSp, passenger.ColParch,
		passenger.ColAge, passenger.ColFare,
	); err != nil {
		return df, errors.Wrap(err, "engineer")
	}

	names, nameMissing, err := stringValues(df, passenger.ColName)
	if err != nil {
		return df, err
	}
	titles := make([]string, len(names))
	titleMissing := make([]bool, len(names))
	unmatched := 0
	for i, name := range names {
		if nameMissing[i] {
			titleMissing[i] = true
			unmatched++
			continue
		}
		title, ok := ExtractTitle(name)
		if !ok {
			titleMissing[i] = true
			unmatched++
			continue
		}
		titles[i] = title
	}
	if unmatched > 0 {
		f.logger.Warn("[FeatureEngineer] %d names have no recognizable title", unmatched)
	}

	sibSp, err := floatValues(df, passenger.ColSibSp)
	if err != nil {
		return df, err
	}
	parch, err := floatValues(df, passenger.ColParch)
	if err != nil {
		return df, err
	}
	family := make([]float64, len(sibSp))
	alone := make([]float64, len(sibSp))
	for i := range sibSp {
		family[i] = FamilySize(sibSp[i], parch[i])
		alone[i] = IsAlone(family[i])
	}

	out := df
	if out, err = mutate(out, stringSeries(passenger.ColTitle, titles, titleMissing)); err != nil {
		return df, err
	}
	if out, err = mutate(out, intSeries(passenger.ColFamilySize, family)); err != nil {
		return df, err
	}
	if out, err = mutate(out, intSeries(passenger.ColIsAlone, alone)); err != nil {
		return df, err
	}

	for _, b := range []struct{ source, target string }{
		{passenger.ColAge, passenger.ColAgeBin},
		{passenger.ColFare, passenger.ColFareBin},
	} {
		vals, err := floatValues(out, b.source)
		if err != nil {
			return df, err
		}
		labels, edges := QuantileCut(vals, f.bins)
		if len(edges)-1 < f.bins {
			f.logger.Info("[FeatureEngineer] %s: quantile edges collapsed to %d buckets", b.target, max(len(edges)-1, 0))
		}
		f.logger.Debug("[FeatureEngineer] %s edges %v", b.target, edges)
		if missing := countNaN(labels); missing > 0 && missing != countNaN(vals) {
			f.logger.Warn("[FeatureEngineer] %s: %d values fell outside every bucket", b.target, missing-countNaN(vals))
		}
		if out, err = mutate(out, intSeries(b.target, labels)); err != nil {
			return df, err
		}
	}

	f.logger.Info("[FeatureEngineer] derived %s, %s, %s, %s, %s for %d rows",
		passenger.ColTitle, passenger.ColFamilySize, passenger.ColIsAlone,
		passenger.ColAgeBin, passenger.ColFareBin, out.Nrow())
	return out, nil
}
