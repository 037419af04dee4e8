package prep

import (
	"titanicprep/adapters/coercer"
	"titanicprep/domain/passenger"
	"titanicprep/internal"
	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
)

// CleanSummary counts what the cleaner changed
type CleanSummary struct {
	DuplicatesDropped int
	FareUnparseable   int
	AgeGroupFilled    int
	AgeGlobalFilled   int
	EmbarkedFill      string
	EmbarkedFilled    int
	FareFilled        int
}

// Cleaner removes duplicates, fixes Fare's type and imputes Age, Embarked and Fare
type Cleaner struct {
	logger  *internal.Logger
	coercer *coercer.NumericCoercer
}

// NewCleaner creates a cleaner; a nil logger discards output
func NewCleaner(logger *internal.Logger) *Cleaner {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &Cleaner{
		logger:  logger,
		coercer: coercer.NewNumericCoercer(coercer.DefaultCoercionConfig()),
	}
}

// Name identifies the stage in logs and reports
func (c *Cleaner) Name() string { return "clean" }

// Apply runs Clean, dropping the summary
func (c *Cleaner) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, _, err := c.Clean(df)
	return out, err
}

// Clean returns a copy of df with duplicates removed, Fare numeric, Cabin
// dropped and no missing Age, Embarked or Fare, plus what it changed.
func (c *Cleaner) Clean(df dataframe.DataFrame) (dataframe.DataFrame, CleanSummary, error) {
	if err := requireColumns(df,
		passenger.ColFare, passenger.ColCabin, passenger.ColAge,
		passenger.ColPclass, passenger.ColSex, passenger.ColEmbarked,
	); err != nil {
		return df, CleanSummary{}, errors.Wrap(err, "clean")
	}
	summary := CleanSummary{}

	out, dropped, err := DropDuplicates(df)
	if err != nil {
		return df, CleanSummary{}, errors.Wrap(err, "drop duplicates")
	}
	summary.DuplicatesDropped = dropped

	fareCol, err := column(out, passenger.ColFare)
	if err != nil {
		return df, CleanSummary{}, err
	}
	fare, fareStats := c.coercer.CoerceSeries(fareCol)
	summary.FareUnparseable = fareStats.Failed
	if out, err = mutate(out, floatSeries(passenger.ColFare, fare)); err != nil {
		return df, CleanSummary{}, err
	}

	if out, err = dropColumns(out, passenger.ColCabin); err != nil {
		return df, CleanSummary{}, err
	}

	if out, err = c.imputeAge(out, &summary); err != nil {
		return df, CleanSummary{}, err
	}

	if out, err = c.imputeEmbarked(out, &summary); err != nil {
		return df, CleanSummary{}, err
	}

	fare, err = floatValues(out, passenger.ColFare)
	if err != nil {
		return df, CleanSummary{}, err
	}
	fare, fareMedian, fareFilled := ImputeMedian(fare)
	summary.FareFilled = fareFilled
	if out, err = mutate(out, floatSeries(passenger.ColFare, fare)); err != nil {
		return df, CleanSummary{}, err
	}
	if left := countNaN(fare); left > 0 {
		c.logger.Warn("[Cleaner] %d fare values remain missing (no observed fare)", left)
	}

	c.logger.Info("[Cleaner] %d -> %d rows (%d duplicates), %d unparseable fares",
		df.Nrow(), out.Nrow(), summary.DuplicatesDropped, summary.FareUnparseable)
	c.logger.Info("[Cleaner] imputed age %d grouped + %d global, embarked %d with %q, fare %d with median %.4f",
		summary.AgeGroupFilled, summary.AgeGlobalFilled, summary.EmbarkedFilled, summary.EmbarkedFill,
		summary.FareFilled, fareMedian)
	return out, summary, nil
}

func (c *Cleaner) imputeAge(df dataframe.DataFrame, summary *CleanSummary) (dataframe.DataFrame, error) {
	age, err := floatValues(df, passenger.ColAge)
	if err != nil {
		return df, err
	}

	keyCols := make([][]string, len(passenger.AgeGroupKeys))
	keyMissing := make([]bool, len(age))
	for k, name := range passenger.AgeGroupKeys {
		vals, missing, err := stringValues(df, name)
		if err != nil {
			return df, err
		}
		keyCols[k] = vals
		for i, m := range missing {
			keyMissing[i] = keyMissing[i] || m
		}
	}
	keys := make([][]string, len(age))
	for i := range age {
		row := make([]string, len(keyCols))
		for k := range keyCols {
			row[k] = keyCols[k][i]
		}
		keys[i] = row
	}

	fill := ImputeGroupedMedian(age, keys, keyMissing)
	summary.AgeGroupFilled = fill.GroupFilled
	summary.AgeGlobalFilled = fill.GlobalFilled
	for k, m := range fill.GroupMedians {
		c.logger.Debug("[Cleaner] age median for group %q = %.2f", k, m)
	}
	if fill.StillMissing > 0 {
		c.logger.Warn("[Cleaner] %d ages remain missing (no observed age)", fill.StillMissing)
	}
	return mutate(df, floatSeries(passenger.ColAge, fill.Values))
}

func (c *Cleaner) imputeEmbarked(df dataframe.DataFrame, summary *CleanSummary) (dataframe.DataFrame, error) {
	vals, missing, err := stringValues(df, passenger.ColEmbarked)
	if err != nil {
		return df, err
	}
	filled, filledMissing, fill, n, err := ImputeMode(passenger.ColEmbarked, vals, missing, passenger.DefaultEmbarked)
	if err != nil {
		return df, err
	}
	summary.EmbarkedFill = fill
	summary.EmbarkedFilled = n
	return mutate(df, stringSeries(passenger.ColEmbarked, filled, filledMissing))
}
