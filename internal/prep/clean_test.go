package prep

import (
	"math"
	"testing"

	"titanicprep/domain/passenger"
	"titanicprep/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropDuplicatesIsIdempotent(t *testing.T) {
	df := table(t, sampleRows...)

	once, dropped, err := DropDuplicates(df)
	require.NoError(t, err)
	twice, droppedAgain, err := DropDuplicates(once)
	require.NoError(t, err)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, droppedAgain)
	assert.Equal(t, len(sampleRows)-1, once.Nrow())
	assert.Equal(t, once.Nrow(), twice.Nrow())
}

func TestDropDuplicatesTreatsMissingAsEqual(t *testing.T) {
	row := passengerRow{"1", "0", "3", "A, Mr. B", "male", "", "0", "0", "X", "", "", ""}
	df := table(t, row, row, passengerRow{"2", "0", "3", "A, Mr. B", "male", "", "0", "0", "X", "", "", ""})

	out, dropped, err := DropDuplicates(df)
	require.NoError(t, err)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, []float64{1, 2}, floatCol(t, out, passenger.ColPassengerID))
}

func TestDropDuplicatesComparesNumericTextByValue(t *testing.T) {
	tests := []struct {
		name        string
		thirdFare   string
		wantDropped int
	}{
		{"all fares numeric", "8.05", 1},
		{"missing fare keeps numeric comparison", "", 1},
		{"unparseable fare keeps text comparison", "free", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df := table(t,
				passengerRow{"1", "0", "3", "A, Mr. B", "male", "22", "1", "0", "X", "7.25", "", "S"},
				passengerRow{"1", "0", "3", "A, Mr. B", "male", "22", "1", "0", "X", "7.250", "", "S"},
				passengerRow{"2", "1", "1", "C, Mrs. D", "female", "38", "1", "0", "Y", tt.thirdFare, "", "C"},
			)

			out, dropped, err := DropDuplicates(df)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDropped, dropped)
			assert.Equal(t, 3-tt.wantDropped, out.Nrow())
		})
	}
}

func TestCleanDropsFareVariantDuplicates(t *testing.T) {
	df := table(t,
		passengerRow{"1", "0", "3", "A, Mr. B", "male", "22", "1", "0", "X", "7.25", "", "S"},
		passengerRow{"1", "0", "3", "A, Mr. B", "male", "22", "1", "0", "X", "7.250", "", "S"},
		passengerRow{"2", "1", "1", "C, Mrs. D", "female", "38", "1", "0", "Y", "71.2833", "", "C"},
	)

	out, summary, err := NewCleaner(nil).Clean(df)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Nrow())
	assert.Equal(t, 1, summary.DuplicatesDropped)
}

func TestCleanInvariants(t *testing.T) {
	df := table(t, sampleRows...)

	out, _, err := NewCleaner(nil).Clean(df)
	require.NoError(t, err)

	assert.Equal(t, len(sampleRows)-1, out.Nrow())
	assert.NotContains(t, out.Names(), passenger.ColCabin)
	assert.True(t, noneMissing(floatCol(t, out, passenger.ColAge)))
	assert.True(t, noneMissing(floatCol(t, out, passenger.ColFare)))
	assert.NotContains(t, strs(t, out, passenger.ColEmbarked), "<missing>")

	// input untouched
	assert.Contains(t, df.Names(), passenger.ColCabin)
	assert.Equal(t, len(sampleRows), df.Nrow())
}

func TestCleanCoercesUnparseableFare(t *testing.T) {
	df := table(t,
		passengerRow{"1", "0", "3", "A, Mr. B", "male", "20", "0", "0", "X", "10", "", "S"},
		passengerRow{"2", "0", "3", "C, Mr. D", "male", "30", "0", "0", "X", "free", "", "S"},
		passengerRow{"3", "0", "3", "E, Mr. F", "male", "40", "0", "0", "X", "20", "", "S"},
		passengerRow{"4", "0", "3", "G, Mr. H", "male", "50", "0", "0", "X", "40", "", "S"},
	)

	out, summary, err := NewCleaner(nil).Clean(df)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 20, 20, 40}, floatCol(t, out, passenger.ColFare))
	assert.Equal(t, 1, summary.FareUnparseable)
	assert.Equal(t, 1, summary.FareFilled)
}

func TestCleanSummaryPerCall(t *testing.T) {
	cleaner := NewCleaner(nil)

	_, first, err := cleaner.Clean(table(t, sampleRows...))
	require.NoError(t, err)
	_, second, err := cleaner.Clean(table(t, sampleRows[:3]...))
	require.NoError(t, err)

	assert.Equal(t, 1, first.DuplicatesDropped)
	assert.Equal(t, 1, first.FareFilled)
	assert.Equal(t, 0, second.DuplicatesDropped)
	assert.Equal(t, 0, second.FareFilled)
	assert.Equal(t, 0, second.AgeGroupFilled+second.AgeGlobalFilled)
}

func TestCleanGroupedAgeImputation(t *testing.T) {
	df := table(t,
		passengerRow{"1", "0", "1", "A, Mr. A", "male", "10", "0", "0", "X", "5", "", "S"},
		passengerRow{"2", "0", "1", "B, Mr. B", "male", "12", "0", "0", "X", "5", "", "S"},
		passengerRow{"3", "0", "1", "C, Mr. C", "male", "", "0", "0", "X", "5", "", "S"},
		passengerRow{"4", "0", "1", "D, Mr. D", "male", "", "0", "0", "X", "5", "", "S"},
		passengerRow{"5", "1", "3", "E, Mrs. E", "female", "60", "0", "0", "X", "5", "", "S"},
		passengerRow{"6", "1", "2", "F, Mrs. F", "female", "", "0", "0", "X", "5", "", "S"},
	)

	out, summary, err := NewCleaner(nil).Clean(df)
	require.NoError(t, err)

	// (1, male) median is 11. (2, female) has no observed age, so it takes
	// the median of the column after grouped filling: [10 12 11 11 60] -> 11,
	// not the pre-fill median of [10 12 60] which is 12.
	assert.Equal(t, []float64{10, 12, 11, 11, 60, 11}, floatCol(t, out, passenger.ColAge))
	assert.Equal(t, 2, summary.AgeGroupFilled)
	assert.Equal(t, 1, summary.AgeGlobalFilled)
}

func TestCleanEmbarkedMode(t *testing.T) {
	base := func(id, embarked string) passengerRow {
		return passengerRow{id, "0", "3", "A, Mr. B", "male", "20", "0", "0", "X", "5", "", embarked}
	}

	t.Run("single mode fills", func(t *testing.T) {
		df := table(t, base("1", "C"), base("2", "C"), base("3", "Q"), base("4", ""))

		out, _, err := NewCleaner(nil).Clean(df)
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "C", "Q", "C"}, strs(t, out, passenger.ColEmbarked))
	})

	t.Run("tie falls back to S", func(t *testing.T) {
		df := table(t, base("1", "C"), base("2", "Q"), base("3", "C"), base("4", "Q"), base("5", ""))

		out, _, err := NewCleaner(nil).Clean(df)
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "Q", "C", "Q", "S"}, strs(t, out, passenger.ColEmbarked))
	})

	t.Run("no observed value fails", func(t *testing.T) {
		df := table(t, base("1", ""), base("2", ""))

		_, _, err := NewCleaner(nil).Clean(df)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.CodeNoMode))
	})
}

func TestCleanMissingColumn(t *testing.T) {
	df := table(t, sampleRows[:3]...).Drop(passenger.ColCabin)
	require.NoError(t, df.Err)

	_, _, err := NewCleaner(nil).Clean(df)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeColumnNotFound))
}

func TestImputeGroupedMedianSkipsMissingKeys(t *testing.T) {
	vals := []float64{1, math.NaN(), 3, math.NaN()}
	keys := [][]string{{"a"}, {"a"}, {"b"}, {""}}

	res := ImputeGroupedMedian(vals, keys, []bool{false, false, false, true})

	assert.Equal(t, []float64{1, 1, 3, 1}, res.Values)
	assert.Equal(t, 1, res.GroupFilled)
	assert.Equal(t, 1, res.GlobalFilled)
}

func TestModes(t *testing.T) {
	assert.Equal(t, []string{"C", "Q"}, Modes([]string{"Q", "C", "S", "C", "Q"}, []bool{false, false, false, false, false}))
	assert.Equal(t, []string{"S"}, Modes([]string{"S", "", "S"}, []bool{false, true, false}))
	assert.Empty(t, Modes([]string{""}, []bool{true}))
}
