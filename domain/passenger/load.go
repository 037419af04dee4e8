package passenger

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// MissingTokens are the raw cell values read as missing. The list matches
// the default missing-value set of pandas read_csv.
var MissingTokens = []string{
	"",
	"#N/A", "#N/A N/A", "#NA",
	"-1.#IND", "-1.#QNAN", "1.#IND", "1.#QNAN",
	"-NaN", "-nan", "NaN", "nan",
	"<NA>", "N/A", "n/a", "NA",
	"NULL", "null", "None",
}

// ColumnTypes pins the load type of every known column. Fare stays text so
// the cleaner can coerce it; unknown extra columns are type-detected.
var ColumnTypes = map[string]series.Type{
	ColPassengerID: series.Int,
	ColSurvived:    series.Int,
	ColPclass:      series.Int,
	ColName:        series.String,
	ColSex:         series.String,
	ColAge:         series.Float,
	ColSibSp:       series.Int,
	ColParch:       series.Int,
	ColTicket:      series.String,
	ColFare:        series.String,
	ColCabin:       series.String,
	ColEmbarked:    series.String,
}

// LoadOptions returns the gota options every passenger table is read with
func LoadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
		dataframe.WithTypes(ColumnTypes),
	}
}

// FromRecords builds a passenger table from a header row plus data rows
func FromRecords(records [][]string) dataframe.DataFrame {
	return dataframe.LoadRecords(records, LoadOptions()...)
}
