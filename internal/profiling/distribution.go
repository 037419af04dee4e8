package profiling

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnProfile summarizes one numeric column
type ColumnProfile struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// String renders the profile on one log line
func (p ColumnProfile) String() string {
	return fmt.Sprintf("%s n=%d missing=%d mean=%.3f sd=%.3f median=%.3f range=[%.3f, %.3f] skew=%.3f",
		p.Column, p.Count, p.Missing, p.Mean, p.StdDev, p.Median, p.Min, p.Max, p.Skewness)
}

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// AnalyzeDistribution profiles the non-missing values of data. Shape
// statistics need at least three (skew) or four (kurtosis) values and are
// zero otherwise.
func (da *DistributionAnalyzer) AnalyzeDistribution(column string, data []float64) (ColumnProfile, error) {
	profile := ColumnProfile{Column: column}

	values := make([]float64, 0, len(data))
	for _, v := range data {
		if math.IsNaN(v) {
			profile.Missing++
			continue
		}
		values = append(values, v)
	}
	profile.Count = len(values)
	if profile.Count == 0 {
		return profile, stats.ErrEmptyInput
	}

	var err error
	if profile.Mean, err = stats.Mean(values); err != nil {
		return profile, err
	}
	if profile.StdDev, err = stats.StandardDeviation(values); err != nil {
		return profile, err
	}
	if profile.Median, err = stats.Median(values); err != nil {
		return profile, err
	}
	if profile.Min, err = stats.Min(values); err != nil {
		return profile, err
	}
	if profile.Max, err = stats.Max(values); err != nil {
		return profile, err
	}

	if profile.StdDev > 0 {
		if len(values) >= 3 {
			profile.Skewness = stat.Skew(values, nil)
		}
		if len(values) >= 4 {
			profile.Kurtosis = stat.ExKurtosis(values, nil)
		}
	}
	return profile, nil
}

// ProfileColumns profiles the named columns of df; columns that are absent
// or hold no numeric value are skipped.
func (da *DistributionAnalyzer) ProfileColumns(df dataframe.DataFrame, columns ...string) []ColumnProfile {
	present := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		present[n] = true
	}

	profiles := make([]ColumnProfile, 0, len(columns))
	for _, name := range columns {
		if !present[name] {
			continue
		}
		s := df.Col(name)
		vals := s.Float()
		for i := range vals {
			if s.Elem(i).IsNA() {
				vals[i] = math.NaN()
			}
		}
		p, err := da.AnalyzeDistribution(name, vals)
		if err != nil {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles
}
