// Package coercer converts raw cell text to numbers the way a lenient
// to-numeric pass does: anything that does not parse becomes missing.
package coercer

import (
	"math"
	"strconv"
	"strings"

	"titanicprep/domain/passenger"

	"github.com/go-gota/gota/series"
)

// CoercionConfig defines which raw tokens count as missing
type CoercionConfig struct {
	MissingTokens []string `json:"missing_tokens"`
	TrimSpace     bool     `json:"trim_space"`
}

// DefaultCoercionConfig returns the tokens the loader also treats as NA
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingTokens: passenger.MissingTokens,
		TrimSpace:     true,
	}
}

// Stats counts what happened to each value of a coerced column
type Stats struct {
	Total   int `json:"total"`
	Parsed  int `json:"parsed"`
	Missing int `json:"missing"` // already missing before coercion
	Failed  int `json:"failed"`  // present but unparseable, now missing
}

// NumericCoercer handles deterministic string to float coercion
type NumericCoercer struct {
	config  CoercionConfig
	missing map[string]struct{}
}

// NewNumericCoercer creates a coercer with the given config
func NewNumericCoercer(config CoercionConfig) *NumericCoercer {
	missing := make(map[string]struct{}, len(config.MissingTokens))
	for _, tok := range config.MissingTokens {
		missing[tok] = struct{}{}
	}
	return &NumericCoercer{config: config, missing: missing}
}

// IsMissing reports whether raw is one of the configured missing tokens
func (c *NumericCoercer) IsMissing(raw string) bool {
	if c.config.TrimSpace {
		raw = strings.TrimSpace(raw)
	}
	_, ok := c.missing[raw]
	return ok
}

// ParseFloat parses raw as a finite or infinite float; NaN and garbage fail
func (c *NumericCoercer) ParseFloat(raw string) (float64, bool) {
	if c.IsMissing(raw) {
		return math.NaN(), false
	}
	if c.config.TrimSpace {
		raw = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return math.NaN(), false
	}
	return v, true
}

// CoerceValues converts raw values, returning NaN for missing or unparseable entries
func (c *NumericCoercer) CoerceValues(raw []string) ([]float64, Stats) {
	out := make([]float64, len(raw))
	stats := Stats{Total: len(raw)}
	for i, r := range raw {
		if c.IsMissing(r) {
			out[i] = math.NaN()
			stats.Missing++
			continue
		}
		v, ok := c.ParseFloat(r)
		if !ok {
			stats.Failed++
		} else {
			stats.Parsed++
		}
		out[i] = v
	}
	return out, stats
}

// CoerceSeries converts any gota series to float values. NA elements stay
// missing; numeric series are read directly.
func (c *NumericCoercer) CoerceSeries(s series.Series) ([]float64, Stats) {
	if s.Type() == series.Float || s.Type() == series.Int {
		vals := s.Float()
		stats := Stats{Total: len(vals)}
		for i, v := range vals {
			if s.Elem(i).IsNA() || math.IsNaN(v) {
				vals[i] = math.NaN()
				stats.Missing++
				continue
			}
			stats.Parsed++
		}
		return vals, stats
	}

	raw := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			raw[i] = ""
			continue
		}
		raw[i] = e.String()
	}
	return c.CoerceValues(raw)
}
