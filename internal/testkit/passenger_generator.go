// Package testkit generates synthetic passenger manifests for tests.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"titanicprep/domain/passenger"
)

// PassengerGeneratorConfig configures the passenger data generator
type PassengerGeneratorConfig struct {
	PassengerCount      int     `json:"passenger_count"`
	MissingAgeRate      float64 `json:"missing_age_rate"`
	MissingEmbarkedRate float64 `json:"missing_embarked_rate"`
	BadFareRate         float64 `json:"bad_fare_rate"`
	DuplicateRate       float64 `json:"duplicate_rate"`
	Seed                int64   `json:"seed"`
}

// DefaultPassengerConfig returns defaults roughly shaped like the real manifest
func DefaultPassengerConfig() PassengerGeneratorConfig {
	return PassengerGeneratorConfig{
		PassengerCount:      200,
		MissingAgeRate:      0.2,
		MissingEmbarkedRate: 0.01,
		BadFareRate:         0.02,
		DuplicateRate:       0.03,
		Seed:                42,
	}
}

// PassengerGenerator produces deterministic passenger rows for a seed
type PassengerGenerator struct {
	config PassengerGeneratorConfig
	rng    *rand.Rand
}

// NewPassengerGenerator creates a new passenger generator
func NewPassengerGenerator(config PassengerGeneratorConfig) *PassengerGenerator {
	return &PassengerGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	surnames    = []string{"Braund", "Cumings", "Heikkinen", "Futrelle", "Allen", "Moran", "McCarthy", "Palsson", "Johnson", "Nasser", "Sandstrom", "Bonnell"}
	maleFirst   = []string{"Owen", "William", "James", "Timothy", "Gosta", "John", "Charles"}
	femaleFirst = []string{"Laina", "Elisabeth", "Marguerite", "Florence", "Lily", "Adele", "Mary"}
	embarkPorts = []string{"S", "S", "S", "S", "S", "S", "C", "C", "Q"}
	rareTitles  = []string{"Dr", "Rev", "Col", "Major", "Capt"}
)

// GenerateRecords returns a header row followed by the generated passengers.
// Duplicates are exact copies of an earlier row.
func (g *PassengerGenerator) GenerateRecords() [][]string {
	records := [][]string{append([]string(nil), passenger.RawColumns...)}

	for i := 0; i < g.config.PassengerCount; i++ {
		if i > 0 && g.rng.Float64() < g.config.DuplicateRate {
			prev := records[1+g.rng.Intn(len(records)-1)]
			records = append(records, append([]string(nil), prev...))
			continue
		}
		records = append(records, g.passengerRow(i+1))
	}
	return records
}

func (g *PassengerGenerator) passengerRow(id int) []string {
	pclass := 1 + g.rng.Intn(3)
	female := g.rng.Float64() < 0.35
	sex := "male"
	if female {
		sex = "female"
	}

	age := g.age(pclass)
	sibSp := g.poissonish(0.5)
	parch := g.poissonish(0.4)

	var ageCell string
	if g.rng.Float64() >= g.config.MissingAgeRate {
		ageCell = strconv.FormatFloat(age, 'f', -1, 64)
	}

	fareCell := strconv.FormatFloat(g.fare(pclass), 'f', 4, 64)
	if g.rng.Float64() < g.config.BadFareRate {
		fareCell = "N/A"
	}

	var cabin string
	if pclass == 1 && g.rng.Float64() < 0.8 {
		cabin = fmt.Sprintf("%c%d", 'A'+rune(g.rng.Intn(5)), 1+g.rng.Intn(120))
	}

	embarked := embarkPorts[g.rng.Intn(len(embarkPorts))]
	if g.rng.Float64() < g.config.MissingEmbarkedRate {
		embarked = ""
	}

	survived := 0
	if g.rng.Float64() < survivalRate(pclass, female) {
		survived = 1
	}

	return []string{
		strconv.Itoa(id),
		strconv.Itoa(survived),
		strconv.Itoa(pclass),
		g.name(female, age),
		sex,
		ageCell,
		strconv.Itoa(sibSp),
		strconv.Itoa(parch),
		fmt.Sprintf("%d%04d", pclass, g.rng.Intn(10000)),
		fareCell,
		cabin,
		embarked,
	}
}

func (g *PassengerGenerator) name(female bool, age float64) string {
	surname := surnames[g.rng.Intn(len(surnames))]
	var title, first string
	switch {
	case g.rng.Float64() < 0.04:
		title = rareTitles[g.rng.Intn(len(rareTitles))]
		first = maleFirst[g.rng.Intn(len(maleFirst))]
	case female:
		title = "Miss"
		if age >= 21 && g.rng.Float64() < 0.6 {
			title = "Mrs"
		}
		first = femaleFirst[g.rng.Intn(len(femaleFirst))]
	default:
		title = "Mr"
		if age < 13 {
			title = "Master"
		}
		first = maleFirst[g.rng.Intn(len(maleFirst))]
	}
	return fmt.Sprintf("%s, %s. %s", surname, title, first)
}

// age draws from a class-dependent normal, rounded to half years
func (g *PassengerGenerator) age(pclass int) float64 {
	mean := []float64{38, 30, 25}[pclass-1]
	a := mean + g.rng.NormFloat64()*13
	a = math.Max(0.5, math.Min(80, a))
	return math.Round(a*2) / 2
}

// fare draws from a class-dependent log-normal
func (g *PassengerGenerator) fare(pclass int) float64 {
	mu := []float64{4.2, 2.9, 2.2}[pclass-1]
	return math.Exp(mu + g.rng.NormFloat64()*0.6)
}

func (g *PassengerGenerator) poissonish(lambda float64) int {
	n := 0
	for g.rng.Float64() < lambda && n < 8 {
		n++
	}
	return n
}

func survivalRate(pclass int, female bool) float64 {
	base := []float64{0.63, 0.47, 0.24}[pclass-1]
	if female {
		return math.Min(0.97, base+0.45)
	}
	return base * 0.5
}

// WriteCSV generates the records and writes them to path
func (g *PassengerGenerator) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(g.GenerateRecords()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
