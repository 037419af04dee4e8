package app

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"titanicprep/adapters/excel"
	"titanicprep/adapters/filestore"
	"titanicprep/domain/artifacts"
	"titanicprep/domain/core"
	"titanicprep/internal"
	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// one duplicate, one missing Age, one missing Embarked (S is the sole mode)
// and one "N/A" Fare
const fixtureCSV = `PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked
1,0,3,"Braund, Mr. Owen Harris",male,22,1,0,A/5 21171,7.25,,S
2,1,1,"Cumings, Mrs. John Bradley (Florence Briggs Thayer)",female,38,1,0,PC 17599,71.2833,C85,C
3,1,3,"Heikkinen, Miss. Laina",female,,0,0,STON/O2. 3101282,N/A,,S
4,1,1,"Futrelle, Mrs. Jacques Heath (Lily May Peel)",female,35,1,0,113803,53.1,C123,
1,0,3,"Braund, Mr. Owen Harris",male,22,1,0,A/5 21171,7.25,,S
`

type harness struct {
	pipeline *Pipeline
	input    string
	outDir   string
	console  *bytes.Buffer
	logs     *bytes.Buffer
}

func newHarness(t *testing.T, level internal.LogLevel) *harness {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(input, []byte(fixtureCSV), 0o644))

	h := &harness{
		input:   input,
		outDir:  filepath.Join(dir, "output"),
		console: &bytes.Buffer{},
		logs:    &bytes.Buffer{},
	}
	logger := internal.NewLoggerTo(h.logs, level)
	runID := core.NewRunID()
	store := filestore.NewStore(filestore.Options{
		OutputDir: h.outDir,
		RunID:     runID,
		Console:   h.console,
		Logger:    logger,
	})
	h.pipeline = NewPipeline(runID, excel.NewDataReader(logger), store, logger)
	return h
}

func TestPipelineRunEndToEnd(t *testing.T) {
	h := newHarness(t, internal.LogLevelInfo)

	report, err := h.pipeline.Run(context.Background(), h.input)
	require.NoError(t, err)

	names := make([]string, len(report.Stages))
	for i, s := range report.Stages {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"load", "clean", "engineer", "encode"}, names)
	assert.Equal(t, 5, report.Stages[0].Rows)
	assert.Equal(t, 12, report.Stages[0].Columns)
	for _, s := range report.Stages[1:] {
		assert.Equal(t, 4, s.Rows, s.Name)
	}

	f, err := os.Open(filepath.Join(h.outDir, filestore.CleanedCSVName))
	require.NoError(t, err)
	defer f.Close()
	cleaned := dataframe.ReadCSV(f)
	require.NoError(t, cleaned.Err)
	assert.Equal(t, 4, cleaned.Nrow())
	for _, name := range cleaned.Names() {
		for i := 0; i < cleaned.Nrow(); i++ {
			assert.False(t, cleaned.Col(name).Elem(i).IsNA(), "%s row %d", name, i)
		}
	}

	npy, err := os.Open(filepath.Join(h.outDir, filestore.FeatureMatrixName))
	require.NoError(t, err)
	defer npy.Close()
	var m mat.Dense
	require.NoError(t, npyio.Read(npy, &m))
	rows, cols := m.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, cleaned.Ncol()-1, cols)
	assert.Equal(t, 17, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.False(t, math.IsNaN(m.At(i, j)))
		}
	}

	table, ok := report.Manifest.Find(artifacts.KindCleanedTable)
	require.True(t, ok)
	assert.NotContains(t, table.Columns, "Cabin")
	assert.NotContains(t, table.Columns, "PassengerId")
	assert.Contains(t, table.Columns, "Embarked_S")
	assert.NotContains(t, table.Columns, "Embarked_")

	assert.Equal(t, 1, strings.Count(h.console.String(), "\n"))
	assert.Equal(t, report.RunID, report.Manifest.RunID)
}

func TestPipelineRunNATokenEmbarkedIsImputed(t *testing.T) {
	h := newHarness(t, internal.LogLevelInfo)
	input := filepath.Join(t.TempDir(), "na.csv")
	require.NoError(t, os.WriteFile(input, []byte(`PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked
1,0,3,"A, Mr. B",male,22,0,0,X,7.25,,S
2,1,1,"C, Mrs. D",female,38,1,0,Y,71.2833,C85,S
3,1,3,"E, Miss. F",female,26,0,0,Z,7.925,,N/A
4,1,1,"G, Mrs. H",female,35,1,0,W,53.1,C123,C
`), 0o644))

	report, err := h.pipeline.Run(context.Background(), input)
	require.NoError(t, err)

	table, ok := report.Manifest.Find(artifacts.KindCleanedTable)
	require.True(t, ok)
	assert.NotContains(t, table.Columns, "Embarked_N/A")
	assert.Contains(t, table.Columns, "Embarked_C")
	assert.Contains(t, table.Columns, "Embarked_S")

	f, err := os.Open(table.Path)
	require.NoError(t, err)
	defer f.Close()
	cleaned := dataframe.ReadCSV(f)
	require.NoError(t, cleaned.Err)
	assert.Equal(t, []float64{1, 1, 1, 0}, cleaned.Col("Embarked_S").Float())
}

func TestPipelineRunDebugProfiles(t *testing.T) {
	h := newHarness(t, internal.LogLevelDebug)

	_, err := h.pipeline.Run(context.Background(), h.input)
	require.NoError(t, err)

	logs := h.logs.String()
	assert.Contains(t, logs, "[DEBUG] [Pipeline] clean: Age")
	assert.Contains(t, logs, "[DEBUG] [Pipeline] encode: Fare")
}

func TestPipelineRunMissingInput(t *testing.T) {
	h := newHarness(t, internal.LogLevelInfo)

	_, err := h.pipeline.Run(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeParseError))
	assert.Empty(t, h.console.String())

	_, statErr := os.Stat(h.outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipelineRunMissingColumn(t *testing.T) {
	h := newHarness(t, internal.LogLevelInfo)
	input := filepath.Join(t.TempDir(), "narrow.csv")
	require.NoError(t, os.WriteFile(input, []byte("PassengerId,Name\n1,\"Braund, Mr. Owen Harris\"\n"), 0o644))

	_, err := h.pipeline.Run(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeColumnNotFound))
}

func TestPipelineRunCancelled(t *testing.T) {
	h := newHarness(t, internal.LogLevelInfo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.pipeline.Run(ctx, h.input)
	assert.ErrorIs(t, err, context.Canceled)
}
