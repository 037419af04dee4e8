// Package filestore persists the processed passenger table to disk.
package filestore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"titanicprep/adapters/excel"
	"titanicprep/domain/artifacts"
	"titanicprep/domain/core"
	"titanicprep/domain/passenger"
	"titanicprep/internal"
	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// Output file names inside the output directory
const (
	CleanedCSVName    = "cleaned.csv"
	FeatureMatrixName = "final_features.npy"
	WorkbookName      = "cleaned.xlsx"
)

// Options configures a Store
type Options struct {
	OutputDir  string
	ExportXLSX bool
	RunID      core.RunID
	Console    io.Writer
	Logger     *internal.Logger
}

// Store writes cleaned.csv and final_features.npy (plus an optional workbook)
type Store struct {
	outputDir  string
	exportXLSX bool
	runID      core.RunID
	console    io.Writer
	logger     *internal.Logger
}

// NewStore creates a store. Console defaults to stdout.
func NewStore(opts Options) *Store {
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = internal.NopLogger()
	}
	return &Store{
		outputDir:  opts.OutputDir,
		exportXLSX: opts.ExportXLSX,
		runID:      opts.RunID,
		console:    opts.Console,
		logger:     opts.Logger,
	}
}

// Save writes every artifact for df and returns what was written
func (s *Store) Save(ctx context.Context, df dataframe.DataFrame) (*artifacts.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, errors.IOError("create output directory", err)
	}

	manifest := artifacts.NewManifest(s.runID, s.outputDir)

	csvPath := filepath.Join(s.outputDir, CleanedCSVName)
	if err := writeFileWith(csvPath, func(w io.Writer) error { return WriteCSV(w, df) }); err != nil {
		return nil, errors.IOError("write "+CleanedCSVName, err)
	}
	if err := s.record(manifest, artifacts.KindCleanedTable, csvPath, df.Nrow(), df.Names()); err != nil {
		return nil, err
	}

	features, names, err := FeatureMatrix(df)
	if err != nil {
		return nil, err
	}
	npyPath := filepath.Join(s.outputDir, FeatureMatrixName)
	if err := writeFileWith(npyPath, func(w io.Writer) error { return npyio.Write(w, features) }); err != nil {
		return nil, errors.IOError("write "+FeatureMatrixName, err)
	}
	rows, _ := features.Dims()
	if err := s.record(manifest, artifacts.KindFeatureMatrix, npyPath, rows, names); err != nil {
		return nil, err
	}

	if s.exportXLSX {
		xlsxPath := filepath.Join(s.outputDir, WorkbookName)
		if err := excel.WriteWorkbook(xlsxPath, df); err != nil {
			return nil, errors.IOError("write "+WorkbookName, err)
		}
		if err := s.record(manifest, artifacts.KindWorkbook, xlsxPath, df.Nrow(), df.Names()); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(s.console, "Preprocessing complete. Files saved to %s\n", s.outputDir)
	return manifest, nil
}

// FeatureMatrix converts every column except the label into a dense
// float64 matrix in table column order.
func FeatureMatrix(df dataframe.DataFrame) (*mat.Dense, []string, error) {
	var names []string
	for _, name := range df.Names() {
		if name != passenger.LabelColumn {
			names = append(names, name)
		}
	}

	rows, cols := df.Nrow(), len(names)
	if rows == 0 || cols == 0 {
		return nil, nil, errors.IOError("build feature matrix",
			fmt.Errorf("feature matrix would be empty (%d x %d)", rows, cols))
	}

	m := mat.NewDense(rows, cols, nil)
	for j, name := range names {
		for i, v := range df.Col(name).Float() {
			m.Set(i, j, v)
		}
	}
	return m, names, nil
}

// WriteCSV writes df with a header row. Floats use the shortest
// representation that round-trips; missing cells are left empty.
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for i, n := range names {
		cols[i] = df.Col(n)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for r := 0; r < df.Nrow(); r++ {
		for c, s := range cols {
			e := s.Elem(r)
			switch {
			case e.IsNA():
				row[c] = ""
			case s.Type() == series.Float:
				row[c] = strconv.FormatFloat(e.Float(), 'g', -1, 64)
			default:
				row[c] = e.String()
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Store) record(m *artifacts.Manifest, kind artifacts.Kind, path string, rows int, columns []string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.IOError("hash "+filepath.Base(path), err)
	}
	defer f.Close()

	sum, err := core.HashReader(f)
	if err != nil {
		return errors.IOError("hash "+filepath.Base(path), err)
	}

	m.Add(artifacts.File{Kind: kind, Path: path, Rows: rows, Columns: columns, SHA256: sum})
	s.logger.Info("[Store] wrote %s (%d rows, %d columns)", path, rows, len(columns))
	return nil
}

func writeFileWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
