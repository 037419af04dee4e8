// Package excel reads passenger tables from CSV or XLSX files and exports
// tables back to XLSX workbooks.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"titanicprep/domain/passenger"
	"titanicprep/internal"
	"titanicprep/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet read from and written to
const SheetName = "Sheet1"

// DataReader handles reading Excel and CSV files
type DataReader struct {
	logger *internal.Logger
}

// NewDataReader creates a reader; a nil logger discards output
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &DataReader{logger: logger}
}

// Load reads path into a passenger table. Files ending in .xlsx are read
// from Sheet1; everything else is parsed as comma separated text. A missing
// file or malformed content is a PARSE_ERROR.
func (r *DataReader) Load(ctx context.Context, path string) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	start := time.Now()
	records, err := r.ReadRecords(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df := passenger.FromRecords(records)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.ParseError(path, df.Err)
	}

	r.logger.Info("[DataReader] loaded %s: %d rows x %d columns in %.2fms",
		filepath.Base(path), df.Nrow(), df.Ncol(), float64(time.Since(start).Nanoseconds())/1e6)
	return df, nil
}

// ReadRecords returns the raw header and data rows of path
func (r *DataReader) ReadRecords(path string) ([][]string, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readExcelRecords(path)
	default:
		records, err = readCSVRecords(path)
	}
	if err != nil {
		return nil, errors.ParseError(path, err)
	}
	if len(records) == 0 {
		return nil, errors.ParseError(path, fmt.Errorf("no header row"))
	}
	return records, nil
}

func readCSVRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return records, nil
}

func readExcelRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return rows, nil
	}

	// GetRows drops trailing empty cells; pad back to the header width
	width := len(rows[0])
	for i, row := range rows {
		if len(row) > width {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), width)
		}
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows, nil
}
