package excel

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes df to path as a single-sheet workbook with a header
// row. Numeric cells are stored as numbers, missing cells are left empty.
func WriteWorkbook(path string, df dataframe.DataFrame) error {
	f := excelize.NewFile()
	defer f.Close()

	names := df.Names()
	header := make([]interface{}, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cols := make([]series.Series, len(names))
	for i, n := range names {
		cols[i] = df.Col(n)
	}
	for r := 0; r < df.Nrow(); r++ {
		row := make([]interface{}, len(cols))
		for c, s := range cols {
			e := s.Elem(r)
			switch {
			case e.IsNA():
				row[c] = nil
			case s.Type() == series.Int || s.Type() == series.Float:
				row[c] = e.Float()
			default:
				row[c] = e.String()
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
