package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"watchfeed/internal"
)

func ExportRowsToXLSX(columns []string, rows []internal.OutputRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, col)
	}

	for i, row := range rows {
		r := i + 2
		for j, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(j+1, r)
			_ = f.SetCellValue(sheet, cell, row[col])
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportRowsToCSV writes a UTF-8 CSV with a byte-order mark so spreadsheet
// applications pick the right encoding.
func ExportRowsToCSV(columns []string, rows []internal.OutputRow, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString("\uFEFF"); err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
