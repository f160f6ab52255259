package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"watchfeed/internal"
)

// ReadRawRecords loads raw scraped records from a CSV or XLSX file, picking
// the parser by extension.
func ReadRawRecords(path string) ([]internal.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadRawRecordsFromCSV(path)
	case ".xlsx", ".xls":
		return ReadRawRecordsFromXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported input file: %s", path)
	}
}

func ReadRawRecordsFromCSV(path string) ([]internal.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowsToRecords(rows), nil
}

func ReadRawRecordsFromXLSX(path string) ([]internal.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowsToRecords(rows), nil
}

var rawFieldProbes = map[string][]string{
	"sku":        {"sku", "ref"},
	"subtitle":   {"subtitle"},
	"desc":       {"description"},
	"watch":      {"watch"},
	"dial":       {"dial"},
	"case":       {"case"},
	"gemsetting": {"gemsetting", "gem"},
	"strap":      {"strap", "bracelet"},
	"collection": {"collection"},
	"gender":     {"gender"},
	"caliber":    {"caliber", "movement"},
	"url":        {"url", "link"},
}

func rowsToRecords(rows [][]string) []internal.RawRecord {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
	}

	idx := map[string]int{}
	for field, probes := range rawFieldProbes {
		idx[field] = findFieldIndex(headers, probes)
	}

	out := make([]internal.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := internal.RawRecord{
			SKU:         pickField(row, idx["sku"]),
			Subtitle:    pickField(row, idx["subtitle"]),
			Description: pickField(row, idx["desc"]),
			Watch:       pickField(row, idx["watch"]),
			Dial:        pickField(row, idx["dial"]),
			Case:        pickField(row, idx["case"]),
			Gemsetting:  pickField(row, idx["gemsetting"]),
			Strap:       pickField(row, idx["strap"]),
			Collection:  pickField(row, idx["collection"]),
			GenderHint:  pickField(row, idx["gender"]),
			Caliber:     pickField(row, idx["caliber"]),
			URL:         pickField(row, idx["url"]),
		}
		if rec.SKU == "" && rec.Description == "" && rec.Case == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// "watch" must not claim the "watch movement" column, so exact header
// equality is preferred over containment.
func findFieldIndex(headers []string, probes []string) int {
	for _, probe := range probes {
		for i, h := range headers {
			if h == probe {
				return i
			}
		}
	}
	for _, probe := range probes {
		for i, h := range headers {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
