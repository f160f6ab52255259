package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"watchfeed/internal"
)

func TestExportRowsToCSV(t *testing.T) {
	columns := []string{"Title", "Ref Number"}
	rows := []internal.OutputRow{
		{"Title": "Patek Philippe Nautilus Watch", "Ref Number": "5711/1A-010"},
		{"Title": "Patek Philippe Calatrava Watch", "Ref Number": "6119G-001"},
	}
	path := filepath.Join(t.TempDir(), "out", "catalog.csv")

	if err := ExportRowsToCSV(columns, rows, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "\uFEFF") {
		t.Fatal("missing byte-order mark")
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
	got, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("lines = %d, want 3", len(got))
	}
	if got[0][0] != "Title" || got[0][1] != "Ref Number" {
		t.Fatalf("header = %v", got[0])
	}
	if got[1][1] != "5711/1A-010" || got[2][1] != "6119G-001" {
		t.Fatalf("rows = %v", got[1:])
	}
}

func TestExportRowsToXLSX(t *testing.T) {
	columns := []string{"Title", "Ref Number"}
	rows := []internal.OutputRow{
		{"Title": "Patek Philippe Nautilus Watch", "Ref Number": "5711/1A-010"},
	}
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

	if err := ExportRowsToXLSX(columns, rows, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0][0] != "Title" || got[1][1] != "5711/1A-010" {
		t.Fatalf("content = %v", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "raw.csv")

	raw := "\uFEFFSKU,Description,Watch,Dial,Case,Gemsetting,Strap,Collection,Gender,Caliber,URL\n" +
		"5327G-001,Perpetual calendar.,Self-winding,Blue dial.,Diameter: 39 mm,,Navy blue alligator strap,grand-complications,Men,Caliber 240 Q,https://example.com/a\n" +
		",,,,,,,,,,\n"
	if err := os.WriteFile(csvPath, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records, err := ReadRawRecords(csvPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.SKU != "5327G-001" || rec.Collection != "grand-complications" || rec.Caliber != "Caliber 240 Q" {
		t.Fatalf("record = %+v", rec)
	}

	rows := ConvertBatch(records, SchemaCatalog, testMapperOptions)
	if rows[0]["Case Size(mm)"] != "39.0 mm" || rows[0]["Strap Color"] != "Navy Blue" {
		t.Fatalf("converted row = %+v", rows[0])
	}
}

func TestReadRawRecordsUnsupported(t *testing.T) {
	if _, err := ReadRawRecords("raw.json"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestReadRawRecordsFromXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.xlsx")

	columns := []string{"SKU", "Case", "Collection"}
	rows := []internal.OutputRow{
		{"SKU": "5711/1A-010", "Case": "Diameter: 41 mm", "Collection": "nautilus"},
	}
	if err := ExportRowsToXLSX(columns, rows, path); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records, err := ReadRawRecords(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 || records[0].SKU != "5711/1A-010" || records[0].Collection != "nautilus" {
		t.Fatalf("records = %+v", records)
	}
}
