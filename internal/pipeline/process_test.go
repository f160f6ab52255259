package pipeline

import (
	"path/filepath"
	"strings"
	"testing"

	"watchfeed/internal"
	"watchfeed/internal/config"
	"watchfeed/internal/storage"
)

func TestColumnsFor(t *testing.T) {
	cols, err := ColumnsFor(SchemaCatalog, testMapperOptions)
	if err != nil {
		t.Fatalf("catalog columns: %v", err)
	}
	if len(cols) != len(CatalogColumns) {
		t.Fatalf("catalog columns = %d", len(cols))
	}

	cols, err = ColumnsFor(SchemaCommerce, testMapperOptions)
	if err != nil {
		t.Fatalf("commerce columns: %v", err)
	}
	if cols[0] != "Handle" {
		t.Fatalf("commerce first column = %q", cols[0])
	}

	if _, err := ColumnsFor(Schema("xml"), testMapperOptions); err == nil {
		t.Fatal("expected error for unknown schema")
	}
}

func TestConvertRecordSanitizes(t *testing.T) {
	rec := internal.RawRecord{
		SKU:        "5327G-001",
		Dial:       "<p>Blue dial.</p> Applied hour-markers.",
		Case:       "White gold case. DiameterÂ: 39 mm",
		Collection: "grand-complications",
	}
	row := ConvertRecord(rec, SchemaCatalog, testMapperOptions)

	if row["Dial Color"] != "Blue" {
		t.Fatalf("dial color = %q", row["Dial Color"])
	}
	if row["Case Size(mm)"] != "39.0 mm" {
		t.Fatalf("case size = %q", row["Case Size(mm)"])
	}
}

func TestConvertBatchPreservesOrder(t *testing.T) {
	records := []internal.RawRecord{
		{SKU: "5327G-001", Collection: "grand-complications"},
		{},
		{SKU: "5711/1A-010", Collection: "nautilus"},
	}
	rows := ConvertBatch(records, SchemaCatalog, testMapperOptions)

	if len(rows) != len(records) {
		t.Fatalf("got %d rows for %d records", len(rows), len(records))
	}
	if rows[0]["Ref Number"] != "5327G-001" || rows[2]["Ref Number"] != "5711/1A-010" {
		t.Fatalf("order not preserved: %q, %q", rows[0]["Ref Number"], rows[2]["Ref Number"])
	}
	if rows[1]["Gemstones"] != "No" {
		t.Fatalf("empty record gemstones = %q", rows[1]["Gemstones"])
	}
}

func TestConvertStored(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "watchfeed.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if _, err := db.UpsertRecords([]internal.RawRecord{testRecord()}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cfg := config.Config{
		BrandName:       "Patek Philippe",
		CategoryName:    "Watches",
		MetafieldPrefix: "specs",
	}
	svc := NewProcessingService(db, cfg)

	columns, rows, err := svc.ConvertStored(SchemaCommerce)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(columns) == 0 || len(rows) != 1 {
		t.Fatalf("columns = %d, rows = %d", len(columns), len(rows))
	}
	if rows[0]["Metafield: specs.case_material [single_line_text_field]"] != "White Gold" {
		t.Fatalf("case material = %q", rows[0]["Metafield: specs.case_material [single_line_text_field]"])
	}

	stored, err := db.ListRecordsByStatus(internal.StatusConverted, 10)
	if err != nil {
		t.Fatalf("list converted: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("converted records = %d", len(stored))
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].SchemaName != "commerce" {
		t.Fatalf("runs = %+v", runs)
	}
	if !strings.Contains(runs[0].CountsJSON, `"records":1`) {
		t.Fatalf("run counts = %q", runs[0].CountsJSON)
	}
}
