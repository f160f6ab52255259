package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"watchfeed/internal"
	"watchfeed/internal/config"
	"watchfeed/internal/storage"
	"watchfeed/internal/util"
)

type Schema string

const (
	SchemaCatalog  Schema = "catalog"
	SchemaCommerce Schema = "commerce"
)

// ColumnsFor resolves the output column order for a schema.
func ColumnsFor(schema Schema, opts MapperOptions) ([]string, error) {
	switch schema {
	case SchemaCatalog:
		return CatalogColumns, nil
	case SchemaCommerce:
		return CommerceColumns(opts.Namespace), nil
	default:
		return nil, fmt.Errorf("unsupported schema: %s", schema)
	}
}

// SanitizeRecord runs every raw field through the text sanitizer. The strap
// field is the concatenation of strap and bracelet copy upstream, so nothing
// here needs to distinguish them.
func SanitizeRecord(rec internal.RawRecord) internal.RawRecord {
	return internal.RawRecord{
		SKU:         util.Sanitize(rec.SKU),
		Subtitle:    util.Sanitize(rec.Subtitle),
		Description: util.Sanitize(rec.Description),
		Watch:       util.Sanitize(rec.Watch),
		Dial:        util.Sanitize(rec.Dial),
		Case:        util.Sanitize(rec.Case),
		Gemsetting:  util.Sanitize(rec.Gemsetting),
		Strap:       util.Sanitize(rec.Strap),
		Collection:  util.Sanitize(rec.Collection),
		GenderHint:  util.Sanitize(rec.GenderHint),
		Caliber:     util.Sanitize(rec.Caliber),
		URL:         util.Sanitize(rec.URL),
	}
}

// ConvertRecord takes one raw record through sanitize, extract, derive and
// the selected schema mapper. It never fails: malformed input degrades to a
// sparse row.
func ConvertRecord(rec internal.RawRecord, schema Schema, opts MapperOptions) internal.OutputRow {
	clean := SanitizeRecord(rec)
	attrs := ExtractAttributes(clean)
	derived := BuildDerived(clean, attrs, opts)
	if schema == SchemaCommerce {
		return BuildCommerceRow(clean, attrs, derived, opts)
	}
	return BuildCatalogRow(clean, attrs, derived, opts)
}

// ConvertBatch converts records one by one, preserving input order. Records
// share no state, so a failure mode in one cannot leak into another.
func ConvertBatch(records []internal.RawRecord, schema Schema, opts MapperOptions) []internal.OutputRow {
	rows := make([]internal.OutputRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ConvertRecord(rec, schema, opts))
	}
	return rows
}

// ProcessingService converts stored raw records and tracks run statistics.
type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

func (s *ProcessingService) Options() MapperOptions {
	return MapperOptions{
		Brand:     s.cfg.BrandName,
		Category:  s.cfg.CategoryName,
		Namespace: s.cfg.MetafieldPrefix,
	}
}

// ConvertStored loads every stored record, converts it with the selected
// schema and records a run summary. Rows come back in storage order.
func (s *ProcessingService) ConvertStored(schema Schema) ([]string, []internal.OutputRow, error) {
	start := time.Now()
	opts := s.Options()

	columns, err := ColumnsFor(schema, opts)
	if err != nil {
		return nil, nil, err
	}

	stored, err := s.db.ListRecords()
	if err != nil {
		return nil, nil, err
	}

	rows := make([]internal.OutputRow, 0, len(stored))
	sparse := 0
	for _, r := range stored {
		row := ConvertRecord(r.Record, schema, opts)
		if row["Title"] != "" && isSparse(row, schema, opts) {
			sparse++
		}
		rows = append(rows, row)
		// Bookkeeping failures must not lose converted rows; log and move on.
		if err := s.db.UpdateRecordStatus(r.ID, internal.StatusConverted); err != nil {
			fmt.Printf("convert status update failed id=%d err=%v\n", r.ID, err)
		}
	}

	if err := s.db.InsertRun(traceID(), string(schema),
		map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
		map[string]int{"records": len(stored), "sparse": sparse}); err != nil {
		fmt.Printf("convert run insert failed err=%v\n", err)
	}

	return columns, rows, nil
}

// isSparse flags rows where every headline attribute came back empty, the
// usual sign of a page layout the extractors have not seen.
func isSparse(row internal.OutputRow, schema Schema, opts MapperOptions) bool {
	if schema == SchemaCommerce {
		ns := "Metafield: " + opts.Namespace
		return row[ns+".case_material [single_line_text_field]"] == "" &&
			row[ns+".case_size [single_line_text_field]"] == "" &&
			row[ns+".movement_type [single_line_text_field]"] == ""
	}
	return row["Material"] == "" && row["Case Size(mm)"] == "" && row["Movement Type"] == ""
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
