package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"watchfeed/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sku TEXT NOT NULL,
  url TEXT NOT NULL,
  subtitle TEXT,
  description TEXT,
  watch TEXT,
  dial TEXT,
  caseText TEXT,
  gemsetting TEXT,
  strap TEXT,
  collection TEXT,
  genderHint TEXT,
  caliber TEXT,
  status TEXT NOT NULL DEFAULT 'scraped',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(sku, url)
);
CREATE INDEX IF NOT EXISTS idx_records_sku ON records(sku);
CREATE INDEX IF NOT EXISTS idx_records_status ON records(status);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  schemaName TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertRecords(records []internal.RawRecord) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO records (
  sku, url, subtitle, description, watch, dial, caseText,
  gemsetting, strap, collection, genderHint, caliber, status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'scraped')
ON CONFLICT(sku, url) DO UPDATE SET
  subtitle=excluded.subtitle,
  description=excluded.description,
  watch=excluded.watch,
  dial=excluded.dial,
  caseText=excluded.caseText,
  gemsetting=excluded.gemsetting,
  strap=excluded.strap,
  collection=excluded.collection,
  genderHint=excluded.genderHint,
  caliber=excluded.caliber,
  status='scraped',
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	stored := 0
	for _, r := range records {
		if r.SKU == "" && r.URL == "" {
			continue
		}
		if _, err := stmt.Exec(
			r.SKU, r.URL, r.Subtitle, r.Description, r.Watch, r.Dial, r.Case,
			r.Gemsetting, r.Strap, r.Collection, r.GenderHint, r.Caliber,
		); err != nil {
			return stored, err
		}
		stored++
	}

	return stored, tx.Commit()
}

const recordColumns = `
  id, sku, url, subtitle, description, watch, dial, caseText,
  gemsetting, strap, collection, genderHint, caliber, status, createdAt, updatedAt`

func (d *DB) ListRecords() ([]internal.RecordRow, error) {
	rows, err := d.conn.Query(`SELECT` + recordColumns + ` FROM records ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecordRows(rows)
}

func (d *DB) ListRecordsByStatus(status internal.RecordStatus, limit int) ([]internal.RecordRow, error) {
	rows, err := d.conn.Query(`SELECT`+recordColumns+` FROM records WHERE status = ? ORDER BY id ASC LIMIT ?`, string(status), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecordRows(rows)
}

func (d *DB) GetRecordBySKU(sku string) (*internal.RecordRow, error) {
	row := d.conn.QueryRow(`SELECT`+recordColumns+` FROM records WHERE sku = ? ORDER BY id ASC LIMIT 1`, sku)
	rec, err := scanRecordRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *DB) UpdateRecordStatus(id int, status internal.RecordStatus) error {
	_, err := d.conn.Exec(`UPDATE records SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, string(status), id)
	return err
}

func (d *DB) ListSKUs() ([]string, error) {
	rows, err := d.conn.Query(`SELECT DISTINCT sku FROM records WHERE sku != '' ORDER BY sku ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, err
		}
		out = append(out, sku)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(traceID, schemaName string, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, schemaName, timingsJson, countsJson) VALUES (?, ?, ?, ?)`,
		traceID, schemaName, string(timingsJSON), string(countsJSON))
	return err
}

// RunRow is one recorded conversion run.
type RunRow struct {
	ID          int
	TraceID     string
	SchemaName  string
	TimingsJSON string
	CountsJSON  string
	CreatedAt   string
}

func (d *DB) ListRuns() ([]RunRow, error) {
	rows, err := d.conn.Query(`SELECT id, traceId, schemaName, timingsJson, countsJson, createdAt FROM runs ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.TraceID, &r.SchemaName, &r.TimingsJSON, &r.CountsJSON, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecordRow(scanner rowScanner) (internal.RecordRow, error) {
	var row internal.RecordRow
	err := scanner.Scan(
		&row.ID, &row.Record.SKU, &row.Record.URL, &row.Record.Subtitle,
		&row.Record.Description, &row.Record.Watch, &row.Record.Dial, &row.Record.Case,
		&row.Record.Gemsetting, &row.Record.Strap, &row.Record.Collection,
		&row.Record.GenderHint, &row.Record.Caliber, &row.Status,
		&row.CreatedAt, &row.UpdatedAt,
	)
	return row, err
}

func scanRecordRows(rows *sql.Rows) ([]internal.RecordRow, error) {
	var out []internal.RecordRow
	for rows.Next() {
		row, err := scanRecordRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
