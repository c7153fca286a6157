package erp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
)

// CSVDir serves sheets from per-sheet CSV exports: <dir>/<sheet>.csv.
// Warehouses that cannot share the live workbook drop CSV dumps instead;
// the loaded tables behave identically to workbook sheets.
type CSVDir struct {
	dir string
}

// NewCSVDir points at the export directory.
func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{dir: dir}
}

// LoadSheet reads <dir>/<name>.csv and normalizes it like a workbook
// sheet. Failures wrap ErrSheetUnavailable.
func (c *CSVDir) LoadSheet(name string, cols Columns) (*Table, error) {
	path := filepath.Join(c.dir, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSheetUnavailable, path, err)
	}
	defer f.Close()

	records, err := gocsv.CSVToMaps(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSheetUnavailable, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrSheetUnavailable, name)
	}

	certKey, internalKey, supplierKey, missing := resolveKeys(records[0], cols)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: sheet %s missing columns %s",
			ErrSheetUnavailable, name, strings.Join(missing, ", "))
	}

	table := NewTable(name)
	for _, rec := range records {
		table.Add(rec[certKey], rec[internalKey], rec[supplierKey])
	}
	return table, nil
}

// resolveKeys matches the configured column names against the actual
// CSV header keys, compared trimmed.
func resolveKeys(rec map[string]string, cols Columns) (certKey, internalKey, supplierKey string, missing []string) {
	for key := range rec {
		switch strings.TrimSpace(key) {
		case cols.CertLot:
			certKey = key
		case cols.InternalLot:
			internalKey = key
		case cols.Supplier:
			supplierKey = key
		}
	}
	if certKey == "" {
		missing = append(missing, cols.CertLot)
	}
	if internalKey == "" {
		missing = append(missing, cols.InternalLot)
	}
	if supplierKey == "" {
		missing = append(missing, cols.Supplier)
	}
	return certKey, internalKey, supplierKey, missing
}
