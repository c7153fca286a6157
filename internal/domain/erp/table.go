// Package erp resolves certificate lot codes against the shipment ledger.
//
// The ledger is partitioned into sheets (one per operating year) and
// queried in priority order, newest first. Sheets are loaded lazily,
// normalized once, and cached for the lifetime of the run.
package erp

import (
	"errors"
	"strings"
)

// ErrSheetUnavailable reports a sheet that is missing, unreadable, or
// lacks one of the required columns. It is local to that sheet: the
// resolver skips it and keeps searching the rest.
var ErrSheetUnavailable = errors.New("sheet unavailable")

// Columns maps the logical lookup fields onto sheet header names. The
// accessor never assumes fixed headers; warehouses rename them.
type Columns struct {
	CertLot     string // lot code as printed on the certificate
	InternalLot string // internal shipment code
	Supplier    string // supplier name
}

// Row is one shipment record.
type Row struct {
	CertLot     string
	InternalLot string
	Supplier    string
}

// Table is one loaded, normalized sheet. Immutable after load.
type Table struct {
	Sheet string

	byKey      map[string]Row
	byStripped map[string]Row // keys with leading zeros removed
	size       int
}

// NewTable creates an empty table for the named sheet.
func NewTable(sheet string) *Table {
	return &Table{
		Sheet:      sheet,
		byKey:      make(map[string]Row),
		byStripped: make(map[string]Row),
	}
}

// Add inserts one record, normalizing the key. On duplicate keys the
// first record wins, matching the row order of the source sheet.
func (t *Table) Add(certLot, internalLot, supplier string) {
	key := NormalizeKey(certLot)
	if key == "" {
		return
	}
	row := Row{
		CertLot:     key,
		InternalLot: strings.TrimSpace(internalLot),
		Supplier:    strings.TrimSpace(supplier),
	}
	if _, dup := t.byKey[key]; !dup {
		t.byKey[key] = row
		t.size++
	}
	stripped := strings.TrimLeft(key, "0")
	if _, dup := t.byStripped[stripped]; !dup {
		t.byStripped[stripped] = row
	}
}

// Len returns the number of records retained in the table.
func (t *Table) Len() int { return t.size }

// Find looks a certificate lot up: exact match on the normalized key
// first, then with leading zeros stripped from both sides ("0139912"
// and "139912" hit the same row).
func (t *Table) Find(certLot string) (Row, bool) {
	key := NormalizeKey(certLot)
	if row, ok := t.byKey[key]; ok {
		return row, true
	}
	if row, ok := t.byStripped[strings.TrimLeft(key, "0")]; ok {
		return row, true
	}
	return Row{}, false
}

// NormalizeKey trims whitespace and the ".0" tail integer cells pick up
// when a spreadsheet stringifies them as floats.
func NormalizeKey(v string) string {
	return strings.TrimSuffix(strings.TrimSpace(v), ".0")
}

// Source loads one sheet of the shipment ledger.
type Source interface {
	LoadSheet(name string, cols Columns) (*Table, error)
}
