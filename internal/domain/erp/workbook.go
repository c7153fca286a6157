package erp

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook serves sheets from a single Excel ledger file. The file is
// opened per sheet load; the cache in front of it guarantees each sheet
// is read at most once per run.
type Workbook struct {
	path string
}

// NewWorkbook points at the ledger file. The file is not touched until
// the first sheet load.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// LoadSheet reads and normalizes one sheet. Any failure (unreadable
// file, unknown sheet, missing required columns) wraps
// ErrSheetUnavailable so the resolver can skip the sheet and move on.
func (w *Workbook) LoadSheet(name string, cols Columns) (*Table, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSheetUnavailable, w.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", ErrSheetUnavailable, name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrSheetUnavailable, name)
	}

	idx, missing := mapHeader(rows[0], cols)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: sheet %s missing columns %s",
			ErrSheetUnavailable, name, strings.Join(missing, ", "))
	}

	table := NewTable(name)
	for _, row := range rows[1:] {
		table.Add(cell(row, idx.certLot), cell(row, idx.internalLot), cell(row, idx.supplier))
	}
	return table, nil
}

type headerIndex struct {
	certLot     int
	internalLot int
	supplier    int
}

// mapHeader resolves the three required columns against a header row.
// Headers are compared trimmed; ledger exports routinely carry padding.
func mapHeader(header []string, cols Columns) (headerIndex, []string) {
	idx := headerIndex{certLot: -1, internalLot: -1, supplier: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case cols.CertLot:
			if idx.certLot < 0 {
				idx.certLot = i
			}
		case cols.InternalLot:
			if idx.internalLot < 0 {
				idx.internalLot = i
			}
		case cols.Supplier:
			if idx.supplier < 0 {
				idx.supplier = i
			}
		}
	}

	var missing []string
	if idx.certLot < 0 {
		missing = append(missing, cols.CertLot)
	}
	if idx.internalLot < 0 {
		missing = append(missing, cols.InternalLot)
	}
	if idx.supplier < 0 {
		missing = append(missing, cols.Supplier)
	}
	return idx, missing
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
