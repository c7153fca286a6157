package erp

import (
	"log/slog"

	"github.com/aelshamy/cert-print-agent/internal/domain/lot"
)

// Resolution is the outcome of resolving one certificate lot code. A
// miss is a valid result, not an error: Found is false and the three
// resolved fields stay empty.
type Resolution struct {
	CertLot     string
	Found       bool
	Supplier    string
	InternalLot string
	SheetFound  string

	// Carried over from the owning descriptor for the composer.
	Kind           lot.Kind
	Count          int
	AnnotationHint string
}

// Resolver looks lot codes up across the configured sheets in priority
// order, newest first.
type Resolver struct {
	cache  *Cache
	sheets []string
	logger *slog.Logger
}

// NewResolver binds a cache to a sheet priority list.
func NewResolver(cache *Cache, sheets []string, logger *slog.Logger) *Resolver {
	return &Resolver{cache: cache, sheets: sheets, logger: logger}
}

// Resolve searches the sheets in order and short-circuits on the first
// hit; older sheets are never consulted once a newer one matches.
// Unavailable sheets are skipped, not fatal.
func (r *Resolver) Resolve(certLot string) Resolution {
	res := Resolution{CertLot: certLot}
	for _, sheet := range r.sheets {
		table, err := r.cache.Sheet(sheet)
		if err != nil {
			r.logger.Warn("skipping unavailable sheet",
				slog.String("sheet", sheet),
				slog.String("error", err.Error()),
			)
			continue
		}
		row, ok := table.Find(certLot)
		if !ok {
			continue
		}
		res.Found = true
		res.Supplier = row.Supplier
		res.InternalLot = row.InternalLot
		res.SheetFound = sheet
		r.logger.Debug("lot resolved",
			slog.String("cert_lot", certLot),
			slog.String("sheet", sheet),
			slog.String("supplier", res.Supplier),
			slog.String("internal_lot", res.InternalLot),
		)
		return res
	}

	r.logger.Warn("lot not found in ERP", slog.String("cert_lot", certLot))
	return res
}

// ResolveDescriptor resolves each member of a descriptor independently
// (the two halves of an explicit multi may belong to different
// suppliers) and stamps every result with the descriptor's kind, count
// and annotation hint for the composer.
func (r *Resolver) ResolveDescriptor(d *lot.Descriptor) []Resolution {
	results := make([]Resolution, 0, len(d.Members))
	for _, member := range d.Members {
		res := r.Resolve(member)
		res.Kind = d.Kind
		res.Count = d.Count
		res.AnnotationHint = d.AnnotationHint
		results = append(results, res)
	}
	return results
}
