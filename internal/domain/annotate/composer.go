// Package annotate renders the supplier/lot annotation that gets stamped
// onto a certificate.
package annotate

import (
	"fmt"
	"strings"

	"github.com/aelshamy/cert-print-agent/internal/domain/erp"
	"github.com/aelshamy/cert-print-agent/internal/domain/lot"
)

const (
	// Unregistered marks a certificate that produced no lot results at all.
	Unregistered = "not registered in ERP"

	notAvailable = "N/A"
	segmentSep   = " | "
)

type groupEntry struct {
	internalLot string
	hint        string
}

// Compose renders resolution results into the annotation line. Found
// lots are grouped by supplier in first-seen order, lots within a group
// keep input order, and unresolved lots trail in a single "N/A" segment.
// Pure function: the same input always renders the same string.
//
// The spacing is load-bearing: single-lot segments use a double space
// after "Lot", multi-lot joins a single space then double-space joins.
// The stamping layer matches this format verbatim.
func Compose(results []erp.Resolution) string {
	if len(results) == 0 {
		return Unregistered
	}

	suppliers := make([]string, 0, len(results))
	groups := make(map[string][]groupEntry)
	var notFound []string

	for _, res := range results {
		if !res.Found {
			notFound = append(notFound, res.CertLot)
			continue
		}
		entry := groupEntry{internalLot: res.InternalLot}
		switch res.Kind {
		case lot.KindImplicitMulti:
			entry.hint = res.AnnotationHint
		case lot.KindSingle, lot.KindExplicitMulti, lot.KindAlphanumeric:
			// no hint: these kinds list every unit explicitly
		}
		if _, seen := groups[res.Supplier]; !seen {
			suppliers = append(suppliers, res.Supplier)
		}
		groups[res.Supplier] = append(groups[res.Supplier], entry)
	}

	if len(suppliers) == 0 {
		return strings.Join(notFound, " - ") + " " + notAvailable
	}

	segments := make([]string, 0, len(suppliers)+1)
	for _, supplier := range suppliers {
		segments = append(segments, renderGroup(supplier, groups[supplier]))
	}
	if len(notFound) > 0 {
		segments = append(segments, strings.Join(notFound, " - ")+" "+notAvailable)
	}

	if len(segments) == 1 {
		return segments[0]
	}
	return strings.Join(segments, segmentSep)
}

func renderGroup(supplier string, entries []groupEntry) string {
	if len(entries) == 1 {
		text := entries[0].internalLot
		if entries[0].hint != "" {
			text += " " + entries[0].hint
		}
		return fmt.Sprintf("%s - Lot  %s", supplier, text)
	}

	lots := make([]string, len(entries))
	for i, e := range entries {
		lots[i] = e.internalLot
	}
	return fmt.Sprintf("%s - Lot %s", supplier, strings.Join(lots, " - Lot  "))
}
