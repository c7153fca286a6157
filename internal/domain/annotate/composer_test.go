package annotate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aelshamy/cert-print-agent/internal/domain/annotate"
	"github.com/aelshamy/cert-print-agent/internal/domain/erp"
	"github.com/aelshamy/cert-print-agent/internal/domain/lot"
)

func found(certLot, internalLot, supplier, sheet string) erp.Resolution {
	return erp.Resolution{
		CertLot:     certLot,
		Found:       true,
		Supplier:    supplier,
		InternalLot: internalLot,
		SheetFound:  sheet,
		Kind:        lot.KindSingle,
		Count:       1,
	}
}

func missed(certLot string) erp.Resolution {
	return erp.Resolution{CertLot: certLot, Kind: lot.KindSingle, Count: 1}
}

func TestCompose_EmptyInput(t *testing.T) {
	assert.Equal(t, annotate.Unregistered, annotate.Compose(nil))
	assert.Equal(t, annotate.Unregistered, annotate.Compose([]erp.Resolution{}))
}

func TestCompose_SingleLotOneSupplier(t *testing.T) {
	got := annotate.Compose([]erp.Resolution{found("139912", "2601", "Acme", "2025")})
	assert.Equal(t, "Acme - Lot  2601", got)
}

func TestCompose_TwoLotsSameSupplier(t *testing.T) {
	// Scenario: "139912/139913", both resolving to the same supplier.
	got := annotate.Compose([]erp.Resolution{
		found("139912", "139912", "Acme", "2025"),
		found("139913", "139913", "Acme", "2025"),
	})
	assert.Equal(t, "Acme - Lot 139912 - Lot  139913", got)
}

func TestCompose_ImplicitMultiHint(t *testing.T) {
	res := erp.Resolution{
		CertLot:        "139865",
		Found:          true,
		Supplier:       "Delta",
		InternalLot:    "139865",
		SheetFound:     "2025",
		Kind:           lot.KindImplicitMulti,
		Count:          2,
		AnnotationHint: "+1",
	}
	got := annotate.Compose([]erp.Resolution{res})
	assert.Equal(t, "Delta - Lot  139865 +1", got)
}

func TestCompose_NothingFound(t *testing.T) {
	got := annotate.Compose([]erp.Resolution{missed("999999")})
	assert.Equal(t, "999999 N/A", got)

	got = annotate.Compose([]erp.Resolution{missed("999998"), missed("999999")})
	assert.Equal(t, "999998 - 999999 N/A", got)
}

func TestCompose_MixedFoundAndMissing(t *testing.T) {
	got := annotate.Compose([]erp.Resolution{
		found("139912", "2601", "Acme", "2025"),
		missed("999999"),
	})
	assert.Equal(t, "Acme - Lot  2601 | 999999 N/A", got)
}

func TestCompose_MultipleSuppliersKeepFirstSeenOrder(t *testing.T) {
	got := annotate.Compose([]erp.Resolution{
		found("139912", "2601", "Beta", "2025"),
		found("139913", "2602", "Acme", "2025"),
		found("139914", "2603", "Beta", "2024"),
	})
	assert.Equal(t, "Beta - Lot 2601 - Lot  2603 | Acme - Lot  2602", got)
}

func TestCompose_SameSupplierAcrossSheetsMergesIntoOneSegment(t *testing.T) {
	got := annotate.Compose([]erp.Resolution{
		found("139912", "2601", "Acme", "2026"),
		found("139800", "2401", "Acme", "2024"),
	})
	assert.Equal(t, "Acme - Lot 2601 - Lot  2401", got)
}

func TestCompose_Idempotent(t *testing.T) {
	input := []erp.Resolution{
		found("139912", "2601", "Acme", "2025"),
		missed("999999"),
	}
	assert.Equal(t, annotate.Compose(input), annotate.Compose(input))
}

func TestCompose_SegmentCountInvariant(t *testing.T) {
	tests := []struct {
		name    string
		results []erp.Resolution
		want    int
	}{
		{"one supplier", []erp.Resolution{found("1", "a", "S1", "x")}, 1},
		{"two suppliers", []erp.Resolution{
			found("1", "a", "S1", "x"), found("2", "b", "S2", "x"),
		}, 2},
		{"two suppliers plus misses", []erp.Resolution{
			found("1", "a", "S1", "x"), found("2", "b", "S2", "x"),
			missed("3"), missed("4"),
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := annotate.Compose(tt.results)
			assert.Equal(t, tt.want, len(strings.Split(got, " | ")))
		})
	}
}

func TestCompose_MissedLotsAppearVerbatim(t *testing.T) {
	lots := []string{"139912", "0139950", "AB-12C"}
	results := make([]erp.Resolution, len(lots))
	for i, l := range lots {
		results[i] = missed(l)
	}
	got := annotate.Compose(results)
	for _, l := range lots {
		assert.Contains(t, got, l)
	}
	assert.True(t, strings.HasSuffix(got, "N/A"))
}
