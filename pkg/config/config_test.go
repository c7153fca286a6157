package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelshamy/cert-print-agent/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Paths.BaseDir)
	assert.Equal(t, "GetCertAgent/Cert_Inbox", cfg.Paths.CertInbox)
	assert.Equal(t, "GetCertAgent/Manual_Review", cfg.Paths.ReviewCert)
	assert.Equal(t, "Raw_Warehouses.xlsx", cfg.ERP.File)
	assert.Empty(t, cfg.ERP.CSVDir)
	assert.Equal(t, []string{"2026", "2025", "2024", "2023"}, cfg.ERP.Sheets)
	assert.Equal(t, "NO", cfg.ERP.Columns.CertLot)
	assert.Equal(t, "Lot Num.", cfg.ERP.Columns.InternalLot)
	assert.Equal(t, "Supplier", cfg.ERP.Columns.Supplier)
	assert.Equal(t, 5, cfg.Parser.MinLotDigits)
	assert.Equal(t, 6, cfg.Parser.MaxLotDigits)
	assert.Equal(t, 7, cfg.Parser.MaxSegmentDigits)
	assert.False(t, cfg.Printing.Enabled)
	assert.Equal(t, 5, cfg.Monitoring.CheckIntervalMinutes)
	assert.True(t, cfg.Monitoring.MetricsEnabled)
	assert.Equal(t, 9090, cfg.Monitoring.MetricsPort)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CERT_BASE_DIR", "/srv/certs")
	t.Setenv("ERP_SHEETS", " 2027 , 2026 ")
	t.Setenv("ERP_CSV_DIR", "/srv/certs/ledger")
	t.Setenv("LOT_MIN_DIGITS", "4")
	t.Setenv("LOT_MAX_DIGITS", "8")
	t.Setenv("PRINTING_ENABLED", "true")
	t.Setenv("PRINTER_NAME", "HP-Warehouse")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/certs", cfg.Paths.BaseDir)
	assert.Equal(t, []string{"2027", "2026"}, cfg.ERP.Sheets)
	assert.Equal(t, "/srv/certs/ledger", cfg.ERP.CSVDir)
	assert.Equal(t, 4, cfg.Parser.MinLotDigits)
	assert.Equal(t, 8, cfg.Parser.MaxLotDigits)
	assert.True(t, cfg.Printing.Enabled)
	assert.Equal(t, "HP-Warehouse", cfg.Printing.PrinterName)
	assert.False(t, cfg.Monitoring.MetricsEnabled)
}

func TestLoad_InvalidDigitBounds(t *testing.T) {
	t.Setenv("LOT_MIN_DIGITS", "6")
	t.Setenv("LOT_MAX_DIGITS", "5")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("CHECK_INTERVAL_MINUTES", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Monitoring.CheckIntervalMinutes)
}
