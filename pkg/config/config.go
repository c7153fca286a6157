// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Paths      PathsConfig
	ERP        ERPConfig
	Parser     ParserConfig
	Printing   PrintingConfig
	Monitoring MonitoringConfig
}

// PathsConfig names the working folders, relative to BaseDir.
type PathsConfig struct {
	BaseDir       string
	CertInbox     string
	SourceCert    string
	AnnotatedCert string
	PrintedCert   string
	ReviewCert    string
	OCRJSONDir    string
}

// ERPConfig locates the shipment ledger. Sheets are listed in priority
// order, newest first. When CSVDir is set the ledger is read from
// per-sheet CSV exports instead of the workbook.
type ERPConfig struct {
	File    string
	CSVDir  string
	Sheets  []string
	Columns ColumnsConfig
}

// ColumnsConfig maps the lookup fields onto ledger header names.
type ColumnsConfig struct {
	CertLot     string
	InternalLot string
	Supplier    string
}

// ParserConfig bounds what a numeric lot code looks like.
type ParserConfig struct {
	MinLotDigits     int
	MaxLotDigits     int
	MaxSegmentDigits int
}

type PrintingConfig struct {
	Enabled     bool
	PrinterName string
}

type MonitoringConfig struct {
	CheckIntervalMinutes int
	MetricsEnabled       bool
	MetricsPort          int
}

// Load reads configuration from the environment, picking up a .env file
// first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Paths: PathsConfig{
			BaseDir:       getEnv("CERT_BASE_DIR", "."),
			CertInbox:     getEnv("CERT_INBOX_DIR", "GetCertAgent/Cert_Inbox"),
			SourceCert:    getEnv("CERT_SOURCE_DIR", "GetCertAgent/Source_Cert"),
			AnnotatedCert: getEnv("CERT_ANNOTATED_DIR", "GetCertAgent/Annotated_Certificates"),
			PrintedCert:   getEnv("CERT_PRINTED_DIR", "GetCertAgent/Printed_Annotated_Cert"),
			ReviewCert:    getEnv("CERT_REVIEW_DIR", "GetCertAgent/Manual_Review"),
			OCRJSONDir:    getEnv("CERT_OCR_JSON_DIR", "GetCertAgent/TempImages/json"),
		},
		ERP: ERPConfig{
			File:   getEnv("ERP_FILE", "Raw_Warehouses.xlsx"),
			CSVDir: getEnv("ERP_CSV_DIR", ""),
			Sheets: getEnvAsSlice("ERP_SHEETS", []string{"2026", "2025", "2024", "2023"}),
			Columns: ColumnsConfig{
				CertLot:     getEnv("ERP_COLUMN_CERT_LOT", "NO"),
				InternalLot: getEnv("ERP_COLUMN_INTERNAL_LOT", "Lot Num."),
				Supplier:    getEnv("ERP_COLUMN_SUPPLIER", "Supplier"),
			},
		},
		Parser: ParserConfig{
			MinLotDigits:     getEnvAsInt("LOT_MIN_DIGITS", 5),
			MaxLotDigits:     getEnvAsInt("LOT_MAX_DIGITS", 6),
			MaxSegmentDigits: getEnvAsInt("LOT_MAX_SEGMENT_DIGITS", 7),
		},
		Printing: PrintingConfig{
			Enabled:     getEnvAsBool("PRINTING_ENABLED", false),
			PrinterName: getEnv("PRINTER_NAME", ""),
		},
		Monitoring: MonitoringConfig{
			CheckIntervalMinutes: getEnvAsInt("CHECK_INTERVAL_MINUTES", 5),
			MetricsEnabled:       getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:          getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	if len(cfg.ERP.Sheets) == 0 {
		return nil, errors.New("ERP_SHEETS must list at least one sheet")
	}
	if cfg.Parser.MinLotDigits < 1 || cfg.Parser.MaxLotDigits < cfg.Parser.MinLotDigits {
		return nil, errors.New("invalid lot digit bounds")
	}
	if cfg.Monitoring.CheckIntervalMinutes < 1 {
		return nil, errors.New("CHECK_INTERVAL_MINUTES must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
