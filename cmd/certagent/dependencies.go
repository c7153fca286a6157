package main

import (
	"log/slog"
	"path/filepath"

	"github.com/aelshamy/cert-print-agent/internal/domain/certificate"
	"github.com/aelshamy/cert-print-agent/internal/domain/erp"
	"github.com/aelshamy/cert-print-agent/internal/domain/lot"
	"github.com/aelshamy/cert-print-agent/internal/domain/printing"
	"github.com/aelshamy/cert-print-agent/pkg/config"
	"github.com/aelshamy/cert-print-agent/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Archive      *storage.Archive
	SheetSource  erp.Source
	SheetCache   *erp.Cache
	Resolver     *erp.Resolver
	Parser       *lot.Parser
	Extractor    *lot.Extractor
	Certificates *certificate.Service
	Dispatcher   *printing.Dispatcher
	Orchestrator *Orchestrator
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	archive, err := storage.New(storage.Config{
		BaseDir:   cfg.Paths.BaseDir,
		Inbox:     cfg.Paths.CertInbox,
		Source:    cfg.Paths.SourceCert,
		Annotated: cfg.Paths.AnnotatedCert,
		Printed:   cfg.Paths.PrintedCert,
		Review:    cfg.Paths.ReviewCert,
	})
	if err != nil {
		return nil, err
	}
	deps.Archive = archive

	columns := erp.Columns{
		CertLot:     cfg.ERP.Columns.CertLot,
		InternalLot: cfg.ERP.Columns.InternalLot,
		Supplier:    cfg.ERP.Columns.Supplier,
	}
	if cfg.ERP.CSVDir != "" {
		deps.SheetSource = erp.NewCSVDir(filepath.Join(cfg.Paths.BaseDir, cfg.ERP.CSVDir))
	} else {
		deps.SheetSource = erp.NewWorkbook(filepath.Join(cfg.Paths.BaseDir, cfg.ERP.File))
	}
	deps.SheetCache = erp.NewCache(deps.SheetSource, columns)
	deps.Resolver = erp.NewResolver(deps.SheetCache, cfg.ERP.Sheets, logger)

	deps.Parser = lot.NewParser(lot.Config{
		MinLotDigits:     cfg.Parser.MinLotDigits,
		MaxLotDigits:     cfg.Parser.MaxLotDigits,
		MaxSegmentDigits: cfg.Parser.MaxSegmentDigits,
	})
	deps.Extractor = lot.NewExtractor(deps.Parser)
	deps.Certificates = certificate.NewService(deps.Parser, deps.Extractor, deps.Resolver, logger)

	var printer printing.Printer
	if cfg.Printing.Enabled {
		printer = printing.NewSpoolPrinter(cfg.Printing.PrinterName, logger)
	}
	deps.Dispatcher = printing.NewDispatcher(
		printing.NewSidecarStamper(archive),
		printer,
		archive,
		logger,
	)

	deps.Orchestrator = NewOrchestrator(cfg, deps.Certificates, deps.Dispatcher, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}
