package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aelshamy/cert-print-agent/internal/domain/certificate"
	"github.com/aelshamy/cert-print-agent/internal/domain/ocr"
	"github.com/aelshamy/cert-print-agent/internal/domain/printing"
	"github.com/aelshamy/cert-print-agent/pkg/config"
)

// Orchestrator runs one full processing cycle: load the OCR output area,
// run each certificate through the pipeline, dispatch the results. A
// failed certificate never halts the cycle.
type Orchestrator struct {
	cfg        *config.Config
	service    *certificate.Service
	dispatcher *printing.Dispatcher
	logger     *slog.Logger

	stats struct {
		total     int
		succeeded int
		failed    int
		started   time.Time
	}
}

// NewOrchestrator wires a cycle runner.
func NewOrchestrator(cfg *config.Config, service *certificate.Service, dispatcher *printing.Dispatcher, logger *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		service:    service,
		dispatcher: dispatcher,
		logger:     logger,
	}
	o.stats.started = time.Now()
	return o
}

// RunCycle processes every OCR dump currently in the output area.
func (o *Orchestrator) RunCycle(ctx context.Context) {
	o.logger.Info("starting processing cycle")

	dir := filepath.Join(o.cfg.Paths.BaseDir, o.cfg.Paths.OCRJSONDir)
	docs, loadErrs := ocr.LoadDir(dir)
	for _, err := range loadErrs {
		o.logger.Error("skipping unreadable OCR dump", slog.String("error", err.Error()))
	}
	if len(docs) == 0 {
		o.logger.Info("no certificates waiting", slog.String("dir", dir))
		return
	}

	o.logger.Info("certificates found", slog.Int("count", len(docs)))
	for _, doc := range docs {
		o.stats.total++
		if o.processDocument(ctx, doc) {
			o.stats.succeeded++
		} else {
			o.stats.failed++
		}
	}

	o.logger.Info("cycle complete",
		slog.Int("total", o.stats.total),
		slog.Int("succeeded", o.stats.succeeded),
		slog.Int("failed", o.stats.failed),
		slog.Duration("uptime", time.Since(o.stats.started).Round(time.Second)),
	)
}

func (o *Orchestrator) processDocument(ctx context.Context, doc ocr.Document) bool {
	page, ok := doc.FirstPage()
	if !ok || page.Text == "" {
		o.logger.Error("OCR dump has no usable page", slog.String("path", doc.Path))
		return false
	}

	certNumber := ocr.CertificateNumber(page.Text)
	product := ocr.ProductName(page.Text)
	o.logger.Info("processing certificate",
		slog.String("certificate", certNumber),
		slog.String("product", product),
		slog.String("file", page.PDFFile),
	)

	res := o.service.ProcessText(certNumber, page.Text)
	if res.Status == certificate.StatusFailed {
		o.logger.Error("certificate failed",
			slog.String("certificate", certNumber),
			slog.String("error", res.Err.Error()),
		)
		return false
	}

	if err := o.dispatcher.Dispatch(ctx, page.PDFFile, res); err != nil {
		o.logger.Error("dispatch failed",
			slog.String("certificate", certNumber),
			slog.String("error", err.Error()),
		)
		return false
	}

	// Retire the dump so the next cycle does not pick the certificate
	// up again. Failed certificates keep their dump and are retried.
	if err := os.Remove(doc.Path); err != nil {
		o.logger.Warn("could not retire OCR dump",
			slog.String("path", doc.Path),
			slog.String("error", err.Error()),
		)
	}
	return true
}
