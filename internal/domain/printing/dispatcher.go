// Package printing routes processed certificates to the printer or to
// manual review. Actual PDF overlay rendering and spooling are external
// collaborators behind the Stamper and Printer interfaces.
package printing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/aelshamy/cert-print-agent/internal/domain/certificate"
	"github.com/aelshamy/cert-print-agent/pkg/storage"
)

// Stamper writes the annotation onto a copy of the certificate and
// returns the annotated file's path.
type Stamper interface {
	Stamp(ctx context.Context, certPath, annotation string) (string, error)
}

// Printer sends a file to the physical printer.
type Printer interface {
	Print(ctx context.Context, path string) error
}

// Dispatcher decides what happens to a processed certificate: fully
// resolved ones print and land in the printed archive, partially
// resolved ones are parked for manual review. Dispatches are paced to
// one certificate per second.
type Dispatcher struct {
	stamper Stamper
	printer Printer // nil when printing is disabled
	archive *storage.Archive
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewDispatcher wires the stamping and archive stages. printer may be
// nil; annotated certificates then stay in the annotated area.
func NewDispatcher(stamper Stamper, printer Printer, archive *storage.Archive, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		stamper: stamper,
		printer: printer,
		archive: archive,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logger,
	}
}

// Dispatch stamps the certificate and routes the annotated copy. The
// original is archived once the annotated copy exists.
func (d *Dispatcher) Dispatch(ctx context.Context, certPath string, res *certificate.Resolution) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}

	annotated, err := d.stamper.Stamp(ctx, certPath, res.Annotation)
	if err != nil {
		return fmt.Errorf("stamp %s: %w", certPath, err)
	}
	if _, err := d.archive.ArchiveSource(certPath); err != nil {
		d.logger.Warn("could not archive source certificate",
			slog.String("path", certPath),
			slog.String("error", err.Error()),
		)
	}

	if !res.AllFound {
		d.logger.Warn("certificate routed to manual review",
			slog.String("certificate", res.CertificateID),
			slog.Int("found", res.FoundCount),
			slog.Int("total", res.TotalLots),
		)
		_, err := d.archive.MoveToReview(annotated)
		return err
	}

	if d.printer == nil {
		d.logger.Info("printing disabled, annotated copy kept",
			slog.String("certificate", res.CertificateID),
			slog.String("path", annotated),
		)
		return nil
	}
	if err := d.printer.Print(ctx, annotated); err != nil {
		// Annotated copy stays in place so the print can be redone by hand.
		d.logger.Error("print failed",
			slog.String("certificate", res.CertificateID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	_, err = d.archive.MoveToPrinted(annotated)
	return err
}

// SidecarStamper copies the certificate into the annotated area and
// writes the annotation to a .txt sidecar next to it. It stands in for
// the PDF overlay collaborator in environments without one.
type SidecarStamper struct {
	archive *storage.Archive
}

// NewSidecarStamper binds the stamper to the archive layout.
func NewSidecarStamper(archive *storage.Archive) *SidecarStamper {
	return &SidecarStamper{archive: archive}
}

// Stamp copies the certificate and writes the sidecar.
func (s *SidecarStamper) Stamp(_ context.Context, certPath, annotation string) (string, error) {
	annotated, err := s.archive.SaveAnnotated(certPath)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(annotated+".txt", []byte(annotation+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write annotation sidecar: %w", err)
	}
	return annotated, nil
}
