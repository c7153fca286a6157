// Package certificate sequences parsing, ERP resolution and annotation
// composition for incoming certificates.
package certificate

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/aelshamy/cert-print-agent/internal/domain/annotate"
	"github.com/aelshamy/cert-print-agent/internal/domain/erp"
	"github.com/aelshamy/cert-print-agent/internal/domain/lot"
)

// Status is the terminal state of processing one certificate.
type Status string

const (
	// StatusComposed means an annotation was produced, even when some or
	// all lots were not found in the ERP.
	StatusComposed Status = "composed"
	// StatusFailed means no lot token on the certificate could be parsed.
	StatusFailed Status = "failed"
)

// Resolution bundles everything the stamping/printing stage needs for
// one certificate.
type Resolution struct {
	ID            uuid.UUID
	CertificateID string
	Descriptors   []*lot.Descriptor
	Lots          []erp.Resolution
	Annotation    string
	FoundCount    int
	TotalLots     int
	AllFound      bool
	Status        Status
	Err           error // parse failure detail when Status is failed
}

// Service runs the parse -> resolve -> compose pipeline.
type Service struct {
	parser    *lot.Parser
	extractor *lot.Extractor
	resolver  *erp.Resolver
	logger    *slog.Logger
}

// NewService wires the pipeline stages together.
func NewService(parser *lot.Parser, extractor *lot.Extractor, resolver *erp.Resolver, logger *slog.Logger) *Service {
	return &Service{
		parser:    parser,
		extractor: extractor,
		resolver:  resolver,
		logger:    logger,
	}
}

// Process handles one certificate given its raw lot token(s). A token
// that fails to parse is recorded and skipped; the certificate fails
// only when no token yields a descriptor. A resolver miss never fails
// the certificate; it surfaces as "N/A" in the annotation instead.
func (s *Service) Process(certificateID string, rawTokens ...string) *Resolution {
	res := &Resolution{
		ID:            uuid.New(),
		CertificateID: certificateID,
	}

	var firstErr error
	for _, raw := range rawTokens {
		d, err := s.parser.Parse(raw)
		if err != nil {
			s.logger.Warn("lot token not recognized",
				slog.String("certificate", certificateID),
				slog.String("token", raw),
				slog.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		res.Descriptors = append(res.Descriptors, d)
	}

	if len(res.Descriptors) == 0 {
		if firstErr == nil {
			firstErr = lot.ErrUnrecognizedLot
		}
		res.Status = StatusFailed
		res.Err = firstErr
		certificatesProcessed.WithLabelValues(string(StatusFailed)).Inc()
		return res
	}

	for _, d := range res.Descriptors {
		res.Lots = append(res.Lots, s.resolver.ResolveDescriptor(d)...)
	}
	for _, l := range res.Lots {
		if l.Found {
			res.FoundCount++
			lotsResolved.WithLabelValues("found").Inc()
		} else {
			lotsResolved.WithLabelValues("miss").Inc()
		}
	}
	res.TotalLots = len(res.Lots)
	res.AllFound = res.FoundCount == res.TotalLots && res.TotalLots > 0
	res.Annotation = annotate.Compose(res.Lots)
	res.Status = StatusComposed
	certificatesProcessed.WithLabelValues(string(StatusComposed)).Inc()

	s.logger.Info("certificate composed",
		slog.String("certificate", certificateID),
		slog.Int("found", res.FoundCount),
		slog.Int("total", res.TotalLots),
		slog.String("annotation", res.Annotation),
	)
	return res
}

// ProcessText handles a certificate whose lot field must first be
// located inside a full OCR page.
func (s *Service) ProcessText(certificateID, pageText string) *Resolution {
	token, ok := s.extractor.ExtractToken(pageText)
	if !ok {
		s.logger.Warn("no lot token found on page",
			slog.String("certificate", certificateID),
		)
		certificatesProcessed.WithLabelValues(string(StatusFailed)).Inc()
		return &Resolution{
			ID:            uuid.New(),
			CertificateID: certificateID,
			Status:        StatusFailed,
			Err:           lot.ErrNoLotToken,
		}
	}
	return s.Process(certificateID, token)
}

// BatchItem is one certificate queued for processing.
type BatchItem struct {
	CertificateID string
	RawTokens     []string
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []*Resolution
}

// ProcessBatch processes every item; a failed certificate never halts
// the rest of the batch.
func (s *Service) ProcessBatch(items []BatchItem) *BatchSummary {
	summary := &BatchSummary{Results: make([]*Resolution, 0, len(items))}
	for _, item := range items {
		res := s.Process(item.CertificateID, item.RawTokens...)
		summary.Total++
		if res.Status == StatusFailed {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, res)
	}
	return summary
}
