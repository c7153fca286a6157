// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the certificate processing cycle on a fixed interval.
type Scheduler struct {
	cron     *cron.Cron
	interval time.Duration
	cycle    func()
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that invokes cycle every interval.
func NewScheduler(interval time.Duration, cycle func(), logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:     c,
		interval: interval,
		cycle:    cycle,
		logger:   logger,
	}
}

// Start begins the scheduled cycle.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.cycle)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Duration("interval", s.interval),
	)
	return nil
}

// Stop gracefully stops the scheduler. The returned context is done once
// any in-flight cycle finishes.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers one cycle (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.cycle()
}
