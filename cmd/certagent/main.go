package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aelshamy/cert-print-agent/pkg/config"
	"github.com/aelshamy/cert-print-agent/pkg/cron"
)

func main() {
	once := flag.Bool("once", false, "run a single processing cycle and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	deps, err := InitDependencies(cfg, logger)
	if err != nil {
		logger.Error("initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Monitoring.MetricsEnabled {
		go serveMetrics(cfg.Monitoring.MetricsPort, logger)
	}

	ctx := context.Background()

	if *once {
		deps.Orchestrator.RunCycle(ctx)
		return
	}

	interval := time.Duration(cfg.Monitoring.CheckIntervalMinutes) * time.Minute
	scheduler := cron.NewScheduler(interval, func() {
		deps.Orchestrator.RunCycle(ctx)
	}, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error("scheduler start failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// First cycle runs immediately; the schedule covers the rest.
	deps.Orchestrator.RunCycle(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	<-scheduler.Stop().Done()
}

func serveMetrics(port int, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("metrics listener started", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener failed", slog.String("error", err.Error()))
	}
}
