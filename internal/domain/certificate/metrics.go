package certificate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	certificatesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "certagent_certificates_processed_total",
		Help: "Certificates processed, labeled by terminal status.",
	}, []string{"status"})

	lotsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "certagent_lots_resolved_total",
		Help: "Individual lot lookups, labeled by outcome.",
	}, []string{"outcome"})
)
