package metrics

import (
	"time"

	"StockLens/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	facetRequests *prometheus.CounterVec
	facetLatency  *prometheus.HistogramVec
	loads         *prometheus.CounterVec
	loadLatency   *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		facetRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stocklens",
				Subsystem: "gateway",
				Name:      "facet_requests_total",
				Help:      "Facet fetches by facet and outcome",
			},
			[]string{"facet", "outcome"},
		),
		facetLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stocklens",
				Subsystem: "gateway",
				Name:      "facet_duration_seconds",
				Help:      "Duration of one facet fetch",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"facet"},
		),
		loads: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stocklens",
				Subsystem: "orchestrator",
				Name:      "loads_total",
				Help:      "Symbol loads by outcome",
			},
			[]string{"outcome"},
		),
		loadLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stocklens",
				Subsystem: "orchestrator",
				Name:      "load_duration_seconds",
				Help:      "Duration of a full symbol load, fan-out to commit",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}
}

// RecordFacet records one gateway call.
func (r *Recorder) RecordFacet(facet models.Facet, outcome string, d time.Duration) {
	r.facetRequests.WithLabelValues(string(facet), outcome).Inc()
	r.facetLatency.WithLabelValues(string(facet)).Observe(d.Seconds())
}

// RecordLoad records one orchestrator load.
func (r *Recorder) RecordLoad(outcome string, d time.Duration) {
	r.loads.WithLabelValues(outcome).Inc()
	r.loadLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordFacet(models.Facet, string, time.Duration) {}
func (Noop) RecordLoad(string, time.Duration) {}
