package capd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the daemon's Prometheus instrumentation. It observes the
// serving layer only; the analysis engine itself carries no process-wide
// counters.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesStarted  prometheus.Counter
	AnalysesFinished *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
}

// NewMetrics creates and registers the daemon metrics on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		AnalysesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "capd",
			Name:      "analyses_started_total",
			Help:      "Number of analyses started.",
		}),
		AnalysesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "capd",
			Name:      "analyses_finished_total",
			Help:      "Number of analyses finished, by terminal status.",
		}, []string{"status"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "capd",
			Name:      "analysis_duration_seconds",
			Help:      "Wall-clock duration of finished analyses.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(m.AnalysesStarted, m.AnalysesFinished, m.AnalysisDuration)
	return m
}

// Handler returns the /metrics HTTP handler for the daemon's registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
