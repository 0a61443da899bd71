// Package metrics exposes Prometheus instrumentation for the draft service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument the service records.
type Metrics struct {
	registry *prometheus.Registry

	draftStarts   prometheus.Counter
	draftPicks    prometheus.Counter
	draftResets   prometheus.Counter
	rankingsSyncs prometheus.Counter
	syncErrors    prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New creates a Metrics instance backed by its own registry
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		draftStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draft_starts_total",
			Help: "Number of drafts started.",
		}),
		draftPicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draft_picks_total",
			Help: "Number of picks made across all drafts.",
		}),
		draftResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draft_resets_total",
			Help: "Number of draft resets.",
		}),
		rankingsSyncs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankings_syncs_total",
			Help: "Number of successful rankings syncs from the warehouse.",
		}),
		syncErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankings_sync_errors_total",
			Help: "Number of failed rankings syncs.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.draftStarts,
		m.draftPicks,
		m.draftResets,
		m.rankingsSyncs,
		m.syncErrors,
		m.httpRequests,
		m.httpLatency,
	)

	return m
}

// Handler returns the Prometheus scrape handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordDraftStart() {
	if m == nil {
		return
	}
	m.draftStarts.Inc()
}

func (m *Metrics) RecordPick() {
	if m == nil {
		return
	}
	m.draftPicks.Inc()
}

func (m *Metrics) RecordReset() {
	if m == nil {
		return
	}
	m.draftResets.Inc()
}

// RecordSync tracks a rankings sync cycle and whether it failed
func (m *Metrics) RecordSync(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.syncErrors.Inc()
		return
	}
	m.rankingsSyncs.Inc()
}

// RecordHTTPRequest tracks basic HTTP metrics
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}
