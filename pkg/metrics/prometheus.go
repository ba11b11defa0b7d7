package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	lookups   *prometheus.CounterVec
	cache     *prometheus.CounterVec
	contacts  *prometheus.CounterVec
	snapshots *prometheus.CounterVec
	errors    *prometheus.CounterVec
	balance   *prometheus.GaugeVec
	latency   *prometheus.HistogramVec
}

// New creates a recorder registered on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avku_jar_lookups_total",
				Help: "Jar balance lookups by source and result",
			},
			[]string{"source", "result"},
		),
		cache: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avku_jar_cache_total",
				Help: "Jar cache hits and misses by source",
			},
			[]string{"source", "outcome"},
		),
		contacts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avku_contact_messages_total",
				Help: "Contact form submissions by result",
			},
			[]string{"result"},
		),
		snapshots: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avku_jar_snapshots_total",
				Help: "Jar snapshots recorded by backend",
			},
			[]string{"backend"},
		),
		errors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "avku_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		balance: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "avku_jar_balance",
				Help: "Last observed jar balance",
			},
			[]string{"source"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "avku_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 45},
			},
			[]string{"operation"},
		),
	}
}

// RecordLookup records a finished jar lookup.
func (r *Recorder) RecordLookup(source, result string) {
	r.lookups.WithLabelValues(source, result).Inc()
}

// RecordCache records a cache hit or miss.
func (r *Recorder) RecordCache(source string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cache.WithLabelValues(source, outcome).Inc()
}

// RecordContact records a contact submission outcome.
func (r *Recorder) RecordContact(result string) {
	r.contacts.WithLabelValues(result).Inc()
}

// RecordSnapshot records a snapshot handed to a backend.
func (r *Recorder) RecordSnapshot(backend string) {
	r.snapshots.WithLabelValues(backend).Inc()
}

// RecordBalance records the last balance seen for a source.
func (r *Recorder) RecordBalance(source string, balance float64) {
	r.balance.WithLabelValues(source).Set(balance)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
