// Package metrics records build cache activity as Prometheus metrics and exports them as a textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implements ports.Metrics on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	cacheSaves    *prometheus.CounterVec
	cacheErrors   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
}

// NewPrometheus creates and registers the kiln metrics on registry.
func NewPrometheus(registry *prometheus.Registry) *Prometheus {
	m := &Prometheus{
		registry: registry,
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiln_cache_hits_total",
				Help: "Builds satisfied by restoring cached outputs",
			},
			[]string{"project"},
		),
		cacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiln_cache_misses_total",
				Help: "Builds that invoked the compiler",
			},
			[]string{"project"},
		),
		cacheSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiln_cache_saves_total",
				Help: "Build outputs stored in the cache",
			},
			[]string{"project"},
		),
		cacheErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiln_cache_errors_total",
				Help: "Cache failures downgraded to warnings",
			},
			[]string{"project", "operation"},
		),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kiln_build_duration_seconds",
				Help:    "End to end build duration per project",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
			[]string{"project"},
		),
	}

	registry.MustRegister(m.cacheHits, m.cacheMisses, m.cacheSaves, m.cacheErrors, m.buildDuration)
	return m
}

// CacheHit records a build skipped because its outputs were restored.
func (m *Prometheus) CacheHit(project string) {
	m.cacheHits.WithLabelValues(project).Inc()
}

// CacheMiss records a build that had to invoke the compiler.
func (m *Prometheus) CacheMiss(project string) {
	m.cacheMisses.WithLabelValues(project).Inc()
}

// CacheSave records a new cache entry.
func (m *Prometheus) CacheSave(project string) {
	m.cacheSaves.WithLabelValues(project).Inc()
}

// CacheError records a cache failure that was downgraded to a warning.
func (m *Prometheus) CacheError(project, op string) {
	m.cacheErrors.WithLabelValues(project, op).Inc()
}

// BuildDuration records how long one project took end to end.
func (m *Prometheus) BuildDuration(project string, d time.Duration) {
	m.buildDuration.WithLabelValues(project).Observe(d.Seconds())
}

// WriteTextfile writes every metric in the Prometheus text format to path, replacing it atomically.
func (m *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}
