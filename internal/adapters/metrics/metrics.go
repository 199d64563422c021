// Package metrics implements ports.Metrics on a private Prometheus registry.
package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "vigil"

var _ ports.Metrics = (*Registry)(nil)

// Registry holds every collector of the resilience layer.
type Registry struct {
	registry *prometheus.Registry

	cacheLookups   *prometheus.CounterVec
	cacheStores    prometheus.Counter
	cacheSwept     prometheus.Counter
	cacheEntries   *prometheus.GaugeVec
	cacheBytes     prometheus.Gauge
	storageErrors  *prometheus.CounterVec
	sourceRequests *prometheus.CounterVec
	sourceLatency  *prometheus.HistogramVec
	sourceErrRate  *prometheus.GaugeVec
	sourceStatus   *prometheus.GaugeVec
	guardCalls     *prometheus.CounterVec
}

// New creates a Registry with all collectors registered.
func New() *Registry {
	registry := prometheus.NewRegistry()

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total response cache lookups by outcome",
	}, []string{"outcome"})

	cacheStores := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_stores_total",
		Help:      "Total response cache entries written",
	})

	cacheSwept := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_swept_total",
		Help:      "Total expired entries removed by sweeps",
	})

	cacheEntries := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Response cache entries on disk by state",
	}, []string{"state"})

	cacheBytes := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_bytes",
		Help:      "Response cache size on disk",
	})

	storageErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total swallowed storage failures by operation",
	}, []string{"op"})

	sourceRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_requests_total",
		Help:      "Total recorded source requests",
	}, []string{"source", "success"})

	sourceLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_response_seconds",
		Help:      "Source response time",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	sourceErrRate := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_error_rate_percent",
		Help:      "Source error rate over all recorded requests",
	}, []string{"source"})

	sourceStatus := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_status",
		Help:      "1 for the current status of a source, 0 otherwise",
	}, []string{"source", "status"})

	guardCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_calls_total",
		Help:      "Total guarded calls by source and result",
	}, []string{"source", "result"})

	registry.MustRegister(cacheLookups, cacheStores, cacheSwept, cacheEntries, cacheBytes,
		storageErrors, sourceRequests, sourceLatency, sourceErrRate, sourceStatus, guardCalls)

	return &Registry{
		registry:       registry,
		cacheLookups:   cacheLookups,
		cacheStores:    cacheStores,
		cacheSwept:     cacheSwept,
		cacheEntries:   cacheEntries,
		cacheBytes:     cacheBytes,
		storageErrors:  storageErrors,
		sourceRequests: sourceRequests,
		sourceLatency:  sourceLatency,
		sourceErrRate:  sourceErrRate,
		sourceStatus:   sourceStatus,
		guardCalls:     guardCalls,
	}
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// CacheLookup counts one Get.
func (r *Registry) CacheLookup(outcome ports.CacheOutcome) {
	r.cacheLookups.WithLabelValues(string(outcome)).Inc()
}

// CacheStored counts one successful Set.
func (r *Registry) CacheStored() {
	r.cacheStores.Inc()
}

// CacheSwept counts entries removed by a sweep.
func (r *Registry) CacheSwept(n int) {
	if n > 0 {
		r.cacheSwept.Add(float64(n))
	}
}

// CacheStats publishes the on-disk summary of the cache.
func (r *Registry) CacheStats(stats domain.CacheStats) {
	r.cacheEntries.WithLabelValues("total").Set(float64(stats.Entries))
	r.cacheEntries.WithLabelValues("expired").Set(float64(stats.Expired))
	r.cacheEntries.WithLabelValues("corrupt").Set(float64(stats.Corrupt))
	r.cacheBytes.Set(float64(stats.Bytes))
}

// StorageError counts one swallowed I/O failure.
func (r *Registry) StorageError(op string) {
	r.storageErrors.WithLabelValues(op).Inc()
}

// SourceRequest observes one recorded request.
func (r *Registry) SourceRequest(source string, success bool, responseTime time.Duration) {
	r.sourceRequests.WithLabelValues(source, strconv.FormatBool(success)).Inc()
	if responseTime > 0 {
		r.sourceLatency.WithLabelValues(source).Observe(responseTime.Seconds())
	}
}

// SourceHealth publishes the current record of a source.
func (r *Registry) SourceHealth(h domain.SourceHealth) {
	r.sourceErrRate.WithLabelValues(h.Name).Set(h.ErrorRate)
	for _, s := range domain.Statuses {
		v := 0.0
		if s == h.Status {
			v = 1
		}
		r.sourceStatus.WithLabelValues(h.Name, string(s)).Set(v)
	}
}

// GuardCall counts one guarded call.
func (r *Registry) GuardCall(source string, result ports.GuardResult) {
	r.guardCalls.WithLabelValues(source, string(result)).Inc()
}

// WriteText writes every gathered family in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return zerr.Wrap(err, "failed to gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return zerr.Wrap(err, "failed to write metrics")
		}
	}
	return nil
}
