package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics tracks repository operations per backend, entity and op.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewStoreMetrics registers the store collectors on reg.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	factory := promauto.With(reg)
	return &StoreMetrics{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_store_request_duration_seconds",
			Help:    "Duration of repository operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "entity", "op"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_store_errors_total",
			Help: "Repository operations that returned an error.",
		}, []string{"backend", "entity", "op"}),
	}
}

// Observe records one repository operation.
func (m *StoreMetrics) Observe(backend, entity, op string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(backend, entity, op).Observe(elapsed.Seconds())
	if err != nil {
		m.errors.WithLabelValues(backend, entity, op).Inc()
	}
}

// CacheMetrics tracks entity-cache effectiveness.
type CacheMetrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

// NewCacheMetrics registers the cache collectors on reg.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	factory := promauto.With(reg)
	return &CacheMetrics{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_cache_hits_total",
			Help: "Entity cache hits.",
		}, []string{"entity"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_cache_misses_total",
			Help: "Entity cache misses.",
		}, []string{"entity"}),
	}
}

// Hit records a cache hit for the entity.
func (m *CacheMetrics) Hit(entity string) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(entity).Inc()
}

// Miss records a cache miss for the entity.
func (m *CacheMetrics) Miss(entity string) {
	if m == nil {
		return
	}
	m.misses.WithLabelValues(entity).Inc()
}

// EditorMetrics tracks editor interaction outcomes.
type EditorMetrics struct {
	spawns           prometheus.Counter
	autosaveFlushes  prometheus.Counter
	autosaveRejected prometheus.Counter
}

// NewEditorMetrics registers the editor collectors on reg.
func NewEditorMetrics(reg prometheus.Registerer) *EditorMetrics {
	factory := promauto.With(reg)
	return &EditorMetrics{
		spawns: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_editor_spawns_total",
			Help: "Placement flows opened from viewport gestures.",
		}),
		autosaveFlushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_editor_autosave_flushes_total",
			Help: "Debounced property edits persisted.",
		}),
		autosaveRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_editor_autosave_rejected_total",
			Help: "Debounced property edits dropped by validation.",
		}),
	}
}

// SpawnOpened records a placement flow opening.
func (m *EditorMetrics) SpawnOpened() {
	if m == nil {
		return
	}
	m.spawns.Inc()
}

// AutosaveFlushed records a persisted debounced edit.
func (m *EditorMetrics) AutosaveFlushed() {
	if m == nil {
		return
	}
	m.autosaveFlushes.Inc()
}

// AutosaveRejected records a debounced edit dropped by validation.
func (m *EditorMetrics) AutosaveRejected() {
	if m == nil {
		return
	}
	m.autosaveRejected.Inc()
}
