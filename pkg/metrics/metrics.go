package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds the collectors for a repository and its store
type Metrics struct {
	registry *prometheus.Registry

	// Commits counts commits by result
	Commits *prometheus.CounterVec

	// CommittedChanges counts changes in successful commits, by kind
	CommittedChanges *prometheus.CounterVec

	// Reverts counts reverts which actually moved the current revision
	Reverts prometheus.Counter

	// Pending is the number of queued changes
	Pending prometheus.Gauge

	// Revision is the current revision
	Revision prometheus.Gauge

	// Persistence counts loads and stores, by operation and result
	Persistence *prometheus.CounterVec

	// PersistedBytes measures the size of stored repositories
	PersistedBytes prometheus.Histogram

	// StorageOps counts storage calls, by store, operation and result
	StorageOps *prometheus.CounterVec

	// StorageLatency measures storage calls, by store and operation
	StorageLatency *prometheus.HistogramVec
}

// New builds a set of collectors on a dedicated registry
func New(opts ...Option) *Metrics {
	s := defaultSettings()
	for _, apply := range opts {
		apply(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	factory := promauto.With(s.registry)

	return &Metrics{
		registry: s.registry,
		Commits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   s.namespace,
			Subsystem:   "repository",
			Name:        "commits_total",
			Help:        "Number of commits, by result",
			ConstLabels: s.constLabels,
		}, []string{"result"}),
		CommittedChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   s.namespace,
			Subsystem:   "repository",
			Name:        "committed_changes_total",
			Help:        "Number of committed changes, by kind",
			ConstLabels: s.constLabels,
		}, []string{"kind"}),
		Reverts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   s.namespace,
			Subsystem:   "repository",
			Name:        "reverts_total",
			Help:        "Number of reverts to a previous revision",
			ConstLabels: s.constLabels,
		}),
		Pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   s.namespace,
			Subsystem:   "repository",
			Name:        "pending_changes",
			Help:        "Number of changes waiting for a commit",
			ConstLabels: s.constLabels,
		}),
		Revision: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   s.namespace,
			Subsystem:   "repository",
			Name:        "revision",
			Help:        "Current revision",
			ConstLabels: s.constLabels,
		}),
		Persistence: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   s.namespace,
			Subsystem:   "repository",
			Name:        "persistence_total",
			Help:        "Number of loads and stores, by operation and result",
			ConstLabels: s.constLabels,
		}, []string{"operation", "result"}),
		PersistedBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   s.namespace,
			Subsystem:   "repository",
			Name:        "persisted_bytes",
			Help:        "Size of stored repositories",
			Buckets:     prometheus.ExponentialBuckets(1024, 4, 10),
			ConstLabels: s.constLabels,
		}),
		StorageOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   s.namespace,
			Subsystem:   "storage",
			Name:        "operations_total",
			Help:        "Number of storage operations, by store, operation and result",
			ConstLabels: s.constLabels,
		}, []string{"store", "operation", "result"}),
		StorageLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   s.namespace,
			Subsystem:   "storage",
			Name:        "operation_duration_seconds",
			Help:        "Duration of storage operations, by store and operation",
			Buckets:     s.buckets,
			ConstLabels: s.constLabels,
		}, []string{"store", "operation"}),
	}
}

// Registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Result yields the result label value for an error
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// Commit records a commit attempt
func (m *Metrics) Commit(kinds []string, err error) {
	if m == nil {
		return
	}
	m.Commits.WithLabelValues(Result(err)).Inc()
	if err != nil {
		return
	}
	for _, kind := range kinds {
		m.CommittedChanges.WithLabelValues(kind).Inc()
	}
}

// Revert records a revert to a previous revision
func (m *Metrics) Revert() {
	if m == nil {
		return
	}
	m.Reverts.Inc()
}

// State records the current revision and the number of pending changes
func (m *Metrics) State(revision, pending int) {
	if m == nil {
		return
	}
	m.Revision.Set(float64(revision))
	m.Pending.Set(float64(pending))
}

// Persist records a load or a store
func (m *Metrics) Persist(operation string, size int, err error) {
	if m == nil {
		return
	}
	m.Persistence.WithLabelValues(operation, Result(err)).Inc()
	if err == nil && size > 0 {
		m.PersistedBytes.Observe(float64(size))
	}
}

// StorageOp records a storage operation started at some time
func (m *Metrics) StorageOp(store, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.StorageOps.WithLabelValues(store, operation, Result(err)).Inc()
	m.StorageLatency.WithLabelValues(store, operation).Observe(time.Since(start).Seconds())
}
