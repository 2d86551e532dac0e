package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option defines some options to the metrics initialization
type Option func(*settings)

type settings struct {
	namespace   string
	constLabels prometheus.Labels
	registry    *prometheus.Registry
	buckets     []float64
}

func defaultSettings() *settings {
	return &settings{
		namespace: "localvcs",
		buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	}
}

// WithNamespace defines the namespace of all collectors. The default is "localvcs"
func WithNamespace(namespace string) Option {
	return func(s *settings) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithConstLabels adds labels to every collected metric, e.g. the repository name
func WithConstLabels(labels map[string]string) Option {
	return func(s *settings) {
		if s.constLabels == nil {
			s.constLabels = make(prometheus.Labels, len(labels))
		}
		for k, v := range labels {
			s.constLabels[k] = v
		}
	}
}

// WithRegistry registers collectors on an existing registry instead of a new one
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithLatencyBuckets overrides the buckets of latency histograms, in seconds
func WithLatencyBuckets(buckets []float64) Option {
	return func(s *settings) {
		if len(buckets) > 0 {
			s.buckets = buckets
		}
	}
}
