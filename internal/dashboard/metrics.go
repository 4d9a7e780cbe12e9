package dashboard

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var cacheRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dashboard_cache_requests_total",
		Help: "How many dashboard cache requests were served, partitioned by result.",
	},
	[]string{"result"},
)

// RegisterPrometheusMetrics registers the cache metrics with the
// default registry.
func RegisterPrometheusMetrics() error {
	if err := prometheus.Register(cacheRequests); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}

		return err
	}

	return nil
}

// UnregisterPrometheusMetrics unregisters the cache metrics.
//
// This is needed to cleanly exit.
func UnregisterPrometheusMetrics() bool {
	return prometheus.Unregister(cacheRequests)
}

// Metrics counts cache outcomes. The counters are process-local and
// resettable for test isolation.
type Metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// MetricsSnapshot is a point-in-time view of the counters.
type MetricsSnapshot struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Errors  int64   `json:"errors"`
	HitRate float64 `json:"hitRate"`
}

func (m *Metrics) hit() {
	m.hits.Add(1)
	cacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) miss() {
	m.misses.Add(1)
	cacheRequests.WithLabelValues("miss").Inc()
}

func (m *Metrics) error() {
	m.errors.Add(1)
	cacheRequests.WithLabelValues("error").Inc()
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	hits := m.hits.Load()
	misses := m.misses.Load()

	s := MetricsSnapshot{
		Hits:   hits,
		Misses: misses,
		Errors: m.errors.Load(),
	}

	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}

	return s
}

// Reset zeroes the counters.
func (m *Metrics) Reset() {
	m.hits.Store(0)
	m.misses.Store(0)
	m.errors.Store(0)
}
