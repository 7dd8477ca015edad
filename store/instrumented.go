package store

import "github.com/prometheus/client_golang/prometheus"

// Instrumented wraps another Store and counts every operation in
// Prometheus collectors.
//
// General notes:
//   - Every call is forwarded to the wrapped store unchanged; the wrapper
//     adds counting only, not synchronization. Wrap a Guarded or Sharded
//     store when concurrent callers are involved.
//   - Get and Delete additionally record whether the key was present.
//   - The current entry count is exposed as a gauge that reads Len from
//     the wrapped store at gather time, so scraping the registry takes
//     the wrapped store's locks briefly.
type Instrumented struct {
	store   Store
	metrics *metrics
}

// NewInstrumented wraps inner and registers the collectors with reg.
// Registering two Instrumented stores with the same Registerer panics on
// the duplicate collectors, so give each store its own Registry.
func NewInstrumented(inner Store, reg prometheus.Registerer) *Instrumented {
	ins := &Instrumented{
		store:   inner,
		metrics: newMetrics(),
	}

	reg.MustRegister(
		ins.metrics.operations,
		ins.metrics.lookupOutcomes,
		ins.metrics.deleteOutcomes,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "entries",
			Help:      "Current number of entries in the store.",
		}, func() float64 {
			return float64(inner.Len())
		}),
	)

	return ins
}

// Get returns the value stored under key and counts the lookup outcome.
func (s *Instrumented) Get(key string) (string, bool) {
	value, ok := s.store.Get(key)

	s.metrics.operations.WithLabelValues(opGet).Inc()
	observeOutcome(s.metrics.lookupOutcomes, ok)

	return value, ok
}

// Set stores value under key.
func (s *Instrumented) Set(key, value string) {
	s.store.Set(key, value)

	s.metrics.operations.WithLabelValues(opSet).Inc()
}

// Delete removes key and counts whether there was an entry to remove.
func (s *Instrumented) Delete(key string) (string, bool) {
	value, ok := s.store.Delete(key)

	s.metrics.operations.WithLabelValues(opDelete).Inc()
	observeOutcome(s.metrics.deleteOutcomes, ok)

	return value, ok
}

// Len returns the number of entries in the wrapped store.
func (s *Instrumented) Len() int {
	n := s.store.Len()

	s.metrics.operations.WithLabelValues(opLen).Inc()

	return n
}

// IsEmpty reports whether the wrapped store has no entries.
func (s *Instrumented) IsEmpty() bool {
	empty := s.store.IsEmpty()

	s.metrics.operations.WithLabelValues(opIsEmpty).Inc()

	return empty
}
