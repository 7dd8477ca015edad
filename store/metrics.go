package store

import "github.com/prometheus/client_golang/prometheus"

// metricsNamespace prefixes every collector exported by this package.
const metricsNamespace = "memkv"

// Operation label values reported by an Instrumented store.
const (
	opGet     = "get"
	opSet     = "set"
	opDelete  = "delete"
	opLen     = "len"
	opIsEmpty = "is_empty"
)

// Outcome label values for presence-reporting operations.
const (
	outcomeHit  = "hit"
	outcomeMiss = "miss"
)

// metrics bundles the counters an Instrumented store updates.
type metrics struct {
	// operations counts calls by operation kind.
	operations *prometheus.CounterVec
	// lookupOutcomes counts Get calls by hit/miss.
	lookupOutcomes *prometheus.CounterVec
	// deleteOutcomes counts Delete calls by hit/miss.
	deleteOutcomes *prometheus.CounterVec
}

// newMetrics builds the counter bundle. Registration is left to the
// caller so the collectors can share a Registerer with the entries gauge.
func newMetrics() *metrics {
	return &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Total store operations by kind.",
		}, []string{"op"}),
		lookupOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lookup_outcomes_total",
			Help:      "Get results by presence of the key.",
		}, []string{"outcome"}),
		deleteOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "delete_outcomes_total",
			Help:      "Delete results by presence of the key.",
		}, []string{"outcome"}),
	}
}

// observeOutcome increments the hit or miss counter of vec.
func observeOutcome(vec *prometheus.CounterVec, ok bool) {
	if ok {
		vec.WithLabelValues(outcomeHit).Inc()
		return
	}

	vec.WithLabelValues(outcomeMiss).Inc()
}
