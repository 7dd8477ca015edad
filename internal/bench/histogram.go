package bench

import (
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// Operation kinds reported by a run.
const (
	opRead   = "read"
	opUpdate = "update"
	opDelete = "delete"
)

// Latency bounds for the histograms, in microseconds. Samples outside the
// range are clamped rather than dropped.
const (
	minLatencyMicros = 1
	maxLatencyMicros = 60_000_000
	sigFigures       = 3
)

// latencyRecorder accumulates latencies and hit/miss outcomes for one
// operation kind on one worker. A recorder has a single writer during the
// run; recorders are merged only after the workers stop.
type latencyRecorder struct {
	hist   *hdrhistogram.Histogram
	hits   int64
	misses int64
}

func newLatencyRecorder() *latencyRecorder {
	return &latencyRecorder{
		hist: hdrhistogram.New(minLatencyMicros, maxLatencyMicros, sigFigures),
	}
}

// record adds one observed latency.
func (r *latencyRecorder) record(elapsed time.Duration) {
	micros := elapsed.Microseconds()

	if micros < minLatencyMicros {
		micros = minLatencyMicros
	}

	if micros > maxLatencyMicros {
		micros = maxLatencyMicros
	}

	// The value was clamped into range, so recording cannot fail.
	_ = r.hist.RecordValue(micros)
}

// recordOutcome notes whether a presence-reporting operation found its
// key.
func (r *latencyRecorder) recordOutcome(ok bool) {
	if ok {
		r.hits++
		return
	}

	r.misses++
}

// merge folds other into r.
func (r *latencyRecorder) merge(other *latencyRecorder) {
	r.hist.Merge(other.hist)

	r.hits += other.hits
	r.misses += other.misses
}
