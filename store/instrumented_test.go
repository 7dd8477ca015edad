package store

import (
	"strconv"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewInstrumented verifies construction registers the collectors with
// the given registry. Counters without observations are omitted from
// Gather output, so a fresh store exposes only the entries gauge.
func TestNewInstrumented(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	ins := NewInstrumented(New(), reg)

	require.NotNil(t, ins, "NewInstrumented() must not return nil")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	assert.Contains(t, names, "memkv_entries", "the entries gauge must be registered")
}

// TestInstrumented_ForwardsOperations checks the wrapper changes no
// behavior: the wrapped store sees every mutation and the wrapper returns
// the inner results unchanged.
func TestInstrumented_ForwardsOperations(t *testing.T) {
	t.Parallel()

	var (
		inner = New()
		ins   = NewInstrumented(inner, prometheus.NewRegistry())
	)

	ins.Set("name", "Alice")
	requireStoredValue(t, inner, "name", "Alice")
	requireStoredValue(t, ins, "name", "Alice")

	assert.Equal(t, 1, ins.Len())
	assert.False(t, ins.IsEmpty())

	removed := mustDelete(t, ins, "name")
	assert.Equal(t, "Alice", removed, "the removed value must pass through the wrapper")
	assert.True(t, inner.IsEmpty(), "the delete must reach the wrapped store")
}

// TestInstrumented_CountsOperations drives a known operation mix and
// asserts the per-operation and per-outcome counters match it exactly.
func TestInstrumented_CountsOperations(t *testing.T) {
	t.Parallel()

	ins := NewInstrumented(NewGuarded(), prometheus.NewRegistry())

	ins.Set("key1", "value1")
	ins.Set("key2", "value2")

	_, _ = ins.Get("key1")
	_, _ = ins.Get("key2")
	_, _ = ins.Get("missing")

	_, _ = ins.Delete("key1")
	_, _ = ins.Delete("missing")

	_ = ins.Len()
	_ = ins.IsEmpty()

	operations := ins.metrics.operations

	assert.EqualValues(t, 2, testutil.ToFloat64(operations.WithLabelValues(opSet)))
	assert.EqualValues(t, 3, testutil.ToFloat64(operations.WithLabelValues(opGet)))
	assert.EqualValues(t, 2, testutil.ToFloat64(operations.WithLabelValues(opDelete)))
	assert.EqualValues(t, 1, testutil.ToFloat64(operations.WithLabelValues(opLen)))
	assert.EqualValues(t, 1, testutil.ToFloat64(operations.WithLabelValues(opIsEmpty)))

	assert.EqualValues(t, 2, testutil.ToFloat64(ins.metrics.lookupOutcomes.WithLabelValues(outcomeHit)),
		"two lookups hit")
	assert.EqualValues(t, 1, testutil.ToFloat64(ins.metrics.lookupOutcomes.WithLabelValues(outcomeMiss)),
		"one lookup missed")
	assert.EqualValues(t, 1, testutil.ToFloat64(ins.metrics.deleteOutcomes.WithLabelValues(outcomeHit)),
		"one delete hit")
	assert.EqualValues(t, 1, testutil.ToFloat64(ins.metrics.deleteOutcomes.WithLabelValues(outcomeMiss)),
		"one delete missed")
}

// TestInstrumented_EntriesGauge verifies the gauge reports the wrapped
// store's size at gather time rather than a cached snapshot.
func TestInstrumented_EntriesGauge(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	ins := NewInstrumented(New(), reg)

	assert.EqualValues(t, 0, gatherEntriesGauge(t, reg))

	ins.Set("key1", "value1")
	ins.Set("key2", "value2")
	ins.Set("key3", "value3")
	assert.EqualValues(t, 3, gatherEntriesGauge(t, reg))

	mustDelete(t, ins, "key2")
	assert.EqualValues(t, 2, gatherEntriesGauge(t, reg))
}

// TestInstrumented_ConcurrentCounting hammers a wrapped Guarded store from
// many goroutines and checks the operation counters add up afterwards.
func TestInstrumented_ConcurrentCounting(t *testing.T) {
	t.Parallel()

	const (
		goroutineCount  = 16
		opsPerGoroutine = 200
	)

	var (
		ins = NewInstrumented(NewGuarded(), prometheus.NewRegistry())
		wg  sync.WaitGroup
	)

	wg.Add(goroutineCount)

	for i := range goroutineCount {
		go func(n int) {
			defer wg.Done()

			key := "key" + strconv.Itoa(n)

			for range opsPerGoroutine {
				ins.Set(key, "value")
				_, _ = ins.Get(key)
			}
		}(i)
	}

	wg.Wait()

	const expectedPerOp = goroutineCount * opsPerGoroutine

	assert.EqualValues(t, expectedPerOp, testutil.ToFloat64(ins.metrics.operations.WithLabelValues(opSet)))
	assert.EqualValues(t, expectedPerOp, testutil.ToFloat64(ins.metrics.operations.WithLabelValues(opGet)))
	assert.EqualValues(t, expectedPerOp, testutil.ToFloat64(ins.metrics.lookupOutcomes.WithLabelValues(outcomeHit)),
		"every lookup must hit its own key")
}

// gatherEntriesGauge scrapes reg and returns the memkv_entries value.
func gatherEntriesGauge(t *testing.T, reg *prometheus.Registry) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() == "memkv_entries" {
			require.Len(t, family.GetMetric(), 1)

			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}

	require.FailNow(t, "memkv_entries not found in gathered metrics")

	return 0
}
