package bench

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/andyeko/memkv/store"
)

// cancelCheckInterval is how many preload inserts happen between context
// checks, keeping large preloads interruptible without a select per key.
const cancelCheckInterval = 4096

// worker runs one thread's share of the workload.
type worker struct {
	id       int
	store    store.Store
	workload *Workload
	rng      *rand.Rand

	opCount         int
	opsDone         int
	targetOpsTickNs int64

	read   *latencyRecorder
	update *latencyRecorder
	del    *latencyRecorder
}

// newWorker splits the operation budget across threads: every thread gets
// the integer share and the first OperationCount%ThreadCount threads take
// one extra, so the shares sum exactly to the budget.
func newWorker(id int, st store.Store, w *Workload) *worker {
	wk := &worker{
		id:       id,
		store:    st,
		workload: w,
		rng:      rand.New(rand.NewPCG(0, uint64(id)+1)),
		read:     newLatencyRecorder(),
		update:   newLatencyRecorder(),
		del:      newLatencyRecorder(),
	}

	wk.opCount = w.OperationCount / w.ThreadCount
	if id < w.OperationCount%w.ThreadCount {
		wk.opCount++
	}

	if w.Target > 0 {
		perThread := float64(w.Target) / float64(w.ThreadCount)
		wk.targetOpsTickNs = int64(float64(time.Second) / perThread)
	}

	return wk
}

// run executes the worker's operation share until it is spent or ctx is
// canceled.
func (wk *worker) run(ctx context.Context) {
	startTime := time.Now()

	for wk.opsDone < wk.opCount {
		select {
		case <-ctx.Done():
			return
		default:
		}

		wk.step()
		wk.opsDone++
		wk.throttle(ctx, startTime)
	}
}

// step performs one operation chosen by the workload mix.
func (wk *worker) step() {
	var (
		w   = wk.workload
		n   = wk.rng.IntN(w.RecordCount)
		key = w.keyName(n)
	)

	switch choice := wk.rng.Float64(); {
	case choice < w.ReadProportion:
		started := time.Now()
		_, ok := wk.store.Get(key)
		wk.read.record(time.Since(started))

		wk.read.recordOutcome(ok)
	case choice < w.ReadProportion+w.UpdateProportion:
		value := w.valueFor(n)

		started := time.Now()
		wk.store.Set(key, value)
		wk.update.record(time.Since(started))
	default:
		started := time.Now()
		_, ok := wk.store.Delete(key)
		wk.del.record(time.Since(started))

		wk.del.recordOutcome(ok)

		// Refill the slot off the clock so the population stays at
		// RecordCount. A concurrent deleter of the same key refills it
		// on its own turn.
		if ok {
			wk.store.Set(key, w.valueFor(n))
		}
	}
}

// throttle sleeps long enough to keep the worker on its pacing schedule.
// Pacing is computed from the run start so a slow operation is followed
// by a shorter sleep, not a permanently shifted schedule.
func (wk *worker) throttle(ctx context.Context, startTime time.Time) {
	if wk.targetOpsTickNs <= 0 {
		return
	}

	due := startTime.Add(time.Duration(int64(wk.opsDone) * wk.targetOpsTickNs))

	wait := time.Until(due)
	if wait <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}

// Run preloads the population, executes the workload against st, and
// returns the merged report.
//
// General notes:
//   - st must be safe for concurrent use when ThreadCount > 1; wrap a
//     plain Map in Guarded or Sharded first.
//   - Canceling ctx stops the workers early; the report then covers the
//     operations that completed. Cancellation during preload aborts the
//     run with the context's error.
func Run(ctx context.Context, st store.Store, w *Workload) (*Report, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	if err := preload(ctx, st, w); err != nil {
		return nil, err
	}

	workers := make([]*worker, w.ThreadCount)
	for i := range workers {
		workers[i] = newWorker(i, st, w)
	}

	var wg sync.WaitGroup

	wg.Add(len(workers))

	started := time.Now()

	for _, wk := range workers {
		go func(wk *worker) {
			defer wg.Done()

			wk.run(ctx)
		}(wk)
	}

	wg.Wait()

	return buildReport(workers, time.Since(started)), nil
}

// preload inserts the initial population.
func preload(ctx context.Context, st store.Store, w *Workload) error {
	for i := range w.RecordCount {
		if i%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		st.Set(w.keyName(i), w.valueFor(i))
	}

	return nil
}
