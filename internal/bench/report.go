package bench

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// OperationStats summarizes one operation kind over a run. Latencies are
// in microseconds.
type OperationStats struct {
	Name   string
	Count  int64
	Hits   int64
	Misses int64
	QPS    float64

	MinMicros int64
	AvgMicros float64
	P50Micros int64
	P95Micros int64
	P99Micros int64
	MaxMicros int64
}

// Report aggregates per-operation statistics for one benchmark run.
// Operations is sorted by name and omits kinds the mix never chose.
// PayloadBytes totals the value bytes moved by the timed operations:
// read and delete hits return a value, updates write one, misses move
// nothing.
type Report struct {
	Elapsed      time.Duration
	TotalOps     int64
	PayloadBytes int64
	Operations   []OperationStats
}

// buildReport merges the worker recorders into a run-wide report.
func buildReport(workers []*worker, elapsed time.Duration) *Report {
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}

	merged := map[string]*latencyRecorder{
		opRead:   newLatencyRecorder(),
		opUpdate: newLatencyRecorder(),
		opDelete: newLatencyRecorder(),
	}

	for _, wk := range workers {
		merged[opRead].merge(wk.read)
		merged[opUpdate].merge(wk.update)
		merged[opDelete].merge(wk.del)
	}

	var valueSize int64
	if len(workers) > 0 {
		valueSize = int64(workers[0].workload.ValueSize)
	}

	movedValues := merged[opRead].hits + merged[opUpdate].hist.TotalCount() + merged[opDelete].hits

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}

	sort.Strings(names)

	report := &Report{
		Elapsed:      elapsed,
		PayloadBytes: movedValues * valueSize,
	}

	for _, name := range names {
		recorder := merged[name]

		count := recorder.hist.TotalCount()
		if count == 0 {
			continue
		}

		report.TotalOps += count
		report.Operations = append(report.Operations, OperationStats{
			Name:      name,
			Count:     count,
			Hits:      recorder.hits,
			Misses:    recorder.misses,
			QPS:       float64(count) / elapsed.Seconds(),
			MinMicros: recorder.hist.Min(),
			AvgMicros: recorder.hist.Mean(),
			P50Micros: recorder.hist.ValueAtQuantile(50),
			P95Micros: recorder.hist.ValueAtQuantile(95),
			P99Micros: recorder.hist.ValueAtQuantile(99),
			MaxMicros: recorder.hist.Max(),
		})
	}

	return report
}

// WriteTable renders the report as an aligned table. Hit and miss columns
// show "-" for operations that have no presence outcome.
func (r *Report) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "Run finished in %v (%s operations, %s moved)\n",
		r.Elapsed.Round(time.Millisecond), humanize.Comma(r.TotalOps),
		humanize.Bytes(uint64(r.PayloadBytes)))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"OP", "COUNT", "HITS", "MISSES", "QPS",
		"MIN(US)", "AVG(US)", "P50(US)", "P95(US)", "P99(US)", "MAX(US)",
	})

	for _, op := range r.Operations {
		hits, misses := humanize.Comma(op.Hits), humanize.Comma(op.Misses)
		if op.Hits+op.Misses == 0 {
			hits, misses = "-", "-"
		}

		table.Append([]string{
			op.Name,
			humanize.Comma(op.Count),
			hits,
			misses,
			fmt.Sprintf("%.1f", op.QPS),
			fmt.Sprintf("%d", op.MinMicros),
			fmt.Sprintf("%.1f", op.AvgMicros),
			fmt.Sprintf("%d", op.P50Micros),
			fmt.Sprintf("%d", op.P95Micros),
			fmt.Sprintf("%d", op.P99Micros),
			fmt.Sprintf("%d", op.MaxMicros),
		})
	}

	table.Render()
}
