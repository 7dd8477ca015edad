// Package bench drives configurable read/update/delete workloads against
// a Store and reports per-operation latency percentiles.
//
// Workloads follow the YCSB property-file convention: a small set of
// lowercase keys (recordcount, operationcount, readproportion and so on)
// with defaults matching a read-heavy mix. Each worker owns its HDR
// histograms during the run; they are merged once the workers stop, so no
// measurement synchronization sits on the timed path.
package bench
