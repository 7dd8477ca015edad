package store

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
)

// benchmarkStoreTarget pairs a sub-benchmark name with a store factory so
// Guarded and different Sharded layouts can run under identical load.
type benchmarkStoreTarget struct {
	name  string
	build func() Store
}

// benchmarkStoreTargets returns the stores worth comparing under parallel
// load: the single-lock Guarded store, a single-shard Sharded store, and
// one shard per CPU when that differs.
func benchmarkStoreTargets() []benchmarkStoreTarget {
	targets := []benchmarkStoreTarget{
		{name: "guarded", build: func() Store { return NewGuarded() }},
		{name: "shards=1", build: func() Store { return NewSharded(ShardConfig{Shards: 1}) }},
	}

	cpuShards := max(runtime.NumCPU(), 1)

	if cpuShards != 1 {
		targets = append(targets, benchmarkStoreTarget{
			name:  fmt.Sprintf("shards=%d", cpuShards),
			build: func() Store { return NewSharded(ShardConfig{Shards: cpuShards}) },
		})
	}

	return targets
}

// BenchmarkStores_ParallelGet: parallel read throughput comparing the
// single-lock store against sharded layouts on a warm keyspace.
func BenchmarkStores_ParallelGet(b *testing.B) {
	const keySpace = 100_000

	keys := makeKeyPool(keySpace, "parallel-key-")
	keyCount := uint64(len(keys))

	for _, target := range benchmarkStoreTargets() {
		b.Run(target.name, func(b *testing.B) {
			b.ReportAllocs()

			st := target.build()

			b.StopTimer()

			for _, key := range keys {
				st.Set(key, "value")
			}

			b.StartTimer()
			b.ResetTimer()

			var cursor atomic.Uint64

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					idx := cursor.Add(1) - 1
					key := keys[int(idx%keyCount)]

					_, _ = st.Get(key)
				}
			})
		})
	}
}

// BenchmarkStores_ParallelSet: parallel write throughput comparing the
// single-lock store against sharded layouts.
func BenchmarkStores_ParallelSet(b *testing.B) {
	const keySpace = 100_000

	keys := makeKeyPool(keySpace, "parallel-key-")
	keyCount := uint64(len(keys))

	for _, target := range benchmarkStoreTargets() {
		b.Run(target.name, func(b *testing.B) {
			b.ReportAllocs()

			st := target.build()

			b.ResetTimer()

			var cursor atomic.Uint64

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					idx := cursor.Add(1) - 1
					key := keys[int(idx%keyCount)]

					st.Set(key, "value")
				}
			})
		})
	}
}

// BenchmarkSharded_HashStrategies: single-key Get cost by shard hash
// strategy, isolating the placement function from lock effects.
func BenchmarkSharded_HashStrategies(b *testing.B) {
	const totalSeedKeys = 1000

	for _, strategy := range []HashStrategy{HashXXHash, HashMurmur3, HashFNV1a} {
		b.Run(string(strategy), func(b *testing.B) {
			b.ReportAllocs()

			s := NewSharded(ShardConfig{Shards: 16, Hash: strategy})

			b.StopTimer()
			seedStore(b, s, totalSeedKeys, "key-")
			b.StartTimer()

			for i := range b.N {
				keyString := fmt.Sprintf("key-%d", i%totalSeedKeys)
				_, _ = s.Get(keyString)
			}
		})
	}
}

// BenchmarkShardHashXXHash benchmarks the xxhash shard hash on its own.
func BenchmarkShardHashXXHash(b *testing.B) {
	benchmarkShardHash(b, xxhashShardHash)
}

// BenchmarkShardHashMurmur3 benchmarks the murmur3 shard hash on its own.
func BenchmarkShardHashMurmur3(b *testing.B) {
	benchmarkShardHash(b, murmur3ShardHash)
}

// BenchmarkShardHashFNV benchmarks the fnv1a shard hash on its own.
func BenchmarkShardHashFNV(b *testing.B) {
	benchmarkShardHash(b, fnvShardHash)
}

// benchmarkShardHash feeds generated keys through fn, accumulating into a
// sink so the call cannot be optimized away.
func benchmarkShardHash(b *testing.B, fn shardHashFunc) {
	b.Helper()

	var sink uint64

	b.ReportAllocs()
	b.ResetTimer()

	for i := range b.N {
		key := fmt.Sprintf("bench-key-%04d-%08d", i, i*i)
		sink += fn(key)
	}

	_ = sink
}

// BenchmarkSharded_Len: cross-shard size aggregation cost by shard count.
func BenchmarkSharded_Len(b *testing.B) {
	for _, shardCount := range []int{1, 16, 256} {
		b.Run(fmt.Sprintf("shards=%d", shardCount), func(b *testing.B) {
			b.ReportAllocs()

			s := NewSharded(ShardConfig{Shards: shardCount})

			b.StopTimer()
			seedStore(b, s, 1000, "key-")
			b.StartTimer()

			var sink int

			for b.Loop() {
				sink += s.Len()
			}

			_ = sink
		})
	}
}
