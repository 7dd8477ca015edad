package store

import (
	"fmt"
	"testing"
)

// BenchmarkMap_Get: read performance on a pre-populated single-owner map.
func BenchmarkMap_Get(b *testing.B) {
	b.ReportAllocs()

	const totalSeedKeys = 1000

	m := New()

	b.StopTimer()
	seedStore(b, m, totalSeedKeys, "key-")
	b.StartTimer()

	for i := range b.N {
		keyString := fmt.Sprintf("key-%d", i%totalSeedKeys)
		_, _ = m.Get(keyString)
	}
}

// BenchmarkMap_Set: insert throughput on fresh keys.
func BenchmarkMap_Set(b *testing.B) {
	b.ReportAllocs()

	m := New()

	b.ResetTimer()

	for i := range b.N {
		keyString := fmt.Sprintf("key-%d", i)
		m.Set(keyString, "value")
	}
}

// BenchmarkMap_Set_Replace: steady-state replacement of one hot key.
func BenchmarkMap_Set_Replace(b *testing.B) {
	b.ReportAllocs()

	m := New()
	m.Set("k", "v0")

	b.ResetTimer()

	for b.Loop() {
		m.Set("k", "v1")
	}
}

// BenchmarkMap_Delete: delete throughput across varying store sizes.
// Re-seeding is excluded from timing to isolate the delete cost.
func BenchmarkMap_Delete(b *testing.B) {
	for _, totalSize := range []int{10, 100, 1_000, 10_000} {
		b.Run(fmt.Sprintf("Size=%d", totalSize), func(b *testing.B) {
			b.ReportAllocs()

			m := New()

			b.StopTimer()
			seedStore(b, m, totalSize, "key-")
			b.StartTimer()

			for i := range b.N {
				keyString := fmt.Sprintf("key-%d", i%totalSize)
				_, _ = m.Delete(keyString)

				// Re-seed the deleted key for the next iteration (excluded from timing).
				if i < b.N-1 {
					b.StopTimer()

					m.Set(keyString, "value")

					b.StartTimer()
				}
			}
		})
	}
}

// BenchmarkMap_Len: size reporting on stores of increasing size; expected
// to be flat since Go maps track their length.
func BenchmarkMap_Len(b *testing.B) {
	for _, totalSize := range []int{0, 1_000, 100_000} {
		b.Run(fmt.Sprintf("Size=%d", totalSize), func(b *testing.B) {
			b.ReportAllocs()

			m := New()

			b.StopTimer()
			seedStore(b, m, totalSize, "key-")
			b.StartTimer()

			var sink int

			for b.Loop() {
				sink += m.Len()
			}

			_ = sink
		})
	}
}

// seedStore pre-populates the store with N keys "prefix{i}" -> "value-{i}".
// Seeding happens outside of timed regions in the benchmarks.
func seedStore(b *testing.B, st Store, totalKeys int, keyPrefix string) {
	b.Helper()

	for index := range totalKeys {
		keyString := fmt.Sprintf("%s%d", keyPrefix, index)
		valueString := fmt.Sprintf("value-%d", index)

		st.Set(keyString, valueString)
	}
}

// makeKeyPool deterministically materializes key strings up front to avoid
// per-iteration allocations.
func makeKeyPool(totalKeys int, prefix string) []string {
	keys := make([]string, totalKeys)

	for i := range keys {
		keys[i] = fmt.Sprintf("%s%d", prefix, i)
	}

	return keys
}
