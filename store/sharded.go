package store

import (
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

type (
	// shard holds one slice of the keyspace behind its own lock.
	shard struct {
		mu sync.RWMutex
		m  *Map
	}

	// shardHashFunc maps a key to the 64-bit hash used for shard selection.
	shardHashFunc func(string) uint64
)

// Standard 64-bit FNV-1a parameters.
const (
	// fnv1aOffset64 is the initial hash value before any input bytes.
	fnv1aOffset64 uint64 = 14695981039346656037
	// fnv1aPrime64 is the multiplier applied per input byte.
	fnv1aPrime64 uint64 = 1099511628211
)

// Sharded splits the keyspace across independently locked shards, each a
// Map of its own, so that operations on different shards never contend.
// It is safe for concurrent use and carries the same per-key guarantees
// as Guarded: values are copied out before any shard lock is released.
//
// Single-key operations touch exactly one shard. Len and IsEmpty lock
// every shard for reading so the reported count is consistent at a single
// instant.
type Sharded struct {
	shards     []*shard
	shardCount int
	hashFn     shardHashFunc
}

// NewSharded returns an empty Sharded store configured by cfg. The zero
// ShardConfig yields one shard per CPU hashed with xxhash.
func NewSharded(cfg ShardConfig) *Sharded {
	count := cfg.ShardCount()

	shards := make([]*shard, count)
	for i := range shards {
		shards[i] = &shard{m: New()}
	}

	return &Sharded{
		shards:     shards,
		shardCount: count,
		hashFn:     selectShardHashFunc(cfg.Hash),
	}
}

// Get returns the value stored under key and whether it exists.
func (s *Sharded) Get(key string) (string, bool) {
	sh := s.shardByKey(key)

	sh.mu.RLock()
	defer sh.mu.RUnlock()

	return sh.m.Get(key)
}

// Set stores value under key, creating or replacing the entry.
func (s *Sharded) Set(key, value string) {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.m.Set(key, value)
}

// Delete removes key and returns the removed value, or ("", false) when
// the key is absent. Exactly one of several concurrent deleters of the
// same key receives the value.
func (s *Sharded) Delete(key string) (string, bool) {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	return sh.m.Delete(key)
}

// Len returns the total number of entries across all shards at a single
// instant.
func (s *Sharded) Len() int {
	s.lockAllShardReaders()
	defer s.unlockAllShardReaders()

	var total int
	for _, sh := range s.shards {
		total += sh.m.Len()
	}

	return total
}

// IsEmpty reports whether every shard held no entries at a single instant.
func (s *Sharded) IsEmpty() bool {
	return s.Len() == 0
}

// ShardCount returns the number of shards the store was created with.
func (s *Sharded) ShardCount() int {
	return s.shardCount
}

// shardByKey returns the shard responsible for key.
func (s *Sharded) shardByKey(key string) *shard {
	return s.shards[s.hashKey(key)]
}

// hashKey maps key to a shard index.
func (s *Sharded) hashKey(key string) int {
	if s.shardCount == 1 {
		return 0
	}

	return int(s.hashFn(key) % uint64(s.shardCount))
}

// lockAllShardReaders takes every shard's read lock in index order.
func (s *Sharded) lockAllShardReaders() {
	for i := 0; i < s.shardCount; i++ {
		s.shards[i].mu.RLock()
	}
}

// unlockAllShardReaders releases the read locks in reverse order to match
// the lock order.
func (s *Sharded) unlockAllShardReaders() {
	for i := s.shardCount - 1; i >= 0; i-- {
		s.shards[i].mu.RUnlock()
	}
}

// selectShardHashFunc resolves a strategy to its hash function. Unknown
// or empty strategies fall back to the default.
func selectShardHashFunc(strategy HashStrategy) shardHashFunc {
	switch strategy {
	case HashMurmur3:
		return murmur3ShardHash
	case HashFNV1a:
		return fnvShardHash
	case HashXXHash:
		return xxhashShardHash
	default:
		return xxhashShardHash
	}
}

// xxhashShardHash hashes key with xxhash.
func xxhashShardHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// murmur3ShardHash hashes key with 64-bit MurmurHash3.
func murmur3ShardHash(key string) uint64 {
	return murmur3.Sum64([]byte(key))
}

// fnvShardHash hashes key with inline FNV-1a, avoiding allocations.
func fnvShardHash(key string) uint64 {
	hash := fnv1aOffset64

	for i := 0; i < len(key); i++ {
		hash ^= uint64(key[i])
		hash *= fnv1aPrime64
	}

	return hash
}
