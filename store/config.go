package store

import (
	"fmt"
	"runtime"
	"strings"
)

// HashStrategy names the function a Sharded store uses to map a key to a
// shard.
type HashStrategy string

const (
	// HashXXHash selects xxhash, fast with a uniform distribution.
	HashXXHash HashStrategy = "xxhash"
	// HashMurmur3 selects 64-bit MurmurHash3.
	HashMurmur3 HashStrategy = "murmur3"
	// HashFNV1a selects an allocation-free inline FNV-1a.
	HashFNV1a HashStrategy = "fnv1a"

	// DefaultHashStrategy is used when ShardConfig.Hash is empty.
	DefaultHashStrategy = HashXXHash
)

// MaxShardCount caps the number of shards a Sharded store will create.
const MaxShardCount = 1024

// ShardConfig holds Sharded-specific configuration. The zero value is
// valid and yields one shard per CPU with the default hash strategy.
type ShardConfig struct {
	// Shards sets the number of shards.
	// If <= 0, defaults to runtime.NumCPU().
	// If > MaxShardCount, capped at MaxShardCount.
	Shards int

	// Hash selects the shard hash strategy. Empty means
	// DefaultHashStrategy. Construct values with ParseHashStrategy when
	// the name comes from user input.
	Hash HashStrategy
}

// ShardCount resolves the configured shard count, applying the NumCPU
// default and the MaxShardCount cap.
func (cfg ShardConfig) ShardCount() int {
	shards := cfg.Shards

	if shards <= 0 {
		shards = max(1, runtime.NumCPU())
	}

	if shards > MaxShardCount {
		shards = MaxShardCount
	}

	return shards
}

// ParseHashStrategy converts a user-supplied name into a HashStrategy.
// Matching is case-insensitive; the empty string resolves to
// DefaultHashStrategy. Unknown names return ErrUnknownHashStrategy.
func ParseHashStrategy(name string) (HashStrategy, error) {
	switch HashStrategy(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultHashStrategy, nil
	case HashXXHash:
		return HashXXHash, nil
	case HashMurmur3:
		return HashMurmur3, nil
	case HashFNV1a:
		return HashFNV1a, nil
	default:
		return "", fmt.Errorf(
			"%w: %q; valid values are: %q, %q, %q",
			ErrUnknownHashStrategy, name, HashXXHash, HashMurmur3, HashFNV1a,
		)
	}
}
