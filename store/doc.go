// Package store provides an in-process key-value store mapping string keys
// to string values, together with adapters that layer synchronization and
// instrumentation on top of it.
//
// The core type, Map, is a thin state-holder around one Go map and is NOT
// safe for concurrent use: it assumes a single owner, and none of its
// operations block or yield. Callers that need concurrent access wrap it in
// one of the provided adapters (Guarded, Sharded) or supply their own
// mutual exclusion; the adapters never change operation semantics, they
// only serialize access.
//
// Operation semantics are identical across all implementations:
//
//   - Get never creates, mutates, or removes entries. A missing key yields
//     ("", false); absence is an ordinary result, not an error.
//   - Set inserts or replaces. Replacing discards the prior value and never
//     changes Len().
//   - Delete detaches the entry and returns the removed value to the
//     caller; deleting a missing key is a no-op that reports ("", false).
//   - Every operation is total: there are no error returns anywhere on the
//     operation surface, and any string is a legal key or value, including
//     the empty string.
//
// Because Go strings are immutable, a value returned by Get or Delete is
// independent of the store the moment it is returned: overwriting or
// deleting the entry afterwards cannot affect it.
package store
