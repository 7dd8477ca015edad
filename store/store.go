package store

// Store defines the operation surface shared by the core Map and every
// adapter in this package.
//
// General notes:
//
//   - Keys and values are strings; any text is acceptable, including "".
//   - Presence is reported through the boolean second return value, never
//     through an error: every operation is total.
//   - Whether an implementation is safe for concurrent use is a
//     per-implementation property. Map is single-owner; Guarded, Sharded
//     and Instrumented-over-either are safe for concurrent use.
//
// For the concurrent implementations, a Get that completes returns a value
// that was current at some instant during the call; the returned string
// stays valid and unchanged regardless of later mutations.
type Store interface {
	// Get returns the value stored under key and whether the key exists.
	// It has no side effects.
	Get(key string) (string, bool)

	// Set stores value under key, creating the entry or replacing the
	// previous value. It always succeeds.
	Set(key, value string)

	// Delete removes key and returns the removed value. If the key does
	// not exist the store is unchanged and Delete reports ("", false).
	Delete(key string) (string, bool)

	// Len returns the number of entries currently stored.
	Len() int

	// IsEmpty reports whether the store holds no entries.
	IsEmpty() bool
}
