package store

// Map is the core key-value store: a mutable collection of (key, value)
// pairs with at most one value per key.
//
// Map is NOT safe for concurrent use. It is designed for a single owner;
// wrap it in Guarded or Sharded when multiple goroutines need access.
type Map struct {
	entries map[string]string
}

// New returns an empty Map. It never fails.
func New() *Map {
	return &Map{
		entries: make(map[string]string),
	}
}

// Get returns the value stored under key, or ("", false) when the key is
// absent. It never modifies the store, and repeated calls without an
// intervening mutation return equal values.
func (m *Map) Get(key string) (string, bool) {
	value, ok := m.entries[key]

	return value, ok
}

// Set stores value under key. A new key grows Len() by one; an existing
// key has its value replaced in place, leaving Len() unchanged. The
// replaced value is discarded and no longer reachable from the store.
func (m *Map) Set(key, value string) {
	m.entries[key] = value
}

// Delete removes key and hands the removed value to the caller. When the
// key is absent, Delete is a no-op and reports ("", false); absence is an
// expected outcome, not a failure.
func (m *Map) Delete(key string) (string, bool) {
	value, ok := m.entries[key]
	if !ok {
		return "", false
	}

	delete(m.entries, key)

	return value, true
}

// Len returns the exact number of entries; it always equals the number of
// distinct keys for which the most recent mutation was a Set.
func (m *Map) Len() int {
	return len(m.entries)
}

// IsEmpty reports whether the store holds no entries. It is equivalent to
// Len() == 0.
func (m *Map) IsEmpty() bool {
	return len(m.entries) == 0
}
