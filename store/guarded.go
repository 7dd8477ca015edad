package store

import "sync"

// Guarded wraps a Map with a single reader/writer lock, making it safe for
// concurrent use by multiple goroutines. Reads (Get, Len, IsEmpty) share
// the lock; Set and Delete take it exclusively.
//
// A Get that completes observed a value that was current at some instant
// during the call: the value is copied out before the lock is released, so
// a concurrent Delete or Set can never leave the caller holding a torn or
// reclaimed value.
type Guarded struct {
	mu sync.RWMutex
	m  *Map
}

// NewGuarded returns an empty Guarded store.
func NewGuarded() *Guarded {
	return &Guarded{
		mu: sync.RWMutex{},
		m:  New(),
	}
}

// Get returns the value stored under key and whether it exists. The
// returned string is independent of the store and survives any later
// mutation of the entry.
func (g *Guarded) Get(key string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.m.Get(key)
}

// Set stores value under key, creating or replacing the entry.
func (g *Guarded) Set(key, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.m.Set(key, value)
}

// Delete removes key and returns the removed value, or ("", false) when
// the key is absent. Under contention exactly one of several concurrent
// deleters of the same key receives the value.
func (g *Guarded) Delete(key string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.m.Delete(key)
}

// Len returns the number of entries at some instant during the call.
func (g *Guarded) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.m.Len()
}

// IsEmpty reports whether the store held no entries at some instant during
// the call.
func (g *Guarded) IsEmpty() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.m.IsEmpty()
}
