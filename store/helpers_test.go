package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time checks that every variant satisfies Store.
var (
	_ Store = (*Map)(nil)
	_ Store = (*Guarded)(nil)
	_ Store = (*Sharded)(nil)
	_ Store = (*Instrumented)(nil)
)

// requireStoredValue verifies that the value stored under key equals
// expected.
func requireStoredValue(t *testing.T, st Store, key, expected string) {
	t.Helper()

	value, ok := st.Get(key)
	require.Truef(t, ok, "Get(%q) must find the key", key)

	assert.Equalf(t, expected, value, "stored value mismatch for key %q", key)
}

// mustDelete removes key and returns the removed value, failing the test
// when the key was absent.
func mustDelete(t *testing.T, st Store, key string) string {
	t.Helper()

	value, ok := st.Delete(key)
	require.Truef(t, ok, "Delete(%q) must find the key", key)

	return value
}
