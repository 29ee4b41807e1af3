// Package stub replaces package-level values in tests.
package stub

import "testing"

// Replace sets *dst to val and restores the old value when the test
// finishes.
//
// Tests that use Replace on shared state must not be run in parallel.
func Replace[V any](t testing.TB, dst *V, val V) {
	old := *dst
	*dst = val
	t.Cleanup(func() {
		*dst = old
	})
}
