// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// counters records what happened to tracked elements.
type counters struct {
	clones  int
	drops   int
	dropped []int
}

// tracked is an instrumented element type: it counts its clones and drops.
type tracked struct {
	id int
	c  *counters
}

func (t *tracked) Drop() {
	t.c.drops++
	t.c.dropped = append(t.c.dropped, t.id)
}

func (t *tracked) Clone() tracked {
	t.c.clones++
	return tracked{id: t.id, c: t.c}
}

func trackedRange(c *counters, n int) Vec[tracked] {
	v := WithCapacity[tracked](n)
	for i := range n {
		v.Push(tracked{id: i, c: c})
	}
	return v
}

func ids(s []tracked) []int {
	out := make([]int, len(s))
	for i, x := range s {
		out[i] = x.id
	}
	return out
}

// failingAllocator refuses every request.
type failingAllocator struct{}

func (failingAllocator) Allocate(Layout) unsafe.Pointer { return nil }
func (failingAllocator) Reallocate(unsafe.Pointer, Layout, Layout) unsafe.Pointer { return nil }
func (failingAllocator) Deallocate(unsafe.Pointer, Layout) {}

// useAllocator installs a for the duration of the test.
func useAllocator(t testing.TB, a Allocator) {
	t.Helper()
	t.Cleanup(SetAllocator(a))
}

// useTracking installs a fresh TrackingAllocator over the Go heap.
func useTracking(t testing.TB) *TrackingAllocator {
	t.Helper()
	a := NewTrackingAllocator(nil)
	useAllocator(t, a)
	return a
}

// requirePanicsWith asserts that f panics with an error matching target.
func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	v := func() (v any) {
		defer func() { v = recover() }()
		f()
		return nil
	}()
	require.NotNil(t, v, "expected a panic")
	err, ok := v.(error)
	require.True(t, ok, "panic value %v is not an error", v)
	require.True(t, errors.Is(err, target), "got %v, want %v", err, target)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
