// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackingAllocatorCounts(t *testing.T) {
	a := NewTrackingAllocator(nil)

	l, err := LayoutOf[int64](4)
	require.NoError(t, err)
	p := a.Allocate(l)
	require.NotNil(t, p)
	require.Equal(t, int(l.Size), a.Len())

	bigger, err := LayoutOf[int64](8)
	require.NoError(t, err)
	p = a.Reallocate(p, l, bigger)
	require.NotNil(t, p)
	require.Equal(t, int(bigger.Size), a.Len())
	require.Equal(t, int(bigger.Size), a.Peak())

	a.Deallocate(p, bigger)
	require.Zero(t, a.Len())
	require.Equal(t, int(bigger.Size), a.Peak())

	require.Equal(t, AllocatorStats{
		Allocations:   1,
		Reallocations: 1,
		Deallocations: 1,
		Live:          0,
		Peak:          int64(bigger.Size),
	}, a.Stats())
}

func TestTrackingAllocatorFailures(t *testing.T) {
	a := NewTrackingAllocator(failingAllocator{})
	useAllocator(t, a)

	var v Vec[int]
	require.ErrorIs(t, v.TryReserve(4), ErrAllocFailed)
	require.ErrorIs(t, v.TryReserveExact(1), ErrAllocFailed)

	stats := a.Stats()
	require.Equal(t, 2, stats.Failures)
	require.Zero(t, stats.Allocations)
	require.Zero(t, stats.Live)
}

func TestTrackingAllocatorResetStats(t *testing.T) {
	a := useTracking(t)

	v := Of(1, 2, 3)
	v.Push(4)
	a.ResetStats()

	stats := a.Stats()
	require.Zero(t, stats.Allocations)
	require.Zero(t, stats.Reallocations)
	require.NotZero(t, stats.Live)
	require.NotZero(t, stats.Peak)

	v.Release()
	require.Zero(t, a.Len())
}

func TestAllocatorStatsJSON(t *testing.T) {
	data, err := json.Marshal(AllocatorStats{Allocations: 1, Live: 48, Peak: 64})
	require.NoError(t, err)
	require.JSONEq(t, `{"allocations":1,"reallocations":0,"deallocations":0,"failures":0,"live_bytes":48,"peak_bytes":64}`, string(data))
}

func TestSetAllocatorRestores(t *testing.T) {
	prev := CurrentAllocator()
	a := NewTrackingAllocator(nil)

	restore := SetAllocator(a)
	require.Same(t, a, CurrentAllocator())
	restore()
	require.Equal(t, prev, CurrentAllocator())

	restore = SetAllocator(nil)
	require.Equal(t, GoAllocator{}, CurrentAllocator())
	restore()
}
