// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcurrentAllocatorForwards(t *testing.T) {
	base := NewArenaAllocator(WithInitialBufferCount(1), WithMinBufferSize(1024))
	a := NewConcurrentAllocator(base)

	l, err := LayoutOf[uint32](8)
	require.NoError(t, err)
	p := a.Allocate(l)
	require.NotNil(t, p)
	require.Equal(t, int(l.Size), base.Len())

	bigger, err := LayoutOf[uint32](16)
	require.NoError(t, err)
	p = a.Reallocate(p, l, bigger)
	require.NotNil(t, p)
	require.Equal(t, int(bigger.Size), base.Len())

	a.Deallocate(p, bigger)
	require.Equal(t, 0, base.Len())
}

func TestConcurrentAllocatorNil(t *testing.T) {
	a := NewConcurrentAllocator(nil)
	l, err := LayoutOf[int](1)
	require.NoError(t, err)
	require.Nil(t, a.Allocate(l))
	require.Nil(t, a.Reallocate(nil, l, l))
	a.Deallocate(nil, l)

	useAllocator(t, a)
	var v Vec[int]
	require.ErrorIs(t, v.TryReserve(1), ErrAllocFailed)
}

func TestConcurrentAllocatorConcurrentAccess(t *testing.T) {
	base := NewArenaAllocator(WithInitialBufferCount(1), WithMinBufferSize(1024*1024)) // Large arena for concurrent access
	useAllocator(t, NewConcurrentAllocator(base))

	const numGoroutines = 10
	const pushesPerGoroutine = 1000

	results := make([]Vec[int64], numGoroutines)
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			var v Vec[int64]
			for j := 0; j < pushesPerGoroutine; j++ {
				v.Push(int64(i*pushesPerGoroutine + j))
			}
			results[i] = v
		}()
	}

	wg.Wait()

	for i := range results {
		require.Equal(t, pushesPerGoroutine, results[i].Len())
		for j, x := range results[i].All() {
			require.Equal(t, int64(i*pushesPerGoroutine+j), x)
		}
		results[i].Release()
	}
}

func TestConcurrentAllocatorWithTracking(t *testing.T) {
	tracking := NewTrackingAllocator(nil)
	useAllocator(t, NewConcurrentAllocator(tracking))

	const numGoroutines = 8

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			v := WithCapacity[string](16)
			for range 64 {
				v.Push("x")
			}
			v.Release()
		}()
	}
	wg.Wait()

	stats := tracking.Stats()
	require.Equal(t, numGoroutines, stats.Allocations)
	require.Equal(t, numGoroutines*2, stats.Reallocations)
	require.Equal(t, numGoroutines, stats.Deallocations)
	require.Zero(t, stats.Live)
}
