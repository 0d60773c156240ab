// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"sync"
	"unsafe"
)

// AllocatorStats is a snapshot of a TrackingAllocator's counters.
type AllocatorStats struct {
	Allocations   int `json:"allocations"`
	Reallocations int `json:"reallocations"`
	Deallocations int `json:"deallocations"`
	Failures      int `json:"failures"`
	// Live is the number of bytes in blocks that have not been released.
	Live int64 `json:"live_bytes"`
	// Peak is the high-water mark of Live. It survives ResetStats.
	Peak int64 `json:"peak_bytes"`
}

// TrackingAllocator forwards to another Allocator and counts every call.
// It is safe for concurrent use if the wrapped allocator is.
type TrackingAllocator struct {
	inner Allocator

	mu    sync.Mutex
	stats AllocatorStats
}

// NewTrackingAllocator wraps inner, or a GoAllocator if inner is nil.
func NewTrackingAllocator(inner Allocator) *TrackingAllocator {
	if inner == nil {
		inner = GoAllocator{}
	}
	return &TrackingAllocator{inner: inner}
}

// Allocate satisfies the Allocator interface.
func (a *TrackingAllocator) Allocate(l Layout) unsafe.Pointer {
	p := a.inner.Allocate(l)

	a.mu.Lock()
	defer a.mu.Unlock()
	if p == nil {
		a.stats.Failures++
		return nil
	}
	a.stats.Allocations++
	a.grew(int64(l.Size))
	return p
}

// Reallocate satisfies the Allocator interface.
func (a *TrackingAllocator) Reallocate(p unsafe.Pointer, old, newLayout Layout) unsafe.Pointer {
	np := a.inner.Reallocate(p, old, newLayout)

	a.mu.Lock()
	defer a.mu.Unlock()
	if np == nil {
		a.stats.Failures++
		return nil
	}
	a.stats.Reallocations++
	a.grew(int64(newLayout.Size) - int64(old.Size))
	return np
}

// Deallocate satisfies the Allocator interface.
func (a *TrackingAllocator) Deallocate(p unsafe.Pointer, l Layout) {
	a.inner.Deallocate(p, l)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Deallocations++
	a.stats.Live -= int64(l.Size)
}

func (a *TrackingAllocator) grew(delta int64) {
	a.stats.Live += delta
	if a.stats.Live > a.stats.Peak {
		a.stats.Peak = a.stats.Live
	}
}

// Stats returns a snapshot of the counters.
func (a *TrackingAllocator) Stats() AllocatorStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Len returns the number of bytes currently held in live blocks.
func (a *TrackingAllocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(a.stats.Live)
}

// Peak returns the high-water mark of Len.
func (a *TrackingAllocator) Peak() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(a.stats.Peak)
}

// ResetStats zeroes the call counters. Live bytes and the peak are kept.
func (a *TrackingAllocator) ResetStats() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Allocations = 0
	a.stats.Reallocations = 0
	a.stats.Deallocations = 0
	a.stats.Failures = 0
}
