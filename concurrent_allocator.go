// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"sync"
	"unsafe"
)

type concurrentAllocator struct {
	mtx sync.Mutex
	a   Allocator
}

// NewConcurrentAllocator returns an Allocator that serializes every call to a,
// making it safe to install process-wide while vectors are used from several
// goroutines. A nil a fails every allocation.
func NewConcurrentAllocator(a Allocator) Allocator {
	return &concurrentAllocator{a: a}
}

// Allocate satisfies the Allocator interface.
func (c *concurrentAllocator) Allocate(l Layout) unsafe.Pointer {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return nil
	}
	return c.a.Allocate(l)
}

// Reallocate satisfies the Allocator interface.
func (c *concurrentAllocator) Reallocate(p unsafe.Pointer, old, newLayout Layout) unsafe.Pointer {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return nil
	}
	return c.a.Reallocate(p, old, newLayout)
}

// Deallocate satisfies the Allocator interface.
func (c *concurrentAllocator) Deallocate(p unsafe.Pointer, l Layout) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.a == nil {
		return
	}
	c.a.Deallocate(p, l)
}
