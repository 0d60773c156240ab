// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"sync/atomic"
	"unsafe"
)

// Allocator is the memory primitive vectors allocate their blocks from.
//
// A block starts with the vector header and holds Layout.Cap element slots at
// Layout.Offset. Every slot of a freshly allocated block must read as the zero
// value of the element type.
type Allocator interface {
	// Allocate returns a block for the given layout, or nil if the request
	// cannot be satisfied.
	Allocate(l Layout) unsafe.Pointer

	// Reallocate returns a block for newLayout holding the first
	// min(old.Size, newLayout.Size) bytes of p, or nil on failure, in which case
	// p is left untouched. After a successful call p must not be used again.
	Reallocate(p unsafe.Pointer, old, newLayout Layout) unsafe.Pointer

	// Deallocate releases a block previously returned with layout l.
	Deallocate(p unsafe.Pointer, l Layout)
}

type allocatorHolder struct {
	a Allocator
}

var current atomic.Pointer[allocatorHolder]

func init() {
	current.Store(&allocatorHolder{a: GoAllocator{}})
}

// SetAllocator replaces the process-wide Allocator and returns a function
// restoring the previous one.
//
// Blocks are always released through the allocator installed at the time of
// release, so the allocator must only be swapped while no vector holds a block.
func SetAllocator(a Allocator) (restore func()) {
	if a == nil {
		a = GoAllocator{}
	}
	prev := current.Swap(&allocatorHolder{a: a})
	return func() {
		current.Store(prev)
	}
}

// CurrentAllocator returns the process-wide Allocator.
func CurrentAllocator() Allocator {
	return current.Load().a
}
