// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"reflect"
	"sync"
	"unsafe"
)

// ArenaAllocator is a monotonic arena serving vectors whose element type holds
// no pointers. Blocks are carved out of large byte buffers; only the most
// recent block of a buffer can be resized in place or given back, everything
// else is reclaimed by Reset or Release.
//
// ArenaAllocator is not safe for concurrent use; wrap it with
// NewConcurrentAllocator before installing it with SetAllocator in programs
// that use vectors from several goroutines.
type ArenaAllocator struct {
	buffers            []*arenaBuffer
	peak               uintptr // tracks peak allocated space
	minBufferSize      uintptr // minimum size for new buffers
	initialBufferCount int     // number of initial buffers to create
}

type arenaBuffer struct {
	ptr    unsafe.Pointer
	offset uintptr
	last   uintptr // start of the most recent block
	size   uintptr
}

func newArenaBuffer(size int) *arenaBuffer {
	return &arenaBuffer{size: uintptr(size)}
}

func (s *arenaBuffer) alloc(size, alignment uintptr) (unsafe.Pointer, bool) {
	if s.size == 0 {
		return nil, false
	}
	if s.ptr == nil {
		buf := make([]byte, s.size) // allocate arena buffer lazily
		s.ptr = unsafe.Pointer(unsafe.SliceData(buf))
	}
	base := uintptr(s.ptr)
	aligned, ok := alignUp(base+s.offset, alignment)
	if !ok {
		return nil, false
	}
	start := aligned - base
	if start > s.size || s.size-start < size {
		return nil, false
	}
	ptr := unsafe.Add(s.ptr, start)

	// Compiled to runtime.memclrNoHeapPointers.
	clear(unsafe.Slice((*byte)(ptr), size))

	s.last = start
	s.offset = start + size
	return ptr, true
}

// isLast reports whether p is the most recent, still live block of s.
func (s *arenaBuffer) isLast(p unsafe.Pointer) bool {
	return s.ptr != nil && s.offset > s.last && p == unsafe.Add(s.ptr, s.last)
}

func (s *arenaBuffer) reset() {
	s.offset = 0
	s.last = 0
}

func (s *arenaBuffer) release() {
	s.reset()
	s.ptr = nil
}

func (s *arenaBuffer) availableBytes() uintptr {
	return s.size - s.offset
}

const (
	minBufferSize = 1024 * 32 // 32KB
)

// ArenaOption represents a configuration option for an ArenaAllocator.
type ArenaOption func(*ArenaAllocator)

// WithMinBufferSize sets the minimum buffer size for new buffers created by the arena.
func WithMinBufferSize(size int) ArenaOption {
	return func(a *ArenaAllocator) {
		a.minBufferSize = uintptr(size)
	}
}

// WithInitialBufferCount sets the number of initial buffers to create.
func WithInitialBufferCount(count int) ArenaOption {
	return func(a *ArenaAllocator) {
		a.initialBufferCount = count
	}
}

// NewArenaAllocator creates an arena with optional configuration. Without
// options it starts with one lazily allocated 32KB buffer.
func NewArenaAllocator(opts ...ArenaOption) *ArenaAllocator {
	a := &ArenaAllocator{
		minBufferSize:      minBufferSize,
		initialBufferCount: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	for i := 0; i < a.initialBufferCount; i++ {
		a.buffers = append(a.buffers, newArenaBuffer(int(a.minBufferSize)))
	}
	return a
}

// Allocate satisfies the Allocator interface. It panics with an
// *UnsupportedTypeError if the layout's element type contains pointers.
func (a *ArenaAllocator) Allocate(l Layout) unsafe.Pointer {
	checkPointerFree(l.Elem)
	return a.alloc(l.Size, l.Align)
}

func (a *ArenaAllocator) alloc(size, alignment uintptr) unsafe.Pointer {
	for _, s := range a.buffers {
		if ptr, ok := s.alloc(size, alignment); ok {
			a.updatePeak()
			return ptr
		}
	}

	// No existing buffer has enough space: the new one must fit the block
	// plus worst-case alignment padding.
	newBufferSize := max(size+alignment-1, a.minBufferSize)
	newBuffer := newArenaBuffer(int(newBufferSize))
	a.buffers = append(a.buffers, newBuffer)

	ptr, ok := newBuffer.alloc(size, alignment)
	if !ok {
		return nil
	}
	a.updatePeak()
	return ptr
}

// Reallocate satisfies the Allocator interface. The most recent block of a
// buffer is resized in place when the buffer has room.
func (a *ArenaAllocator) Reallocate(p unsafe.Pointer, old, newLayout Layout) unsafe.Pointer {
	checkPointerFree(newLayout.Elem)
	for _, s := range a.buffers {
		if !s.isLast(p) || s.size-s.last < newLayout.Size {
			continue
		}
		if newLayout.Size > old.Size {
			clear(unsafe.Slice((*byte)(unsafe.Add(p, old.Size)), newLayout.Size-old.Size))
		}
		s.offset = s.last + newLayout.Size
		a.updatePeak()
		return p
	}

	np := a.alloc(newLayout.Size, newLayout.Align)
	if np == nil {
		return nil
	}
	n := min(old.Size, newLayout.Size)
	copy(unsafe.Slice((*byte)(np), n), unsafe.Slice((*byte)(p), n))
	return np
}

// Deallocate satisfies the Allocator interface. Only the most recent block of
// a buffer is actually given back.
func (a *ArenaAllocator) Deallocate(p unsafe.Pointer, _ Layout) {
	for _, s := range a.buffers {
		if s.isLast(p) {
			s.offset = s.last
			return
		}
	}
}

func (a *ArenaAllocator) updatePeak() {
	if l := a.len(); l > a.peak {
		a.peak = l
	}
}

// Reset rewinds every buffer without releasing its memory. Every block handed
// out so far becomes invalid, so all vectors using the arena must be dropped
// or forgotten first.
func (a *ArenaAllocator) Reset() {
	for _, s := range a.buffers {
		s.reset()
	}
}

// Release drops the arena's buffers, leaving them to the garbage collector.
func (a *ArenaAllocator) Release() {
	for _, s := range a.buffers {
		s.release()
	}
}

// len returns the total number of bytes currently allocated in the arena (internal helper).
func (a *ArenaAllocator) len() uintptr {
	var total uintptr
	for _, s := range a.buffers {
		total += s.offset
	}
	return total
}

// Len returns the total number of bytes currently allocated in the arena.
func (a *ArenaAllocator) Len() int {
	return int(a.len())
}

// Cap returns the total capacity (maximum bytes) of the arena's buffers.
func (a *ArenaAllocator) Cap() int {
	var total uintptr
	for _, s := range a.buffers {
		total += s.size
	}
	return int(total)
}

// Peak returns the peak number of bytes that have been allocated in the arena.
// This value is not reset when Reset is called.
func (a *ArenaAllocator) Peak() int {
	return int(a.peak)
}

var pointerFreeTypes sync.Map // reflect.Type -> bool

// checkPointerFree panics unless t (when known) is free of Go pointers.
func checkPointerFree(t reflect.Type) {
	if t != nil && !pointerFree(t) {
		panic(&UnsupportedTypeError{Type: t, Reason: "arena memory is not scanned by the garbage collector"})
	}
}

// pointerFree reports whether values of t hold no Go pointers.
func pointerFree(t reflect.Type) bool {
	free, ok := pointerFreeTypes.Load(t)
	if !ok {
		free, _ = pointerFreeTypes.LoadOrStore(t, !hasPointers(t))
	}
	return free.(bool)
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
