// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"fmt"
	"math/bits"
	"reflect"
	"sync"
	"unsafe"
)

// GoAllocator allocates blocks from the Go heap.
//
// Blocks of pointer-free elements are plain word buffers. Every other block is
// a real Go object of type struct{ Header header; Elems [N]T }, so the garbage
// collector knows where element pointers live and keeps their referents
// alive. N is the capacity rounded up to a size class, which keeps the number
// of block types per element type logarithmic in the largest capacity; the
// header still records the exact capacity.
//
// Layouts without an element type cannot be served.
type GoAllocator struct{}

type blockKey struct {
	elem reflect.Type
	n    int
}

// blockTypes caches the struct type built for every (element type, size class) pair.
var blockTypes sync.Map

var headerType = reflect.TypeFor[header]()

// sizeClass rounds n up to a value whose binary form has at most its three
// leading bits set. The result exceeds n by less than a quarter.
func sizeClass(n int) int {
	if n <= 8 {
		return n
	}
	g := 1 << (bits.Len(uint(n)) - 3)
	return (n + g - 1) &^ (g - 1)
}

func blockType(l Layout) reflect.Type {
	n := sizeClass(l.Cap)
	if _, err := ComputeLayout(l.ElemSize, uintptr(l.Elem.Align()), n); err != nil {
		n = l.Cap
	}
	k := blockKey{elem: l.Elem, n: n}
	if t, ok := blockTypes.Load(k); ok {
		return t.(reflect.Type)
	}
	t := reflect.StructOf([]reflect.StructField{
		{Name: "Header", Type: headerType},
		{Name: "Elems", Type: reflect.ArrayOf(n, l.Elem)},
	})
	if t.Field(1).Offset != l.Offset || t.Size() < l.Size {
		panic(fmt.Errorf("minivec: block type %v disagrees with layout (offset %d, size %d)", t, l.Offset, l.Size))
	}
	actual, _ := blockTypes.LoadOrStore(k, t)
	return actual.(reflect.Type)
}

// rawBlock reports whether l is served by an untyped word buffer. Heap
// objects of eight bytes or more are eight-byte aligned.
func rawBlock(l Layout) bool {
	return l.Align <= 8 && pointerFree(l.Elem)
}

// Allocate satisfies the Allocator interface.
func (GoAllocator) Allocate(l Layout) unsafe.Pointer {
	if l.Elem == nil || l.Size > MaxAllocSize {
		return nil
	}
	if rawBlock(l) {
		words := make([]uint64, (l.Size+7)/8)
		return unsafe.Pointer(unsafe.SliceData(words))
	}
	return reflect.New(blockType(l)).UnsafePointer()
}

// Reallocate satisfies the Allocator interface. Elements with pointers are
// moved with typed copies so the garbage collector observes every pointer
// that changes place.
func (a GoAllocator) Reallocate(p unsafe.Pointer, old, newLayout Layout) unsafe.Pointer {
	np := a.Allocate(newLayout)
	if np == nil {
		return nil
	}
	if rawBlock(newLayout) {
		copy(unsafe.Slice((*byte)(np), newLayout.Size), unsafe.Slice((*byte)(p), old.Size))
		return np
	}
	*(*header)(np) = *(*header)(p)
	if n := min(old.Cap, newLayout.Cap); n > 0 && newLayout.ElemSize > 0 {
		src := reflect.NewAt(blockType(old), p).Elem().Field(1).Slice(0, n)
		dst := reflect.NewAt(blockType(newLayout), np).Elem().Field(1).Slice(0, n)
		reflect.Copy(dst, src)
	}
	a.Deallocate(p, old)
	return np
}

// Deallocate satisfies the Allocator interface. The memory itself belongs to
// the garbage collector; blocks holding pointers are zeroed so stale raw
// pointers into them do not keep former elements reachable.
func (GoAllocator) Deallocate(p unsafe.Pointer, l Layout) {
	if p == nil || l.Elem == nil || rawBlock(l) {
		return
	}
	reflect.NewAt(blockType(l), p).Elem().SetZero()
}
