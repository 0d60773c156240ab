// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"unsafe"

	"go.uber.org/zap"
)

// block is a typed view over one allocation: the header at offset zero
// followed by the element slots at elemOffset[T].
type block[T any] struct {
	p unsafe.Pointer
}

func (b block[T]) header() *header {
	return (*header)(b.p)
}

func (b block[T]) data() *T {
	return (*T)(unsafe.Add(b.p, elemOffset[T]()))
}

// elements returns every slot of the block, initialized or not.
func (b block[T]) elements() []T {
	return unsafe.Slice(b.data(), b.header().cap)
}

// blockOf recovers the block from a pointer to its first element.
func blockOf[T any](data *T) block[T] {
	return block[T]{p: unsafe.Add(unsafe.Pointer(data), -int(elemOffset[T]()))}
}

func layoutFor[T any](op string, capacity int) (Layout, error) {
	l, err := LayoutOf[T](capacity)
	if err != nil {
		return Layout{}, &CapacityError{ElemSize: elemSize[T](), Requested: capacity, Op: op}
	}
	return l, nil
}

// allocateBlock returns a new block with room for capacity elements and an
// empty header.
func allocateBlock[T any](capacity int) (block[T], error) {
	l, err := layoutFor[T]("allocate", capacity)
	if err != nil {
		return block[T]{}, err
	}
	p := CurrentAllocator().Allocate(l)
	if p == nil {
		return block[T]{}, &AllocError{Layout: l}
	}
	b := block[T]{p: p}
	*b.header() = header{len: 0, cap: uintptr(capacity)}
	if ce := Logger().Check(zap.DebugLevel, "minivec: allocate"); ce != nil {
		ce.Write(zap.Stringer("elem", l.Elem), zap.Int("cap", capacity), zap.Uintptr("bytes", l.Size))
	}
	return b, nil
}

// reallocate moves the block to one with room for capacity elements. The
// header and the first min(old, new capacity) slots move along; the caller
// guarantees no live element sits beyond the new capacity.
func (b block[T]) reallocate(capacity int) (block[T], error) {
	h := b.header()
	oldCap := int(h.cap)
	old, err := layoutFor[T]("reallocate", oldCap)
	if err != nil {
		return b, err
	}
	l, err := layoutFor[T]("reallocate", capacity)
	if err != nil {
		return b, err
	}
	p := CurrentAllocator().Reallocate(b.p, old, l)
	if p == nil {
		return b, &AllocError{Layout: l}
	}
	nb := block[T]{p: p}
	nb.header().cap = uintptr(capacity)
	if ce := Logger().Check(zap.DebugLevel, "minivec: reallocate"); ce != nil {
		ce.Write(zap.Stringer("elem", l.Elem), zap.Int("old_cap", oldCap), zap.Int("new_cap", capacity),
			zap.Int("len", int(nb.header().len)), zap.Uintptr("bytes", l.Size))
	}
	return nb, nil
}

// deallocate gives the block back using the layout it was last sized with.
// Elements must already have been dropped or moved out.
func (b block[T]) deallocate() {
	capacity := int(b.header().cap)
	l, err := layoutFor[T]("deallocate", capacity)
	if err != nil {
		panic(err)
	}
	CurrentAllocator().Deallocate(b.p, l)
	if ce := Logger().Check(zap.DebugLevel, "minivec: deallocate"); ce != nil {
		ce.Write(zap.Stringer("elem", l.Elem), zap.Int("cap", capacity), zap.Uintptr("bytes", l.Size))
	}
}
