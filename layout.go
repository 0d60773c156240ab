// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"math"
	"math/bits"
	"reflect"
	"unsafe"
)

// header is stored at offset zero of every allocation, in front of the elements.
type header struct {
	len uintptr
	cap uintptr
}

const (
	headerSize  = unsafe.Sizeof(header{})
	headerAlign = unsafe.Alignof(header{})
)

// MaxAllocSize is the largest block, in bytes, a vector will ever request. On
// 64-bit platforms it is the Go heap's address-space limit; requests beyond it
// make the runtime abort instead of failing.
const MaxAllocSize = min(math.MaxInt, 1<<48)

// Layout describes one allocation: a header followed by Cap element slots.
type Layout struct {
	// Size is the total number of bytes: Offset + ElemSize*Cap.
	Size uintptr
	// Align is max(header alignment, element alignment).
	Align uintptr
	// Offset is the byte offset of the first element from the block start.
	Offset uintptr
	// Cap is the number of element slots.
	Cap int
	// ElemSize is the size of one element slot.
	ElemSize uintptr
	// Elem is the element type. Allocators that hand out garbage collected
	// memory need it to describe pointer locations; it is nil for layouts
	// produced by ComputeLayout.
	Elem reflect.Type
}

// ComputeLayout returns the layout of a block holding capacity elements of
// the given size and alignment. Every step is overflow checked and the total
// size is bounded by MaxAllocSize.
func ComputeLayout(elemSize, elemAlign uintptr, capacity int) (Layout, error) {
	if elemAlign == 0 || elemAlign&(elemAlign-1) != 0 {
		return Layout{}, ErrInvalidAlignment
	}
	if capacity < 0 {
		return Layout{}, ErrCapacityOverflow
	}
	offset, ok := alignUp(headerSize, elemAlign)
	if !ok {
		return Layout{}, ErrCapacityOverflow
	}
	hi, elems := bits.Mul(uint(elemSize), uint(capacity))
	if hi != 0 {
		return Layout{}, ErrCapacityOverflow
	}
	size, carry := bits.Add(uint(offset), elems, 0)
	if carry != 0 || size > MaxAllocSize {
		return Layout{}, ErrCapacityOverflow
	}
	return Layout{
		Size:     uintptr(size),
		Align:    max(headerAlign, elemAlign),
		Offset:   offset,
		Cap:      capacity,
		ElemSize: elemSize,
	}, nil
}

// LayoutOf returns the layout of a block holding capacity elements of T.
func LayoutOf[T any](capacity int) (Layout, error) {
	var z T
	l, err := ComputeLayout(unsafe.Sizeof(z), unsafe.Alignof(z), capacity)
	if err != nil {
		return Layout{}, err
	}
	l.Elem = reflect.TypeFor[T]()
	return l, nil
}

// alignUp rounds n up to a multiple of align, which must be a power of two.
func alignUp(n, align uintptr) (uintptr, bool) {
	r, carry := bits.Add(uint(n), uint(align-1), 0)
	if carry != 0 {
		return 0, false
	}
	return uintptr(r) &^ (align - 1), true
}

// elemOffset is the constant distance from the header to the first element of T.
func elemOffset[T any]() uintptr {
	var z T
	a := unsafe.Alignof(z)
	return (headerSize + a - 1) &^ (a - 1)
}

func elemSize[T any]() uintptr {
	var z T
	return unsafe.Sizeof(z)
}

func isZST[T any]() bool {
	return elemSize[T]() == 0
}
