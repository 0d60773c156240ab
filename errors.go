// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrCapacityOverflow indicates that a capacity or byte-size computation
	// would exceed what the platform can address. It is detected before any
	// memory is requested.
	ErrCapacityOverflow = errors.New("minivec: capacity overflow")

	// ErrAllocFailed indicates that the Allocator could not satisfy a request.
	ErrAllocFailed = errors.New("minivec: allocation failed")

	// ErrOutOfBounds indicates an index or range outside of the vector's length.
	ErrOutOfBounds = errors.New("minivec: index out of bounds")

	// ErrInvalidAlignment indicates an alignment that is not a power of two.
	ErrInvalidAlignment = errors.New("minivec: alignment must be a power of two")

	// ErrUnsupportedType indicates an element type an Allocator refuses to hold.
	ErrUnsupportedType = errors.New("minivec: element type not supported by allocator")
)

// CapacityError is the panic value (and TryReserve error) for capacity overflow.
type CapacityError struct {
	ElemSize  uintptr
	Len       int
	Requested int // additional elements or target capacity, depending on Op
	Op        string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("minivec: capacity overflow in %s (elem size %d, len %d, requested %d)",
		e.Op, e.ElemSize, e.Len, e.Requested)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityOverflow }

// AllocError is the panic value (and TryReserve error) for a failed allocation.
type AllocError struct {
	Layout Layout
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("minivec: allocation of %d bytes (align %d, cap %d) failed",
		e.Layout.Size, e.Layout.Align, e.Layout.Cap)
}

func (e *AllocError) Unwrap() error { return ErrAllocFailed }

// IndexError is the panic value for a bounds violation.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("minivec: %s index %d out of range [0:%d]", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrOutOfBounds }

// RangeError is the panic value for an invalid [Start, End) range.
type RangeError struct {
	Op         string
	Start, End int
	Len        int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("minivec: %s range [%d:%d] out of range with length %d", e.Op, e.Start, e.End, e.Len)
}

func (e *RangeError) Unwrap() error { return ErrOutOfBounds }

// UnsupportedTypeError is raised by allocators that cannot hold a given element type.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("minivec: element type %v not supported: %s", e.Type, e.Reason)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

func checkIndex(op string, i, n int) {
	if uint(i) >= uint(n) {
		panic(&IndexError{Op: op, Index: i, Len: n})
	}
}

func checkRange(op string, start, end, n int) {
	if start < 0 || start > end || end > n {
		panic(&RangeError{Op: op, Start: start, End: end, Len: n})
	}
}
