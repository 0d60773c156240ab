// SPDX-License-Identifier: Apache-2.0

package minivec

import "unsafe"

// Header-block encoding for zero-size elements: the length lives in a
// header-only block that is allocated on the first push and kept until the
// vector is released. No element storage is ever allocated. Builds without
// the tagged handle use it for every vector of zero-size elements.

func headerZSTLen(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	return int((*header)(p).len)
}

func headerZSTSetLen[T any](buf *unsafe.Pointer, n int) {
	if *buf == nil {
		if n == 0 {
			return
		}
		b, err := allocateBlock[T](0)
		if err != nil {
			panic(err)
		}
		*buf = b.p
	}
	(*header)(*buf).len = uintptr(n)
}

func headerZSTRelease[T any](buf *unsafe.Pointer) {
	if *buf == nil {
		return
	}
	block[T]{p: *buf}.deallocate()
	*buf = nil
}

// headerZSTIntoRaw hands out the header block itself as the element pointer;
// any address is a valid pointer to a zero-size value.
func headerZSTIntoRaw[T any](buf *unsafe.Pointer) *T {
	p := *buf
	*buf = nil
	if p == nil {
		return zstData[T]()
	}
	return (*T)(p)
}

func headerZSTFromRaw[T any](buf *unsafe.Pointer, ptr *T, n int) {
	if ptr == nil || ptr == zstData[T]() {
		headerZSTSetLen[T](buf, n)
		return
	}
	*buf = unsafe.Pointer(ptr)
	(*header)(*buf).len = uintptr(n)
}
