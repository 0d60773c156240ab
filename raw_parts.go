// SPDX-License-Identifier: Apache-2.0

package minivec

// IntoRawParts decomposes the vector into a pointer to its first element, its
// length and its capacity, leaving v empty. Nothing is dropped or freed: the
// caller takes over the block and must hand it back through FromRawParts to
// release it. The pointer is nil when nothing was allocated.
func (v *Vec[T]) IntoRawParts() (ptr *T, length, capacity int) {
	data, n, c := v.parts()
	if isZST[T]() {
		return zstIntoRaw[T](&v.buf), n, c
	}
	v.buf = nil
	return data, n, c
}

// FromRawParts rebuilds a vector from the parts returned by IntoRawParts.
//
// This is an unchecked escape hatch. ptr must come from IntoRawParts on a
// Vec[T] with the same element type, capacity must be the capacity returned
// with it, length must not exceed it, and the parts must be used at most once.
// Anything else corrupts memory.
func FromRawParts[T any](ptr *T, length, capacity int) Vec[T] {
	var v Vec[T]
	if isZST[T]() {
		zstFromRaw[T](&v.buf, ptr, length)
		return v
	}
	if ptr == nil {
		return v
	}
	b := blockOf(ptr)
	*b.header() = header{len: uintptr(length), cap: uintptr(capacity)}
	v.buf = b.p
	return v
}
