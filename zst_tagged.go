// SPDX-License-Identifier: Apache-2.0

//go:build (amd64 || arm64) && !minivec_portable

package minivec

import "unsafe"

// Vectors of zero-size elements never allocate: the handle word carries the
// length directly, tagged with the top address bit. User-space addresses on
// these architectures never have that bit set, so the garbage collector
// treats the word as a foreign pointer and ignores it.
const zstTag = uintptr(1) << 63

// zstHeaderAllocs is the number of blocks a zero-size vector ever allocates.
const zstHeaderAllocs = 0

func zstLen(p unsafe.Pointer) int {
	return int(uintptr(p) &^ zstTag)
}

// zstSetLen stores n in the handle word. The store goes through a uintptr so
// the tagged value never passes through a pointer conversion; neither the old
// nor the new value is a heap pointer, so no write barrier is needed.
func zstSetLen[T any](buf *unsafe.Pointer, n int) {
	w := (*uintptr)(unsafe.Pointer(buf))
	if n == 0 {
		*w = 0
		return
	}
	*w = zstTag | uintptr(n)
}

func zstRelease[T any](buf *unsafe.Pointer) {
	zstSetLen[T](buf, 0)
}

// zstIntoRaw returns the element pointer handed out by IntoRawParts and clears
// the handle.
func zstIntoRaw[T any](buf *unsafe.Pointer) *T {
	zstSetLen[T](buf, 0)
	return zstData[T]()
}

func zstFromRaw[T any](buf *unsafe.Pointer, _ *T, n int) {
	zstSetLen[T](buf, n)
}
