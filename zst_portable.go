// SPDX-License-Identifier: Apache-2.0

//go:build !(amd64 || arm64) || minivec_portable

package minivec

import "unsafe"

// zstHeaderAllocs is the number of blocks a zero-size vector ever allocates.
const zstHeaderAllocs = 1

func zstLen(p unsafe.Pointer) int { return headerZSTLen(p) }

func zstSetLen[T any](buf *unsafe.Pointer, n int) { headerZSTSetLen[T](buf, n) }

func zstRelease[T any](buf *unsafe.Pointer) { headerZSTRelease[T](buf) }

func zstIntoRaw[T any](buf *unsafe.Pointer) *T { return headerZSTIntoRaw[T](buf) }

func zstFromRaw[T any](buf *unsafe.Pointer, ptr *T, n int) { headerZSTFromRaw[T](buf, ptr, n) }
