// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// The header-block encoding is exercised directly so it is covered on every
// platform, including those where vectors use the tagged handle. Running the
// package with -tags minivec_portable sends every zero-size vector through it.

func TestHeaderZSTLength(t *testing.T) {
	a := useTracking(t)

	var buf unsafe.Pointer
	require.Equal(t, 0, headerZSTLen(buf))

	// length zero needs no block
	headerZSTSetLen[struct{}](&buf, 0)
	require.Nil(t, buf)
	require.Zero(t, a.Stats().Allocations)

	headerZSTSetLen[struct{}](&buf, 5)
	require.NotNil(t, buf)
	require.Equal(t, 5, headerZSTLen(buf))

	block := buf
	for n := range 1000 {
		headerZSTSetLen[struct{}](&buf, n)
	}
	require.Equal(t, 999, headerZSTLen(buf))
	require.Equal(t, block, buf)
	require.Equal(t, 1, a.Stats().Allocations)
	require.Zero(t, a.Stats().Reallocations)

	headerZSTRelease[struct{}](&buf)
	require.Nil(t, buf)
	require.Equal(t, 0, headerZSTLen(buf))
	require.Equal(t, 1, a.Stats().Deallocations)
	require.Zero(t, a.Len())

	headerZSTRelease[struct{}](&buf)
	require.Equal(t, 1, a.Stats().Deallocations)
}

func TestHeaderZSTRawParts(t *testing.T) {
	a := useTracking(t)

	var buf unsafe.Pointer
	headerZSTSetLen[struct{}](&buf, 3)
	ptr := headerZSTIntoRaw[struct{}](&buf)
	require.Nil(t, buf)
	require.NotNil(t, ptr)

	headerZSTFromRaw(&buf, ptr, 3)
	require.Equal(t, unsafe.Pointer(ptr), buf)
	require.Equal(t, 3, headerZSTLen(buf))

	headerZSTRelease[struct{}](&buf)
	require.Zero(t, a.Len())

	// an empty handle round-trips through the shared zero-size address
	ptr = headerZSTIntoRaw[struct{}](&buf)
	require.Equal(t, zstData[struct{}](), ptr)
	headerZSTFromRaw(&buf, ptr, 0)
	require.Nil(t, buf)
	headerZSTFromRaw(&buf, ptr, 2)
	require.Equal(t, 2, headerZSTLen(buf))
	headerZSTRelease[struct{}](&buf)
	require.Equal(t, 2, a.Stats().Allocations)
	require.Zero(t, a.Len())
}
