// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"math"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestComputeLayout(t *testing.T) {
	l, err := ComputeLayout(8, 8, 10)
	require.NoError(t, err)
	require.Equal(t, headerSize, l.Offset)
	require.Equal(t, headerSize+80, l.Size)
	require.Equal(t, max(headerAlign, 8), l.Align)
	require.Equal(t, 10, l.Cap)
	require.Nil(t, l.Elem)

	// small elements start right after the header
	l, err = ComputeLayout(1, 1, 3)
	require.NoError(t, err)
	require.Equal(t, headerSize, l.Offset)
	require.Equal(t, headerSize+3, l.Size)
	require.Equal(t, headerAlign, l.Align)

	// over-aligned elements push the first slot out
	l, err = ComputeLayout(64, 64, 2)
	require.NoError(t, err)
	require.Equal(t, uintptr(64), l.Offset)
	require.Equal(t, uintptr(64+128), l.Size)
	require.Equal(t, uintptr(64), l.Align)

	// header only
	l, err = ComputeLayout(0, 1, 1000)
	require.NoError(t, err)
	require.Equal(t, headerSize, l.Size)
}

func TestComputeLayoutErrors(t *testing.T) {
	_, err := ComputeLayout(8, 0, 1)
	require.ErrorIs(t, err, ErrInvalidAlignment)
	_, err = ComputeLayout(8, 3, 1)
	require.ErrorIs(t, err, ErrInvalidAlignment)

	_, err = ComputeLayout(8, 8, -1)
	require.ErrorIs(t, err, ErrCapacityOverflow)
	_, err = ComputeLayout(8, 8, math.MaxInt)
	require.ErrorIs(t, err, ErrCapacityOverflow)
	_, err = ComputeLayout(1, 1, math.MaxInt)
	require.ErrorIs(t, err, ErrCapacityOverflow)

	// the largest block still fits, one more element does not
	l, err := ComputeLayout(1, 1, MaxAllocSize-int(headerSize))
	require.NoError(t, err)
	require.Equal(t, uintptr(MaxAllocSize), l.Size)
	_, err = ComputeLayout(1, 1, MaxAllocSize-int(headerSize)+1)
	require.ErrorIs(t, err, ErrCapacityOverflow)
	_, err = ComputeLayout(8, 8, MaxAllocSize/8)
	require.ErrorIs(t, err, ErrCapacityOverflow)

	_, err = ComputeLayout(1, uintptr(1)<<(unsafe.Sizeof(uintptr(0))*8-1), 0)
	require.ErrorIs(t, err, ErrCapacityOverflow)
}

func TestLayoutOf(t *testing.T) {
	type pair struct {
		a int64
		b int32
	}
	l, err := LayoutOf[pair](4)
	require.NoError(t, err)
	require.Equal(t, reflect.TypeFor[pair](), l.Elem)
	require.Equal(t, unsafe.Sizeof(pair{}), l.ElemSize)
	require.Equal(t, elemOffset[pair](), l.Offset)
	require.Equal(t, l.Offset+4*unsafe.Sizeof(pair{}), l.Size)

	_, err = LayoutOf[[1 << 20]byte](math.MaxInt >> 10)
	require.ErrorIs(t, err, ErrCapacityOverflow)
}

func TestElemOffsetMatchesBlockType(t *testing.T) {
	check := func(l Layout, err error) {
		require.NoError(t, err)
		bt := blockType(l)
		require.Equal(t, l.Offset, bt.Field(1).Offset)
		require.GreaterOrEqual(t, bt.Size(), l.Size)
	}
	check(LayoutOf[byte](3))
	check(LayoutOf[int16](3))
	check(LayoutOf[complex128](3))
	check(LayoutOf[string](3))
	check(LayoutOf[struct{}](0))
}

func TestAlignUp(t *testing.T) {
	for _, tc := range []struct {
		n, align, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 4, 12},
		{17, 16, 32},
	} {
		got, ok := alignUp(tc.n, tc.align)
		require.True(t, ok)
		require.Equal(t, tc.want, got)
	}

	_, ok := alignUp(^uintptr(0), 8)
	require.False(t, ok)
}
