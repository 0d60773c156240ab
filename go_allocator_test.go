// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"math/bits"
	"reflect"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestGoAllocatorZeroedBlocks(t *testing.T) {
	var a GoAllocator
	l, err := LayoutOf[int32](16)
	require.NoError(t, err)

	p := a.Allocate(l)
	require.NotNil(t, p)
	require.Zero(t, uintptr(p)%l.Align)
	for _, x := range unsafe.Slice((*int32)(unsafe.Add(p, l.Offset)), 16) {
		require.Zero(t, x)
	}
}

func TestGoAllocatorRequiresElemType(t *testing.T) {
	var a GoAllocator
	l, err := ComputeLayout(8, 8, 4)
	require.NoError(t, err)
	require.Nil(t, a.Allocate(l))
	require.Nil(t, a.Reallocate(nil, l, l))
	a.Deallocate(nil, l)
}

func TestGoAllocatorReallocateKeepsContents(t *testing.T) {
	var a GoAllocator
	l, err := LayoutOf[*int](2)
	require.NoError(t, err)
	p := a.Allocate(l)
	*(*header)(p) = header{len: 2, cap: 2}

	one, two := 1, 2
	elems := unsafe.Slice((**int)(unsafe.Add(p, l.Offset)), 2)
	elems[0], elems[1] = &one, &two

	bigger, err := LayoutOf[*int](5)
	require.NoError(t, err)
	np := a.Reallocate(p, l, bigger)
	require.NotNil(t, np)
	require.Equal(t, header{len: 2, cap: 2}, *(*header)(np))

	moved := unsafe.Slice((**int)(unsafe.Add(np, bigger.Offset)), 5)
	require.Same(t, &one, moved[0])
	require.Same(t, &two, moved[1])
	require.Nil(t, moved[2])

	// the old block no longer references the elements
	require.Nil(t, elems[0])
	require.Nil(t, elems[1])
}

type payload struct {
	name string
}

func TestGoAllocatorKeepsElementsAlive(t *testing.T) {
	var v Vec[*payload]
	for i := range 100 {
		v.Push(&payload{name: string(rune('a' + i%26))})
	}
	runtime.GC()
	runtime.GC()
	for i, p := range v.All() {
		require.Equal(t, string(rune('a'+i%26)), p.name)
	}
	v.Release()
}

func TestSizeClass(t *testing.T) {
	for _, tc := range []struct{ n, want int }{
		{0, 0}, {1, 1}, {8, 8}, {9, 10}, {15, 16}, {17, 20}, {100, 112}, {1000, 1024}, {1025, 1280},
	} {
		require.Equal(t, tc.want, sizeClass(tc.n), "n=%d", tc.n)
	}
	for n := 1; n < 5000; n++ {
		c := sizeClass(n)
		require.GreaterOrEqual(t, c, n)
		require.Less(t, c-n, max(n/4, 1))
	}
}

func blockTypeCount(elem reflect.Type) int {
	count := 0
	blockTypes.Range(func(k, _ any) bool {
		if k.(blockKey).elem == elem {
			count++
		}
		return true
	})
	return count
}

func TestGoAllocatorBlockTypesAreBounded(t *testing.T) {
	useAllocator(t, GoAllocator{})

	type ref struct{ p *int }
	const sizes = 20000
	for i := range sizes {
		v := WithCapacity[ref](i + 1)
		require.Equal(t, i+1, v.Cap())
		v.Release()
	}
	require.LessOrEqual(t, blockTypeCount(reflect.TypeFor[ref]()), 8+4*bits.Len(sizes))

	// pointer-free elements live in word buffers and need no block type
	type plain struct{ a, b int64 }
	for i := range sizes {
		v := WithCapacity[plain](i + 1)
		v.Release()
	}
	require.Zero(t, blockTypeCount(reflect.TypeFor[plain]()))
}

func TestGoAllocatorExactCapacityInSizeClass(t *testing.T) {
	useAllocator(t, GoAllocator{})

	one := 1
	v := WithCapacity[*int](9)
	require.Equal(t, 9, v.Cap())
	require.Len(t, v.SpareCapacity(), 9)
	for range 9 {
		v.Push(&one)
	}
	require.Equal(t, 9, v.Cap())

	v.Push(&one)
	require.Equal(t, 18, v.Cap())
	runtime.GC()
	for _, p := range v.All() {
		require.Same(t, &one, p)
	}

	v.ShrinkToFit()
	require.Equal(t, 10, v.Cap())
	require.Equal(t, 10, v.Len())
	v.Release()
}

func TestGoAllocatorWordBlocks(t *testing.T) {
	var a GoAllocator
	l, err := LayoutOf[uint16](3)
	require.NoError(t, err)
	require.True(t, rawBlock(l))

	p := a.Allocate(l)
	require.NotNil(t, p)
	require.Zero(t, uintptr(p)%8)
	*(*header)(p) = header{len: 3, cap: 3}
	copy(unsafe.Slice((*uint16)(unsafe.Add(p, l.Offset)), 3), []uint16{7, 8, 9})

	bigger, err := LayoutOf[uint16](100)
	require.NoError(t, err)
	np := a.Reallocate(p, l, bigger)
	require.Equal(t, header{len: 3, cap: 3}, *(*header)(np))
	elems := unsafe.Slice((*uint16)(unsafe.Add(np, bigger.Offset)), 100)
	require.Equal(t, []uint16{7, 8, 9}, elems[:3])
	require.Zero(t, elems[99])

	back := a.Reallocate(np, bigger, l)
	require.Equal(t, []uint16{7, 8, 9}, unsafe.Slice((*uint16)(unsafe.Add(back, l.Offset)), 3))
	a.Deallocate(back, l)

	ptrs, err := LayoutOf[*int](3)
	require.NoError(t, err)
	require.False(t, rawBlock(ptrs))
}

func TestGoAllocatorRejectsOversizedLayouts(t *testing.T) {
	var a GoAllocator
	l, err := LayoutOf[int64](1)
	require.NoError(t, err)
	l.Size = MaxAllocSize + 1
	require.Nil(t, a.Allocate(l))
}
