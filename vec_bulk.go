// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"cmp"
	"fmt"
	"hash/maphash"
	"iter"
	"slices"
)

// ExtendFromSlice appends copies of the elements of s. Capacity is reserved
// once for the whole batch. s must not share memory with v.
func (v *Vec[T]) ExtendFromSlice(s []T) {
	if len(s) == 0 {
		return
	}
	n := v.Len()
	v.mustReserve("extend", len(s))
	dst := v.slots(n + len(s))[n:]
	if _, ok := any(&s[0]).(Cloner[T]); ok {
		for i := range s {
			dst[i] = cloneOf(&s[i])
		}
	} else {
		copy(dst, s)
	}
	v.setLen(n + len(s))
}

// Extend appends every element produced by seq, taking ownership of them.
func (v *Vec[T]) Extend(seq iter.Seq[T]) {
	for x := range seq {
		v.Push(x)
	}
}

// Append moves every element of other to the end of v, leaving other empty.
// other keeps its capacity.
func (v *Vec[T]) Append(other *Vec[T]) {
	if v == other {
		panic(&RangeError{Op: "append to itself", End: v.Len(), Len: v.Len()})
	}
	src := other.live()
	if len(src) == 0 {
		return
	}
	n := v.Len()
	v.mustReserve("append", len(src))
	copy(v.slots(n + len(src))[n:], src)
	v.setLen(n + len(src))
	clear(src)
	other.setLen(0)
}

// ExtendFromWithin appends copies of the elements in [start, end).
func (v *Vec[T]) ExtendFromWithin(start, end int) {
	n := v.Len()
	checkRange("extend from within", start, end, n)
	count := end - start
	if count == 0 {
		return
	}
	v.mustReserve("extend", count)
	s := v.slots(n + count)
	for i := 0; i < count; i++ {
		s[n+i] = cloneOf(&s[start+i])
	}
	v.setLen(n + count)
}

// Collect builds a vector from the elements of seq, in order.
func Collect[T any](seq iter.Seq[T]) Vec[T] {
	var v Vec[T]
	v.Extend(seq)
	return v
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Vec[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// Compare compares the elements of a and b lexicographically.
func Compare[T cmp.Ordered](a, b *Vec[T]) int {
	return slices.Compare(a.Slice(), b.Slice())
}

// Contains reports whether x is an element of v.
func Contains[T comparable](v *Vec[T], x T) bool {
	return slices.Contains(v.Slice(), x)
}

// Index returns the index of the first occurrence of x in v, or -1.
func Index[T comparable](v *Vec[T], x T) int {
	return slices.Index(v.Slice(), x)
}

// Hash writes the length of v followed by its elements to h. Vectors that
// are Equal produce the same hash under the same seed.
func Hash[T comparable](h *maphash.Hash, v *Vec[T]) {
	s := v.Slice()
	maphash.WriteComparable(h, len(s))
	for _, x := range s {
		maphash.WriteComparable(h, x)
	}
}

// String formats the elements like a slice.
func (v Vec[T]) String() string {
	return fmt.Sprint(v.Slice())
}
