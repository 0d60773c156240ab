// SPDX-License-Identifier: Apache-2.0

// Package minivec provides Vec, a growable array whose handle is a single
// pointer. Length and capacity live in a header stored in the same allocation
// as the elements, right in front of them.
//
// The zero Vec is empty and ready to use; it does not allocate until the first
// element is stored. A Vec owns its block: copying a Vec value aliases the
// block, and only one of the copies may be used afterwards. Use Take to move a
// vector out of a variable.
//
// Vec is not safe for concurrent use.
package minivec

import (
	"math"
	"unsafe"
)

// Vec is a growable array of T occupying one machine word.
type Vec[T any] struct {
	buf unsafe.Pointer
}

// Dropper is implemented by element types that must be told when the vector
// destroys them. Drop is called on a pointer to the element, exactly once per
// element the vector discards; elements moved out of the vector are not
// dropped.
type Dropper interface {
	Drop()
}

// Cloner is implemented by element types with their own copy semantics. When
// *T implements Cloner[T], Clone and the other copying operations use it
// instead of plain assignment.
type Cloner[T any] interface {
	Clone() T
}

// maxZSTLen is the capacity reported for vectors of zero-size elements.
const maxZSTLen = math.MaxInt >> 1

var zstBase struct{}

func zstData[T any]() *T {
	return (*T)(unsafe.Pointer(&zstBase))
}

// New returns an empty vector. It does not allocate.
func New[T any]() Vec[T] {
	return Vec[T]{}
}

// WithCapacity returns an empty vector with room for exactly n elements.
func WithCapacity[T any](n int) Vec[T] {
	if n < 0 {
		panic(&CapacityError{ElemSize: elemSize[T](), Requested: n, Op: "with capacity"})
	}
	var v Vec[T]
	if n > 0 && !isZST[T]() {
		v.mustRealloc(n)
	}
	return v
}

// FromSlice returns a vector holding a copy of s, with capacity len(s).
func FromSlice[T any](s []T) Vec[T] {
	v := WithCapacity[T](len(s))
	v.ExtendFromSlice(s)
	return v
}

// Of returns a vector holding xs.
func Of[T any](xs ...T) Vec[T] {
	return FromSlice(xs)
}

// parts returns the element pointer, length and capacity. The pointer is nil
// only when nothing is allocated.
func (v *Vec[T]) parts() (*T, int, int) {
	if isZST[T]() {
		return zstData[T](), zstLen(v.buf), maxZSTLen
	}
	if v.buf == nil {
		return nil, 0, 0
	}
	b := block[T]{p: v.buf}
	h := b.header()
	return b.data(), int(h.len), int(h.cap)
}

// live returns the initialized elements.
func (v *Vec[T]) live() []T {
	data, n, _ := v.parts()
	if data == nil {
		return nil
	}
	return unsafe.Slice(data, n)
}

// slots returns the first n slots, initialized or not. n must not exceed Cap.
func (v *Vec[T]) slots(n int) []T {
	data, _, _ := v.parts()
	if data == nil {
		return nil
	}
	return unsafe.Slice(data, n)
}

func (v *Vec[T]) setLen(n int) {
	if isZST[T]() {
		zstSetLen[T](&v.buf, n)
		return
	}
	if v.buf == nil {
		return
	}
	(*header)(v.buf).len = uintptr(n)
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int {
	_, n, _ := v.parts()
	return n
}

// Cap returns the number of elements the vector can hold without
// reallocating. Vectors of zero-size elements report a fixed, very large
// capacity and never allocate element storage.
func (v *Vec[T]) Cap() int {
	_, _, c := v.parts()
	return c
}

// IsEmpty reports whether the vector has no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Slice returns the elements as a slice sharing the vector's memory. Its
// capacity equals its length, so appending to it never writes into the
// vector. The slice is valid until the vector reallocates or is released.
func (v *Vec[T]) Slice() []T {
	return v.live()
}

// SpareCapacity returns the slots between Len and Cap. They always hold zero
// values. Store into them and call SetLen to make them part of the vector.
func (v *Vec[T]) SpareCapacity() []T {
	data, n, c := v.parts()
	if data == nil {
		return nil
	}
	return unsafe.Slice(data, c)[n:c:c]
}

// SetLen forces the length to n. Slots that become part of the vector keep
// whatever they hold; slots cut off are neither dropped nor cleared.
func (v *Vec[T]) SetLen(n int) {
	_, _, c := v.parts()
	if n < 0 || n > c {
		panic(&IndexError{Op: "set len", Index: n, Len: c + 1})
	}
	v.setLen(n)
}

// Get returns the element at index i.
func (v *Vec[T]) Get(i int) T {
	s := v.live()
	checkIndex("get", i, len(s))
	return s[i]
}

// At returns a pointer to the element at index i. The pointer is valid until
// the vector reallocates or is released.
func (v *Vec[T]) At(i int) *T {
	s := v.live()
	checkIndex("at", i, len(s))
	return &s[i]
}

// Set replaces the element at index i, dropping the old one.
func (v *Vec[T]) Set(i int, x T) {
	s := v.live()
	checkIndex("set", i, len(s))
	dropOne(&s[i])
	s[i] = x
}

// Swap exchanges the elements at indexes i and j.
func (v *Vec[T]) Swap(i, j int) {
	s := v.live()
	checkIndex("swap", i, len(s))
	checkIndex("swap", j, len(s))
	s[i], s[j] = s[j], s[i]
}

// First returns the first element, or false if the vector is empty.
func (v *Vec[T]) First() (T, bool) {
	s := v.live()
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[0], true
}

// Last returns the last element, or false if the vector is empty.
func (v *Vec[T]) Last() (T, bool) {
	s := v.live()
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[len(s)-1], true
}

// Take moves the vector out of v, leaving v empty.
func (v *Vec[T]) Take() Vec[T] {
	t := *v
	v.buf = nil
	return t
}

// Release drops every element in index order and gives the block back to the
// allocator. The vector is empty afterwards and may be reused.
func (v *Vec[T]) Release() {
	s := v.live()
	v.setLen(0)
	dropAll(s)
	if isZST[T]() {
		zstRelease[T](&v.buf)
		return
	}
	if v.buf != nil {
		block[T]{p: v.buf}.deallocate()
		v.buf = nil
	}
}

// Clone returns an independent copy of the vector with capacity Len.
func (v *Vec[T]) Clone() Vec[T] {
	src := v.live()
	c := WithCapacity[T](len(src))
	dst := c.slots(len(src))
	for i := range src {
		dst[i] = cloneOf(&src[i])
	}
	c.setLen(len(src))
	return c
}

// CloneFrom makes v a copy of src, reusing v's block when it is large enough.
func (v *Vec[T]) CloneFrom(src *Vec[T]) {
	if v == src {
		return
	}
	v.Clear()
	s := src.live()
	v.Reserve(len(s))
	dst := v.slots(len(s))
	for i := range s {
		dst[i] = cloneOf(&s[i])
	}
	v.setLen(len(s))
}

// mustRealloc resizes the block to exactly capacity slots, panicking on failure.
func (v *Vec[T]) mustRealloc(capacity int) {
	if err := v.realloc(capacity); err != nil {
		panic(err)
	}
}

// realloc resizes the block to exactly capacity slots, which must be at
// least Len. A capacity of zero frees the block. Not used for zero-size
// elements.
func (v *Vec[T]) realloc(capacity int) error {
	if v.buf == nil {
		if capacity == 0 {
			return nil
		}
		b, err := allocateBlock[T](capacity)
		if err != nil {
			return err
		}
		v.buf = b.p
		return nil
	}
	b := block[T]{p: v.buf}
	if capacity == 0 {
		b.deallocate()
		v.buf = nil
		return nil
	}
	nb, err := b.reallocate(capacity)
	if err != nil {
		return err
	}
	v.buf = nb.p
	return nil
}

// reserve makes room for additional more elements. With exact set the new
// capacity is exactly Len+additional, otherwise the growth policy decides.
func (v *Vec[T]) reserve(op string, additional int, exact bool) error {
	_, n, c := v.parts()
	if additional < 0 {
		return &CapacityError{ElemSize: elemSize[T](), Len: n, Requested: additional, Op: op}
	}
	if additional <= c-n {
		return nil
	}
	if isZST[T]() || additional > math.MaxInt-n {
		return &CapacityError{ElemSize: elemSize[T](), Len: n, Requested: additional, Op: op}
	}
	required := n + additional
	newCap := required
	if !exact {
		newCap = nextCapacity(elemSize[T](), c, required)
	}
	return v.realloc(newCap)
}

func (v *Vec[T]) mustReserve(op string, additional int) {
	if err := v.reserve(op, additional, false); err != nil {
		panic(err)
	}
}

// Reserve makes room for at least additional more elements. It may reserve
// more to avoid frequent reallocations.
func (v *Vec[T]) Reserve(additional int) {
	v.mustReserve("reserve", additional)
}

// ReserveExact makes room for exactly additional more elements, unless the
// capacity already suffices.
func (v *Vec[T]) ReserveExact(additional int) {
	if err := v.reserve("reserve exact", additional, true); err != nil {
		panic(err)
	}
}

// TryReserve is like Reserve but reports capacity overflow and allocation
// failure as an error instead of panicking.
func (v *Vec[T]) TryReserve(additional int) error {
	return v.reserve("reserve", additional, false)
}

// TryReserveExact is like ReserveExact but reports capacity overflow and
// allocation failure as an error instead of panicking.
func (v *Vec[T]) TryReserveExact(additional int) error {
	return v.reserve("reserve exact", additional, true)
}

// ShrinkToFit reduces the capacity to Len. An empty vector gives its block
// back entirely.
func (v *Vec[T]) ShrinkToFit() {
	v.ShrinkTo(0)
}

// ShrinkTo reduces the capacity to max(Len, minCapacity).
func (v *Vec[T]) ShrinkTo(minCapacity int) {
	_, n, c := v.parts()
	if isZST[T]() {
		if n == 0 {
			zstRelease[T](&v.buf)
		}
		return
	}
	if target := max(n, minCapacity); target < c {
		v.mustRealloc(target)
	}
}

func dropOne[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
	}
}

// dropAll drops the elements of s in order.
func dropAll[T any](s []T) {
	if len(s) == 0 {
		return
	}
	if _, ok := any(&s[0]).(Dropper); !ok {
		return
	}
	for i := range s {
		any(&s[i]).(Dropper).Drop()
	}
}

func cloneOf[T any](p *T) T {
	if c, ok := any(p).(Cloner[T]); ok {
		return c.Clone()
	}
	return *p
}
