// SPDX-License-Identifier: Apache-2.0

package minivec

import "iter"

// IntoIter is a one-time iterator that owns a vector's elements and hands
// them out by value. The block is released once the iterator is exhausted or
// closed; elements not handed out by then are dropped.
type IntoIter[T any] struct {
	vec        Vec[T]
	head, tail int
	done       bool
}

// IntoIter consumes v, leaving it empty, and returns an owning iterator over
// its elements.
func (v *Vec[T]) IntoIter() *IntoIter[T] {
	it := &IntoIter[T]{vec: v.Take()}
	it.tail = it.vec.Len()
	if it.tail == 0 {
		it.Close()
	}
	return it
}

// Len returns the number of elements not yet handed out.
func (it *IntoIter[T]) Len() int {
	return it.tail - it.head
}

// Remaining returns the elements not yet handed out, still owned by the
// iterator. The slice is invalid after Close.
func (it *IntoIter[T]) Remaining() []T {
	if it.done {
		return nil
	}
	return it.vec.live()[it.head:it.tail]
}

// Next moves the next element out of the iterator.
func (it *IntoIter[T]) Next() (T, bool) {
	var zero T
	if it.done {
		return zero, false
	}
	s := it.vec.live()
	x := s[it.head]
	s[it.head] = zero
	it.head++
	if it.head == it.tail {
		it.Close()
	}
	return x, true
}

// NextBack moves the last remaining element out of the iterator.
func (it *IntoIter[T]) NextBack() (T, bool) {
	var zero T
	if it.done {
		return zero, false
	}
	s := it.vec.live()
	it.tail--
	x := s[it.tail]
	s[it.tail] = zero
	if it.head == it.tail {
		it.Close()
	}
	return x, true
}

// Close drops the elements not yet handed out and releases the block. It is
// safe to call more than once.
func (it *IntoIter[T]) Close() {
	if it.done {
		return
	}
	it.done = true
	rest := it.vec.live()[it.head:it.tail]
	it.vec.setLen(0)
	dropAll(rest)
	clear(rest)
	it.vec.Release()
	it.head, it.tail = 0, 0
}

// All returns a range-over-func view of the iterator. Leaving the loop early
// closes the iterator.
func (it *IntoIter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer it.Close()
		for {
			x, ok := it.Next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}
