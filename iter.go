// SPDX-License-Identifier: Apache-2.0

package minivec

import "iter"

// All returns an iterator over index-value pairs in order. Every call starts
// a fresh pass. The vector must not be modified during iteration.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.Slice() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.Slice() {
			if !yield(x) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from last to first.
func (v *Vec[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		s := v.Slice()
		for i := len(s) - 1; i >= 0; i-- {
			if !yield(i, s[i]) {
				return
			}
		}
	}
}
