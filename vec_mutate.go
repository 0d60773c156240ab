// SPDX-License-Identifier: Apache-2.0

package minivec

// Push appends x, growing the block if it is full.
func (v *Vec[T]) Push(x T) {
	_, n, c := v.parts()
	if n == c {
		v.mustReserve("push", 1)
	}
	v.slots(n + 1)[n] = x
	v.setLen(n + 1)
}

// Pop removes the last element and returns it, or returns false if the
// vector is empty. The vacated slot is cleared.
func (v *Vec[T]) Pop() (T, bool) {
	var zero T
	s := v.live()
	if len(s) == 0 {
		return zero, false
	}
	n := len(s) - 1
	x := s[n]
	s[n] = zero
	v.setLen(n)
	return x, true
}

// Insert places x at index i, shifting the elements at i and after it one
// slot to the right. i may equal Len.
func (v *Vec[T]) Insert(i int, x T) {
	_, n, c := v.parts()
	if i < 0 || i > n {
		panic(&IndexError{Op: "insert", Index: i, Len: n + 1})
	}
	if n == c {
		v.mustReserve("insert", 1)
	}
	s := v.slots(n + 1)
	copy(s[i+1:], s[i:n])
	s[i] = x
	v.setLen(n + 1)
}

// Remove deletes the element at index i and returns it, shifting the
// following elements one slot to the left.
func (v *Vec[T]) Remove(i int) T {
	var zero T
	s := v.live()
	n := len(s)
	checkIndex("remove", i, n)
	x := s[i]
	copy(s[i:], s[i+1:])
	s[n-1] = zero
	v.setLen(n - 1)
	return x
}

// SwapRemove deletes the element at index i and returns it, moving the last
// element into its place. It does not preserve order but runs in O(1).
func (v *Vec[T]) SwapRemove(i int) T {
	var zero T
	s := v.live()
	n := len(s)
	checkIndex("swap remove", i, n)
	x := s[i]
	s[i] = s[n-1]
	s[n-1] = zero
	v.setLen(n - 1)
	return x
}

// Truncate drops the elements at index n and after, keeping the first n.
// It does nothing if n >= Len. Capacity is unchanged.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 {
		panic(&IndexError{Op: "truncate", Index: n, Len: v.Len() + 1})
	}
	s := v.live()
	if n >= len(s) {
		return
	}
	tail := s[n:]
	v.setLen(n)
	dropAll(tail)
	clear(tail)
}

// Clear drops every element. Capacity is unchanged.
func (v *Vec[T]) Clear() {
	v.Truncate(0)
}

// Resize changes the length to n. New slots receive copies of value; value
// itself is consumed either way, being stored in the last new slot or
// dropped when the vector does not grow.
func (v *Vec[T]) Resize(n int, value T) {
	l := v.Len()
	if n <= l {
		v.Truncate(n)
		dropOne(&value)
		return
	}
	v.mustReserve("resize", n-l)
	s := v.slots(n)
	for i := l; i < n-1; i++ {
		s[i] = cloneOf(&value)
	}
	s[n-1] = value
	v.setLen(n)
}

// ResizeFunc changes the length to n, filling new slots with the results of
// calling f in index order.
func (v *Vec[T]) ResizeFunc(n int, f func() T) {
	l := v.Len()
	if n <= l {
		v.Truncate(n)
		return
	}
	v.mustReserve("resize", n-l)
	s := v.slots(n)
	for i := l; i < n; i++ {
		s[i] = f()
		v.setLen(i + 1)
	}
}

// Retain keeps the elements for which keep returns true, in order, and drops
// the others. keep sees every element exactly once, in index order.
func (v *Vec[T]) Retain(keep func(*T) bool) {
	s := v.live()
	w := 0
	for r := range s {
		if !keep(&s[r]) {
			dropOne(&s[r])
			continue
		}
		if w != r {
			s[w] = s[r]
		}
		w++
	}
	clear(s[w:])
	v.setLen(w)
}

// DedupFunc removes consecutive elements for which same(prev, cur) reports
// true, keeping the first of each run. Removed elements are dropped.
func (v *Vec[T]) DedupFunc(same func(prev, cur *T) bool) {
	s := v.live()
	if len(s) < 2 {
		return
	}
	w := 1
	for r := 1; r < len(s); r++ {
		if same(&s[w-1], &s[r]) {
			dropOne(&s[r])
			continue
		}
		if w != r {
			s[w] = s[r]
		}
		w++
	}
	clear(s[w:])
	v.setLen(w)
}

// Dedup removes consecutive equal elements.
func Dedup[T comparable](v *Vec[T]) {
	v.DedupFunc(func(prev, cur *T) bool { return *prev == *cur })
}

// SplitOff moves the elements at index at and after into a new vector and
// returns it. v keeps its capacity.
func (v *Vec[T]) SplitOff(at int) Vec[T] {
	s := v.live()
	if at < 0 || at > len(s) {
		panic(&IndexError{Op: "split off", Index: at, Len: len(s) + 1})
	}
	tail := s[at:]
	other := WithCapacity[T](len(tail))
	copy(other.slots(len(tail)), tail)
	other.setLen(len(tail))
	clear(tail)
	v.setLen(at)
	return other
}
