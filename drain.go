// SPDX-License-Identifier: Apache-2.0

package minivec

import "iter"

type drainState uint8

const (
	drainActive drainState = iota
	drainExhausted
	drainAbandoned
)

// drainCursor hands out the elements of [head, end) from a vector whose
// length has been cut to start while the drain is live. The tail that
// followed the drained range sits untouched at [tailStart, tailStart+tailLen).
type drainCursor[T any] struct {
	vec       *Vec[T]
	start     int
	head, end int
	tailStart int
	tailLen   int
	state     drainState
}

func newDrainCursor[T any](op string, v *Vec[T], start, end int) drainCursor[T] {
	n := v.Len()
	checkRange(op, start, end, n)
	v.setLen(start)
	return drainCursor[T]{
		vec:       v,
		start:     start,
		head:      start,
		end:       end,
		tailStart: end,
		tailLen:   n - end,
	}
}

// window returns every slot up to the end of the tail.
func (d *drainCursor[T]) window() []T {
	return d.vec.slots(d.tailStart + d.tailLen)
}

func (d *drainCursor[T]) next() (T, bool) {
	var zero T
	if d.state != drainActive || d.head >= d.end {
		return zero, false
	}
	s := d.window()
	x := s[d.head]
	s[d.head] = zero
	d.head++
	return x, true
}

func (d *drainCursor[T]) nextBack() (T, bool) {
	var zero T
	if d.state != drainActive || d.head >= d.end {
		return zero, false
	}
	s := d.window()
	d.end--
	x := s[d.end]
	s[d.end] = zero
	return x, true
}

// dropRest drops the drained elements that were never handed out.
func (d *drainCursor[T]) dropRest() {
	if d.head >= d.end {
		return
	}
	rest := d.window()[d.head:d.end]
	d.head = d.end
	dropAll(rest)
	clear(rest)
}

// closeGap moves the tail down to index at and restores the length.
func (d *drainCursor[T]) closeGap(at int) {
	s := d.window()
	if at != d.tailStart && d.tailLen > 0 {
		copy(s[at:], s[d.tailStart:d.tailStart+d.tailLen])
		clear(s[at+d.tailLen : d.tailStart+d.tailLen])
	}
	d.vec.setLen(at + d.tailLen)
}

// Drain removes the elements in [start, end) and returns an iterator handing
// them out in order.
//
// The drain is a one-pass state machine. Once every removed element has been
// handed out, or Close is called, the remaining elements are dropped and the
// tail is moved down to close the gap. Until then the vector reports a length
// of start and must not be used.
type Drain[T any] struct {
	drainCursor[T]
}

// Drain removes the elements in [start, end) from v. It panics with a
// *RangeError if start > end or end > Len.
func (v *Vec[T]) Drain(start, end int) *Drain[T] {
	d := &Drain[T]{drainCursor: newDrainCursor("drain", v, start, end)}
	if start == end {
		d.finish(drainExhausted)
	}
	return d
}

// Len returns the number of removed elements not yet handed out.
func (d *Drain[T]) Len() int {
	return d.end - d.head
}

// Next hands out the next removed element.
func (d *Drain[T]) Next() (T, bool) {
	x, ok := d.next()
	if ok && d.head == d.end {
		d.finish(drainExhausted)
	}
	return x, ok
}

// NextBack hands out the last removed element not yet handed out.
func (d *Drain[T]) NextBack() (T, bool) {
	x, ok := d.nextBack()
	if ok && d.head == d.end {
		d.finish(drainExhausted)
	}
	return x, ok
}

// Close abandons the drain: elements not handed out are dropped and the
// vector is compacted. It is safe to call more than once.
func (d *Drain[T]) Close() {
	d.finish(drainAbandoned)
}

// All returns a range-over-func view of the drain. Leaving the loop early
// closes the drain.
func (d *Drain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer d.Close()
		for {
			x, ok := d.Next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

func (d *Drain[T]) finish(state drainState) {
	if d.state != drainActive {
		return
	}
	d.state = state
	d.dropRest()
	d.closeGap(d.start)
}
