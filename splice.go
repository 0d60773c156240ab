// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"iter"
	"slices"
)

// Splice removes a range of elements like Drain and, when finished, writes
// the elements of a replacement sequence in their place. The replacement may
// be shorter or longer than the removed range; the tail moves accordingly.
type Splice[T any] struct {
	drainCursor[T]
	repl iter.Seq[T]
}

// Splice removes the elements in [start, end) from v and returns an iterator
// handing them out. When the iterator is exhausted or closed, the elements
// produced by repl are inserted at start. The replacement is consumed only
// then, after every removed element has left the vector.
//
// It panics with a *RangeError if start > end or end > Len.
func (v *Vec[T]) Splice(start, end int, repl iter.Seq[T]) *Splice[T] {
	return &Splice[T]{
		drainCursor: newDrainCursor("splice", v, start, end),
		repl:        repl,
	}
}

// Replace replaces the elements in [start, end) with xs, dropping the removed
// ones.
func (v *Vec[T]) Replace(start, end int, xs ...T) {
	v.Splice(start, end, slices.Values(xs)).Close()
}

// Len returns the number of removed elements not yet handed out.
func (s *Splice[T]) Len() int {
	return s.end - s.head
}

// Next hands out the next removed element. Once none is left the replacement
// is written and false is returned.
func (s *Splice[T]) Next() (T, bool) {
	x, ok := s.next()
	if !ok {
		s.finish(drainExhausted)
	}
	return x, ok
}

// NextBack hands out the last removed element not yet handed out.
func (s *Splice[T]) NextBack() (T, bool) {
	x, ok := s.nextBack()
	if !ok {
		s.finish(drainExhausted)
	}
	return x, ok
}

// Close drops the removed elements not handed out and writes the
// replacement. It is safe to call more than once.
func (s *Splice[T]) Close() {
	s.finish(drainAbandoned)
}

// All returns a range-over-func view of the removed elements. The splice is
// closed when the loop ends, early or not.
func (s *Splice[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer s.Close()
		for {
			x, ok := s.next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

func (s *Splice[T]) finish(state drainState) {
	if s.state != drainActive {
		return
	}
	s.state = state
	s.dropRest()

	// The gap [start, tailStart) is vacant now. Fill it first and keep
	// whatever does not fit for a single reservation afterwards.
	at := s.start
	var extra []T
	if s.repl != nil {
		gap := s.window()
		for x := range s.repl {
			if at < s.tailStart {
				gap[at] = x
				at++
				continue
			}
			extra = append(extra, x)
		}
	}
	if len(extra) == 0 {
		s.closeGap(at)
		return
	}

	v := s.vec
	n := s.tailStart + s.tailLen
	v.setLen(n)
	v.mustReserve("splice", len(extra))
	w := v.slots(n + len(extra))
	copy(w[s.tailStart+len(extra):], w[s.tailStart:n])
	copy(w[s.tailStart:], extra)
	clear(extra)
	v.setLen(n + len(extra))
}
