// SPDX-License-Identifier: Apache-2.0

package minivec

import "iter"

// ExtractIf returns a sequence that visits the elements in [start, end) in
// order, removing and yielding those for which pred reports true. Elements
// that are kept close up behind the removed ones. When the loop stops early,
// the elements not yet visited stay in the vector in their original order.
//
// pred may modify the element it is given. The range is checked each time the
// sequence is started; it panics with a *RangeError if start > end or
// end > Len. The vector must not be used while the loop runs.
func (v *Vec[T]) ExtractIf(start, end int, pred func(*T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		n := v.Len()
		checkRange("extract if", start, end, n)
		s := v.slots(n)
		v.setLen(start)

		// Removed slots always form the hole [i-removed, i).
		i, removed := start, 0
		defer func() {
			if removed > 0 {
				copy(s[i-removed:], s[i:n])
				clear(s[n-removed : n])
			}
			v.setLen(n - removed)
		}()

		var zero T
		for i < end {
			p := &s[i]
			if !pred(p) {
				if removed > 0 {
					s[i-removed] = *p
				}
				i++
				continue
			}
			x := *p
			*p = zero
			i++
			removed++
			if !yield(x) {
				return
			}
		}
	}
}
