// SPDX-License-Identifier: Apache-2.0

package minivec

import "math"

// minNonZeroCap is the capacity of the first allocation of an empty vector.
// Small elements start with a few slots so early pushes do not reallocate.
func minNonZeroCap(elemSize uintptr) int {
	switch {
	case elemSize == 1:
		return 8
	case elemSize <= 1024:
		return 4
	default:
		return 1
	}
}

// nextCapacity returns the capacity to grow to when current slots are not
// enough to hold required elements. Capacity doubles, so n pushes cost
// O(log n) reallocations. If doubling overflows, required is returned as is
// and left for the layout check to reject.
func nextCapacity(elemSize uintptr, current, required int) int {
	c := required
	if current <= math.MaxInt/2 && current*2 > c {
		c = current * 2
	}
	if m := minNonZeroCap(elemSize); m > c {
		c = m
	}
	return c
}
