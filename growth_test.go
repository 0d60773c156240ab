// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinNonZeroCap(t *testing.T) {
	require.Equal(t, 8, minNonZeroCap(1))
	require.Equal(t, 4, minNonZeroCap(2))
	require.Equal(t, 4, minNonZeroCap(1024))
	require.Equal(t, 1, minNonZeroCap(1025))
}

func TestNextCapacity(t *testing.T) {
	for _, tc := range []struct {
		name              string
		elemSize          uintptr
		current, required int
		want              int
	}{
		{"first byte push", 1, 0, 1, 8},
		{"first int push", 8, 0, 1, 4},
		{"first large push", 4096, 0, 1, 1},
		{"doubles", 8, 4, 5, 8},
		{"required wins", 8, 4, 100, 100},
		{"floor wins over exact fit", 8, 0, 2, 4},
		{"doubling overflow", 8, math.MaxInt/2 + 1, math.MaxInt/2 + 2, math.MaxInt/2 + 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, nextCapacity(tc.elemSize, tc.current, tc.required))
		})
	}
}
