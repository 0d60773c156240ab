// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/wundergraph/go-minivec"
)

type growthOptions struct {
	elemType  string
	pushes    int
	allocator string
	runs      int
}

// GrowthReport is the outcome of pushing elements into an empty vector.
type GrowthReport struct {
	Type      string                 `json:"type"`
	ElemSize  uintptr                `json:"elem_size"`
	Pushes    int                    `json:"pushes"`
	Allocator string                 `json:"allocator"`
	Runs      int                    `json:"runs"`
	Steps     []int                  `json:"capacity_steps"`
	Stats     minivec.AllocatorStats `json:"allocator_stats"`
	ArenaPeak int                    `json:"arena_peak_bytes,omitempty"`
}

type cacheLine [64]byte

// elemKinds lists the element types the growth command can push.
var elemKinds = []string{"u8", "u16", "u32", "u64", "line", "zst", "string"}

func newGrowthCmd(global *globalOptions) *cobra.Command {
	opts := &growthOptions{}
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Push elements into a vector and report its capacity steps",
		Long: `The growth command pushes elements one at a time into an empty vector
and reports every capacity the vector went through, together with the calls it
made to the allocator.

With --allocator arena the blocks come from an arena taken from a pool; with
--runs the experiment is repeated, and the pool sizes later arenas after the
peak usage of earlier runs.

Example:
  minivec growth --type u64 --n 1000
  minivec growth --type zst --n 1000000 --json
  minivec growth --type line --allocator arena --runs 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrowth(cmd, global, opts)
		},
	}
	cmd.Flags().StringVar(&opts.elemType, "type", "u64", "Element type: "+strings.Join(elemKinds, ", "))
	cmd.Flags().IntVar(&opts.pushes, "n", 1000, "Number of elements to push")
	cmd.Flags().StringVar(&opts.allocator, "allocator", "go", "Allocator: go or arena")
	cmd.Flags().IntVar(&opts.runs, "runs", 1, "Number of times to repeat the experiment")
	return cmd
}

func runGrowth(cmd *cobra.Command, global *globalOptions, opts *growthOptions) error {
	if opts.pushes < 0 {
		return fmt.Errorf("--n must not be negative, got %d", opts.pushes)
	}
	if opts.runs < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", opts.runs)
	}
	if !slices.Contains(elemKinds, opts.elemType) {
		return fmt.Errorf("unknown element type %q (want one of %s)", opts.elemType, strings.Join(elemKinds, ", "))
	}

	var pool *minivec.ArenaPool
	switch opts.allocator {
	case "go":
	case "arena":
		if opts.elemType == "string" {
			return fmt.Errorf("element type %q holds pointers and cannot be placed in an arena", opts.elemType)
		}
		pool = minivec.NewArenaPool()
	default:
		return fmt.Errorf("unknown allocator %q (want go or arena)", opts.allocator)
	}

	var report GrowthReport
	for range opts.runs {
		var item *minivec.PooledArena
		var inner minivec.Allocator = minivec.GoAllocator{}
		if pool != nil {
			item = pool.Acquire(elemKey(opts.elemType))
			inner = item.Arena
		}

		tracking := minivec.NewTrackingAllocator(inner)
		restore := minivec.SetAllocator(tracking)
		steps, size := pushAll(opts.elemType, opts.pushes)
		restore()

		report = GrowthReport{
			Type:      opts.elemType,
			ElemSize:  size,
			Pushes:    opts.pushes,
			Allocator: opts.allocator,
			Runs:      opts.runs,
			Steps:     steps,
			Stats:     tracking.Stats(),
		}
		if item != nil {
			report.ArenaPeak = item.Arena.Peak()
			pool.Release(item)
		}
	}

	out := cmd.OutOrStdout()
	if global.jsonOut {
		return printJSON(out, report)
	}

	fmt.Fprintf(out, "type %s (%d bytes), %d pushes, %s allocator\n",
		report.Type, report.ElemSize, report.Pushes, report.Allocator)
	fmt.Fprintf(out, "capacity steps: %s\n", joinInts(report.Steps))
	fmt.Fprintf(out, "allocations %d, reallocations %d, deallocations %d, peak %d bytes\n",
		report.Stats.Allocations, report.Stats.Reallocations, report.Stats.Deallocations, report.Stats.Peak)
	if report.ArenaPeak > 0 {
		fmt.Fprintf(out, "arena peak %d bytes over %d run(s)\n", report.ArenaPeak, report.Runs)
	}
	return nil
}

func pushAll(elemType string, n int) ([]int, uintptr) {
	switch elemType {
	case "u8":
		return measure(n, func(i int) uint8 { return uint8(i) })
	case "u16":
		return measure(n, func(i int) uint16 { return uint16(i) })
	case "u32":
		return measure(n, func(i int) uint32 { return uint32(i) })
	case "line":
		return measure(n, func(i int) cacheLine { return cacheLine{byte(i)} })
	case "zst":
		return measure(n, func(int) struct{} { return struct{}{} })
	case "string":
		return measure(n, strconv.Itoa)
	default:
		return measure(n, func(i int) uint64 { return uint64(i) })
	}
}

// measure pushes n elements into an empty vector and returns each capacity it
// went through along with the element size.
func measure[T any](n int, elem func(i int) T) ([]int, uintptr) {
	var v minivec.Vec[T]
	defer v.Release()

	var steps []int
	for i := range n {
		v.Push(elem(i))
		if c := v.Cap(); len(steps) == 0 || steps[len(steps)-1] != c {
			steps = append(steps, c)
		}
	}
	var zero T
	return steps, unsafe.Sizeof(zero)
}

func elemKey(elemType string) uint64 {
	return uint64(slices.Index(elemKinds, elemType))
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
