// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wundergraph/go-minivec"
)

type layoutOptions struct {
	size     uint
	align    uint
	capacity int
}

// LayoutReport describes the block of a vector with the given element shape.
type LayoutReport struct {
	ElemSize  uintptr `json:"elem_size"`
	ElemAlign uintptr `json:"elem_align"`
	Cap       int     `json:"cap"`
	Offset    uintptr `json:"offset"`
	Size      uintptr `json:"size"`
	Align     uintptr `json:"align"`
}

func newLayoutCmd(global *globalOptions) *cobra.Command {
	opts := &layoutOptions{}
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the block layout for an element size, alignment and capacity",
		Long: `The layout command computes where the header and the elements of a
vector block live, and how many bytes the block takes.

Example:
  minivec layout --size 8 --align 8 --cap 100
  minivec layout --size 1 --align 1 --cap 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, global, opts)
		},
	}
	cmd.Flags().UintVar(&opts.size, "size", 8, "Element size in bytes")
	cmd.Flags().UintVar(&opts.align, "align", 8, "Element alignment in bytes (power of two)")
	cmd.Flags().IntVar(&opts.capacity, "cap", 1, "Number of element slots")
	return cmd
}

func runLayout(cmd *cobra.Command, global *globalOptions, opts *layoutOptions) error {
	l, err := minivec.ComputeLayout(uintptr(opts.size), uintptr(opts.align), opts.capacity)
	if err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	report := LayoutReport{
		ElemSize:  l.ElemSize,
		ElemAlign: uintptr(opts.align),
		Cap:       l.Cap,
		Offset:    l.Offset,
		Size:      l.Size,
		Align:     l.Align,
	}

	out := cmd.OutOrStdout()
	if global.jsonOut {
		return printJSON(out, report)
	}
	fmt.Fprintf(out, "element:  %d bytes, align %d\n", report.ElemSize, report.ElemAlign)
	fmt.Fprintf(out, "capacity: %d\n", report.Cap)
	fmt.Fprintf(out, "offset:   %d\n", report.Offset)
	fmt.Fprintf(out, "block:    %d bytes, align %d\n", report.Size, report.Align)
	return nil
}
