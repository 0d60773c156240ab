// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wundergraph/go-minivec"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose bool
	jsonOut bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "minivec",
		Short: "Inspect minivec block layouts and growth behavior",
		Long: `minivec reports how single-pointer vectors lay out their blocks and how
they grow, counting every call made to the memory allocator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			minivec.SetLogger(logger)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every block allocation")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Output in JSON format")

	cmd.AddCommand(newLayoutCmd(opts))
	cmd.AddCommand(newGrowthCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printJSON outputs data as indented JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
