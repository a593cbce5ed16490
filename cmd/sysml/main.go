// Command sysml is a thin demonstration CLI over the engine façade
// (SPEC_FULL.md §6), in the same spirit as the teacher's cmd/cue: a
// cobra root command with one subcommand per Engine API operation it
// exercises, never itself implementing analysis logic.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sysml",
		Short:         "A SysML v2 / KerML workspace analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(root.PersistentFlags())
	root.AddCommand(newCheckCmd(), newSymbolsCmd(), newHoverCmd())
	return root
}
