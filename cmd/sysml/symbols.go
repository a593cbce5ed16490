package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSymbolsCmd is "sysml symbols <file>": print the document symbols of
// a single file, one per line, indented by nothing in particular since
// HirSymbol carries no tree depth — qualified name is indentation enough.
func newSymbolsCmd() *cobra.Command {
	var noStdlib bool
	cmd := &cobra.Command{
		Use:   "symbols <file>",
		Short: "print the document symbols of a single file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdlib, _ := cmd.Flags().GetBool("stdlib")
			if noStdlib {
				stdlib = false
			}
			e, fid, err := singleFileWorkspace(args[0], stdlib)
			if err != nil {
				return err
			}
			snap := e.Snapshot()
			in := snap.Interner()
			for _, sym := range snap.DocumentSymbols(fid) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%d,%d)\n",
					sym.Kind, in.String(sym.QualifiedName), sym.Range.Start, sym.Range.End)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noStdlib, "no-stdlib", false, "do not load the bundled standard library")
	return cmd
}
