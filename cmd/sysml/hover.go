package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newHoverCmd is "sysml hover <file> <offset>": print the hover
// information (spec.md §6) for the byte offset given.
func newHoverCmd() *cobra.Command {
	var noStdlib bool
	cmd := &cobra.Command{
		Use:   "hover <file> <offset>",
		Short: "print hover information for a byte offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("offset must be an integer: %w", err)
			}
			stdlib, _ := cmd.Flags().GetBool("stdlib")
			if noStdlib {
				stdlib = false
			}
			e, fid, err := singleFileWorkspace(args[0], stdlib)
			if err != nil {
				return err
			}
			snap := e.Snapshot()
			h := snap.Hover(fid, offset)
			if h == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no symbol at offset")
				return nil
			}
			in := snap.Interner()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%d,%d)\n",
				h.Symbol.Kind, in.String(h.Symbol.QualifiedName), h.Range.Start, h.Range.End)
			for _, rel := range h.Relationships {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s -> %s\n", rel.Kind, in.String(rel.Target.QualifiedName))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noStdlib, "no-stdlib", false, "do not load the bundled standard library")
	return cmd
}
