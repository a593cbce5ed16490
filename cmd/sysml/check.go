package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// newCheckCmd is "sysml check <dir>": load every .sysml/.kerml file under
// dir and print its diagnostics, one per line, the way the teacher's
// "cue vet" reports errors, as "path:offset: severity: code: message",
// where offset is the diagnostic's starting byte offset in the file.
func newCheckCmd() *cobra.Command {
	var noStdlib bool
	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "load a workspace directory and print its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdlib, _ := cmd.Flags().GetBool("stdlib")
			if noStdlib {
				stdlib = false
			}
			e, fileIDs, err := loadWorkspace(args[0], stdlib)
			if err != nil {
				return err
			}
			snap := e.Snapshot()

			paths := make([]string, 0, len(fileIDs))
			for path := range fileIDs {
				paths = append(paths, path)
			}
			sort.Strings(paths)

			var anyErr bool
			for _, path := range paths {
				fid := fileIDs[path]
				for _, d := range snap.Diagnostics(fid) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: %s: %s: %s\n",
						path, d.Range.Start, d.Severity, d.Code, d.Message)
				}
				if snap.Err(fid) != nil {
					anyErr = true
				}
			}
			if anyErr {
				return fmt.Errorf("one or more files failed to check")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noStdlib, "no-stdlib", false, "do not load the bundled standard library")
	return cmd
}
