package engine_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/sysml-tools/sysml-engine/internal/txtartest"
)

// TestCheckGolden drives engine/testdata/check's txtar archives through
// the workspace-level golden harness (internal/txtartest), printing each
// file's diagnostic count and, for non-empty files, every diagnostic's
// code and message — the same shape cmd/sysml's "check" subcommand
// reports, reused here so the harness exercises the public Engine API
// rather than re-implementing formatting.
func TestCheckGolden(t *testing.T) {
	test := txtartest.TxTarTest{Root: "testdata/check", Name: "check", StdlibActive: true}
	test.Run(t, func(tc *txtartest.Test) {
		names := make([]string, 0, len(tc.FileIDs))
		for name := range tc.FileIDs {
			names = append(names, name)
		}
		sort.Strings(names)

		snap := tc.Engine.Snapshot()
		for _, name := range names {
			diags := snap.Diagnostics(tc.FileIDs[name])
			fmt.Fprintf(tc, "%s: %d diagnostic(s)\n", name, len(diags))
			for _, d := range diags {
				fmt.Fprintf(tc, "  %s %s: %s\n", d.Severity, d.Code, d.Message)
			}
		}
	})
}
