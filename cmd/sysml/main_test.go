package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

// run executes the root command with args, the way the teacher's
// cmd/cue/cmd tests drive a cobra command through SetOut/SetArgs rather
// than calling a subcommand constructor directly.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckReportsUndefinedReference(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "a.sysml"), []byte("part def Car :> Missing;"), 0o644)
	qt.Assert(t, qt.IsNil(err))

	out, runErr := run(t, "check", "--no-stdlib", dir)
	qt.Assert(t, qt.IsNotNil(runErr))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "E0001")))
}

func TestCheckCleanWorkspaceHasNoError(t *testing.T) {
	// Stdlib stays active (the default) so the implicit "part def"
	// supertype (Parts::Part) resolves and the workspace is genuinely
	// clean; --no-stdlib would leave that implicit reference dangling.
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "a.sysml"), []byte("part def Vehicle;"), 0o644)
	qt.Assert(t, qt.IsNil(err))

	out, runErr := run(t, "check", dir)
	qt.Assert(t, qt.IsNil(runErr))
	qt.Assert(t, qt.Equals(out, ""))
}

func TestSymbolsPrintsDocumentSymbols(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.sysml")
	err := os.WriteFile(f, []byte("part def Vehicle;"), 0o644)
	qt.Assert(t, qt.IsNil(err))

	out, runErr := run(t, "symbols", "--no-stdlib", f)
	qt.Assert(t, qt.IsNil(runErr))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "Vehicle")))
}

func TestHoverOnReference(t *testing.T) {
	dir := t.TempDir()
	src := "part def Car :> Vehicle;"
	f := filepath.Join(dir, "a.sysml")
	err := os.WriteFile(f, []byte(src), 0o644)
	qt.Assert(t, qt.IsNil(err))

	offset := strings.Index(src, "Vehicle")
	out, runErr := run(t, "hover", "--no-stdlib", f, itoa(offset))
	qt.Assert(t, qt.IsNil(runErr))
	qt.Assert(t, qt.IsTrue(out != ""))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
