package diagnostics_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"

	"github.com/sysml-tools/sysml-engine/diagnostics"
	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/index"
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/ast"
	"github.com/sysml-tools/sysml-engine/syntax/parser"
)

func check(t *testing.T, srcs ...string) []diagnostics.Diagnostic {
	t.Helper()
	in := intern.New()
	files := make(map[ids.FileId][]hir.HirSymbol, len(srcs))
	fileSets := make(map[ids.FileId]diagnostics.FileSet, len(srcs))
	var filters []hir.ScopeFilter
	alloc := ids.NewAllocator()
	for _, src := range srcs {
		res := parser.Parse(src)
		f := ast.NewFile(res.Tree)
		fid := alloc.Allocate()
		syms, flts := hir.Extract(fid, f, in, src)
		files[fid] = syms
		filters = append(filters, flts...)
		fileSets[fid] = diagnostics.FileSet{SyntaxErrors: res.Errors, Lines: span.NewLineIndex(src)}
	}
	idx := index.Build(in, files, filters)
	index.ResolveTypeRefs(idx)
	return diagnostics.Check(idx, fileSets)
}

func hasCode(diags []diagnostics.Diagnostic, code diagnostics.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// requireCode is hasCode plus a pretty-printed dump of the full
// diagnostic list on failure, the way the teacher's encoding tests use
// kr/pretty to show the actual structured value rather than just "false".
func requireCode(t *testing.T, diags []diagnostics.Diagnostic, code diagnostics.Code) {
	t.Helper()
	if !hasCode(diags, code) {
		t.Fatalf("expected a %s diagnostic, got:\n%# v", code, pretty.Formatter(diags))
	}
}

func TestUndefinedReference(t *testing.T) {
	diags := check(t, "part def Car :> Vehicle;")
	requireCode(t, diags, diagnostics.E0001UndefinedReference)
}

func TestDuplicateDefinition(t *testing.T) {
	diags := check(t, "part def Car;\npart def Car;")
	qt.Assert(t, qt.IsTrue(hasCode(diags, diagnostics.E0004DuplicateDefinition)))
}

func TestCircularSpecialization(t *testing.T) {
	diags := check(t, "part def A :> B;\npart def B :> A;")
	qt.Assert(t, qt.IsTrue(hasCode(diags, diagnostics.E0007CircularSpecializ)))
}

// partsLib stands in for the bundled library, so the implicit
// Parts::Part supertype that every "part def" carries resolves.
const partsLib = "package Parts { part def Part; }"

func TestNoFalseUndefinedForResolvableChain(t *testing.T) {
	diags := check(t, "part def Vehicle;\npart def Car :> Vehicle;", partsLib)
	qt.Assert(t, qt.IsFalse(hasCode(diags, diagnostics.E0001UndefinedReference)))
}

func TestDedupKeepsTuplesOnDifferentLines(t *testing.T) {
	diags := check(t, "part def Car :> Vehicle;\npart def Truck :> Vehicle;", partsLib)
	var undefined []diagnostics.Diagnostic
	for _, d := range diags {
		if d.Code == diagnostics.E0001UndefinedReference {
			undefined = append(undefined, d)
		}
	}
	// Two distinct undefined references to "Vehicle" on different lines
	// must NOT collapse into one: dedup is keyed on (file, line, column,
	// message), and these differ in line.
	qt.Assert(t, qt.Equals(len(undefined), 2))
}
