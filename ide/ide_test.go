package ide_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/ide"
	"github.com/sysml-tools/sysml-engine/index"
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/syntax/ast"
	"github.com/sysml-tools/sysml-engine/syntax/parser"
)

func build(t *testing.T, srcs ...string) (*index.SymbolIndex, *intern.Interner, []ids.FileId) {
	t.Helper()
	in := intern.New()
	files := make(map[ids.FileId][]hir.HirSymbol, len(srcs))
	var fileIDs []ids.FileId
	alloc := ids.NewAllocator()
	for _, src := range srcs {
		res := parser.Parse(src)
		f := ast.NewFile(res.Tree)
		fid := alloc.Allocate()
		syms, _ := hir.Extract(fid, f, in, src)
		files[fid] = syms
		fileIDs = append(fileIDs, fid)
	}
	idx := index.Build(in, files, nil)
	index.ResolveTypeRefs(idx)
	return idx, in, fileIDs
}

func TestGotoDefinitionCrossFile(t *testing.T) {
	idx, _, files := build(t, "part def Vehicle;", "part def Car :> Vehicle;")

	src := "part def Car :> Vehicle;"
	offset := strings.Index(src, "Vehicle")
	locs := ide.GotoDefinition(idx, files[1], offset)
	qt.Assert(t, qt.HasLen(locs, 1))
	qt.Assert(t, qt.Equals(locs[0].File, files[0]))
}

func TestHoverOnReferenceShowsTarget(t *testing.T) {
	idx, in, files := build(t, "part def Vehicle;", "part def Car :> Vehicle;")
	src := "part def Car :> Vehicle;"
	offset := strings.Index(src, "Vehicle")

	h := ide.HoverAt(idx, files[1], offset)
	qt.Assert(t, qt.IsTrue(h != nil))
	qt.Assert(t, qt.Equals(in.String(h.Symbol.QualifiedName), "Vehicle"))
}

func TestDocumentSymbolsReturnsFileMembers(t *testing.T) {
	idx, _, files := build(t, "package P {\n  part def A;\n  part def B;\n}")
	syms := ide.DocumentSymbols(idx, files[0])
	qt.Assert(t, qt.IsTrue(len(syms) >= 3))
}

func TestWorkspaceSymbolsSubstringMatch(t *testing.T) {
	idx, _, _ := build(t, "part def Vehicle;\npart def VehiclePart;\npart def Other;")
	found := ide.WorkspaceSymbols(idx, "vehicle")
	qt.Assert(t, qt.Equals(len(found), 2))
}

func TestFindReferencesIncludesDeclarationAndUses(t *testing.T) {
	idx, _, files := build(t, "part def Vehicle;", "part def Car :> Vehicle;", "part def Truck :> Vehicle;")
	decl := index.Resolve(idx, 0, "Vehicle")
	qt.Assert(t, qt.Equals(decl.Status, index.Found))

	refs := ide.FindReferences(idx, files[0], decl.Symbol.NameRange.Start)
	qt.Assert(t, qt.Equals(len(refs), 3)) // declaration + 2 uses
}
