package hir_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sysml-tools/sysml-engine/hir"
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/syntax/ast"
	"github.com/sysml-tools/sysml-engine/syntax/parser"
)

func extract(t *testing.T, src string) ([]hir.HirSymbol, *intern.Interner) {
	t.Helper()
	res := parser.Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, res.Errors)
	}
	f := ast.NewFile(res.Tree)
	in := intern.New()
	syms, _ := hir.Extract(ids.FileId(1), f, in, src)
	return syms, in
}

func symbolByQualified(t *testing.T, syms []hir.HirSymbol, in *intern.Interner, qualified string) hir.HirSymbol {
	t.Helper()
	for _, s := range syms {
		if in.String(s.QualifiedName) == qualified {
			return s
		}
	}
	t.Fatalf("no symbol with qualified name %q among %d symbols", qualified, len(syms))
	return hir.HirSymbol{}
}

func TestQualifiedNameConstruction(t *testing.T) {
	syms, in := extract(t, "package Vehicles {\n  part def Car;\n}")
	qt.Assert(t, qt.HasLen(syms, 2))
	pkg := symbolByQualified(t, syms, in, "Vehicles")
	qt.Assert(t, qt.Equals(pkg.Kind, hir.KindPackage))
	car := symbolByQualified(t, syms, in, "Vehicles::Car")
	qt.Assert(t, qt.Equals(car.Kind, hir.KindPartDef))
	qt.Assert(t, qt.Equals(in.String(car.Parent), "Vehicles"))
}

func TestUnrestrictedNameKeepsQuotes(t *testing.T) {
	syms, in := extract(t, "package P {\n  part def 'My Car';\n}")
	sym := symbolByQualified(t, syms, in, "P::'My Car'")
	qt.Assert(t, qt.Equals(sym.Kind, hir.KindPartDef))
}

// implicit supertypes, spec.md §4.3's worked examples.
func TestImplicitSupertype(t *testing.T) {
	syms, in := extract(t, "package P {\n  part def Car;\n  action def Drive;\n  state def Idle;\n}")

	car := symbolByQualified(t, syms, in, "P::Car")
	qt.Assert(t, qt.HasLen(car.Relationships, 1))
	qt.Assert(t, qt.Equals(car.Relationships[0].Kind, hir.RelSpecializes))
	qt.Assert(t, qt.Equals(in.String(car.Relationships[0].Target.Qualified), "Parts::Part"))

	drive := symbolByQualified(t, syms, in, "P::Drive")
	qt.Assert(t, qt.Equals(in.String(drive.Relationships[0].Target.Qualified), "Actions::Action"))

	idle := symbolByQualified(t, syms, in, "P::Idle")
	qt.Assert(t, qt.Equals(in.String(idle.Relationships[0].Target.Qualified), "States::StateAction"))
}

// An explicit specializes clause still gets the implicit supertype too:
// spec.md never says the implicit edge is suppressed by an explicit one.
func TestImplicitSupertypeAlongsideExplicit(t *testing.T) {
	syms, in := extract(t, "package P {\n  part def Car :> Vehicle;\n}")
	car := symbolByQualified(t, syms, in, "P::Car")
	qt.Assert(t, qt.HasLen(car.Relationships, 2))
	kinds := map[hir.RelationshipKind]string{}
	for _, r := range car.Relationships {
		kinds[r.Kind] = in.String(r.Target.Qualified)
	}
	qt.Assert(t, qt.Equals(in.String(car.Relationships[0].Target.Target), "Vehicle"))
	_ = kinds
}

// spec.md §8 scenario 6: two anonymous usages in the same scope get
// consecutive counters, not per-prefix or per-scope ones.
func TestAnonymousNamingConsecutiveCounters(t *testing.T) {
	syms, in := extract(t, "package P {\n  part def X {\n    perform action :> Take;\n    perform action :> Take;\n  }\n}")
	x := symbolByQualified(t, syms, in, "P::X")
	qt.Assert(t, qt.Equals(x.Kind, hir.KindPartDef))

	var names []string
	for _, s := range syms {
		n := in.String(s.QualifiedName)
		if len(n) > len("P::X::") && n[:len("P::X::")] == "P::X::" {
			names = append(names, n)
		}
	}
	qt.Assert(t, qt.HasLen(names, 2))
	qt.Assert(t, qt.Equals(names[0], "P::X::<perform:#0@L3>"))
	qt.Assert(t, qt.Equals(names[1], "P::X::<perform:#1@L4>"))
}

func TestPerformRelationshipTargetsSpecializedType(t *testing.T) {
	syms, in := extract(t, "package P {\n  action def Take;\n  part def X {\n    perform action :> Take;\n  }\n}")
	x := symbolByQualified(t, syms, in, "P::X")
	_ = x
	var anon hir.HirSymbol
	for _, s := range syms {
		if s.IsAnonymous && s.Kind == hir.KindActionUsage {
			anon = s
		}
	}
	qt.Assert(t, qt.IsTrue(anon.Kind == hir.KindActionUsage))
	var sawPerforms, sawSpecializes bool
	for _, r := range anon.Relationships {
		if r.Kind == hir.RelPerforms && in.String(r.Target.Target) == "Take" {
			sawPerforms = true
		}
		if r.Kind == hir.RelSpecializes && in.String(r.Target.Target) == "Take" {
			sawSpecializes = true
		}
	}
	qt.Assert(t, qt.IsTrue(sawPerforms))
	qt.Assert(t, qt.IsTrue(sawSpecializes))
}

func TestMetadataAnnotationsAndFilter(t *testing.T) {
	syms, in := extract(t, "package P {\n  filter @Meta;\n  @Meta part def Car;\n}")
	car := symbolByQualified(t, syms, in, "P::Car")
	qt.Assert(t, qt.HasLen(car.MetadataAnnotations, 1))
	qt.Assert(t, qt.Equals(in.String(car.MetadataAnnotations[0]), "Meta"))

	_, filters := extractWithFilters(t, "package P {\n  filter @Meta;\n}")
	qt.Assert(t, qt.HasLen(filters, 1))
	qt.Assert(t, qt.Equals(in.String(filters[0].Scope), "P"))
}

func extractWithFilters(t *testing.T, src string) ([]hir.HirSymbol, []hir.ScopeFilter) {
	t.Helper()
	res := parser.Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, res.Errors)
	}
	f := ast.NewFile(res.Tree)
	in := intern.New()
	return hir.Extract(ids.FileId(1), f, in, src)
}

func TestMultiplicityExtraction(t *testing.T) {
	syms, in := extract(t, "package P {\n  part wheels : Wheel [4];\n}")
	wheels := symbolByQualified(t, syms, in, "P::wheels")
	qt.Assert(t, wheels.Multiplicity != nil)
	qt.Assert(t, qt.Equals(wheels.Multiplicity.Lower.Value, 4))
	qt.Assert(t, qt.Equals(wheels.Multiplicity.Upper.Value, 4))
}

// A bound wider than a machine int must still round-trip exactly through
// Bound.Decimal, unlike Value, which strconv.Atoi silently clamps to the
// largest int on overflow.
func TestBoundDecimalHandlesArbitraryPrecision(t *testing.T) {
	const huge = "99999999999999999999999999999999"
	syms, in := extract(t, "package P {\n  part slots : Slot [0.."+huge+"];\n}")
	slots := symbolByQualified(t, syms, in, "P::slots")
	qt.Assert(t, slots.Multiplicity != nil)

	d, err := slots.Multiplicity.Upper.Decimal()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(d.String(), huge))

	_, err = slots.Multiplicity.Lower.Decimal()
	qt.Assert(t, qt.IsNil(err))
}

// Structural diff of an extracted symbol against a hand-built expectation,
// the way the teacher's compile/parser tests use go-cmp rather than
// field-by-field assertions for tree-shaped output.
func TestExtractStructuralDiff(t *testing.T) {
	syms, in := extract(t, "part def Vehicle;")
	got := symbolByQualified(t, syms, in, "Vehicle")
	qt.Assert(t, qt.HasLen(got.Relationships, 1))

	want := hir.HirSymbol{
		File:          ids.FileId(1),
		Name:          got.Name,
		QualifiedName: got.QualifiedName,
		Kind:          hir.KindPartDef,
		Range:         got.Range,
		NameRange:     got.NameRange,
		IsPublic:      true,
		Relationships: []hir.Relationship{{
			Kind: hir.RelSpecializes,
			Target: hir.TypeRef{
				Target:    in.Intern("Part"),
				Qualified: in.Intern("Parts::Part"),
				Range:     got.Relationships[0].Target.Range,
			},
			Range: got.Relationships[0].Range,
		}},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("extracted symbol differs: (-want +got)\n%s", diff)
	}
}
