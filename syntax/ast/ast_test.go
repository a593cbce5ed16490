package ast_test

import (
	"testing"

	"github.com/sysml-tools/sysml-engine/syntax/ast"
	"github.com/sysml-tools/sysml-engine/syntax/parser"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

func parseFile(t *testing.T, src string) ast.File {
	t.Helper()
	res := parser.Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, res.Errors)
	}
	return ast.NewFile(res.Tree)
}

func TestPackageAndDefinitionAccessors(t *testing.T) {
	f := parseFile(t, "package Vehicles {\n  abstract part def Engine :> Component;\n  private part engine :> Engine;\n}")
	members := f.Members()
	if len(members) != 1 {
		t.Fatalf("want 1 top-level member, got %d", len(members))
	}
	pkg, ok := members[0].(ast.Package)
	if !ok {
		t.Fatalf("want ast.Package, got %T", members[0])
	}
	name, ok := pkg.Name()
	if !ok || name.Text() != "Vehicles" {
		t.Fatalf("pkg.Name() = %v, %v", name.Text(), ok)
	}

	body := pkg.Members()
	if len(body) != 2 {
		t.Fatalf("want 2 package members, got %d", len(body))
	}

	def, ok := body[0].(ast.Definition)
	if !ok {
		t.Fatalf("want ast.Definition, got %T", body[0])
	}
	if !def.IsDef() {
		t.Error("IsDef() = false, want true")
	}
	if !def.HasModifier(token.KW_ABSTRACT) {
		t.Error("HasModifier(KW_ABSTRACT) = false, want true")
	}
	if k, ok := def.KindKeyword(); !ok || k != token.KW_PART {
		t.Errorf("KindKeyword() = %v, %v; want KW_PART, true", k, ok)
	}
	dname, ok := def.Name()
	if !ok || dname.Text() != "Engine" {
		t.Fatalf("def.Name() = %q, %v", dname.Text(), ok)
	}
	specs := def.Specializes()
	if len(specs) != 1 || specs[0].Text() != "Component" {
		t.Fatalf("def.Specializes() = %v", specs)
	}

	usage, ok := body[1].(ast.Usage)
	if !ok {
		t.Fatalf("want ast.Usage, got %T", body[1])
	}
	if usage.IsDef() {
		t.Error("IsDef() = true, want false")
	}
	if vis, ok := usage.Visibility(); !ok || vis != token.KW_PRIVATE {
		t.Errorf("Visibility() = %v, %v; want KW_PRIVATE, true", vis, ok)
	}
	if _, hasBody := usage.Body(); hasBody {
		t.Error("Body() ok = true for a \";\"-terminated usage, want false")
	}
}

func TestImportAccessors(t *testing.T) {
	f := parseFile(t, "import Vehicles::Engines::*;")
	imp := f.Members()[0].(ast.Import)
	if !imp.IsWildcard() || imp.IsRecursive() {
		t.Errorf("IsWildcard/IsRecursive = %v/%v, want true/false", imp.IsWildcard(), imp.IsRecursive())
	}
	want := []string{"Vehicles", "Engines"}
	got := imp.Segments()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Segments() = %v, want %v", got, want)
	}

	f2 := parseFile(t, "import Vehicles::** {\n  filter @Electrical;\n}")
	imp2 := f2.Members()[0].(ast.Import)
	if !imp2.IsRecursive() {
		t.Error("IsRecursive() = false, want true")
	}
	filters := imp2.Filters()
	if len(filters) != 1 {
		t.Fatalf("want 1 filter, got %d", len(filters))
	}
	meta, ok := filters[0].Metadata()
	if !ok || meta.Text() != "@Electrical" {
		t.Errorf("filter metadata = %q, %v", meta.Text(), ok)
	}
}

func TestAliasAccessors(t *testing.T) {
	f := parseFile(t, "alias V for Vehicles::Car;")
	al := f.Members()[0].(ast.Alias)
	name, ok := al.Name()
	if !ok || name.Text() != "V" {
		t.Fatalf("Name() = %q, %v", name.Text(), ok)
	}
	target, ok := al.Target()
	if !ok || target.Text() != "Vehicles::Car" {
		t.Fatalf("Target() = %q, %v", target.Text(), ok)
	}
	segs := target.Segments()
	if len(segs) != 2 || segs[0].Text() != "Vehicles" || segs[1].Text() != "Car" {
		t.Errorf("Target().Segments() = %v", segs)
	}
}

func TestRelationshipUsageKeyword(t *testing.T) {
	f := parseFile(t, "perform action :> TakePicture;")
	u := f.Members()[0].(ast.Usage)
	if k, ok := u.KindKeyword(); !ok || k != token.KW_ACTION {
		t.Errorf("KindKeyword() = %v, %v; want KW_ACTION, true", k, ok)
	}
	if rk, ok := u.RelationshipKeyword(); !ok || rk != token.KW_PERFORM {
		t.Errorf("RelationshipKeyword() = %v, %v; want KW_PERFORM, true", rk, ok)
	}
	_, anonymous := u.Name()
	if anonymous {
		t.Error("Name() ok = true for an anonymous usage, want false")
	}
}

func TestTwoWordCaseForm(t *testing.T) {
	f := parseFile(t, "use case def TestDrive;")
	def := f.Members()[0].(ast.Definition)
	if !def.IsCase() {
		t.Error("IsCase() = false, want true")
	}
	if k, ok := def.KindKeyword(); !ok || k != token.KW_USE {
		t.Errorf("KindKeyword() = %v, %v; want KW_USE, true", k, ok)
	}
}

func TestConnectorFlowTransition(t *testing.T) {
	f := parseFile(t, "connect a to b;")
	c := f.Members()[0].(ast.Connector)
	if c.IsBind() {
		t.Error("IsBind() = true, want false")
	}
	ends := c.Ends()
	if len(ends) != 2 || ends[0].Text() != "a" || ends[1].Text() != "b" {
		t.Errorf("Ends() = %v", ends)
	}

	f2 := parseFile(t, "flow a via p to b;")
	fl := f2.Members()[0].(ast.Flow)
	src, _ := fl.Source()
	tgt, _ := fl.Target()
	via, ok := fl.Via()
	if src.Text() != "a" || tgt.Text() != "b" || !ok || via.Text() != "p" {
		t.Errorf("Source/Target/Via = %q/%q/%q(%v)", src.Text(), tgt.Text(), via.Text(), ok)
	}

	f3 := parseFile(t, "transition first s1 then s2 accept e1 do a1;")
	tr := f3.Members()[0].(ast.Transition)
	if !tr.IsTransition() {
		t.Error("IsTransition() = false, want true")
	}
	from, _ := tr.From()
	to, _ := tr.To()
	effects := tr.Effects()
	if from.Text() != "s1" || to.Text() != "s2" || len(effects) != 2 {
		t.Errorf("From/To/Effects = %q/%q/%v", from.Text(), to.Text(), effects)
	}
}

func TestConstraintExpressionBody(t *testing.T) {
	f := parseFile(t, "requirement def R {\n  constraint { 1 + 2 * 3 > 0; }\n}")
	def := f.Members()[0].(ast.Definition)
	bodyKind, ok := def.BodyKind()
	if !ok {
		t.Fatal("BodyKind() ok = false, want true")
	}
	body, ok := def.Body()
	if !ok || len(body) != 1 {
		t.Fatalf("Body() = %v, %v; want 1 member", body, ok)
	}
	constraint, ok := body[0].(ast.Usage)
	if !ok {
		t.Fatalf("want ast.Usage for the constraint member, got %T", body[0])
	}
	cbody, ok := constraint.Body()
	if !ok || len(cbody) != 1 {
		t.Fatalf("constraint.Body() = %v, %v; want 1 member", cbody, ok)
	}
	expr, ok := cbody[0].(ast.Expr)
	if !ok {
		t.Fatalf("want ast.Expr, got %T", cbody[0])
	}
	if expr.Kind().String() != "ExprBinary" {
		t.Errorf("expr.Kind() = %v, want ExprBinary", expr.Kind())
	}
	_ = bodyKind
}
