package parser

import (
	"testing"

	"github.com/sysml-tools/sysml-engine/syntax/cst"
)

func TestParseRoundTrip(t *testing.T) {
	testCases := []struct {
		desc string
		src  string
	}{
		{"empty file", ""},
		{"package with part def", "package Vehicles {\n  part def Engine;\n}"},
		{"private part usage with specializes", "private part engine :> Engine;"},
		{"abstract part def with body", "abstract part def Engine {\n  attribute power : Real;\n}"},
		{"import wildcard", "import Vehicles::Engines::*;"},
		{"import recursive wildcard with filter", "import Vehicles::** {\n  filter @Electrical;\n}"},
		{"alias", "alias V for Vehicles::Car;"},
		{"multiplicity", "part wheels : Wheel [4];"},
		{"bounded multiplicity", "part slots : Slot [0..*];"},
		{"metadata annotation", "@Electrical part def Wire;"},
		{"feature chain target", "part p :> a.b.c;"},
		{"qualified name target", "part p :> Vehicles::Engine;"},
		{"use case", "use case def TestDrive;"},
		{"perform action usage", "perform action :> TakePicture;"},
		{"unrestricted identifier", "part 'my part' :> Part;"},
		{"connect statement", "connect a to b;"},
		{"bind statement", "bind a = b;"},
		{"succession shorthand", "first s1 then s2;"},
		{"transition with accept/do", "transition first s1 then s2 accept e1 do a1;"},
		{"requirement with constraint body", "requirement def R {\n  constraint { x > 0; }\n}"},
		{"unclosed brace recovers", "part def Engine {\n  attribute power : Real;\n"},
	}

	for _, c := range testCases {
		t.Run(c.desc, func(t *testing.T) {
			res := Parse(c.src)
			got := cst.Text(res.Tree)
			if got != c.src {
				t.Errorf("%s: round trip mismatch\n got: %q\nwant: %q", c.desc, got, c.src)
			}
		})
	}
}

func TestParseReportsUnclosedBrace(t *testing.T) {
	res := Parse("part def Engine {\n  attribute power : Real;\n")
	if len(res.Errors) == 0 {
		t.Fatal("expected at least one SyntaxError for an unclosed brace")
	}
}

func TestParseRecoversMalformedMemberWithinBlock(t *testing.T) {
	src := "package P {\n  @@@ part def A;\n  part def B;\n}"
	res := Parse(src)
	if len(res.Errors) == 0 {
		t.Fatal("expected a SyntaxError for the malformed token run")
	}
	if got := cst.Text(res.Tree); got != src {
		t.Errorf("round trip mismatch after recovery\n got: %q\nwant: %q", got, src)
	}

	// Recovery must not let the malformed "@@@" run swallow the
	// well-formed "part def B;" member that follows it.
	var defTexts []string
	cst.Walk(cst.NewRoot(res.Tree), cst.WalkFunc(func(n *cst.SyntaxNode) bool {
		if n.Kind() == cst.Definition {
			defTexts = append(defTexts, n.Text())
		}
		return true
	}))
	found := false
	for _, text := range defTexts {
		if text == "part def B;" {
			found = true
		}
	}
	if !found {
		t.Errorf("defTexts = %v, want one entry for %q", defTexts, "part def B;")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	res := Parse("constraint { 1 + 2 * 3 > 0; }")
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	var binaryOps []string
	root := cst.NewRoot(res.Tree)
	cst.Walk(root, cst.WalkFunc(func(n *cst.SyntaxNode) bool {
		if n.Kind() == cst.ExprBinary {
			binaryOps = append(binaryOps, n.Text())
		}
		return true
	}))
	// The outermost binary expression should be the ">" comparison, since
	// "*" binds tighter than "+" which binds tighter than ">".
	if len(binaryOps) == 0 || binaryOps[0] != "1 + 2 * 3 > 0" {
		t.Errorf("binaryOps = %v, want first entry spanning the whole comparison", binaryOps)
	}
}
