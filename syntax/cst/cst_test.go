package cst

import (
	"testing"

	"github.com/sysml-tools/sysml-engine/syntax/token"
)

func TestGreenTextRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.StartNode()
	b.Token(token.KW_PACKAGE, "package")
	b.Token(token.WHITESPACE, " ")
	b.Token(token.IDENT, "Vehicles")
	root := b.FinishNode(PackageDecl)

	got := Text(root)
	want := "package Vehicles"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if root.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", root.Len(), len(want))
	}
}

func TestStartNodeAtWrapsCheckpointedElements(t *testing.T) {
	b := NewBuilder()
	b.StartNode()
	b.Token(token.KW_PRIVATE, "private")
	b.Token(token.WHITESPACE, " ")
	cp := b.Checkpoint()
	b.Token(token.KW_PART, "part")
	b.Token(token.WHITESPACE, " ")
	b.Token(token.IDENT, "Engine")
	b.StartNodeAt(cp)
	inner := b.FinishNode(Definition)
	outer := b.FinishNode(NamespaceDecl)

	if inner.Kind != Definition {
		t.Fatalf("inner.Kind = %v, want Definition", inner.Kind)
	}
	if got, want := Text(inner), "part Engine"; got != want {
		t.Errorf("inner text = %q, want %q", got, want)
	}
	if got, want := Text(outer), "private part Engine"; got != want {
		t.Errorf("outer text = %q, want %q", got, want)
	}
}

func TestSyntaxNodeOffsetsAndParents(t *testing.T) {
	b := NewBuilder()
	b.StartNode()
	b.Token(token.KW_PART, "part")
	b.Token(token.WHITESPACE, " ")
	b.Token(token.IDENT, "Engine")
	inner := b.FinishNode(Definition)
	b.Token(token.SEMI, ";")
	wrapper := NewGreenNode(SourceFile, []GreenElement{inner, &GreenToken{Kind: token.SEMI, Text: ";"}})

	root := NewRoot(wrapper)
	children := root.NodeChildren()
	if len(children) != 1 {
		t.Fatalf("len(NodeChildren()) = %d, want 1", len(children))
	}
	def := children[0]
	if def.Range().Start != 0 || def.Range().End != len("part Engine") {
		t.Errorf("def.Range() = %v", def.Range())
	}
	if def.Parent() != root {
		t.Errorf("def.Parent() != root")
	}
	kind, ok := def.FirstToken()
	if !ok || kind != token.KW_PART {
		t.Errorf("FirstToken() = %v, %v; want KW_PART, true", kind, ok)
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	b := NewBuilder()
	b.StartNode()
	b.StartNode()
	b.Token(token.IDENT, "a")
	b.FinishNode(NameNode)
	b.Token(token.DOT, ".")
	b.StartNode()
	b.Token(token.IDENT, "b")
	b.FinishNode(NameNode)
	root := b.FinishNode(FeatureChain)

	var kinds []NodeKind
	Walk(NewRoot(root), WalkFunc(func(n *SyntaxNode) bool {
		kinds = append(kinds, n.Kind())
		return true
	}))

	want := []NodeKind{FeatureChain, NameNode, NameNode}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}
