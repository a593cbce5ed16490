package cst

import "github.com/sysml-tools/sysml-engine/syntax/token"

// GreenElement is either a *GreenNode or a *GreenToken. Both are
// immutable and safe to share across trees and across goroutines once
// built; the builder never mutates a node after Finish returns it.
type GreenElement interface {
	Len() int
	isGreen()
}

// GreenToken is a leaf: one lexed token, including trivia. Tokens never
// have children.
type GreenToken struct {
	Kind token.Kind
	Text string
}

func (t *GreenToken) Len() int  { return len(t.Text) }
func (*GreenToken) isGreen()    {}

// GreenNode is an immutable, shareable interior node: a NodeKind plus an
// ordered list of children (other GreenNodes or GreenTokens, including
// trivia tokens attached in source order). Concatenating the text of all
// leaves in order reproduces the input exactly (spec.md §3, "lossless").
//
// len is cached at construction time so Len() is O(1); it is the sum of
// every child's Len().
type GreenNode struct {
	Kind     NodeKind
	Children []GreenElement
	len      int
}

func (n *GreenNode) Len() int { return n.len }
func (*GreenNode) isGreen()   {}

// NewGreenNode builds a GreenNode from already-built children, computing
// its length. Used by Builder.Finish and directly in tests.
func NewGreenNode(kind NodeKind, children []GreenElement) *GreenNode {
	total := 0
	for _, c := range children {
		total += c.Len()
	}
	return &GreenNode{Kind: kind, Children: children, len: total}
}

// Text reproduces the exact source text spanned by el by concatenating
// every leaf token in order. Used by round-trip tests to check the
// lossless invariant (spec.md §8: "concatenating leaf text... equals
// file_text(F) exactly").
func Text(el GreenElement) string {
	var b []byte
	appendText(&b, el)
	return string(b)
}

func appendText(b *[]byte, el GreenElement) {
	switch e := el.(type) {
	case *GreenToken:
		*b = append(*b, e.Text...)
	case *GreenNode:
		for _, c := range e.Children {
			appendText(b, c)
		}
	}
}
