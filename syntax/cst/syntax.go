package cst

import (
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// SyntaxNode is the "red" view over a GreenNode: it adds the one thing
// green nodes deliberately omit, position, by computing each child's
// absolute offset lazily as the tree is walked, plus a parent pointer so
// callers can navigate upward (spec.md §3: "carries absolute offset and
// parent pointer so children can compute their ranges and navigate
// upward"). SyntaxNodes are cheap, short-lived views; the GreenNode they
// wrap is the only thing that is ever shared or cached.
type SyntaxNode struct {
	green  *GreenNode
	parent *SyntaxNode
	offset int
	idx    int // this node's index within parent's children, -1 for root
}

// NewRoot wraps a root GreenNode (typically a SourceFile) in a SyntaxNode
// with no parent, positioned at offset 0.
func NewRoot(green *GreenNode) *SyntaxNode {
	return &SyntaxNode{green: green, idx: -1}
}

// Kind returns the wrapped GreenNode's NodeKind.
func (n *SyntaxNode) Kind() NodeKind { return n.green.Kind }

// Range returns the node's absolute byte range within the source file.
func (n *SyntaxNode) Range() span.Range {
	return span.Range{Start: n.offset, End: n.offset + n.green.Len()}
}

// Parent returns the enclosing SyntaxNode, or nil at the root.
func (n *SyntaxNode) Parent() *SyntaxNode { return n.parent }

// Green returns the underlying immutable GreenNode.
func (n *SyntaxNode) Green() *GreenNode { return n.green }

// Text returns the exact source text spanned by n.
func (n *SyntaxNode) Text() string { return Text(n.green) }

// Children returns the node's direct children as a mix of *SyntaxNode
// (for GreenNode children) and *SyntaxToken (for GreenToken children),
// each positioned relative to n.
func (n *SyntaxNode) Children() []SyntaxElement {
	out := make([]SyntaxElement, 0, len(n.green.Children))
	off := n.offset
	for i, c := range n.green.Children {
		switch g := c.(type) {
		case *GreenNode:
			out = append(out, &SyntaxNode{green: g, parent: n, offset: off, idx: i})
		case *GreenToken:
			out = append(out, &SyntaxToken{green: g, parent: n, offset: off, idx: i})
		}
		off += c.Len()
	}
	return out
}

// NodeChildren returns only the node children, skipping tokens — the
// common case for AST wrapper accessors in package ast.
func (n *SyntaxNode) NodeChildren() []*SyntaxNode {
	var out []*SyntaxNode
	for _, c := range n.Children() {
		if sn, ok := c.(*SyntaxNode); ok {
			out = append(out, sn)
		}
	}
	return out
}

// FirstToken returns the first non-trivia token kind at or under n, used
// by hir.Extract to read back the semantic kind of a Definition/Usage
// node from its leading keyword sequence.
func (n *SyntaxNode) FirstToken() (token.Kind, bool) {
	for _, c := range n.Children() {
		switch e := c.(type) {
		case *SyntaxToken:
			if e.green.Kind.IsTrivia() {
				continue
			}
			return e.green.Kind, true
		case *SyntaxNode:
			if k, ok := e.FirstToken(); ok {
				return k, true
			}
		}
	}
	return token.ERROR, false
}

// SyntaxToken is the red view over a leaf GreenToken.
type SyntaxToken struct {
	green  *GreenToken
	parent *SyntaxNode
	offset int
	idx    int
}

// Kind returns the wrapped GreenToken's token.Kind.
func (t *SyntaxToken) Kind() token.Kind { return t.green.Kind }

// Range returns the token's absolute byte range.
func (t *SyntaxToken) Range() span.Range {
	return span.Range{Start: t.offset, End: t.offset + t.green.Len()}
}

// Parent returns the enclosing SyntaxNode.
func (t *SyntaxToken) Parent() *SyntaxNode { return t.parent }

// Text returns the token's exact source text.
func (t *SyntaxToken) Text() string { return t.green.Text }

// SyntaxElement is implemented by *SyntaxNode and *SyntaxToken, mirroring
// GreenElement one layer up.
type SyntaxElement interface {
	Range() span.Range
}
