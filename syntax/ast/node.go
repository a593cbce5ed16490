// Package ast wraps the lossless cst tree in typed accessor structs, the
// way cue/ast wraps position-only nodes with named fields per grammar
// production. Unlike cue/ast, these wrappers hold no data of their own:
// each is a thin view over a *cst.SyntaxNode, and every accessor reads
// straight back out of the tree. hir.Extract is the only consumer of
// this package; it never walks cst.SyntaxNode directly, so the CST's
// generic Definition/Usage node shape (see cst/kind.go) stays an
// implementation detail behind Definition/Usage's typed accessors here.
package ast

import (
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/cst"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// Node is implemented by every typed wrapper in this package.
type Node interface {
	Syntax() *cst.SyntaxNode
	Range() span.Range
	Text() string
}

// Member is a namespace-level element: a package, import, alias, filter,
// doc/comment, definition, usage, connector, flow, transition/succession,
// a bare expression statement, or (after parser recovery) an
// Unrecognized node.
type Member interface {
	Node
	memberNode()
}

// File wraps a parsed SourceFile root.
type File struct{ syntax *cst.SyntaxNode }

// NewFile wraps the green tree produced by parser.Parse.
func NewFile(tree *cst.GreenNode) File { return File{cst.NewRoot(tree)} }

func (f File) Syntax() *cst.SyntaxNode { return f.syntax }
func (f File) Range() span.Range       { return f.syntax.Range() }
func (f File) Text() string            { return f.syntax.Text() }

// Members returns the file's top-level namespace members in source order.
func (f File) Members() []Member { return members(f.syntax) }

// Wrap dispatches a raw CST node to its typed wrapper by NodeKind. Nodes
// with no member-level meaning (NameNode, clause nodes, etc.) are never
// passed here; callers reach them only through a Member's own accessors.
func Wrap(n *cst.SyntaxNode) Member {
	switch n.Kind() {
	case cst.PackageDecl, cst.LibraryPackageDecl:
		return Package{n}
	case cst.ImportDecl:
		return Import{n}
	case cst.AliasDecl:
		return Alias{n}
	case cst.FilterDecl:
		return Filter{n}
	case cst.CommentDecl:
		return Comment{n}
	case cst.Definition:
		return Definition{DefinitionOrUsage{n}}
	case cst.Usage:
		return Usage{DefinitionOrUsage{n}}
	case cst.ConnectorDecl:
		return Connector{n}
	case cst.FlowDecl:
		return Flow{n}
	case cst.TransitionDecl, cst.SuccessionDecl:
		return Transition{n}
	case cst.ExprBinary, cst.ExprUnary, cst.ExprLiteral, cst.ExprParen, cst.ExprInvocation:
		return Expr{n}
	default:
		return Unrecognized{n}
	}
}

func isMemberKind(k cst.NodeKind) bool {
	switch k {
	case cst.PackageDecl, cst.LibraryPackageDecl, cst.ImportDecl, cst.AliasDecl,
		cst.FilterDecl, cst.CommentDecl, cst.Definition, cst.Usage,
		cst.ConnectorDecl, cst.FlowDecl, cst.TransitionDecl, cst.SuccessionDecl,
		cst.ExprBinary, cst.ExprUnary, cst.ExprLiteral, cst.ExprParen, cst.ExprInvocation,
		cst.ErrorNode:
		return true
	}
	return false
}

func members(n *cst.SyntaxNode) []Member {
	var out []Member
	for _, c := range n.NodeChildren() {
		if isMemberKind(c.Kind()) {
			out = append(out, Wrap(c))
		}
	}
	return out
}

// bodyMembers finds n's brace-delimited member list (either n's own
// braces, for the inline body shared by most definition/usage kinds, or
// a dedicated body-wrapper node's braces for the kinds parser.decl.go
// wraps — State/Action/Requirement/View) and returns its members. ok is
// false when n has no brace body at all (a `;`-terminated declaration).
func bodyMembers(n *cst.SyntaxNode) ([]Member, bool) {
	children := n.Children()
	braceIdx := -1
	for i, c := range children {
		if t, ok := c.(*cst.SyntaxToken); ok && t.Kind() == token.LBRACE {
			braceIdx = i
			break
		}
	}
	if braceIdx < 0 {
		return nil, false
	}
	var out []Member
	for _, c := range children[braceIdx+1:] {
		if sn, ok := c.(*cst.SyntaxNode); ok && isMemberKind(sn.Kind()) {
			out = append(out, Wrap(sn))
		}
	}
	return out, true
}

// directTokens returns n's direct, non-trivia token children in order,
// skipping any child that is itself a node (clause, name, metadata...).
// Used to read back the leading keyword run of a declaration without
// descending into its nested reference paths and clauses.
func directTokens(n *cst.SyntaxNode) []*cst.SyntaxToken {
	var out []*cst.SyntaxToken
	for _, c := range n.Children() {
		if t, ok := c.(*cst.SyntaxToken); ok && !t.Kind().IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

func containsToken(n *cst.SyntaxNode, k token.Kind) bool {
	for _, t := range directTokens(n) {
		if t.Kind() == k {
			return true
		}
	}
	return false
}

// nodeChildrenAfter returns the node children of n that occur strictly
// after the first direct token child of kind tk, in source order. ok is
// false if tk never appears directly under n. Used to split an
// optional-prefix-then-suffix shape (e.g. comment's optional name before
// "about", flow's optional "via" target) by position rather than kind.
func nodeChildrenAfter(n *cst.SyntaxNode, tk token.Kind) ([]*cst.SyntaxNode, bool) {
	children := n.Children()
	idx := -1
	for i, c := range children {
		if t, ok := c.(*cst.SyntaxToken); ok && t.Kind() == tk {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	var out []*cst.SyntaxNode
	for _, c := range children[idx+1:] {
		if sn, ok := c.(*cst.SyntaxNode); ok {
			out = append(out, sn)
		}
	}
	return out, true
}

// referencePaths returns n's direct reference-path children (NameNode,
// QualifiedName, FeatureChain) in order, skipping everything else.
func referencePaths(n *cst.SyntaxNode) []ReferencePath {
	var out []ReferencePath
	for _, c := range n.NodeChildren() {
		switch c.Kind() {
		case cst.NameNode, cst.QualifiedName, cst.FeatureChain:
			out = append(out, ReferencePath{c})
		}
	}
	return out
}

// Unrecognized wraps a parser-recovery cst.ErrorNode: one or more tokens
// the parser could not fit into any production. It still participates in
// Members()/Body() traversal so recovered input stays visible rather
// than silently vanishing from the tree walk.
type Unrecognized struct{ syntax *cst.SyntaxNode }

func (Unrecognized) memberNode()                 {}
func (u Unrecognized) Syntax() *cst.SyntaxNode    { return u.syntax }
func (u Unrecognized) Range() span.Range          { return u.syntax.Range() }
func (u Unrecognized) Text() string               { return u.syntax.Text() }
