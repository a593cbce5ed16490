package ast

import (
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/cst"
)

// Expr wraps a constraint/calc body expression (cst.ExprBinary,
// ExprUnary, ExprLiteral, ExprParen, or ExprInvocation). The parser
// (expr.go) has already shaped these into one precedence-correct tree;
// this wrapper exposes that shape structurally instead of re-parsing it.
type Expr struct{ syntax *cst.SyntaxNode }

func (Expr) memberNode()                {}
func (e Expr) Syntax() *cst.SyntaxNode  { return e.syntax }
func (e Expr) Range() span.Range        { return e.syntax.Range() }
func (e Expr) Text() string             { return e.syntax.Text() }

// Kind returns the underlying ExprBinary/ExprUnary/ExprLiteral/ExprParen/
// ExprInvocation NodeKind.
func (e Expr) Kind() cst.NodeKind { return e.syntax.Kind() }

// Operands returns e's node-level sub-expressions in order: two for
// ExprBinary, one for ExprUnary/ExprParen, e's arguments for
// ExprInvocation (see Target for the invoked reference path), none for
// ExprLiteral.
func (e Expr) Operands() []Expr {
	var out []Expr
	for _, c := range e.syntax.NodeChildren() {
		switch c.Kind() {
		case cst.ExprBinary, cst.ExprUnary, cst.ExprLiteral, cst.ExprParen, cst.ExprInvocation:
			out = append(out, Expr{c})
		}
	}
	return out
}

// Target returns the reference path being invoked, for an ExprInvocation.
func (e Expr) Target() (ReferencePath, bool) {
	if e.syntax.Kind() != cst.ExprInvocation {
		return ReferencePath{}, false
	}
	if paths := referencePaths(e.syntax); len(paths) > 0 {
		return paths[0], true
	}
	return ReferencePath{}, false
}
