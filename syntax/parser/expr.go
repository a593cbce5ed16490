package parser

import (
	"github.com/sysml-tools/sysml-engine/syntax/cst"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// binPrec gives each binary operator a precedence level for the
// precedence-climbing parser below, grounded on the shape of the
// teacher's cue/parser.parser.parseBinaryExpr/tokPrec (a token-to-int
// lookup plus a recursive climb), adapted to SysML/KerML's smaller
// constraint-expression operator set (spec.md §3's ExprBinary).
var binPrec = map[token.Kind]int{
	token.PIPE: 1,
	token.AMP:  2,
	token.EQEQ: 3, token.NEQ: 3, token.LT: 3, token.GT: 3, token.LE: 3, token.GE: 3,
	token.PLUS: 4, token.MINUS: 4,
	token.STAR: 5, token.SLASH: 5,
}

// parseExprStatement parses a bare expression used as a constraint/calc
// body member (e.g. `1 + 2 > 0;` inside a `constraint { ... }` body).
// parseMember only routes here when isExprStart accepts the first token;
// a statement that starts with an identifier, such as `x > 0;`, is
// parsed as a usage instead.
func (p *parser) parseExprStatement() {
	p.parseExpr()
	if !p.expect(token.SEMI, "';'", CodeExpression) {
		p.sync(recExpression)
		if p.at(token.SEMI) {
			p.bump()
		}
	}
}

func (p *parser) parseExpr() { p.parseBinaryExpr(1) }

func (p *parser) parseBinaryExpr(minPrec int) {
	cp := p.bld.Checkpoint()
	p.parseUnaryExpr()
	for {
		prec, ok := binPrec[p.tok()]
		if !ok || prec < minPrec {
			return
		}
		p.bld.StartNodeAt(cp)
		p.bump() // operator
		p.parseBinaryExpr(prec + 1)
		p.bld.FinishNode(cst.ExprBinary)
	}
}

func (p *parser) parseUnaryExpr() {
	if p.at(token.MINUS) || p.at(token.BANG) {
		p.bld.StartNode()
		p.bump()
		p.parseUnaryExpr()
		p.bld.FinishNode(cst.ExprUnary)
		return
	}
	p.parsePrimaryExpr()
}

func (p *parser) parsePrimaryExpr() {
	switch {
	case p.tok().IsLiteral():
		p.bld.StartNode()
		p.bump()
		p.bld.FinishNode(cst.ExprLiteral)
	case p.at(token.LPAREN):
		p.bld.StartNode()
		p.bump()
		p.parseExpr()
		p.expect(token.RPAREN, "')'", CodeExpression)
		p.bld.FinishNode(cst.ExprParen)
	case p.at(token.IDENT) || p.at(token.UNRESTRICTED_IDENT):
		cp := p.bld.Checkpoint()
		p.parseReferencePath()
		if p.at(token.LPAREN) {
			p.bld.StartNodeAt(cp)
			p.parseArgList()
			p.bld.FinishNode(cst.ExprInvocation)
		}
	default:
		p.errorExpected("an expression", CodeExpression)
		p.sync(recExpression)
	}
}

func (p *parser) parseArgList() {
	p.bump() // (
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		p.parseExpr()
		if p.at(token.COMMA) {
			p.bump()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "')'", CodeExpression)
}
