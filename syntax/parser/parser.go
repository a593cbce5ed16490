// Package parser implements the recursive-descent parser that turns a
// SysML v2 / KerML token stream into a lossless cst.GreenNode tree plus
// an ordered list of SyntaxErrors (spec.md §4.2).
//
// The driver shape — a single-token lookahead, next()/expect()/
// errorExpected() helpers, and a progress-counter-capped sync loop for
// error recovery — is grounded on the teacher's cue/parser.parser
// (_examples/cue-lang-cue/cue/parser/parser.go). Trivia attachment uses
// a simpler, equally lossless mechanism than the teacher's commentState
// machinery: pending trivia tokens are drained into whatever builder
// frame is innermost at the moment the next structural token is
// consumed, and cst.Builder.FinishNode then moves trivia at the start of
// a finished node out to the enclosing level, so a node's text begins at
// its first structural token; trailing trivia likewise stays at the
// enclosing level once a node is closed (see bump, below).
package parser

import (
	"github.com/sysml-tools/sysml-engine/syntax/cst"
	"github.com/sysml-tools/sysml-engine/syntax/lexer"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// parser holds all parsing state for a single file. It is used once and
// discarded; Parse is pure from text to (tree, errors).
type parser struct {
	toks []lexer.Token
	pos  int // index into toks of the current lookahead (non-trivia) token

	bld *cst.Builder

	errors []SyntaxError

	pendingTrivia []lexer.Token

	syncPos int // index into toks at last synchronization
	syncCnt int
}

// Result is the output of Parse: the green tree rooted at a SourceFile
// node, and every SyntaxError recorded during recovery.
type Result struct {
	Tree   *cst.GreenNode
	Errors []SyntaxError
}

// Parse lexes and parses src in full, never failing: malformed input
// yields ERROR nodes and SyntaxErrors rather than aborting.
func Parse(src string) Result {
	p := &parser{
		toks: lexer.All(src),
		bld:  cst.NewBuilder(),
	}
	p.seekToken()
	p.parseSourceFile()
	p.flushTrivia()
	tree := p.bld.Finish()
	return Result{Tree: tree, Errors: p.errors}
}

// seekToken advances p.pos past any leading trivia tokens, buffering
// them in pendingTrivia, until it lands on a structural token (or EOF).
func (p *parser) seekToken() {
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		if !t.Kind.IsTrivia() {
			return
		}
		p.pendingTrivia = append(p.pendingTrivia, t)
		p.pos++
	}
}

// flushTrivia emits any trivia buffered by seekToken that trails the
// last structural token in the file, since bump only drains
// pendingTrivia when a following structural token is consumed and
// nothing follows the last one. Without this, trailing whitespace or
// comments at end of input (or just before an unclosed delimiter) would
// be silently dropped from the tree, breaking the lossless round trip.
func (p *parser) flushTrivia() {
	for _, t := range p.pendingTrivia {
		p.bld.Token(t.Kind, t.Text)
	}
	p.pendingTrivia = nil
}

func (p *parser) cur() lexer.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return lexer.Token{Kind: token.EOF}
}

func (p *parser) tok() token.Kind { return p.cur().Kind }

// bump drains pendingTrivia into the currently innermost builder frame,
// then emits the current structural token, then advances the lookahead
// past any following trivia.
func (p *parser) bump() lexer.Token {
	for _, t := range p.pendingTrivia {
		p.bld.Token(t.Kind, t.Text)
	}
	p.pendingTrivia = nil

	t := p.cur()
	p.bld.Token(t.Kind, t.Text)
	if p.pos < len(p.toks) {
		p.pos++
	}
	p.seekToken()
	return t
}

// at reports whether the current lookahead token has kind k.
func (p *parser) at(k token.Kind) bool { return p.tok() == k }

// atText reports whether the current lookahead token's source text is
// exactly text, whatever its kind.
func (p *parser) atText(text string) bool { return p.cur().Text == text }

func (p *parser) errf(code Code, msg string) {
	t := p.cur()
	p.errors = append(p.errors, SyntaxError{Range: t.Range, Code: code, Message: msg})
}

func (p *parser) errorExpected(obj string, code Code) {
	t := p.cur()
	if t.Kind == token.EOF {
		p.errf(code, "expected "+obj+", found end of file")
		return
	}
	p.errf(code, "expected "+obj+", found '"+t.Text+"'")
}

// expect consumes the current token if it has kind k, otherwise records
// a SyntaxError and opens a single-token ERROR node to absorb the
// unexpected token (spec.md §4.2: "opens an ERROR node").
func (p *parser) expect(k token.Kind, what string, code Code) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	p.errorExpected(what, code)
	if !p.at(token.EOF) {
		p.bld.StartNode()
		p.bump()
		p.bld.FinishNode(cst.ErrorNode)
	}
	return false
}

// sync advances past tokens until one in set is reached (or EOF),
// tracking nesting depth so a malformed inner construct cannot escape
// its containing brace/bracket/paren (spec.md §4.2). The progress
// counter bounds pathological inputs the way the teacher's syncExpr
// does, guaranteeing termination.
func (p *parser) sync(set map[token.Kind]bool) {
	depth := 0
	for {
		switch p.tok() {
		case token.EOF:
			return
		case token.LBRACE, token.LPAREN, token.LBRACKET:
			depth++
		case token.RBRACE, token.RPAREN, token.RBRACKET:
			if depth == 0 && set[p.tok()] {
				return
			}
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && set[p.tok()] {
				if p.pos == p.syncPos {
					if p.syncCnt > 10 {
						return
					}
					p.syncCnt++
				} else {
					p.syncPos = p.pos
					p.syncCnt = 0
				}
				return
			}
		}
		p.bump()
	}
}

// Recovery sets (spec.md §4.2).
var recNamespaceBody = setOf(
	token.KW_PART, token.KW_ACTION, token.KW_STATE, token.KW_REQUIREMENT,
	token.KW_PACKAGE, token.KW_IMPORT, token.KW_PUBLIC, token.KW_PRIVATE,
	token.KW_PROTECTED, token.RBRACE,
	// Not in spec.md §4.2's illustrative set, but added so recovery
	// resyncs at the end of the current (malformed) statement rather
	// than consuming into the next one.
	token.SEMI,
)

var recExpression = setOf(token.SEMI, token.RPAREN, token.RBRACKET, token.RBRACE, token.COMMA)

var recImport = setOf(token.SEMI, token.RBRACE)

var recMultiplicity = setOf(token.RBRACKET, token.SEMI, token.RBRACE)

var recTypeAnnotation = setOf(token.SEMI, token.LBRACE, token.RBRACE, token.COMMA)

func setOf(ks ...token.Kind) map[token.Kind]bool {
	m := make(map[token.Kind]bool, len(ks))
	for _, k := range ks {
		m[k] = true
	}
	return m
}
