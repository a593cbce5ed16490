package parser

import (
	"github.com/sysml-tools/sysml-engine/syntax/cst"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

var visibilityKw = setOf(token.KW_PUBLIC, token.KW_PRIVATE, token.KW_PROTECTED)

// modifierKw covers every usage/definition prefix keyword that does not
// by itself select a SymbolKind: structural modifiers (abstract,
// derived, ...), parameter directions, multiplicity modifiers, and
// state/action body role markers (entry/exit/do). hir.Extract reads
// these back the same way it reads the kind keyword: by walking the
// node's leading token sequence (spec.md §4.3).
var modifierKw = setOf(
	token.KW_ABSTRACT, token.KW_VARIATION, token.KW_DERIVED, token.KW_READONLY,
	token.KW_REF, token.KW_ENTRY, token.KW_EXIT, token.KW_DO,
	token.KW_IN, token.KW_OUT, token.KW_INOUT,
	token.KW_NONUNIQUE, token.KW_ORDERED, token.KW_INDIVIDUAL, token.KW_ALL,
)

// kindStartKw is every keyword that can open a Definition or Usage node
// (spec.md §3's SymbolKind tables, folded onto one generic node shape
// per the design note in cst/kind.go). perform/exhibit/include/satisfy/
// assert/verify are included here rather than modeled as separate
// relationship clauses: spec.md §4.3 treats `perform action :> X;` as a
// usage headed by "perform", so the keyword sequence read back by
// hir.Extract is enough to recover the PerformUsage (etc.) SymbolKind.
var kindStartKw = setOf(
	token.KW_PART, token.KW_ATTRIBUTE, token.KW_ITEM, token.KW_PORT,
	token.KW_ACTION, token.KW_STATE, token.KW_CALC, token.KW_CONSTRAINT,
	token.KW_REQUIREMENT, token.KW_CONCERN, token.KW_VIEW, token.KW_VIEWPOINT,
	token.KW_RENDERING, token.KW_METADATA, token.KW_ENUM, token.KW_CONNECTION,
	token.KW_INTERFACE, token.KW_ALLOCATION, token.KW_CLASS, token.KW_DATATYPE,
	token.KW_STRUCT, token.KW_ASSOCIATION, token.KW_BEHAVIOR, token.KW_FUNCTION,
	token.KW_PREDICATE, token.KW_INTERACTION, token.KW_METACLASS, token.KW_STEP,
	token.KW_PERFORM, token.KW_EXHIBIT, token.KW_INCLUDE, token.KW_SATISFY,
	token.KW_ASSERT, token.KW_VERIFY,
	token.KW_USE, token.KW_ANALYSIS, token.KW_VERIFICATION,
)

func (p *parser) isMemberStart() bool {
	k := p.tok()
	if visibilityKw[k] || modifierKw[k] || kindStartKw[k] {
		return true
	}
	switch k {
	case token.IDENT, token.UNRESTRICTED_IDENT, token.AT:
		return true
	}
	return false
}

func isExprStart(k token.Kind) bool {
	switch k {
	case token.INT_LIT, token.FLOAT_LIT, token.STRING_LIT, token.TRUE_LIT,
		token.FALSE_LIT, token.NULL_LIT, token.INFINITY_LIT, token.LPAREN,
		token.MINUS, token.BANG:
		return true
	}
	return false
}

// parseSourceFile parses the whole file as a sequence of namespace
// members directly into the root frame NewBuilder already opened;
// Parse's call to Builder.Finish wraps them in the SourceFile node.
func (p *parser) parseSourceFile() {
	for !p.at(token.EOF) {
		before := p.pos
		p.parseMember()
		if p.pos == before {
			p.bump() // force progress; parseMember could not consume anything
		}
	}
}

func (p *parser) parseMember() {
	switch p.tok() {
	case token.KW_PACKAGE, token.KW_STANDARD, token.KW_LIBRARY:
		p.parsePackageDecl()
		return
	case token.KW_IMPORT:
		p.parseImportDecl()
		return
	case token.KW_ALIAS:
		p.parseAliasDecl()
		return
	case token.KW_FILTER:
		p.parseFilterDecl()
		return
	case token.KW_DOC, token.KW_COMMENT:
		p.parseCommentDecl()
		return
	case token.KW_CONNECT, token.KW_BIND:
		p.parseConnectorDecl()
		return
	case token.KW_FLOW:
		p.parseFlowDecl()
		return
	case token.KW_TRANSITION, token.KW_SUCCESSION, token.KW_FIRST:
		p.parseTransitionOrSuccession()
		return
	case token.RBRACE, token.EOF:
		return
	}
	if isExprStart(p.tok()) {
		p.parseExprStatement()
		return
	}
	if p.isMemberStart() {
		p.parseDefinitionOrUsage()
		return
	}
	p.errorExpected("a namespace member", CodeStructural)
	p.bld.StartNode()
	p.bump()
	p.bld.FinishNode(cst.ErrorNode)
	p.sync(recNamespaceBody)
}

func (p *parser) parsePackageDecl() {
	p.bld.StartNode()
	isLibrary := false
	if p.at(token.KW_STANDARD) {
		p.bump()
		isLibrary = true
	}
	if p.at(token.KW_LIBRARY) {
		p.bump()
		isLibrary = true
	}
	p.expect(token.KW_PACKAGE, "'package'", CodeDeclaration)
	p.parseNameNode()
	kind := cst.PackageDecl
	if isLibrary {
		kind = cst.LibraryPackageDecl
	}
	if p.at(token.LBRACE) {
		p.parseBraceMemberList()
	} else {
		p.expect(token.SEMI, "';'", CodeStructural)
	}
	p.bld.FinishNode(kind)
}

// parseBraceMemberList consumes a `{ members... }` block, used by
// package/namespace decls whose body has no dedicated NodeKind wrapper
// of its own (the PackageDecl/LibraryPackageDecl/NamespaceDecl node
// itself is the wrapper).
func (p *parser) parseBraceMemberList() {
	p.bump() // {
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		before := p.pos
		p.parseMember()
		if p.pos == before {
			p.bump()
		}
	}
	if !p.expect(token.RBRACE, "'}'", CodeStructural) {
		p.errf(CodeStructural, "unclosed '{'")
	}
}

func (p *parser) parseImportDecl() {
	p.bld.StartNode()
	p.bump() // import
	if visibilityKw[p.tok()] {
		p.bump()
	}
	p.parseImportPath()
	if p.at(token.LBRACE) {
		p.bump()
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			if p.at(token.KW_FILTER) {
				p.parseFilterDecl()
				continue
			}
			before := p.pos
			p.errorExpected("'filter' or '}'", CodeImport)
			p.sync(recImport)
			if p.pos == before {
				p.bump()
			}
		}
		p.expect(token.RBRACE, "'}'", CodeStructural)
	} else {
		p.expect(token.SEMI, "';'", CodeImport)
	}
	p.bld.FinishNode(cst.ImportDecl)
}

func (p *parser) parseImportPath() {
	if !p.parseNameNode() {
		p.errorExpected("an import path", CodeImport)
		p.sync(recImport)
		return
	}
	for p.at(token.COLONCOLON) {
		p.bump()
		if p.at(token.STAR) || p.at(token.STARSTAR) {
			p.bump()
			break
		}
		if !p.parseNameNode() {
			p.errorExpected("a name or '*'", CodeImport)
			p.sync(recImport)
			return
		}
	}
}

func (p *parser) parseAliasDecl() {
	p.bld.StartNode()
	p.bump() // alias
	p.parseNameNode()
	p.expect(token.KW_FOR, "'for'", CodeDeclaration)
	p.parseReferencePath()
	p.expect(token.SEMI, "';'", CodeStructural)
	p.bld.FinishNode(cst.AliasDecl)
}

func (p *parser) parseFilterDecl() {
	p.bld.StartNode()
	p.bump() // filter
	if p.at(token.AT) {
		p.parseMetadataAnnotation()
	} else {
		p.errorExpected("a metadata filter expression", CodeDeclaration)
		p.sync(recExpression)
	}
	p.expect(token.SEMI, "';'", CodeStructural)
	p.bld.FinishNode(cst.FilterDecl)
}

// parseCommentDecl covers `doc "text";` and `comment "text" about a, b;`.
// The original KerML grammar allows a block-comment body here; this
// implementation requires a string literal instead, since a block
// comment is otherwise always trivia — see DESIGN.md's Open Question
// decision on doc/comment bodies.
func (p *parser) parseCommentDecl() {
	p.bld.StartNode()
	p.bump() // doc/comment
	if p.at(token.IDENT) || p.at(token.UNRESTRICTED_IDENT) {
		p.parseNameNode()
	}
	if p.at(token.KW_ABOUT) {
		p.bump()
		p.parseReferencePath()
		for p.at(token.COMMA) {
			p.bump()
			p.parseReferencePath()
		}
	}
	if p.at(token.KW_LANGUAGE) {
		p.bump()
		if p.at(token.STRING_LIT) {
			p.bump()
		}
	}
	if p.at(token.STRING_LIT) {
		p.bump()
	} else {
		p.errorExpected("a comment body string", CodeDeclaration)
		p.sync(recExpression)
	}
	p.expect(token.SEMI, "';'", CodeStructural)
	p.bld.FinishNode(cst.CommentDecl)
}

func (p *parser) parseConnectorDecl() {
	p.bld.StartNode()
	isBind := p.at(token.KW_BIND)
	p.bump() // connect/bind
	p.parseReferencePath()
	if isBind {
		p.expect(token.EQUAL, "'='", CodeDeclaration)
	} else {
		p.expect(token.KW_TO, "'to'", CodeDeclaration)
	}
	p.parseReferencePath()
	if p.at(token.LBRACE) {
		p.parseBraceMemberList()
	} else {
		p.expect(token.SEMI, "';'", CodeStructural)
	}
	p.bld.FinishNode(cst.ConnectorDecl)
}

func (p *parser) parseFlowDecl() {
	p.bld.StartNode()
	p.bump() // flow
	p.parseReferencePath()
	if p.at(token.KW_VIA) {
		p.bump()
		p.parseReferencePath()
	}
	p.expect(token.KW_TO, "'to'", CodeDeclaration)
	p.parseReferencePath()
	if p.at(token.LBRACE) {
		p.parseBraceMemberList()
	} else {
		p.expect(token.SEMI, "';'", CodeStructural)
	}
	p.bld.FinishNode(cst.FlowDecl)
}

// parseTransitionOrSuccession covers `transition first A then B [accept
// ... via ... do ...];` and the bare succession shorthand `first A then
// B;` / `succession first A then B;`.
func (p *parser) parseTransitionOrSuccession() {
	p.bld.StartNode()
	kind := cst.SuccessionDecl
	switch p.tok() {
	case token.KW_TRANSITION:
		kind = cst.TransitionDecl
		p.bump()
	case token.KW_SUCCESSION:
		p.bump()
	}
	p.expect(token.KW_FIRST, "'first'", CodeDeclaration)
	p.parseReferencePath()
	p.expect(token.KW_THEN, "'then'", CodeDeclaration)
	p.parseReferencePath()
	for kind == cst.TransitionDecl &&
		(p.at(token.KW_ACCEPT) || p.at(token.KW_VIA) || p.at(token.KW_DO)) {
		p.bump()
		p.parseReferencePath()
	}
	p.expect(token.SEMI, "';'", CodeStructural)
	p.bld.FinishNode(kind)
}

// parseDefinitionOrUsage is the one production behind every Definition
// and Usage node (cst/kind.go's design note): visibility, modifiers, an
// optional kind keyword (possibly two words: "use case", "analysis
// case", "verification case"), an optional "def", an optional name,
// multiplicity, relationship/type clauses, metadata annotations, and a
// body or semicolon.
func (p *parser) parseDefinitionOrUsage() {
	p.bld.StartNode()

	for visibilityKw[p.tok()] {
		p.bump()
	}
	for modifierKw[p.tok()] {
		p.bump()
	}
	for p.at(token.AT) {
		p.parseMetadataAnnotation()
	}

	var firstKind token.Kind
	if kindStartKw[p.tok()] {
		firstKind = p.tok()
		p.bump()
		switch firstKind {
		case token.KW_USE, token.KW_ANALYSIS, token.KW_VERIFICATION:
			if p.at(token.KW_CASE) {
				p.bump()
			}
		case token.KW_PERFORM, token.KW_EXHIBIT, token.KW_INCLUDE,
			token.KW_SATISFY, token.KW_ASSERT, token.KW_VERIFY:
			// These relationship-usage keywords are themselves followed
			// by the usage's real structural kind, e.g. "perform action
			// :> TakePicture;" (spec.md §4.3's anonymous-naming example).
			if kindStartKw[p.tok()] {
				firstKind = p.tok()
				p.bump()
			}
		}
	}

	isDef := false
	if p.at(token.KW_DEF) {
		isDef = true
		p.bump()
	}

	p.parseNameNode()

	// Multiplicity, metadata annotations, and relationship/type clauses
	// may appear in any relative order and any number of times (e.g.
	// "part wheels : Wheel [4];" puts the multiplicity after the type
	// annotation, while "part wheels [4] :> Wheel;" puts it before a
	// specialization), so they share one dispatch loop rather than each
	// being tried once in a fixed position.
headLoop:
	for {
		switch {
		case p.at(token.LBRACKET):
			p.parseMultiplicity()
		case p.at(token.AT):
			p.parseMetadataAnnotation()
		case p.parseRelationshipOrTypeClause():
		default:
			break headLoop
		}
	}

	switch {
	case p.at(token.LBRACE):
		p.parseBody(firstKind)
	case p.at(token.SEMI):
		p.bump()
	default:
		p.errorExpected("';' or '{'", CodeDeclaration)
		p.sync(recNamespaceBody)
		if p.at(token.SEMI) {
			p.bump()
		}
	}

	kind := cst.Usage
	if isDef {
		kind = cst.Definition
	}
	p.bld.FinishNode(kind)
}

func (p *parser) parseBody(firstKind token.Kind) {
	wrap, wrapped := bodyWrapperFor(firstKind)
	if wrapped {
		p.bld.StartNode()
	}
	p.parseBraceMemberList()
	if wrapped {
		p.bld.FinishNode(wrap)
	}
}

func bodyWrapperFor(k token.Kind) (cst.NodeKind, bool) {
	switch k {
	case token.KW_STATE:
		return cst.StateBody, true
	case token.KW_ACTION:
		return cst.ActionBody, true
	case token.KW_REQUIREMENT:
		return cst.RequirementBody, true
	case token.KW_VIEW:
		return cst.ViewBody, true
	}
	return 0, false
}

// parseRelationshipOrTypeClause consumes one relationship or type clause
// if the lookahead starts one, and reports whether it did (so callers
// can loop — spec.md §4.3 allows several clauses in sequence, e.g. a
// type annotation followed by a specialization).
func (p *parser) parseRelationshipOrTypeClause() bool {
	switch p.tok() {
	case token.COLON:
		p.bld.StartNode()
		p.bump()
		p.parseReferencePath()
		p.bld.FinishNode(cst.TypeAnnotation)
		return true
	case token.KW_TYPED:
		p.bld.StartNode()
		p.bump()
		p.expect(token.KW_BY, "'by'", CodeDeclaration)
		p.parseReferencePath()
		p.bld.FinishNode(cst.TypeAnnotation)
		return true
	case token.COLONGT, token.KW_SPECIALIZES:
		return p.parseClauseList(cst.SpecializesClause)
	case token.COLONGTGT, token.KW_REDEFINES:
		return p.parseClauseList(cst.RedefinesClause)
	case token.KW_SUBSETS:
		return p.parseClauseList(cst.SubsetsClause)
	case token.COLONCOLONGT, token.KW_REFERENCES:
		return p.parseClauseList(cst.ReferencesClause)
	case token.TILDE, token.KW_CONJUGATES:
		return p.parseClauseList(cst.ConjugatesClause)
	case token.FATARROW, token.KW_CROSSES:
		return p.parseClauseList(cst.CrossesClause)
	case token.KW_DISJOINING:
		return p.parseClauseList(cst.DisjoiningClause)
	}
	return false
}

func (p *parser) parseClauseList(kind cst.NodeKind) bool {
	p.bld.StartNode()
	p.bump() // operator or keyword
	p.parseReferencePath()
	for p.at(token.COMMA) {
		p.bump()
		p.parseReferencePath()
	}
	p.bld.FinishNode(kind)
	return true
}

func (p *parser) parseMetadataAnnotation() {
	p.bld.StartNode()
	p.bump() // @
	p.parseReferencePath()
	p.bld.FinishNode(cst.MetadataAnnotation)
}

func (p *parser) parseMultiplicity() {
	p.bld.StartNode()
	p.bump() // [
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		switch p.tok() {
		case token.INT_LIT, token.STAR, token.DOTDOT, token.KW_ORDERED, token.KW_NONUNIQUE:
			p.bump()
			continue
		}
		p.errorExpected("a multiplicity bound", CodeDeclaration)
		p.sync(recMultiplicity)
		break
	}
	p.expect(token.RBRACKET, "']'", CodeDeclaration)
	p.bld.FinishNode(cst.Multiplicity)
}

// parseNameNode consumes a regular or unrestricted identifier as a
// NameNode and reports whether one was present.
func (p *parser) parseNameNode() bool {
	if !p.at(token.IDENT) && !p.at(token.UNRESTRICTED_IDENT) {
		return false
	}
	p.bld.StartNode()
	p.bump()
	p.bld.FinishNode(cst.NameNode)
	return true
}

// parseReferencePath reads a run of names separated by "::" and/or "."
// into a single reference node: QualifiedName if every separator is
// "::", FeatureChain if any separator is ".", or a bare NameNode for a
// single segment (spec.md §4.3's TypeRef.chain / qualified_name).
func (p *parser) parseReferencePath() {
	cp := p.bld.Checkpoint()
	if !p.parseNameNode() {
		p.errorExpected("a name", CodeExpression)
		p.sync(recExpression)
		return
	}
	segments := 1
	sawDot := false
	for p.at(token.COLONCOLON) || p.at(token.DOT) {
		if p.at(token.DOT) {
			sawDot = true
		}
		p.bump()
		if !p.parseNameNode() {
			p.errorExpected("a name", CodeExpression)
			p.sync(recExpression)
			break
		}
		segments++
	}
	if segments > 1 {
		p.bld.StartNodeAt(cp)
		kind := cst.QualifiedName
		if sawDot {
			kind = cst.FeatureChain
		}
		p.bld.FinishNode(kind)
	}
}
