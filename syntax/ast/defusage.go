package ast

import (
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/cst"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// isVisibilityKeyword, isModifierKeyword, and isKindStartKeyword mirror
// parser.visibilityKw / modifierKw / kindStartKw (parser/decl.go): the
// parser consumes these to build the tree, this package reads the same
// keyword run back out of it. The two are kept independently rather than
// sharing one table because they classify opposite ends of the same
// grammar fact — what the parser is allowed to consume next vs. what a
// finished node's leading tokens mean — and parser's sets are deliberately
// unexported parser-internal state, not a public contract ast should
// import.
func isVisibilityKeyword(k token.Kind) bool {
	switch k {
	case token.KW_PUBLIC, token.KW_PRIVATE, token.KW_PROTECTED:
		return true
	}
	return false
}

func isModifierKeyword(k token.Kind) bool {
	switch k {
	case token.KW_ABSTRACT, token.KW_VARIATION, token.KW_DERIVED, token.KW_READONLY,
		token.KW_REF, token.KW_ENTRY, token.KW_EXIT, token.KW_DO,
		token.KW_IN, token.KW_OUT, token.KW_INOUT,
		token.KW_NONUNIQUE, token.KW_ORDERED, token.KW_INDIVIDUAL, token.KW_ALL:
		return true
	}
	return false
}

func isKindStartKeyword(k token.Kind) bool {
	switch k {
	case token.KW_PART, token.KW_ATTRIBUTE, token.KW_ITEM, token.KW_PORT,
		token.KW_ACTION, token.KW_STATE, token.KW_CALC, token.KW_CONSTRAINT,
		token.KW_REQUIREMENT, token.KW_CONCERN, token.KW_VIEW, token.KW_VIEWPOINT,
		token.KW_RENDERING, token.KW_METADATA, token.KW_ENUM, token.KW_CONNECTION,
		token.KW_INTERFACE, token.KW_ALLOCATION, token.KW_CLASS, token.KW_DATATYPE,
		token.KW_STRUCT, token.KW_ASSOCIATION, token.KW_BEHAVIOR, token.KW_FUNCTION,
		token.KW_PREDICATE, token.KW_INTERACTION, token.KW_METACLASS, token.KW_STEP,
		token.KW_PERFORM, token.KW_EXHIBIT, token.KW_INCLUDE, token.KW_SATISFY,
		token.KW_ASSERT, token.KW_VERIFY,
		token.KW_USE, token.KW_ANALYSIS, token.KW_VERIFICATION:
		return true
	}
	return false
}

// DefinitionOrUsage is the shared accessor set behind the Definition and
// Usage wrapper types, reflecting the CST's single generic node shape
// for both (cst/kind.go's design note): every definition/usage keyword
// in spec.md §3's SymbolKind tables parses to one of these two NodeKinds,
// and the specific kind is read back from the leading keyword run.
type DefinitionOrUsage struct{ syntax *cst.SyntaxNode }

func (d DefinitionOrUsage) Syntax() *cst.SyntaxNode { return d.syntax }
func (d DefinitionOrUsage) Range() span.Range       { return d.syntax.Range() }
func (d DefinitionOrUsage) Text() string            { return d.syntax.Text() }

// IsDef reports whether the declaration used "def" (a Definition) rather
// than being a bare Usage.
func (d DefinitionOrUsage) IsDef() bool { return d.syntax.Kind() == cst.Definition }

// Visibility returns the leading public/private/protected keyword, if any.
func (d DefinitionOrUsage) Visibility() (token.Kind, bool) {
	toks := directTokens(d.syntax)
	if len(toks) > 0 && isVisibilityKeyword(toks[0].Kind()) {
		return toks[0].Kind(), true
	}
	return 0, false
}

// Modifiers returns every structural modifier keyword present (abstract,
// derived, entry, out, nonunique, ...), in source order.
func (d DefinitionOrUsage) Modifiers() []token.Kind {
	var out []token.Kind
	for _, t := range directTokens(d.syntax) {
		if isModifierKeyword(t.Kind()) {
			out = append(out, t.Kind())
		}
	}
	return out
}

// HasModifier reports whether k is among Modifiers().
func (d DefinitionOrUsage) HasModifier(k token.Kind) bool {
	for _, m := range d.Modifiers() {
		if m == k {
			return true
		}
	}
	return false
}

// KindKeyword returns the keyword that determines this node's semantic
// SymbolKind. For a two-word form ("use case", "analysis case",
// "verification case") it is the first word, since that already
// disambiguates the kind; IsCase reports the "case" suffix separately.
// For a relationship-usage form ("perform action :> X;") it is the
// second word, the usage's real structural kind, per spec.md §4.3's
// example — the first word becomes part of the anonymous-name prefix
// hir.Extract synthesizes instead.
func (d DefinitionOrUsage) KindKeyword() (token.Kind, bool) {
	toks := directTokens(d.syntax)
	i := leadingPrefixLen(toks)
	if i >= len(toks) || !isKindStartKeyword(toks[i].Kind()) {
		return 0, false
	}
	kind := toks[i].Kind()
	i++
	if i < len(toks) && isKindStartKeyword(toks[i].Kind()) {
		kind = toks[i].Kind()
	}
	return kind, true
}

// KindKeywordRange returns the byte range of the token KindKeyword reads
// its answer from (the second word, for a relationship-usage form),
// used by hir.Extract to anchor the implicit-supertype relationship it
// synthesizes at the declaration's keyword per spec.md §4.3's "Kind
// mapping": "range equal to the declaration's keyword range".
func (d DefinitionOrUsage) KindKeywordRange() (span.Range, bool) {
	toks := directTokens(d.syntax)
	i := leadingPrefixLen(toks)
	if i >= len(toks) || !isKindStartKeyword(toks[i].Kind()) {
		return span.Range{}, false
	}
	tok := toks[i]
	i++
	if i < len(toks) && isKindStartKeyword(toks[i].Kind()) {
		tok = toks[i]
	}
	return tok.Range(), true
}

// IsCase reports whether the kind keyword was followed by "case" (the
// two-word "use case"/"analysis case"/"verification case" forms).
func (d DefinitionOrUsage) IsCase() bool {
	toks := directTokens(d.syntax)
	i := leadingPrefixLen(toks)
	if i >= len(toks) || !isKindStartKeyword(toks[i].Kind()) {
		return false
	}
	i++
	return i < len(toks) && toks[i].Kind() == token.KW_CASE
}

// RelationshipKeyword returns the leading relationship-usage keyword
// (perform/exhibit/include/satisfy/assert/verify) when KindKeyword's
// second word overrode the first, i.e. when this is a
// "perform action :> X;"-shaped usage rather than a plain "action :> X;".
func (d DefinitionOrUsage) RelationshipKeyword() (token.Kind, bool) {
	toks := directTokens(d.syntax)
	i := leadingPrefixLen(toks)
	if i >= len(toks) || !isKindStartKeyword(toks[i].Kind()) {
		return 0, false
	}
	first := toks[i].Kind()
	i++
	if i < len(toks) && isKindStartKeyword(toks[i].Kind()) {
		return first, true
	}
	return 0, false
}

// leadingPrefixLen returns how many leading visibility/modifier keywords
// (and nothing else) toks starts with.
func leadingPrefixLen(toks []*cst.SyntaxToken) int {
	i := 0
	for i < len(toks) && (isVisibilityKeyword(toks[i].Kind()) || isModifierKeyword(toks[i].Kind())) {
		i++
	}
	return i
}

// Name returns the declaration's own name, if it has one (usages and
// relationship-usage forms are frequently anonymous).
func (d DefinitionOrUsage) Name() (Name, bool) {
	for _, c := range d.syntax.NodeChildren() {
		if c.Kind() == cst.NameNode {
			return Name{c}, true
		}
	}
	return Name{}, false
}

// Multiplicities returns every "[ ... ]" bound attached to the
// declaration, in source order.
func (d DefinitionOrUsage) Multiplicities() []Multiplicity {
	var out []Multiplicity
	for _, c := range d.syntax.NodeChildren() {
		if c.Kind() == cst.Multiplicity {
			out = append(out, Multiplicity{c})
		}
	}
	return out
}

// Metadata returns every "@Type" annotation attached to the declaration
// (both the prefix position, before the kind keyword, and the suffix
// position, interleaved with relationship/type clauses), in source order.
func (d DefinitionOrUsage) Metadata() []MetadataAnnotation {
	var out []MetadataAnnotation
	for _, c := range d.syntax.NodeChildren() {
		if c.Kind() == cst.MetadataAnnotation {
			out = append(out, MetadataAnnotation{c})
		}
	}
	return out
}

// TypeAnnotation returns the declaration's ": T" / "typed by T" target,
// if present.
func (d DefinitionOrUsage) TypeAnnotation() (ReferencePath, bool) {
	for _, c := range d.syntax.NodeChildren() {
		if c.Kind() == cst.TypeAnnotation {
			if paths := referencePaths(c); len(paths) > 0 {
				return paths[0], true
			}
		}
	}
	return ReferencePath{}, false
}

func (d DefinitionOrUsage) clauseTargets(kind cst.NodeKind) []ReferencePath {
	var out []ReferencePath
	for _, c := range d.syntax.NodeChildren() {
		if c.Kind() == kind {
			out = append(out, referencePaths(c)...)
		}
	}
	return out
}

// Specializes returns every ":>"/"specializes" target.
func (d DefinitionOrUsage) Specializes() []ReferencePath {
	return d.clauseTargets(cst.SpecializesClause)
}

// Subsets returns every "subsets" target.
func (d DefinitionOrUsage) Subsets() []ReferencePath { return d.clauseTargets(cst.SubsetsClause) }

// Redefines returns every ":>>"/"redefines" target.
func (d DefinitionOrUsage) Redefines() []ReferencePath {
	return d.clauseTargets(cst.RedefinesClause)
}

// References returns every "::>"/"references" target.
func (d DefinitionOrUsage) References() []ReferencePath {
	return d.clauseTargets(cst.ReferencesClause)
}

// Conjugates returns every "~"/"conjugates" target.
func (d DefinitionOrUsage) Conjugates() []ReferencePath {
	return d.clauseTargets(cst.ConjugatesClause)
}

// Crosses returns every "=>"/"crosses" target.
func (d DefinitionOrUsage) Crosses() []ReferencePath { return d.clauseTargets(cst.CrossesClause) }

// Disjoins returns every "disjoining" target.
func (d DefinitionOrUsage) Disjoins() []ReferencePath {
	return d.clauseTargets(cst.DisjoiningClause)
}

// BodyKind reports which of the four dedicated body-wrapper NodeKinds
// (State/Action/Requirement/View) holds this declaration's body, if any;
// every other kind's body (if present) sits directly under the
// Definition/Usage node itself.
func (d DefinitionOrUsage) BodyKind() (cst.NodeKind, bool) {
	for _, c := range d.syntax.NodeChildren() {
		switch c.Kind() {
		case cst.StateBody, cst.ActionBody, cst.RequirementBody, cst.ViewBody:
			return c.Kind(), true
		}
	}
	return 0, false
}

// Body returns the declaration's brace-delimited members, if it has a
// body at all (a ";"-terminated declaration has none).
func (d DefinitionOrUsage) Body() ([]Member, bool) {
	for _, c := range d.syntax.NodeChildren() {
		switch c.Kind() {
		case cst.StateBody, cst.ActionBody, cst.RequirementBody, cst.ViewBody:
			return bodyMembers(c)
		}
	}
	return bodyMembers(d.syntax)
}

// Definition wraps a cst.Definition node ("part def Engine { ... }").
type Definition struct{ DefinitionOrUsage }

func (Definition) memberNode() {}

// Usage wraps a cst.Usage node ("part engine :> Engine;").
type Usage struct{ DefinitionOrUsage }

func (Usage) memberNode() {}
