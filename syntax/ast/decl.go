package ast

import (
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/cst"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// Package wraps a "package"/"library package"/"standard library package"
// declaration (cst.PackageDecl / LibraryPackageDecl).
type Package struct{ syntax *cst.SyntaxNode }

func (Package) memberNode()                  {}
func (p Package) Syntax() *cst.SyntaxNode    { return p.syntax }
func (p Package) Range() span.Range          { return p.syntax.Range() }
func (p Package) Text() string               { return p.syntax.Text() }
func (p Package) IsLibrary() bool            { return p.syntax.Kind() == cst.LibraryPackageDecl }
func (p Package) IsStandard() bool           { return containsToken(p.syntax, token.KW_STANDARD) }

func (p Package) Name() (Name, bool) {
	for _, c := range p.syntax.NodeChildren() {
		if c.Kind() == cst.NameNode {
			return Name{c}, true
		}
	}
	return Name{}, false
}

// Members returns the package's brace-delimited body, or nil for a
// ";"-terminated forward declaration.
func (p Package) Members() []Member {
	out, _ := bodyMembers(p.syntax)
	return out
}

// Import wraps an import declaration (cst.ImportDecl), covering plain
// paths, "::*" wildcards, "::**" recursive wildcards, and an inline
// "{ filter ...; }" body.
type Import struct{ syntax *cst.SyntaxNode }

func (Import) memberNode()               {}
func (i Import) Syntax() *cst.SyntaxNode { return i.syntax }
func (i Import) Range() span.Range       { return i.syntax.Range() }
func (i Import) Text() string            { return i.syntax.Text() }
func (i Import) IsPrivate() bool         { return containsToken(i.syntax, token.KW_PRIVATE) }
func (i Import) IsWildcard() bool {
	return containsToken(i.syntax, token.STAR) || containsToken(i.syntax, token.STARSTAR)
}
func (i Import) IsRecursive() bool { return containsToken(i.syntax, token.STARSTAR) }

// Segments returns the imported path's "::"/"."-joined name segments.
func (i Import) Segments() []string {
	var out []string
	for _, n := range i.NameSegments() {
		out = append(out, n.Text())
	}
	return out
}

// NameSegments is Segments with each segment's byte range preserved,
// used by hir.Extract to build a per-segment TypeRef chain for the
// imported path the way a feature-chain reference is built.
func (i Import) NameSegments() []Name {
	var out []Name
	for _, c := range i.syntax.NodeChildren() {
		if c.Kind() == cst.NameNode {
			out = append(out, Name{c})
		}
	}
	return out
}

// Filters returns the inline "filter @Meta;" clauses attached to a
// braced import body.
func (i Import) Filters() []Filter {
	var out []Filter
	for _, c := range i.syntax.NodeChildren() {
		if c.Kind() == cst.FilterDecl {
			out = append(out, Filter{c})
		}
	}
	return out
}

// Alias wraps an "alias V for Target;" declaration (cst.AliasDecl).
type Alias struct{ syntax *cst.SyntaxNode }

func (Alias) memberNode()               {}
func (a Alias) Syntax() *cst.SyntaxNode { return a.syntax }
func (a Alias) Range() span.Range       { return a.syntax.Range() }
func (a Alias) Text() string            { return a.syntax.Text() }

func (a Alias) Name() (Name, bool) {
	nodes := a.syntax.NodeChildren()
	if len(nodes) > 0 && nodes[0].Kind() == cst.NameNode {
		return Name{nodes[0]}, true
	}
	return Name{}, false
}

// Target returns the alias's "for" target, the second reference-path-
// shaped node child (the first is the alias's own Name).
func (a Alias) Target() (ReferencePath, bool) {
	skippedOwnName := false
	for _, c := range a.syntax.NodeChildren() {
		switch c.Kind() {
		case cst.NameNode:
			if !skippedOwnName {
				skippedOwnName = true
				continue
			}
			return ReferencePath{c}, true
		case cst.QualifiedName, cst.FeatureChain:
			return ReferencePath{c}, true
		}
	}
	return ReferencePath{}, false
}

// Filter wraps a "filter @Meta;" declaration (cst.FilterDecl).
type Filter struct{ syntax *cst.SyntaxNode }

func (Filter) memberNode()               {}
func (f Filter) Syntax() *cst.SyntaxNode { return f.syntax }
func (f Filter) Range() span.Range       { return f.syntax.Range() }
func (f Filter) Text() string            { return f.syntax.Text() }

func (f Filter) Metadata() (MetadataAnnotation, bool) {
	for _, c := range f.syntax.NodeChildren() {
		if c.Kind() == cst.MetadataAnnotation {
			return MetadataAnnotation{c}, true
		}
	}
	return MetadataAnnotation{}, false
}

// Comment wraps a "doc"/"comment" declaration (cst.CommentDecl). The
// body is always a string literal in this implementation; see DESIGN.md's
// Open Question decision on doc/comment bodies.
type Comment struct{ syntax *cst.SyntaxNode }

func (Comment) memberNode()               {}
func (c Comment) Syntax() *cst.SyntaxNode { return c.syntax }
func (c Comment) Range() span.Range       { return c.syntax.Range() }
func (c Comment) Text() string            { return c.syntax.Text() }

func (c Comment) IsDoc() bool {
	k, _ := c.syntax.FirstToken()
	return k == token.KW_DOC
}

func (c Comment) Name() (Name, bool) {
	nodes := c.syntax.NodeChildren()
	if len(nodes) > 0 && nodes[0].Kind() == cst.NameNode {
		return Name{nodes[0]}, true
	}
	return Name{}, false
}

// About returns the targets named in an "about a, b, c" clause.
func (c Comment) About() []ReferencePath {
	nodes, ok := nodeChildrenAfter(c.syntax, token.KW_ABOUT)
	if !ok {
		return nil
	}
	var out []ReferencePath
	for _, n := range nodes {
		switch n.Kind() {
		case cst.NameNode, cst.QualifiedName, cst.FeatureChain:
			out = append(out, ReferencePath{n})
		}
	}
	return out
}

// Language returns the "language "..."" tag, if present.
func (c Comment) Language() (string, bool) {
	toks := directTokens(c.syntax)
	for i, t := range toks {
		if t.Kind() == token.KW_LANGUAGE && i+1 < len(toks) && toks[i+1].Kind() == token.STRING_LIT {
			return toks[i+1].Text(), true
		}
	}
	return "", false
}

// Body returns the comment's string-literal body text, raw (quoted).
func (c Comment) Body() (string, bool) {
	var last string
	found := false
	for _, t := range directTokens(c.syntax) {
		if t.Kind() == token.STRING_LIT {
			last = t.Text()
			found = true
		}
	}
	return last, found
}

// Connector wraps a "connect"/"bind" declaration (cst.ConnectorDecl).
type Connector struct{ syntax *cst.SyntaxNode }

func (Connector) memberNode()               {}
func (c Connector) Syntax() *cst.SyntaxNode { return c.syntax }
func (c Connector) Range() span.Range       { return c.syntax.Range() }
func (c Connector) Text() string            { return c.syntax.Text() }

func (c Connector) IsBind() bool {
	k, _ := c.syntax.FirstToken()
	return k == token.KW_BIND
}

// Ends returns the connector's two endpoints, source then target.
func (c Connector) Ends() []ReferencePath { return referencePaths(c.syntax) }

func (c Connector) Body() []Member {
	out, _ := bodyMembers(c.syntax)
	return out
}

// Flow wraps a "flow A [via P] to B;" declaration (cst.FlowDecl).
type Flow struct{ syntax *cst.SyntaxNode }

func (Flow) memberNode()               {}
func (f Flow) Syntax() *cst.SyntaxNode { return f.syntax }
func (f Flow) Range() span.Range       { return f.syntax.Range() }
func (f Flow) Text() string            { return f.syntax.Text() }

func (f Flow) Source() (ReferencePath, bool) {
	if paths := referencePaths(f.syntax); len(paths) > 0 {
		return paths[0], true
	}
	return ReferencePath{}, false
}

func (f Flow) Target() (ReferencePath, bool) {
	paths := referencePaths(f.syntax)
	if len(paths) == 0 {
		return ReferencePath{}, false
	}
	return paths[len(paths)-1], true
}

func (f Flow) Via() (ReferencePath, bool) {
	nodes, ok := nodeChildrenAfter(f.syntax, token.KW_VIA)
	if !ok || len(nodes) == 0 {
		return ReferencePath{}, false
	}
	switch nodes[0].Kind() {
	case cst.NameNode, cst.QualifiedName, cst.FeatureChain:
		return ReferencePath{nodes[0]}, true
	}
	return ReferencePath{}, false
}

func (f Flow) Body() []Member {
	out, _ := bodyMembers(f.syntax)
	return out
}

// Transition wraps both "transition first A then B accept ... via ... do
// ...;" (cst.TransitionDecl) and the bare/"succession" shorthand "first A
// then B;" (cst.SuccessionDecl) — the two share a grammar up through
// "then", and only TransitionDecl carries the accept/via/do suffix.
type Transition struct{ syntax *cst.SyntaxNode }

func (Transition) memberNode()               {}
func (t Transition) Syntax() *cst.SyntaxNode { return t.syntax }
func (t Transition) Range() span.Range       { return t.syntax.Range() }
func (t Transition) Text() string            { return t.syntax.Text() }
func (t Transition) IsTransition() bool      { return t.syntax.Kind() == cst.TransitionDecl }

func (t Transition) From() (ReferencePath, bool) {
	if paths := referencePaths(t.syntax); len(paths) > 0 {
		return paths[0], true
	}
	return ReferencePath{}, false
}

func (t Transition) To() (ReferencePath, bool) {
	paths := referencePaths(t.syntax)
	if len(paths) < 2 {
		return ReferencePath{}, false
	}
	return paths[1], true
}

// Effects returns the accept/via/do targets beyond From/To, in source
// order; always empty for a SuccessionDecl.
func (t Transition) Effects() []ReferencePath {
	paths := referencePaths(t.syntax)
	if len(paths) <= 2 {
		return nil
	}
	return paths[2:]
}
