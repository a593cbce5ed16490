package ast

import (
	"github.com/sysml-tools/sysml-engine/internal/span"
	"github.com/sysml-tools/sysml-engine/syntax/cst"
	"github.com/sysml-tools/sysml-engine/syntax/token"
)

// Name wraps a single regular or unrestricted identifier (cst.NameNode).
type Name struct{ syntax *cst.SyntaxNode }

func (n Name) Syntax() *cst.SyntaxNode { return n.syntax }
func (n Name) Range() span.Range       { return n.syntax.Range() }
func (n Name) Text() string            { return n.syntax.Text() }

// IsUnrestricted reports whether the name was written as a quoted
// 'unrestricted identifier' rather than a regular one.
func (n Name) IsUnrestricted() bool {
	k, _ := n.syntax.FirstToken()
	return k == token.UNRESTRICTED_IDENT
}

// ReferencePath wraps a bare name, a "::"-qualified name, or a
// "."-separated feature chain (cst.NameNode / QualifiedName /
// FeatureChain), the three shapes parser.parseReferencePath can produce.
type ReferencePath struct{ syntax *cst.SyntaxNode }

func (r ReferencePath) Syntax() *cst.SyntaxNode { return r.syntax }
func (r ReferencePath) Range() span.Range       { return r.syntax.Range() }
func (r ReferencePath) Text() string            { return r.syntax.Text() }

// IsFeatureChain reports whether the path uses "." (feature access)
// rather than "::" (namespace qualification) as its separator.
func (r ReferencePath) IsFeatureChain() bool { return r.syntax.Kind() == cst.FeatureChain }

// Segments returns the path's dot/double-colon-separated names in order.
func (r ReferencePath) Segments() []Name {
	if r.syntax.Kind() == cst.NameNode {
		return []Name{{r.syntax}}
	}
	var out []Name
	for _, c := range r.syntax.NodeChildren() {
		if c.Kind() == cst.NameNode {
			out = append(out, Name{c})
		}
	}
	return out
}

// MetadataAnnotation wraps a "@Target" annotation (cst.MetadataAnnotation).
type MetadataAnnotation struct{ syntax *cst.SyntaxNode }

func (m MetadataAnnotation) Syntax() *cst.SyntaxNode { return m.syntax }
func (m MetadataAnnotation) Range() span.Range       { return m.syntax.Range() }
func (m MetadataAnnotation) Text() string            { return m.syntax.Text() }

// Target returns the annotation's metadata type reference.
func (m MetadataAnnotation) Target() (ReferencePath, bool) {
	if paths := referencePaths(m.syntax); len(paths) > 0 {
		return paths[0], true
	}
	return ReferencePath{}, false
}

// Multiplicity wraps a "[ ... ]" bound (cst.Multiplicity).
type Multiplicity struct{ syntax *cst.SyntaxNode }

func (m Multiplicity) Syntax() *cst.SyntaxNode { return m.syntax }
func (m Multiplicity) Range() span.Range       { return m.syntax.Range() }
func (m Multiplicity) Text() string            { return m.syntax.Text() }
func (m Multiplicity) IsOrdered() bool         { return containsToken(m.syntax, token.KW_ORDERED) }
func (m Multiplicity) IsNonunique() bool       { return containsToken(m.syntax, token.KW_NONUNIQUE) }

// Bounds returns the literal bound tokens between "[" and "]" as raw
// text, excluding the ordered/nonunique modifiers: a single bound
// ("[3]", "[*]") yields (text, text, true); a range ("[0..5]") yields
// (lower, upper, true). ok is false for an empty or malformed
// multiplicity (parser recovery left no numeric/"*" tokens at all).
func (m Multiplicity) Bounds() (lower, upper string, ok bool) {
	var nums []string
	for _, t := range directTokens(m.syntax) {
		switch t.Kind() {
		case token.INT_LIT, token.STAR:
			nums = append(nums, t.Text())
		}
	}
	switch len(nums) {
	case 1:
		return nums[0], nums[0], true
	case 2:
		return nums[0], nums[1], true
	default:
		return "", "", false
	}
}
