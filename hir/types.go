package hir

import (
	"github.com/sysml-tools/sysml-engine/internal/ids"
	"github.com/sysml-tools/sysml-engine/internal/intern"
	"github.com/sysml-tools/sysml-engine/internal/span"
)

// RelationshipKind is the closed set of relationship kinds a Relationship
// can carry (spec.md §3's "Relationship" entry).
type RelationshipKind uint8

const (
	RelInvalid RelationshipKind = iota
	RelSpecializes
	RelSubsets
	RelRedefines
	RelTypedBy
	RelReferences
	RelConjugates
	RelCrosses
	RelSatisfies
	RelPerforms
	RelExhibits
	RelIncludes
	RelAsserts
	RelVerifies
	RelDisjoining

	maxRelationshipKind
)

var relationshipKindNames = [maxRelationshipKind]string{
	RelInvalid:     "Invalid",
	RelSpecializes: "Specializes",
	RelSubsets:     "Subsets",
	RelRedefines:   "Redefines",
	RelTypedBy:     "TypedBy",
	RelReferences:  "References",
	RelConjugates:  "Conjugates",
	RelCrosses:     "Crosses",
	RelSatisfies:   "Satisfies",
	RelPerforms:    "Performs",
	RelExhibits:    "Exhibits",
	RelIncludes:    "Includes",
	RelAsserts:     "Asserts",
	RelVerifies:    "Verifies",
	RelDisjoining:  "Disjoining",
}

func (k RelationshipKind) String() string {
	if int(k) < len(relationshipKindNames) && relationshipKindNames[k] != "" {
		return relationshipKindNames[k]
	}
	return "Invalid"
}

// TypeRef is a reference to another element by name, possibly a dotted
// feature chain, possibly later resolved (spec.md §3 "TypeRef").
type TypeRef struct {
	// Target is the path's last segment, interned.
	Target intern.Name
	// Qualified is the full interned text of the reference path as
	// written (the "::"/"."-joined form), set for multi-segment paths,
	// feature chains, and every import path; zero for any other bare
	// single-segment reference.
	Qualified intern.Name
	Range     span.Range
	// Chain holds one interned Name per segment for dotted feature
	// chains (a.b.c); empty for a plain reference.
	Chain []intern.Name
	// ChainRanges holds the per-segment byte range parallel to Chain.
	ChainRanges []span.Range
	// ResolvedTarget is filled in by the resolver (package index); zero
	// (intern.Name's reserved sentinel) until resolved.
	ResolvedTarget intern.Name
}

// Relationship is a typed edge from a symbol to a target path (spec.md
// §3 "Relationship").
type Relationship struct {
	Kind           RelationshipKind
	Target         TypeRef
	Range          span.Range
	ResolvedTarget intern.Name
}

// Bound is one endpoint of a multiplicity range: either a non-negative
// integer or the unbounded sentinel ("*"), per spec.md §3.
type Bound struct {
	Value     int
	Unbounded bool

	// Raw is the bound's literal text as written, kept alongside Value so
	// Decimal can re-parse it at arbitrary precision; Value alone would
	// silently truncate a literal wider than a machine int.
	Raw string
}

// Multiplicity is the extracted "[ lower..upper ]" bound of a feature,
// per spec.md §3's HirSymbol.multiplicity field.
type Multiplicity struct {
	Lower, Upper         Bound
	Ordered, Nonunique   bool
}

// ScopeFilter is one "filter @MetadataType;" statement attached to a
// scope, per spec.md §4.3's "Metadata annotations": "Package-level
// filter @MetadataType; is recorded as a scope filter keyed on the
// enclosing scope's qualified name."
type ScopeFilter struct {
	Scope    intern.Name // the filtering scope's qualified name
	Metadata intern.Name // the required metadata type, simple or qualified
	Range    span.Range
}

// HirSymbol is the extracted semantic record for one declared element
// (spec.md §3's "HirSymbol").
type HirSymbol struct {
	File          ids.FileId
	Name          intern.Name
	QualifiedName intern.Name
	Kind          SymbolKind
	Range         span.Range
	NameRange     span.Range

	IsPublic    bool
	IsAbstract  bool
	IsVariation bool
	IsDerived   bool
	IsReadonly  bool

	Multiplicity *Multiplicity

	TypeRefs      []TypeRef
	Relationships []Relationship

	MetadataAnnotations []intern.Name

	// Parent is the enclosing namespace's qualified name, or the zero
	// Name at the workspace root.
	Parent intern.Name

	IsAnonymous bool

	// IsWildcardImport and IsRecursiveImport distinguish "import P;" /
	// "import P::Name;" (both false) from "import P::*;" (wildcard) and
	// "import P::**;" (wildcard, recursive), for Kind == KindImport.
	// The grammar consumes the "*"/"**" token directly
	// (parser.parseImportPath never makes it a node child), so it is
	// invisible to TypeRefs/Chain; hir.Extract reads it straight off
	// ast.Import instead and stores it here for the index package.
	IsWildcardImport  bool
	IsRecursiveImport bool
}
