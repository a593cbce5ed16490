// Package cst implements the lossless concrete syntax tree: immutable,
// shareable "green" nodes and a lightweight "red" view layer (SyntaxNode)
// that adds absolute offsets and parent pointers. This green/red split
// has no literal precedent in the example pack (the teacher's cue/ast is
// a direct mutable tree, not a lossless two-layer tree); it is new
// engineering grounded only in spec.md §3's explicit requirements
// (immutable shareable green nodes, lossless leaf concatenation,
// structural sharing across edits) and, for the walking and Pos/End
// conventions, on cue/ast.Walk and cue/ast.Node (see DESIGN.md).
package cst

// NodeKind is a closed enumeration of CST non-terminals (spec.md §3), plus
// a sentinel Error kind emitted by parser recovery.
type NodeKind uint8

const (
	ErrorNode NodeKind = iota

	SourceFile // root: a sequence of namespace members

	PackageDecl
	NamespaceDecl
	LibraryPackageDecl
	ImportDecl
	AliasDecl
	FilterDecl
	CommentDecl

	// Definitions and usages share one generic node shape; the specific
	// semantic kind is carried by the leading keyword sequence and read
	// back out by hir.Extract, not re-encoded as distinct NodeKinds. This
	// keeps the grammar's non-terminal count closed and small, matching
	// spec.md §3's "closed enumeration... plus a sentinel".
	Definition
	Usage

	Multiplicity
	TypeAnnotation   // ": T", "typed by T"
	SpecializesClause // ":> T", "specializes T"
	SubsetsClause
	RedefinesClause
	ReferencesClause
	ConjugatesClause
	CrossesClause
	PerformClause
	ExhibitClause
	IncludeClause
	SatisfyClause
	AssertClause
	VerifyClause
	DisjoiningClause

	FeatureChain // a.b.c
	QualifiedName // Foo::Bar::Baz
	NameNode      // a single (regular or unrestricted) identifier

	MetadataAnnotation // @Type
	ParameterList
	Parameter

	ExprBinary
	ExprUnary
	ExprLiteral
	ExprParen
	ExprInvocation

	TransitionDecl
	ConnectorDecl
	SuccessionDecl
	FlowDecl
	StateBody
	ActionBody
	RequirementBody
	ViewBody

	maxNodeKind
)

var nodeKindNames = [maxNodeKind]string{
	ErrorNode:          "Error",
	SourceFile:         "SourceFile",
	PackageDecl:        "PackageDecl",
	NamespaceDecl:      "NamespaceDecl",
	LibraryPackageDecl: "LibraryPackageDecl",
	ImportDecl:         "ImportDecl",
	AliasDecl:          "AliasDecl",
	FilterDecl:         "FilterDecl",
	CommentDecl:        "CommentDecl",
	Definition:         "Definition",
	Usage:              "Usage",
	Multiplicity:       "Multiplicity",
	TypeAnnotation:     "TypeAnnotation",
	SpecializesClause:  "SpecializesClause",
	SubsetsClause:      "SubsetsClause",
	RedefinesClause:    "RedefinesClause",
	ReferencesClause:   "ReferencesClause",
	ConjugatesClause:   "ConjugatesClause",
	CrossesClause:      "CrossesClause",
	PerformClause:      "PerformClause",
	ExhibitClause:      "ExhibitClause",
	IncludeClause:      "IncludeClause",
	SatisfyClause:      "SatisfyClause",
	AssertClause:       "AssertClause",
	VerifyClause:       "VerifyClause",
	DisjoiningClause:   "DisjoiningClause",
	FeatureChain:       "FeatureChain",
	QualifiedName:      "QualifiedName",
	NameNode:           "Name",
	MetadataAnnotation: "MetadataAnnotation",
	ParameterList:      "ParameterList",
	Parameter:          "Parameter",
	ExprBinary:         "ExprBinary",
	ExprUnary:          "ExprUnary",
	ExprLiteral:        "ExprLiteral",
	ExprParen:          "ExprParen",
	ExprInvocation:     "ExprInvocation",
	TransitionDecl:     "TransitionDecl",
	ConnectorDecl:      "ConnectorDecl",
	SuccessionDecl:     "SuccessionDecl",
	FlowDecl:           "FlowDecl",
	StateBody:          "StateBody",
	ActionBody:         "ActionBody",
	RequirementBody:    "RequirementBody",
	ViewBody:           "ViewBody",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}
