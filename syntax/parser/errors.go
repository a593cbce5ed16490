package parser

import "github.com/sysml-tools/sysml-engine/internal/span"

// Code categorizes a SyntaxError the way spec.md §4.2 requires: lexical,
// structural, declaration, expression, import, or generic.
type Code string

const (
	CodeLexical     Code = "lexical"
	CodeStructural  Code = "structural"
	CodeDeclaration Code = "declaration"
	CodeExpression  Code = "expression"
	CodeImport      Code = "import"
	CodeGeneric     Code = "generic"
)

// RelatedRange annotates a SyntaxError with a secondary location, e.g.
// "opened here" for an unclosed delimiter.
type RelatedRange struct {
	Range   span.Range
	Message string
}

// SyntaxError is one parse-time diagnostic (spec.md §4.2).
type SyntaxError struct {
	Range   span.Range
	Code    Code
	Message string
	Hint    string
	Related []RelatedRange
}
