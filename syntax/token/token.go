// Package token defines the closed set of lexical token kinds shared by
// the lexer, parser, and CST. The enum/String() idiom follows the
// teacher's own token package convention (cue/token), which in turn
// follows the standard go/token pattern: a small integer type, iota
// blocks grouped by category, and a String method backed by a
// parallel name table.
package token

// Kind is a closed enumeration of lexical token kinds, covering
// punctuation, operators, keywords of both dialects, literals, the two
// identifier flavors, trivia, and a sentinel ERROR kind (spec.md §3).
type Kind uint8

const (
	ERROR Kind = iota
	EOF

	// Trivia
	WHITESPACE
	LINE_COMMENT
	BLOCK_COMMENT

	// Identifiers and literals
	IDENT             // regular identifier
	UNRESTRICTED_IDENT // 'quoted identifier'
	INT_LIT
	FLOAT_LIT
	STRING_LIT
	INFINITY_LIT // '*'
	TRUE_LIT
	FALSE_LIT
	NULL_LIT

	// Punctuation
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	SEMI     // ;
	COLON    // :
	DOT      // .

	// Operators / relationship tokens (spec.md §4.1, §6)
	COLONCOLON     // ::
	COLONGT        // :>
	COLONGTGT      // :>>
	COLONCOLONGT   // ::>
	FATARROW       // =>
	TILDE          // ~
	EQUAL          // =
	DOTDOT         // ..
	STAR           // * (wildcard or infinity, disambiguated by the parser)
	STARSTAR       // **
	AMP            // &
	PIPE           // |
	LT             // <
	GT             // >
	LE             // <=
	GE             // >=
	NEQ            // !=
	EQEQ           // ==
	PLUS           // +
	MINUS          // -
	SLASH          // /
	BANG           // !
	AT             // @
	DOLLAR         // $

	// Keywords — shared and dialect-specific. Multi-word keyword pairs
	// (spec.md §4.1, "typed by", "use case", ...) are lexed as two
	// separate IDENT/KEYWORD tokens and joined by the parser.
	KW_PACKAGE
	KW_IMPORT
	KW_PUBLIC
	KW_PRIVATE
	KW_PROTECTED
	KW_PART
	KW_DEF
	KW_ABSTRACT
	KW_VARIATION
	KW_DERIVED
	KW_READONLY
	KW_REF
	KW_ATTRIBUTE
	KW_ITEM
	KW_PORT
	KW_ACTION
	KW_STATE
	KW_CALC
	KW_CONSTRAINT
	KW_REQUIREMENT
	KW_CONCERN
	KW_CASE
	KW_USE
	KW_ANALYSIS
	KW_VERIFICATION
	KW_VIEW
	KW_VIEWPOINT
	KW_RENDERING
	KW_METADATA
	KW_ENUM
	KW_CONNECTION
	KW_INTERFACE
	KW_ALLOCATION
	KW_FLOW
	KW_SUCCESSION
	KW_CONNECT
	KW_BIND
	KW_PERFORM
	KW_EXHIBIT
	KW_INCLUDE
	KW_SATISFY
	KW_ASSERT
	KW_VERIFY
	KW_EXPOSE
	KW_ALIAS
	KW_FOR
	KW_FILTER
	KW_SPECIALIZES
	KW_SUBSETS
	KW_REDEFINES
	KW_REFERENCES
	KW_CONJUGATES
	KW_CROSSES
	KW_TYPED
	KW_BY
	KW_CLASS
	KW_DATATYPE
	KW_STRUCT
	KW_ASSOCIATION
	KW_BEHAVIOR
	KW_FUNCTION
	KW_PREDICATE
	KW_INTERACTION
	KW_METACLASS
	KW_STEP
	KW_NAMESPACE
	KW_LIBRARY
	KW_STANDARD
	KW_DISJOINING
	KW_TRANSITION
	KW_FIRST
	KW_THEN
	KW_ACCEPT
	KW_SEND
	KW_VIA
	KW_TO
	KW_DO
	KW_ENTRY
	KW_EXIT
	KW_IN
	KW_OUT
	KW_INOUT
	KW_NONUNIQUE
	KW_ORDERED
	KW_ALL
	KW_INDIVIDUAL
	KW_OF
	KW_ABOUT
	KW_DOC
	KW_COMMENT
	KW_LANGUAGE
	KW_RETURN

	// sentinel
	maxKind
)

var names = [maxKind + 1]string{
	ERROR:            "ERROR",
	EOF:                "EOF",
	WHITESPACE:         "WHITESPACE",
	LINE_COMMENT:       "LINE_COMMENT",
	BLOCK_COMMENT:      "BLOCK_COMMENT",
	IDENT:              "IDENT",
	UNRESTRICTED_IDENT: "UNRESTRICTED_IDENT",
	INT_LIT:            "INT_LIT",
	FLOAT_LIT:          "FLOAT_LIT",
	STRING_LIT:         "STRING_LIT",
	INFINITY_LIT:       "INFINITY_LIT",
	TRUE_LIT:           "TRUE_LIT",
	FALSE_LIT:          "FALSE_LIT",
	NULL_LIT:           "NULL_LIT",
	LPAREN:             "(",
	RPAREN:             ")",
	LBRACE:             "{",
	RBRACE:             "}",
	LBRACKET:           "[",
	RBRACKET:           "]",
	COMMA:              ",",
	SEMI:                ";",
	COLON:              ":",
	DOT:                ".",
	COLONCOLON:         "::",
	COLONGT:            ":>",
	COLONGTGT:          ":>>",
	COLONCOLONGT:       "::>",
	FATARROW:           "=>",
	TILDE:              "~",
	EQUAL:              "=",
	DOTDOT:             "..",
	STAR:               "*",
	STARSTAR:           "**",
	AMP:                "&",
	PIPE:               "|",
	LT:                 "<",
	GT:                 ">",
	LE:                 "<=",
	GE:                 ">=",
	NEQ:                "!=",
	EQEQ:               "==",
	PLUS:               "+",
	MINUS:              "-",
	SLASH:              "/",
	BANG:               "!",
	AT:                 "@",
	DOLLAR:             "$",
}

func init() {
	for k, text := range keywordSpellings {
		names[k] = text
	}
}

// String returns the canonical display text for k (a keyword spelling,
// an operator spelling, or a category name for trivia/literal kinds).
func (k Kind) String() string {
	if int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return "UNKNOWN"
}

// IsKeyword reports whether k is one of the reserved keyword kinds.
func (k Kind) IsKeyword() bool { return k >= KW_PACKAGE && k < maxKind }

// IsTrivia reports whether k is whitespace or a comment, i.e. a token
// that is preserved in the CST but carries no grammatical meaning.
func (k Kind) IsTrivia() bool {
	return k == WHITESPACE || k == LINE_COMMENT || k == BLOCK_COMMENT
}

// IsLiteral reports whether k is one of the literal token kinds.
func (k Kind) IsLiteral() bool {
	switch k {
	case INT_LIT, FLOAT_LIT, STRING_LIT, INFINITY_LIT, TRUE_LIT, FALSE_LIT, NULL_LIT:
		return true
	}
	return false
}

// Keywords maps a keyword's regular-identifier spelling to its Kind. Built
// once at init time from keywordSpellings below.
var Keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(keywordSpellings))
	for k, text := range keywordSpellings {
		m[text] = k
	}
	return m
}()

var keywordSpellings = map[Kind]string{
	KW_PACKAGE:      "package",
	KW_IMPORT:       "import",
	KW_PUBLIC:       "public",
	KW_PRIVATE:      "private",
	KW_PROTECTED:    "protected",
	KW_PART:         "part",
	KW_DEF:          "def",
	KW_ABSTRACT:     "abstract",
	KW_VARIATION:    "variation",
	KW_DERIVED:      "derived",
	KW_READONLY:     "readonly",
	KW_REF:          "ref",
	KW_ATTRIBUTE:    "attribute",
	KW_ITEM:         "item",
	KW_PORT:         "port",
	KW_ACTION:       "action",
	KW_STATE:        "state",
	KW_CALC:         "calc",
	KW_CONSTRAINT:   "constraint",
	KW_REQUIREMENT:  "requirement",
	KW_CONCERN:      "concern",
	KW_CASE:         "case",
	KW_USE:          "use",
	KW_ANALYSIS:     "analysis",
	KW_VERIFICATION: "verification",
	KW_VIEW:         "view",
	KW_VIEWPOINT:    "viewpoint",
	KW_RENDERING:    "rendering",
	KW_METADATA:     "metadata",
	KW_ENUM:         "enum",
	KW_CONNECTION:   "connection",
	KW_INTERFACE:    "interface",
	KW_ALLOCATION:   "allocation",
	KW_FLOW:         "flow",
	KW_SUCCESSION:   "succession",
	KW_CONNECT:      "connect",
	KW_BIND:         "bind",
	KW_PERFORM:      "perform",
	KW_EXHIBIT:      "exhibit",
	KW_INCLUDE:      "include",
	KW_SATISFY:      "satisfy",
	KW_ASSERT:       "assert",
	KW_VERIFY:       "verify",
	KW_EXPOSE:       "expose",
	KW_ALIAS:        "alias",
	KW_FOR:          "for",
	KW_FILTER:       "filter",
	KW_SPECIALIZES:  "specializes",
	KW_SUBSETS:      "subsets",
	KW_REDEFINES:    "redefines",
	KW_REFERENCES:   "references",
	KW_CONJUGATES:   "conjugates",
	KW_CROSSES:      "crosses",
	KW_TYPED:        "typed",
	KW_BY:           "by",
	KW_CLASS:        "class",
	KW_DATATYPE:     "datatype",
	KW_STRUCT:       "struct",
	KW_ASSOCIATION:  "association",
	KW_BEHAVIOR:     "behavior",
	KW_FUNCTION:     "function",
	KW_PREDICATE:    "predicate",
	KW_INTERACTION:  "interaction",
	KW_METACLASS:    "metaclass",
	KW_STEP:         "step",
	KW_NAMESPACE:    "namespace",
	KW_LIBRARY:      "library",
	KW_STANDARD:     "standard",
	KW_DISJOINING:   "disjoining",
	KW_TRANSITION:   "transition",
	KW_FIRST:        "first",
	KW_THEN:         "then",
	KW_ACCEPT:       "accept",
	KW_SEND:         "send",
	KW_VIA:          "via",
	KW_TO:           "to",
	KW_DO:           "do",
	KW_ENTRY:        "entry",
	KW_EXIT:         "exit",
	KW_IN:           "in",
	KW_OUT:          "out",
	KW_INOUT:        "inout",
	KW_NONUNIQUE:    "nonunique",
	KW_ORDERED:      "ordered",
	KW_ALL:          "all",
	KW_INDIVIDUAL:   "individual",
	KW_OF:           "of",
	KW_ABOUT:        "about",
	KW_DOC:          "doc",
	KW_COMMENT:      "comment",
	KW_LANGUAGE:     "language",
	KW_RETURN:       "return",
}
