// Package token defines the lexical token vocabulary for M (Power Query)
// source text, along with the code-unit position type the rest of the
// module uses to describe ranges within that text (grapheme columns are
// computed by the lexer's snapshot).
package token

// Position locates a point in source text at three granularities, matching
// the shape external callers (editors) expect: an absolute code-unit
// offset, a code-unit offset within the current line, and a 1-based line
// number.
type Position struct {
	CodeUnit     int
	LineCodeUnit int
	LineNumber   int
}

// Span is the half-open [Start, End) range a token or node occupies.
type Span struct {
	Start Position
	End   Position
}

// Kind is a closed enumeration of M token kinds.
type Kind int

const (
	EOF Kind = iota
	Error
	Whitespace
	LineComment
	BlockComment

	Identifier
	QuotedIdentifier // #"..."
	NumericLiteral
	TextLiteral

	// Keywords
	KwAnd
	KwAs
	KwEach
	KwElse
	KwError
	KwFalse
	KwIf
	KwIn
	KwIs
	KwLet
	KwMeta
	KwNot
	KwNull
	KwOr
	KwOtherwise
	KwSection
	KwShared
	KwThen
	KwTrue
	KwTry
	KwType
	KwHashSections
	KwHashShared

	// Primitive type keywords (recognized contextually as identifiers too)
	KwTypeAny
	KwTypeAnyNonNull
	KwTypeNone
	KwTypeNull
	KwTypeLogical
	KwTypeNumber
	KwTypeTime
	KwTypeDate
	KwTypeDateTime
	KwTypeDateTimeZone
	KwTypeDuration
	KwTypeText
	KwTypeBinary
	KwTypeList
	KwTypeRecord
	KwTypeTable
	KwTypeFunction
	KwTypeAction

	// Punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Semicolon
	Equal
	FatArrow // =>
	At       // @
	Question // ?
	Ellipsis // ..
	Comment

	// Operators
	Plus
	Minus
	Star
	Slash
	Ampersand
	NotEqual // <>
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	Dot
	NullableQuestion // trailing "?" on a type
)

var keywords = map[string]Kind{
	"and":       KwAnd,
	"as":        KwAs,
	"each":      KwEach,
	"else":      KwElse,
	"error":     KwError,
	"false":     KwFalse,
	"if":        KwIf,
	"in":        KwIn,
	"is":        KwIs,
	"let":       KwLet,
	"meta":      KwMeta,
	"not":       KwNot,
	"null":      KwNull,
	"or":        KwOr,
	"otherwise": KwOtherwise,
	"section":   KwSection,
	"shared":    KwShared,
	"then":      KwThen,
	"true":      KwTrue,
	"try":       KwTry,
	"type":      KwType,
}

var primitiveTypeKeywords = map[string]Kind{
	"any":          KwTypeAny,
	"anynonnull":   KwTypeAnyNonNull,
	"none":         KwTypeNone,
	"null":         KwTypeNull,
	"logical":      KwTypeLogical,
	"number":       KwTypeNumber,
	"time":         KwTypeTime,
	"date":         KwTypeDate,
	"datetime":     KwTypeDateTime,
	"datetimezone": KwTypeDateTimeZone,
	"duration":     KwTypeDuration,
	"text":         KwTypeText,
	"binary":       KwTypeBinary,
	"list":         KwTypeList,
	"record":       KwTypeRecord,
	"table":        KwTypeTable,
	"function":     KwTypeFunction,
	"action":       KwTypeAction,
}

// PrimitiveTypeNames is the closed, ordered list of primitive type-name
// spellings autocomplete (C7) may suggest.
var PrimitiveTypeNames = []string{
	"any", "anynonnull", "none", "null", "logical", "number", "time",
	"date", "datetime", "datetimezone", "duration", "text", "binary",
	"list", "record", "table", "function", "action",
}

// LookupKeyword classifies an identifier-shaped literal, returning the
// keyword Kind and true, or (0, false) if it is a plain identifier.
func LookupKeyword(literal string) (Kind, bool) {
	if k, ok := keywords[literal]; ok {
		return k, true
	}
	return 0, false
}

// LookupPrimitiveType classifies an identifier-shaped literal as a
// primitive type name, independent of keyword status (primitive type
// names like "text" or "number" are not reserved words; they are
// recognized contextually after "type"/"as"/"is").
func LookupPrimitiveType(literal string) (Kind, bool) {
	if k, ok := primitiveTypeKeywords[literal]; ok {
		return k, true
	}
	return 0, false
}

// IsKeywordLikeLiteral reports whether literal spells a reserved word that
// autocomplete's prefix filter must treat as already-complete, mirroring
// treatment of "null"/"true"/"false" as keyword-like literals.
func IsKeywordLikeLiteral(literal string) bool {
	switch literal {
	case "null", "true", "false":
		return true
	}
	return false
}

// Token is one lexed unit of M source text.
type Token struct {
	Kind    Kind
	Literal string
	Span    Span
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	EOF:                "EOF",
	Error:              "Error",
	Whitespace:         "Whitespace",
	LineComment:        "LineComment",
	BlockComment:       "BlockComment",
	Identifier:         "Identifier",
	QuotedIdentifier:   "QuotedIdentifier",
	NumericLiteral:     "NumericLiteral",
	TextLiteral:        "TextLiteral",
	KwAnd:              "and",
	KwAs:               "as",
	KwEach:             "each",
	KwElse:             "else",
	KwError:            "error",
	KwFalse:            "false",
	KwIf:               "if",
	KwIn:               "in",
	KwIs:               "is",
	KwLet:              "let",
	KwMeta:             "meta",
	KwNot:              "not",
	KwNull:             "null",
	KwOr:               "or",
	KwOtherwise:        "otherwise",
	KwSection:          "section",
	KwShared:           "shared",
	KwThen:             "then",
	KwTrue:             "true",
	KwTry:              "try",
	KwType:             "type",
	LParen:             "(",
	RParen:             ")",
	LBracket:           "[",
	RBracket:           "]",
	LBrace:             "{",
	RBrace:             "}",
	Comma:              ",",
	Semicolon:          ";",
	Equal:              "=",
	FatArrow:           "=>",
	At:                 "@",
	Question:           "?",
	Ellipsis:           "..",
	Plus:               "+",
	Minus:              "-",
	Star:               "*",
	Slash:              "/",
	Ampersand:          "&",
	NotEqual:           "<>",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	Dot:                ".",
}

// KeywordKind is a binary-operator/conjunction keyword offered by the
// Autocomplete Engine. It reuses token.Kind's keyword values so the
// suggestion set and the lexer's classification stay in lockstep.
type KeywordKind = Kind
