// Package ast defines the M language's AST node kinds and the single,
// flat Node representation every finished node is built from: no
// inheritance, matching java/parser/node.go, one Go struct here, not a
// hierarchy of per-kind types; a node's Kind plus its Children and
// optional payload fields carry everything downstream code needs.
package ast

import "github.com/dhamidi/mq/token"

// Kind is the closed set of finished AST node kinds.
type Kind int

const (
	KindDocument Kind = iota
	KindSection
	KindSectionMember

	KindLetExpression
	KindIdentifierPairedExpression
	KindGeneralizedIdentifierPairedExpression

	KindIfExpression
	KindErrorHandlingExpression
	KindErrorRaisingExpression
	KindEachExpression
	KindNotImplementedExpression

	KindFunctionExpression
	KindParameterList
	KindParameter

	KindRecordExpression
	KindListExpression
	KindRangeExpression
	KindParenthesizedExpression

	KindInvokeExpression
	KindItemAccessExpression
	KindFieldSelector
	KindFieldProjection
	KindFieldSelectorList

	KindIdentifierExpression
	KindIdentifier
	KindGeneralizedIdentifier
	KindLiteralExpression
	KindConstant

	KindTypeExpression
	KindTypePrimaryType
	KindPrimitiveType
	KindNullablePrimitiveType
	KindNullableType
	KindRecordType
	KindTableType
	KindListType
	KindFunctionType
	KindAsNullablePrimitiveType

	KindUnaryExpression

	// TBinOpExpression variants, one Kind per precedence level. IsBinOp
	// reports membership in this group; C8 (Binary-Op Type Inference)
	// accepts any of them.
	KindLogicalOrExpression
	KindLogicalAndExpression
	KindAsExpression
	KindIsExpression
	KindEqualityExpression
	KindRelationalExpression
	KindAdditiveExpression
	KindMultiplicativeExpression
	KindMetadataExpression

	KindError
)

var kindNames = map[Kind]string{
	KindDocument:                               "Document",
	KindSection:                                "Section",
	KindSectionMember:                          "SectionMember",
	KindLetExpression:                          "LetExpression",
	KindIdentifierPairedExpression:              "IdentifierPairedExpression",
	KindGeneralizedIdentifierPairedExpression:   "GeneralizedIdentifierPairedExpression",
	KindIfExpression:                            "IfExpression",
	KindErrorHandlingExpression:                 "ErrorHandlingExpression",
	KindErrorRaisingExpression:                  "ErrorRaisingExpression",
	KindEachExpression:                          "EachExpression",
	KindNotImplementedExpression:                "NotImplementedExpression",
	KindFunctionExpression:                      "FunctionExpression",
	KindParameterList:                           "ParameterList",
	KindParameter:                               "Parameter",
	KindRecordExpression:                        "RecordExpression",
	KindListExpression:                          "ListExpression",
	KindRangeExpression:                         "RangeExpression",
	KindParenthesizedExpression:                 "ParenthesizedExpression",
	KindInvokeExpression:                        "InvokeExpression",
	KindItemAccessExpression:                    "ItemAccessExpression",
	KindFieldSelector:                           "FieldSelector",
	KindFieldProjection:                         "FieldProjection",
	KindFieldSelectorList:                       "FieldSelectorList",
	KindIdentifierExpression:                    "IdentifierExpression",
	KindIdentifier:                              "Identifier",
	KindGeneralizedIdentifier:                   "GeneralizedIdentifier",
	KindLiteralExpression:                       "LiteralExpression",
	KindConstant:                                "Constant",
	KindTypeExpression:                          "TypeExpression",
	KindTypePrimaryType:                         "TypePrimaryType",
	KindPrimitiveType:                           "PrimitiveType",
	KindNullablePrimitiveType:                   "NullablePrimitiveType",
	KindNullableType:                            "NullableType",
	KindRecordType:                              "RecordType",
	KindTableType:                               "TableType",
	KindListType:                                "ListType",
	KindFunctionType:                            "FunctionType",
	KindAsNullablePrimitiveType:                 "AsNullablePrimitiveType",
	KindUnaryExpression:                         "UnaryExpression",
	KindLogicalOrExpression:                     "LogicalOrExpression",
	KindLogicalAndExpression:                    "LogicalAndExpression",
	KindAsExpression:                            "AsExpression",
	KindIsExpression:                            "IsExpression",
	KindEqualityExpression:                      "EqualityExpression",
	KindRelationalExpression:                    "RelationalExpression",
	KindAdditiveExpression:                      "AdditiveExpression",
	KindMultiplicativeExpression:                "MultiplicativeExpression",
	KindMetadataExpression:                      "MetadataExpression",
	KindError:                                   "Error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// binOpKinds is the TBinOpExpression variant set C8 operates over.
var binOpKinds = map[Kind]bool{
	KindLogicalOrExpression:      true,
	KindLogicalAndExpression:     true,
	KindAsExpression:             true,
	KindIsExpression:             true,
	KindEqualityExpression:       true,
	KindRelationalExpression:     true,
	KindAdditiveExpression:       true,
	KindMultiplicativeExpression: true,
	KindMetadataExpression:       true,
}

// IsBinOp reports whether k is one of the TBinOpExpression variants.
func IsBinOp(k Kind) bool { return binOpKinds[k] }

// terminalKinds is the set of AST kinds that never have children — the
// kinds eligible for nodemap's leafNodeIds set (invariant 6).
var terminalKinds = map[Kind]bool{
	KindIdentifier:        true,
	KindConstant:          true,
	KindLiteralExpression: true,
	KindPrimitiveType:     true,
}

// IsTerminal reports whether k is always a leaf.
func IsTerminal(k Kind) bool { return terminalKinds[k] }

// Node is the single, flat representation for every finished AST node.
// It never mutates after construction.
type Node struct {
	ID       int
	Kind     Kind
	Token    *token.Token // set for terminal/leaf kinds
	Children []int        // child node ids, in syntactic order
	Span     token.Span

	// BinOpOperator is set only on TBinOpExpression-variant nodes; it is
	// the operator token kind (e.g. token.Plus) used by C8's lookup
	// tables. Children are always [left, operatorConstant, right].
	BinOpOperator token.Kind
}
