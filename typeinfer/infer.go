package typeinfer

import (
	"fmt"

	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/token"
	"github.com/dhamidi/mq/xnode"
)

// Infer is C8's entry point: given an XorNode whose kind is any
// TBinOpExpression variant, compute its TType.
func Infer(coll *nodemap.Collection, node xnode.Node) *TType {
	children := xnode.ChildrenXor(coll, node.ID())
	if len(children) == 0 {
		return Unknown()
	}

	leftType := ExprType(coll, children[0])
	if len(children) < 2 {
		return leftType
	}
	opKind := constantKind(children[1])

	if len(children) < 3 || children[2].IsContext() {
		return partialResult(leftType, opKind)
	}

	rightType := ExprType(coll, children[2])
	return fullResult(leftType, opKind, rightType)
}

// ExprType computes the TType of an arbitrary (not-necessarily-binop)
// XorNode, recursing into Infer for any TBinOpExpression variant and
// unwrapping parentheses and unary expressions (the operand's type is
// returned); every other production falls to valueTypeOf's syntax-only
// classification.
func ExprType(coll *nodemap.Collection, node xnode.Node) *TType {
	if node.IsContext() {
		return Unknown()
	}
	if ast.IsBinOp(node.Kind()) {
		return Infer(coll, node)
	}
	if node.Kind() == ast.KindParenthesizedExpression {
		children := xnode.ChildrenXor(coll, node.ID())
		if len(children) < 2 {
			return Unknown()
		}
		return ExprType(coll, children[1])
	}
	if node.Kind() == ast.KindUnaryExpression {
		children := xnode.ChildrenXor(coll, node.ID())
		if len(children) < 2 {
			return Unknown()
		}
		return ExprType(coll, children[1])
	}
	return valueTypeOf(coll, node)
}

// valueTypeOf classifies the syntactic shape of a non-binop, non-paren
// node. It never resolves identifier references (no symbol table in
// this core) — the contract is binary-op inference, not full
// type-checking.
func valueTypeOf(coll *nodemap.Collection, node xnode.Node) *TType {
	switch node.Kind() {
	case ast.KindLiteralExpression:
		return literalType(node)
	case ast.KindRecordExpression:
		return recordExpressionType(coll, node)
	case ast.KindListExpression:
		return Primitive(KindList, false)
	case ast.KindFunctionExpression:
		return &TType{Tag: TagFunction}
	case ast.KindNotImplementedExpression:
		return Primitive(KindNone, false)
	case ast.KindErrorRaisingExpression:
		return Primitive(KindNone, false)
	default:
		return Unknown()
	}
}

func literalType(node xnode.Node) *TType {
	if node.Tag != xnode.TagAst || node.AstNode.Token == nil {
		return Unknown()
	}
	switch node.AstNode.Token.Kind {
	case token.NumericLiteral:
		return Primitive(KindNumber, false)
	case token.TextLiteral:
		return Primitive(KindText, false)
	case token.KwTrue, token.KwFalse:
		return Primitive(KindLogical, false)
	case token.KwNull:
		return Primitive(KindNull, true)
	default:
		return Unknown()
	}
}

// recordExpressionType builds a DefinedRecord from a RecordExpression's
// "name = expr" fields. Every constructed record literal is unextended
// (isOpen false) since nothing widens it until combined with another
// record via "&".
func recordExpressionType(coll *nodemap.Collection, node xnode.Node) *TType {
	fields := make(map[string]*TType)
	for _, child := range xnode.ChildrenXor(coll, node.ID()) {
		if child.Kind() != ast.KindGeneralizedIdentifierPairedExpression {
			continue
		}
		grandchildren := xnode.ChildrenXor(coll, child.ID())
		if len(grandchildren) < 3 {
			continue
		}
		name := fieldName(grandchildren[0])
		if name == "" {
			continue
		}
		fields[name] = ExprType(coll, grandchildren[2])
	}
	return &TType{Tag: TagDefinedRecord, Fields: fields}
}

func fieldName(node xnode.Node) string {
	if node.Tag == xnode.TagAst && node.AstNode.Token != nil {
		return node.AstNode.Token.Literal
	}
	return ""
}

func constantKind(node xnode.Node) token.Kind {
	if node.Tag == xnode.TagAst && node.AstNode.Token != nil {
		return node.AstNode.Token.Kind
	}
	return token.Error
}

// partialResult is step 2's "partial" branch: the operator
// is known but the right operand is absent or still being parsed.
func partialResult(left *TType, op token.Kind) *TType {
	leftKind, ok := primitiveKindOf(left)
	if !ok {
		return fallback(left, op, nil)
	}
	kinds, ok := lookupPartial(leftKind, op)
	if !ok {
		return fallback(left, op, nil)
	}
	if len(kinds) == 1 {
		// The right operand hasn't resolved yet, so its type could still
		// widen the result to nullable no matter what the left operand
		// is: "1 +" infers Number, nullable=true, not left.IsNullable.
		return Primitive(kinds[0], true)
	}
	return AnyUnionOf(kinds)
}

// fullResult is steps 3–5: both operands resolved.
func fullResult(left *TType, op token.Kind, right *TType) *TType {
	leftKind, leftOK := primitiveKindOf(left)
	rightKind, rightOK := primitiveKindOf(right)
	if !leftOK || !rightOK {
		return fallback(left, op, right)
	}

	result, ok := lookupFull(leftKind, op, rightKind)
	if !ok {
		return fallback(left, op, right)
	}

	if isRecordOrTableCombine(op, result) {
		return combineRecordOrTable(left, right, result)
	}
	return Primitive(result, left.IsNullable || right.IsNullable)
}

// fallback covers the keyword binops ("is"/"as"/"meta") the enumerated
// operator tables don't mention: "is" always yields a
// non-nullable Logical, "as" yields the right operand's inferred type as
// ExprType computes it (type names are not resolved, so "x as number"
// yields Unknown), and "meta" passes the left value's type through
// unchanged — all three follow M's documented semantics for these
// operators rather than the operator-table mechanism.
func fallback(left *TType, op token.Kind, right *TType) *TType {
	switch op {
	case token.KwIs:
		return Primitive(KindLogical, false)
	case token.KwAs:
		if right != nil {
			return right
		}
		return Unknown()
	case token.KwMeta:
		return left
	default:
		return Unknown()
	}
}

func primitiveKindOf(t *TType) (PrimitiveKind, bool) {
	if t == nil {
		return KindUnknown, false
	}
	switch t.Tag {
	case TagPrimitive:
		return t.Primitive, true
	case TagDefinedRecord:
		return KindRecord, true
	case TagDefinedTable:
		return KindTable, true
	case TagFunction:
		return KindFunction, true
	default:
		return KindUnknown, false
	}
}

// combineRecordOrTable is step 4's Record/Table "&"
// special case.
func combineRecordOrTable(left, right *TType, result PrimitiveKind) *TType {
	leftExtended := left.Tag == TagDefinedRecord || left.Tag == TagDefinedTable
	rightExtended := right.Tag == TagDefinedRecord || right.Tag == TagDefinedTable

	switch {
	case !leftExtended && !rightExtended:
		return Primitive(result, false)
	case leftExtended && !rightExtended:
		return openedCopy(left)
	case !leftExtended && rightExtended:
		return openedCopy(right)
	}

	if left.Tag != right.Tag {
		panic(fmt.Sprintf("typeinfer: invariant violation: combine of mismatched extended kinds %v/%v reached a lookup-table hit", left.Tag, right.Tag))
	}

	merged := make(map[string]*TType, len(left.Fields)+len(right.Fields))
	for k, v := range left.Fields {
		merged[k] = v
	}
	for k, v := range right.Fields { // right-biased merge
		merged[k] = v
	}
	return &TType{
		Tag:        left.Tag,
		Fields:     merged,
		IsNullable: left.IsNullable && right.IsNullable,
		IsOpen:     left.IsOpen || right.IsOpen,
	}
}

func openedCopy(t *TType) *TType {
	c := *t
	c.IsOpen = true
	return &c
}
