package typeinfer

import (
	"testing"

	"github.com/dhamidi/mq/activenode"
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/parser"
	"github.com/dhamidi/mq/token"
	"github.com/dhamidi/mq/xnode"
)

func rootBinOp(t *testing.T, src string) (xnode.Node, *nodemap.Collection) {
	t.Helper()
	result := parser.Parse([]byte(src))
	if result.Err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, result.Err)
	}
	coll := result.Ok.Nodes
	doc, ok := coll.GetAst(result.Ok.Root)
	if !ok {
		t.Fatalf("root missing")
	}
	root, ok := xnode.FromID(coll, doc.Children[0])
	if !ok {
		t.Fatalf("root expression missing")
	}
	return root, coll
}

func TestInferArithmeticAddition(t *testing.T) {
	node, coll := rootBinOp(t, "1 + 2")
	got := Infer(coll, node)
	if got.Tag != TagPrimitive || got.Primitive != KindNumber {
		t.Errorf("Infer(1 + 2) = %+v, want Number", got)
	}
}

func TestInferEqualityYieldsLogical(t *testing.T) {
	node, coll := rootBinOp(t, `"a" = "b"`)
	got := Infer(coll, node)
	if got.Tag != TagPrimitive || got.Primitive != KindLogical {
		t.Errorf("Infer(\"a\"=\"b\") = %+v, want Logical", got)
	}
}

func TestInferIsExpressionYieldsNonNullableLogical(t *testing.T) {
	node, coll := rootBinOp(t, "1 is number")
	got := Infer(coll, node)
	if got.Tag != TagPrimitive || got.Primitive != KindLogical || got.IsNullable {
		t.Errorf("Infer(1 is number) = %+v, want non-nullable Logical", got)
	}
}

func TestExprTypeOnBareLiteralWithNoOperator(t *testing.T) {
	// A bare operand with no following operator never gets wrapped in a
	// TBinOpExpression node at all (binOpLevel deletes the wrapper context
	// when no operator matches), so ExprType — not Infer — is the right
	// entry point here.
	node, coll := rootBinOp(t, "1")
	got := ExprType(coll, node)
	if got.Tag != TagPrimitive || got.Primitive != KindNumber {
		t.Errorf("ExprType(1) = %+v, want Number", got)
	}
}

// TestInferPartialAdditiveIsNullableNumber covers scenario S9: "1 +"
// leaves the right operand an open context, so Infer must fall into
// partialResult's singleton branch. The result is Number, but nullable
// regardless of the left operand's own nullability — the still-unread
// right operand could always turn out to be a nullable expression.
func TestInferPartialAdditiveIsNullableNumber(t *testing.T) {
	src := "1 + "
	result := parser.Parse([]byte(src))
	if result.Err == nil {
		t.Fatalf("Parse(%q) unexpectedly succeeded", src)
	}
	ns := result.Nodes()
	pos := token.Position{CodeUnit: len(src), LineCodeUnit: len(src), LineNumber: 1}
	active, ok := activenode.Resolve(ns, pos)
	if !ok {
		t.Fatalf("Resolve failed")
	}

	// Every precedence level between LogicalOr and Additive wraps the
	// chain in its own binOp context, but only Additive actually matched
	// an operator here — the levels above it are empty pass-through
	// contexts (0 or 1 children) left dangling by the failed parse, and
	// the levels below it (Multiplicative, Metadata) are the still-open
	// right operand. Pick the Additive node specifically rather than the
	// first ast.IsBinOp match in ancestry, which would land on the
	// right operand's still-open Metadata context instead.
	var binOp xnode.Node
	found := false
	for _, n := range active.Ancestry {
		if n.Kind() == ast.KindAdditiveExpression {
			binOp = n
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no AdditiveExpression node in ancestry: %+v", active.Ancestry)
	}

	got := Infer(ns.Collection, binOp)
	if got.Tag != TagPrimitive || got.Primitive != KindNumber || !got.IsNullable {
		t.Errorf("Infer(%q) = %+v, want nullable Number", src, got)
	}
}

func TestInferRecordCombineMergesFieldsRightBiased(t *testing.T) {
	node, coll := rootBinOp(t, "[a = 1] & [a = 2, b = 3]")
	got := Infer(coll, node)
	if got.Tag != TagDefinedRecord {
		t.Fatalf("Infer([a=1]&[a=2,b=3]) = %+v, want DefinedRecord", got)
	}
	a, ok := got.Fields["a"]
	if !ok || a.Primitive != KindNumber {
		t.Errorf("field a = %+v, want Number", a)
	}
	b, ok := got.Fields["b"]
	if !ok || b.Primitive != KindNumber {
		t.Errorf("field b = %+v, want Number", b)
	}
}

func TestInferListSelfCombine(t *testing.T) {
	node, coll := rootBinOp(t, "{1} & {2}")
	got := Infer(coll, node)
	if got.Tag != TagPrimitive || got.Primitive != KindList {
		t.Errorf("Infer({1}&{2}) = %+v, want List", got)
	}
}

func TestTTypeConstructors(t *testing.T) {
	u := Unknown()
	if u.Tag != TagUnknown {
		t.Errorf("Unknown().Tag = %v, want TagUnknown", u.Tag)
	}
	p := Primitive(KindNumber, true)
	if p.Tag != TagPrimitive || p.Primitive != KindNumber || !p.IsNullable {
		t.Errorf("Primitive(Number, true) = %+v", p)
	}
	union := AnyUnionOf([]PrimitiveKind{KindNumber, KindText})
	if union.Tag != TagAnyUnion || len(union.AnyUnion) != 2 {
		t.Errorf("AnyUnionOf = %+v", union)
	}
}

func TestIsPrimitiveKind(t *testing.T) {
	p := Primitive(KindNumber, false)
	if !p.IsPrimitiveKind(KindNumber) {
		t.Errorf("IsPrimitiveKind(Number) = false, want true")
	}
	if p.IsPrimitiveKind(KindText) {
		t.Errorf("IsPrimitiveKind(Text) = true, want false")
	}
}
