package parser

import (
	"testing"

	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
)

func TestParseSimpleLetExpressionSucceeds(t *testing.T) {
	result := Parse([]byte("let x = 1 in x"))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	root, ok := result.Ok.Nodes.GetAst(result.Ok.Root)
	if !ok || root.Kind != ast.KindDocument {
		t.Fatalf("root = %+v (ok=%v), want Document", root, ok)
	}
}

func TestParseTrailingIdentifierLeavesLetExpressionOpen(t *testing.T) {
	result := Parse([]byte("let x = 1 a"))
	if result.Ok != nil {
		t.Fatalf("Parse unexpectedly succeeded")
	}
	ns := result.Nodes()
	if ns == nil {
		t.Fatalf("Nodes() is nil for a failed parse")
	}
	if ns.MaybeCurrentContextID == nodemap.NoID {
		t.Fatalf("expected an open context to remain after the failed parse")
	}
	ctx, ok := ns.Collection.GetContext(ns.MaybeCurrentContextID)
	if !ok || ctx.Kind != ast.KindLetExpression {
		t.Errorf("open context = %+v (ok=%v), want LetExpression", ctx, ok)
	}
}

func TestParseUnusedTokensRemainError(t *testing.T) {
	result := Parse([]byte("1 2"))
	if result.Ok != nil {
		t.Fatalf("Parse unexpectedly succeeded")
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	result := Parse([]byte("1 + 2 * 3"))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	doc, _ := result.Ok.Nodes.GetAst(result.Ok.Root)
	addID := doc.Children[0]
	add, ok := result.Ok.Nodes.GetAst(addID)
	if !ok || add.Kind != ast.KindAdditiveExpression {
		t.Fatalf("expected root expression to be AdditiveExpression, got %+v (ok=%v)", add, ok)
	}
	if len(add.Children) != 3 {
		t.Fatalf("AdditiveExpression children = %d, want 3", len(add.Children))
	}
	mulID := add.Children[2]
	mul, ok := result.Ok.Nodes.GetAst(mulID)
	if !ok || mul.Kind != ast.KindMultiplicativeExpression {
		t.Errorf("right operand = %+v (ok=%v), want MultiplicativeExpression", mul, ok)
	}
}

func TestParseEmptyRecordExpression(t *testing.T) {
	result := Parse([]byte("[]"))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	doc, _ := result.Ok.Nodes.GetAst(result.Ok.Root)
	recID := doc.Children[0]
	rec, ok := result.Ok.Nodes.GetAst(recID)
	if !ok || rec.Kind != ast.KindRecordExpression {
		t.Fatalf("expected RecordExpression, got %+v (ok=%v)", rec, ok)
	}
	// Only the "[" and "]" Constant children; no field entries.
	if len(rec.Children) != 2 {
		t.Errorf("empty record has %d children, want 2 (the bracket constants)", len(rec.Children))
	}
}

func TestParseInvokeExpressionReparentsHeadIntoRealChildGraph(t *testing.T) {
	result := Parse([]byte("foo(1)"))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	coll := result.Ok.Nodes
	doc, _ := coll.GetAst(result.Ok.Root)
	invokeID := doc.Children[0]
	invoke, ok := coll.GetAst(invokeID)
	if !ok || invoke.Kind != ast.KindInvokeExpression {
		t.Fatalf("expected InvokeExpression, got %+v (ok=%v)", invoke, ok)
	}
	headID := invoke.Children[0]

	// The decorative ast.Node.Children slice already lists headID first;
	// what matters is that the real graph coll.GetChildIds/GetParent read
	// (ancestry, autocomplete, and type inference all traverse this, not
	// the Children slice) agrees with it.
	realChildren := coll.GetChildIds(invokeID)
	if len(realChildren) == 0 || realChildren[0] != headID {
		t.Fatalf("coll.GetChildIds(invokeID) = %v, want headID %d first", realChildren, headID)
	}
	parent, ok := coll.GetParent(headID)
	if !ok || parent != invokeID {
		t.Errorf("GetParent(headID) = %d (ok=%v), want invokeID %d", parent, ok, invokeID)
	}
}

func TestParseFunctionExpressionWithTypedParameter(t *testing.T) {
	result := Parse([]byte("(x as number) => x"))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}
	doc, _ := result.Ok.Nodes.GetAst(result.Ok.Root)
	fnID := doc.Children[0]
	fn, ok := result.Ok.Nodes.GetAst(fnID)
	if !ok || fn.Kind != ast.KindFunctionExpression {
		t.Fatalf("expected FunctionExpression, got %+v (ok=%v)", fn, ok)
	}
}
