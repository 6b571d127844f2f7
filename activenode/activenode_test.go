package activenode

import (
	"testing"

	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/parser"
	"github.com/dhamidi/mq/token"
)

func TestResolveOnIdentifierInsideSuccessfulParse(t *testing.T) {
	src := "let x = 1 in x"
	result := parser.Parse([]byte(src))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}

	// Caret right after the trailing "x" (the body identifier).
	pos := token.Position{CodeUnit: len(src), LineCodeUnit: len(src), LineNumber: 1}
	an, ok := Resolve(result.Nodes(), pos)
	if !ok {
		t.Fatalf("Resolve failed")
	}
	if an.LeafKind != OnAstNode && an.LeafKind != AfterAstNode {
		t.Errorf("LeafKind = %v, want On/AfterAstNode", an.LeafKind)
	}
	if an.Ancestry[0].Kind() != ast.KindIdentifier {
		t.Errorf("Ancestry[0].Kind() = %s, want Identifier", an.Ancestry[0].Kind())
	}
	if an.MaybeIdentifierUnderPosition == nil || an.MaybeIdentifierUnderPosition.Literal != "x" {
		t.Errorf("MaybeIdentifierUnderPosition = %+v, want identifier \"x\"", an.MaybeIdentifierUnderPosition)
	}
}

func TestResolveAtOpenContextAfterFailedParse(t *testing.T) {
	src := "let x = 1 a"
	result := parser.Parse([]byte(src))
	if result.Ok != nil {
		t.Fatalf("Parse unexpectedly succeeded")
	}

	pos := token.Position{CodeUnit: len(src), LineCodeUnit: len(src), LineNumber: 1}
	an, ok := Resolve(result.Nodes(), pos)
	if !ok {
		t.Fatalf("Resolve failed")
	}
	if an.LeafKind != ContextNode {
		t.Errorf("LeafKind = %v, want ContextNode", an.LeafKind)
	}
	foundOpenLet := false
	for _, n := range an.Ancestry {
		if n.IsContext() && n.Kind() == ast.KindLetExpression {
			foundOpenLet = true
		}
	}
	if !foundOpenLet {
		t.Errorf("expected an open LetExpression context in ancestry, got %+v", an.Ancestry)
	}
}

func TestResolveInsideInvokeExpressionHeadIncludesInvokeInAncestry(t *testing.T) {
	src := "foo(1)"
	result := parser.Parse([]byte(src))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}

	// Caret inside "fo|o", the head expression of the InvokeExpression
	// built around it — InvokeExpression must show up in the ancestry
	// chain here, not just in the head's decorative Children slice.
	pos := token.Position{CodeUnit: 2, LineCodeUnit: 2, LineNumber: 1}
	an, ok := Resolve(result.Nodes(), pos)
	if !ok {
		t.Fatalf("Resolve failed")
	}

	foundInvoke := false
	for _, n := range an.Ancestry {
		if n.Kind() == ast.KindInvokeExpression {
			foundInvoke = true
		}
	}
	if !foundInvoke {
		t.Errorf("expected InvokeExpression in ancestry for caret inside its head, got %+v", an.Ancestry)
	}
}

func TestResolveOnEmptyDocumentReturnsOpenContext(t *testing.T) {
	result := parser.Parse([]byte(""))
	if result.Ok != nil {
		t.Fatalf("Parse of empty document unexpectedly succeeded")
	}
	an, ok := Resolve(result.Nodes(), token.Position{})
	if !ok {
		t.Fatalf("Resolve failed on empty document")
	}
	if an.LeafKind != ContextNode {
		t.Errorf("LeafKind = %v, want ContextNode", an.LeafKind)
	}
}
