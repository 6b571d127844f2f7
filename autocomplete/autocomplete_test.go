package autocomplete

import (
	"testing"

	"github.com/dhamidi/mq/activenode"
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/parser"
	"github.com/dhamidi/mq/token"
	"github.com/dhamidi/mq/xnode"
)

func TestFilterKeywordsByPrefix(t *testing.T) {
	kws := []token.Kind{token.KwAnd, token.KwAs, token.KwIs}
	got := filterKeywordsByPrefix(kws, "a")
	if len(got) != 2 || got[0] != token.KwAnd || got[1] != token.KwAs {
		t.Errorf("filterKeywordsByPrefix = %v, want [and, as]", got)
	}
	if got := filterKeywordsByPrefix(kws, ""); len(got) != 3 {
		t.Errorf("filterKeywordsByPrefix with empty prefix = %v, want all 3", got)
	}
}

func TestDedupKeywords(t *testing.T) {
	got := dedupKeywords([]token.Kind{token.KwAnd, token.KwAs, token.KwAnd})
	if len(got) != 2 {
		t.Errorf("dedupKeywords = %v, want 2 elements", got)
	}
}

func TestFilterPrimitiveTypesByPrefix(t *testing.T) {
	got := filterPrimitiveTypesByPrefix(token.PrimitiveTypeNames, "da")
	if len(got) != 3 || got[0] != "date" || got[1] != "datetime" || got[2] != "datetimezone" {
		t.Errorf("filterPrimitiveTypesByPrefix(\"da\") = %v, want [date datetime datetimezone]", got)
	}
}

func TestKeywordsOnEmptyDocumentOffersStartOfDocumentKeywords(t *testing.T) {
	result := parser.Parse([]byte(""))
	an := &activenode.ActiveNode{}
	got := Keywords(result.Nodes().Collection, an, nil)
	if len(got) != len(startOfDocumentKeywords) {
		t.Fatalf("Keywords() = %v, want %v", got, startOfDocumentKeywords)
	}
}

func TestPrimitiveTypesTriggeredInsideOpenAsExpression(t *testing.T) {
	src := "(x as "
	result := parser.Parse([]byte(src))
	if result.Ok != nil {
		t.Fatalf("Parse unexpectedly succeeded")
	}
	pos := token.Position{CodeUnit: len(src), LineCodeUnit: len(src), LineNumber: 1}
	an, ok := activenode.Resolve(result.Nodes(), pos)
	if !ok {
		t.Fatalf("Resolve failed")
	}

	got := PrimitiveTypes(result.Nodes().Collection, an, nil)
	if len(got) != len(token.PrimitiveTypeNames) {
		t.Errorf("PrimitiveTypes() = %v, want the full primitive type list", got)
	}

	suggestions := Complete(result.Nodes().Collection, an, nil)
	if len(suggestions.PrimitiveTypes) != len(token.PrimitiveTypeNames) {
		t.Errorf("Complete().PrimitiveTypes = %v", suggestions.PrimitiveTypes)
	}
}

func TestCompleteInsideInvokeExpressionHeadSeesInvokeInAncestry(t *testing.T) {
	src := "foo(1)"
	result := parser.Parse([]byte(src))
	if result.Err != nil {
		t.Fatalf("Parse failed: %v", result.Err)
	}

	// Caret inside "fo|o", the head expression of "foo(1)"'s
	// InvokeExpression — the ancestry chain and the head's attribute
	// index must both come from the real parent/child graph, not the
	// InvokeExpression node's decorative Children slice.
	pos := token.Position{CodeUnit: 2, LineCodeUnit: 2, LineNumber: 1}
	an, ok := activenode.Resolve(result.Nodes(), pos)
	if !ok {
		t.Fatalf("Resolve failed")
	}

	foundInvoke := false
	for i, n := range an.Ancestry {
		if n.Kind() != ast.KindInvokeExpression {
			continue
		}
		foundInvoke = true
		head, ok := xnode.MaybeNthPrevious(an.Ancestry, i, 1, nil)
		if !ok {
			t.Fatalf("no ancestry entry below InvokeExpression")
		}
		idx, ok := xnode.AttributeIndex(result.Nodes().Collection, head.ID())
		if !ok || idx != 0 {
			t.Errorf("AttributeIndex(head) = %d (ok=%v), want 0", idx, ok)
		}
	}
	if !foundInvoke {
		t.Fatalf("expected InvokeExpression in ancestry, got %+v", an.Ancestry)
	}

	// Must not panic when run through the full completion pipeline either.
	_ = Complete(result.Nodes().Collection, an, nil)
}

func TestPrimitiveTypesAbsentOutsideTypeSlot(t *testing.T) {
	src := "1 + "
	result := parser.Parse([]byte(src))
	if result.Ok != nil {
		t.Fatalf("Parse unexpectedly succeeded")
	}
	pos := token.Position{CodeUnit: len(src), LineCodeUnit: len(src), LineNumber: 1}
	an, ok := activenode.Resolve(result.Nodes(), pos)
	if !ok {
		t.Fatalf("Resolve failed")
	}
	if got := PrimitiveTypes(result.Nodes().Collection, an, nil); got != nil {
		t.Errorf("PrimitiveTypes() = %v, want nil", got)
	}
}
