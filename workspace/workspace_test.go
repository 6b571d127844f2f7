package workspace

import (
	"testing"

	"github.com/dhamidi/mq/typeinfer"
)

func TestUpdateGetRemove(t *testing.T) {
	ws := New()
	ws.Update("file:///a.pq", "1 + 2")

	doc, ok := ws.Get("file:///a.pq")
	if !ok || doc.Text != "1 + 2" {
		t.Fatalf("Get() = %+v, %v", doc, ok)
	}

	ws.Remove("file:///a.pq")
	if _, ok := ws.Get("file:///a.pq"); ok {
		t.Errorf("document still present after Remove")
	}
}

func TestPositionAtUnknownDocument(t *testing.T) {
	ws := New()
	if _, ok := ws.PositionAt("missing", 1, 0); ok {
		t.Errorf("PositionAt on missing document = true, want false")
	}
}

func TestCompletionsAtStartOfDocument(t *testing.T) {
	ws := New()
	ws.Update("file:///a.pq", "")
	pos, ok := ws.PositionAt("file:///a.pq", 1, 0)
	if !ok {
		t.Fatalf("PositionAt failed")
	}
	suggestions, ok := ws.CompletionsAt("file:///a.pq", pos)
	if !ok {
		t.Fatalf("CompletionsAt failed")
	}
	if len(suggestions.Keywords) == 0 {
		t.Errorf("CompletionsAt on empty document returned no keywords")
	}
}

func TestTypeAtInsideArithmeticExpression(t *testing.T) {
	ws := New()
	src := "1 + 2"
	ws.Update("file:///b.pq", src)
	pos, ok := ws.PositionAt("file:///b.pq", 1, len(src))
	if !ok {
		t.Fatalf("PositionAt failed")
	}
	got, ok := ws.TypeAt("file:///b.pq", pos)
	if !ok {
		t.Fatalf("TypeAt failed")
	}
	if got.Tag != typeinfer.TagPrimitive || got.Primitive != typeinfer.KindNumber {
		t.Errorf("TypeAt(1 + 2) = %+v, want Number", got)
	}
}

func TestTypeAtWithoutEnclosingBinOpReturnsFalse(t *testing.T) {
	ws := New()
	src := "1"
	ws.Update("file:///c.pq", src)
	pos, _ := ws.PositionAt("file:///c.pq", 1, len(src))
	if _, ok := ws.TypeAt("file:///c.pq", pos); ok {
		t.Errorf("TypeAt(1) = true, want false (no enclosing binary op)")
	}
}
