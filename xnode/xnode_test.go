package xnode

import (
	"testing"

	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
)

func TestAssertGetAncestryIsLeafFirst(t *testing.T) {
	s := nodemap.NewState(ast.KindDocument)
	s.StartContext(ast.KindLetExpression)
	leafID, err := s.EndContext(&ast.Node{Kind: ast.KindLetExpression})
	_ = err
	_ = leafID

	identCtx := s.StartContext(ast.KindIdentifier)
	identID, err := s.EndContext(&ast.Node{Kind: ast.KindIdentifier})
	if err != nil {
		t.Fatalf("EndContext: %v", err)
	}

	ancestry := AssertGetAncestry(s.Collection, identCtx.ID)
	if ancestry[0].ID() != identCtx.ID {
		t.Errorf("ancestry[0] = %d, want leaf %d", ancestry[0].ID(), identCtx.ID)
	}
	if ancestry[len(ancestry)-1].ID() != s.Root {
		t.Errorf("ancestry root = %d, want %d", ancestry[len(ancestry)-1].ID(), s.Root)
	}
	_ = identID
}

func TestChildrenXorAndAttributeIndex(t *testing.T) {
	s := nodemap.NewState(ast.KindDocument)
	first := s.StartContext(ast.KindIdentifier)
	firstID, _ := s.EndContext(&ast.Node{Kind: ast.KindIdentifier})
	second := s.StartContext(ast.KindConstant)
	secondID, _ := s.EndContext(&ast.Node{Kind: ast.KindConstant})
	_ = firstID
	_ = secondID

	children := ChildrenXor(s.Collection, s.Root)
	if len(children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(children))
	}
	if children[0].ID() != first.ID || children[1].ID() != second.ID {
		t.Errorf("children out of order: %d, %d", children[0].ID(), children[1].ID())
	}

	idx, ok := AttributeIndex(s.Collection, second.ID)
	if !ok || idx != 1 {
		t.Errorf("AttributeIndex(second) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestMaybeNthPreviousAndNext(t *testing.T) {
	s := nodemap.NewState(ast.KindDocument)
	s.StartContext(ast.KindLetExpression)
	s.EndContext(&ast.Node{Kind: ast.KindLetExpression})
	leafCtx := s.StartContext(ast.KindIdentifier)
	s.EndContext(&ast.Node{Kind: ast.KindIdentifier})

	ancestry := AssertGetAncestry(s.Collection, leafCtx.ID)

	if _, ok := MaybeNthPrevious(ancestry, 0, 1, nil); ok {
		t.Errorf("MaybeNthPrevious from leaf should be absent")
	}
	next, ok := MaybeNthNext(ancestry, 0, 1, nil)
	if !ok || next.ID() != s.Root {
		t.Errorf("MaybeNthNext(leaf, 1) = (%d, %v), want (%d, true)", next.ID(), ok, s.Root)
	}
	if _, ok := MaybeNthNext(ancestry, 0, 1, Kinds(ast.KindLetExpression)); ok {
		t.Errorf("kind-filtered MaybeNthNext should reject Document root as LetExpression")
	}
}
