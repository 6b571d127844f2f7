package nodemap

import (
	"testing"

	"github.com/dhamidi/mq/ast"
)

func TestStartEndContextPromotesAndKeepsID(t *testing.T) {
	s := NewState(ast.KindDocument)
	root := s.Root

	child := s.StartContext(ast.KindIdentifier)
	id, err := s.EndContext(&ast.Node{Kind: ast.KindIdentifier})
	if err != nil {
		t.Fatalf("EndContext: %v", err)
	}
	if id != root {
		t.Fatalf("EndContext returned %d, want parent %d", id, root)
	}
	if _, ok := s.Collection.GetContext(child.ID); ok {
		t.Errorf("context %d still present after promotion", child.ID)
	}
	if node, ok := s.Collection.GetAst(child.ID); !ok || node.ID != child.ID {
		t.Errorf("promoted node missing or id changed: %+v, ok=%v", node, ok)
	}
	if !s.Collection.IsLeaf(child.ID) {
		t.Errorf("promoted Identifier node should be a leaf")
	}
}

func TestDeleteContextReparentsChildren(t *testing.T) {
	s := NewState(ast.KindDocument)
	outer := s.StartContext(ast.KindAdditiveExpression)
	inner := s.StartContext(ast.KindIdentifier)
	innerID, err := s.EndContext(&ast.Node{Kind: ast.KindIdentifier})
	if err != nil {
		t.Fatalf("EndContext inner: %v", err)
	}
	if innerID != outer.ID {
		t.Fatalf("current context after promoting inner = %d, want %d", innerID, outer.ID)
	}

	if _, err := s.DeleteContext(outer.ID, false); err != nil {
		t.Fatalf("DeleteContext: %v", err)
	}

	parent, ok := s.Collection.GetParent(inner.ID)
	if !ok || parent != s.Root {
		t.Errorf("child reparented to %d (ok=%v), want root %d", parent, ok, s.Root)
	}
	if _, ok := s.Collection.GetContext(outer.ID); ok {
		t.Errorf("deleted context %d still present", outer.ID)
	}
}

func TestBackupApplyRollsBackSpeculativeIDs(t *testing.T) {
	s := NewState(ast.KindDocument)
	backup := s.Backup(5)

	ctx := s.StartContext(ast.KindIdentifier)
	if _, err := s.EndContext(&ast.Node{Kind: ast.KindIdentifier}); err != nil {
		t.Fatalf("EndContext: %v", err)
	}

	tokenIndex := s.Apply(backup)
	if tokenIndex != 5 {
		t.Errorf("Apply returned tokenIndex %d, want 5", tokenIndex)
	}
	if s.idCounter != backup.IDCounter {
		t.Errorf("idCounter = %d, want %d", s.idCounter, backup.IDCounter)
	}
	if _, ok := s.Collection.GetAst(ctx.ID); ok {
		t.Errorf("rolled-back node %d still present", ctx.ID)
	}
	if s.MaybeCurrentContextID != s.Root {
		t.Errorf("MaybeCurrentContextID = %d, want root %d", s.MaybeCurrentContextID, s.Root)
	}
}
