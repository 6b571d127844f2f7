package ast

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindDocument, "Document"},
		{KindLetExpression, "LetExpression"},
		{KindAdditiveExpression, "AdditiveExpression"},
		{Kind(9999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestIsBinOp(t *testing.T) {
	for _, k := range []Kind{
		KindLogicalOrExpression, KindLogicalAndExpression, KindAsExpression,
		KindIsExpression, KindEqualityExpression, KindRelationalExpression,
		KindAdditiveExpression, KindMultiplicativeExpression, KindMetadataExpression,
	} {
		if !IsBinOp(k) {
			t.Errorf("IsBinOp(%s) = false, want true", k)
		}
	}
	for _, k := range []Kind{KindDocument, KindIdentifier, KindUnaryExpression} {
		if IsBinOp(k) {
			t.Errorf("IsBinOp(%s) = true, want false", k)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, k := range []Kind{KindIdentifier, KindConstant, KindLiteralExpression, KindPrimitiveType} {
		if !IsTerminal(k) {
			t.Errorf("IsTerminal(%s) = false, want true", k)
		}
	}
	for _, k := range []Kind{KindDocument, KindAdditiveExpression, KindLetExpression} {
		if IsTerminal(k) {
			t.Errorf("IsTerminal(%s) = true, want false", k)
		}
	}
}
