package perror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dhamidi/mq/token"
)

func TestCancellationErrorUnwraps(t *testing.T) {
	inner := errors.New("deadline exceeded")
	err := &CancellationError{Err: inner}
	if !errors.Is(err, inner) {
		t.Errorf("errors.Is(err, inner) = false, want true")
	}
	if err.Error() == "" {
		t.Errorf("Error() is empty")
	}
}

func TestUnknownErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &UnknownError{Err: inner}
	if !errors.Is(err, inner) {
		t.Errorf("errors.Is(err, inner) = false, want true")
	}
}

func TestInvariantErrorMessage(t *testing.T) {
	err := &InvariantError{Message: "endContext on wrong kind"}
	want := "parser invariant violated: endContext on wrong kind"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExpectedTokenKindErrorFormatsGotToken(t *testing.T) {
	got := token.Token{Kind: token.KwLet, Literal: "let"}
	err := &ExpectedTokenKindError{Expected: token.Identifier, Got: got}
	msg := err.Error()
	if msg == "" {
		t.Fatalf("Error() is empty")
	}
	want := fmt.Sprintf("expected %s, got %s %q at %d:%d", token.Identifier, got.Kind, got.Literal, got.Span.Start.LineNumber, got.Span.Start.LineCodeUnit)
	if msg != want {
		t.Errorf("Error() = %q, want %q", msg, want)
	}
}

func TestErrorsAsDistinguishesTaxonomy(t *testing.T) {
	var err error = &UnterminatedParenthesesError{Open: token.Token{Kind: token.LParen}}

	var paren *UnterminatedParenthesesError
	if !errors.As(err, &paren) {
		t.Errorf("errors.As into *UnterminatedParenthesesError failed")
	}

	var bracket *UnterminatedBracketError
	if errors.As(err, &bracket) {
		t.Errorf("errors.As into *UnterminatedBracketError unexpectedly succeeded")
	}
}
