// Package perror defines the closed error taxonomy the Parser Framework
// (C4) raises. A single error struct attached directly to a node isn't
// enough here: cancellation, invariant violations, and half a dozen
// distinct parse-failure shapes all need to be distinguishable with
// errors.As, so each case here is its own Go type implementing error,
// wrapped with the usual fmt.Errorf("...: %w", err) style at call sites.
package perror

import (
	"fmt"

	"github.com/dhamidi/mq/token"
)

// CancellationError wraps the error returned by a cancel.Token's Check.
type CancellationError struct {
	Err error
}

func (e *CancellationError) Error() string { return fmt.Sprintf("parse cancelled: %v", e.Err) }
func (e *CancellationError) Unwrap() error { return e.Err }

// InvariantError marks a condition the Parser Framework's own bookkeeping
// promised could never happen (e.g. endContext on a context of the wrong
// kind). It is always a defect in the parser itself, never a reflection
// of malformed input.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string { return "parser invariant violated: " + e.Message }

// UnknownError wraps any error a collaborator (lexer, token provider)
// returned that the parser doesn't otherwise recognize.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string { return fmt.Sprintf("unknown parse error: %v", e.Err) }
func (e *UnknownError) Unwrap() error { return e.Err }

// ExpectedTokenKindError reports that a single, specific token kind was
// required at the current position but a different one was found.
type ExpectedTokenKindError struct {
	Expected token.Kind
	Got      token.Token
}

func (e *ExpectedTokenKindError) Error() string {
	return fmt.Sprintf("expected %s, got %s %q at %d:%d", e.Expected, e.Got.Kind, e.Got.Literal, e.Got.Span.Start.LineNumber, e.Got.Span.Start.LineCodeUnit)
}

// ExpectedAnyTokenKindError reports that one of several alternative token
// kinds was required (e.g. a binary-operator token) but none matched.
type ExpectedAnyTokenKindError struct {
	Expected []token.Kind
	Got      token.Token
}

func (e *ExpectedAnyTokenKindError) Error() string {
	return fmt.Sprintf("expected one of %v, got %s %q at %d:%d", e.Expected, e.Got.Kind, e.Got.Literal, e.Got.Span.Start.LineNumber, e.Got.Span.Start.LineCodeUnit)
}

// ExpectedCsvContinuationError reports a malformed comma-separated list:
// neither a continuation comma nor the list's terminator was found.
type ExpectedCsvContinuationError struct {
	Got token.Token
}

func (e *ExpectedCsvContinuationError) Error() string {
	return fmt.Sprintf("expected ',' or list terminator, got %s %q at %d:%d", e.Got.Kind, e.Got.Literal, e.Got.Span.Start.LineNumber, e.Got.Span.Start.LineCodeUnit)
}

// UnusedTokensRemainError reports that a top-level parse finished before
// the token stream was exhausted.
type UnusedTokensRemainError struct {
	FirstUnused token.Token
}

func (e *UnusedTokensRemainError) Error() string {
	return fmt.Sprintf("unused tokens remain starting at %s %q (%d:%d)", e.FirstUnused.Kind, e.FirstUnused.Literal, e.FirstUnused.Span.Start.LineNumber, e.FirstUnused.Span.Start.LineCodeUnit)
}

// UnterminatedParenthesesError reports a '(' with no matching ')' before EOF.
type UnterminatedParenthesesError struct {
	Open token.Token
}

func (e *UnterminatedParenthesesError) Error() string {
	return fmt.Sprintf("unterminated parentheses opened at %d:%d", e.Open.Span.Start.LineNumber, e.Open.Span.Start.LineCodeUnit)
}

// UnterminatedBracketError reports a '[' with no matching ']' before EOF.
type UnterminatedBracketError struct {
	Open token.Token
}

func (e *UnterminatedBracketError) Error() string {
	return fmt.Sprintf("unterminated bracket opened at %d:%d", e.Open.Span.Start.LineNumber, e.Open.Span.Start.LineCodeUnit)
}

// InvalidPrimitiveTypeError reports an identifier in primitive-type
// position that doesn't name any of the known primitive types.
type InvalidPrimitiveTypeError struct {
	Got token.Token
}

func (e *InvalidPrimitiveTypeError) Error() string {
	return fmt.Sprintf("%q is not a valid primitive type at %d:%d", e.Got.Literal, e.Got.Span.Start.LineNumber, e.Got.Span.Start.LineCodeUnit)
}

// RequiredParameterAfterOptionalParameterError reports a function
// parameter list where a required parameter follows an optional one.
type RequiredParameterAfterOptionalParameterError struct {
	Parameter token.Token
}

func (e *RequiredParameterAfterOptionalParameterError) Error() string {
	return fmt.Sprintf("required parameter %q cannot follow an optional parameter (%d:%d)", e.Parameter.Literal, e.Parameter.Span.Start.LineNumber, e.Parameter.Span.Start.LineCodeUnit)
}
