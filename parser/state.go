// Package parser implements the M-language recursive-descent driver:
// the Parser Framework (C4), grounded on java/parser/parser.go
// (peek/peekN/advance/check/expect, a flat Parser value with no
// subclassing) and adapted to drive the nodemap.State id-map/context
// machinery instead of building a pointer tree directly.
package parser

import (
	"fmt"

	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/cancel"
	"github.com/dhamidi/mq/lexer"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/perror"
	"github.com/dhamidi/mq/token"
)

// State is "Parser State": settings, the token snapshot, and
// the context-manager bundle a production reads and mutates.
type State struct {
	Settings   *Settings
	Snapshot   *lexer.LexerSnapshot
	Cancel     cancel.Token
	Nodes      *nodemap.State
	TokenIndex int
}

// NewState wires a fresh parser state over src, ready to read a Document.
func NewState(src []byte, settings *Settings) *State {
	if settings == nil {
		settings = NewSettings()
	}
	snapshot := lexer.Tokenize(src)
	return &State{
		Settings: settings,
		Snapshot: snapshot,
		Cancel:   settings.CancelToken,
		Nodes:    nodemap.NewState(ast.KindDocument),
	}
}

func isTrivia(k token.Kind) bool {
	return k == token.Whitespace || k == token.LineComment || k == token.BlockComment
}

// significantIndex returns the index of the first token at or after i that
// is not whitespace or a comment (the lexer keeps those in the snapshot).
func (s *State) significantIndex(i int) int {
	for i < s.Snapshot.Len() && isTrivia(s.Snapshot.TokenAt(i).Kind) {
		i++
	}
	return i
}

func (s *State) peek() token.Token {
	idx := s.significantIndex(s.TokenIndex)
	if idx >= s.Snapshot.Len() {
		return token.Token{Kind: token.EOF}
	}
	return s.Snapshot.TokenAt(idx)
}

func (s *State) peekN(n int) token.Token {
	idx := s.significantIndex(s.TokenIndex)
	for ; n > 0 && idx < s.Snapshot.Len(); n-- {
		idx = s.significantIndex(idx + 1)
	}
	if idx >= s.Snapshot.Len() || idx < 0 {
		return token.Token{Kind: token.EOF}
	}
	return s.Snapshot.TokenAt(idx)
}

func (s *State) advance() token.Token {
	idx := s.significantIndex(s.TokenIndex)
	tok := s.peek()
	if tok.Kind != token.EOF {
		s.TokenIndex = idx + 1
	}
	return tok
}

func (s *State) check(kind token.Kind) bool { return s.peek().Kind == kind }

func (s *State) atEOF() bool { return s.peek().Kind == token.EOF }

// checkCancellation polls the cancellation token, the single
// cooperative yield point describes; called at the entry of
// every production.
func (s *State) checkCancellation() error {
	if s.Cancel == nil {
		return nil
	}
	if err := s.Cancel.Check(); err != nil {
		return &perror.CancellationError{Err: err}
	}
	return nil
}

// expect consumes and returns the current token if it matches kind,
// otherwise raises ExpectedTokenKindError without advancing.
func (s *State) expect(kind token.Kind) (token.Token, error) {
	tok := s.peek()
	if tok.Kind != kind {
		return token.Token{}, &perror.ExpectedTokenKindError{Expected: kind, Got: tok}
	}
	return s.advance(), nil
}

// expectAny is expect over a set of alternative kinds.
func (s *State) expectAny(kinds ...token.Kind) (token.Token, error) {
	tok := s.peek()
	for _, k := range kinds {
		if tok.Kind == k {
			return s.advance(), nil
		}
	}
	return token.Token{}, &perror.ExpectedAnyTokenKindError{Expected: kinds, Got: tok}
}

// isContextualKeyword reports whether the current token is a plain
// identifier spelling one of M's contextual keywords ("optional",
// "nullable"), which (unlike "let" or "if") are never reserved.
func (s *State) isContextualKeyword(literal string) bool {
	tok := s.peek()
	return tok.Kind == token.Identifier && tok.Literal == literal
}

// backup/rollback wrap nodemap.State's fast-state-backup algorithm
// with the token cursor it also needs to restore.
func (s *State) backup() nodemap.FastStateBackup { return s.Nodes.Backup(s.TokenIndex) }

func (s *State) rollback(b nodemap.FastStateBackup) {
	s.TokenIndex = s.Nodes.Apply(b)
}

// leaf starts and immediately ends a context of kind around a single
// already-consumed token — the production pattern every terminal AST
// kind (Identifier, Constant, LiteralExpression, PrimitiveType) shares.
func (s *State) leaf(kind ast.Kind, tok token.Token) (int, error) {
	id := s.Nodes.StartContext(kind).ID
	node := &ast.Node{
		Kind:  kind,
		Token: &tok,
		Span:  tok.Span,
	}
	if _, err := s.Nodes.EndContext(node); err != nil {
		return 0, &perror.InvariantError{Message: err.Error()}
	}
	return id, nil
}

// consumeConstant advances past a token expected to be one of kinds and
// wraps it as a KindConstant leaf — used for fixed punctuation/keyword
// children (e.g. the "=" in an IdentifierPairedExpression) that aren't
// interesting as anything but a terminal marker in the tree.
func (s *State) consumeConstant(kinds ...token.Kind) (int, error) {
	tok, err := s.expectAny(kinds...)
	if err != nil {
		return 0, err
	}
	return s.leaf(ast.KindConstant, tok)
}

// spanFrom widens span to cover every token consumed since start,
// using the last-consumed token's end position.
func (s *State) spanFrom(startTok token.Token) token.Span {
	end := startTok.Span.End
	if s.TokenIndex > 0 {
		end = s.Snapshot.TokenAt(s.TokenIndex - 1).Span.End
	}
	return token.Span{Start: startTok.Span.Start, End: end}
}

func (s *State) endContext(kind ast.Kind, children []int, startTok token.Token) (int, error) {
	node := &ast.Node{
		Kind:     kind,
		Children: children,
		Span:     s.spanFrom(startTok),
	}
	// EndContext returns the parent context; the promoted node keeps the
	// id of the context being closed.
	id := s.Nodes.MaybeCurrentContextID
	if _, err := s.Nodes.EndContext(node); err != nil {
		return 0, &perror.InvariantError{Message: fmt.Sprintf("endContext(%s): %v", kind, err)}
	}
	return id, nil
}
