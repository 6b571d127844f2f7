package lexer

import (
	"github.com/rivo/uniseg"

	"github.com/dhamidi/mq/token"
)

// LexerSnapshot is the immutable, indexable token stream C4 (Parser
// Framework) reads from. It is the concrete implementation of the
// "Lexer / grapheme splitter" collaborator: the Parser Framework only
// ever calls the methods below, never the live Lexer.
type LexerSnapshot struct {
	source []byte
	tokens []token.Token
	// lineStarts[i] is the codeUnit offset of the first byte of line i+1.
	lineStarts []int
}

func newSnapshot(source []byte, tokens []token.Token) *LexerSnapshot {
	s := &LexerSnapshot{source: source, tokens: tokens}
	s.lineStarts = []int{0}
	for i, b := range source {
		if b == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// Tokens returns the full ordered token slice, including whitespace and
// comment tokens.
func (s *LexerSnapshot) Tokens() []token.Token { return s.tokens }

// TokenAt returns the i'th token.
func (s *LexerSnapshot) TokenAt(i int) token.Token { return s.tokens[i] }

// Len is the number of tokens in the snapshot, including the trailing EOF.
func (s *LexerSnapshot) Len() int { return len(s.tokens) }

// Source returns the original source bytes the snapshot was built from.
func (s *LexerSnapshot) Source() []byte { return s.source }

// GraphemePositionStartFrom returns the number of grapheme clusters between
// the start of tok's line and tok's start column. M source may contain
// combining characters or multi-byte sequences that editors count as a
// single visual column; code-unit offsets alone are not grapheme-accurate.
func (s *LexerSnapshot) GraphemePositionStartFrom(tok token.Token) int {
	return s.graphemeColumn(tok.Span.Start)
}

// ColumnNumberStartFrom is an alias kept for symmetry with
// GraphemePositionStartFrom; both describe the token's start position,
// the only one the inspection algorithms ever need.
func (s *LexerSnapshot) ColumnNumberStartFrom(tok token.Token) int {
	return s.graphemeColumn(tok.Span.Start)
}

// PositionAt builds a token.Position from a 1-based line number and a
// 0-based code-unit column, the shape LSP position parameters and this
// module's CLI flags both use.
func (s *LexerSnapshot) PositionAt(line, column int) token.Position {
	lineStart := 0
	if line-1 >= 0 && line-1 < len(s.lineStarts) {
		lineStart = s.lineStarts[line-1]
	}
	return token.Position{
		CodeUnit:     lineStart + column,
		LineCodeUnit: column,
		LineNumber:   line,
	}
}

func (s *LexerSnapshot) graphemeColumn(pos token.Position) int {
	lineStart := 0
	if pos.LineNumber-1 < len(s.lineStarts) {
		lineStart = s.lineStarts[pos.LineNumber-1]
	}
	end := pos.CodeUnit
	if end > len(s.source) {
		end = len(s.source)
	}
	if end <= lineStart {
		return 0
	}
	line := s.source[lineStart:end]
	gr := uniseg.NewGraphemes(string(line))
	count := 0
	for gr.Next() {
		count++
	}
	return count
}
