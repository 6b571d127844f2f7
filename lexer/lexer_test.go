package lexer

import (
	"testing"

	"github.com/dhamidi/mq/token"
)

func significant(tokens []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Whitespace, token.LineComment, token.BlockComment:
			continue
		}
		out = append(out, tok)
	}
	return out
}

func TestTokenizeLetExpression(t *testing.T) {
	snap := Tokenize([]byte("let x = 1 in x"))
	kinds := significant(snap.Tokens())
	want := []token.Kind{
		token.KwLet, token.Identifier, token.Equal, token.NumericLiteral,
		token.KwIn, token.Identifier, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d significant tokens, want %d: %+v", len(kinds), len(want), kinds)
	}
	for i, tok := range kinds {
		if tok.Kind != want[i] {
			t.Errorf("token[%d].Kind = %s, want %s", i, tok.Kind, want[i])
		}
	}
}

func TestTokenizeQuotedIdentifier(t *testing.T) {
	snap := Tokenize([]byte(`#"my var"`))
	kinds := significant(snap.Tokens())
	if len(kinds) != 2 || kinds[0].Kind != token.QuotedIdentifier {
		t.Fatalf("got %+v, want [QuotedIdentifier, EOF]", kinds)
	}
	if kinds[0].Literal != `#"my var"` {
		t.Errorf("Literal = %q", kinds[0].Literal)
	}
}

func TestTokenizeNumericLiteralVariants(t *testing.T) {
	tests := []string{"1", "1.5", "1e10", "1.5e-3", "0x1F"}
	for _, src := range tests {
		snap := Tokenize([]byte(src))
		kinds := significant(snap.Tokens())
		if len(kinds) != 2 || kinds[0].Kind != token.NumericLiteral {
			t.Errorf("Tokenize(%q) = %+v, want single NumericLiteral", src, kinds)
			continue
		}
		if kinds[0].Literal != src {
			t.Errorf("Tokenize(%q) literal = %q", src, kinds[0].Literal)
		}
	}
}

func TestTokenizeTextLiteralWithEscapedQuote(t *testing.T) {
	snap := Tokenize([]byte(`"a""b"`))
	kinds := significant(snap.Tokens())
	if len(kinds) != 2 || kinds[0].Kind != token.TextLiteral {
		t.Fatalf("got %+v, want single TextLiteral", kinds)
	}
	if kinds[0].Literal != `"a""b"` {
		t.Errorf("Literal = %q", kinds[0].Literal)
	}
}

func TestTokenizeOperators(t *testing.T) {
	snap := Tokenize([]byte("<= <> => .. <"))
	kinds := significant(snap.Tokens())
	want := []token.Kind{
		token.LessThanOrEqual, token.NotEqual, token.FatArrow, token.Ellipsis, token.LessThan, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(kinds), len(want), kinds)
	}
	for i, tok := range kinds {
		if tok.Kind != want[i] {
			t.Errorf("token[%d].Kind = %s, want %s", i, tok.Kind, want[i])
		}
	}
}

func TestTokenizeTracksLineNumbers(t *testing.T) {
	snap := Tokenize([]byte("let\nx = 1"))
	kinds := significant(snap.Tokens())
	if kinds[0].Span.Start.LineNumber != 1 {
		t.Errorf("first token line = %d, want 1", kinds[0].Span.Start.LineNumber)
	}
	var foundLine2 bool
	for _, tok := range kinds {
		if tok.Kind == token.Identifier && tok.Literal == "x" {
			foundLine2 = tok.Span.Start.LineNumber == 2
		}
	}
	if !foundLine2 {
		t.Errorf("expected identifier 'x' on line 2")
	}
}

func TestLexerSnapshotPositionAt(t *testing.T) {
	snap := Tokenize([]byte("let x = 1\nin x"))
	pos := snap.PositionAt(2, 3)
	if pos.LineNumber != 2 || pos.LineCodeUnit != 3 {
		t.Errorf("PositionAt(2,3) = %+v", pos)
	}
	if pos.CodeUnit != len("let x = 1\n")+3 {
		t.Errorf("PositionAt(2,3).CodeUnit = %d, want %d", pos.CodeUnit, len("let x = 1\n")+3)
	}
}
