package lexer_test

import (
	"testing"

	"github.com/aledsdavies/bttree/dsl/lexer"
	"github.com/stretchr/testify/assert"
)

func tokenTypes(src string) []lexer.TokenType {
	l := lexer.New(src)
	var types []lexer.TokenType
	for {
		tok := l.Next()
		types = append(types, tok.Type)
		if tok.Type == lexer.EOF {
			return types
		}
	}
}

func TestKeywordsAndPunctuation(t *testing.T) {
	got := tokenTypes(`tree Main(in x, out y) = Sequence(a <- b, c -> d, e <-> f) { }`)
	assert.Equal(t, []lexer.TokenType{
		lexer.TREE, lexer.IDENT, lexer.LPAREN,
		lexer.IN, lexer.IDENT, lexer.COMMA, lexer.OUT, lexer.IDENT, lexer.RPAREN,
		lexer.EQUALS, lexer.IDENT, lexer.LPAREN,
		lexer.IDENT, lexer.ARROW_IN, lexer.IDENT, lexer.COMMA,
		lexer.IDENT, lexer.ARROW_OUT, lexer.IDENT, lexer.COMMA,
		lexer.IDENT, lexer.ARROW_INOUT, lexer.IDENT,
		lexer.RPAREN, lexer.LBRACE, lexer.RBRACE, lexer.EOF,
	}, got)
}

func TestCommentsAreSkipped(t *testing.T) {
	got := tokenTypes("tree Main = A # a trailing comment\n{ }")
	assert.Equal(t, []lexer.TokenType{
		lexer.TREE, lexer.IDENT, lexer.EQUALS, lexer.IDENT, lexer.LBRACE, lexer.RBRACE, lexer.EOF,
	}, got)
}

func TestStringEscapes(t *testing.T) {
	l := lexer.New(`"line one\nline two\\done"`)
	tok := l.Next()
	assert.Equal(t, lexer.STRING, tok.Type)
	assert.Equal(t, "line one\nline two\\done", tok.Value)
}

func TestBooleanAndConditionalKeywords(t *testing.T) {
	got := tokenTypes(`var x = true if (!x && y || z) { } else { }`)
	assert.Equal(t, []lexer.TokenType{
		lexer.VAR, lexer.IDENT, lexer.EQUALS, lexer.TRUE,
		lexer.IF, lexer.LPAREN, lexer.NOT, lexer.IDENT, lexer.AND, lexer.IDENT,
		lexer.OR, lexer.IDENT, lexer.RPAREN, lexer.LBRACE, lexer.RBRACE,
		lexer.ELSE, lexer.LBRACE, lexer.RBRACE, lexer.EOF,
	}, got)
}

func TestIllegalCharacterReportsPosition(t *testing.T) {
	l := lexer.New("tree @")
	l.Next()
	tok := l.Next()
	assert.Equal(t, lexer.ILLEGAL, tok.Type)
	assert.Equal(t, 1, tok.Line)
	assert.Equal(t, 6, tok.Column)
}
