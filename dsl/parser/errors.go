package parser

import (
	"fmt"

	"github.com/aledsdavies/bttree/dsl/lexer"
)

// ParseError is one recovered syntax error, naming the offending token.
type ParseError struct {
	Token   lexer.Token
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s (got %s)", e.Token.Line, e.Token.Column, e.Message, e.Token)
}

// addError records a ParseError without stopping the parse, up to
// maxErrors; beyond that, further errors are dropped so a badly garbled
// file doesn't produce an unbounded error list.
func (p *Parser) addError(tok lexer.Token, format string, args ...any) {
	if len(p.errors) >= p.maxErrors {
		return
	}
	p.errors = append(p.errors, ParseError{Token: tok, Message: fmt.Sprintf(format, args...)})
}
