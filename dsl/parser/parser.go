// Package parser implements the recursive-descent parser for the tree
// definition language (spec.md §4.7). It turns lexer tokens directly into
// the already-desugared dsl/ast shapes: `&&`/`||`/`!` become
// Sequence/Fallback/Inverter nodes, `var x = ...` becomes a SetBool call,
// and `if`/`else` becomes an `if` node with a Sequence per branch, all at
// parse time. The one desugar step left to dsl/loader is resolving a bare
// identifier that names an in-scope variable into an IsTrue call - see
// the dsl/ast package doc for why.
package parser

import (
	"github.com/aledsdavies/bttree/bt"
	"github.com/aledsdavies/bttree/dsl/ast"
	"github.com/aledsdavies/bttree/dsl/lexer"
)

const defaultMaxErrors = 50

// Parser consumes a token stream and builds an ast.File, accumulating
// ParseErrors rather than stopping at the first one so a single source
// file can report more than one mistake.
type Parser struct {
	lex       *lexer.Lexer
	tok       lexer.Token
	errors    []ParseError
	maxErrors int
}

// New returns a Parser positioned at the first token of src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src), maxErrors: defaultMaxErrors}
	p.advance()
	return p
}

// Parse parses src into a File. The returned error slice is empty (not
// nil-vs-empty significant) when parsing succeeded outright; a non-empty
// slice does not necessarily mean file is unusable, since the parser
// recovers and keeps going, but callers should treat any errors as fatal
// before passing the file to the loader.
func Parse(src string) (*ast.File, []ParseError) {
	p := New(src)
	file := p.parseFile()
	return file, p.errors
}

func (p *Parser) advance() { p.tok = p.lex.Next() }

func (p *Parser) at(tt lexer.TokenType) bool { return p.tok.Type == tt }

func (p *Parser) pos() ast.Position { return ast.Position{Line: p.tok.Line, Column: p.tok.Column} }

// expect consumes the current token if it matches tt, recording an error
// and leaving the cursor in place otherwise (so the caller's subsequent
// recovery logic sees the same unexpected token).
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.tok
	if tok.Type != tt {
		p.addError(tok, "expected %s", tt)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) parseFile() *ast.File {
	file := &ast.File{}
	for !p.at(lexer.EOF) {
		switch p.tok.Type {
		case lexer.NODE:
			if decl := p.parseNodeDecl(); decl != nil {
				file.NodeDecls = append(file.NodeDecls, decl)
			}
		case lexer.TREE:
			if decl := p.parseTreeDecl(); decl != nil {
				file.Trees = append(file.Trees, decl)
			}
		default:
			p.addError(p.tok, "expected a 'node' or 'tree' declaration")
			p.advance()
		}
	}
	return file
}

func (p *Parser) parseNodeDecl() *ast.NodeDecl {
	pos := p.pos()
	p.expect(lexer.NODE)
	name := p.expect(lexer.IDENT).Value
	p.expect(lexer.LBRACE)

	var ports []ast.PortParam
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		ports = append(ports, p.parsePortParam())
	}
	p.expect(lexer.RBRACE)

	return &ast.NodeDecl{Name: name, Ports: ports, Pos: pos}
}

func (p *Parser) parsePortParam() ast.PortParam {
	pos := p.pos()
	var dir bt.PortDirection
	switch p.tok.Type {
	case lexer.IN:
		dir = bt.Input
	case lexer.OUT:
		dir = bt.Output
	case lexer.INOUT:
		dir = bt.InOut
	default:
		p.addError(p.tok, "expected a port direction (in, out or inout)")
	}
	p.advance()

	name := p.expect(lexer.IDENT).Value

	var typ string
	if p.at(lexer.COLON) {
		p.advance()
		typ = p.expect(lexer.IDENT).Value
	}

	return ast.PortParam{Direction: dir, Name: name, Type: typ, Pos: pos}
}

func (p *Parser) parseTreeDecl() *ast.TreeDecl {
	pos := p.pos()
	p.expect(lexer.TREE)
	name := p.expect(lexer.IDENT).Value

	var params []ast.PortParam
	if p.at(lexer.LPAREN) {
		p.advance()
		if !p.at(lexer.RPAREN) {
			params = append(params, p.parsePortParam())
			for p.at(lexer.COMMA) {
				p.advance()
				params = append(params, p.parsePortParam())
			}
		}
		p.expect(lexer.RPAREN)
	}

	p.expect(lexer.EQUALS)
	root := p.parseTreeNode()

	return &ast.TreeDecl{Name: name, Params: params, Root: root, Pos: pos}
}

// parseTreeNode parses `ident [ "(" port_maps ")" ] [ "{" tree_body "}" ]`.
func (p *Parser) parseTreeNode() *ast.NodeExpr {
	pos := p.pos()
	name := p.expect(lexer.IDENT).Value

	var maps []ast.PortMap
	if p.at(lexer.LPAREN) {
		p.advance()
		maps = p.parsePortMaps()
		p.expect(lexer.RPAREN)
	}

	var children []*ast.NodeExpr
	if p.at(lexer.LBRACE) {
		p.advance()
		children = p.parseTreeBody()
		p.expect(lexer.RBRACE)
	}

	return &ast.NodeExpr{Name: name, PortMaps: maps, Children: children, Pos: pos}
}

func (p *Parser) parsePortMaps() []ast.PortMap {
	if p.at(lexer.RPAREN) {
		return nil
	}
	maps := []ast.PortMap{p.parsePortMap()}
	for p.at(lexer.COMMA) {
		p.advance()
		maps = append(maps, p.parsePortMap())
	}
	return maps
}

func (p *Parser) parsePortMap() ast.PortMap {
	pos := p.pos()
	port := p.expect(lexer.IDENT).Value

	var dir bt.PortDirection
	switch p.tok.Type {
	case lexer.ARROW_IN:
		dir = bt.Input
	case lexer.ARROW_OUT:
		dir = bt.Output
	case lexer.ARROW_INOUT:
		dir = bt.InOut
	default:
		p.addError(p.tok, "expected <-, -> or <->")
	}
	p.advance()

	if p.at(lexer.STRING) {
		tok := p.tok
		p.advance()
		if dir != bt.Input {
			p.addError(tok, "a literal target must use <- (cannot write to a string literal)")
		}
		return ast.PortMap{Port: port, Direction: dir, IsLiteral: true, Literal: tok.Value, Pos: pos}
	}

	ref := p.expect(lexer.IDENT).Value
	return ast.PortMap{Port: port, Direction: dir, RefName: ref, Pos: pos}
}

// parseTreeBody parses `(var_decl | if_stmt | cond_expr)*` up to the
// closing brace, returning the desugared children in source order.
func (p *Parser) parseTreeBody() []*ast.NodeExpr {
	var children []*ast.NodeExpr
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		switch p.tok.Type {
		case lexer.VAR:
			if decl := p.parseVarDecl(); decl != nil {
				children = append(children, decl)
			}
		case lexer.IF:
			children = append(children, p.parseIfStmt())
		default:
			children = append(children, p.parseCondExpr())
		}
	}
	return children
}

// parseVarDecl desugars `var x [= true|false]` into a SetBool call at the
// point of declaration, per spec.md §4.7. A declaration with no
// initializer still declares the name (for later hoisting by the
// loader) but emits no node: it is represented with an empty Name, which
// the loader treats as "declaration only, nothing to tick".
func (p *Parser) parseVarDecl() *ast.NodeExpr {
	pos := p.pos()
	p.expect(lexer.VAR)
	name := p.expect(lexer.IDENT).Value

	if !p.at(lexer.EQUALS) {
		return &ast.NodeExpr{DeclaresVar: name, Pos: pos}
	}
	p.advance()

	var literal string
	switch p.tok.Type {
	case lexer.TRUE:
		literal = "true"
	case lexer.FALSE:
		literal = "false"
	default:
		p.addError(p.tok, "expected true or false")
	}
	p.advance()

	return &ast.NodeExpr{
		Name:        "SetBool",
		DeclaresVar: name,
		Pos:         pos,
		PortMaps: []ast.PortMap{
			{Port: "value", Direction: bt.Input, IsLiteral: true, Literal: literal, Pos: pos},
			{Port: "output", Direction: bt.Output, RefName: name, Pos: pos},
		},
	}
}

// parseIfStmt desugars `if (cond) { then } [else { else }]` into an `if`
// node with children [cond, Sequence{then}, Sequence{else}?].
func (p *Parser) parseIfStmt() *ast.NodeExpr {
	pos := p.pos()
	p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	cond := p.parseCondExpr()
	p.expect(lexer.RPAREN)

	p.expect(lexer.LBRACE)
	thenBody := p.parseTreeBody()
	p.expect(lexer.RBRACE)

	children := []*ast.NodeExpr{
		cond,
		{Name: "Sequence", Children: thenBody, Pos: pos, Synthetic: true},
	}

	if p.at(lexer.ELSE) {
		p.advance()
		p.expect(lexer.LBRACE)
		elseBody := p.parseTreeBody()
		p.expect(lexer.RBRACE)
		children = append(children, &ast.NodeExpr{Name: "Sequence", Children: elseBody, Pos: pos, Synthetic: true})
	}

	return &ast.NodeExpr{Name: "if", Children: children, Pos: pos}
}

// cond_expr ::= or_expr
func (p *Parser) parseCondExpr() *ast.NodeExpr { return p.parseOrExpr() }

// or_expr ::= and_expr ("||" and_expr)*
func (p *Parser) parseOrExpr() *ast.NodeExpr {
	pos := p.pos()
	left := p.parseAndExpr()
	if !p.at(lexer.OR) {
		return left
	}
	children := []*ast.NodeExpr{left}
	for p.at(lexer.OR) {
		p.advance()
		children = append(children, p.parseAndExpr())
	}
	return &ast.NodeExpr{Name: "Fallback", Children: children, Pos: pos, Synthetic: true}
}

// and_expr ::= factor ("&&" factor)*
func (p *Parser) parseAndExpr() *ast.NodeExpr {
	pos := p.pos()
	left := p.parseFactor()
	if !p.at(lexer.AND) {
		return left
	}
	children := []*ast.NodeExpr{left}
	for p.at(lexer.AND) {
		p.advance()
		children = append(children, p.parseFactor())
	}
	return &ast.NodeExpr{Name: "Sequence", Children: children, Pos: pos, Synthetic: true}
}

// factor ::= "!" factor | "(" cond_expr ")" | tree_node
func (p *Parser) parseFactor() *ast.NodeExpr {
	pos := p.pos()
	switch p.tok.Type {
	case lexer.NOT:
		p.advance()
		inner := p.parseFactor()
		return &ast.NodeExpr{Name: "Inverter", Children: []*ast.NodeExpr{inner}, Pos: pos, Synthetic: true}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseCondExpr()
		p.expect(lexer.RPAREN)
		return inner
	default:
		return p.parseTreeNode()
	}
}
