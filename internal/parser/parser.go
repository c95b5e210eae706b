// Package parser is a recursive-descent parser over the BNF token stream,
// producing one ast.Assignment expression per rule:
//
//	program    := { EOL } { assignment { EOL } }
//	assignment := IDENTIFIER ASSIGN or
//	or         := concat { PIPE concat }
//	concat     := primary { primary }      -- stops at EOL, PIPE, RIGHT_PAREN
//	primary    := STRING | EOL_VAR | IDENTIFIER | LEFT_PAREN or RIGHT_PAREN
package parser

import (
	"fmt"
	"iter"

	"github.com/grammarlang/bnf/internal/ast"
	"github.com/grammarlang/bnf/internal/lexer"
)

// Error reports a malformed grammar structure, carrying the offending
// token's source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parser drives a pull-based two-token lookahead over lexer.Lexer's token
// stream.
type Parser struct {
	next         func() (lexer.Token, bool)
	stop         func()
	currentToken lexer.Token
	peekToken    lexer.Token
}

// New creates a Parser consuming tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{}
	p.next, p.stop = iter.Pull(l.Token())
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() lexer.Token {
	prev := p.currentToken
	p.currentToken = p.peekToken
	tok, ok := p.next()
	if !ok {
		tok = lexer.Token{Kind: lexer.EOF}
	}
	p.peekToken = tok
	return prev
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.currentToken.Kind == kind
}

func (p *Parser) match(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.currentToken.Kind == k {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.TokenKind, msg string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, &Error{Line: p.currentToken.Line, Msg: msg}
}

// ParseProgram parses the whole token stream into one Assignment per rule.
// It is first-error-abort: the first malformed production stops parsing
// and no partial result is returned.
func ParseProgram(l *lexer.Lexer) ([]ast.Assignment, error) {
	p := New(l)
	defer p.stop()

	var assignments []ast.Assignment

	for p.currentToken.Kind != lexer.EOF {
		if p.match(lexer.EOL) {
			continue
		}

		a, err := p.assignment()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

func (p *Parser) assignment() (ast.Assignment, error) {
	if !p.check(lexer.IDENTIFIER) {
		return ast.Assignment{}, &Error{Line: p.currentToken.Line, Msg: "expected an identifier"}
	}
	name := p.advance()

	if _, err := p.consume(lexer.ASSIGN, "expected '::='"); err != nil {
		return ast.Assignment{}, err
	}

	body, err := p.or()
	if err != nil {
		return ast.Assignment{}, err
	}

	return ast.Assignment{Name: name, Body: body}, nil
}

func (p *Parser) or() (ast.Expression, error) {
	first, err := p.concat()
	if err != nil {
		return nil, err
	}

	alternatives := []ast.Expression{first}
	for p.match(lexer.PIPE) {
		next, err := p.concat()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, next)
	}

	if len(alternatives) == 1 {
		return alternatives[0], nil
	}
	return ast.Or{Alternatives: alternatives}, nil
}

func (p *Parser) concat() (ast.Expression, error) {
	var children []ast.Expression

	for p.currentToken.Kind != lexer.EOL &&
		p.currentToken.Kind != lexer.PIPE &&
		p.currentToken.Kind != lexer.RIGHT_PAREN &&
		p.currentToken.Kind != lexer.EOF {

		e, err := p.primary()
		if err != nil {
			return nil, err
		}
		children = append(children, e)
	}

	if len(children) == 0 {
		return nil, &Error{Line: p.currentToken.Line, Msg: "expected values"}
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return ast.NonTerminal{Children: children}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.check(lexer.STRING):
		tok := p.advance()
		return ast.Terminal{Value: tok.Literal}, nil

	case p.check(lexer.EOL_VAR):
		tok := p.advance()
		return ast.Terminal{Value: tok.Literal}, nil

	case p.check(lexer.IDENTIFIER):
		tok := p.advance()
		return ast.Variable{Name: tok}, nil

	case p.check(lexer.LEFT_PAREN):
		p.advance()
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_PAREN, "expected ')'"); err != nil {
			return nil, err
		}
		return ast.Group{Inner: inner}, nil

	default:
		return nil, &Error{Line: p.currentToken.Line, Msg: "unexpected token, expected expression"}
	}
}
