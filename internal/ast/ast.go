// Package ast defines the BNF expression tree: a closed set of six node
// kinds (Terminal, Variable, NonTerminal, Or, Group, Assignment), dispatched
// by type switch rather than a visitor hierarchy.
package ast

import (
	"github.com/grammarlang/bnf/internal/lexer"
)

// Expression is implemented by exactly six node types. isExpression is
// unexported so no type outside this package can satisfy the interface,
// keeping the sum type closed.
type Expression interface {
	isExpression()
}

// Terminal is literal text to emit or match.
type Terminal struct {
	Value string
}

func (Terminal) isExpression() {}

// Variable references a named rule by its IDENTIFIER token.
type Variable struct {
	Name lexer.Token
}

func (Variable) isExpression() {}

// NonTerminal is an ordered concatenation of sub-expressions.
type NonTerminal struct {
	Children []Expression
}

func (NonTerminal) isExpression() {}

// Or is an n-ary choice between alternatives.
type Or struct {
	Alternatives []Expression
}

func (Or) isExpression() {}

// Group is a parenthesised sub-expression, preserved (rather than
// collapsed) so the printer can round-trip it faithfully.
type Group struct {
	Inner Expression
}

func (Group) isExpression() {}

// Assignment is a top-level rule definition: name ::= body.
type Assignment struct {
	Name lexer.Token
	Body Expression
}

func (Assignment) isExpression() {}
