// Package resolver validates the cross-references in a parsed BNF grammar
// and builds the name -> body environment consumed by the generator and
// the matcher.
package resolver

import (
	"fmt"

	"github.com/grammarlang/bnf/internal/ast"
	"github.com/grammarlang/bnf/internal/lexer"
)

// Environment maps a rule's IDENTIFIER token to the body expression of the
// assignment that defined it. Keyed by Token.Key (kind+lexeme+literal, not
// line), so this is an ordinary Go map — no custom hashing needed.
type Environment map[lexer.TokenKey]ast.Expression

// Error reports a redefinition or an undefined reference, carrying the
// offending token's source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Resolve runs a two-pass resolution: pass one binds every assignment's
// name to its body (forward references allowed); pass two walks every
// expression and requires each Variable's name to already be bound.
// Cyclic references between rules are permitted.
func Resolve(assignments []ast.Assignment) (Environment, error) {
	env := make(Environment, len(assignments))

	for _, a := range assignments {
		if _, exists := env[a.Name.Key()]; exists {
			return nil, &Error{Line: a.Name.Line, Msg: fmt.Sprintf("redefinition of %s", a.Name.Lexeme)}
		}
		env[a.Name.Key()] = a.Body
	}

	for _, a := range assignments {
		if err := checkReferences(a.Body, env); err != nil {
			return nil, err
		}
	}

	return env, nil
}

func checkReferences(expr ast.Expression, env Environment) error {
	switch e := expr.(type) {
	case ast.Terminal:
		return nil

	case ast.Variable:
		if _, ok := env[e.Name.Key()]; !ok {
			return &Error{Line: e.Name.Line, Msg: fmt.Sprintf("undefined variable %s", e.Name.Lexeme)}
		}
		return nil

	case ast.NonTerminal:
		for _, child := range e.Children {
			if err := checkReferences(child, env); err != nil {
				return err
			}
		}
		return nil

	case ast.Or:
		for _, alt := range e.Alternatives {
			if err := checkReferences(alt, env); err != nil {
				return err
			}
		}
		return nil

	case ast.Group:
		return checkReferences(e.Inner, env)

	case ast.Assignment:
		return checkReferences(e.Body, env)

	default:
		return fmt.Errorf("unhandled expression type %T", expr)
	}
}
