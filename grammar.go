// Package bnf interprets a grammar written in a BNF-like notation and
// exposes three derived capabilities over it: random string sampling,
// matching an input string and producing a derivation tree, and
// pretty-printing the grammar's abstract syntax.
package bnf

import (
	"fmt"
	"io"

	"github.com/grammarlang/bnf/internal/ast"
	"github.com/grammarlang/bnf/internal/derivation"
	"github.com/grammarlang/bnf/internal/generator"
	"github.com/grammarlang/bnf/internal/lexer"
	"github.com/grammarlang/bnf/internal/matcher"
	"github.com/grammarlang/bnf/internal/parser"
	"github.com/grammarlang/bnf/internal/printer"
	"github.com/grammarlang/bnf/internal/resolver"
)

// CoreError is raised by Grammar entry points when a requested start rule
// is not present in the resolved environment.
type CoreError struct {
	Msg string
}

func (e *CoreError) Error() string {
	return e.Msg
}

// Grammar is a resolved BNF grammar: a list of rule assignments plus the
// environment that maps each rule name to its body, ready for generation,
// matching, and printing.
type Grammar struct {
	assignments []ast.Assignment
	env         resolver.Environment
	start       ast.Variable
	hasStart    bool
}

// Parse runs lex -> parse -> resolve over source. On any error in those
// stages the function fails with that stage's error and no partial
// grammar is returned.
func Parse(source string) (*Grammar, error) {
	l := lexer.New(source)

	assignments, err := parser.ParseProgram(l)
	if lexErr := l.Err(); lexErr != nil {
		return nil, lexErr
	}
	if err != nil {
		return nil, err
	}

	env, err := resolver.Resolve(assignments)
	if err != nil {
		return nil, err
	}

	g := &Grammar{assignments: assignments, env: env}
	g.SetStart("") //nolint:errcheck // default start on a freshly resolved grammar never fails

	return g, nil
}

// SetStart selects a start rule by name. If name is empty, the first
// assignment's own name is used. A name may be given with or without its
// angle brackets ("b" and "<b>" both select rule <b>). If the named rule is
// not in the environment, SetStart fails with a CoreError and leaves g
// unchanged.
func (g *Grammar) SetStart(name string) (*Grammar, error) {
	if name == "" {
		if len(g.assignments) == 0 {
			g.hasStart = false
			return g, nil
		}
		g.start = ast.Variable{Name: g.assignments[0].Name}
		g.hasStart = true
		return g, nil
	}

	for _, a := range g.assignments {
		if a.Name.Lexeme == name || a.Name.Lexeme == "<"+name+">" {
			g.start = ast.Variable{Name: a.Name}
			g.hasStart = true
			return g, nil
		}
	}

	return g, &CoreError{Msg: fmt.Sprintf("%s is not in this environment", name)}
}

// Generate returns one random sample from the grammar's start rule, or the
// empty string if generation fails (missing binding, or an unseeded
// left-recursive rule exceeding its step budget).
func (g *Grammar) Generate(opts ...generator.Option) string {
	if !g.hasStart {
		return ""
	}
	return generator.Generate(g.start, g.env, opts...)
}

// ParseInput matches input against the grammar's start rule and returns
// the derivation tree witnessing a full match, or (nil, false) if no match
// exists.
func (g *Grammar) ParseInput(input string, opts ...matcher.Option) (*derivation.Tree, bool) {
	if !g.hasStart {
		return nil, false
	}
	return matcher.Match(g.start, input, g.env, opts...)
}

// Print writes the pretty-printed expression tree to w.
func (g *Grammar) Print(w io.Writer) error {
	return printer.Print(w, g.assignments)
}

// Assignments exposes the parsed rule list, e.g. for an external renderer
// or a CLI's --check mode.
func (g *Grammar) Assignments() []ast.Assignment {
	return g.assignments
}
