package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammarlang/bnf/internal/ast"
	"github.com/grammarlang/bnf/internal/lexer"
	"github.com/grammarlang/bnf/internal/parser"
)

func resolveSource(t *testing.T, src string) (Environment, error) {
	t.Helper()
	assignments, err := parser.ParseProgram(lexer.New(src))
	require.NoError(t, err)
	return Resolve(assignments)
}

func TestResolve_Success(t *testing.T) {
	env, err := resolveSource(t, "<a> ::= \"x\"\n<b> ::= <a>")
	require.NoError(t, err)
	assert.Len(t, env, 2)
}

func TestResolve_ForwardReference(t *testing.T) {
	_, err := resolveSource(t, "<b> ::= <a>\n<a> ::= \"x\"")
	assert.NoError(t, err)
}

func TestResolve_CyclicReferenceAllowed(t *testing.T) {
	_, err := resolveSource(t, `<x> ::= "a" <x>`)
	assert.NoError(t, err)
}

func TestResolve_Redefinition(t *testing.T) {
	_, err := resolveSource(t, "<d> ::= \"a\"\n<d> ::= \"b\"")
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
}

func TestResolve_UndefinedVariable(t *testing.T) {
	_, err := resolveSource(t, `<b> ::= <a>`)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
}

func TestResolve_SoundnessInvariant(t *testing.T) {
	env, err := resolveSource(t, "<a> ::= \"x\" | <b>\n<b> ::= \"y\"")
	require.NoError(t, err)

	var walk func(ast.Expression) bool
	walk = func(e ast.Expression) bool {
		switch v := e.(type) {
		case ast.Variable:
			_, ok := env[v.Name.Key()]
			return ok
		case ast.NonTerminal:
			for _, c := range v.Children {
				if !walk(c) {
					return false
				}
			}
			return true
		case ast.Or:
			for _, alt := range v.Alternatives {
				if !walk(alt) {
					return false
				}
			}
			return true
		case ast.Group:
			return walk(v.Inner)
		default:
			return true
		}
	}

	for _, body := range env {
		assert.True(t, walk(body))
	}
}
