package bnf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammarlang/bnf/internal/generator"
)

// stubRand always returns the same alternative index.
type stubRand struct{ pick int }

func (s stubRand) IntN(n int) int {
	if s.pick >= n {
		return 0
	}
	return s.pick
}

func TestParse_GenerateSamplesAlternative(t *testing.T) {
	g, err := Parse(`<d> ::= "1" | "2" | "3"`)
	require.NoError(t, err)

	out := g.Generate(generator.WithRandSource(stubRand{pick: 2}))
	assert.Equal(t, "3", out)
}

func TestParse_ParseInputAcceptsGrammar(t *testing.T) {
	g, err := Parse(`<adn> ::= ("A" | "T" | "C" | "G") | ("A" | "T" | "C" | "G") <adn>`)
	require.NoError(t, err)

	tree, ok := g.ParseInput("ACCTAG")
	require.True(t, ok)
	require.NotNil(t, tree)
}

func TestParse_ParseInputRejectsInvalidInput(t *testing.T) {
	g, err := Parse(`<adn> ::= ("A" | "T" | "C" | "G") | ("A" | "T" | "C" | "G") <adn>`)
	require.NoError(t, err)

	_, ok := g.ParseInput("ACAACD")
	assert.False(t, ok)
}

func TestParse_RedefinitionFails(t *testing.T) {
	_, err := Parse("<d> ::= \"a\"\n<d> ::= \"b\"")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redefinition")
}

func TestParse_UndefinedVariableFails(t *testing.T) {
	_, err := Parse(`<b> ::= <a>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined")
}

func TestParse_MissingParenFails(t *testing.T) {
	_, err := Parse(`<b> ::= ((((("b"))))`)
	require.Error(t, err)
}

func TestParse_ListGrammarTwoLeaves(t *testing.T) {
	g, err := Parse(`<list> ::= "[" "]"`)
	require.NoError(t, err)

	tree, ok := g.ParseInput("[]")
	require.True(t, ok)
	require.NotNil(t, tree)
}

func TestGrammar_SetStartByName(t *testing.T) {
	g, err := Parse("<a> ::= \"x\"\n<b> ::= \"y\"")
	require.NoError(t, err)

	_, err = g.SetStart("b")
	require.NoError(t, err)
	assert.Equal(t, "y", g.Generate())
}

func TestGrammar_SetStartUnknownNameFails(t *testing.T) {
	g, err := Parse(`<a> ::= "x"`)
	require.NoError(t, err)

	_, err = g.SetStart("nope")
	require.Error(t, err)
	var coreErr *CoreError
	require.ErrorAs(t, err, &coreErr)
}

func TestGrammar_Print(t *testing.T) {
	g, err := Parse(`<d> ::= "1" | "2"`)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, g.Print(&buf))
	assert.Contains(t, buf.String(), "VARIABLE <d>")
	assert.Contains(t, buf.String(), "TERMINAL \"1\"")
}

func TestParse_RoundTripSampling(t *testing.T) {
	g, err := Parse(`<digit> ::= "1" | "2" | "3"`)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		sample := g.Generate()
		require.NotEmpty(t, sample)

		tree, ok := g.ParseInput(sample)
		require.True(t, ok, "generated sample %q should be accepted by its own grammar", sample)
		require.NotNil(t, tree)
	}
}
