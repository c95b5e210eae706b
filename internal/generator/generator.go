// Package generator produces one random string accepted by a resolved BNF
// grammar, via an iterative work-stack walk rather than recursion, so
// pathological grammars can't blow the Go stack.
package generator

import (
	"fmt"

	"github.com/grammarlang/bnf/internal/ast"
	"github.com/grammarlang/bnf/internal/resolver"
)

// Error describes a missing environment binding during sampling. Generate
// never returns it: on a missing binding Generate returns the empty string,
// a consumer-friendly choice since a missing binding means the caller
// already has a bigger problem than this one sample.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// RandSource is the narrow random-choice dependency the generator needs,
// shaped after math/rand/v2's Rand so *rand.Rand satisfies it directly.
// Injectable so tests can make generation deterministic.
type RandSource interface {
	IntN(n int) int
}

// Option configures a Generate call.
type Option func(*config)

type config struct {
	maxSteps int // 0 means unbounded
	rand     RandSource
}

// WithMaxSteps bounds the number of work-stack pops before giving up and
// returning the empty string.
func WithMaxSteps(n int) Option {
	return func(c *config) { c.maxSteps = n }
}

// WithRandSource injects the random source used to choose Or alternatives.
func WithRandSource(r RandSource) Option {
	return func(c *config) { c.rand = r }
}

// Generate returns one random string derived from start, or the empty
// string if generation exceeds an optional step budget or hits a missing
// environment binding.
func Generate(start ast.Expression, env resolver.Environment, opts ...Option) string {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rand == nil {
		cfg.rand = defaultRandSource{}
	}

	stack := []ast.Expression{start}
	var out []byte
	steps := 0

	for len(stack) > 0 {
		if cfg.maxSteps > 0 && steps >= cfg.maxSteps {
			return ""
		}
		steps++

		n := len(stack) - 1
		expr := stack[n]
		stack = stack[:n]

		switch e := expr.(type) {
		case ast.Terminal:
			out = append(out, e.Value...)

		case ast.NonTerminal:
			for i := len(e.Children) - 1; i >= 0; i-- {
				stack = append(stack, e.Children[i])
			}

		case ast.Variable:
			body, ok := env[e.Name.Key()]
			if !ok {
				return ""
			}
			stack = append(stack, body)

		case ast.Or:
			if len(e.Alternatives) == 0 {
				return ""
			}
			stack = append(stack, e.Alternatives[cfg.rand.IntN(len(e.Alternatives))])

		case ast.Group:
			stack = append(stack, e.Inner)

		case ast.Assignment:
			stack = append(stack, e.Body)

		default:
			panic(fmt.Sprintf("generator: unhandled expression type %T", expr))
		}
	}

	return string(out)
}
