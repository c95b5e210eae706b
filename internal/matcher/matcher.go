// Package matcher implements the input parser: matching a string against
// a resolved BNF grammar via recursive descent with longest-match
// alternation and cycle breaking for left-recursive rules.
// It is the centerpiece of the system — it must terminate on arbitrary
// (possibly recursive) grammars, pick the alternative that consumes the
// most input, and build a derivation tree without deep-copying state on
// each backtrack.
package matcher

import (
	"fmt"

	"github.com/grammarlang/bnf/internal/ast"
	"github.com/grammarlang/bnf/internal/derivation"
	"github.com/grammarlang/bnf/internal/lexer"
	"github.com/grammarlang/bnf/internal/resolver"
)

// Error signals a missing environment binding discovered while matching.
// It never escapes Match: a missing binding collapses to a failed match.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// Option configures a Match call.
type Option func(*config)

type config struct {
	stepBudget int // 0 means unbounded
}

// WithStepBudget bounds the number of dispatch calls performed while
// matching, as a cooperative-cancellation knob for callers that
// want to cap work against pathological grammars.
func WithStepBudget(n int) Option {
	return func(c *config) { c.stepBudget = n }
}

type budgetExceeded struct{}

func (budgetExceeded) Error() string { return "matcher: step budget exceeded" }

// matcher holds all per-call state: the input cursor, the left-recursion
// guard, and a stack of derivation trees — the top being the tree actively
// under construction. Two concurrent Match calls against the same
// environment never share a matcher, so this state never needs locking.
type matcher struct {
	in      *input
	env     resolver.Environment
	visited map[lexer.TokenKey]bool
	trees   []*derivation.Tree

	stepBudget int
	steps      int
}

func newMatcher(source string, env resolver.Environment, cfg config) *matcher {
	visited := make(map[lexer.TokenKey]bool, len(env))
	for key := range env {
		visited[key] = false
	}

	return &matcher{
		in:         newInput(source),
		env:        env,
		visited:    visited,
		trees:      []*derivation.Tree{derivation.New()},
		stepBudget: cfg.stepBudget,
	}
}

func (m *matcher) active() *derivation.Tree {
	return m.trees[len(m.trees)-1]
}

func (m *matcher) resetVisited() {
	for k := range m.visited {
		m.visited[k] = false
	}
}

// Match matches input against start within env and returns the derivation
// tree witnessing a full-input match, or (nil, false) if no match exists
// (including when an internal error, such as a dangling Variable
// reference, is encountered — the entry point folds that case into
// "no match" rather than propagating).
func Match(start ast.Variable, input string, env resolver.Environment, opts ...Option) (*derivation.Tree, bool) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newMatcher(input, env, cfg)

	m.active().AddAndForward(derivation.VARIABLE, start.Name.Lexeme)

	matched, err := m.dispatch(start)
	if err != nil {
		return nil, false
	}
	if matched && m.in.atEnd() {
		return m.active(), true
	}
	return nil, false
}

func (m *matcher) dispatch(expr ast.Expression) (bool, error) {
	if m.stepBudget > 0 {
		m.steps++
		if m.steps > m.stepBudget {
			return false, budgetExceeded{}
		}
	}

	switch e := expr.(type) {
	case ast.Terminal:
		return m.matchTerminal(e), nil

	case ast.NonTerminal:
		return m.matchNonTerminal(e)

	case ast.Variable:
		return m.matchVariable(e)

	case ast.Or:
		return m.matchOr(e)

	case ast.Group:
		return m.dispatch(e.Inner)

	case ast.Assignment:
		return m.dispatch(e.Body)

	default:
		return false, fmt.Errorf("matcher: unhandled expression type %T", expr)
	}
}

// matchTerminal attempts to consume expression's literal text. On success a
// concrete byte was consumed, so recursion is productive again: the
// visited guard resets.
func (m *matcher) matchTerminal(t ast.Terminal) bool {
	if !m.in.match(t.Value) {
		return false
	}
	m.resetVisited()
	m.active().Add(derivation.VALUE, t.Value)
	return true
}

// matchNonTerminal matches each child in order. The input cursor is never
// rolled back here on failure — only the enclosing Or restores it; this
// function only restores the tree cursor.
func (m *matcher) matchNonTerminal(nt ast.NonTerminal) (bool, error) {
	curr := m.active().Current()

	for _, child := range nt.Children {
		matched, err := m.dispatch(child)
		if err != nil {
			return false, err
		}
		if !matched {
			m.active().SetCurrent(curr)
			return false, nil
		}
	}
	return true, nil
}

// matchVariable guards against left-recursion with a single boolean per
// rule: a rule that is already being expanded without having made progress
// fails outright rather than recursing forever.
func (m *matcher) matchVariable(v ast.Variable) (bool, error) {
	body, ok := m.env[v.Name.Key()]
	if !ok {
		return false, &Error{Msg: "missing " + v.Name.Lexeme + " in the environment"}
	}

	key := v.Name.Key()
	if m.visited[key] {
		return false, nil
	}
	m.visited[key] = true

	m.active().AddAndForward(derivation.VARIABLE, v.Name.Lexeme)
	matched, err := m.dispatch(body)
	m.active().Back()

	return matched, err
}

// matchOr tries every alternative against a fresh side-tree, keeping the
// one that both matched and consumed the most input (ties go to the
// first-seen alternative). This avoids deep-copying the committed tree on
// each backtrack: only the losing side-trees are discarded.
func (m *matcher) matchOr(or ast.Or) (bool, error) {
	initial := m.in.current
	bestEnd := -1
	var bestTree *derivation.Tree

	for _, alt := range or.Alternatives {
		m.in.current = initial
		m.trees = append(m.trees, derivation.New())

		matched, err := m.dispatch(alt)
		if err != nil {
			m.trees = m.trees[:len(m.trees)-1]
			return false, err
		}

		candidate := m.trees[len(m.trees)-1]
		m.trees = m.trees[:len(m.trees)-1]

		if matched && m.in.current > bestEnd {
			bestEnd = m.in.current
			bestTree = candidate
		}
	}

	if bestTree == nil {
		return false, nil
	}

	m.in.current = bestEnd
	for _, child := range bestTree.Root().Children {
		m.active().AddChildren(child)
	}
	m.resetVisited()

	return true, nil
}
