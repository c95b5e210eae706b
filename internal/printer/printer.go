// Package printer pretty-prints a parsed grammar's abstract syntax with
// two-space indentation per nesting level.
package printer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grammarlang/bnf/internal/ast"
)

const indentUnit = "  "

// Print writes assignments to w, one rule at a time, resetting indentation
// between top-level assignments.
func Print(w io.Writer, assignments []ast.Assignment) error {
	bw := bufio.NewWriter(w)

	for _, a := range assignments {
		if err := printExpression(bw, ast.Assignment(a), ""); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func printExpression(w *bufio.Writer, expr ast.Expression, indent string) error {
	switch e := expr.(type) {
	case ast.Assignment:
		if _, err := fmt.Fprintf(w, "%sVARIABLE %s\n", indent, e.Name.Lexeme); err != nil {
			return err
		}
		return printExpression(w, e.Body, indent+indentUnit)

	case ast.Terminal:
		_, err := fmt.Fprintf(w, "%sTERMINAL %q\n", indent, e.Value)
		return err

	case ast.Variable:
		_, err := fmt.Fprintf(w, "%sVARIABLE %s\n", indent, e.Name.Lexeme)
		return err

	case ast.NonTerminal:
		if _, err := fmt.Fprintf(w, "%sNONTERMINAL\n", indent); err != nil {
			return err
		}
		for _, child := range e.Children {
			if err := printExpression(w, child, indent+indentUnit); err != nil {
				return err
			}
		}
		return nil

	case ast.Or:
		if _, err := fmt.Fprintf(w, "%sOR [\n", indent); err != nil {
			return err
		}
		for _, alt := range e.Alternatives {
			if err := printExpression(w, alt, indent+indentUnit); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s]\n", indent)
		return err

	case ast.Group:
		if _, err := fmt.Fprintf(w, "%sGROUP (\n", indent); err != nil {
			return err
		}
		if err := printExpression(w, e.Inner, indent+indentUnit); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s)\n", indent)
		return err

	default:
		return fmt.Errorf("printer: unhandled expression type %T", expr)
	}
}
