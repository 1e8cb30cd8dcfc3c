package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders an expression in fully-parenthesized prefix form, e.g.
// `1 + 2 * 3` prints as `(+ 1 (* 2 3))`. It backs the "parse" debug
// command; it is not meant to be reparsed.
func Print(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "nil"
	case *Literal:
		return printLiteral(n.Value)
	case *Grouping:
		return parenthesize("group", n.Expression)
	case *Unary:
		return parenthesize(n.Operator.Lexeme, n.Right)
	case *Binary:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		return parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		return n.Name.Lexeme
	case *Assign:
		return parenthesize("= "+n.Name.Lexeme, n.Value)
	case *Call:
		return parenthesize("call "+Print(n.Callee), n.Arguments...)
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func printLiteral(v any) string {
	switch lit := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(lit)
	case float64:
		return strconv.FormatFloat(lit, 'g', -1, 64)
	case string:
		return lit
	default:
		return fmt.Sprintf("%v", lit)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(Print(e))
	}
	sb.WriteByte(')')
	return sb.String()
}
