// Package interpreter walks the statement list the parser produces,
// evaluating expressions with dynamically-typed value semantics over a
// chain of lexical environments.
package interpreter

import (
	"fmt"
	"io"

	"github.com/lox-run/lox/internal/ast"
	"github.com/lox-run/lox/internal/diag"
	"github.com/lox-run/lox/internal/environment"
	"github.com/lox-run/lox/internal/token"
)

// returnSignal is the non-local control transfer a `return` statement
// performs. It satisfies the error interface so it can propagate through
// the same statement-execution plumbing as a genuine RuntimeError, but a
// call boundary — and only a call boundary — unwraps it into a value
// instead of reporting it as a failure.
type returnSignal struct {
	value any
}

func (r *returnSignal) Error() string { return "return" }

// Interpreter executes a parsed program against a chain of environment
// frames rooted at Globals. A fresh Interpreter is created per run of the
// "run"/"evaluate" commands or per REPL session; the global frame persists
// for the REPL's lifetime so top-level bindings survive between lines.
type Interpreter struct {
	Globals *environment.Environment
	env     *environment.Environment
	out     io.Writer
	sink    *diag.Sink
}

func New(out io.Writer, sink *diag.Sink) *Interpreter {
	globals := environment.New(nil)
	registerGlobals(globals)
	return &Interpreter{Globals: globals, env: globals, out: out, sink: sink}
}

// Interpret executes a program's statement list. Runtime errors are caught
// here, reported to the sink, and abort the remaining statements; a
// returnSignal escaping to the top level (a `return` outside any function,
// which the parser does not reject) surfaces as a runtime error instead of
// a panic.
func (in *Interpreter) Interpret(statements []ast.Stmt) {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			in.reportError(err)
			return
		}
	}
}

// InterpretExpression evaluates a single expression and prints its
// stringified result; it backs the "evaluate" debug command.
func (in *Interpreter) InterpretExpression(expr ast.Expr) {
	value, err := in.evaluate(expr)
	if err != nil {
		in.reportError(err)
		return
	}
	fmt.Fprintln(in.out, stringify(value))
}

func (in *Interpreter) reportError(err error) {
	if rerr, ok := err.(*environment.RuntimeError); ok {
		in.sink.ReportRuntimeError(rerr.Message, rerr.Token.Line)
		return
	}
	// A returnSignal with no enclosing call, or any other unexpected error,
	// is still reported as a runtime failure so the driver's exit code
	// contract holds.
	in.sink.ReportRuntimeError(err.Error(), 0)
}

// --- Statement execution ---

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return err
	case *ast.PrintStmt:
		value, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, stringify(value))
		return nil
	case *ast.VarStmt:
		var value any
		if s.Initializer != nil {
			var err error
			value, err = in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil
	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, environment.New(in.env))
	case *ast.IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return in.execute(s.ElseBranch)
		}
		return nil
	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}
	case *ast.FunctionStmt:
		fn := NewUserFunction(s, in.env)
		in.env.Define(s.Name.Lexeme, fn)
		return nil
	case *ast.ReturnStmt:
		var value any
		if s.Value != nil {
			var err error
			value, err = in.evaluate(s.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: value}
	default:
		return fmt.Errorf("unknown statement type %T", stmt)
	}
}

// executeBlock runs statements in env, restoring the interpreter's current
// frame on every exit path — normal completion, a RuntimeError, or a
// returnSignal unwinding toward its call boundary.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *environment.Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- Expression evaluation ---

func (in *Interpreter) evaluate(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return in.evaluate(e.Expression)
	case *ast.Variable:
		return in.env.Get(e.Name)
	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Call:
		return in.evalCall(e)
	default:
		return nil, fmt.Errorf("unknown expression type %T", expr)
	}
}

func (in *Interpreter) evalLogical(e *ast.Logical) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (any, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.BANG:
		return !isTruthy(right), nil
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, environment.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	}
	return nil, fmt.Errorf("unknown unary operator %v", e.Operator.Type)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.MINUS:
		return numericBinary(e.Operator, left, right, func(a, b float64) any { return a - b })
	case token.SLASH:
		return numericBinary(e.Operator, left, right, func(a, b float64) any { return a / b })
	case token.STAR:
		return numericBinary(e.Operator, left, right, func(a, b float64) any { return a * b })
	case token.PLUS:
		return evalPlus(e.Operator, left, right)
	case token.GREATER:
		return numericBinary(e.Operator, left, right, func(a, b float64) any { return a > b })
	case token.GREATER_EQUAL:
		return numericBinary(e.Operator, left, right, func(a, b float64) any { return a >= b })
	case token.LESS:
		return numericBinary(e.Operator, left, right, func(a, b float64) any { return a < b })
	case token.LESS_EQUAL:
		return numericBinary(e.Operator, left, right, func(a, b float64) any { return a <= b })
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	}
	return nil, fmt.Errorf("unknown binary operator %v", e.Operator.Type)
}

func numericBinary(op token.Token, left, right any, apply func(a, b float64) any) (any, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, environment.NewRuntimeError(op, "Operand must be a number.")
	}
	return apply(l, r), nil
}

func evalPlus(op token.Token, left, right any) (any, error) {
	if l, ok := left.(float64); ok {
		if r, ok := right.(float64); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			return l + r, nil
		}
	}
	return nil, environment.NewRuntimeError(op, "Operands must be two numbers or two strings.")
}

func (in *Interpreter) evalCall(e *ast.Call) (any, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, environment.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}

	if len(args) != callable.Arity() {
		return nil, environment.NewRuntimeError(e.Paren,
			fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}

	return callable.Call(in, args)
}
