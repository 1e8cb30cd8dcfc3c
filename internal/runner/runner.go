// Package runner implements the four file-based subcommands described in
// spec.md §6: tokenize, parse, evaluate, run. Each is a thin adapter over
// the scanner/parser/interpreter that returns the exit code spec.md's
// table assigns, leaving argument handling and os.Exit to the CLI layer.
package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/lox-run/lox/internal/ast"
	"github.com/lox-run/lox/internal/diag"
	"github.com/lox-run/lox/internal/interpreter"
	"github.com/lox-run/lox/internal/parser"
	"github.com/lox-run/lox/internal/scanner"
)

const (
	ExitSuccess      = 0
	ExitDataError    = 65 // scanner/parser errors
	ExitRuntimeErr   = 70 // runtime error
	ExitUsageOrIOErr = 1
)

// Tokenize scans path and prints one token per line to out; scan errors go
// to errOut. Returns 65 if any scan error occurred, else 0.
func Tokenize(path string, out, errOut io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return ExitUsageOrIOErr
	}

	sink := diag.New(errOut)
	tokens := scanner.New(string(source), sink).ScanTokens()
	for _, tok := range tokens {
		fmt.Fprintln(out, tok.String())
	}

	if sink.HadError {
		return ExitDataError
	}
	return ExitSuccess
}

// Parse scans path, parses a single expression, and prints its
// fully-parenthesized form. Returns 65 on scan/parse error.
func Parse(path string, out, errOut io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return ExitUsageOrIOErr
	}

	sink := diag.New(errOut)
	tokens := scanner.New(string(source), sink).ScanTokens()
	expr, perr := parser.New(tokens, sink).ParseExpression()
	if sink.HadError || perr != nil {
		return ExitDataError
	}

	fmt.Fprintln(out, ast.Print(expr))
	return ExitSuccess
}

// Evaluate scans path, parses a single expression, evaluates it, and
// prints its stringified result. Returns 65 on scan/parse error, 70 on
// runtime error.
func Evaluate(path string, out, errOut io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return ExitUsageOrIOErr
	}

	sink := diag.New(errOut)
	tokens := scanner.New(string(source), sink).ScanTokens()
	expr, perr := parser.New(tokens, sink).ParseExpression()
	if sink.HadError || perr != nil {
		return ExitDataError
	}

	interpreter.New(out, sink).InterpretExpression(expr)
	if sink.HadRuntimeError {
		return ExitRuntimeErr
	}
	return ExitSuccess
}

// Run scans path, parses a full program, and executes it. Returns 65 on
// scan/parse error (execution never starts), 70 on runtime error.
func Run(path string, out, errOut io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return ExitUsageOrIOErr
	}

	sink := diag.New(errOut)
	tokens := scanner.New(string(source), sink).ScanTokens()
	statements := parser.New(tokens, sink).Parse()
	if sink.HadError {
		return ExitDataError
	}

	interpreter.New(out, sink).Interpret(statements)
	if sink.HadRuntimeError {
		return ExitRuntimeErr
	}
	return ExitSuccess
}
