// Package repl implements the interactive read-eval-print loop that is
// this interpreter's fifth CLI surface, supplementing spec.md's four
// file-based subcommands. It reads one line at a time, parses it as a
// declaration-or-statement, and evaluates it against an environment that
// persists for the life of the session so earlier `var`/`fun` declarations
// stay visible on later lines.
package repl

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/lox-run/lox/internal/diag"
	"github.com/lox-run/lox/internal/interpreter"
	"github.com/lox-run/lox/internal/parser"
	"github.com/lox-run/lox/internal/scanner"
)

// discardWriter swallows diagnostics from a trial parse that only exists
// to decide whether a line is a full statement or a bare expression.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

var (
	promptColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
)

const prompt = "lox> "

// Run starts the loop, reading from an internal readline editor (which
// attaches to the process's stdin/stdout for history and line editing)
// and writing results to out. It returns the process exit code: 0 once
// reading stops (Ctrl-D or Ctrl-C), 1 if the line editor cannot be created.
func Run(out io.Writer) int {
	rl, err := readline.New(prompt)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	defer rl.Close()

	promptColor.Fprintln(out, "Lox REPL — Ctrl-D to exit.")

	sink := diag.New(out)
	in := interpreter.New(out, sink)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			return 0
		}
		if line == "" {
			continue
		}
		rl.SaveHistory(line)
		evalLine(out, sink, in, line)
	}
}

// evalLine parses one line of input, trying it first as a complete
// statement list (so `var x = 1;` and `print x;` work) and, when that
// trial parse reports any error, retrying as a bare expression whose
// value is printed — the same
// convenience the codecrafters Lox ports' REPL/"evaluate" mode provides.
func evalLine(out io.Writer, sink *diag.Sink, in *interpreter.Interpreter, line string) {
	trial := diag.New(discardWriter{})
	trialTokens := scanner.New(line, trial).ScanTokens()
	stmts := parser.New(trialTokens, trial).Parse()

	if !trial.HadError {
		sink.HadError = false
		sink.HadRuntimeError = false
		tokens := scanner.New(line, sink).ScanTokens()
		stmts = parser.New(tokens, sink).Parse()
		if sink.HadError {
			return
		}
		in.Interpret(stmts)
		return
	}

	// Statement parse failed; retry as a single bare expression so `1 + 2`
	// at the prompt still prints its value, the same convenience the
	// codecrafters Lox ports' "evaluate" mode provides.
	sink.HadError = false
	sink.HadRuntimeError = false
	tokens := scanner.New(line, sink).ScanTokens()
	expr, perr := parser.New(tokens, sink).ParseExpression()
	if sink.HadError || perr != nil {
		errorColor.Fprintln(out, "parse error")
		return
	}
	in.InterpretExpression(expr)
}
