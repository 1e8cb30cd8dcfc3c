// Package diag carries the two process-wide error flags spec.md assigns to
// the scanner/parser/evaluator phases, plus the formatting rules for the
// diagnostics those phases print. It exists so scan, parse, and runtime
// errors reported deep in recursion can still be observed by the driver
// between phases, without resorting to actual package-level globals.
package diag

import (
	"fmt"
	"io"

	"github.com/lox-run/lox/internal/token"
)

// Sink accumulates the had-error / had-runtime-error state for one run of
// the interpreter. A fresh Sink is created per invocation of the CLI; the
// REPL keeps one Sink for the session and clears its flags before each line.
type Sink struct {
	Out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

func New(out io.Writer) *Sink {
	return &Sink{Out: out}
}

// Report records a scanner error that has no associated token, e.g.
// "Unexpected character" or "Unterminated string" diagnosed mid-scan.
func (s *Sink) Report(line int, message string) {
	s.emit(line, "", message)
	s.HadError = true
}

// ReportToken records a parse error located at a specific token: end-of-file
// renders as " at end", any other token as " at '<lexeme>'".
func (s *Sink) ReportToken(tok token.Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = " at end"
	}
	s.emit(tok.Line, where, message)
	s.HadError = true
}

func (s *Sink) emit(line int, where, message string) {
	fmt.Fprintf(s.Out, "[line %d] Error%s: %s\n", line, where, message)
}

// ReportRuntimeError records a runtime error using spec.md's two-line
// format: the message, then the offending line on its own line.
func (s *Sink) ReportRuntimeError(message string, line int) {
	fmt.Fprintf(s.Out, "%s\n[line %d]\n", message, line)
	s.HadRuntimeError = true
}
