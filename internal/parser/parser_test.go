package parser_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lox-run/lox/internal/ast"
	"github.com/lox-run/lox/internal/diag"
	"github.com/lox-run/lox/internal/parser"
	"github.com/lox-run/lox/internal/scanner"
	"github.com/lox-run/lox/internal/token"
)

// astCmpOpts ignores token.Token's Line field (irrelevant to structural
// equality) and allows comparing the unexported-field-free node structs
// directly, since every ast type here only carries exported fields.
var astCmpOpts = cmp.Options{
	cmpopts.IgnoreFields(token.Token{}, "Line"),
}

func parseProgram(t *testing.T, source string) ([]ast.Stmt, *diag.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := diag.New(&buf)
	tokens := scanner.New(source, sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()
	return stmts, sink
}

func TestParseExpressionPrecedence(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf)
	tokens := scanner.New("(1 + 2) * 3 - 4 / 2", sink).ScanTokens()
	expr, err := parser.New(tokens, sink).ParseExpression()
	if err != nil || sink.HadError {
		t.Fatalf("unexpected parse error: %v, sink=%s", err, buf.String())
	}

	got := ast.Print(expr)
	want := "(- (* (group (+ 1 2)) 3) (/ 4 2))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseVarAndBlockScoping(t *testing.T) {
	stmts, sink := parseProgram(t, `var a = 1; { var a = 2; print a; } print a;`)
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	if _, ok := stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("stmt 0: got %T, want *VarStmt", stmts[0])
	}
	block, ok := stmts[1].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("stmt 1: got %T, want *BlockStmt", stmts[1])
	}
	if len(block.Statements) != 2 {
		t.Errorf("block: got %d statements, want 2", len(block.Statements))
	}
}

func TestForDesugaring(t *testing.T) {
	stmts, sink := parseProgram(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(stmts))
	}

	outer, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("got %T, want outer *BlockStmt wrapping the initializer", stmts[0])
	}
	if len(outer.Statements) != 2 {
		t.Fatalf("outer block: got %d statements, want [initializer, while]", len(outer.Statements))
	}
	if _, ok := outer.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("outer.Statements[0]: got %T, want *VarStmt", outer.Statements[0])
	}

	while, ok := outer.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("outer.Statements[1]: got %T, want *WhileStmt", outer.Statements[1])
	}
	body, ok := while.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while.Body: got %T, want *BlockStmt wrapping [body, update]", while.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("while body: got %d statements, want [print, update]", len(body.Statements))
	}
}

func TestForDesugaringOmitsAbsentClauses(t *testing.T) {
	stmts, sink := parseProgram(t, `for (;;) { print 1; }`)
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	// No initializer: the result is the bare while loop, not wrapped in an
	// outer block.
	while, ok := stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T, want *WhileStmt (no initializer to wrap)", stmts[0])
	}
	cond, ok := while.Condition.(*ast.Literal)
	if !ok || cond.Value != true {
		t.Errorf("missing condition should desugar to literal true, got %#v", while.Condition)
	}
}

func TestInvalidAssignmentTargetReportsAndContinues(t *testing.T) {
	stmts, sink := parseProgram(t, `1 = 2; print "still parses";`)
	if !sink.HadError {
		t.Fatalf("expected parse error for invalid assignment target")
	}
	// Per spec.md: report the error but do NOT synchronize — the current
	// statement still completes and the following one parses normally.
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2 (no synchronization should have occurred)", len(stmts))
	}
}

func TestPanicModeRecoverySkipsToNextDeclaration(t *testing.T) {
	stmts, sink := parseProgram(t, `var = ; var ok = 1;`)
	if !sink.HadError {
		t.Fatalf("expected a parse error")
	}
	// Recovery should still find the well-formed second declaration.
	found := false
	for _, s := range stmts {
		if v, ok := s.(*ast.VarStmt); ok && v.Name.Lexeme == "ok" {
			found = true
		}
	}
	if !found {
		t.Errorf("panic-mode recovery did not resynchronize to the next declaration: %v", stmts)
	}
}

func TestTooManyArgumentsReportsButParsingContinues(t *testing.T) {
	args := make([]byte, 0, 256*3)
	for i := 0; i < 256; i++ {
		if i > 0 {
			args = append(args, ','...)
		}
		args = append(args, '1')
	}
	source := "f(" + string(args) + ");"

	_, sink := parseProgram(t, source)
	if !sink.HadError {
		t.Fatalf("expected too-many-arguments diagnostic")
	}
}

// TestRoundTripDeterminism backs spec.md §8 invariant 2: for a parse-
// error-free program, parsing the same token stream twice produces
// structurally equal ASTs, and the AST printer's rendering of each is
// byte-identical — the printer and parser agree deterministically on one
// canonical tree per source, independent of which parser instance ran.
func TestRoundTripDeterminism(t *testing.T) {
	sources := []string{
		`1 + 2 * 3`,
		`(1 + 2) * 3 - 4 / 2`,
		`!true == false`,
		`-1 <= 2`,
		`a = b = 3`,
	}
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			parseOnce := func() ast.Expr {
				var buf bytes.Buffer
				sink := diag.New(&buf)
				tokens := scanner.New(source, sink).ScanTokens()
				expr, err := parser.New(tokens, sink).ParseExpression()
				if err != nil || sink.HadError {
					t.Fatalf("unexpected parse error for %q", source)
				}
				return expr
			}

			first := parseOnce()
			second := parseOnce()

			if diff := cmp.Diff(first, second, astCmpOpts); diff != "" {
				t.Errorf("two parses of the same source produced different ASTs (-first +second):\n%s", diff)
			}
			if ast.Print(first) != ast.Print(second) {
				t.Errorf("printer is not deterministic across structurally-equal ASTs")
			}
		})
	}
}
