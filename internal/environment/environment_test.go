package environment_test

import (
	"testing"

	"github.com/lox-run/lox/internal/environment"
	"github.com/lox-run/lox/internal/token"
)

func name(n string) token.Token {
	return token.New(token.IDENTIFIER, n, nil, 1)
}

func TestDefineThenGet(t *testing.T) {
	env := environment.New(nil)
	env.Define("x", 1.0)

	v, err := env.Get(name("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.0 {
		t.Errorf("got %v, want 1.0", v)
	}
}

func TestRedefinitionOverwrites(t *testing.T) {
	env := environment.New(nil)
	env.Define("x", 1.0)
	env.Define("x", 2.0)

	v, err := env.Get(name("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2.0 {
		t.Errorf("got %v, want 2.0", v)
	}
}

func TestGetWalksToEnclosing(t *testing.T) {
	outer := environment.New(nil)
	outer.Define("x", "outer")
	inner := environment.New(outer)

	v, err := inner.Get(name("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "outer" {
		t.Errorf("got %v, want outer", v)
	}
}

func TestShadowingInInnerFrame(t *testing.T) {
	outer := environment.New(nil)
	outer.Define("x", "outer")
	inner := environment.New(outer)
	inner.Define("x", "inner")

	innerVal, err := inner.Get(name("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerVal != "inner" {
		t.Errorf("inner: got %v, want inner", innerVal)
	}

	outerVal, err := outer.Get(name("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outerVal != "outer" {
		t.Errorf("outer: got %v, want outer", outerVal)
	}
}

func TestGetUndefinedReportsRuntimeError(t *testing.T) {
	env := environment.New(nil)
	_, err := env.Get(name("missing"))
	if err == nil {
		t.Fatalf("expected error")
	}
	rerr, ok := err.(*environment.RuntimeError)
	if !ok {
		t.Fatalf("got %T, want *RuntimeError", err)
	}
	if rerr.Message != "Undefined variable 'missing'." {
		t.Errorf("got %q", rerr.Message)
	}
}

func TestAssignWithoutDefineFails(t *testing.T) {
	env := environment.New(nil)
	err := env.Assign(name("missing"), 1.0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, getErr := env.Get(name("missing")); getErr == nil {
		t.Fatalf("assign must not have created a slot")
	}
}

func TestAssignWalksToEnclosingFrame(t *testing.T) {
	outer := environment.New(nil)
	outer.Define("x", 1.0)
	inner := environment.New(outer)

	if err := inner.Assign(name("x"), 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := outer.Get(name("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2.0 {
		t.Errorf("got %v, want 2.0 (assign should have overwritten the outer slot)", v)
	}
}

func TestEnclosingReturnsParent(t *testing.T) {
	outer := environment.New(nil)
	inner := environment.New(outer)
	if inner.Enclosing() != outer {
		t.Errorf("Enclosing() did not return the parent frame")
	}
	if outer.Enclosing() != nil {
		t.Errorf("root frame's Enclosing() should be nil")
	}
}
