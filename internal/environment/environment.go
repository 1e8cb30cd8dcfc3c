// Package environment implements the lexically scoped binding chain shared
// by every activation of the interpreter: block scopes, function calls, and
// the closures that capture a frame and outlive it.
package environment

import (
	"fmt"

	"github.com/lox-run/lox/internal/token"
)

// RuntimeError is a runtime failure tied to the token that caused it: an
// undefined variable, a type mismatch, an arity mismatch, or a non-callable
// callee. It aborts execution of the running program; it is never used for
// the non-local control transfer a `return` statement performs.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

// Environment is one frame in the chain: a name-to-value map plus an
// optional link to the enclosing frame. Frames form a tree, not a stack —
// a closure keeps the frame that was current at its declaration alive for
// as long as the closure itself is reachable, which is exactly what Go's
// garbage collector already gives a *Environment held by reference; no
// manual reference counting is needed to break the function/frame cycle a
// recursive closure creates.
type Environment struct {
	values    map[string]any
	enclosing *Environment
}

// New creates a frame. Pass nil for the global frame.
func New(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]any),
		enclosing: enclosing,
	}
}

// Enclosing returns the parent frame, or nil at the global frame.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define creates or overwrites a slot in this frame. Redefinition is always
// permitted, including at global scope.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get walks the chain from this frame to the root looking for name,
// returning a RuntimeError if no frame defines it.
func (e *Environment) Get(name token.Token) (any, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// Assign walks the chain looking for an existing slot to overwrite. It
// never creates a new slot; assigning to a name no frame has declared is a
// RuntimeError.
func (e *Environment) Assign(name token.Token, value any) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}
