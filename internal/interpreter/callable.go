package interpreter

import (
	"time"

	"github.com/lox-run/lox/internal/ast"
	"github.com/lox-run/lox/internal/environment"
)

// Callable is anything the call expression can invoke: a user-defined
// function or a host intrinsic. Both expose Arity and Call; String backs
// the value-print format for callables (`<fn NAME>` / `<native fn>`).
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []any) (any, error)
	String() string
}

// NativeFunction wraps a host-provided Go function as a Callable with a
// fixed arity. The standard library only ever registers one of these
// (clock), but the shape generalizes the way a decorator/stdlib registry
// would if more were added.
type NativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []any) (any, error)
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(in *Interpreter, args []any) (any, error) {
	return n.fn(in, args)
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// UserFunction is a closure: the function's declaration plus the
// environment frame that was current when the function statement was
// declared. Go's garbage collector owns the frame/function cycle a
// recursive closure creates, so no reference counting is needed here.
type UserFunction struct {
	declaration *ast.FunctionStmt
	closure     *environment.Environment
}

func NewUserFunction(declaration *ast.FunctionStmt, closure *environment.Environment) *UserFunction {
	return &UserFunction{declaration: declaration, closure: closure}
}

func (f *UserFunction) Arity() int {
	return len(f.declaration.Params)
}

func (f *UserFunction) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// Call binds arguments by position into a fresh frame whose enclosing link
// is the captured closure (not the caller's frame), then runs the body.
// Normal completion yields nil; a return signal yields its carried value.
func (f *UserFunction) Call(in *Interpreter, args []any) (any, error) {
	callEnv := environment.New(f.closure)
	for i, param := range f.declaration.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.declaration.Body, callEnv)
	if err == nil {
		return nil, nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	return nil, err
}

// registerGlobals populates a fresh global frame with the interpreter's
// host intrinsics.
func registerGlobals(globals *environment.Environment) {
	globals.Define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []any) (any, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}
