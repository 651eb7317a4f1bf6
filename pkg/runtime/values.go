// Package runtime holds owo values, callables and lexical environments.
package runtime

import (
	"fmt"
	"io"

	"github.com/fasihh/owo-lang/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNil
	KindFunction
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// Nil is the shared nil value.
var Nil Value = NilValue{}

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// Invoker is the part of the interpreter a callable needs in order to run.
type Invoker interface {
	// ExecuteBody runs a function body in env and returns the value of the
	// first return reached, or nil when the body falls off the end.
	ExecuteBody(body []ast.Statement, env *Environment) (Value, error)
	// Output is where native side effects such as print are written.
	Output() io.Writer
}

// Callable is implemented by every value that can appear in callee position.
// Arity is checked by the caller before Call runs.
type Callable interface {
	Value
	Name() string
	Arity() int
	Call(inv Invoker, args []Value) (Value, error)
}

// FunctionValue is a user-defined function together with the environment
// that was active where it was declared. Holding Closure keeps that whole
// scope chain alive for as long as the function is reachable.
type FunctionValue struct {
	Declaration *ast.Function
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Name() string { return v.Declaration.Name.Lexeme }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

// Call binds arguments positionally in a fresh scope whose parent is the
// closure, not the caller's scope.
func (v *FunctionValue) Call(inv Invoker, args []Value) (Value, error) {
	env := NewEnvironment(v.Closure)
	for idx, param := range v.Declaration.Params {
		if err := env.Define(param.Lexeme, args[idx], param); err != nil {
			return nil, err
		}
	}
	return inv.ExecuteBody(v.Declaration.Body, env)
}

// NativeCallContext provides hooks for native functions.
type NativeCallContext struct {
	Out io.Writer
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	FuncName  string
	FuncArity int
	Impl      NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v NativeFunctionValue) Name() string { return v.FuncName }

func (v NativeFunctionValue) Arity() int { return v.FuncArity }

func (v NativeFunctionValue) Call(inv Invoker, args []Value) (Value, error) {
	return v.Impl(&NativeCallContext{Out: inv.Output()}, args)
}

// IsCallable reports whether v can be invoked.
func IsCallable(v Value) bool {
	_, ok := v.(Callable)
	return ok
}
