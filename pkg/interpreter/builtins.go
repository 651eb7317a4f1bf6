package interpreter

import (
	"fmt"
	"time"

	"github.com/fasihh/owo-lang/pkg/lexer"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

func (i *Interpreter) initBuiltins() {
	i.defineNative("print", 1, func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		if _, err := fmt.Fprintln(ctx.Out, valueToString(args[0])); err != nil {
			return nil, fmt.Errorf("print: %w", err)
		}
		return runtime.Nil, nil
	})
	i.defineNative("clock", 0, func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
		now := time.Now()
		return runtime.NumberValue{Val: float64(now.UnixNano()) / float64(time.Second)}, nil
	})
}

// DefineNative registers a host function in the global scope. It fails if
// the name is already bound there.
func (i *Interpreter) DefineNative(name string, arity int, impl runtime.NativeFunc) error {
	fn := runtime.NativeFunctionValue{FuncName: name, FuncArity: arity, Impl: impl}
	return i.global.Define(name, fn, lexer.Synthetic(lexer.Identifier, name))
}

func (i *Interpreter) defineNative(name string, arity int, impl runtime.NativeFunc) {
	if err := i.DefineNative(name, arity, impl); err != nil {
		panic(fmt.Sprintf("interpreter: builtin %s: %v", name, err))
	}
}
