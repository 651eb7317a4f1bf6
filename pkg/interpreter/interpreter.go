// Package interpreter walks owo syntax trees against a chain of runtime
// environments.
package interpreter

import (
	"io"
	"os"

	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

// Options configures an Interpreter.
type Options struct {
	// Stdout receives print output and interactive echoes. Defaults to os.Stdout.
	Stdout io.Writer
	// Interactive echoes the value of every top-level expression statement.
	Interactive bool
}

// Interpreter executes statements. It is not safe for concurrent use.
type Interpreter struct {
	global      *runtime.Environment
	out         io.Writer
	interactive bool
}

// New returns an interpreter whose global scope holds the native builtins.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	i := &Interpreter{
		global:      runtime.NewEnvironment(nil),
		out:         out,
		interactive: opts.Interactive,
	}
	i.initBuiltins()
	return i
}

// GlobalEnvironment returns the root scope, which persists across Interpret
// calls.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// SetInteractive toggles echoing of top-level expression values.
func (i *Interpreter) SetInteractive(on bool) {
	i.interactive = on
}

// Output implements runtime.Invoker.
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// Interpret runs statements against the global environment.
func (i *Interpreter) Interpret(stmts []ast.Statement) error {
	return i.InterpretIn(stmts, i.global)
}

// InterpretIn runs statements in order against env. It stops at the first
// runtime error, which is returned as a *runtime.RuntimeError. A top-level
// return ends the batch without error.
func (i *Interpreter) InterpretIn(stmts []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range stmts {
		if exprStmt, ok := stmt.(*ast.ExpressionStatement); ok && i.interactive {
			if err := i.echoExpressions(exprStmt, env); err != nil {
				return err
			}
			continue
		}
		result, err := i.executeStatement(stmt, env)
		if err != nil {
			return err
		}
		if result.kind == flowReturn {
			return nil
		}
	}
	return nil
}

func (i *Interpreter) echoExpressions(stmt *ast.ExpressionStatement, env *runtime.Environment) error {
	for _, expr := range stmt.Expressions {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(i.out, valueToString(val)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteBody implements runtime.Invoker: it runs a function body and
// collapses a return signal into the call's result.
func (i *Interpreter) ExecuteBody(body []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	result, err := i.executeStatements(body, env)
	if err != nil {
		return nil, err
	}
	if result.kind == flowReturn {
		return result.value, nil
	}
	return runtime.Nil, nil
}

// Evaluate evaluates a single expression in env.
func (i *Interpreter) Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if env == nil {
		env = i.global
	}
	return i.evaluateExpression(expr, env)
}
