package interpreter

import (
	"fmt"

	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

type flowKind int

const (
	flowNormal flowKind = iota
	flowReturn
)

// flow is the outcome of executing a statement. A return travels outward as
// flowReturn until a call boundary collapses it.
type flow struct {
	kind  flowKind
	value runtime.Value
}

var normalFlow = flow{kind: flowNormal}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (flow, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		for _, expr := range n.Expressions {
			if _, err := i.evaluateExpression(expr, env); err != nil {
				return normalFlow, err
			}
		}
		return normalFlow, nil
	case *ast.VarStatement:
		return normalFlow, i.executeVarStatement(n, env)
	case *ast.Block:
		return i.executeStatements(n.Statements, runtime.NewEnvironment(env))
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.Function:
		fn := &runtime.FunctionValue{Declaration: n, Closure: env}
		return normalFlow, env.Define(n.Name.Lexeme, fn, n.Name)
	case *ast.Return:
		var value runtime.Value = runtime.Nil
		if n.Value != nil {
			val, err := i.evaluateExpression(n.Value, env)
			if err != nil {
				return normalFlow, err
			}
			value = val
		}
		return flow{kind: flowReturn, value: value}, nil
	default:
		return normalFlow, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// executeStatements runs stmts in env, stopping early on a return or error.
// Blocks pass a fresh child scope; the caller's env is untouched afterwards
// because the child is simply dropped.
func (i *Interpreter) executeStatements(stmts []ast.Statement, env *runtime.Environment) (flow, error) {
	for _, stmt := range stmts {
		result, err := i.executeStatement(stmt, env)
		if err != nil {
			return normalFlow, err
		}
		if result.kind == flowReturn {
			return result, nil
		}
	}
	return normalFlow, nil
}

func (i *Interpreter) executeVarStatement(stmt *ast.VarStatement, env *runtime.Environment) error {
	for _, decl := range stmt.Declarations {
		var value runtime.Value = runtime.Nil
		if decl.Initializer != nil {
			val, err := i.evaluateExpression(decl.Initializer, env)
			if err != nil {
				return err
			}
			value = val
		}
		if err := env.Define(decl.Name.Lexeme, value, decl.Name); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.If, env *runtime.Environment) (flow, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return normalFlow, err
	}
	if isTruthy(cond) {
		return i.executeStatement(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.executeStatement(stmt.Else, env)
	}
	return normalFlow, nil
}
