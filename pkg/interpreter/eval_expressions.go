package interpreter

import (
	"errors"
	"fmt"

	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/lexer"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.Unary:
		operand, err := i.evaluateExpression(n.Right, env)
		if err != nil {
			return nil, err
		}
		return applyUnaryOperator(n.Operator, operand)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Ternary:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return i.evaluateExpression(n.Then, env)
		}
		return i.evaluateExpression(n.Else, env)
	case *ast.Variable:
		return env.Get(n.Name.Lexeme, n.Name)
	case *ast.Assign:
		value, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(n.Name.Lexeme, value, n.Name); err != nil {
			return nil, err
		}
		return value, nil
	case *ast.Call:
		return i.evaluateCall(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func literalValue(value any) runtime.Value {
	switch v := value.(type) {
	case float64:
		return runtime.NumberValue{Val: v}
	case string:
		return runtime.StringValue{Val: v}
	case bool:
		return runtime.BoolValue{Val: v}
	default:
		return runtime.Nil
	}
}

// evaluateBinary handles && and || itself so the right operand is only
// evaluated when needed; both always produce a boolean.
func (i *Interpreter) evaluateBinary(n *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case lexer.AndAnd:
		if !isTruthy(left) {
			return runtime.BoolValue{Val: false}, nil
		}
		return i.evaluateTruthiness(n.Right, env)
	case lexer.OrOr:
		if isTruthy(left) {
			return runtime.BoolValue{Val: true}, nil
		}
		return i.evaluateTruthiness(n.Right, env)
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(n.Operator, left, right)
}

func (i *Interpreter) evaluateTruthiness(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: isTruthy(val)}, nil
}

func (i *Interpreter) evaluateCall(n *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, argExpr := range n.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return i.callValue(callee, args, n.Paren)
}

// callValue checks callability and arity before invoking. Plain errors from
// natives are reported at the call site.
func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, site lexer.Token) (runtime.Value, error) {
	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtime.NewRuntimeError(runtime.ErrNotCallable, site, "Can only call functions.")
	}
	if len(args) != fn.Arity() {
		return nil, runtime.NewRuntimeError(runtime.ErrArityMismatch, site, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	result, err := fn.Call(i, args)
	if err != nil {
		var rtErr *runtime.RuntimeError
		if errors.As(err, &rtErr) {
			return nil, err
		}
		return nil, runtime.NewRuntimeError(runtime.ErrNative, site, "%s", err.Error())
	}
	if result == nil {
		return runtime.Nil, nil
	}
	return result, nil
}

// CallFunction invokes a callable value from host code, e.g. to run an owo
// callback. The call site token is synthetic.
func (i *Interpreter) CallFunction(value runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if value == nil {
		return nil, fmt.Errorf("interpreter: cannot call <nil> value")
	}
	return i.callValue(value, args, lexer.Synthetic(lexer.RightParen, ")"))
}
