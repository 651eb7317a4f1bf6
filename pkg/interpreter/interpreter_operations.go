package interpreter

import (
	"math"

	"github.com/fasihh/owo-lang/pkg/lexer"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

func applyBinaryOperator(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Kind {
	case lexer.Plus:
		return evaluateAddition(op, left, right)
	case lexer.Minus, lexer.Star, lexer.Slash:
		return evaluateArithmetic(op, left, right)
	case lexer.Percent:
		return evaluateModulo(op, left, right)
	case lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual:
		return evaluateComparison(op, left, right)
	case lexer.EqualEqual:
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case lexer.BangEqual:
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	case lexer.BitAnd, lexer.BitOr, lexer.BitXor, lexer.LeftShift, lexer.RightShift:
		return evaluateBitwise(op, left, right)
	default:
		return nil, runtime.NewRuntimeError(runtime.ErrTypeMismatch, op, "Unsupported binary operator '%s'.", op.Lexeme)
	}
}

func applyUnaryOperator(op lexer.Token, operand runtime.Value) (runtime.Value, error) {
	switch op.Kind {
	case lexer.Bang:
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	case lexer.Minus:
		n, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, operandMismatch(op)
		}
		return runtime.NumberValue{Val: -n.Val}, nil
	case lexer.BitNot:
		n, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, operandMismatch(op)
		}
		return runtime.NumberValue{Val: float64(^truncateToInt(n.Val))}, nil
	default:
		return nil, runtime.NewRuntimeError(runtime.ErrTypeMismatch, op, "Unsupported unary operator '%s'.", op.Lexeme)
	}
}

// evaluateAddition sums numbers and concatenates strings; a string paired
// with a number concatenates the number's display form.
func evaluateAddition(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		switch r := right.(type) {
		case runtime.NumberValue:
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		case runtime.StringValue:
			return runtime.StringValue{Val: FormatNumber(l.Val) + r.Val}, nil
		}
	case runtime.StringValue:
		switch r := right.(type) {
		case runtime.StringValue:
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		case runtime.NumberValue:
			return runtime.StringValue{Val: l.Val + FormatNumber(r.Val)}, nil
		}
	}
	return nil, runtime.NewRuntimeError(runtime.ErrTypeMismatch, op, "Operands must be of type number and/or string.")
}

// evaluateArithmetic follows IEEE-754, so x / 0 yields an infinity or NaN.
func evaluateArithmetic(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op.Kind {
	case lexer.Minus:
		return runtime.NumberValue{Val: l - r}, nil
	case lexer.Star:
		return runtime.NumberValue{Val: l * r}, nil
	default:
		return runtime.NumberValue{Val: l / r}, nil
	}
}

// evaluateModulo truncates both operands to integers first. A zero divisor
// is an error rather than host-defined behaviour.
func evaluateModulo(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	divisor := truncateToInt(r)
	if divisor == 0 {
		return nil, runtime.NewRuntimeError(runtime.ErrDivisionByZero, op, "Division by zero.")
	}
	return runtime.NumberValue{Val: float64(truncateToInt(l) % divisor)}, nil
}

func evaluateComparison(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	var result bool
	switch op.Kind {
	case lexer.Greater:
		result = l > r
	case lexer.GreaterEqual:
		result = l >= r
	case lexer.Less:
		result = l < r
	default:
		result = l <= r
	}
	return runtime.BoolValue{Val: result}, nil
}

func evaluateBitwise(op lexer.Token, left, right runtime.Value) (runtime.Value, error) {
	lf, rf, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	l, r := truncateToInt(lf), truncateToInt(rf)
	var result int64
	switch op.Kind {
	case lexer.BitAnd:
		result = l & r
	case lexer.BitOr:
		result = l | r
	case lexer.BitXor:
		result = l ^ r
	case lexer.LeftShift, lexer.RightShift:
		if r < 0 {
			return nil, runtime.NewRuntimeError(runtime.ErrTypeMismatch, op, "Operand must be a non-negative shift count.")
		}
		if op.Kind == lexer.LeftShift {
			result = l << uint64(r)
		} else {
			result = l >> uint64(r)
		}
	}
	return runtime.NumberValue{Val: float64(result)}, nil
}

func numberOperands(op lexer.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, runtime.NewRuntimeError(runtime.ErrTypeMismatch, op, "Operands must be of type number.")
	}
	return l.Val, r.Val, nil
}

func operandMismatch(op lexer.Token) error {
	return runtime.NewRuntimeError(runtime.ErrTypeMismatch, op, "Operand must be of type number.")
}

// truncateToInt drops the fractional part. NaN maps to 0 and values outside
// the int64 range saturate.
func truncateToInt(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}
