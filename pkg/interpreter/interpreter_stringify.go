package interpreter

import (
	"math"
	"strconv"
	"strings"

	"github.com/fasihh/owo-lang/pkg/runtime"
)

// FormatNumber renders a number with fifteen fractional digits and then
// trims trailing zeros and a dangling decimal point, so 3.0 prints as "3".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', 15, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Display is the user-facing form of a value, used by print and the REPL.
func Display(v runtime.Value) string {
	return valueToString(v)
}

func valueToString(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.NumberValue:
		return FormatNumber(val.Val)
	case runtime.StringValue:
		return val.Val
	case runtime.BoolValue:
		return strconv.FormatBool(val.Val)
	case runtime.NilValue, nil:
		return "nil"
	case runtime.Callable:
		return "<fn " + val.Name() + ">"
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// isTruthy maps any value onto a boolean: non-zero numbers, non-empty
// strings and true are truthy; nil and callables never are.
func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.NumberValue:
		return val.Val != 0
	case runtime.StringValue:
		return val.Val != ""
	case runtime.BoolValue:
		return val.Val
	default:
		return false
	}
}

// valuesEqual never coerces across types. nil equals only nil and
// callables compare by identity.
func valuesEqual(left, right runtime.Value) bool {
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	case *runtime.FunctionValue:
		r, ok := right.(*runtime.FunctionValue)
		return ok && l == r
	case runtime.NativeFunctionValue:
		r, ok := right.(runtime.NativeFunctionValue)
		return ok && l.FuncName == r.FuncName
	default:
		return false
	}
}
