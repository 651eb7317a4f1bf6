package interpreter

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

func TestEvaluateStringLiteral(t *testing.T) {
	interp := New(Options{})
	val, err := interp.Evaluate(ast.Str("hello"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	str, ok := val.(runtime.StringValue)
	if !ok || str.Val != "hello" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestEvaluateIdentifierLookup(t *testing.T) {
	interp := New(Options{})
	global := interp.GlobalEnvironment()
	if err := global.Define("greeting", runtime.StringValue{Val: "hello"}, ast.Name("greeting")); err != nil {
		t.Fatalf("define failed: %v", err)
	}
	val, err := interp.evaluateExpression(ast.ID("greeting"), global)
	if err != nil {
		t.Fatalf("identifier lookup failed: %v", err)
	}
	if val != (runtime.StringValue{Val: "hello"}) {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestBlockCreatesScope(t *testing.T) {
	interp := New(Options{})
	global := interp.GlobalEnvironment()
	stmts := []ast.Statement{
		ast.BlockOf(ast.Var("x", ast.Str("inner"))),
	}
	if err := interp.Interpret(stmts); err != nil {
		t.Fatalf("block evaluation failed: %v", err)
	}
	if global.Has("x") {
		t.Fatalf("expected inner binding to stay scoped")
	}
}

func TestBinaryOperators(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expression
		want runtime.Value
	}{
		{"add", ast.Bin("+", ast.Num(1), ast.Num(2)), runtime.NumberValue{Val: 3}},
		{"sub", ast.Bin("-", ast.Num(1), ast.Num(2)), runtime.NumberValue{Val: -1}},
		{"mul", ast.Bin("*", ast.Num(1.5), ast.Num(2)), runtime.NumberValue{Val: 3}},
		{"div", ast.Bin("/", ast.Num(7), ast.Num(2)), runtime.NumberValue{Val: 3.5}},
		{"mod truncates", ast.Bin("%", ast.Num(7.9), ast.Num(2.2)), runtime.NumberValue{Val: 1}},
		{"mod negative", ast.Bin("%", ast.Num(-7), ast.Num(3)), runtime.NumberValue{Val: -1}},
		{"concat", ast.Bin("+", ast.Str("a"), ast.Str("b")), runtime.StringValue{Val: "ab"}},
		{"string number", ast.Bin("+", ast.Str("x="), ast.Num(3)), runtime.StringValue{Val: "x=3"}},
		{"number string", ast.Bin("+", ast.Num(0.25), ast.Str("!")), runtime.StringValue{Val: "0.25!"}},
		{"and bits", ast.Bin("&", ast.Num(6), ast.Num(3)), runtime.NumberValue{Val: 2}},
		{"or bits", ast.Bin("|", ast.Num(6), ast.Num(3)), runtime.NumberValue{Val: 7}},
		{"xor bits", ast.Bin("^", ast.Num(6), ast.Num(3)), runtime.NumberValue{Val: 5}},
		{"shl", ast.Bin("<<", ast.Num(1), ast.Num(4)), runtime.NumberValue{Val: 16}},
		{"shr", ast.Bin(">>", ast.Num(-16), ast.Num(2)), runtime.NumberValue{Val: -4}},
		{"bits truncate", ast.Bin("|", ast.Num(2.7), ast.Num(0)), runtime.NumberValue{Val: 2}},
		{"gt", ast.Bin(">", ast.Num(3), ast.Num(2)), runtime.BoolValue{Val: true}},
		{"ge", ast.Bin(">=", ast.Num(2), ast.Num(2)), runtime.BoolValue{Val: true}},
		{"lt numeric", ast.Bin("<", ast.Num(0.5), ast.Num(0.25)), runtime.BoolValue{Val: false}},
		{"le", ast.Bin("<=", ast.Num(-1), ast.Num(0)), runtime.BoolValue{Val: true}},
		{"eq", ast.Bin("==", ast.Num(2), ast.Num(2)), runtime.BoolValue{Val: true}},
		{"eq cross type", ast.Bin("==", ast.Num(1), ast.Str("1")), runtime.BoolValue{Val: false}},
		{"eq nil nil", ast.Bin("==", ast.Nil(), ast.Nil()), runtime.BoolValue{Val: true}},
		{"eq nil false", ast.Bin("==", ast.Nil(), ast.Bool(false)), runtime.BoolValue{Val: false}},
		{"neq", ast.Bin("!=", ast.Str("a"), ast.Str("b")), runtime.BoolValue{Val: true}},
		{"and result is bool", ast.Bin("&&", ast.Num(1), ast.Str("x")), runtime.BoolValue{Val: true}},
		{"or result is bool", ast.Bin("||", ast.Num(0), ast.Str("")), runtime.BoolValue{Val: false}},
	}
	interp := New(Options{})
	for _, tc := range cases {
		got, err := interp.Evaluate(tc.expr, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.name, tc.want, got)
		}
	}
}

func TestUnaryOperators(t *testing.T) {
	cases := []struct {
		expr ast.Expression
		want runtime.Value
	}{
		{ast.Un("-", ast.Num(3)), runtime.NumberValue{Val: -3}},
		{ast.Un("!", ast.Num(0)), runtime.BoolValue{Val: true}},
		{ast.Un("!", ast.Str("x")), runtime.BoolValue{Val: false}},
		{ast.Un("!", ast.Nil()), runtime.BoolValue{Val: true}},
		{ast.Un("~", ast.Num(5)), runtime.NumberValue{Val: -6}},
		{ast.Un("~", ast.Num(5.9)), runtime.NumberValue{Val: -6}},
	}
	interp := New(Options{})
	for _, tc := range cases {
		got, err := interp.Evaluate(tc.expr, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", ast.PrintExpression(tc.expr), err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", ast.PrintExpression(tc.expr), tc.want, got)
		}
	}
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	interp := New(Options{})
	val, err := interp.Evaluate(ast.Bin("/", ast.Num(1), ast.Num(0)), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := val.(runtime.NumberValue); !math.IsInf(n.Val, 1) {
		t.Fatalf("expected +inf, got %v", n.Val)
	}
	val, _ = interp.Evaluate(ast.Bin("/", ast.Num(0), ast.Num(0)), nil)
	if n := val.(runtime.NumberValue); !math.IsNaN(n.Val) {
		t.Fatalf("expected nan, got %v", n.Val)
	}
}

func TestModuloByZeroIsRuntimeError(t *testing.T) {
	interp := New(Options{})
	_, err := interp.Evaluate(ast.Bin("%", ast.Num(1), ast.Num(0.5)), nil)
	var rtErr *runtime.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Code != runtime.ErrDivisionByZero {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestTypeMismatches(t *testing.T) {
	cases := []struct {
		expr    ast.Expression
		message string
	}{
		{ast.Bin("+", ast.Bool(true), ast.Num(1)), "Operands must be of type number and/or string."},
		{ast.Bin("+", ast.Nil(), ast.Str("x")), "Operands must be of type number and/or string."},
		{ast.Bin("-", ast.Str("a"), ast.Num(1)), "Operands must be of type number."},
		{ast.Bin("<", ast.Str("a"), ast.Str("b")), "Operands must be of type number."},
		{ast.Bin("&", ast.Bool(true), ast.Num(1)), "Operands must be of type number."},
		{ast.Un("-", ast.Str("a")), "Operand must be of type number."},
		{ast.Un("~", ast.Nil()), "Operand must be of type number."},
	}
	interp := New(Options{})
	for _, tc := range cases {
		_, err := interp.Evaluate(tc.expr, nil)
		rtErr, ok := err.(*runtime.RuntimeError)
		if !ok || rtErr.Code != runtime.ErrTypeMismatch {
			t.Fatalf("%s: expected type mismatch, got %v", ast.PrintExpression(tc.expr), err)
		}
		if rtErr.Message != tc.message {
			t.Fatalf("%s: expected %q, got %q", ast.PrintExpression(tc.expr), tc.message, rtErr.Message)
		}
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	interp := New(Options{})
	// The right side would fail with an undefined variable if evaluated.
	for _, expr := range []ast.Expression{
		ast.Bin("&&", ast.Bool(false), ast.ID("missing")),
		ast.Bin("||", ast.Bool(true), ast.ID("missing")),
	} {
		if _, err := interp.Evaluate(expr, nil); err != nil {
			t.Fatalf("%s: right side should not run: %v", ast.PrintExpression(expr), err)
		}
	}
}

func TestTernaryEvaluatesOneBranch(t *testing.T) {
	interp := New(Options{})
	val, err := interp.Evaluate(ast.Tern(ast.Num(1), ast.Num(2), ast.ID("missing")), nil)
	if err != nil {
		t.Fatalf("untaken branch evaluated: %v", err)
	}
	if val != (runtime.NumberValue{Val: 2}) {
		t.Fatalf("unexpected value %#v", val)
	}
	val, err = interp.Evaluate(ast.Tern(ast.Str(""), ast.ID("missing"), ast.Num(3)), nil)
	if err != nil || val != (runtime.NumberValue{Val: 3}) {
		t.Fatalf("unexpected result %#v (%v)", val, err)
	}
}

func TestFunctionDeclarationAndCall(t *testing.T) {
	var out bytes.Buffer
	interp := New(Options{Stdout: &out})
	stmts := []ast.Statement{
		ast.Fn("add", []string{"a", "b"}, ast.Ret(ast.Bin("+", ast.ID("a"), ast.ID("b")))),
		ast.Expr(ast.CallExpr(ast.ID("print"), ast.CallExpr(ast.ID("add"), ast.Num(2), ast.Num(3)))),
	}
	if err := interp.Interpret(stmts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "5\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCallFunctionFromHost(t *testing.T) {
	interp := New(Options{})
	stmts := []ast.Statement{
		ast.Fn("twice", []string{"x"}, ast.Ret(ast.Bin("*", ast.ID("x"), ast.Num(2)))),
		ast.Fn("noop", nil),
	}
	if err := interp.Interpret(stmts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, _ := interp.GlobalEnvironment().Get("twice", ast.Name("twice"))
	val, err := interp.CallFunction(twice, []runtime.Value{runtime.NumberValue{Val: 21}})
	if err != nil || val != (runtime.NumberValue{Val: 42}) {
		t.Fatalf("unexpected result %#v (%v)", val, err)
	}
	noop, _ := interp.GlobalEnvironment().Get("noop", ast.Name("noop"))
	val, err = interp.CallFunction(noop, nil)
	if err != nil || val != runtime.Nil {
		t.Fatalf("falling off the end should yield nil, got %#v (%v)", val, err)
	}
}

func TestDefineNativeHostFunction(t *testing.T) {
	var out bytes.Buffer
	interp := New(Options{Stdout: &out})
	err := interp.DefineNative("fail", 0, func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
		return nil, errors.New("host failure")
	})
	if err != nil {
		t.Fatalf("define native: %v", err)
	}
	if err := interp.DefineNative("print", 1, nil); err == nil {
		t.Fatalf("expected redefinition of print to fail")
	}
	runErr := interp.Interpret([]ast.Statement{ast.Expr(ast.CallExpr(ast.ID("fail")))})
	rtErr, ok := runErr.(*runtime.RuntimeError)
	if !ok || rtErr.Code != runtime.ErrNative || rtErr.Message != "host failure" {
		t.Fatalf("unexpected error %#v", runErr)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		val  runtime.Value
		want string
	}{
		{runtime.NumberValue{Val: 3}, "3"},
		{runtime.NumberValue{Val: 3.5}, "3.5"},
		{runtime.NumberValue{Val: 0.1}, "0.1"},
		{runtime.NumberValue{Val: -2.25}, "-2.25"},
		{runtime.NumberValue{Val: 1e21}, "1000000000000000000000"},
		{runtime.NumberValue{Val: math.Inf(1)}, "inf"},
		{runtime.NumberValue{Val: math.Inf(-1)}, "-inf"},
		{runtime.StringValue{Val: "hi"}, "hi"},
		{runtime.BoolValue{Val: false}, "false"},
		{runtime.Nil, "nil"},
		{runtime.NativeFunctionValue{FuncName: "print", FuncArity: 1}, "<fn print>"},
		{&runtime.FunctionValue{Declaration: ast.Fn("f", nil)}, "<fn f>"},
	}
	for _, tc := range cases {
		if got := Display(tc.val); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
