package interpreter

import (
	"strings"
	"testing"

	"github.com/fasihh/owo-lang/pkg/parser"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

func TestPrintPrograms(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"string plus number", `print("1" + 2);`, "12\n"},
		{"equality", `print(2 + 2 == 4);`, "true\n"},
		{"whole float", `print("x=" + 3.0);`, "x=3\n"},
		{"fraction", `print(0.1 + 0.2);`, "0.3\n"},
		{"inf", `print(1 / 0);`, "inf\n"},
		{"neg inf", `print(-1 / 0);`, "-inf\n"},
		{"nil", `var a; print(a);`, "nil\n"},
		{"function display", `fun add(a, b) { return a + b; } print(add);`, "<fn add>\n"},
		{"native display", `print(print);`, "<fn print>\n"},
		{"call", `fun add(a, b) { return a + b; } print(add(2, 3));`, "5\n"},
		{"precedence", `print(1 + 2 * 3 - 4 / 2);`, "5\n"},
		{"grouping", `print((1 + 2) * 3);`, "9\n"},
		{"bitwise binds tighter than equality", `print(2 == 3 & 2);`, "true\n"},
		{"ternary right assoc", `print(0 ? 1 : 0 ? 2 : 3);`, "3\n"},
		{"assignment is expression", `var a; var b; a = b = 4; print(a + b);`, "8\n"},
		{"multi var", `var a = 1, b = a + 1; print(b);`, "2\n"},
		{"comma statement", `var a = 1; a = 2, print(a);`, "2\n"},
		{"and keyword", `print(1 and 0);`, "false\n"},
		{"or keyword", `print(0 or "x");`, "true\n"},
		{"if else", `if (0) print("then"); else print("else");`, "else\n"},
		{"dangling else", `if (1) if (0) print("a"); else print("b");`, "b\n"},
		{"function fall through", `fun f() {} print(f());`, "nil\n"},
		{"bare return", `fun f() { return; print("x"); } print(f());`, "nil\n"},
		{"recursion", `fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print(fib(10));`, "55\n"},
		{"function equality", `fun f() {} print(f == f);`, "true\n"},
		{"modulo", `print(10 % 4);`, "2\n"},
		{"not", `print(!nil);`, "true\n"},
		{"bit not", `print(~0);`, "-1\n"},
		{"shift", `print(1 << 10 >> 2);`, "256\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustRun(t, tc.source); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestClosureCapturesDeclaringScope(t *testing.T) {
	source := `
var x = 1;
fun show() { print(x); }
{
  var x = 2;
  show();
}
`
	if got := mustRun(t, source); got != "1\n" {
		t.Fatalf("expected closure to see outer x, got %q", got)
	}
}

func TestClosureOutlivesBlock(t *testing.T) {
	source := `
fun makeCounter() {
  var count = 0;
  fun inc() {
    count = count + 1;
    return count;
  }
  return inc;
}
var c = makeCounter();
c();
c();
print(c());
var d = makeCounter();
print(d());
`
	if got := mustRun(t, source); got != "3\n1\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	source := `
fun pick(n) {
  {
    if (n > 0) {
      { return "positive"; }
    }
  }
  return "other";
}
print(pick(1));
print(pick(-1));
`
	if got := mustRun(t, source); got != "positive\nother\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	source := `
fun first(a, b) { return a; }
var log = "";
fun note(s) { log = log + s; return s; }
first(note("a"), note("b"));
print(log);
`
	if got := mustRun(t, source); got != "ab\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestBlockShadowingAndRedeclaration(t *testing.T) {
	if got := mustRun(t, `var a = 1; { var a = 2; print(a); } print(a);`); got != "2\n1\n" {
		t.Fatalf("unexpected output %q", got)
	}
	rtErr := expectRuntimeError(t, `var a = 1; var a = 2;`, runtime.ErrAlreadyDeclared)
	if rtErr.Message != "Variable 'a' has already been declared." {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
	expectRuntimeError(t, `fun f() {} fun f() {}`, runtime.ErrAlreadyDeclared)
}

func TestAssignmentUpdatesEnclosingScope(t *testing.T) {
	if got := mustRun(t, `var a = 1; { a = 5; } print(a);`); got != "5\n" {
		t.Fatalf("unexpected output %q", got)
	}
	rtErr := expectRuntimeError(t, `missing = 1;`, runtime.ErrUndefinedVariable)
	if rtErr.Message != "Undefined variable 'missing'." {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
}

func TestArityMismatch(t *testing.T) {
	rtErr := expectRuntimeError(t, "fun add(a, b) { return a + b; }\nadd(1);", runtime.ErrArityMismatch)
	if rtErr.Message != "Expected 2 arguments but got 1." {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
	if rtErr.Line() != 2 {
		t.Fatalf("expected error on line 2, got %d", rtErr.Line())
	}
	rtErr = expectRuntimeError(t, `fun add(a, b) { return a + b; } add(1, 2, 3);`, runtime.ErrArityMismatch)
	if rtErr.Message != "Expected 2 arguments but got 3." {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
}

func TestCallingNonFunction(t *testing.T) {
	for _, source := range []string{`"str"();`, `var a = 1; a();`, `nil();`} {
		rtErr := expectRuntimeError(t, source, runtime.ErrNotCallable)
		if rtErr.Message != "Can only call functions." {
			t.Fatalf("%s: unexpected message %q", source, rtErr.Message)
		}
	}
}

func TestRuntimeErrorStopsBatch(t *testing.T) {
	out, err := runSource(t, "print(\"before\");\nprint(-\"x\");\nprint(\"after\");", false)
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if out != "before\n" {
		t.Fatalf("statements after the error should not run, got %q", out)
	}
	rtErr := err.(*runtime.RuntimeError)
	if rtErr.Line() != 2 || rtErr.Message != "Operand must be of type number." {
		t.Fatalf("unexpected error %#v", rtErr)
	}
}

func TestTopLevelReturnEndsBatch(t *testing.T) {
	out, err := runSource(t, `print(1); return; print(2);`, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInteractiveEchoesExpressionStatements(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{`1 ? 2 : 3;`, "2\n"},
		{`1 + 1, "a" + "b";`, "2\nab\n"},
		{`var a = 3; a;`, "3\n"},
		{`print("x");`, "x\nnil\n"},
		{`{ 5; }`, ""},
		{`fun f() { 1; } f();`, "nil\n"},
	}
	for _, tc := range cases {
		out, err := runSource(t, tc.source, true)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.source, err)
		}
		if out != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.source, tc.want, out)
		}
	}
}

func TestGlobalsPersistAcrossBatches(t *testing.T) {
	var out strings.Builder
	interp := New(Options{Stdout: &out, Interactive: true})
	for _, line := range []string{`var a = 40;`, `fun inc(n) { return n + 1; }`, `inc(inc(a));`} {
		stmts, diags := parser.ParseSource(line)
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if err := interp.Interpret(stmts); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if out.String() != "42\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
