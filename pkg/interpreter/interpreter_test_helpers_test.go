package interpreter

import (
	"bytes"
	"testing"

	"github.com/fasihh/owo-lang/pkg/parser"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

// runSource parses and interprets source, returning everything written to
// stdout and the runtime error, if any.
func runSource(t *testing.T, source string, interactive bool) (string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(Options{Stdout: &out, Interactive: interactive})
	stmts, diags := parser.ParseSource(source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", source, diags)
	}
	err := interp.Interpret(stmts)
	return out.String(), err
}

func mustRun(t *testing.T, source string) string {
	t.Helper()
	out, err := runSource(t, source, false)
	if err != nil {
		t.Fatalf("unexpected runtime error for %q: %v", source, err)
	}
	return out
}

func expectRuntimeError(t *testing.T, source string, code runtime.ErrorCode) *runtime.RuntimeError {
	t.Helper()
	_, err := runSource(t, source, false)
	if err == nil {
		t.Fatalf("expected runtime error for %q", source)
	}
	rtErr, ok := err.(*runtime.RuntimeError)
	if !ok {
		t.Fatalf("expected *runtime.RuntimeError, got %T (%v)", err, err)
	}
	if rtErr.Code != code {
		t.Fatalf("expected %s, got %s (%s)", code, rtErr.Code, rtErr.Message)
	}
	return rtErr
}
