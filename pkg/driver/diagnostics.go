package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fasihh/owo-lang/pkg/lexer"
	"github.com/fasihh/owo-lang/pkg/runtime"
)

// Reporter receives user-facing errors from every phase.
type Reporter interface {
	// Error reports a lexical or syntax error. where is "at 'x'", "at end"
	// or empty.
	Error(line int, where, message string)
	// RuntimeError reports an error raised while executing.
	RuntimeError(message string, line int)
}

// ConsoleReporter writes errors to a terminal stream and remembers whether
// any were seen since the last Reset.
type ConsoleReporter struct {
	out             io.Writer
	hadError        bool
	hadRuntimeError bool
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) Error(line int, where, message string) {
	r.hadError = true
	fmt.Fprintln(r.out, lexer.Diagnostic{Line: line, Where: where, Message: message}.String())
}

func (r *ConsoleReporter) RuntimeError(message string, line int) {
	r.hadRuntimeError = true
	fmt.Fprintf(r.out, "%s\n[line %d]\n", message, line)
}

func (r *ConsoleReporter) HadError() bool { return r.hadError }

func (r *ConsoleReporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears the error flags; the REPL calls it before every line.
func (r *ConsoleReporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}

// DiagnosticsError carries the lexical and syntax errors of one source.
type DiagnosticsError struct {
	Path        string
	Diagnostics []lexer.Diagnostic
}

func (e *DiagnosticsError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	switch len(e.Diagnostics) {
	case 0:
		b.WriteString("invalid source")
	case 1:
		b.WriteString(e.Diagnostics[0].String())
	default:
		fmt.Fprintf(&b, "%d errors, first: %s", len(e.Diagnostics), e.Diagnostics[0].String())
	}
	return b.String()
}

// ReportDiagnostics forwards every diagnostic to rep in order.
func ReportDiagnostics(rep Reporter, diags []lexer.Diagnostic) {
	for _, d := range diags {
		rep.Error(d.Line, d.Where, d.Message)
	}
}

// ReportRuntime forwards err to rep. Errors that did not come from the
// evaluator are reported without a source line.
func ReportRuntime(rep Reporter, err error) {
	var rtErr *runtime.RuntimeError
	if errors.As(err, &rtErr) {
		rep.RuntimeError(rtErr.Message, rtErr.Line())
		return
	}
	rep.RuntimeError(err.Error(), 0)
}
