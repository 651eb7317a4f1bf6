package runtime

import (
	"fmt"

	"github.com/fasihh/owo-lang/pkg/lexer"
)

// ErrorCode classifies runtime failures.
type ErrorCode string

const (
	ErrTypeMismatch      ErrorCode = "type_mismatch"
	ErrUndefinedVariable ErrorCode = "undefined_variable"
	ErrAlreadyDeclared   ErrorCode = "already_declared"
	ErrArityMismatch     ErrorCode = "arity_mismatch"
	ErrNotCallable       ErrorCode = "not_callable"
	ErrDivisionByZero    ErrorCode = "division_by_zero"
	ErrNative            ErrorCode = "native"
)

// RuntimeError aborts the current interpretation batch. Token locates the
// failure in source.
type RuntimeError struct {
	Code    ErrorCode
	Message string
	Token   lexer.Token
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Line is the source line of the offending token.
func (e *RuntimeError) Line() int {
	return e.Token.Line
}

// NewRuntimeError formats a runtime error anchored at tok.
func NewRuntimeError(code ErrorCode, tok lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...), Token: tok}
}
