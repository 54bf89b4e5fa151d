package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	// Lexical errors.
	ErrUnexpectedChar      = NewError("unexpected character")
	ErrUnterminatedString  = NewError("unterminated string")
	ErrInvalidNumber       = NewError("invalid number")
	ErrBadUnit             = NewError("bad unit")
	ErrParse               = NewError("parse error")
	ErrMaxDepthExceeded    = NewError("maximum nesting depth exceeded")
	ErrReadInput           = NewError("failed to read input")
	ErrInvalidOperatorType = NewError("invalid operator token")

	// Runtime errors.
	ErrUnaryNumberRequired    = NewError("unary operator requires a numeric operand")
	ErrBinaryNumberRequired   = NewError("operator requires numeric operands")
	ErrNumberOrStringRequired = NewError("operator + requires a number or string")
	ErrUndefinedVariable      = NewError("undefined variable")
	ErrInvalidExpr            = NewError("invalid expression")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error with the same base message.
// Errors derived from a sentinel with [Error.Wrap] or [Error.With] therefore
// still match the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SyntaxError is a lexical or grammatical error attributed to a source line.
// Where is empty or has the form " at '<lexeme>'" or " at end".
type SyntaxError struct {
	Line    int
	Where   string
	Message string
	Err     error
}

// Error implements the error interface using the diagnostic line format.
func (e *SyntaxError) Error() string {
	return formatDiagnostic(e.Line, e.Where, e.Message)
}

// Unwrap returns the sentinel classifying the error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Line),
		slog.String("where", e.Where),
		slog.String("message", e.Message),
	)
}

// RuntimeError is an evaluation failure attributed to the operator (or
// identifier) that caused it.
type RuntimeError struct {
	Line     int
	Operator string
	Err      error
}

func newRuntimeError(line int, operator string, err error) *RuntimeError {
	return &RuntimeError{Line: line, Operator: operator, Err: err}
}

// Where returns the diagnostic location suffix naming the operator.
func (e *RuntimeError) Where() string {
	if e.Operator == "" {
		return ""
	}

	return " at '" + e.Operator + "'"
}

// Message returns the diagnostic text without location.
func (e *RuntimeError) Message() string {
	if e.Err == nil {
		return "runtime error"
	}

	return e.Err.Error()
}

// Error implements the error interface using the diagnostic line format.
func (e *RuntimeError) Error() string {
	return formatDiagnostic(e.Line, e.Where(), e.Message())
}

// Unwrap returns the sentinel classifying the error.
func (e *RuntimeError) Unwrap() error { return e.Err }

// Report delivers the error to r.
func (e *RuntimeError) Report(r Reporter) {
	r.Report(e.Line, e.Where(), e.Message())
}

// LogValue implements slog.LogValuer.
func (e *RuntimeError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Line),
		slog.String("operator", e.Operator),
		slog.String("message", e.Message()),
	)
}

// formatDiagnostic renders the canonical one-line diagnostic.
func formatDiagnostic(line int, where, msg string) string {
	return fmt.Sprintf("[line %d] Error%s: %s", line, where, msg)
}
