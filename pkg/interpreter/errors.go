package interpreter

import (
	"errors"
	"fmt"
)

// ErrorType represents the kind of interpreter error.
type ErrorType string

const (
	// Syntax errors raised while building commands from source lines
	ErrorInvalidCommand   ErrorType = "INVALID_COMMAND"
	ErrorInvalidParameter ErrorType = "INVALID_PARAMETER"
	ErrorInvalidColor     ErrorType = "INVALID_COLOR"
	ErrorUnmatchedBlock   ErrorType = "UNMATCHED_BLOCK"

	// Runtime errors raised while executing commands
	ErrorUnresolvedOperand      ErrorType = "UNRESOLVED_OPERAND"
	ErrorDivisionByZero         ErrorType = "DIVISION_BY_ZERO"
	ErrorUnsupportedOperator    ErrorType = "UNSUPPORTED_OPERATOR"
	ErrorInvalidConditionFormat ErrorType = "INVALID_CONDITION_FORMAT"
	ErrorInvalidExpression      ErrorType = "INVALID_EXPRESSION"
	ErrorUndefinedProcedure     ErrorType = "UNDEFINED_PROCEDURE"
	ErrorDuplicateProcedure     ErrorType = "DUPLICATE_PROCEDURE"
	ErrorDuplicateArray         ErrorType = "DUPLICATE_ARRAY"
	ErrorIndexOutOfRange        ErrorType = "INDEX_OUT_OF_RANGE"
	ErrorArgumentCount          ErrorType = "ARGUMENT_COUNT"
)

// ErrEmptyScript is returned when the script text is empty or whitespace only.
var ErrEmptyScript = errors.New("script cannot be empty or whitespace")

// Error is a typed interpreter error carrying a human-readable message.
type Error struct {
	Type    ErrorType
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// IsSyntax reports whether the error is detected before execution.
func (e *Error) IsSyntax() bool {
	switch e.Type {
	case ErrorInvalidCommand, ErrorInvalidParameter, ErrorInvalidColor, ErrorUnmatchedBlock:
		return true
	default:
		return false
	}
}

// NewError creates a new Error.
func NewError(errType ErrorType, format string, args ...any) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsErrorType reports whether any error in err's chain is an *Error of the given type.
func IsErrorType(err error, errType ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// NewInvalidParameterError creates a parameter error echoing the offending text.
func NewInvalidParameterError(format string, args ...any) *Error {
	return NewError(ErrorInvalidParameter, format, args...)
}

// NewUnresolvedOperandError creates an unresolved operand error.
func NewUnresolvedOperandError(token string) *Error {
	return NewError(ErrorUnresolvedOperand, "'%s' is neither a valid variable nor an integer", token)
}

// NewDivisionByZeroError creates a division by zero error.
func NewDivisionByZeroError() *Error {
	return NewError(ErrorDivisionByZero, "division by zero")
}

// NewIndexOutOfRangeError creates an index out of range error.
func NewIndexOutOfRangeError(name string, index, length int) *Error {
	return NewError(ErrorIndexOutOfRange, "index %d out of range for array '%s' (length %d)", index, name, length)
}

// NewUndefinedProcedureError creates an undefined procedure error.
func NewUndefinedProcedureError(name string) *Error {
	return NewError(ErrorUndefinedProcedure, "method '%s' is not defined", name)
}

// CommandError wraps a failure raised while parsing one source line.
// Line is 1-indexed and Text is the raw line as written in the script.
type CommandError struct {
	Line int
	Text string
	Err  error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// UnclosedBlockError is returned when the script ends with a block still open.
type UnclosedBlockError struct {
	Construct string // "loop", "if block" or "method block"
	Header    string // the opening line
	OpenedAt  int
	LastLine  int
}

// Error implements the error interface.
func (e *UnclosedBlockError) Error() string {
	return fmt.Sprintf("unclosed %s: %q opened at line %d is never closed (reached end of script at line %d)",
		e.Construct, e.Header, e.OpenedAt, e.LastLine)
}

// ExecError wraps a failure raised while executing a command.
// The innermost failing command is reported; enclosing blocks pass it through.
type ExecError struct {
	Line int
	Text string
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s failed at line %d (%q): %v", e.Kind, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}
