package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrRuntimeError                        = errors.New("runtime error.")
	ErrRuntimeOperandMustBeNumber          = errors.New("Operand must be a number.")
	ErrRuntimeOperandsMustBeNumbers        = errors.New("Operands must be numbers.")
	ErrRuntimeOperandsMustNumbersOrStrings = errors.New("Operands must be two numbers or two strings.")
	ErrRuntimeUndefinedVariable            = errors.New("Undefined variable")
)

// ErrRuntimeOperand attaches the offending operand to cause.
func ErrRuntimeOperand(cause error, operand string) error {
	return fmt.Errorf("%w Got %s.", cause, operand)
}

// ErrRuntimeOperands attaches both offending operands to cause.
func ErrRuntimeOperands(cause error, left, right string) error {
	return fmt.Errorf("%w Got %s and %s.", cause, left, right)
}

func ErrRuntimeUndefinedVariableName(name string) error {
	return fmt.Errorf("%w '%s'.", ErrRuntimeUndefinedVariable, name)
}

func NewRuntimeError(tok *token.Token, cause error) error {
	return &RuntimeError{tok, cause}
}

type RuntimeError struct {
	tok   *token.Token
	cause error
}

// Error implements error.
func (r *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %v", r.tok.Line, r.tok.Lexeme, r.cause)
}

// Line implements LineError.
func (r *RuntimeError) Line() int {
	return r.tok.Line
}

// Token returns the operator or name the failure is attributed to.
func (r *RuntimeError) Token() token.Token {
	return *r.tok
}

func (r *RuntimeError) Unwrap() error {
	return r.cause
}

// Is reports every runtime error as ErrRuntimeError.
func (r *RuntimeError) Is(target error) bool {
	return target == ErrRuntimeError
}

var _ error = (*RuntimeError)(nil)
var _ unwrapInterface = (*RuntimeError)(nil)
var _ LineError = (*RuntimeError)(nil)
