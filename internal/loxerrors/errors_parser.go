package loxerrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/token"
)

var (
	ErrParseError                                 = errors.New("parse error.")
	ErrParseUnexpectedToken                       = errors.New("Expect expression.")
	ErrParseUnexpectedVariableName                = errors.New("Expect variable name.")
	ErrParseExpectedRightParenToken               = errors.New("Expect ')' after expression.")
	ErrParseExpectedSemicolonTokenAfterPrintValue = errors.New("Expect ';' after value.")
	ErrParseExpectedSemicolonTokenAfterExpr       = errors.New("Expect ';' after expression.")
	ErrParseExpectedSemicolonTokenAfterVar        = errors.New("Expect ';' after variable declaration.")
	ErrParseExpectedEndOfExpression               = errors.New("Expect end of expression.")
)

func NewParseError(tok *token.Token, cause error) error {
	return &ParserError{tok: tok, cause: cause}
}

type ParserError struct {
	tok   *token.Token
	cause error
}

// Error implements error.
func (p *ParserError) Error() string {
	where := "at end"
	if p.tok.Type != token.EOF {
		where = fmt.Sprintf("at '%s'", p.tok.Lexeme)
	}
	return fmt.Sprintf("[line %d] Error %s: %v", p.tok.Line, where, p.cause)
}

// Line implements LineError.
func (p *ParserError) Line() int {
	return p.tok.Line
}

// Token returns the token the parser stopped at.
func (p *ParserError) Token() token.Token {
	return *p.tok
}

func (p *ParserError) Unwrap() error {
	return p.cause
}

// Is reports every parser error as ErrParseError.
func (p *ParserError) Is(target error) bool {
	return target == ErrParseError
}

var _ error = (*ParserError)(nil)
var _ unwrapInterface = (*ParserError)(nil)
var _ LineError = (*ParserError)(nil)
