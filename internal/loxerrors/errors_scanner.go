package loxerrors

import (
	"errors"
	"fmt"
)

var (
	ErrScanError               = errors.New("scan error.")
	ErrScanUnexpectedCharacter = errors.New("Unexpected character.")
	ErrScanUnterminatedString  = errors.New("Unterminated string.")
)

type ScannerError struct {
	line    int
	cause   error
	details string
}

func NewScanError(line int, cause error, details string) *ScannerError {
	return &ScannerError{line, cause, details}
}

// Error implements error.
func (s *ScannerError) Error() string {
	details := s.details
	if details != "" {
		details = " " + details
	}
	return fmt.Sprintf("[line %d] Error: %v%s", s.line, s.cause, details)
}

// Line implements LineError.
func (s *ScannerError) Line() int {
	return s.line
}

func (s *ScannerError) Unwrap() error {
	return s.cause
}

// Is reports every scanner error as ErrScanError.
func (s *ScannerError) Is(target error) bool {
	return target == ErrScanError
}

var _ error = (*ScannerError)(nil)
var _ unwrapInterface = (*ScannerError)(nil)
var _ LineError = (*ScannerError)(nil)
