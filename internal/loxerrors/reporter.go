package loxerrors

import (
	"fmt"
	"io"
)

// ErrReporter is the sink for diagnostics produced during a pass.
// It is shared by reference within a pass and is not safe for concurrent use.
type ErrReporter interface {
	ReportPanic(err error)
	ReportError(err error)
	// HadError reports whether anything was reported since the last Reset.
	HadError() bool
	Reset()
}

type errReporter struct {
	w        io.Writer
	hadError bool
}

func NewErrReporter(w io.Writer) *errReporter {
	return &errReporter{w: w}
}

// ReportPanic implements ErrReporter.
func (e *errReporter) ReportPanic(err error) {
	e.hadError = true
	DefaultReportPanic(e.w, err)
}

// ReportError implements ErrReporter.
func (e *errReporter) ReportError(err error) {
	e.hadError = true
	DefaultReportError(e.w, err)
}

// HadError implements ErrReporter.
func (e *errReporter) HadError() bool {
	return e.hadError
}

// Reset implements ErrReporter.
func (e *errReporter) Reset() {
	e.hadError = false
}

// DefaultReportPanic is the default implementation of ErrReporter.ReportPanic.
func DefaultReportPanic(w io.Writer, err error) {
	fmt.Fprintf(w, "FATAL %v\n", err)
}

// DefaultReportError is the default implementation of ErrReporter.ReportError.
func DefaultReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR %v\n", err)
}

var _ ErrReporter = (*errReporter)(nil)
