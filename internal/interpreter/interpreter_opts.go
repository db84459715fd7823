package interpreter

import (
	"io"
	"os"

	"github.com/leonardinius/treelox/internal/loxerrors"
)

type interpreterOpts struct {
	globals  *environment
	stdout   io.Writer
	reporter loxerrors.ErrReporter
}

var defaultInterpreterOpts = interpreterOpts{
	stdout: os.Stdout,
}

type InterpreterOption func(*interpreterOpts)

func WithGlobals(globals *environment) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.globals = globals
	}
}

func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

// WithErrorReporter makes Interpret report the run-time error that aborted it.
func WithErrorReporter(r loxerrors.ErrReporter) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.reporter = r
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.globals == nil {
		opts.globals = NewEnvironment()
	}

	return &opts
}
