package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alecthomas/repr"
	"github.com/chzyer/readline"
	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/leonardinius/treelox/internal/interpreter"
	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/scanner"
	"github.com/leonardinius/treelox/internal/token"
)

var plog = capnslog.NewPackageLogger("github.com/leonardinius/treelox", "cmd")

// Process exit codes, sysexits(3) style.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
)

var (
	ErrUsage  = errors.New("usage")
	ErrConfig = errors.New("invalid config")
)

// lineReader is the part of readline the prompt loop needs.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

type LoxApp struct {
	stdin    io.ReadCloser
	stdout   io.Writer
	stderr   io.Writer
	cfg      Config
	reporter loxerrors.ErrReporter

	interpeter    interpreter.Interpreter
	newLineReader func(app *LoxApp) (lineReader, error)
}

type LoxAppOption func(*LoxApp)

func WithStdout(w io.Writer) LoxAppOption {
	return func(app *LoxApp) {
		app.stdout = w
	}
}

func WithStderr(w io.Writer) LoxAppOption {
	return func(app *LoxApp) {
		app.stderr = w
	}
}

func NewLoxApp(options ...LoxAppOption) *LoxApp {
	app := &LoxApp{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		cfg:           DefaultConfig(),
		newLineReader: newReadline,
	}
	for _, opt := range options {
		opt(app)
	}

	app.reporter = loxerrors.NewErrReporter(app.stderr)
	app.interpeter = interpreter.NewInterpreter(
		interpreter.WithStdout(app.stdout),
		interpreter.WithErrorReporter(app.reporter),
	)
	return app
}

// Main runs the command line (without the program name) and returns the
// process exit code.
func (app *LoxApp) Main(args []string) int {
	err := app.cli().Run(append([]string{"treelox"}, args...))
	return app.exitCode(err)
}

func (app *LoxApp) cli() *cli.App {
	return &cli.App{
		Name:        "treelox",
		Usage:       "tree-walking interpreter for Lox expressions and statements",
		ArgsUsage:   "[script]",
		HideVersion: true,
		Writer:      app.stdout,
		ErrWriter:   app.stderr,
		// Exit codes are decided by Main.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "load host configuration from `FILE`",
				EnvVars: []string{"TREELOX_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL`: CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.StringFlag{
				Name:    "eval",
				Aliases: []string{"e"},
				Usage:   "run `SOURCE` instead of a script",
			},
		},
		Before: app.setup,
		Action: app.runMain,
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "print the tokens of a script",
				ArgsUsage: "FILE",
				Action:    app.dumpTokens,
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a script",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "rpn", Usage: "print expressions in reverse polish notation"},
					&cli.BoolFlag{Name: "repr", Usage: "dump the statement structs"},
				},
				Action: app.dumpAst,
			},
		},
	}
}

func (app *LoxApp) setup(c *cli.Context) error {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return tracerr.Wrap(err)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	level, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(app.stderr, level >= capnslog.DEBUG))
	capnslog.SetGlobalLogLevel(level)

	app.cfg = cfg
	plog.Debugf("config %+v", cfg)
	return nil
}

func (app *LoxApp) runMain(c *cli.Context) error {
	if c.IsSet("eval") {
		if c.NArg() > 0 {
			return usageError("treelox [-e SOURCE | script]")
		}
		return app.run(c.Context, c.String("eval"))
	}

	switch c.NArg() {
	case 1:
		return app.runFile(c.Context, c.Args().First())
	case 0:
		return app.runPrompt(c.Context)
	}

	return usageError("treelox [script]")
}

func (app *LoxApp) runFile(ctx context.Context, scriptPath string) error {
	input, err := app.readFile(scriptPath)
	if err != nil {
		return err
	}

	return app.run(ctx, input)
}

func (app *LoxApp) runPrompt(ctx context.Context) error {
	rl, err := app.newLineReader(app)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return tracerr.Wrap(err)
		}

		// Language errors were reported already; the session goes on.
		if err := app.runLine(ctx, line); err != nil && !isLoxError(err) {
			return err
		}
		app.reporter.Reset()
	}
}

// runLine evaluates a bare expression and echoes its value, or runs the
// line as statements.
func (app *LoxApp) runLine(ctx context.Context, line string) error {
	if app.cfg.Echo {
		if expr, ok := app.bareExpression(line); ok {
			value, err := app.interpeter.Evaluate(expr)
			if err != nil {
				app.reporter.ReportPanic(err)
				return err
			}
			_, err = fmt.Fprintln(app.stdout, interpreter.Stringify(value))
			return err
		}
	}

	return app.run(ctx, line)
}

// bareExpression parses line as a single expression, silently.
func (app *LoxApp) bareExpression(line string) (parser.Expr, bool) {
	tokens, err := scanner.NewScanner(line).Scan()
	if err != nil || len(tokens) < 2 {
		return nil, false
	}

	expr, err := parser.NewParser(tokens).ParseExpression()
	return expr, err == nil
}

func (app *LoxApp) run(ctx context.Context, input string) error {
	statements, err := app.parse(input)
	if err != nil {
		return err
	}

	_, err = app.interpeter.Interpret(ctx, statements)
	return err
}

func (app *LoxApp) scan(input string) ([]token.Token, error) {
	tokens, err := scanner.NewScanner(input, scanner.WithErrorReporter(app.reporter)).Scan()
	plog.Debugf("scanned %d tokens", len(tokens))
	return tokens, err
}

func (app *LoxApp) parse(input string) ([]parser.Stmt, error) {
	tokens, err := app.scan(input)
	if err != nil {
		return nil, err
	}

	statements, err := parser.NewParser(tokens, parser.WithErrorReporter(app.reporter)).Parse()
	plog.Debugf("parsed %d statements", len(statements))
	return statements, err
}

func (app *LoxApp) dumpTokens(c *cli.Context) error {
	input, err := app.readArg(c, "treelox tokens FILE")
	if err != nil {
		return err
	}

	tokens, err := app.scan(input)
	for _, tok := range tokens {
		fmt.Fprintf(app.stdout, "%#v\n", tok)
	}
	return err
}

func (app *LoxApp) dumpAst(c *cli.Context) error {
	input, err := app.readArg(c, "treelox ast [--rpn | --repr] FILE")
	if err != nil {
		return err
	}

	statements, err := app.parse(input)
	if err != nil {
		return err
	}

	switch {
	case c.Bool("repr"):
		fmt.Fprintln(app.stdout, repr.String(statements, repr.Indent("  ")))
	case c.Bool("rpn"):
		printer := parser.NewRPNPrinter()
		for _, stmt := range statements {
			fmt.Fprintln(app.stdout, printer.PrintStmt(stmt))
		}
	default:
		fmt.Fprint(app.stdout, parser.NewAstPrinter().PrintProgram(statements))
	}
	return nil
}

func (app *LoxApp) readArg(c *cli.Context, usage string) (string, error) {
	if c.NArg() != 1 {
		return "", usageError(usage)
	}
	return app.readFile(c.Args().First())
}

func (app *LoxApp) readFile(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(bytes), nil
}

// exitCode maps the outcome of a run to a process exit code. Language
// errors reach the user through the reporter as they happen; anything
// else is reported here.
func (app *LoxApp) exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, loxerrors.ErrScanError), errors.Is(err, loxerrors.ErrParseError):
		return ExitDataErr
	case errors.Is(err, loxerrors.ErrRuntimeError):
		return ExitSoftware
	}

	app.reporter.ReportPanic(err)
	plog.Debugf("%s", tracerr.Sprint(err))

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOErr
	}
	return ExitUsage
}

func usageError(usage string) error {
	return fmt.Errorf("%w: %s", ErrUsage, usage)
}

func isLoxError(err error) bool {
	return errors.Is(err, loxerrors.ErrScanError) ||
		errors.Is(err, loxerrors.ErrParseError) ||
		errors.Is(err, loxerrors.ErrRuntimeError)
}

func newReadline(app *LoxApp) (lineReader, error) {
	return readline.NewEx(&readline.Config{
		Prompt:      app.cfg.Prompt,
		HistoryFile: app.cfg.HistoryFile,
		Stdin:       app.stdin,
		Stdout:      app.stdout,
		Stderr:      app.stderr,
	})
}
