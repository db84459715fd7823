package interpreter

import (
	"context"
	"fmt"
	"io"

	"github.com/coreos/pkg/capnslog"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/parser"
	"github.com/leonardinius/treelox/internal/token"
)

var plog = capnslog.NewPackageLogger("github.com/leonardinius/treelox", "interpreter")

type Interpreter interface {
	// Interpret executes the statements in order.
	// Returns the value of the last statement executed; print and var
	// statements yield nil. The first run-time error aborts execution.
	//
	// Not thread safe.
	// Global bindings persist across calls.
	Interpret(ctx context.Context, statements []parser.Stmt) (Value, error)

	// Evaluate evaluates the given expression.
	// Returns the result of the expression and an error if any.
	//
	// Not thread safe.
	Evaluate(expr parser.Expr) (Value, error)
}

type interpreter struct {
	globals  *environment
	stdout   io.Writer
	reporter loxerrors.ErrReporter
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	opts := newInterpreterOpts(options...)
	return &interpreter{
		globals:  opts.globals,
		stdout:   opts.stdout,
		reporter: opts.reporter,
	}
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(ctx context.Context, statements []parser.Stmt) (Value, error) {
	plog.Debugf("interpreting %d statements", len(statements))

	var value Value = NilValue
	for _, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		if value, err = i.execute(stmt); err != nil {
			if i.reporter != nil {
				i.reporter.ReportPanic(err)
			}
			return nil, err
		}
	}

	return value, nil
}

// Evaluate implements Interpreter.
func (i *interpreter) Evaluate(expr parser.Expr) (Value, error) {
	return i.evaluate(expr)
}

func (i *interpreter) execute(stmt parser.Stmt) (Value, error) {
	switch s := stmt.(type) {
	case *parser.StmtExpression:
		return i.evaluate(s.Expression)
	case *parser.StmtPrint:
		return i.executePrint(s)
	case *parser.StmtVar:
		return i.executeVar(s)
	}

	return i.unreachable(stmt)
}

func (i *interpreter) executePrint(stmt *parser.StmtPrint) (Value, error) {
	value, err := i.evaluate(stmt.Expression)
	if err != nil {
		return nil, err
	}

	if _, err := fmt.Fprintln(i.stdout, Stringify(value)); err != nil {
		return nil, err
	}

	return NilValue, nil
}

func (i *interpreter) executeVar(stmt *parser.StmtVar) (Value, error) {
	var value Value = NilValue
	if stmt.Initializer != nil {
		var err error
		if value, err = i.evaluate(stmt.Initializer); err != nil {
			return nil, err
		}
	}

	i.globals.Define(stmt.Name.Lexeme, value)
	return NilValue, nil
}

func (i *interpreter) evaluate(expr parser.Expr) (Value, error) {
	switch e := expr.(type) {
	case *parser.ExprLiteral:
		return FromLiteral(e.Value), nil
	case *parser.ExprGrouping:
		return i.evaluate(e.Expression)
	case *parser.ExprVariable:
		return i.globals.Get(e.Name)
	case *parser.ExprUnary:
		return i.evaluateUnary(e)
	case *parser.ExprBinary:
		return i.evaluateBinary(e)
	}

	return i.unreachable(expr)
}

func (i *interpreter) evaluateUnary(expr *parser.ExprUnary) (Value, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.MINUS:
		if right, ok := right.(ValueFloat); ok {
			return -right, nil
		}
		return nil, i.operandError(expr.Operator, right)
	case token.BANG:
		return ValueBool(!i.isTruthy(right)), nil
	}

	return i.unreachable(expr.Operator)
}

func (i *interpreter) evaluateBinary(expr *parser.ExprBinary) (Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.BANG_EQUAL:
		return ValueBool(!i.isEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return ValueBool(i.isEqual(left, right)), nil
	case token.PLUS:
		if left, ok := left.(ValueString); ok {
			if right, ok := right.(ValueString); ok {
				return left + right, nil
			}
		}
		if left, ok := left.(ValueFloat); ok {
			if right, ok := right.(ValueFloat); ok {
				return left + right, nil
			}
		}
		return nil, i.operandsError(expr.Operator, loxerrors.ErrRuntimeOperandsMustNumbersOrStrings, left, right)
	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.MINUS, token.SLASH, token.STAR:
		return i.arithmetic(expr.Operator, left, right)
	}

	return i.unreachable(expr.Operator)
}

// arithmetic applies the operators that accept numbers only.
func (i *interpreter) arithmetic(operator *token.Token, left, right Value) (Value, error) {
	l, r, err := i.numberOperands(operator, left, right)
	if err != nil {
		return nil, err
	}

	switch operator.Type {
	case token.GREATER:
		return ValueBool(l > r), nil
	case token.GREATER_EQUAL:
		return ValueBool(l >= r), nil
	case token.LESS:
		return ValueBool(l < r), nil
	case token.LESS_EQUAL:
		return ValueBool(l <= r), nil
	case token.MINUS:
		return l - r, nil
	case token.SLASH:
		return l / r, nil
	case token.STAR:
		return l * r, nil
	}

	return i.unreachable(operator)
}

// isTruthy: nil and false are falsy, everything else is truthy,
// including 0 and "".
func (i *interpreter) isTruthy(value Value) bool {
	switch v := value.(type) {
	case ValueNil:
		return false
	case ValueBool:
		return bool(v)
	}

	return true
}

// isEqual holds only for two numbers, two strings or two booleans with
// equal payloads. Mixed types, and nil on either side, are never equal.
func (i *interpreter) isEqual(left, right Value) bool {
	switch l := left.(type) {
	case ValueFloat:
		r, ok := right.(ValueFloat)
		return ok && l == r
	case ValueString:
		r, ok := right.(ValueString)
		return ok && l == r
	case ValueBool:
		r, ok := right.(ValueBool)
		return ok && l == r
	}

	return false
}

func (i *interpreter) numberOperands(operator *token.Token, left, right Value) (ValueFloat, ValueFloat, error) {
	l, lok := left.(ValueFloat)
	r, rok := right.(ValueFloat)
	if !lok || !rok {
		return 0, 0, i.operandsError(operator, loxerrors.ErrRuntimeOperandsMustBeNumbers, left, right)
	}

	return l, r, nil
}

func (i *interpreter) operandError(operator *token.Token, operand Value) error {
	cause := loxerrors.ErrRuntimeOperand(loxerrors.ErrRuntimeOperandMustBeNumber, describe(operand))
	return loxerrors.NewRuntimeError(operator, cause)
}

func (i *interpreter) operandsError(operator *token.Token, cause error, left, right Value) error {
	return loxerrors.NewRuntimeError(operator, loxerrors.ErrRuntimeOperands(cause, describe(left), describe(right)))
}

// unreachable signals a tree the parser cannot produce. It is a
// programming error, never an evaluation error.
func (i *interpreter) unreachable(node any) (Value, error) {
	panic(fmt.Sprintf("unreachable: %#v", node))
}

var _ Interpreter = (*interpreter)(nil)
