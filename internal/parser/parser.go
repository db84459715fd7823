package parser

import (
	"errors"
	"fmt"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

var (
	nilExpr       Expr   = nil
	nilStmt       Stmt   = nil
	nilStatements []Stmt = nil
)

type Parser interface {
	// Parse parses a whole program. If any error was recorded the
	// statements are nil and the error joins every recorded error.
	Parse() ([]Stmt, error)

	// ParseExpression parses a single expression spanning all tokens.
	ParseExpression() (Expr, error)
}

type ParserOption func(*parser)

// WithErrorReporter makes the parser report each error as soon as it is recorded.
func WithErrorReporter(r loxerrors.ErrReporter) ParserOption {
	return func(p *parser) {
		p.reporter = r
	}
}

type parser struct {
	tokens   []token.Token
	current  int
	errs     []error
	reporter loxerrors.ErrReporter
}

func NewParser(tokens []token.Token, options ...ParserOption) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	p := &parser{
		tokens:  tokens,
		current: 0,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, errs: %#v}", p.tokens, p.current, p.errs)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, errs: %d}", len(p.tokens), len(p.errs))
}

// Parse implements Parser.
func (p *parser) Parse() ([]Stmt, error) {
	p.reset()

	var statements []Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	// if we are at error state, we do not return invalid ast tree
	if p.hadError() {
		return nilStatements, errors.Join(p.errs...)
	}

	return statements, nil
}

// ParseExpression implements Parser.
func (p *parser) ParseExpression() (Expr, error) {
	p.reset()

	expr, err := p.expression()
	if err == nil && !p.isAtEnd() {
		err = loxerrors.NewParseError(p.peek(), loxerrors.ErrParseExpectedEndOfExpression)
	}
	if err != nil {
		p.record(err)
		return nilExpr, err
	}

	return expr, nil
}

func (p *parser) declaration() (Stmt, error) {
	if p.match(token.VAR) {
		return p.varDeclaration()
	}

	return p.statement()
}

func (p *parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(token.IDENTIFIER, loxerrors.ErrParseUnexpectedVariableName)
	if err != nil {
		return nilStmt, err
	}

	var initializer Expr = nilExpr
	if p.match(token.EQUAL) {
		if initializer, err = p.expression(); err != nil {
			return nilStmt, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonTokenAfterVar); err != nil {
		return nilStmt, err
	}

	return &StmtVar{Name: name, Initializer: initializer}, nil
}

func (p *parser) statement() (Stmt, error) {
	if p.match(token.PRINT) {
		return p.printStatement()
	}

	return p.expressionStatement()
}

func (p *parser) printStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nilStmt, err
	}

	if _, err := p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonTokenAfterPrintValue); err != nil {
		return nilStmt, err
	}

	return &StmtPrint{Expression: expr}, nil
}

func (p *parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nilStmt, err
	}

	if _, err := p.consume(token.SEMICOLON, loxerrors.ErrParseExpectedSemicolonTokenAfterExpr); err != nil {
		return nilStmt, err
	}

	return &StmtExpression{Expression: expr}, nil
}

func (p *parser) expression() (Expr, error) {
	return p.equality()
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

func (p *parser) comparison() (Expr, error) {
	return p.binary(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *parser) term() (Expr, error) {
	return p.binary(p.factor, token.MINUS, token.PLUS)
}

func (p *parser) factor() (Expr, error) {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary parses one left-associative precedence level: operands come from
// the next-higher level, and each matched operator folds the expression so
// far into the left child of a new node.
func (p *parser) binary(operand func() (Expr, error), operators ...token.TokenType) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nilExpr, err
	}

	for p.anyMatch(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nilExpr, err
		}
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

func (p *parser) unary() (Expr, error) {
	if p.anyMatch(token.BANG, token.MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nilExpr, err
		}
		return &ExprUnary{
			Operator: operator,
			Right:    right,
		}, nil
	}

	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	if p.match(token.FALSE) {
		return &ExprLiteral{Value: token.BoolLiteral(false)}, nil
	}
	if p.match(token.TRUE) {
		return &ExprLiteral{Value: token.BoolLiteral(true)}, nil
	}
	if p.match(token.NIL) {
		return &ExprLiteral{Value: token.NilLiteral{}}, nil
	}

	if p.anyMatch(token.NUMBER, token.STRING) {
		tok := p.previous()
		return &ExprLiteral{Value: tok.Literal}, nil
	}

	if p.match(token.IDENTIFIER) {
		tok := p.previous()
		return &ExprVariable{Name: tok}, nil
	}

	return p.grouping()
}

func (p *parser) grouping() (Expr, error) {
	if p.match(token.LEFT_PAREN) {
		expr, err := p.expression()
		if err != nil {
			return nilExpr, err
		}
		if _, err := p.consume(token.RIGHT_PAREN, loxerrors.ErrParseExpectedRightParenToken); err != nil {
			return nilExpr, err
		}
		return &ExprGrouping{Expression: expr}, nil
	}

	return nilExpr, loxerrors.NewParseError(p.peek(), loxerrors.ErrParseUnexpectedToken)
}

func (p *parser) consume(tokenType token.TokenType, cause error) (*token.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}

	return nil, loxerrors.NewParseError(p.peek(), cause)
}

func (p *parser) anyMatch(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) hadError() bool {
	return len(p.errs) > 0
}

func (p *parser) record(err error) {
	p.errs = append(p.errs, err)
	if p.reporter != nil {
		p.reporter.ReportError(err)
	}
}

func (p *parser) reset() {
	p.current = 0
	p.errs = nil
}

// synchronize discards tokens until the start of the next statement:
// just past a ';', or in front of a statement keyword.
func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS,
			token.FUN,
			token.VAR,
			token.FOR,
			token.IF,
			token.WHILE,
			token.PRINT,
			token.RETURN:
			return
		}

		p.advance()
	}
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
