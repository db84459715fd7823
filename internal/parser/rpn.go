package parser

import (
	"fmt"
	"strings"

	"github.com/leonardinius/treelox/internal/token"
)

// RPNPrinter renders expressions in reverse Polish notation.
// Grouping disappears and unary minus is written as "~".
type RPNPrinter struct{}

func NewRPNPrinter() *RPNPrinter {
	return &RPNPrinter{}
}

func (p *RPNPrinter) Print(expr Expr) string {
	switch e := expr.(type) {
	case *ExprBinary:
		return p.reverse(e.Operator.Lexeme, e.Left, e.Right)
	case *ExprGrouping:
		return p.reverse("", e.Expression)
	case *ExprLiteral:
		return e.Value.String()
	case *ExprUnary:
		operator := e.Operator.Lexeme
		if e.Operator.Type == token.MINUS {
			operator = "~"
		}
		return p.reverse(operator, e.Right)
	case *ExprVariable:
		return e.Name.Lexeme
	}

	panic(fmt.Sprintf("unexpected expression %T", expr))
}

// PrintStmt renders the expression a statement carries, followed by the
// statement keyword.
func (p *RPNPrinter) PrintStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *StmtExpression:
		return p.Print(s.Expression)
	case *StmtPrint:
		return p.reverse("print", s.Expression)
	case *StmtVar:
		if s.Initializer == nil {
			return "nil " + s.Name.Lexeme + " var"
		}
		return p.reverse(s.Name.Lexeme+" var", s.Initializer)
	}

	panic(fmt.Sprintf("unexpected statement %T", stmt))
}

func (p *RPNPrinter) reverse(name string, exprs ...Expr) string {
	out := new(strings.Builder)
	for _, expr := range exprs {
		_, _ = out.WriteString(p.Print(expr))
		_, _ = out.WriteString(" ")
	}
	_, _ = out.WriteString(name)
	v := out.String()
	return strings.TrimSuffix(v, " ")
}
