package parser

import "github.com/leonardinius/treelox/internal/token"

// Expr is an expression node. The set of node kinds is closed; passes
// dispatch on the concrete type with a type switch.
type Expr interface {
	expr()
}

// Stmt is a statement node. Like Expr, the set of node kinds is closed.
type Stmt interface {
	stmt()
}

type ExprBinary struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

type ExprUnary struct {
	Operator *token.Token
	Right    Expr
}

type ExprGrouping struct {
	Expression Expr
}

type ExprLiteral struct {
	Value token.Literal
}

type ExprVariable struct {
	Name *token.Token
}

func (*ExprBinary) expr()   {}
func (*ExprUnary) expr()    {}
func (*ExprGrouping) expr() {}
func (*ExprLiteral) expr()  {}
func (*ExprVariable) expr() {}

type StmtExpression struct {
	Expression Expr
}

type StmtPrint struct {
	Expression Expr
}

// StmtVar declares Name; Initializer is nil when the declaration has none.
type StmtVar struct {
	Name        *token.Token
	Initializer Expr
}

func (*StmtExpression) stmt() {}
func (*StmtPrint) stmt()      {}
func (*StmtVar) stmt()        {}

var (
	_ Expr = (*ExprBinary)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprVariable)(nil)
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtPrint)(nil)
	_ Stmt = (*StmtVar)(nil)
)
