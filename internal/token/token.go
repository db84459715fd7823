package token

import (
	"fmt"
	"strconv"
)

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal Literal
	Line    int
}

func NewToken(t TokenType, lexeme string, literal Literal, line int) Token {
	return Token{
		Type:    t,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    line,
	}
}

func NewTokenHeap(t TokenType, lexeme string, literal Literal, line int) *Token {
	tt := NewToken(t, lexeme, literal, line)
	return &tt
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, literalString(t.Literal))
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Literal: %s, Line: %d}", t.Type, t.Lexeme, literalGoString(t.Literal), t.Line)
}

func literalString(l Literal) string {
	if l == nil {
		return "<nil>"
	}
	return l.String()
}

func literalGoString(l Literal) string {
	if l == nil {
		return "<nil>"
	}
	if s, ok := l.(StringLiteral); ok {
		return strconv.Quote(string(s))
	}
	return l.String()
}

var _ fmt.Stringer = (*Token)(nil)
var _ fmt.GoStringer = (*Token)(nil)
