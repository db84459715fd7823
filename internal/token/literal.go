package token

import (
	"fmt"
	"math"
	"strconv"
)

// Literal is the payload carried by literal tokens and literal AST nodes.
// The set of implementations is closed: NumberLiteral, StringLiteral,
// BoolLiteral and NilLiteral.
type Literal interface {
	fmt.Stringer
	literal()
}

type (
	NumberLiteral float64
	StringLiteral string
	BoolLiteral   bool
	NilLiteral    struct{}
)

func (NumberLiteral) literal() {}
func (StringLiteral) literal() {}
func (BoolLiteral) literal()   {}
func (NilLiteral) literal()    {}

// String implements fmt.Stringer.
func (l NumberLiteral) String() string {
	return FormatNumber(float64(l))
}

// String implements fmt.Stringer.
func (l StringLiteral) String() string {
	return string(l)
}

// String implements fmt.Stringer.
func (l BoolLiteral) String() string {
	return strconv.FormatBool(bool(l))
}

// String implements fmt.Stringer.
func (NilLiteral) String() string {
	return "nil"
}

// FormatNumber renders a number the way the language prints it:
// shortest round-trip decimal, no exponent, no forced sign.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var (
	_ Literal = NumberLiteral(0)
	_ Literal = StringLiteral("")
	_ Literal = BoolLiteral(false)
	_ Literal = NilLiteral{}
)
