package interpreter

import (
	"fmt"
	"strconv"

	"github.com/leonardinius/treelox/internal/token"
)

type ValueType uint

const (
	ValueNilType ValueType = iota
	ValueBoolType
	ValueFloatType
	ValueStringType
)

// String implements fmt.Stringer.
func (t ValueType) String() string {
	switch t {
	case ValueNilType:
		return "nil"
	case ValueBoolType:
		return "bool"
	case ValueFloatType:
		return "number"
	case ValueStringType:
		return "string"
	}
	return fmt.Sprintf("ValueType(%d)", uint(t))
}

// Value is a runtime value. The variants are closed; each variant is its
// own payload, so the reported Type always matches what is stored.
type Value interface {
	Type() ValueType
	value()
}

type (
	ValueNil    struct{}
	ValueBool   bool
	ValueFloat  float64
	ValueString string
)

var (
	NilValue         = ValueNil{}
	EmptyStringValue = ValueString("")
)

func (ValueNil) value()    {}
func (ValueBool) value()   {}
func (ValueFloat) value()  {}
func (ValueString) value() {}

// Type implements Value.
func (v ValueNil) Type() ValueType {
	return ValueNilType
}

// Type implements Value.
func (v ValueBool) Type() ValueType {
	return ValueBoolType
}

// Type implements Value.
func (v ValueFloat) Type() ValueType {
	return ValueFloatType
}

// Type implements Value.
func (v ValueString) Type() ValueType {
	return ValueStringType
}

// FromLiteral boxes a literal payload into the matching runtime value.
func FromLiteral(lit token.Literal) Value {
	switch l := lit.(type) {
	case token.NumberLiteral:
		return ValueFloat(l)
	case token.StringLiteral:
		return ValueString(l)
	case token.BoolLiteral:
		return ValueBool(l)
	case token.NilLiteral, nil:
		return NilValue
	}

	panic(fmt.Sprintf("unexpected literal %T", lit))
}

// Stringify renders a value the way print shows it.
func Stringify(v Value) string {
	switch v := v.(type) {
	case ValueFloat:
		return token.FormatNumber(float64(v))
	case ValueString:
		return string(v)
	case ValueBool:
		return strconv.FormatBool(bool(v))
	case ValueNil, nil:
		return "nil"
	}

	panic(fmt.Sprintf("unexpected value %T", v))
}

// describe renders a value for error messages; strings are quoted so an
// empty or blank operand stays visible.
func describe(v Value) string {
	if s, ok := v.(ValueString); ok {
		return strconv.Quote(string(s))
	}
	return Stringify(v)
}

var (
	_ Value = ValueNil{}
	_ Value = ValueBool(false)
	_ Value = ValueFloat(0)
	_ Value = ValueString("")
)
