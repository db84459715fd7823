package interpreter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leonardinius/treelox/internal/token"
)

func TestStringify(t *testing.T) {
	testcases := []struct {
		in       Value
		expected string
	}{
		{NilValue, "nil"},
		{nil, "nil"},
		{ValueBool(true), "true"},
		{ValueBool(false), "false"},
		{ValueFloat(3), "3"},
		{ValueFloat(-0.5), "-0.5"},
		{ValueFloat(1e21), "1000000000000000000000"},
		{ValueFloat(math.Inf(1)), "inf"},
		{ValueFloat(math.NaN()), "NaN"},
		{ValueString("hi there"), "hi there"},
		{EmptyStringValue, ""},
	}

	for _, tc := range testcases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, Stringify(tc.in))
		})
	}
}

func TestDescribeQuotesStrings(t *testing.T) {
	assert.Equal(t, `""`, describe(EmptyStringValue))
	assert.Equal(t, `"a\"b"`, describe(ValueString(`a"b`)))
	assert.Equal(t, `12`, describe(ValueFloat(12)))
}

func TestFromLiteral(t *testing.T) {
	testcases := []struct {
		in       token.Literal
		expected Value
	}{
		{token.NumberLiteral(1.5), ValueFloat(1.5)},
		{token.StringLiteral("s"), ValueString("s")},
		{token.BoolLiteral(true), ValueBool(true)},
		{token.NilLiteral{}, NilValue},
		{nil, NilValue},
	}

	for _, tc := range testcases {
		value := FromLiteral(tc.in)
		assert.Equal(t, tc.expected, value)
		assert.Equal(t, tc.expected.Type(), value.Type())
	}
}

func TestValueType(t *testing.T) {
	assert.Equal(t, "nil", NilValue.Type().String())
	assert.Equal(t, "bool", ValueBool(true).Type().String())
	assert.Equal(t, "number", ValueFloat(0).Type().String())
	assert.Equal(t, "string", EmptyStringValue.Type().String())
	assert.Equal(t, "ValueType(9)", ValueType(9).String())
}
