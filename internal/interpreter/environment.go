package interpreter

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/treelox/internal/loxerrors"
	"github.com/leonardinius/treelox/internal/token"
)

// environment holds global bindings. There is a single flat scope.
type environment struct {
	values map[string]Value
}

func NewEnvironment() *environment {
	return &environment{}
}

func (e *environment) Define(name string, value Value) {
	if e.values == nil {
		e.values = make(map[string]Value)
	}
	plog.Tracef("define %s = %s", name, describe(value))
	e.values[name] = value
}

func (e *environment) Get(name *token.Token) (Value, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}

	return nil, e.undefinedVariable(name)
}

// Names returns the bound names in lexical order.
func (e *environment) Names() []string {
	names := maps.Keys(e.values)
	slices.Sort(names)
	return names
}

func (e *environment) undefinedVariable(name *token.Token) error {
	return loxerrors.NewRuntimeError(name, loxerrors.ErrRuntimeUndefinedVariableName(name.Lexeme))
}

func (e *environment) String() string {
	w := new(strings.Builder)
	_, _ = w.WriteString("{")
	for idx, name := range e.Names() {
		if idx > 0 {
			_, _ = w.WriteString(",")
		}
		_, _ = fmt.Fprintf(w, "%s=%s", name, describe(e.values[name]))
	}
	_, _ = w.WriteString("}")
	return w.String()
}

var _ fmt.Stringer = (*environment)(nil)
