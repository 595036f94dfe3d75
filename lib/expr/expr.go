/*package expr wraps a third-party expression compiler behind the narrow
parse+evaluate interface needed by the particle filters. Expressions are
arithmetic formulas over the fixed, ordered variable list
(t, x, y, z, ux, uy, uz), where the momentum variables are in beta*gamma
units. Nothing outside this package depends on the formula grammar.*/
package expr

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// env is the typed variable set visible to an expression. Using a struct
// rather than a map makes references to undefined variables fail at
// compile time.
type env struct {
	T  float64 `expr:"t"`
	X  float64 `expr:"x"`
	Y  float64 `expr:"y"`
	Z  float64 `expr:"z"`
	Ux float64 `expr:"ux"`
	Uy float64 `expr:"uy"`
	Uz float64 `expr:"uz"`
}

// Expr is a compiled expression. It holds no mutable state, so a single
// Expr may be evaluated concurrently from many goroutines.
type Expr struct {
	src  string
	prog *vm.Program
}

// Compile compiles the formula src over the variables t, x, y, z, ux,
// uy, and uz. Syntax errors and references to undefined variables are
// reported here, not at evaluation time.
func Compile(src string) (*Expr, error) {
	prog, err := exprlang.Compile(src, exprlang.Env(env{ }))
	if err != nil {
		return nil, fmt.Errorf("Could not compile the expression '%s': %v", src, err)
	}
	return &Expr{ src, prog }, nil
}

// Src returns the text the expression was compiled from.
func (e *Expr) Src() string { return e.src }

// Eval evaluates the expression at the given variable values. Boolean
// results (e.g. from comparison operators) evaluate to 1 or 0.
func (e *Expr) Eval(t, x, y, z, ux, uy, uz float64) float64 {
	out, err := exprlang.Run(e.prog, env{ t, x, y, z, ux, uy, uz })
	if err != nil {
		// The compile-time type check makes this unreachable for
		// arithmetic over floats.
		panic(fmt.Sprintf("Internal error: the compiled expression '%s' failed to evaluate: %v", e.src, err))
	}
	switch v := out.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case bool:
		if v { return 1 }
		return 0
	}
	panic(fmt.Sprintf("Internal error: the expression '%s' evaluated to the non-numeric type %T.", e.src, out))
}
