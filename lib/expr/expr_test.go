package expr

import (
	"testing"
)

func TestCompileErrors(t *testing.T) {
	bad := []string{
		"x +",          // syntax error
		"x + energy",   // undefined variable
		"ux > (uy",     // unbalanced parenthesis
	}
	for i := range bad {
		if _, err := Compile(bad[i]); err == nil {
			t.Errorf("%d) Expected '%s' to fail to compile.", i, bad[i])
		}
	}
}

func TestEvalArithmetic(t *testing.T) {
	e, err := Compile("t + 2*x - y/2 + z*z + ux + uy - uz")
	if err != nil {
		t.Fatalf("Expected the expression to compile, got '%v'.", err)
	}

	got := e.Eval(1, 2, 4, 3, 0.5, 0.25, 0.75)
	want := 1.0 + 4 - 2 + 9 + 0.5 + 0.25 - 0.75
	if got != want {
		t.Errorf("Expected the expression to evaluate to %g, got %g.", want, got)
	}
}

func TestEvalComparison(t *testing.T) {
	e, err := Compile("ux*ux + uy*uy + uz*uz > 0.25")
	if err != nil {
		t.Fatalf("Expected the expression to compile, got '%v'.", err)
	}

	if got := e.Eval(0, 0, 0, 0, 1, 0, 0); got != 1 {
		t.Errorf("Expected a true comparison to evaluate to 1, got %g.", got)
	}
	if got := e.Eval(0, 0, 0, 0, 0.1, 0, 0); got != 0 {
		t.Errorf("Expected a false comparison to evaluate to 0, got %g.", got)
	}
}

func TestSrc(t *testing.T) {
	src := "x + y"
	e, err := Compile(src)
	if err != nil {
		t.Fatalf("Expected the expression to compile, got '%v'.", err)
	}
	if e.Src() != src {
		t.Errorf("Expected Src() = '%s', got '%s'.", src, e.Src())
	}
}
