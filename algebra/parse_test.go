package algebra_test

import (
	"errors"
	"testing"

	"github.com/njchilds90/symdiff/algebra"
)

// ============================================================
// Parser tests
// ============================================================

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"x**2", "x**2"},
		{"x^2", "x**2"},
		{"2*x+1", "2*x + 1"},
		{"sin(x)", "sin(x)"},
		{"2.5*x", "5/2*x"},
		{"-x**2", "-1*x**2"},
		{"2**-1", "1/2"},
		{"x/y", "x*y**(-1)"},
		{"x*(x+1)", "x*(x + 1)"},
		{"(x-2)*(x+2)", "(x + -2)*(x + 2)"},
		{"E**x", "E**x"},
		{"e**x", "E**x"},
		{"sqrt(x)", "x**(1/2)"},
		{"log(x*y)", "log(x*y)"},
		{" x + y ", "x + y"},
		{"0", "0"},
		{"0.5*x", "1/2*x"},
		{"10*x", "10*x"},
	}
	for _, c := range cases {
		got, err := algebra.Parse(c.in, algebra.DefaultBindings())
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", c.in, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("Parse(%q): want %s, got %s", c.in, c.want, got.String())
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		in     string
		offset int
	}{
		{"2*x+", 4},
		{"sin", 3},
		{"sin(", 4},
		{"(x+1", 4},
		{"x)", 1},
		{"z", 0},
		{"x*z+1", 2},
		{"x#y", 1},
		{"", -1},
		{"x+08", 2},
		{"x**09", 3},
		{"2*x**010", 5},
		{"00", 0},
	}
	for _, c := range cases {
		_, err := algebra.Parse(c.in, algebra.DefaultBindings())
		var pe *algebra.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): want *ParseError, got %v", c.in, err)
			continue
		}
		if pe.Offset != c.offset {
			t.Errorf("Parse(%q): want offset %d, got %d (%s)", c.in, c.offset, pe.Offset, pe.Msg)
		}
	}
}

func TestParse_RestrictedBindings(t *testing.T) {
	b := algebra.Bindings{
		Symbols:   map[string]algebra.Expr{"x": x},
		Functions: map[string]func(algebra.Expr) algebra.Expr{"sin": algebra.SinOf},
	}
	if _, err := algebra.Parse("sin(x)", b); err != nil {
		t.Errorf("bound names should parse: %v", err)
	}
	if _, err := algebra.Parse("cos(x)", b); err == nil {
		t.Errorf("cos is not bound and must be rejected")
	}
	if _, err := algebra.Parse("y", b); err == nil {
		t.Errorf("y is not bound and must be rejected")
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	exprs := []algebra.Expr{
		algebra.MulOf(algebra.N(2), algebra.PowOf(x, algebra.N(2))),
		algebra.AddOf(algebra.SinOf(algebra.MulOf(x, y)), algebra.MulOf(algebra.N(-1), y)),
		algebra.PowOf(algebra.E, algebra.AddOf(x, y)),
		algebra.MulOf(algebra.F(1, 2), algebra.PowOf(x, algebra.F(-1, 2))),
	}
	for _, e := range exprs {
		back, err := algebra.Parse(e.String(), algebra.DefaultBindings())
		if err != nil {
			t.Errorf("Parse(%q): %v", e.String(), err)
			continue
		}
		if !back.Equal(e) {
			t.Errorf("round trip of %s produced %s", e, back)
		}
	}
}
