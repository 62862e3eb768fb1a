package algebra

import (
	"math"
	"sort"
)

// ============================================================
// Func — named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr   { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr   { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr   { return funcOf("tan", arg).Simplify() }
func CotOf(arg Expr) Expr   { return funcOf("cot", arg).Simplify() }
func SinhOf(arg Expr) Expr  { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr  { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr  { return funcOf("tanh", arg).Simplify() }
func CothOf(arg Expr) Expr  { return funcOf("coth", arg).Simplify() }
func AsinOf(arg Expr) Expr  { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr  { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr  { return funcOf("atan", arg).Simplify() }
func AcotOf(arg Expr) Expr  { return funcOf("acot", arg).Simplify() }
func AsinhOf(arg Expr) Expr { return funcOf("asinh", arg).Simplify() }
func AcoshOf(arg Expr) Expr { return funcOf("acosh", arg).Simplify() }
func AtanhOf(arg Expr) Expr { return funcOf("atanh", arg).Simplify() }
func AcothOf(arg Expr) Expr { return funcOf("acoth", arg).Simplify() }
func ExpOf(arg Expr) Expr   { return funcOf("exp", arg).Simplify() }
func LogOf(arg Expr) Expr   { return funcOf("log", arg).Simplify() }
func SqrtOf(arg Expr) Expr  { return PowOf(arg, F(1, 2)) }

var builders = map[string]func(Expr) Expr{
	"sin": SinOf, "cos": CosOf, "tan": TanOf, "cot": CotOf,
	"sinh": SinhOf, "cosh": CoshOf, "tanh": TanhOf, "coth": CothOf,
	"asin": AsinOf, "acos": AcosOf, "atan": AtanOf, "acot": AcotOf,
	"asinh": AsinhOf, "acosh": AcoshOf, "atanh": AtanhOf, "acoth": AcothOf,
	"exp": ExpOf, "log": LogOf, "sqrt": SqrtOf,
}

// Function returns the constructor for a built-in function name.
func Function(name string) (func(Expr) Expr, bool) {
	b, ok := builders[name]
	return b, ok
}

// FunctionNames lists every built-in function, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// exactValues are the special values folded during simplification. Anything
// else stays symbolic so results remain exact.
var exactValues = map[string]struct {
	at, value int64
}{
	"sin": {0, 0}, "tan": {0, 0}, "asin": {0, 0}, "atan": {0, 0},
	"sinh": {0, 0}, "tanh": {0, 0}, "asinh": {0, 0}, "atanh": {0, 0},
	"cos": {0, 1}, "cosh": {0, 1}, "exp": {0, 1},
	"log": {1, 0}, "acos": {1, 0}, "acosh": {1, 0},
}

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if ev, ok := exactValues[f.name]; ok && isNumEqual(arg, ev.at) {
		return N(ev.value)
	}
	switch f.name {
	case "log":
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if inner, ok := arg.(*Func); ok && inner.name == "log" {
			return inner.arg
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "cot", "exp", "sinh", "cosh", "tanh", "coth":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "log":
		return "\\ln\\left(" + f.arg.LaTeX() + "\\right)"
	case "asin", "acos", "atan":
		return "\\arc" + f.name[1:] + "\\left(" + f.arg.LaTeX() + "\\right)"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

// oneMinusSquare builds 1 - u^2.
func oneMinusSquare(u Expr) Expr { return AddOf(N(1), MulOf(N(-1), PowOf(u, N(2)))) }

// Diff applies the chain rule with the outer derivative of each built-in.
func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	u := f.arg
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(u)
	case "cos":
		outer = MulOf(N(-1), SinOf(u))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(u), N(2)))
	case "cot":
		outer = MulOf(N(-1), AddOf(N(1), PowOf(CotOf(u), N(2))))
	case "sinh":
		outer = CoshOf(u)
	case "cosh":
		outer = SinhOf(u)
	case "tanh":
		outer = oneMinusSquare(TanhOf(u))
	case "coth":
		outer = oneMinusSquare(CothOf(u))
	case "asin":
		outer = PowOf(oneMinusSquare(u), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(oneMinusSquare(u), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1))
	case "acot":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1)))
	case "asinh":
		outer = PowOf(AddOf(PowOf(u, N(2)), N(1)), F(-1, 2))
	case "acosh":
		outer = PowOf(AddOf(PowOf(u, N(2)), N(-1)), F(-1, 2))
	case "atanh", "acoth":
		outer = PowOf(oneMinusSquare(u), N(-1))
	case "exp":
		outer = ExpOf(u)
	case "log":
		outer = PowOf(u, N(-1))
	default:
		return MulOf(funcOf("D["+f.name+"]", u), du)
	}
	return MulOf(outer, du)
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v := n.Float64()
	var r float64
	switch f.name {
	case "sin":
		r = math.Sin(v)
	case "cos":
		r = math.Cos(v)
	case "tan":
		r = math.Tan(v)
	case "cot":
		r = 1 / math.Tan(v)
	case "sinh":
		r = math.Sinh(v)
	case "cosh":
		r = math.Cosh(v)
	case "tanh":
		r = math.Tanh(v)
	case "coth":
		r = 1 / math.Tanh(v)
	case "asin":
		r = math.Asin(v)
	case "acos":
		r = math.Acos(v)
	case "atan":
		r = math.Atan(v)
	case "acot":
		r = math.Atan(1 / v)
	case "asinh":
		r = math.Asinh(v)
	case "acosh":
		r = math.Acosh(v)
	case "atanh":
		r = math.Atanh(v)
	case "acoth":
		r = math.Atanh(1 / v)
	case "exp":
		r = math.Exp(v)
	case "log":
		r = math.Log(v)
	default:
		return nil, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}
	return NFloat(r), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.Equal(N(v))
}
