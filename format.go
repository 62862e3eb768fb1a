package symdiff

import (
	"strings"

	"github.com/njchilds90/symdiff/algebra"
)

// Format renders an expression the way users write it: ^ for powers,
// juxtaposition instead of * where it reads unambiguously (2x, xsinx,
// 2(x+1)), exp(u) as e^u, sqrt for square roots, and a function of a lone
// variable without brackets when nothing follows it in the product (cosx).
// Terms are joined without spaces: x+y, 2x-1/x.
func Format(e algebra.Expr) string {
	switch v := e.(type) {
	case *algebra.Num:
		return v.String()
	case *algebra.Sym:
		return v.Name()
	case *algebra.Const:
		return v.Display()
	case *algebra.Add:
		return formatSum(v)
	case *algebra.Func:
		return formatCall(v, true)
	case *algebra.Mul, *algebra.Pow:
		return formatProduct(e)
	}
	return e.String()
}

func formatSum(a *algebra.Add) string {
	var sb strings.Builder
	for i, t := range a.Terms() {
		negative := false
		if n, ok := t.(*algebra.Num); ok {
			negative = n.IsNegative()
		} else {
			coeff, _ := algebra.Coefficient(t)
			negative = coeff.IsNegative()
		}
		switch {
		case i == 0:
			sb.WriteString(Format(t))
		case negative:
			sb.WriteString("-")
			sb.WriteString(Format(algebra.MulOf(algebra.N(-1), t)))
		default:
			sb.WriteString("+")
			sb.WriteString(Format(t))
		}
	}
	return sb.String()
}

// formatProduct writes a product as numerator/denominator, moving factors
// with negative exponents and the coefficient's denominator below the line.
func formatProduct(e algebra.Expr) string {
	coeff, rest := algebra.Coefficient(e)
	factors := []algebra.Expr{rest}
	if m, ok := rest.(*algebra.Mul); ok {
		factors = m.Factors()
	}

	sign := ""
	if coeff.IsNegative() {
		sign = "-"
		coeff = algebra.Neg(coeff)
	}
	var upper, lower []algebra.Expr
	for _, f := range symbolsFirst(factors) {
		if p, ok := f.(*algebra.Pow); ok {
			if n, ok := p.ExpExpr().(*algebra.Num); ok && n.IsNegative() {
				lower = append(lower, algebra.PowOf(p.Base(), algebra.Neg(n)))
				continue
			}
		}
		upper = append(upper, f)
	}

	r := coeff.Rat()
	var num, den []string
	if !r.Num().IsInt64() || r.Num().Int64() != 1 || len(upper) == 0 {
		num = append(num, r.Num().String())
	}
	for i, f := range upper {
		num = append(num, formatFactor(f, i == len(upper)-1))
	}
	if !r.IsInt() {
		den = append(den, r.Denom().String())
	}
	for i, f := range lower {
		den = append(den, formatFactor(f, i == len(lower)-1))
	}

	out := sign + juxtapose(num)
	if len(den) > 0 {
		d := juxtapose(den)
		if len(den) > 1 {
			d = "(" + d + ")"
		}
		out += "/" + d
	}
	return out
}

// symbolsFirst moves bare variables and constants ahead of the other factors,
// so x*cos(x) reads xcosx rather than cos(x)x.
func symbolsFirst(factors []algebra.Expr) []algebra.Expr {
	var atoms, rest []algebra.Expr
	for _, f := range factors {
		switch f.(type) {
		case *algebra.Sym, *algebra.Const:
			atoms = append(atoms, f)
		default:
			rest = append(rest, f)
		}
	}
	return append(atoms, rest...)
}

func formatFactor(f algebra.Expr, last bool) string {
	switch v := f.(type) {
	case *algebra.Add:
		return "(" + formatSum(v) + ")"
	case *algebra.Mul:
		return "(" + formatProduct(v) + ")"
	case *algebra.Pow:
		return formatPower(v, last)
	case *algebra.Func:
		return formatCall(v, last)
	}
	return Format(f)
}

func formatPower(p *algebra.Pow, last bool) string {
	if n, ok := p.ExpExpr().(*algebra.Num); ok && n.Equal(algebra.F(1, 2)) {
		return "sqrt" + argument(p.Base(), last)
	}
	return powerBase(p.Base()) + "^" + powerOperand(p.ExpExpr())
}

func formatCall(f *algebra.Func, last bool) string {
	if f.FuncName() == "exp" {
		return "e^" + powerOperand(f.Arg())
	}
	return f.FuncName() + argument(f.Arg(), last)
}

// argument drops the brackets around a lone variable only at the end of a
// product, where nothing can run into it.
func argument(arg algebra.Expr, last bool) string {
	switch arg.(type) {
	case *algebra.Sym, *algebra.Const:
		if last {
			return Format(arg)
		}
	}
	return "(" + Format(arg) + ")"
}

func powerBase(b algebra.Expr) string {
	switch v := b.(type) {
	case *algebra.Sym, *algebra.Const:
		return Format(b)
	case *algebra.Num:
		if v.IsInteger() && !v.IsNegative() {
			return v.String()
		}
	case *algebra.Func:
		if v.FuncName() != "exp" {
			return formatCall(v, false)
		}
	}
	return "(" + Format(b) + ")"
}

func powerOperand(e algebra.Expr) string {
	switch v := e.(type) {
	case *algebra.Sym, *algebra.Const:
		return Format(e)
	case *algebra.Num:
		if v.IsInteger() && !v.IsNegative() {
			return v.String()
		}
	}
	return "(" + Format(e) + ")"
}

// juxtapose joins factors, leaving out * after a digit, letter or ) when the
// next factor starts with a letter or (. A power ending in a letter keeps its
// * so the next factor is not read as part of the exponent.
func juxtapose(parts []string) string {
	var sb strings.Builder
	for i, part := range parts {
		if i > 0 && needsStar(parts[i-1], part) {
			sb.WriteByte('*')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func needsStar(prev, next string) bool {
	last, first := prev[len(prev)-1], next[0]
	if !(isLetter(first) || first == '(') {
		return true
	}
	if isLetter(last) && strings.Contains(prev, "^") {
		return true
	}
	return !(isLetter(last) || isDigit(last) || last == ')')
}
