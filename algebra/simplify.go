package algebra

// ============================================================
// Deep Simplification and Identities
// ============================================================

// TrigSimplify applies the Pythagorean identities sin²+cos²=1 and
// cosh²-sinh²=1 throughout e.
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify()).Simplify()
}

func trigSimplifyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = trigSimplifyExpr(t)
		}
		return trigFindPythagorean(AddOf(newTerms...))
	case *Mul:
		newFactors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			newFactors[i] = trigSimplifyExpr(f)
		}
		return MulOf(newFactors...)
	case *Pow:
		return PowOf(trigSimplifyExpr(v.base), trigSimplifyExpr(v.exp))
	case *Func:
		return funcOf(v.name, trigSimplifyExpr(v.arg)).Simplify()
	}
	return e
}

// pythagoreanPairs maps the first function of an identity to its partner and
// the sign the partner's coefficient must carry.
var pythagoreanPairs = map[string]struct {
	partner string
	sign    int64
}{
	"sin":  {"cos", 1},
	"cos":  {"sin", 1},
	"cosh": {"sinh", -1},
}

func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	type trigTerm struct {
		funcName string
		argStr   string
		coeff    *Num
		idx      int
	}
	var trigTerms []trigTerm
	for idx, t := range add.terms {
		coeff, inner := extractCoefficient(t)
		p, ok := inner.(*Pow)
		if !ok || !isNumEqual(p.exp, 2) {
			continue
		}
		if fn, ok := p.base.(*Func); ok {
			switch fn.name {
			case "sin", "cos", "sinh", "cosh":
				trigTerms = append(trigTerms, trigTerm{fn.name, fn.arg.String(), coeff, idx})
			}
		}
	}
	for i := 0; i < len(trigTerms); i++ {
		for j := 0; j < len(trigTerms); j++ {
			ti, tj := trigTerms[i], trigTerms[j]
			pair, ok := pythagoreanPairs[ti.funcName]
			if i == j || !ok || pair.partner != tj.funcName || ti.argStr != tj.argStr {
				continue
			}
			if !numMul(ti.coeff, N(pair.sign)).Equal(tj.coeff) {
				continue
			}
			newTerms := []Expr{}
			for idx, t := range add.terms {
				if idx != ti.idx && idx != tj.idx {
					newTerms = append(newTerms, t)
				}
			}
			newTerms = append(newTerms, ti.coeff)
			return AddOf(newTerms...)
		}
	}
	return e
}

// extractCoefficient splits a product into its leading numeric coefficient
// and the remaining factors.
func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

// Coefficient is the exported form of the coefficient split used by the
// simplifier: 3*x*y gives (3, x*y), x gives (1, x).
func Coefficient(e Expr) (*Num, Expr) { return extractCoefficient(e) }

// DeepSimplify applies repeated simplification+trig passes until stable.
func DeepSimplify(e Expr) Expr {
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		str := curr.String()
		if str == prev {
			break
		}
		prev = str
		curr = TrigSimplify(curr).Simplify()
	}
	return curr
}

// ============================================================
// Structural rewriting
// ============================================================

// Rewrite rebuilds e bottom-up, offering every rebuilt node to rule. When rule
// reports a match its result replaces the node.
func Rewrite(e Expr, rule func(Expr) (Expr, bool)) Expr {
	var out Expr
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Rewrite(t, rule)
		}
		out = AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = Rewrite(f, rule)
		}
		out = MulOf(factors...)
	case *Pow:
		out = PowOf(Rewrite(v.base, rule), Rewrite(v.exp, rule))
	case *Func:
		out = funcOf(v.name, Rewrite(v.arg, rule)).Simplify()
	default:
		out = e
	}
	if r, ok := rule(out); ok {
		return r
	}
	return out
}

// Replace substitutes value for every subtree structurally equal to pattern.
func Replace(e, pattern, value Expr) Expr {
	return Rewrite(e, func(node Expr) (Expr, bool) {
		if node.Equal(pattern) {
			return value, true
		}
		return nil, false
	})
}

// ============================================================
// Top-level helpers
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

// ============================================================
// Free Symbols
// ============================================================

// FreeSymbols returns the names of every symbol in e. Constants are not
// symbols.
func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}
