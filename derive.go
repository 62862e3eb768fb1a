package symdiff

import (
	"fmt"

	"github.com/njchilds90/symdiff/algebra"
)

// Derivation is the total derivative of an expression together with the
// partial derivatives it was summed from.
type Derivation struct {
	Variables []string
	Partials  []algebra.Expr
	Total     algebra.Expr
}

var logE = algebra.LogOf(algebra.E)

// expOfE rewrites E**u as exp(u).
func expOfE(e algebra.Expr) (algebra.Expr, bool) {
	p, ok := e.(*algebra.Pow)
	if !ok || !p.Base().Equal(algebra.E) {
		return nil, false
	}
	return algebra.ExpOf(p.ExpExpr()), true
}

// Derive differentiates a normalised expression by each of vars in order and
// returns the simplified sum. It assumes expr already passed Validate.
// Every variable must be x or y; with no variables the derivative is 0.
func (p *Pipeline) Derive(expr string, vars []string) (*Derivation, error) {
	for _, v := range vars {
		if v != "x" && v != "y" {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedVariable, v)
		}
	}
	parsed, err := p.engine.Parse(expr, bindings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}
	for _, name := range sortedKeys(algebra.FreeSymbols(parsed)) {
		if name != "x" && name != "y" {
			return nil, fmt.Errorf("%w: %q in parsed expression", ErrUnsupportedVariable, name)
		}
	}

	d := &Derivation{Variables: append([]string(nil), vars...)}
	total := p.engine.Sum()
	for _, v := range vars {
		partial, err := p.engine.Differentiate(parsed, v)
		if err != nil {
			return nil, fmt.Errorf("%w: d/d%s: %w", ErrComputation, v, err)
		}
		partial = p.engine.Substitute(partial, logE, algebra.N(1))
		partial = p.engine.Rewrite(partial, expOfE)
		total = p.engine.Sum(total, partial)

		if partial, err = p.engine.Simplify(partial); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrComputation, err)
		}
		d.Partials = append(d.Partials, partial)
	}
	if d.Total, err = p.engine.Simplify(total); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}
	return d, nil
}
