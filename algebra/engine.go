package algebra

import (
	"errors"
	"fmt"
)

// ErrComputation marks a failure inside the kernel itself, such as a
// division by zero reached while simplifying.
var ErrComputation = errors.New("algebra: computation failed")

// Engine exposes the kernel through the narrow set of capabilities the
// differentiation pipeline needs. The zero value is ready to use and safe for
// concurrent use; expressions are immutable once built.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// guard converts a kernel panic into an ErrComputation.
func guard(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrComputation, r)
	}
}

func (*Engine) Parse(text string, b Bindings) (expr Expr, err error) {
	defer guard(&err)
	return Parse(text, b)
}

func (*Engine) Differentiate(e Expr, varName string) (d Expr, err error) {
	defer guard(&err)
	return Diff(e, varName), nil
}

func (*Engine) Substitute(e, pattern, value Expr) Expr { return Replace(e, pattern, value) }

func (*Engine) Rewrite(e Expr, rule func(Expr) (Expr, bool)) Expr { return Rewrite(e, rule) }

func (*Engine) Sum(terms ...Expr) Expr { return AddOf(terms...) }

func (*Engine) Simplify(e Expr) (s Expr, err error) {
	defer guard(&err)
	return DeepSimplify(e), nil
}
