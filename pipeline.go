package symdiff

import "github.com/njchilds90/symdiff/algebra"

// Engine is the symbolic capability the pipeline needs. *algebra.Engine
// implements it; tests may substitute their own. Rendering results is not
// part of it: Format works on the algebra node types directly.
type Engine interface {
	Parse(text string, b algebra.Bindings) (algebra.Expr, error)
	Differentiate(e algebra.Expr, varName string) (algebra.Expr, error)
	Substitute(e, pattern, value algebra.Expr) algebra.Expr
	Rewrite(e algebra.Expr, rule func(algebra.Expr) (algebra.Expr, bool)) algebra.Expr
	Sum(terms ...algebra.Expr) algebra.Expr
	Simplify(e algebra.Expr) (algebra.Expr, error)
}

// Pipeline validates and differentiates expressions with one Engine. It
// holds no mutable state and is safe for concurrent use when its Engine is.
type Pipeline struct {
	engine Engine
}

func New(engine Engine) *Pipeline { return &Pipeline{engine: engine} }

var std = New(algebra.NewEngine())

// Default returns the pipeline backed by the algebra package.
func Default() *Pipeline { return std }

func Validate(input string) (string, error) { return std.Validate(input) }

func Derive(expr string, vars []string) (*Derivation, error) { return std.Derive(expr, vars) }

func Evaluate(input string) (*Result, error) { return std.Evaluate(input) }

func Reply(input string) string { return std.Reply(input) }
