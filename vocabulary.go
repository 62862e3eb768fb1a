package symdiff

import (
	"sort"

	"github.com/njchilds90/symdiff/algebra"
)

// Variables the differentiator understands. "e" is Euler's number.
var allowedVariables = []string{"e", "x", "y"}

// Canonical function names.
var functionNames = []string{
	"sin", "cos", "tan", "cot",
	"sinh", "cosh", "tanh", "coth",
	"asin", "acos", "atan", "acot",
	"asinh", "acosh", "atanh", "acoth",
	"log", "exp", "sqrt",
}

// Informal spellings and the canonical function each one stands for.
var aliases = map[string]string{
	"ln":      "log",
	"ctan":    "cot",
	"ctg":     "cot",
	"tg":      "tan",
	"sh":      "sinh",
	"ch":      "cosh",
	"th":      "tanh",
	"cth":     "coth",
	"arccos":  "acos",
	"arcsin":  "asin",
	"arctan":  "atan",
	"arccot":  "acot",
	"arctg":   "atan",
	"arccotg": "acot",
	"arcsinh": "asinh",
	"arccosh": "acosh",
	"arctanh": "atanh",
	"arccoth": "acoth",
	"arcth":   "atanh",
	"arccth":  "acoth",
	"e":       "exp",
}

var (
	functionSet  = toSet(functionNames)
	variableSet  = toSet(allowedVariables)
	functionsLen = byLengthDesc(functionNames)
	aliasesLen   = byLengthDesc(keys(aliases))
)

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// byLengthDesc orders names longest first so prefix matching prefers
// "arccoth" over "arccot".
func byLengthDesc(names []string) []string {
	out := append([]string(nil), names...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// AllowedVariables returns the names an expression may use besides functions.
func AllowedVariables() []string { return append([]string(nil), allowedVariables...) }

// FunctionNames returns the canonical function names.
func FunctionNames() []string { return append([]string(nil), functionNames...) }

// Aliases returns a copy of the informal-to-canonical spelling table.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// IsKnownName reports whether a letter run is a variable, a function or an
// alias.
func IsKnownName(name string) bool {
	if _, ok := variableSet[name]; ok {
		return true
	}
	if _, ok := functionSet[name]; ok {
		return true
	}
	_, ok := aliases[name]
	return ok
}

// bindings is the restricted environment expressions are parsed in: the
// canonical functions, x, y and e.
var bindings = func() algebra.Bindings {
	b := algebra.Bindings{
		Symbols: map[string]algebra.Expr{
			"x": algebra.S("x"),
			"y": algebra.S("y"),
			"e": algebra.E,
		},
		Functions: map[string]func(algebra.Expr) algebra.Expr{},
	}
	builtin := toSet(algebra.FunctionNames())
	for _, name := range functionNames {
		if _, ok := builtin[name]; !ok {
			panic("symdiff: no algebra builder for " + name)
		}
		fn, _ := algebra.Function(name)
		b.Functions[name] = fn
	}
	return b
}()
