package algebra

import (
	"fmt"
	"math/big"
	"strings"
	"text/scanner"
)

// ============================================================
// Parser
// ============================================================

// Bindings is the environment a parse resolves identifiers against. Names
// missing from both maps are rejected.
type Bindings struct {
	Symbols   map[string]Expr
	Functions map[string]func(Expr) Expr
}

// DefaultBindings binds every built-in function, the symbols x and y, and
// both spellings of Euler's number.
func DefaultBindings() Bindings {
	b := Bindings{
		Symbols:   map[string]Expr{"x": S("x"), "y": S("y"), "e": E, "E": E},
		Functions: map[string]func(Expr) Expr{},
	}
	for name, fn := range builders {
		b.Functions[name] = fn
	}
	return b
}

// ParseError reports where parsing stopped. Offset is a byte offset into the
// parsed text, or -1 when no position applies.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return "parse error: " + e.Msg
	}
	return fmt.Sprintf("parse error at position %d: %s", e.Offset, e.Msg)
}

type lexer struct {
	scanner.Scanner
	src   string
	token rune
	pos   int
	bind  Bindings
	bad   string // scanner complaint about the current token
}

func (lex *lexer) next() {
	lex.bad = ""
	lex.token = lex.Scan()
	lex.pos = lex.Position.Offset
	if lex.token == scanner.EOF {
		lex.pos = len(lex.src)
	}
	if lex.token == scanner.Int || lex.token == scanner.Float {
		// Numbers are decimal, so 010 and 08 are both rejected.
		if t := lex.TokenText(); len(t) > 1 && t[0] == '0' && '0' <= t[1] && t[1] <= '9' {
			lex.fail(lex.pos, "leading zero in number %q", t)
		}
	}
	if lex.bad != "" {
		lex.fail(lex.pos, "%s", lex.bad)
	}
}

func (lex *lexer) fail(offset int, format string, args ...interface{}) {
	panic(&ParseError{Offset: offset, Msg: fmt.Sprintf(format, args...)})
}

func (lex *lexer) describe() string {
	if lex.token == scanner.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", lex.TokenText())
}

// Parse turns text into an expression. It accepts numbers (integer or
// decimal), identifiers bound in b, the binary operators + - * / and **
// (^ is read as **), unary signs, parentheses and single-argument calls.
func Parse(text string, b Bindings) (expr Expr, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Offset: -1, Msg: "empty expression"}
	}
	lex := &lexer{src: text, bind: b}
	lex.Init(strings.NewReader(text))
	lex.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	lex.Error = func(_ *scanner.Scanner, msg string) {
		if lex.bad == "" {
			lex.bad = msg
		}
	}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			expr, err = nil, pe
		}
	}()

	lex.next()
	e := lex.expression()
	if lex.token != scanner.EOF {
		lex.fail(lex.pos, "unexpected %s", lex.describe())
	}
	return e.Simplify(), nil
}

// expression := term (('+' | '-') term)*
func (lex *lexer) expression() Expr {
	terms := []Expr{lex.term()}
	for lex.token == '+' || lex.token == '-' {
		op := lex.token
		lex.next()
		t := lex.term()
		if op == '-' {
			t = MulOf(N(-1), t)
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return AddOf(terms...)
}

// term := unary (('*' | '/') unary)*
func (lex *lexer) term() Expr {
	factors := []Expr{lex.unary()}
	for lex.token == '*' || lex.token == '/' {
		op := lex.token
		lex.next()
		f := lex.unary()
		if op == '/' {
			f = PowOf(f, N(-1))
		}
		factors = append(factors, f)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return MulOf(factors...)
}

// unary := ('+' | '-') unary | power
func (lex *lexer) unary() Expr {
	switch lex.token {
	case '-':
		lex.next()
		return MulOf(N(-1), lex.unary())
	case '+':
		lex.next()
		return lex.unary()
	}
	return lex.power()
}

// power := primary (('**' | '^') unary)?
func (lex *lexer) power() Expr {
	base := lex.primary()
	switch {
	case lex.token == '^':
		lex.next()
	case lex.token == '*' && lex.Peek() == '*':
		lex.next()
		lex.next()
	default:
		return base
	}
	return PowOf(base, lex.unary())
}

// primary := number | name | name '(' expression ')' | '(' expression ')'
func (lex *lexer) primary() Expr {
	start := lex.pos
	switch lex.token {
	case scanner.Int, scanner.Float:
		r, ok := new(big.Rat).SetString(lex.TokenText())
		if !ok {
			lex.fail(start, "invalid number %q", lex.TokenText())
		}
		lex.next()
		return &Num{val: r}
	case scanner.Ident:
		name := lex.TokenText()
		lex.next()
		if fn, ok := lex.bind.Functions[name]; ok {
			if lex.token != '(' {
				lex.fail(lex.pos, "function %q needs a parenthesised argument", name)
			}
			lex.next()
			arg := lex.expression()
			lex.expect(')')
			return fn(arg)
		}
		if sym, ok := lex.bind.Symbols[name]; ok {
			return sym
		}
		lex.fail(start, "unknown identifier %q", name)
	case '(':
		lex.next()
		e := lex.expression()
		lex.expect(')')
		return e
	}
	lex.fail(start, "unexpected %s", lex.describe())
	return nil
}

func (lex *lexer) expect(tok rune) {
	if lex.token != tok {
		lex.fail(lex.pos, "expected %q, got %s", string(tok), lex.describe())
	}
	lex.next()
}
