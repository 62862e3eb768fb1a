package symdiff

import "bytes"

// text is an expression being rewritten. Every byte remembers the offset in
// the original input it came from, so errors found after any rewrite can be
// reported against what the user typed.
type text struct {
	b    []byte
	from []int
}

func (t *text) String() string { return string(t.b) }

func (t *text) put(c byte, origin int) {
	t.b = append(t.b, c)
	t.from = append(t.from, origin)
}

// copy appends src[i:j] with its origins.
func (t *text) copy(src *text, i, j int) {
	t.b = append(t.b, src.b[i:j]...)
	t.from = append(t.from, src.from[i:j]...)
}

// origin maps an offset in t back to the input. Offsets past the end map to
// the last character; an empty text has no positions at all.
func (t *text) origin(i int) int {
	switch {
	case len(t.from) == 0 || i < 0:
		return PositionUnknown
	case i >= len(t.from):
		return t.from[len(t.from)-1]
	}
	return t.from[i]
}

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }

type wordKind int

const (
	wordUnknown wordKind = iota
	wordFunction
	wordAlias
	wordVariable
	wordConstant
)

// word splits the letter run at s[i] into its first name: a canonical function
// (longest match), an alias (longest match), the variables x and y, the
// constant e, or a single unknown letter.
func word(s []byte, i int) (int, wordKind) {
	rest := s[i:]
	for _, f := range functionsLen {
		if bytes.HasPrefix(rest, []byte(f)) {
			return len(f), wordFunction
		}
	}
	for _, a := range aliasesLen {
		if a != "e" && bytes.HasPrefix(rest, []byte(a)) {
			return len(a), wordAlias
		}
	}
	switch s[i] {
	case 'x', 'y':
		return 1, wordVariable
	case 'e':
		return 1, wordConstant
	}
	return 1, wordUnknown
}

// prepare strips spaces, lower-cases letters and spells ^ as **.
func prepare(input string) *text {
	t := &text{}
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
		case c == '^':
			t.put('*', i)
			t.put('*', i)
		case 'A' <= c && c <= 'Z':
			t.put(c+('a'-'A'), i)
		default:
			t.put(c, i)
		}
	}
	return t
}

// resolveAliases replaces informal names that are followed by a letter, digit
// or ( with their canonical spelling. A lone e stays the constant.
func resolveAliases(src *text) *text {
	out := &text{}
	s := src.b
	for i := 0; i < len(s); {
		if !isLetter(s[i]) {
			out.copy(src, i, i+1)
			i++
			continue
		}
		n, kind := word(s, i)
		canonical := ""
		switch kind {
		case wordAlias:
			canonical = aliases[string(s[i:i+n])]
		case wordConstant:
			canonical = aliases["e"]
		}
		if canonical == "" || i+n >= len(s) || !startsArgument(s[i+n]) {
			out.copy(src, i, i+n)
			i += n
			continue
		}
		for k := 0; k < len(canonical); k++ {
			j := i + k
			if j >= i+n {
				j = i + n - 1
			}
			out.put(canonical[k], src.from[j])
		}
		i += n
	}
	return out
}

func startsArgument(c byte) bool { return isLetter(c) || isDigit(c) || c == '(' }

// bareArgument matches digits, an optional *, and then a variable right after
// a function name at j, as in sin2x, sin2*x, sinx and sin*x. The variable
// must not run into another letter or digit.
func bareArgument(s []byte, j int) (digitsFrom, digitsTo, variable int, ok bool) {
	k := j
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	digitsFrom, digitsTo = j, k
	if k < len(s) && s[k] == '*' {
		k++
	}
	if k >= len(s) || (s[k] != 'x' && s[k] != 'y') {
		return 0, 0, 0, false
	}
	if k+1 < len(s) && (isLetter(s[k+1]) || isDigit(s[k+1])) {
		return 0, 0, 0, false
	}
	return digitsFrom, digitsTo, k, true
}

// parenthesise wraps the bare argument of a function call in brackets:
// sin2x becomes sin(2*x) and sinx becomes sin(x). A trailing power such as
// the **2 in sinx**2 is left in place.
func parenthesise(src *text) *text {
	out := &text{}
	s := src.b
	for i := 0; i < len(s); {
		if !isLetter(s[i]) {
			out.copy(src, i, i+1)
			i++
			continue
		}
		n, kind := word(s, i)
		out.copy(src, i, i+n)
		end := i + n
		i = end
		if kind != wordFunction {
			continue
		}
		from, to, v, ok := bareArgument(s, end)
		if !ok {
			continue
		}
		out.put('(', src.from[end])
		if to > from {
			out.copy(src, from, to)
			star := src.from[v]
			if s[to] == '*' {
				star = src.from[to]
			}
			out.put('*', star)
		}
		out.copy(src, v, v+1)
		out.put(')', src.from[v])
		i = v + 1
	}
	return out
}

type lastToken int

const (
	afterOther lastToken = iota
	afterNumber
	afterVariable
	afterName
	afterClose
)

// insertMultiplication makes implicit products explicit: a number before a
// letter or (, a letter or ) before a number, and a standalone variable or )
// before a letter or (.
func insertMultiplication(src *text) *text {
	out := &text{}
	s := src.b
	prev := afterOther
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isLetter(c):
			n, kind := word(s, i)
			if prev == afterNumber || prev == afterVariable || prev == afterClose {
				out.put('*', src.from[i])
			}
			out.copy(src, i, i+n)
			prev = afterName
			if kind == wordVariable {
				prev = afterVariable
			}
			i += n
		case isDigit(c):
			j := i
			for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
				j++
			}
			if prev == afterVariable || prev == afterName || prev == afterClose {
				out.put('*', src.from[i])
			}
			out.copy(src, i, j)
			prev = afterNumber
			i = j
		case c == '(':
			if prev == afterNumber || prev == afterVariable || prev == afterClose {
				out.put('*', src.from[i])
			}
			out.copy(src, i, i+1)
			prev = afterOther
			i++
		case c == ')':
			out.copy(src, i, i+1)
			prev = afterClose
			i++
		default:
			out.copy(src, i, i+1)
			prev = afterOther
			i++
		}
	}
	return out
}

// normalize runs the fixed rewrite sequence. Each stage is a single linear
// scan, so normalisation always terminates after four passes.
func normalize(input string) *text {
	t := prepare(input)
	t = resolveAliases(t)
	t = parenthesise(t)
	t = insertMultiplication(t)
	return parenthesise(t)
}

// Normalize rewrites informal notation into a strict expression string:
// "2sinx + x^2" becomes "2*sin(x)+x**2".
func Normalize(input string) string { return normalize(input).String() }
