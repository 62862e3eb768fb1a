package symdiff

import (
	"bytes"
	"errors"
	"regexp"

	"github.com/njchilds90/symdiff/algebra"
)

var letterRun = regexp.MustCompile(`[a-z]+`)

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '^':
		return true
	}
	return false
}

// Validate normalises input and checks it. On success it returns the
// normalised expression. On failure it returns input unchanged together with
// a *ValidationError whose Position indexes input itself, spaces included.
//
// Checks run in a fixed order and stop at the first defect: an = sign
// anywhere, then brackets and operators in one left-to-right scan, then
// unclosed brackets, then unknown names, and finally a parse by the engine.
func (p *Pipeline) Validate(input string) (string, error) {
	norm := normalize(input)
	s := norm.b

	if i := bytes.IndexByte(s, '='); i >= 0 {
		return input, newValidationError(EquationNotExpression, input, norm.origin(i), nil)
	}

	var open []int
	lastOp := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return input, newValidationError(UnmatchedCloseBracket, input, norm.origin(i), nil)
			}
			open = open[:len(open)-1]
		}
		if !isOperator(c) {
			lastOp = -1
			continue
		}
		if lastOp >= 0 {
			return input, newValidationError(AdjacentOperators, input, norm.origin(lastOp), nil)
		}
		// ** is one operator; a following operator pairs with its second star.
		if c == '*' && i+1 < len(s) && s[i+1] == '*' {
			i++
		}
		lastOp = i
	}
	if len(open) > 0 {
		return input, newValidationError(UnmatchedOpenBracket, input, norm.origin(open[0]), nil)
	}

	for _, loc := range letterRun.FindAllIndex(s, -1) {
		if !IsKnownName(string(s[loc[0]:loc[1]])) {
			return input, newValidationError(UnknownIdentifier, input, norm.origin(loc[0]), nil)
		}
	}

	if _, err := p.engine.Parse(norm.String(), bindings); err != nil {
		offset := PositionUnknown
		var pe *algebra.ParseError
		if errors.As(err, &pe) {
			offset = norm.origin(pe.Offset)
		}
		return input, newValidationError(EngineParseFailure, input, offset, err)
	}
	return norm.String(), nil
}
