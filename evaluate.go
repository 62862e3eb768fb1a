package symdiff

import (
	"errors"
	"fmt"
	"strings"
)

// Prompt is what interactive front ends ask the user.
const Prompt = "Введите функцию f(x, y) или help: "

// HelpText explains the accepted notation.
const HelpText = `Инструкция по вводу функции:

- Поддерживаются переменные: x и y
- Допустимы: степени (x^2), скобки, тригонометрия (sinx, cosx), логарифмы (lnx)
- Можно вводить:
    ▪ sinx, siny
    ▪ sin2x, sin2y
    ▪ x^2 + y^2
    ▪ x(x+1)
- Производная будет вычислена по всем переменным, найденным в выражении.
Чтобы выйти, нажмите Ctrl+C`

// IsHelp reports whether input asks for HelpText.
func IsHelp(input string) bool { return strings.EqualFold(strings.TrimSpace(input), "help") }

// Result is a completed differentiation.
type Result struct {
	Input      string
	Normalized string
	Derivation *Derivation
	// Display is the total derivative in informal notation.
	Display string
}

// Evaluate runs the whole pipeline on one line of user input: validate,
// find the variables, differentiate by each and format the sum.
func (p *Pipeline) Evaluate(input string) (*Result, error) {
	norm, err := p.Validate(input)
	if err != nil {
		return nil, err
	}
	d, err := p.Derive(norm, Variables(input))
	if err != nil {
		return nil, err
	}
	return &Result{
		Input:      input,
		Normalized: norm,
		Derivation: d,
		Display:    Format(d.Total),
	}, nil
}

// Message renders the outcome of Evaluate as the line shown to the user.
func Message(res *Result, err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Ошибка в выражении на позиции %d: '%s'", verr.Position, verr.Char())
	case err != nil:
		return "Ошибка при вычислении производной: " + err.Error()
	}
	return fmt.Sprintf("Производная: d(f)/d(%s) = %s", strings.Join(res.Derivation.Variables, ", "), res.Display)
}

// Reply answers one line of user input with either the help text or the
// Message for it.
func (p *Pipeline) Reply(input string) string {
	if IsHelp(input) {
		return HelpText
	}
	res, err := p.Evaluate(input)
	return Message(res, err)
}
