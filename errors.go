package symdiff

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrorKind classifies why an expression was rejected.
type ErrorKind string

const (
	// UnmatchedCloseBracket indicates a ) with no open bracket before it.
	UnmatchedCloseBracket ErrorKind = "unmatched-close-bracket"
	// UnmatchedOpenBracket indicates a ( that is never closed.
	UnmatchedOpenBracket ErrorKind = "unmatched-open-bracket"
	// AdjacentOperators indicates two operators in a row other than **.
	AdjacentOperators ErrorKind = "adjacent-operators"
	// EquationNotExpression indicates an = sign.
	EquationNotExpression ErrorKind = "equation-not-expression"
	// UnknownIdentifier indicates a name outside the supported vocabulary.
	UnknownIdentifier ErrorKind = "unknown-identifier"
	// EngineParseFailure indicates the algebra engine rejected the text.
	EngineParseFailure ErrorKind = "engine-parse-failure"
)

// PositionUnknown is reported when no character can be blamed.
const PositionUnknown = -1

var (
	// ErrInvalidExpression matches every *ValidationError with errors.Is.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrUnsupportedVariable is returned when asked to differentiate by
	// anything other than x or y.
	ErrUnsupportedVariable = errors.New("unsupported variable")
	// ErrComputation wraps failures reported by the algebra engine.
	ErrComputation = errors.New("derivative computation failed")
)

// ValidationError reports the first defect found in an expression. Position
// is a character offset into Input, spaces included.
type ValidationError struct {
	Kind     ErrorKind
	Position int
	Input    string
	Err      error
}

// newValidationError converts a byte offset into input to a character
// offset.
func newValidationError(kind ErrorKind, input string, offset int, cause error) *ValidationError {
	pos := PositionUnknown
	if offset >= 0 && offset <= len(input) {
		pos = utf8.RuneCountInString(input[:offset])
	}
	return &ValidationError{Kind: kind, Position: pos, Input: input, Err: cause}
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s at position %d", e.Kind, e.Position)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidExpression }

// Char returns the character at Position, or "" when the position is
// unknown or out of range.
func (e *ValidationError) Char() string {
	if e.Position < 0 {
		return ""
	}
	runes := []rune(e.Input)
	if e.Position >= len(runes) {
		return ""
	}
	return string(runes[e.Position])
}
