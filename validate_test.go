package symdiff_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/algebra"
)

func TestValidate_Accepts(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"x^2", "x**2"},
		{"sin2x + cosy", "sin(2*x)+cos(y)"},
		{"x(x+1)", "x*(x+1)"},
		{"e^x", "e**x"},
		{"lnx", "log(x)"},
		{"-x", "-x"},
		{"x/(y+1)", "x/(y+1)"},
		{"5", "5"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := symdiff.Validate(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		in   string
		kind symdiff.ErrorKind
		pos  int
		char string
	}{
		{"x)", symdiff.UnmatchedCloseBracket, 1, ")"},
		{"(x+1))", symdiff.UnmatchedCloseBracket, 5, ")"},
		{"(x+1", symdiff.UnmatchedOpenBracket, 0, "("},
		{"sin(", symdiff.UnmatchedOpenBracket, 3, "("},
		{"x+(y*(x", symdiff.UnmatchedOpenBracket, 2, "("},
		{"x+*2", symdiff.AdjacentOperators, 1, "+"},
		{"x**-1", symdiff.AdjacentOperators, 2, "*"},
		{"x**+2", symdiff.AdjacentOperators, 2, "*"},
		{"x***y", symdiff.AdjacentOperators, 2, "*"},
		{"x ** / 2", symdiff.AdjacentOperators, 3, "*"},
		{"x^-1", symdiff.AdjacentOperators, 1, "^"},
		{"x = 1", symdiff.EquationNotExpression, 2, "="},
		{"(x=", symdiff.EquationNotExpression, 2, "="},
		{"z+1", symdiff.UnknownIdentifier, 0, "z"},
		{"x + q", symdiff.UnknownIdentifier, 4, "q"},
		{"sin(x) + foo", symdiff.UnknownIdentifier, 9, "f"},
		{"x+", symdiff.EngineParseFailure, 1, "+"},
		{"()", symdiff.EngineParseFailure, 1, ")"},
		{"x+08", symdiff.EngineParseFailure, 2, "0"},
		{"2x^010", symdiff.EngineParseFailure, 3, "0"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := symdiff.Validate(c.in)
			require.Error(t, err)
			assert.Equal(t, c.in, got, "rejected input is returned unchanged")

			var verr *symdiff.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, c.kind, verr.Kind)
			assert.Equal(t, c.pos, verr.Position)
			assert.Equal(t, c.char, verr.Char())
			assert.ErrorIs(t, err, symdiff.ErrInvalidExpression)
		})
	}
}

func TestValidate_PositionCountsSpaces(t *testing.T) {
	_, err := symdiff.Validate("x  +   * 2")
	var verr *symdiff.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, symdiff.AdjacentOperators, verr.Kind)
	assert.Equal(t, 3, verr.Position)
	assert.Equal(t, "+", verr.Char())
}

func TestValidate_PositionCountsCharacters(t *testing.T) {
	// Each Cyrillic letter is two bytes but one position.
	_, err := symdiff.Validate("жж x)")
	var verr *symdiff.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, symdiff.UnmatchedCloseBracket, verr.Kind)
	assert.Equal(t, 4, verr.Position)
	assert.Equal(t, ")", verr.Char())
}

func TestValidate_EquationReportedFirst(t *testing.T) {
	// The = check runs before the bracket scan.
	_, err := symdiff.Validate(")x=1")
	var verr *symdiff.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, symdiff.EquationNotExpression, verr.Kind)
	assert.Equal(t, 2, verr.Position)
}

func TestValidate_EngineParseFailureKeepsCause(t *testing.T) {
	_, err := symdiff.Validate("x+")
	var perr *algebra.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Offset)
}

func TestValidate_EmptyInput(t *testing.T) {
	_, err := symdiff.Validate("   ")
	var verr *symdiff.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, symdiff.EngineParseFailure, verr.Kind)
	assert.Equal(t, symdiff.PositionUnknown, verr.Position)
	assert.Equal(t, "", verr.Char())
}

func TestValidate_OutputIsStable(t *testing.T) {
	for _, in := range []string{"sin2x+cosy", "x(x+1)", "lnx*e^y", "2sqrtx"} {
		norm, err := symdiff.Validate(in)
		require.NoError(t, err, in)
		again, err := symdiff.Validate(norm)
		require.NoError(t, err, in)
		assert.Equal(t, norm, again)
	}
}
