package polyterm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polyterm"
)

func TestParse_RoundTripsCanonicalForms(t *testing.T) {
	tests := []string{
		"5*x^2*y+7*x+2",
		"x",
		"3",
		"x+x",
		"1/2*x",
		"x^2*y^3",
		"",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			e, err := polyterm.Parse(text)
			require.NoError(t, err)
			assert.Equal(t, text, e.String())
		})
	}
}

func TestParse_ToleratesWhitespace(t *testing.T) {
	e, err := polyterm.Parse(" 5 * x^2 * y + 7 * x + 2 ")
	require.NoError(t, err)
	assert.Equal(t, "5*x^2*y+7*x+2", e.String())
}

func TestParseTerm_NumericFactorsFoldIntoCoefficient(t *testing.T) {
	term, err := polyterm.ParseTerm("x*5*y*y")
	require.NoError(t, err)
	assert.Equal(t, "5*x*y^2", term.String())
}

func TestParseTerm_NegativeCoefficient(t *testing.T) {
	term, err := polyterm.ParseTerm("-3*x")
	require.NoError(t, err)
	assert.Equal(t, "-3*x", term.String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty factor", "x**y"},
		{"bad symbol", "5*$"},
		{"bad power", "x^two"},
		{"negative power", "x^-1"},
		{"dangling plus", "x+"},
		{"leading digit symbol", "2x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := polyterm.Parse(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestParseTerm_ZeroPowerDropsSymbol(t *testing.T) {
	term, err := polyterm.ParseTerm("5*x^0*y")
	require.NoError(t, err)
	assert.Equal(t, "5*y", term.String())
	assert.Equal(t, 0, term.Monomial().Exponent("x"))
}
