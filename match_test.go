package calc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
)

func TestLocate(t *testing.T) {
	sub, err := calc.BinaryPattern("-")
	require.NoError(t, err)
	paren := calc.MustPattern(`\s*\(([^()]+)\)\s*`, 1)
	cases := []struct {
		name     string
		text     string
		p        *calc.Pattern
		arity    int
		start    int
		end      int
		operands []string
	}{
		{"simple", "8-3", sub, 2, 0, 3, []string{"8", "3"}},
		{"leftmost", "8-3-2", sub, 2, 0, 3, []string{"8", "3"}},
		{"spaces", " 8 - 3 ", sub, 2, 0, 7, []string{"8", "3"}},
		{"signed", "2*-3-4", sub, 2, 2, 6, []string{"-3", "4"}},
		{"neg-rhs", "1--2", sub, 2, 0, 4, []string{"1", "-2"}},
		{"sci", "1e-5-2", sub, 2, 0, 6, []string{"1e-5", "2"}},
		{"specials", "inf-NaN", sub, 2, 0, 7, []string{"inf", "NaN"}},
		{"after-plus", "1+2-3", sub, 2, 1, 5, []string{"+2", "3"}},
		{"paren", "2*(1+2)", paren, 1, 2, 7, []string{"1+2"}},
		{"paren-innermost", "((1)+(2))", paren, 1, 1, 4, []string{"1"}},
		{"paren-spaces", "2 * ( 3 ) + 1", paren, 1, 3, 10, []string{" 3 "}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, ok := calc.Locate(c.text, c.p, c.arity)
			require.True(t, ok, "no match in %q", c.text)
			assert.Equal(t, c.start, m.Start)
			assert.Equal(t, c.end, m.End)
			assert.Equal(t, c.operands, m.Operands)
			assert.LessOrEqual(t, m.Start, m.End)
			assert.LessOrEqual(t, m.End, len(c.text))
		})
	}
}

func TestLocateNone(t *testing.T) {
	add, err := calc.BinaryPattern("+")
	require.NoError(t, err)
	for _, text := range []string{"", "5", "+5", "1-2", "1e+5", "a+b", "1 + "} {
		_, ok := calc.Locate(text, add, 2)
		assert.False(t, ok, "match in %q", text)
	}
}

func TestLocateArityMismatch(t *testing.T) {
	add, err := calc.BinaryPattern("+")
	require.NoError(t, err)
	assert.Panics(t, func() { calc.Locate("1+2", add, 1) })
	assert.Panics(t, func() { calc.Locate("1+2", add, 3) })
}

func TestNewPatternArity(t *testing.T) {
	_, err := calc.NewPattern(`(\d+)\+(\d+)`, 1)
	var aerr *calc.ArityError
	require.True(t, errors.As(err, &aerr), "%#v is not an *ArityError", err)
	assert.Equal(t, 1, aerr.Want)
	assert.Equal(t, 2, aerr.Got)

	_, err = calc.NewPattern(`(`, 1)
	assert.Error(t, err)

	p, err := calc.NewPattern(`(\d+)%(\d+)`, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Arity())
	assert.Equal(t, `(\d+)%(\d+)`, p.String())

	assert.Panics(t, func() { calc.MustPattern(`x`, 1) })
}

func TestBinaryPatternQuotes(t *testing.T) {
	p, err := calc.BinaryPattern("**")
	require.NoError(t, err)
	m, ok := calc.Locate("2**3", p, 2)
	require.True(t, ok)
	assert.Equal(t, []string{"2", "3"}, m.Operands)
	_, ok = calc.Locate("2*3", p, 2)
	assert.False(t, ok)
}
