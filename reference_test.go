package calc_test

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/reference"
)

// exprgen generates random expressions which both calc and the reference
// evaluator handle identically up to rounding. Literals are single digits.
// Divisors and exponents are always literals, so there is no division by
// zero and powers stay bounded. A - is never directly followed by the base of
// a power, since calc would read it as the base's sign.
type exprgen struct {
	r *rand.Rand
}

// expr generates a chain of terms. The second result bounds the magnitude of
// every intermediate value.
func (g exprgen) expr(depth int) (string, float64) {
	var b strings.Builder
	s, bound := g.power(depth, false)
	b.WriteString(s)
	bound++
	for n := g.r.IntN(4); n > 0; n-- {
		op := "+-*/"[g.r.IntN(4)]
		b.WriteByte(op)
		var m float64
		if op == '/' {
			s, m = g.digit()
		} else {
			s, m = g.power(depth, op == '-')
		}
		b.WriteString(s)
		bound *= 1 + m
	}
	return b.String(), bound
}

func (g exprgen) power(depth int, negated bool) (string, float64) {
	s, m := g.base(depth)
	if negated {
		return s, m
	}
	for n := g.r.IntN(3); n > 0; n-- {
		k := g.r.IntN(4)
		s += "^" + strconv.Itoa(k)
		m = math.Pow(math.Max(m, 1), float64(k))
	}
	return s, m
}

func (g exprgen) base(depth int) (string, float64) {
	if depth > 0 && g.r.IntN(3) == 0 {
		s, m := g.expr(depth - 1)
		return "(" + s + ")", m
	}
	return g.digit()
}

func (g exprgen) digit() (string, float64) {
	d := 1 + g.r.IntN(9)
	return strconv.Itoa(d), float64(d)
}

func TestAgreesWithReference(t *testing.T) {
	g := exprgen{r: rand.New(rand.NewPCG(0x5eed, 1))}
	for i := 0; i < 2000; i++ {
		expr, bound := g.expr(2)
		if bound > 1e12 {
			// Keep values far from the limits of float64.
			continue
		}
		want, err := reference.EvalString(expr)
		require.NoError(t, err, expr)
		w := reference.Float64(want)
		got, err := calc.Evaluate(expr)
		require.NoError(t, err, expr)
		// calc rounds every intermediate result to ten decimal places.
		assert.InDelta(t, w, got, 1e-7*bound, expr)
	}
}

func TestAgreesWithReferenceFixed(t *testing.T) {
	exprs := []string{
		"8/2*4-1+6/3",
		"8-3-2",
		"2^3^2",
		"20/2/5",
		"2+3*4",
		"2-3*4",
		"9/3/3*2",
		"1-2+3-4+5",
		"6/2*3/9",
		"2*3-4*5+6/2",
		"(1+2)*3",
		"(1+(2*3))",
		"2*(3-5)^2",
		"1-(2-3)",
		"-2^2",
		"2^-1",
		"2 - 3^2",
		"1+2^3^2/4",
		"7/(9-2)*3",
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			want, err := reference.EvalString(expr)
			require.NoError(t, err)
			got, err := calc.Evaluate(expr)
			require.NoError(t, err)
			assert.InDelta(t, reference.Float64(want), got, 1e-9)
		})
	}
}

func TestKnownDivergences(t *testing.T) {
	// With no space, the exponent pass reads the - as the sign of the base,
	// so calc computes 2+(-3)^2. A space between the - and the base keeps
	// them apart.
	cases := []struct {
		expr string
		calc float64
		ref  float64
	}{
		{"2-3^2", 11, -7},
		{"2 -3^2", 11, -7},
		{"2 - 3^2", -7, -7},
		{"1-(2)^2", 5, -3},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			got, err := calc.Evaluate(c.expr)
			require.NoError(t, err)
			assert.Equal(t, c.calc, got)
			want, err := reference.EvalString(c.expr)
			require.NoError(t, err)
			assert.InDelta(t, c.ref, reference.Float64(want), 1e-9)
		})
	}
}
