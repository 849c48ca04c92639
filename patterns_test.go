package calc

import (
	"regexp"
	"sync"
	"testing"
)

func TestStandardPatternsOnce(t *testing.T) {
	pats := []func() *Pattern{
		parenthesisPattern,
		exponentPattern,
		divisionPattern,
		multiplicationPattern,
		subtractionPattern,
		additionPattern,
	}
	for i, pat := range pats {
		var wg sync.WaitGroup
		got := make([]*Pattern, 8)
		for k := range got {
			wg.Add(1)
			go func(k int) {
				defer wg.Done()
				got[k] = pat()
			}(k)
		}
		wg.Wait()
		for k := range got {
			if got[k] != got[0] {
				t.Errorf("pattern %d: call %d gave %p, call 0 gave %p", i, k, got[k], got[0])
			}
		}
		want := 2
		if i == 0 {
			want = 1
		}
		if a := got[0].Arity(); a != want {
			t.Errorf("pattern %d has arity %d, want %d", i, a, want)
		}
	}
}

func TestStandardOperatorsSharePatterns(t *testing.T) {
	if Addition().Pattern() != Addition().Pattern() {
		t.Error("two additions have different patterns")
	}
	if Parenthesis(Restricted()).Pattern() != parenthesisPattern() {
		t.Error("parenthesis doesn't use the shared pattern")
	}
}

func TestSpace(t *testing.T) {
	re := regexp.MustCompile(`^` + Space + `$`)
	for _, s := range []string{"", " ", "\t\n\v\f\r", "\u0085", "\u00a0", "\u1680", "\u2003", "\u2028\u2029", "\u202f\u205f\u3000"} {
		if !re.MatchString(s) {
			t.Errorf("%q is not space", s)
		}
	}
	for _, s := range []string{"x", "\u200b", "_"} {
		if re.MatchString(s) {
			t.Errorf("%q is space", s)
		}
	}
}

func TestNumericValueDigits(t *testing.T) {
	re := regexp.MustCompile(`^` + NumericValue + `$`)
	for _, s := range []string{"12", "-1.5e3", "\u0661\u0662", "inf", "+NaN"} {
		if !re.MatchString(s) {
			t.Errorf("%q is not a numeric value", s)
		}
	}
	for _, s := range []string{"", "1e", "1.2.3", "Inf", "x"} {
		if re.MatchString(s) {
			t.Errorf("%q is a numeric value", s)
		}
	}
}
