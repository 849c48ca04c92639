package calc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("2+3*4")
	f.Add("(1+(2*3))")
	f.Add("8/2*4-1+6/3")
	f.Add("1e-5-2^-1")
	f.Add("-inf/NaN")
	f.Fuzz(func(t *testing.T, s string) {
		v, err := calc.Evaluate(s)
		if err != nil {
			var eerr calc.EvaluationError
			if !errors.As(err, &eerr) {
				t.Fatalf("%q: %#v is not an EvaluationError", s, err)
			}
			return
		}
		if _, err := calc.Decode(calc.Encode(v)); err != nil {
			t.Errorf("%q: result %v doesn't round trip: %v", s, v, err)
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add("1.5e3")
	f.Add("-inf")
	f.Add("0x1p-2")
	f.Fuzz(func(t *testing.T, s string) {
		_, err := calc.Decode(s)
		if err == nil {
			return
		}
		var perr *calc.ParseError
		if !errors.As(err, &perr) || perr.Token != s {
			t.Errorf("%q: wrong error %#v", s, err)
		}
	})
}
