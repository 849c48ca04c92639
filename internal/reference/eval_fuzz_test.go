package reference_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calc/internal/reference"
)

func FuzzReference(f *testing.F) {
	f.Add("2+3*4")
	f.Add("-(2)^-(1/3)")
	f.Add("(1e400)*0")
	f.Add("1Ã—2")
	f.Fuzz(func(t *testing.T, s string) {
		_, err := reference.EvalString(s)
		if err == nil {
			return
		}
		var ierr reference.InputError
		var derr *reference.DomainError
		if !errors.As(err, &ierr) && !errors.As(err, &derr) {
			t.Errorf("%q: unexpected error %#v", s, err)
		}
	})
}
