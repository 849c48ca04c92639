package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// decimals is the fixed number of fractional digits used when encoding.
const decimals = 10

// Decode parses a numeric token. The whole token must be a number: a signed
// decimal with optional fraction and exponent, or one of inf, infinity, and
// nan in any case, optionally signed. Whitespace anywhere is an error. If the
// token does not decode, the error is a *ParseError holding the token
// verbatim.
//
// Literals too large for a float64 decode to an infinity of the same sign.
func Decode(token string) (float64, error) {
	if !decimalText(token) {
		return 0, &ParseError{Token: token}
	}
	if x, ok := special(token); ok {
		return x, nil
	}
	x, err := strconv.ParseFloat(token, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			// ParseFloat already returns ±Inf or ±0 here.
			return x, nil
		}
		return 0, &ParseError{Token: token}
	}
	return x, nil
}

// decimalText reports whether s contains only characters that can appear in
// a decimal float literal or a special value. It rejects forms strconv
// accepts but we don't, like hexadecimal mantissas and digit separators.
func decimalText(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9', c == '.', c == '+', c == '-', c == 'e', c == 'E':
		case strings.IndexByte("infatyINFATY", c) >= 0:
			// Letters of inf, infinity, and nan. Whether they spell one is
			// up to special and ParseFloat.
		default:
			return false
		}
	}
	return true
}

// special decodes signed nan, which ParseFloat only accepts unsigned.
func special(s string) (float64, bool) {
	t := s
	if t != "" && (t[0] == '+' || t[0] == '-') {
		t = t[1:]
	}
	if strings.EqualFold(t, "nan") {
		return math.NaN(), true
	}
	return 0, false
}

// Encode formats x with exactly ten fractional digits, then removes trailing
// zeros and a trailing decimal point. Infinities are inf and -inf, and NaN is
// NaN. Values that round to zero are always 0, never -0.
func Encode(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(x, 'f', decimals, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// EncodeSigned is like Encode, but adds a leading + to any result that does
// not already start with -. Substituting a signed result into an expression
// keeps an absorbed operator sign from disappearing, so that e.g. 2-3*-4
// becomes 2+12 rather than 212.
func EncodeSigned(x float64) string {
	s := Encode(x)
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}
