package calc

import (
	"regexp"
	"sync"
)

// NumericValue is the pattern source matching one signed numeric token as it
// appears in an expression: an optionally signed decimal with optional
// fraction and lowercase exponent, or inf or NaN. It has no capture groups.
// Digits are any Unicode decimal digit; Decode rejects those outside ASCII.
const NumericValue = `(?:-|\+)?(?:\p{Nd}*\.?\p{Nd}+(?:e(?:-|\+)?\p{Nd}+)?|inf|NaN)`

// Space is the pattern source matching any number of Unicode white space
// characters. The Perl class \s alone omits \v and the non-ASCII spaces.
const Space = `[\s\v\x{85}\p{Z}]*`

// BinaryPattern builds the pattern for a binary operator spelled symbol: two
// numeric tokens around the symbol, with any whitespace around the tokens and
// the symbol included in the match.
func BinaryPattern(symbol string) (*Pattern, error) {
	return NewPattern(binarySource(regexp.QuoteMeta(symbol)), 2)
}

func binarySource(op string) string {
	return Space + `(` + NumericValue + `)` + Space + op + Space + `(` + NumericValue + `)` + Space
}

// The standard patterns are compiled on first use and never modified.
var (
	parenthesisPattern = sync.OnceValue(func() *Pattern {
		// Innermost group: no brackets inside.
		return MustPattern(Space+`\(([^()]+)\)`+Space, 1)
	})
	exponentPattern       = sync.OnceValue(func() *Pattern { return MustPattern(binarySource(`\^`), 2) })
	divisionPattern       = sync.OnceValue(func() *Pattern { return MustPattern(binarySource(`/`), 2) })
	multiplicationPattern = sync.OnceValue(func() *Pattern { return MustPattern(binarySource(`\*`), 2) })
	subtractionPattern    = sync.OnceValue(func() *Pattern { return MustPattern(binarySource(`-`), 2) })
	additionPattern       = sync.OnceValue(func() *Pattern { return MustPattern(binarySource(`\+`), 2) })
)
