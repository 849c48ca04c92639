package calc

import (
	"regexp"
	"strconv"
)

// Pattern is a compiled matcher for operator occurrences along with the
// number of operand tokens it captures. Patterns are immutable and safe for
// concurrent use.
type Pattern struct {
	re    *regexp.Regexp
	arity int
}

// NewPattern compiles a pattern which must have exactly arity capture groups.
func NewPattern(expr string, arity int) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	if n := re.NumSubexp(); n != arity {
		return nil, &ArityError{Pattern: expr, Want: arity, Got: n}
	}
	return &Pattern{re: re, arity: arity}, nil
}

// MustPattern is like NewPattern but panics if the pattern is invalid.
func MustPattern(expr string, arity int) *Pattern {
	p, err := NewPattern(expr, arity)
	if err != nil {
		panic("calc: " + err.Error())
	}
	return p
}

// Arity returns the number of operands the pattern captures.
func (p *Pattern) Arity() int {
	return p.arity
}

func (p *Pattern) String() string {
	return p.re.String()
}

// Match is a located operator occurrence. Text[Start:End] is the whole
// occurrence, including any whitespace the pattern consumes around it, and
// Operands are the captured operand tokens in left-to-right order.
type Match struct {
	Start, End int
	Operands   []string
}

// Locate finds the leftmost match of p in text. The result is false if there
// is no match anywhere in text. Locate panics if arity is not the pattern's
// arity, since that means an operator was built with the wrong pattern.
func Locate(text string, p *Pattern, arity int) (Match, bool) {
	if arity != p.arity {
		panic("calc: locate with arity " + strconv.Itoa(arity) + " on pattern of arity " + strconv.Itoa(p.arity))
	}
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	m := Match{Start: loc[0], End: loc[1], Operands: make([]string, arity)}
	for i := range m.Operands {
		a, b := loc[2*i+2], loc[2*i+3]
		if a >= 0 {
			m.Operands[i] = text[a:b]
		}
	}
	return m, true
}

// ArityError is an error indicating a pattern or operator whose number of
// capture groups does not match the number of operands it should produce.
type ArityError struct {
	// Pattern is the source of the pattern.
	Pattern string
	// Want is the required number of operands.
	Want int
	// Got is the number of capture groups in the pattern.
	Got int
}

func (err *ArityError) Error() string {
	return "pattern " + strconv.Quote(err.Pattern) + " has " + strconv.Itoa(err.Got) + " capture groups, want " + strconv.Itoa(err.Want)
}
