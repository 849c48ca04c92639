// Package reference evaluates arithmetic expressions in a single left-to-right
// pass with conventional operator precedence, using math/big.
//
// It accepts the same tokens as package calc: numbers with optional
// sign, fraction, and exponent; inf and nan; the operators + - * / ^; and
// round brackets. ^ binds tightest and groups from the left, so 2^3^2 is 64;
// * and / share a level, as do + and -. A sign written directly against a
// number is part of the number, so -2^2 is 4, but any other sign is an
// operator binding looser than ^, so -(2)^2 and - 2^2 are -4.
//
// Unlike calc, intermediate results are never rounded to decimal text, so
// the two can be compared to check calc's operator ordering.
package reference

import (
	"io"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Option is an option for evaluation.
type Option interface {
	evalOption()
}

type precopt uint

func (precopt) evalOption() {}

// Prec sets the precision of calculations in bits. Zero means the default,
// 64.
func Prec(prec uint) Option {
	return precopt(prec)
}

type evaluator struct {
	scan *lexer
	prec uint
}

// Eval evaluates an expression. If an operation has no real result, e.g.
// 0/0, inf-inf, or (-8)^(1/3), the error is a *DomainError. Malformed input
// gives an InputError.
func Eval(src io.RuneScanner, opts ...Option) (*big.Float, error) {
	e := evaluator{scan: lex(src), prec: 64}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			if opt > 0 {
				e.prec = uint(opt)
			}
		default:
			panic("reference: unknown option type")
		}
	}
	x, err := e.term(exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := e.scan.must(); tok.kind {
	case tokenEOF:
		return x, nil
	case tokenClose:
		return nil, &BracketError{Col: tok.pos}
	default:
		panic("reference: expression ended on " + tok.String())
	}
}

// EvalString is a shortcut to evaluate a string expression.
func EvalString(src string, opts ...Option) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}

// Float64 returns the float64 nearest to x. Values beyond the float64 range
// become infinities.
func Float64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// term evaluates operators more binding than until. If there is no error,
// then term pushes the last token it scans, including EOF.
func (e *evaluator) term(until operator) (*big.Float, error) {
	x, err := e.lhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := e.scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if !prec.moreBinding(until) {
				e.scan.push(tok)
				return x, nil
			}
			y, err := e.term(prec)
			if err != nil {
				return nil, err
			}
			x, err = e.apply(prec.op, x, y)
			if err != nil {
				return nil, err
			}
		case tokenNum, tokenOpen:
			// No implicit multiplication.
			return nil, &TokenError{Col: tok.pos, Text: tok.text}
		case tokenClose, tokenEOF:
			e.scan.push(tok)
			return x, nil
		default:
			panic("reference: unknown token: " + tok.String())
		}
	}
}

// lhs evaluates the first operand of a term: a number, a bracketed group, or
// a unary operator applied to a term.
func (e *evaluator) lhs(until operator) (*big.Float, error) {
	tok, err := e.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return e.num(tok.text)
	case tokenOp:
		if tok.text == "+" || tok.text == "-" {
			num, ok, err := e.scan.attached()
			if err != nil {
				return nil, err
			}
			if ok {
				return e.num(tok.text + num.text)
			}
		}
		prec := unop(tok.text)
		if prec.op == 0 {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-(y) -> x^(-(y))
			prec.prec, prec.right = until.prec, until.right
		}
		x, err := e.term(prec)
		if err != nil {
			return nil, err
		}
		if prec.op == '-' {
			x.Neg(x)
		}
		return x, nil
	case tokenOpen:
		x, err := e.term(exprprec)
		if err != nil {
			return nil, err
		}
		if end := e.scan.must(); end.kind != tokenClose {
			return nil, &BracketError{Col: tok.pos, Open: true}
		}
		return x, nil
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("reference: unknown token: " + tok.String())
	}
}

// num converts a number token, possibly with a sign prepended.
func (e *evaluator) num(s string) (*big.Float, error) {
	neg := strings.HasPrefix(s, "-")
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "inf", "infinity":
		return new(big.Float).SetPrec(e.prec).SetInf(neg), nil
	case "nan":
		return nil, &DomainError{Func: "NaN"}
	}
	r, _, err := new(big.Float).SetPrec(e.prec).Parse(s, 10)
	if err != nil {
		// The lexer has already checked the syntax, so the only way to fail
		// is an exponent beyond big.Float's range.
		r = new(big.Float).SetPrec(e.prec)
		if k := strings.IndexAny(s, "eE"); k < 0 || k+1 >= len(s) || s[k+1] != '-' {
			r.SetInf(neg)
		} else if neg {
			r.Neg(r)
		}
	}
	return r, nil
}

// apply computes a binary operation. big.Float panics with big.ErrNaN where
// float64 would produce NaN; apply converts that to a DomainError.
func (e *evaluator) apply(op byte, x, y *big.Float) (r *big.Float, err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if _, ok := v.(big.ErrNaN); !ok {
			panic(v)
		}
		r, err = nil, &DomainError{X: y, Func: string(op)}
	}()
	r = new(big.Float).SetPrec(e.prec)
	switch op {
	case '+':
		r.Add(x, y)
	case '-':
		r.Sub(x, y)
	case '*':
		r.Mul(x, y)
	case '/':
		r.Quo(x, y)
	case '^':
		return e.pow(r, x, y)
	default:
		panic("reference: invalid operator " + string(op))
	}
	return r, nil
}

// pow sets z to x^y. bigfloat handles positive bases and negative bases with
// integer exponents; zeros and infinities follow math.Pow.
func (e *evaluator) pow(z, x, y *big.Float) (*big.Float, error) {
	switch {
	case y.Sign() == 0:
		return z.SetInt64(1), nil
	case x.IsInf() || y.IsInf() || x.Sign() == 0:
		// Do nothing; handled below.
	case x.Sign() > 0:
		return bigfloat.Pow(z, x, y), nil
	case y.IsInt():
		ax := new(big.Float).SetPrec(e.prec).Abs(x)
		bigfloat.Pow(z, ax, y)
		if n, _ := y.Int(nil); n.Bit(0) == 1 {
			z.Neg(z)
		}
		return z, nil
	default:
		return nil, &DomainError{X: x, Func: "^"}
	}
	r := math.Pow(Float64(x), Float64(y))
	if math.IsNaN(r) {
		return nil, &DomainError{X: x, Func: "^"}
	}
	return z.SetFloat64(r), nil
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operator symbol, or 0 for none.
	op byte
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of 0.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, '+'}
	case "-":
		return operator{1, false, '-'}
	case "*":
		return operator{5, false, '*'}
	case "/":
		return operator{5, false, '/'}
	case "^":
		return operator{15, false, '^'}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of 0.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, '+'}
	case "-":
		return operator{10, true, '-'}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to evaluate an entire subexpression.
var exprprec = operator{-128, true, 0}
