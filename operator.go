package calc

import (
	"context"
	"log/slog"
	"math"
	"strconv"
)

// Operator is a rewrite rule for one kind of operator occurrence. Reduce uses
// an Operator to repeatedly find the leftmost occurrence of its pattern,
// compute the result, and splice the result back into the expression.
type Operator interface {
	// Name identifies the operator in logs and errors.
	Name() string

	// Arity is the number of operands the operator takes. It must equal the
	// arity of the operator's pattern.
	Arity() int

	// Pattern returns the matcher for occurrences of the operator. The
	// pattern captures exactly Arity operand tokens.
	Pattern() *Pattern

	// DecodeOperand converts one captured operand token to a value. Failures
	// should be EvaluationErrors, normally *ParseError.
	DecodeOperand(token string) (float64, error)

	// Apply computes the operator's result. operands has length Arity.
	// Failures should be EvaluationErrors.
	Apply(operands []float64) (float64, error)

	// FormatResult renders a result for substitution into the expression.
	// The substituted text must not leave the occurrence matchable, or
	// reduction never ends.
	FormatResult(x float64) string
}

// Binary is an Operator taking two numeric operands. Operands decode with
// Decode, and results are formatted with EncodeSigned so that an operand sign
// absorbed by the match is preserved in the rewritten expression.
type Binary struct {
	name    string
	pattern *Pattern
	fn      func(x, y float64) (float64, error)
}

// NewBinary creates a binary operator. The pattern must capture two operands;
// BinaryPattern builds the usual form. fn may return an error to reject its
// operands, which should be an EvaluationError such as *UnknownError.
func NewBinary(name string, pattern *Pattern, fn func(x, y float64) (float64, error)) (*Binary, error) {
	if pattern.Arity() != 2 {
		return nil, &ArityError{Pattern: pattern.String(), Want: 2, Got: pattern.Arity()}
	}
	return &Binary{name: name, pattern: pattern, fn: fn}, nil
}

func (op *Binary) Name() string {
	return op.name
}

func (op *Binary) Arity() int {
	return 2
}

func (op *Binary) Pattern() *Pattern {
	return op.pattern
}

func (op *Binary) DecodeOperand(token string) (float64, error) {
	return Decode(token)
}

func (op *Binary) Apply(operands []float64) (float64, error) {
	return op.fn(operands[0], operands[1])
}

func (op *Binary) FormatResult(x float64) string {
	return EncodeSigned(x)
}

// arith makes a standard binary operator, which never fails.
func arith(name string, pattern *Pattern, f func(x, y float64) float64) *Binary {
	return &Binary{
		name:    name,
		pattern: pattern,
		fn: func(x, y float64) (float64, error) {
			return f(x, y), nil
		},
	}
}

// Exponent returns the operator for a^b. It follows math.Pow, so e.g. a
// negative base with a fractional exponent gives NaN rather than an error.
func Exponent() Operator {
	return arith("exponent", exponentPattern(), math.Pow)
}

// Division returns the operator for a/b. Division by zero gives an infinity
// or NaN rather than an error.
func Division() Operator {
	return arith("division", divisionPattern(), func(x, y float64) float64 { return x / y })
}

// Multiplication returns the operator for a*b.
func Multiplication() Operator {
	return arith("multiplication", multiplicationPattern(), func(x, y float64) float64 { return x * y })
}

// Subtraction returns the operator for a-b.
func Subtraction() Operator {
	return arith("subtraction", subtractionPattern(), func(x, y float64) float64 { return x - y })
}

// Addition returns the operator for a+b.
func Addition() Operator {
	return arith("addition", additionPattern(), func(x, y float64) float64 { return x + y })
}

// parenthesis unwraps innermost bracket groups by evaluating their contents.
type parenthesis struct {
	inner *Pipeline
}

// Parenthesis returns the operator which replaces an innermost bracketed
// group with its value. The group's contents are evaluated with inner, which
// should not itself contain a parenthesis operator; contents never contain
// brackets, so one would never match anyway.
func Parenthesis(inner *Pipeline) Operator {
	return parenthesis{inner: inner}
}

func (parenthesis) Name() string {
	return "parenthesis"
}

func (parenthesis) Arity() int {
	return 1
}

func (parenthesis) Pattern() *Pattern {
	return parenthesisPattern()
}

func (op parenthesis) DecodeOperand(token string) (float64, error) {
	return op.inner.Evaluate(token)
}

func (parenthesis) Apply(operands []float64) (float64, error) {
	return operands[0], nil
}

func (parenthesis) FormatResult(x float64) string {
	return Encode(x)
}

// Reduce rewrites text with op until the text contains no occurrence of op's
// pattern. Each step replaces the leftmost occurrence, so chains of the same
// operator fold left to right. The first error from decoding an operand or
// applying op stops the reduction.
func Reduce(op Operator, text string) (string, error) {
	return reduce(op, text, nil)
}

func reduce(op Operator, text string, log *slog.Logger) (string, error) {
	p, n := op.Pattern(), op.Arity()
	operands := make([]float64, n)
	for {
		m, ok := Locate(text, p, n)
		if !ok {
			return text, nil
		}
		for i, tok := range m.Operands {
			x, err := op.DecodeOperand(tok)
			if err != nil {
				return "", err
			}
			operands[i] = x
		}
		r, err := op.Apply(operands)
		if err != nil {
			return "", err
		}
		s := op.FormatResult(r)
		next := text[:m.Start] + s + text[m.End:]
		if log != nil && log.Enabled(context.Background(), slog.LevelDebug) {
			log.LogAttrs(context.Background(), slog.LevelDebug, "rewrite",
				slog.String("op", op.Name()),
				slog.Int("start", m.Start),
				slog.Int("end", m.End),
				slog.Any("operands", m.Operands),
				slog.String("result", s),
				slog.String("text", next),
			)
		}
		text = next
	}
}

// checkArity panics if op's pattern doesn't capture op's operands.
func checkArity(op Operator) {
	if got, want := op.Pattern().Arity(), op.Arity(); got != want {
		panic("calc: operator " + op.Name() + " takes " + strconv.Itoa(want) + " operands but its pattern captures " + strconv.Itoa(got))
	}
}
