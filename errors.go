package calc

import "strconv"

// ParseError is an error indicating text that could not be decoded as a
// number. It implements EvaluationError.
type ParseError struct {
	// Token is the exact text that failed to decode. After a full pipeline
	// reduction, it is the entire residual expression.
	Token string
}

func (err *ParseError) Error() string {
	return "error parsing token: " + strconv.Quote(err.Token)
}

func (*ParseError) evaluationError() {}

// UnknownError is an error from an operator that rejected its operands
// without any particular offending token. None of the standard operators
// return it. It implements EvaluationError.
type UnknownError struct {
	// Operator is the name of the operator that failed, if known.
	Operator string
}

func (err *UnknownError) Error() string {
	if err.Operator == "" {
		return "unknown error"
	}
	return "unknown error in " + err.Operator
}

func (*UnknownError) evaluationError() {}

// EvaluationError is an error resulting from evaluating an expression. Every
// error returned by Evaluate implements EvaluationError, as should errors
// returned by custom operators.
type EvaluationError interface {
	error
	evaluationError()
}

var (
	_ EvaluationError = (*ParseError)(nil)
	_ EvaluationError = (*UnknownError)(nil)
)
