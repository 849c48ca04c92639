package calc

import (
	"context"
	"log/slog"
	"sync"
)

// Pipeline reduces expressions with an ordered list of operators. Each
// operator rewrites the expression until it has no occurrences left before the
// next operator starts; that order is the only precedence there is. A
// Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	ops    []Operator
	logger *slog.Logger
	decode func(string) (float64, error)
}

// Option is an option used when creating a pipeline.
type Option interface {
	pipelineOption()
}

type (
	loggeropt  struct{ l *slog.Logger }
	decoderopt func(string) (float64, error)
)

func (loggeropt) pipelineOption()  {}
func (decoderopt) pipelineOption() {}

// WithLogger sets the logger which receives a debug record for each rewrite
// step. The default is slog.Default at the time of logging.
func WithLogger(l *slog.Logger) Option {
	return loggeropt{l}
}

// WithDecoder replaces Decode as the conversion of the fully reduced text to
// the final result.
func WithDecoder(decode func(string) (float64, error)) Option {
	return decoderopt(decode)
}

// NewPipeline creates a pipeline applying ops in order. It panics if any
// operator's pattern arity differs from the operator's arity.
func NewPipeline(ops []Operator, opts ...Option) *Pipeline {
	p := Pipeline{
		ops:    append([]Operator(nil), ops...),
		decode: Decode,
	}
	for _, op := range p.ops {
		checkArity(op)
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case loggeropt:
			p.logger = opt.l
		case decoderopt:
			if opt != nil {
				p.decode = opt
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &p
}

// arithmetic lists the binary operators in precedence order.
func arithmetic() []Operator {
	return []Operator{
		Exponent(),
		Division(),
		Multiplication(),
		Subtraction(),
		Addition(),
	}
}

// Restricted creates a pipeline of the binary operators without brackets:
// exponent, division, multiplication, subtraction, addition.
func Restricted(opts ...Option) *Pipeline {
	return NewPipeline(arithmetic(), opts...)
}

// Standard creates the full pipeline: parenthesis, then the operators of
// Restricted. Bracket contents are evaluated with a restricted pipeline
// sharing the same options.
func Standard(opts ...Option) *Pipeline {
	inner := Restricted(opts...)
	ops := append([]Operator{Parenthesis(inner)}, inner.ops...)
	return NewPipeline(ops, opts...)
}

// Operators returns a copy of the pipeline's operators in order.
func (p *Pipeline) Operators() []Operator {
	return append([]Operator(nil), p.ops...)
}

// Reduce applies every operator of the pipeline to expr in order and returns
// what remains. For a well-formed expression, that is a single number.
func (p *Pipeline) Reduce(expr string) (string, error) {
	log := p.log()
	for _, op := range p.ops {
		var err error
		expr, err = reduce(op, expr, log)
		if err != nil {
			return "", err
		}
	}
	return expr, nil
}

// Evaluate reduces expr and decodes the remaining text. Any text that is not
// a single number after reduction is a *ParseError naming all of it.
func (p *Pipeline) Evaluate(expr string) (float64, error) {
	r, err := p.Reduce(expr)
	if err != nil {
		return 0, err
	}
	if log := p.log(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.LogAttrs(context.Background(), slog.LevelDebug, "reduced", slog.String("residual", r))
	}
	return p.decode(r)
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}
	return p.logger
}

var standard = sync.OnceValue(func() *Pipeline { return Standard() })

// Evaluate evaluates an arithmetic expression with the standard pipeline.
// Errors are EvaluationErrors.
func Evaluate(expr string) (float64, error) {
	return standard().Evaluate(expr)
}
