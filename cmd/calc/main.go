// Command calc evaluates an arithmetic expression given on the command line.
//
// Multiple arguments are joined with spaces, so quoting is optional. An
// argument that is not a flag is part of the expression even when it starts
// with a minus sign, as in calc -1/0.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/reference"
)

type cli struct {
	Expr   []string `arg:"" optional:"" help:"Expression to evaluate."`
	Trace  bool     `short:"t" env:"CALC_TRACE" help:"Log each rewrite step to stderr."`
	Verify bool     `env:"CALC_VERIFY" help:"Also evaluate with conventional precedence and report any difference."`
	Prec   uint     `env:"CALC_PREC" default:"64" help:"Precision in bits for --verify."`
	Color  string   `env:"CALC_COLOR" enum:"auto,always,never" default:"auto" help:"Color errors and warnings (${enum})."`
}

// exit is panicked by kong's exit hook so that run can return the code.
type exit int

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	var c cli
	k, err := kong.New(&c,
		kong.Name("calc"),
		kong.Description("Evaluate an arithmetic expression by rewriting it one operator at a time."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exit(code)) }),
	)
	if err != nil {
		panic(err)
	}
	defer func() {
		switch v := recover().(type) {
		case nil: // do nothing
		case exit:
			code = int(v)
		default:
			panic(v)
		}
	}()
	if _, err := k.Parse(exprArgs(k, args)); err != nil {
		fmt.Fprintln(stderr, "calc:", err)
		return 2
	}

	errc := color.New(color.FgRed)
	warnc := color.New(color.FgYellow)
	switch c.Color {
	case "always":
		errc.EnableColor()
		warnc.EnableColor()
	case "never":
		errc.DisableColor()
		warnc.DisableColor()
	}

	if len(c.Expr) == 0 {
		fmt.Fprintln(stdout, "Insert an expression")
		return 0
	}
	expr := strings.Join(c.Expr, " ")
	var opts []calc.Option
	if c.Trace {
		h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, calc.WithLogger(slog.New(h)))
	}
	v, err := calc.Standard(opts...).Evaluate(expr)
	if err != nil {
		errc.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, calc.Encode(v))
	if c.Verify {
		verify(stderr, warnc, expr, v, c.Prec)
	}
	return 0
}

// exprArgs moves every argument which is not a flag of k after a --, so that
// a negative number like -1 is read as the start of an expression rather than
// a cluster of short flags. Arguments after an explicit -- are left alone.
func exprArgs(k *kong.Kong, args []string) []string {
	long := make(map[string]*kong.Flag)
	short := make(map[rune]bool)
	for _, group := range k.Model.AllFlags(false) {
		for _, f := range group {
			long[f.Name] = f
			if f.Short != 0 {
				short[f.Short] = true
			}
		}
	}
	var flags, expr []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			expr = append(expr, args[i+1:]...)
			return append(append(flags, "--"), expr...)
		case strings.HasPrefix(a, "--"):
			flags = append(flags, a)
			name, _, inline := strings.Cut(a[2:], "=")
			if f := long[name]; f != nil && !inline && !f.IsBool() && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		case shortFlags(a, short):
			flags = append(flags, a)
		default:
			expr = append(expr, a)
		}
	}
	return append(append(flags, "--"), expr...)
}

// shortFlags reports whether a is a cluster of known short flags like -t.
func shortFlags(a string, short map[rune]bool) bool {
	if len(a) < 2 || a[0] != '-' {
		return false
	}
	for _, r := range a[1:] {
		if !short[r] {
			return false
		}
	}
	return true
}

// verify evaluates expr with the reference evaluator and reports the result
// and whether it differs from got.
func verify(w io.Writer, warn *color.Color, expr string, got float64, prec uint) {
	r, err := reference.EvalString(expr, reference.Prec(prec))
	if err != nil {
		warn.Fprintln(w, "reference:", err)
		return
	}
	want := reference.Float64(r)
	fmt.Fprintln(w, "reference:", calc.Encode(want))
	if !agree(got, want) {
		warn.Fprintln(w, "warning: result differs from reference")
	}
}

// agree reports whether got is within rounding of want.
func agree(got, want float64) bool {
	if got == want {
		return true
	}
	if math.IsInf(got, 0) || math.IsInf(want, 0) || math.IsNaN(got) {
		return false
	}
	return math.Abs(got-want) <= 1e-9*math.Max(1, math.Abs(want))
}
