// Package plot turns plot definitions such as "Y=sin(x):-3,3:" into sampled
// point data using the multicurvas evaluator.
package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zephyrtronium/multicurvas"
)

// DefaultSamples is the number of points sampled when a definition does not
// give a count.
const DefaultSamples = 500

// MaxSamples is the most points a plot may sample.
const MaxSamples = 1 << 20

// Kind is the coordinate system of a plot.
type Kind int

const (
	// Cartesian is Y=f(x).
	Cartesian Kind = iota + 1
	// Polar is R=f(t).
	Polar
	// PolarSquared is R^2=f(t), also written R**2=f(t).
	PolarSquared
	// Parametric is X=f(t);Y=g(t).
	Parametric
)

func (k Kind) String() string {
	switch k {
	case Cartesian:
		return "cartesian"
	case Polar:
		return "polar"
	case PolarSquared:
		return "polar squared"
	case Parametric:
		return "parametric"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Plot is a parsed plot definition.
type Plot struct {
	Kind Kind
	// Expr is the right-hand side of Y, R, R^2, or X for parametric plots.
	Expr string
	// Expr2 is the Y expression of a parametric plot.
	Expr2 string
	// From and To bound the variable. From < To.
	From, To float64
	// Interval is whether the definition gave explicit bounds.
	Interval bool
	// Samples is the number of points to sample, from 1 to MaxSamples.
	Samples int
	// Locale is the decimal convention of the expressions and bounds.
	Locale multicurvas.Locale
}

// SyntaxError is an error in a plot definition. Errors from the expressions
// it contains are available through Unwrap.
type SyntaxError struct {
	// Input is the definition being parsed.
	Input string
	// Reason describes the problem.
	Reason string
	// Err is the underlying expression error, if any.
	Err error
}

func (err *SyntaxError) Error() string {
	if err.Err != nil {
		return "plot " + strconv.Quote(err.Input) + ": " + err.Reason + ": " + err.Err.Error()
	}
	return "plot " + strconv.Quote(err.Input) + ": " + err.Reason
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

// Parse parses a plot definition:
//
//	Y=f(x)
//	R=f(t)
//	R^2=f(t)
//	X=f(t);Y=g(t)
//
// optionally followed by an interval ":C,D:" and a sample count ":C,D:N".
// The bounds C and D are constant expressions like -pi or 2*pi. In the comma
// locale, the bounds are separated by a semicolon instead: ":0;2*pi:".
// Without an interval, cartesian plots span [-10, 10] and the others span
// [0, 2*pi].
//
// Errors are *SyntaxError values.
func Parse(input string, loc multicurvas.Locale) (*Plot, error) {
	p := Plot{Samples: DefaultSamples, Locale: loc}
	head, tail, interval := strings.Cut(input, ":")
	if err := p.parseHead(input, head); err != nil {
		return nil, err
	}
	if interval {
		if err := p.parseInterval(input, tail); err != nil {
			return nil, err
		}
		return &p, nil
	}
	if p.Kind == Cartesian {
		p.From, p.To = -10, 10
	} else {
		p.From, p.To = 0, 2*math.Pi
	}
	return &p, nil
}

func (p *Plot) parseHead(input, head string) error {
	first, second, parametric := strings.Cut(head, ";")
	lhs, rhs, err := equation(input, first)
	if err != nil {
		return err
	}
	if parametric {
		lhs2, rhs2, err := equation(input, second)
		if err != nil {
			return err
		}
		switch {
		case lhs == "X" && lhs2 == "Y":
			p.Expr, p.Expr2 = rhs, rhs2
		case lhs == "Y" && lhs2 == "X":
			p.Expr, p.Expr2 = rhs2, rhs
		default:
			return &SyntaxError{Input: input, Reason: "parametric plot needs X= and Y="}
		}
		p.Kind = Parametric
		vx, err := p.check(input, p.Expr)
		if err != nil {
			return err
		}
		vy, err := p.check(input, p.Expr2)
		if err != nil {
			return err
		}
		if vx != 0 && vy != 0 && vx != vy {
			return &SyntaxError{Input: input, Reason: "parametric plot mixes " + vx.String() + " and " + vy.String()}
		}
		return nil
	}
	switch lhs {
	case "Y":
		p.Kind = Cartesian
	case "R":
		p.Kind = Polar
	case "R^2", "R**2":
		p.Kind = PolarSquared
	case "X":
		return &SyntaxError{Input: input, Reason: "X= needs a Y= to go with it"}
	default:
		return &SyntaxError{Input: input, Reason: "unknown plot " + strconv.Quote(lhs) + "="}
	}
	p.Expr = rhs
	_, err = p.check(input, rhs)
	return err
}

// equation splits "LHS=RHS", normalizing the left side.
func equation(input, s string) (lhs, rhs string, err error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", &SyntaxError{Input: input, Reason: "missing ="}
	}
	lhs = strings.ToUpper(strings.Join(strings.Fields(lhs), ""))
	rhs = strings.TrimSpace(rhs)
	if rhs == "" {
		return "", "", &SyntaxError{Input: input, Reason: "empty expression for " + lhs}
	}
	return lhs, rhs, nil
}

// check verifies that an expression tokenizes and uses the variable its plot
// kind sweeps. It returns the variable, or 0 if the expression has none.
func (p *Plot) check(input, expr string) (multicurvas.TokenType, error) {
	buf, err := multicurvas.Tokenize(expr, p.Locale)
	if err != nil {
		return 0, &SyntaxError{Input: input, Reason: "bad expression " + strconv.Quote(expr), Err: err}
	}
	defer buf.Release()
	for _, tok := range buf.Tokens() {
		if !tok.Type.IsVariable() {
			continue
		}
		switch {
		case p.Kind == Cartesian && tok.Type != multicurvas.VarX:
			return 0, &SyntaxError{Input: input, Reason: "cartesian plot must be in x, not " + tok.Type.String()}
		case p.Kind != Cartesian && tok.Type == multicurvas.VarX:
			return 0, &SyntaxError{Input: input, Reason: p.Kind.String() + " plot must be in t or theta, not x"}
		}
		// Tokenize already ensures there is only one variable.
		return tok.Type, nil
	}
	return 0, nil
}

func (p *Plot) parseInterval(input, tail string) error {
	bounds, count, ok := strings.Cut(tail, ":")
	if !ok {
		return &SyntaxError{Input: input, Reason: "unterminated interval"}
	}
	sep := ","
	if p.Locale == multicurvas.Comma {
		sep = ";"
	}
	c, d, ok := strings.Cut(bounds, sep)
	if !ok {
		return &SyntaxError{Input: input, Reason: "interval needs two bounds separated by " + strconv.Quote(sep)}
	}
	var err error
	if p.From, err = bound(input, c, p.Locale); err != nil {
		return err
	}
	if p.To, err = bound(input, d, p.Locale); err != nil {
		return err
	}
	if !(p.From < p.To) {
		return &SyntaxError{Input: input, Reason: fmt.Sprintf("empty interval [%g, %g]", p.From, p.To)}
	}
	p.Interval = true
	if count = strings.TrimSpace(count); count != "" {
		n, err := strconv.Atoi(count)
		if err != nil || n < 1 {
			return &SyntaxError{Input: input, Reason: "bad sample count " + strconv.Quote(count)}
		}
		if n > MaxSamples {
			return &SyntaxError{Input: input, Reason: "sample count " + count + " exceeds " + strconv.Itoa(MaxSamples)}
		}
		p.Samples = n
	}
	return nil
}

// bound evaluates a constant expression.
func bound(input, s string, loc multicurvas.Locale) (float64, error) {
	rpn, err := multicurvas.Compile(s, loc)
	if err != nil {
		return 0, &SyntaxError{Input: input, Reason: "bad bound " + strconv.Quote(s), Err: err}
	}
	defer rpn.Release()
	for _, tok := range rpn.Tokens() {
		if tok.Type.IsVariable() {
			return 0, &SyntaxError{Input: input, Reason: "bound " + strconv.Quote(s) + " is not constant"}
		}
	}
	v, err := multicurvas.EvalRPN(rpn, 0)
	if err != nil {
		return 0, &SyntaxError{Input: input, Reason: "bad bound " + strconv.Quote(s), Err: err}
	}
	return v, nil
}

// String formats the plot as a definition that Parse accepts.
func (p *Plot) String() string {
	var b strings.Builder
	switch p.Kind {
	case Cartesian:
		b.WriteString("Y=" + p.Expr)
	case Polar:
		b.WriteString("R=" + p.Expr)
	case PolarSquared:
		b.WriteString("R^2=" + p.Expr)
	case Parametric:
		b.WriteString("X=" + p.Expr + ";Y=" + p.Expr2)
	}
	if p.Interval || p.Samples != DefaultSamples {
		sep := ","
		if p.Locale == multicurvas.Comma {
			sep = ";"
		}
		fmt.Fprintf(&b, ":%s%s%s:", literal(p.From, p.Locale), sep, literal(p.To, p.Locale))
		if p.Samples != DefaultSamples {
			b.WriteString(strconv.Itoa(p.Samples))
		}
	}
	return b.String()
}

// literal formats a bound so the tokenizer reads back the same value.
func literal(v float64, loc multicurvas.Locale) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if loc == multicurvas.Comma {
		s = strings.Replace(s, ".", ",", 1)
	}
	if v < 0 {
		return "-" + s
	}
	return s
}
