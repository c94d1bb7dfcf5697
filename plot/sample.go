package plot

import (
	"context"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/multicurvas"
)

// chunk is the number of points a worker evaluates between checks of its
// context.
const chunk = 256

// Curve is a compiled plot, ready to sample. A Curve is safe for concurrent
// use until it is released.
type Curve struct {
	kind     Kind
	f, g     *multicurvas.TokenBuffer
	from, to float64
	samples  int
}

// Compile compiles the plot's expressions.
func (p *Plot) Compile() (*Curve, error) {
	if p.Samples < 1 || p.Samples > MaxSamples {
		return nil, &SyntaxError{Input: p.String(), Reason: "sample count " + strconv.Itoa(p.Samples) + " out of range"}
	}
	f, err := multicurvas.Compile(p.Expr, p.Locale)
	if err != nil {
		return nil, &SyntaxError{Input: p.String(), Reason: "compiling " + p.Expr, Err: err}
	}
	c := Curve{kind: p.Kind, f: f, from: p.From, to: p.To, samples: p.Samples}
	if p.Kind == Parametric {
		c.g, err = multicurvas.Compile(p.Expr2, p.Locale)
		if err != nil {
			f.Release()
			return nil, &SyntaxError{Input: p.String(), Reason: "compiling " + p.Expr2, Err: err}
		}
	}
	return &c, nil
}

// Kind returns the coordinate system of the curve.
func (c *Curve) Kind() Kind {
	return c.kind
}

// Release drops the compiled expressions.
func (c *Curve) Release() {
	c.f.Release()
	c.g.Release()
}

// Data is sampled point data. All slices have one element per sample.
type Data struct {
	// T holds the value of the variable at each point.
	T []float64
	// X and Y are the coordinates of each point. They are NaN where the
	// point failed.
	X, Y []float64
	// OK is whether each point evaluated successfully.
	OK []bool
	// Errs holds the evaluation error of each failed point.
	Errs []error
}

// Len returns the number of points.
func (d *Data) Len() int {
	return len(d.T)
}

// Failures returns the number of points that failed to evaluate.
func (d *Data) Failures() int {
	n := 0
	for _, ok := range d.OK {
		if !ok {
			n++
		}
	}
	return n
}

// Sample evaluates the curve at evenly spaced points of its interval,
// including both ends. A point whose evaluation fails is marked in the
// result without stopping the sweep; Sample itself fails only when ctx is
// done.
func (c *Curve) Sample(ctx context.Context, opts ...Option) (*Data, error) {
	s := sampler{samples: c.samples, workers: 1}
	for _, opt := range opts {
		s = opt.sampleOption(s)
	}
	n := s.samples
	d := Data{
		T:    make([]float64, n),
		X:    make([]float64, n),
		Y:    make([]float64, n),
		OK:   make([]bool, n),
		Errs: make([]error, n),
	}
	w := s.workers
	if w > n {
		w = n
	}
	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w; i++ {
		lo, hi := i*n/w, (i+1)*n/w
		group.Go(func() error {
			return c.sweep(ctx, &d, lo, hi)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// sweep fills points [lo, hi) of d.
func (c *Curve) sweep(ctx context.Context, d *Data, lo, hi int) error {
	n := len(d.T)
	for lo < hi {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := lo + chunk
		if end > hi {
			end = hi
		}
		for i := lo; i < end; i++ {
			t := c.param(i, n)
			x, y, err := c.point(t)
			d.T[i] = t
			if err != nil {
				d.X[i], d.Y[i] = math.NaN(), math.NaN()
				d.Errs[i] = err
				continue
			}
			d.X[i], d.Y[i], d.OK[i] = x, y, true
		}
		lo = end
	}
	return nil
}

// param gives the variable's value at point i of n.
func (c *Curve) param(i, n int) float64 {
	if n == 1 || i == 0 {
		return c.from
	}
	if i == n-1 {
		return c.to
	}
	return c.from + (c.to-c.from)*float64(i)/float64(n-1)
}

// point evaluates the curve at one value of its variable.
func (c *Curve) point(t float64) (x, y float64, err error) {
	v, err := multicurvas.EvalRPN(c.f, t)
	if err != nil {
		return 0, 0, err
	}
	switch c.kind {
	case Cartesian:
		return t, v, nil
	case Polar:
		return v * math.Cos(t), v * math.Sin(t), nil
	case PolarSquared:
		if v < 0 {
			return 0, 0, &multicurvas.DomainError{Func: "sqrt", X: v}
		}
		r := math.Sqrt(v)
		return r * math.Cos(t), r * math.Sin(t), nil
	case Parametric:
		y, err := multicurvas.EvalRPN(c.g, t)
		if err != nil {
			return 0, 0, err
		}
		return v, y, nil
	default:
		return 0, 0, multicurvas.ErrStack
	}
}
