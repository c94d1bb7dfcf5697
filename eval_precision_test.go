package multicurvas_test

import (
	"math"
	"math/big"
	"strconv"
	"testing"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/multicurvas"
)

const oraclePrec = 256

// oracle computes a reference value at high precision and rounds it to the
// nearest float64.
func oracle(f func(z, x *big.Float) *big.Float, x float64) float64 {
	z := new(big.Float).SetPrec(oraclePrec)
	in := new(big.Float).SetPrec(oraclePrec).SetFloat64(x)
	r, _ := f(z, in).Float64()
	return r
}

func log10(z, x *big.Float) *big.Float {
	bigfloat.Log(z, x)
	ten := new(big.Float).SetPrec(z.Prec()).SetFloat64(10)
	bigfloat.Log(ten, ten)
	return z.Quo(z, ten)
}

func closeTo(got, want float64) bool {
	if got == want {
		return true
	}
	return math.Abs(got-want) <= 1e-14*math.Max(math.Abs(want), 1)
}

func TestEvalPrecision(t *testing.T) {
	cases := []struct {
		name string
		src  string
		f    func(z, x *big.Float) *big.Float
		xs   []float64
	}{
		{"exp", "exp(x)", bigfloat.Exp, []float64{-20, -1, -0.5, 0, 1e-8, 0.5, 1, 2, 10, 100}},
		{"log", "log(x)", bigfloat.Log, []float64{1e-10, 0.1, 0.5, 1, 2, math.E, 10, 1e10}},
		{"log10", "log10(x)", log10, []float64{1e-5, 0.3, 1, 7, 1000, 123456}},
		{"sqrt", "sqrt(x)", (*big.Float).Sqrt, []float64{1e-6, 0.25, 2, 3, 1e6}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rpn, err := multicurvas.Compile(c.src, multicurvas.Point)
			if err != nil {
				t.Fatal(err)
			}
			for _, x := range c.xs {
				got, err := multicurvas.EvalRPN(rpn, x)
				if err != nil {
					t.Errorf("%s at %g: %v", c.src, x, err)
					continue
				}
				if want := oracle(c.f, x); !closeTo(got, want) {
					t.Errorf("%s at %g: want %.17g, got %.17g", c.src, x, want, got)
				}
			}
		})
	}
}

func TestEvalPowPrecision(t *testing.T) {
	cases := []struct{ x, y float64 }{
		{2, 0.5},
		{2, 10},
		{1.5, 3.25},
		{10, -3},
		{0.7, 12.5},
		{3, 1.0 / 3},
	}
	for _, c := range cases {
		// The exponent is a literal because there is only one variable.
		src := "x^(" + strconv.FormatFloat(c.y, 'f', -1, 64) + ")"
		got, err := multicurvas.Eval(src, multicurvas.Point, c.x)
		if err != nil {
			t.Errorf("%s at %g: %v", src, c.x, err)
			continue
		}
		z := new(big.Float).SetPrec(oraclePrec)
		x := new(big.Float).SetPrec(oraclePrec).SetFloat64(c.x)
		y := new(big.Float).SetPrec(oraclePrec).SetFloat64(c.y)
		want, _ := bigfloat.Pow(z, x, y).Float64()
		if !closeTo(got, want) {
			t.Errorf("%s at %g: want %.17g, got %.17g", src, c.x, want, got)
		}
	}
}

func TestEvalConstantsPrecision(t *testing.T) {
	pi, _ := bigfloat.Pi(new(big.Float).SetPrec(oraclePrec)).Float64()
	e := oracle(bigfloat.Exp, 1)
	for _, c := range []struct {
		src  string
		want float64
	}{{"pi", pi}, {"e", e}} {
		got, err := multicurvas.Eval(c.src, multicurvas.Point, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("%s: want %.17g, got %.17g", c.src, c.want, got)
		}
	}
}
