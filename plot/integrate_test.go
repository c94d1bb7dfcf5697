package plot_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/multicurvas"
	"github.com/zephyrtronium/multicurvas/plot"
)

func TestTrapezoid(t *testing.T) {
	cases := []struct {
		src  string
		a, b float64
		n    int
		want float64
		tol  float64
	}{
		{"x*x+1", 0, 1, 1000, 4.0 / 3, 1e-6},
		{"2*x+1", 0, 2, 1, 6, 0},
		{"sin(x)", 0, math.Pi, 10000, 2, 1e-7},
		{"exp(t)", 0, 1, 10000, math.E - 1, 1e-8},
		{"3", -1, 1, 0, 6, 0},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			rpn, err := multicurvas.Compile(c.src, multicurvas.Point)
			if err != nil {
				t.Fatal(err)
			}
			got, err := plot.Trapezoid(rpn, c.a, c.b, c.n)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-c.want) > c.tol {
				t.Errorf("want %g, got %g", c.want, got)
			}
		})
	}
}

func TestTrapezoidError(t *testing.T) {
	rpn, err := multicurvas.Compile("1/x", multicurvas.Point)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := plot.Trapezoid(rpn, -1, 1, 2); !errors.Is(err, multicurvas.ErrDivisionByZero) {
		t.Errorf("want division by zero, got %v", err)
	}
	if _, err := plot.Trapezoid(rpn, -1, 1, 3); err != nil {
		t.Errorf("points missing zero failed: %v", err)
	}
}

func BenchmarkTrapezoid(b *testing.B) {
	rpn, err := multicurvas.Compile("x*x+1", multicurvas.Point)
	if err != nil {
		b.Fatal(err)
	}
	native := func(x float64) float64 { return x*x + 1 }
	b.Run("parsed", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := plot.Trapezoid(rpn, 0, 1, 1000); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("native", func(b *testing.B) {
		var sum float64
		for i := 0; i < b.N; i++ {
			h := 1.0 / 1000
			s := (native(0) + native(1)) / 2
			for k := 1; k < 1000; k++ {
				s += native(float64(k) * h)
			}
			sum += s * h
		}
		_ = sum
	})
}

func ExampleTrapezoid() {
	rpn, err := multicurvas.Compile("x*x+1", multicurvas.Point)
	if err != nil {
		panic(err)
	}
	r, err := plot.Trapezoid(rpn, 0, 1, 100000)
	fmt.Printf("%.6f %v\n", r, err)
	// Output: 1.333333 <nil>
}
