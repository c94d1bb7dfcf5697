package plot

import "github.com/zephyrtronium/multicurvas"

// Trapezoid integrates a compiled expression over [a, b] using the trapezoid
// rule with n intervals. It stops at the first evaluation error.
func Trapezoid(buf *multicurvas.TokenBuffer, a, b float64, n int) (float64, error) {
	if n < 1 {
		n = 1
	}
	h := (b - a) / float64(n)
	fa, err := multicurvas.EvalRPN(buf, a)
	if err != nil {
		return 0, err
	}
	fb, err := multicurvas.EvalRPN(buf, b)
	if err != nil {
		return 0, err
	}
	sum := (fa + fb) / 2
	for i := 1; i < n; i++ {
		v, err := multicurvas.EvalRPN(buf, a+float64(i)*h)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum * h, nil
}
