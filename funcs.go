package multicurvas

import (
	"math"
	"strconv"
)

const (
	piValue = 3.14159265358979323846
	eValue  = 2.71828182845904523536
)

// Domain checks run before calling into package math so that the error
// classification does not depend on what math returns out of domain.

func fnSin(x float64) (float64, error) { return math.Sin(x), nil }
func fnCos(x float64) (float64, error) { return math.Cos(x), nil }
func fnTan(x float64) (float64, error) { return math.Tan(x), nil }
func fnAbs(x float64) (float64, error) { return math.Abs(x), nil }
func fnExp(x float64) (float64, error) { return math.Exp(x), nil }

func fnSqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, &DomainError{Func: "sqrt", X: x}
	}
	return math.Sqrt(x), nil
}

func fnLog(x float64) (float64, error) {
	if x <= 0 {
		return 0, &DomainError{Func: "log", X: x}
	}
	return math.Log(x), nil
}

func fnLog10(x float64) (float64, error) {
	if x <= 0 {
		return 0, &DomainError{Func: "log10", X: x}
	}
	return math.Log10(x), nil
}

func fnSinh(x float64) (float64, error) { return math.Sinh(x), nil }
func fnCosh(x float64) (float64, error) { return math.Cosh(x), nil }
func fnTanh(x float64) (float64, error) { return math.Tanh(x), nil }

func fnAsin(x float64) (float64, error) {
	if x < -1 || x > 1 {
		return 0, &DomainError{Func: "asin", X: x}
	}
	return math.Asin(x), nil
}

func fnAcos(x float64) (float64, error) {
	if x < -1 || x > 1 {
		return 0, &DomainError{Func: "acos", X: x}
	}
	return math.Acos(x), nil
}

func fnAtan(x float64) (float64, error)  { return math.Atan(x), nil }
func fnAsinh(x float64) (float64, error) { return math.Asinh(x), nil }

func fnAcosh(x float64) (float64, error) {
	if x < 1 {
		return 0, &DomainError{Func: "acosh", X: x}
	}
	return math.Acosh(x), nil
}

func fnAtanh(x float64) (float64, error) {
	if x <= -1 || x >= 1 {
		return 0, &DomainError{Func: "atanh", X: x}
	}
	return math.Atanh(x), nil
}

func fnCeil(x float64) (float64, error)  { return math.Ceil(x), nil }
func fnFloor(x float64) (float64, error) { return math.Floor(x), nil }

// fnFrac is x - floor(x), so it is in [0, 1) for negative x as well.
func fnFrac(x float64) (float64, error) { return x - math.Floor(x), nil }

// binary applies a binary operator.
func binary(op TokenType, l, r float64) (float64, error) {
	var v float64
	switch op {
	case Plus:
		v = l + r
	case Minus:
		v = l - r
	case Mul:
		v = l * r
	case Div:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		v = l / r
	case Pow:
		v = math.Pow(l, r)
		if math.IsNaN(v) {
			return 0, &DomainError{Func: "^", X: l}
		}
	default:
		return 0, ErrStack
	}
	return finite(v)
}

// call applies the function with type fn.
func call(fn TokenType, x float64) (float64, error) {
	if fn == Neg {
		return -x, nil
	}
	kw := keywordOf(fn)
	if kw == nil || kw.fn == nil {
		return 0, ErrStack
	}
	v, err := kw.fn(x)
	if err != nil {
		return 0, err
	}
	return finite(v)
}

// finite is the catch-all for results that are infinite or NaN without
// being classified by a domain check.
func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrMath
	}
	return v, nil
}

// constant gives the value of a constant type.
func constant(t TokenType) (float64, bool) {
	kw := keywordOf(t)
	if kw == nil || !IsConstant(t) {
		return 0, false
	}
	return kw.val, true
}

// DomainError is an error returned when a function or operator is applied to
// an argument outside its domain. DomainError unwraps to ErrDomain.
type DomainError struct {
	// Func is a name identifying the function or operator.
	Func string
	// X is the out-of-domain argument. For ^, it is the base.
	X float64
}

func (err *DomainError) Error() string {
	return strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain of " + err.Func
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}
