package multicurvas

// StackSize is the capacity of the evaluator's fixed value stack. Buffers
// from ToRPN that need more get a stack of exactly the size they need;
// other buffers that overflow it fail with ErrStack.
const StackSize = 64

// EvalRPN evaluates a postfix token stream from ToRPN, binding x to whichever
// variable the expression refers to. Tokens after End are ignored.
//
// Errors are ErrDivisionByZero, ErrMath, ErrStack, or *DomainError values
// unwrapping to ErrDomain; use errors.Is to classify them. On error, the
// result is 0.
//
// EvalRPN does not modify buf and, for expressions fitting StackSize, does
// not allocate unless it returns an error.
func EvalRPN(buf *TokenBuffer, x float64) (float64, error) {
	if buf.Len() == 0 {
		return 0, ErrStack
	}
	var local [StackSize]float64
	stack := local[:0]
	if buf.depth > len(local) {
		stack = make([]float64, 0, buf.depth)
	}
scan:
	for _, tok := range buf.tokens {
		var (
			v   float64
			err error
		)
		switch t := tok.Type; {
		case t == End:
			break scan
		case t == Number:
			var ok bool
			if v, ok = buf.Value(tok); !ok {
				return 0, ErrStack
			}
		case IsVariable(t):
			v = x
		case IsConstant(t):
			var ok bool
			if v, ok = constant(t); !ok {
				return 0, ErrStack
			}
		case IsOperator(t):
			if len(stack) < 2 {
				return 0, ErrStack
			}
			r := stack[len(stack)-1]
			l := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			if v, err = binary(t, l, r); err != nil {
				return 0, err
			}
		case IsFunction(t):
			if len(stack) < 1 {
				return 0, ErrStack
			}
			a := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if v, err = call(t, a); err != nil {
				return 0, err
			}
		default:
			// Parentheses and unknown types never appear in valid postfix.
			return 0, ErrStack
		}
		if len(stack) == cap(stack) {
			return 0, ErrStack
		}
		stack = append(stack, v)
	}
	if len(stack) != 1 {
		return 0, ErrStack
	}
	return stack[0], nil
}

// Eval is a shortcut to tokenize, compile, and evaluate an expression once.
func Eval(text string, loc Locale, x float64) (float64, error) {
	rpn, err := Compile(text, loc)
	if err != nil {
		return 0, err
	}
	defer rpn.Release()
	return EvalRPN(rpn, x)
}
