package multicurvas

import "github.com/edwingeng/deque"

// operator describes the binding of a binary operator.
type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// binop gets the operator for a token type. Only binary operators have one;
// functions and parentheses are handled structurally.
func binop(t TokenType) (operator, bool) {
	switch t {
	case Plus, Minus:
		return operator{2, false}, true
	case Mul, Div:
		return operator{3, false}, true
	case Pow:
		return operator{4, true}, true
	default:
		return operator{}, false
	}
}

// yields reports whether an operator on the stack must be emitted before
// pushing next, i.e. whether top binds at least as tightly as next when next
// is left-associative, or strictly more tightly when next is
// right-associative.
func (top operator) yields(next operator) bool {
	if next.right {
		return top.prec > next.prec
	}
	return top.prec >= next.prec
}

// compiler holds the state of one ToRPN call.
type compiler struct {
	in  *TokenBuffer
	out *TokenBuffer
	ops deque.Deque
	// depth and maxDepth track the evaluation stack effect of the output.
	depth, maxDepth int
}

// ToRPN converts an infix token stream from Tokenize into postfix order using
// the shunting-yard algorithm. The input is not modified. The result has its
// own copy of the literal pool and ends with End.
//
// Errors are *ParseError values. On error, the result is nil.
func ToRPN(buf *TokenBuffer) (*TokenBuffer, error) {
	if buf.Len() == 0 {
		return nil, &ParseError{Kind: ErrSyntax}
	}
	c := compiler{
		in: buf,
		out: &TokenBuffer{
			tokens: make([]Token, 0, len(buf.tokens)),
			values: append(make([]float64, 0, len(buf.values)), buf.values...),
		},
		ops: deque.NewDeque(),
	}
	if err := c.run(); err != nil {
		c.out.Release()
		return nil, err
	}
	c.out.depth = c.maxDepth
	return c.out, nil
}

func (c *compiler) run() error {
	for _, tok := range c.in.tokens {
		switch t := tok.Type; {
		case t == End:
			return c.finish()
		case t == Number, IsVariable(t), IsConstant(t):
			if err := c.emit(tok); err != nil {
				return err
			}
		case IsFunction(t), t == LParen:
			c.ops.PushBack(tok)
		case t == RParen:
			if err := c.closeParen(); err != nil {
				return err
			}
		case IsOperator(t):
			if err := c.pushOp(tok); err != nil {
				return err
			}
		default:
			return &ParseError{Kind: ErrSyntax, Text: t.String()}
		}
	}
	// Streams from Tokenize always end with End, but a hand-built one might
	// not.
	return c.finish()
}

// closeParen emits operators down to the matching open parenthesis, discards
// it, and then emits a function that the parenthesized group is the argument
// of.
func (c *compiler) closeParen() error {
	for {
		if c.ops.Empty() {
			return &ParseError{Kind: ErrSyntax, Text: ")"}
		}
		top := c.ops.PopBack().(Token)
		if top.Type == LParen {
			break
		}
		if err := c.emit(top); err != nil {
			return err
		}
	}
	if !c.ops.Empty() && IsFunction(c.ops.Back().(Token).Type) {
		return c.emit(c.ops.PopBack().(Token))
	}
	return nil
}

// pushOp emits stacked operators that bind at least as tightly as tok, then
// stacks tok. Functions and open parentheses stop the loop.
func (c *compiler) pushOp(tok Token) error {
	next, _ := binop(tok.Type)
	for !c.ops.Empty() {
		top, ok := binop(c.ops.Back().(Token).Type)
		if !ok || !top.yields(next) {
			break
		}
		if err := c.emit(c.ops.PopBack().(Token)); err != nil {
			return err
		}
	}
	c.ops.PushBack(tok)
	return nil
}

// finish flushes the operator stack in LIFO order and appends End.
func (c *compiler) finish() error {
	for !c.ops.Empty() {
		tok := c.ops.PopBack().(Token)
		if tok.Type == LParen {
			return &ParseError{Kind: ErrSyntax, Text: "("}
		}
		if err := c.emit(tok); err != nil {
			return err
		}
	}
	if err := c.out.Append(Token{Type: End}); err != nil {
		return &ParseError{Kind: ErrMemory}
	}
	return nil
}

// emit appends a token to the output and tracks its stack effect.
func (c *compiler) emit(tok Token) error {
	if err := c.out.Append(tok); err != nil {
		return &ParseError{Kind: ErrMemory}
	}
	switch t := tok.Type; {
	case t == Number, IsVariable(t), IsConstant(t):
		c.depth++
	case IsOperator(t):
		c.depth--
	}
	if c.depth > c.maxDepth {
		c.maxDepth = c.depth
	}
	return nil
}

// Compile tokenizes and compiles an expression, returning the postfix
// buffer. The intermediate infix buffer is released.
func Compile(text string, loc Locale) (*TokenBuffer, error) {
	infix, err := Tokenize(text, loc)
	if err != nil {
		return nil, err
	}
	defer infix.Release()
	return ToRPN(infix)
}
