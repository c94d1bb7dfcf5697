package multicurvas

import "math"

const (
	// MaxTokens is the most tokens a buffer can hold.
	MaxTokens = 1 << 20
	// MaxValues is the most literals a buffer can hold, the range of
	// Token.Index.
	MaxValues = math.MaxUint16 + 1

	initialTokens = 64
	initialValues = 8
)

// TokenBuffer is a token stream and the pool of numeric literals its Number
// tokens refer to. The two grow independently.
//
// A buffer is owned by whoever created it. ToRPN never modifies its input and
// returns a buffer with its own copy of the literal pool, so either can be
// released without affecting the other. EvalRPN only reads buffers; it is safe
// to evaluate one buffer from several goroutines as long as none modifies it.
type TokenBuffer struct {
	tokens []Token
	values []float64
	// depth is the greatest number of values on the evaluation stack, or 0 if
	// unknown.
	depth int
}

// NewTokenBuffer creates an empty buffer. Most buffers come from Tokenize and
// ToRPN instead; this is for tools that assemble token streams directly.
func NewTokenBuffer() *TokenBuffer {
	return &TokenBuffer{
		tokens: make([]Token, 0, initialTokens),
		values: make([]float64, 0, initialValues),
	}
}

// Append adds a token. It returns ErrMemory if the buffer is full.
func (b *TokenBuffer) Append(tok Token) error {
	if len(b.tokens) >= MaxTokens {
		return ErrMemory
	}
	b.tokens = append(b.tokens, tok)
	return nil
}

// AppendNumber adds a literal to the pool and a Number token referring to it.
func (b *TokenBuffer) AppendNumber(v float64) error {
	k, err := b.addValue(v)
	if err != nil {
		return err
	}
	return b.Append(Token{Type: Number, Index: k})
}

func (b *TokenBuffer) addValue(v float64) (uint16, error) {
	if len(b.values) >= MaxValues {
		return 0, ErrMemory
	}
	b.values = append(b.values, v)
	return uint16(len(b.values) - 1), nil
}

// Len returns the number of tokens, including End.
func (b *TokenBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.tokens)
}

// Token returns the i-th token.
func (b *TokenBuffer) Token(i int) Token {
	return b.tokens[i]
}

// Tokens returns a copy of the token stream.
func (b *TokenBuffer) Tokens() []Token {
	if b == nil {
		return nil
	}
	return append([]Token(nil), b.tokens...)
}

// Values returns a copy of the literal pool.
func (b *TokenBuffer) Values() []float64 {
	if b == nil {
		return nil
	}
	return append([]float64(nil), b.values...)
}

// Value returns the literal a Number token refers to. The second result is
// false if tok is not a Number or its index is outside the pool.
func (b *TokenBuffer) Value(tok Token) (float64, bool) {
	if tok.Type != Number || int(tok.Index) >= len(b.values) {
		return 0, false
	}
	return b.values[tok.Index], true
}

// Depth returns the greatest number of values the buffer leaves on the
// evaluation stack at once. It is known only for buffers produced by ToRPN;
// for others it is 0.
func (b *TokenBuffer) Depth() int {
	if b == nil {
		return 0
	}
	return b.depth
}

// Release drops the buffer's contents. A released buffer is empty; evaluating
// it reports ErrStack.
func (b *TokenBuffer) Release() {
	if b == nil {
		return
	}
	b.tokens = nil
	b.values = nil
	b.depth = 0
}
