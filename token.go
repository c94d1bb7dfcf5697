package multicurvas

import "strconv"

// TokenType identifies a token. Operators and parentheses are their own
// character codes. Numbers, variables, constants, and functions occupy
// reserved bands above 127, and End and Error are sentinels outside every
// band.
type TokenType uint16

const (
	Plus   TokenType = '+'
	Minus  TokenType = '-'
	Mul    TokenType = '*'
	Div    TokenType = '/'
	Pow    TokenType = '^'
	LParen TokenType = '('
	RParen TokenType = ')'

	// Number is a literal whose value lives in the buffer's literal pool.
	Number TokenType = 128

	VarX     TokenType = 129
	VarTheta TokenType = 130
	VarT     TokenType = 131

	ConstPi TokenType = 140
	ConstE  TokenType = 141

	Sin   TokenType = 160
	Cos   TokenType = 161
	Tan   TokenType = 162
	Abs   TokenType = 163
	Sqrt  TokenType = 164
	Exp   TokenType = 165
	Log   TokenType = 166
	Log10 TokenType = 167
	Sinh  TokenType = 168
	Cosh  TokenType = 169
	Tanh  TokenType = 170
	Asin  TokenType = 171
	Acos  TokenType = 172
	Atan  TokenType = 173
	Asinh TokenType = 174
	Acosh TokenType = 175
	Atanh TokenType = 176
	Ceil  TokenType = 177
	Floor TokenType = 178
	Frac  TokenType = 179
	// Neg negates its operand. The tokenizer never produces it; unary minus
	// is rewritten as subtraction from zero instead.
	Neg TokenType = 180

	// End terminates every token stream.
	End TokenType = 255
	// Error is never stored in a buffer.
	Error TokenType = 256
)

// Bands of token types. Each is a closed interval, and no two overlap.
const (
	VariableStart TokenType = 129
	VariableEnd   TokenType = 138
	ConstantStart TokenType = 140
	ConstantEnd   TokenType = 159
	FunctionStart TokenType = 160
	FunctionEnd   TokenType = 199
)

// Token is one element of a token stream. Index refers to the owning
// buffer's literal pool and is meaningful only when Type is Number.
type Token struct {
	Type  TokenType
	Index uint16
}

// IsOperator reports whether t is one of the binary operators.
func IsOperator(t TokenType) bool {
	switch t {
	case Plus, Minus, Mul, Div, Pow:
		return true
	}
	return false
}

// IsVariable reports whether t is in the variable band.
func IsVariable(t TokenType) bool {
	return VariableStart <= t && t <= VariableEnd
}

// IsConstant reports whether t is in the constant band.
func IsConstant(t TokenType) bool {
	return ConstantStart <= t && t <= ConstantEnd
}

// IsFunction reports whether t is in the function band.
func IsFunction(t TokenType) bool {
	return FunctionStart <= t && t <= FunctionEnd
}

func (t TokenType) IsOperator() bool { return IsOperator(t) }
func (t TokenType) IsVariable() bool { return IsVariable(t) }
func (t TokenType) IsConstant() bool { return IsConstant(t) }
func (t TokenType) IsFunction() bool { return IsFunction(t) }

// String returns the keyword or operator text for t, or a descriptive name
// for the remaining types.
func (t TokenType) String() string {
	switch t {
	case Plus, Minus, Mul, Div, Pow, LParen, RParen:
		return string(rune(t))
	case Number:
		return "NUMBER"
	case Neg:
		return "NEG"
	case End:
		return "END"
	case Error:
		return "ERROR"
	}
	if kw := keywordOf(t); kw != nil {
		return kw.name
	}
	return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
}

// keyword is a row of the keyword table. Adding a variable, constant, or
// function means reserving a type in its band and adding a row here.
type keyword struct {
	name string
	typ  TokenType
	// fn is the implementation of a function.
	fn func(float64) (float64, error)
	// val is the value of a constant.
	val float64
}

// keywords is ordered longest name first so that a name is always probed
// before any shorter name sharing its prefix.
var keywords = sortkeywords([]keyword{
	{name: "x", typ: VarX},
	{name: "theta", typ: VarTheta},
	{name: "t", typ: VarT},

	{name: "pi", typ: ConstPi, val: piValue},
	{name: "e", typ: ConstE, val: eValue},

	{name: "sin", typ: Sin, fn: fnSin},
	{name: "cos", typ: Cos, fn: fnCos},
	{name: "tan", typ: Tan, fn: fnTan},
	{name: "abs", typ: Abs, fn: fnAbs},
	{name: "sqrt", typ: Sqrt, fn: fnSqrt},
	{name: "exp", typ: Exp, fn: fnExp},
	{name: "log", typ: Log, fn: fnLog},
	{name: "log10", typ: Log10, fn: fnLog10},
	{name: "sinh", typ: Sinh, fn: fnSinh},
	{name: "cosh", typ: Cosh, fn: fnCosh},
	{name: "tanh", typ: Tanh, fn: fnTanh},
	{name: "asin", typ: Asin, fn: fnAsin},
	{name: "acos", typ: Acos, fn: fnAcos},
	{name: "atan", typ: Atan, fn: fnAtan},
	{name: "asinh", typ: Asinh, fn: fnAsinh},
	{name: "acosh", typ: Acosh, fn: fnAcosh},
	{name: "atanh", typ: Atanh, fn: fnAtanh},
	{name: "ceil", typ: Ceil, fn: fnCeil},
	{name: "floor", typ: Floor, fn: fnFloor},
	{name: "frac", typ: Frac, fn: fnFrac},
})

// byType indexes keywords by token type for the evaluator and String.
var byType = func() *[End + 1]*keyword {
	var m [End + 1]*keyword
	for i := range keywords {
		m[keywords[i].typ] = &keywords[i]
	}
	return &m
}()

func keywordOf(t TokenType) *keyword {
	if t > End {
		return nil
	}
	return byType[t]
}

// sortkeywords orders the table by descending name length, keeping the
// written order among names of equal length.
func sortkeywords(kws []keyword) []keyword {
	for i := 1; i < len(kws); i++ {
		for j := i; j > 0 && len(kws[j].name) > len(kws[j-1].name); j-- {
			kws[j], kws[j-1] = kws[j-1], kws[j]
		}
	}
	return kws
}

// Keywords returns the names the tokenizer recognizes, longest first.
func Keywords() []string {
	r := make([]string, len(keywords))
	for i, kw := range keywords {
		r[i] = kw.name
	}
	return r
}
