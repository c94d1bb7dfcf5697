package multicurvas

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// render writes a token stream as space-separated names, with literals
// replaced by their values.
func render(b *TokenBuffer) string {
	var s []string
	for _, tok := range b.tokens {
		if tok.Type == Number {
			v, ok := b.Value(tok)
			if !ok {
				s = append(s, "BADINDEX")
				continue
			}
			s = append(s, strconv.FormatFloat(v, 'g', -1, 64))
			continue
		}
		s = append(s, tok.Type.String())
	}
	return strings.Join(s, " ")
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		loc  Locale
		want string
	}{
		{"empty", "", Point, "END"},
		{"spaces", " \t \r\n ", Point, "END"},
		{"int", "9876543210", Point, "9.87654321e+09 END"},
		{"point", "3.14", Point, "3.14 END"},
		{"comma", "3,14", Comma, "3.14 END"},
		{"leading-point", ".5", Point, "0.5 END"},
		{"leading-comma", ",5", Comma, "0.5 END"},
		{"trailing-point", "5.", Point, "5 END"},
		{"second-mark", "1.2.3", Point, "1.2 0.3 END"},
		{"call", "sin(x)*2+x", Point, "sin ( x ) * 2 + x END"},
		{"theta", "9*(theta-pi/2)", Point, "9 * ( theta - pi / 2 ) END"},
		{"t", "2*e^(-t/2)", Point, "2 * e ^ ( 0 - t / 2 ) END"},
		{"consts", "  pi\t+ e ", Point, "pi + e END"},
		{"log10", "log10(100)", Point, "log10 ( 100 ) END"},
		{"exp-e", "exp(e)", Point, "exp ( e ) END"},
		{"all-funcs", "sinh cosh tanh asinh acosh atanh asin acos atan ceil floor frac abs sqrt tan", Point,
			"sinh cosh tanh asinh acosh atanh asin acos atan ceil floor frac abs sqrt tan END"},
		{"neg", "-x", Point, "0 - x END"},
		{"plus", "+x", Point, "0 + x END"},
		{"neg-paren", "2*(-x)", Point, "2 * ( 0 - x ) END"},
		{"neg-after-op", "x+-3", Point, "x + 0 - 3 END"},
		{"neg-after-pow", "2^-1", Point, "2 ^ 0 - 1 END"},
		{"negneg", "--x", Point, "0 - 0 - x END"},
		{"binary-minus", "x-1", Point, "x - 1 END"},
		{"minus-after-paren", "(x)-1", Point, "( x ) - 1 END"},
		{"unbalanced-structure", "2+", Point, "2 + END"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := Tokenize(c.src, c.loc)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			if got := render(b); got != c.want {
				t.Errorf("%q tokenized wrong:\n\twant %s\n\tgot  %s", c.src, c.want, got)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		loc  Locale
		kind ParserError
		col  int
		text string
	}{
		{"unknown-func", "cossecante(x)", Point, ErrUnknownFunction, 1, "cossecante"},
		{"unknown-suffix", "sinx", Point, ErrUnknownFunction, 1, "sinx"},
		{"const-digit", "2*e2", Point, ErrUnknownFunction, 3, "e2"},
		{"unicode-name", "x+θ", Point, ErrUnknownFunction, 3, "θ"},
		{"mixed", "x + theta", Point, ErrMixedVariables, 5, "theta"},
		{"mixed-t", "t*x*t", Point, ErrMixedVariables, 3, "x"},
		{"close", "sin(x))", Point, ErrSyntax, 7, ")"},
		{"close-first", ")x(", Point, ErrSyntax, 1, ")"},
		{"open", "(x", Point, ErrSyntax, 1, "("},
		{"open-inner", "((x)", Point, ErrSyntax, 1, "("},
		{"char", "2 $ 3", Point, ErrSyntax, 3, "$"},
		{"comma-in-point", "3,14", Point, ErrSyntax, 2, ","},
		{"point-in-comma", "3.14", Comma, ErrSyntax, 2, "."},
		{"underscore", "x_1", Point, ErrSyntax, 2, "_"},
		{"overflow", "1" + strings.Repeat("0", 400), Point, ErrSyntax, 1, "1" + strings.Repeat("0", 400)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := Tokenize(c.src, c.loc)
			if err == nil {
				t.Fatalf("%q tokenized without error to %s", c.src, render(b))
			}
			if b != nil {
				t.Errorf("%q gave a buffer with error %v", c.src, err)
			}
			if !errors.Is(err, c.kind) {
				t.Errorf("%q gave wrong error kind: want %v, got %v", c.src, c.kind, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("%#v is not *ParseError", err)
			}
			if pe.Pos() != c.col {
				t.Errorf("%q gave error at wrong column: want %d, got %d", c.src, c.col, pe.Pos())
			}
			if pe.Text != c.text {
				t.Errorf("%q gave error with wrong text: want %q, got %q", c.src, c.text, pe.Text)
			}
		})
	}
}

func TestTokenizeLocaleEquivalence(t *testing.T) {
	cases := []struct {
		point, comma string
	}{
		{"3.14", "3,14"},
		{"2.5*x+1.75", "2,5*x+1,75"},
		{"0.5^2", "0,5^2"},
		{"sin(x)*2+x", "sin(x)*2+x"},
	}
	for _, c := range cases {
		p, err := Tokenize(c.point, Point)
		if err != nil {
			t.Fatalf("%q failed to tokenize: %v", c.point, err)
		}
		q, err := Tokenize(c.comma, Comma)
		if err != nil {
			t.Fatalf("%q failed to tokenize: %v", c.comma, err)
		}
		if render(p) != render(q) {
			t.Errorf("locales disagree:\n\t%q gives %s\n\t%q gives %s", c.point, render(p), c.comma, render(q))
		}
	}
}

func TestTokenizeLiteralPool(t *testing.T) {
	b, err := Tokenize("sin(x) + 2 * 3.14", Point)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(b.values); n != 2 {
		t.Errorf("wrong number of literals: want 2, got %d", n)
	}
	if n := b.Len(); n != 9 {
		t.Errorf("wrong number of tokens: want 9, got %d", n)
	}
	for _, tok := range b.tokens {
		if tok.Type != Number && tok.Index != 0 {
			t.Errorf("%v has index %d", tok.Type, tok.Index)
		}
	}
}

func TestTokenizeMemory(t *testing.T) {
	// One literal more than the pool holds.
	src := strings.Repeat("1+", MaxValues) + "1"
	b, err := Tokenize(src, Point)
	if !errors.Is(err, ErrMemory) {
		t.Errorf("want ErrMemory, got %v", err)
	}
	if b != nil {
		t.Errorf("got a buffer with %d tokens", b.Len())
	}
}
